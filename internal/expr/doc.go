// Package expr defines the typed expression tree the accessor normalizer works on.
//
// Trees are immutable and acyclic. Every node is an *Expr whose Kind selects the
// payload type stored in Data. Nodes are never modified after construction, so
// subtrees may be shared freely between trees: pointer equality of two *Expr values
// means "same subtree", which rewriting passes rely on to avoid copying.
//
// Parameters are identified by node: every reference to a lambda or free parameter
// points at the same Parameter *Expr.
package expr
