//nolint:errcheck // Kind implies the Data payload type.
package testkit

import (
	"fmt"

	"exprnorm/internal/expr"
	"exprnorm/internal/meta"
)

// CheckNormalized verifies the invariants of a normalized tree:
//  1. no accessor-shaped call remains: a special-name get_ call, or a set_ call
//     passing a value (set_X() with no arguments is an ordinary call)
//  2. member access and index nodes are typed by their descriptor's value type
//  3. index nodes pass exactly one argument per index parameter
//  4. assignment targets are member access or index nodes
func CheckNormalized(root *expr.Expr) error {
	var err error
	expr.Walk(root, func(e *expr.Expr) bool {
		if err != nil {
			return false
		}
		switch e.Kind {
		case expr.ExprCall:
			d := e.Data.(expr.CallData)
			prefix, _, ok := d.Method.AccessorName()
			if ok && (prefix == meta.GetterPrefix || len(d.Args) > 0) {
				err = fmt.Errorf("accessor call %s survived normalization", d.Method.Name())
			}
		case expr.ExprMemberAccess:
			p := e.Data.(expr.MemberAccessData).Property
			if e.Type != p.ValueType() {
				err = fmt.Errorf("member access %s typed %d, property value type %d", p.Name(), e.Type, p.ValueType())
			}
		case expr.ExprIndex:
			d := e.Data.(expr.IndexData)
			if e.Type != d.Indexer.ValueType() {
				err = fmt.Errorf("index %s typed %d, indexer value type %d", d.Indexer.Name(), e.Type, d.Indexer.ValueType())
			} else if len(d.Args) != len(d.Indexer.IndexParameterTypes()) {
				err = fmt.Errorf("index %s has %d arguments for %d parameters", d.Indexer.Name(), len(d.Args), len(d.Indexer.IndexParameterTypes()))
			}
		case expr.ExprAssign:
			target := e.Data.(expr.AssignData).Target
			if target.Kind != expr.ExprMemberAccess && target.Kind != expr.ExprIndex {
				err = fmt.Errorf("assignment to %v", target.Kind)
			}
		}
		return true
	})
	return err
}
