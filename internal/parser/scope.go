package parser

import "exprnorm/internal/expr"

// scope maps names to parameter nodes; every reference shares the declared node.
type scope struct {
	parent *scope
	vars   map[string]*expr.Expr
}

func newScope(parent *scope) *scope {
	return &scope{parent: parent, vars: make(map[string]*expr.Expr)}
}

func (s *scope) declare(prm *expr.Expr) {
	s.vars[prm.Data.(expr.ParameterData).Name] = prm //nolint:errcheck // only parameters are declared
}

func (s *scope) lookup(name string) *expr.Expr {
	for cur := s; cur != nil; cur = cur.parent {
		if v, ok := cur.vars[name]; ok {
			return v
		}
	}
	return nil
}
