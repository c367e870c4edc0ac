//nolint:errcheck // Kind implies the Data payload type.
package parser

import (
	"strings"

	"exprnorm/internal/expr"
	"exprnorm/internal/meta"
	"exprnorm/internal/types"
)

// numericRank: int < long < float; 0 для нечисловых.
func (p *Parser) numericRank(id types.TypeID) int {
	switch id {
	case p.builtins.Int:
		return 1
	case p.builtins.Long:
		return 2
	case p.builtins.Float:
		return 3
	default:
		return 0
	}
}

func (p *Parser) isNumeric(id types.TypeID) bool {
	return p.numericRank(id) > 0
}

func isNullLit(e *expr.Expr) bool {
	return e.Kind == expr.ExprConstant && e.Data.(expr.ConstantData).Kind == expr.ConstNull
}

// convertible reports whether e can be passed where to is expected without a
// conversion node: identity, widening of numbers, anything to object, null to
// reference types.
func (p *Parser) convertible(e *expr.Expr, to types.TypeID) bool {
	if e.Type == to || to == p.builtins.Object {
		return true
	}
	if isNullLit(e) {
		t, ok := p.types.Lookup(to)
		return ok && (t.Kind == types.KindNamed || t.Kind == types.KindString || t.Kind == types.KindArray)
	}
	from, dst := p.numericRank(e.Type), p.numericRank(to)
	return from > 0 && dst > from
}

// binaryType returns the result type of op, or false when the operands do not fit.
func (p *Parser) binaryType(op expr.BinaryOp, l, r *expr.Expr) (types.TypeID, bool) {
	b := p.builtins
	switch op {
	case expr.BinaryAndAlso, expr.BinaryOrElse:
		return b.Bool, l.Type == b.Bool && r.Type == b.Bool
	case expr.BinaryEq, expr.BinaryNotEq:
		return b.Bool, p.convertible(l, r.Type) || p.convertible(r, l.Type)
	case expr.BinaryLt, expr.BinaryLtEq, expr.BinaryGt, expr.BinaryGtEq:
		return b.Bool, p.isNumeric(l.Type) && p.isNumeric(r.Type)
	case expr.BinaryAdd:
		if l.Type == b.String || r.Type == b.String {
			return b.String, true
		}
	}
	lr, rr := p.numericRank(l.Type), p.numericRank(r.Type)
	if lr == 0 || rr == 0 {
		return types.NoTypeID, false
	}
	if lr >= rr {
		return l.Type, true
	}
	return r.Type, true
}

// selectOverload picks an exact match first, then the first candidate every
// argument converts to. It returns -1 when nothing fits.
func (p *Parser) selectOverload(cands [][]types.TypeID, args []*expr.Expr) int {
	fits := func(params []types.TypeID, exact bool) bool {
		if len(params) != len(args) {
			return false
		}
		for i, a := range args {
			if a.Type != params[i] && (exact || !p.convertible(a, params[i])) {
				return false
			}
		}
		return true
	}
	for _, exact := range []bool{true, false} {
		for i, params := range cands {
			if fits(params, exact) {
				return i
			}
		}
	}
	return -1
}

func (p *Parser) selectMethod(cands []*meta.Method, args []*expr.Expr) *meta.Method {
	params := make([][]types.TypeID, len(cands))
	for i, m := range cands {
		params[i] = m.ParameterTypes()
	}
	if i := p.selectOverload(params, args); i >= 0 {
		return cands[i]
	}
	return nil
}

func (p *Parser) argTypes(args []*expr.Expr) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = p.typeName(a.Type)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
