//nolint:errcheck // Kind implies the Data payload type.
package parser

import (
	"exprnorm/internal/diag"
	"exprnorm/internal/expr"
	"exprnorm/internal/token"
)

func (p *Parser) parseExpr() (*expr.Expr, bool) {
	return p.parseAssignment()
}

// assignment := conditional ['=' assignment]
func (p *Parser) parseAssignment() (*expr.Expr, bool) {
	lhs, ok := p.parseConditional()
	if !ok || !p.at(token.Assign) {
		return lhs, ok
	}
	opTok := p.advance()
	rhs, ok := p.parseAssignment()
	if !ok {
		return nil, false
	}

	sp := lhs.Span.Cover(rhs.Span)
	switch lhs.Kind {
	case expr.ExprMemberAccess:
		prop := lhs.Data.(expr.MemberAccessData).Property
		if prop.SetAccessor() == nil {
			p.errAt(diag.MetaNotAssignable, lhs.Span, "property "+prop.Name()+" is read-only")
			return nil, false
		}
	case expr.ExprIndex:
		ix := lhs.Data.(expr.IndexData).Indexer
		if ix.SetAccessor() == nil {
			p.errAt(diag.MetaNotAssignable, lhs.Span, "indexer "+ix.Name()+" is read-only")
			return nil, false
		}
	default:
		p.errAt(diag.MetaNotAssignable, opTok.Span, "left side of '=' must be a property or an indexer")
		return nil, false
	}
	if !p.convertible(rhs, lhs.Type) {
		p.errAt(diag.MetaTypeMismatch, rhs.Span,
			"cannot assign "+p.typeName(rhs.Type)+" to "+p.typeName(lhs.Type))
		return nil, false
	}
	return expr.NewAssign(lhs, rhs, sp), true
}

// conditional := binary ['?' conditional ':' conditional]
func (p *Parser) parseConditional() (*expr.Expr, bool) {
	cond, ok := p.parseBinary(1)
	if !ok || !p.at(token.Question) {
		return cond, ok
	}
	p.advance()
	then, ok := p.parseConditional()
	if !ok {
		return nil, false
	}
	if _, ok = p.expect(token.Colon, diag.SynUnexpectedToken, "expected ':' in conditional expression"); !ok {
		return nil, false
	}
	els, ok := p.parseConditional()
	if !ok {
		return nil, false
	}
	if cond.Type != p.builtins.Bool {
		p.errAt(diag.MetaTypeMismatch, cond.Span, "condition must be bool, got "+p.typeName(cond.Type))
		return nil, false
	}
	if !p.convertible(els, then.Type) {
		p.errAt(diag.MetaTypeMismatch, els.Span,
			"conditional branches have types "+p.typeName(then.Type)+" and "+p.typeName(els.Type))
		return nil, false
	}
	return expr.NewConditional(cond, then, els, cond.Span.Cover(els.Span)), true
}

// parseBinary: precedence climbing; все бинарные операторы левоассоциативны.
func (p *Parser) parseBinary(minPrec int) (*expr.Expr, bool) {
	left, ok := p.parseUnary()
	if !ok {
		return nil, false
	}
	for {
		op, isOp := binaryOps[p.peek().Kind]
		if !isOp || op.Precedence() < minPrec {
			return left, true
		}
		opTok := p.advance()
		right, ok := p.parseBinary(op.Precedence() + 1)
		if !ok {
			return nil, false
		}
		ty, ok := p.binaryType(op, left, right)
		if !ok {
			p.errAt(diag.MetaTypeMismatch, opTok.Span, "operator "+op.String()+" cannot be applied to "+
				p.typeName(left.Type)+" and "+p.typeName(right.Type))
			return nil, false
		}
		left = expr.NewBinary(op, left, right, ty, left.Span.Cover(right.Span))
	}
}

func (p *Parser) parseUnary() (*expr.Expr, bool) {
	var op expr.UnaryOp
	switch {
	case p.at(token.Minus):
		op = expr.UnaryNeg
	case p.at(token.Bang):
		op = expr.UnaryNot
	default:
		return p.parsePostfix()
	}
	opTok := p.advance()
	operand, ok := p.parseUnary()
	if !ok {
		return nil, false
	}
	if (op == expr.UnaryNot && operand.Type != p.builtins.Bool) ||
		(op == expr.UnaryNeg && !p.isNumeric(operand.Type)) {
		p.errAt(diag.MetaTypeMismatch, opTok.Span, "operator "+op.String()+" cannot be applied to "+p.typeName(operand.Type))
		return nil, false
	}
	return expr.NewUnary(op, operand, operand.Type, opTok.Span.Cover(operand.Span)), true
}
