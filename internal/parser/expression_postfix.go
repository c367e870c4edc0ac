package parser

import (
	"exprnorm/internal/diag"
	"exprnorm/internal/expr"
	"exprnorm/internal/meta"
	"exprnorm/internal/source"
	"exprnorm/internal/token"
	"exprnorm/internal/types"
)

// postfix := primary { '.' ident ['(' args ')'] | '[' args ']' }
func (p *Parser) parsePostfix() (*expr.Expr, bool) {
	e, ok := p.parsePrimary()
	if !ok {
		return nil, false
	}
	for {
		switch {
		case p.at(token.Dot):
			p.advance()
			nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected member name after '.'")
			if !ok {
				return nil, false
			}
			if p.at(token.LParen) {
				args, end, ok := p.parseArgs(token.LParen, token.RParen)
				if !ok {
					return nil, false
				}
				if e, ok = p.resolveCall(e, e.Type, nameTok, args, e.Span.Cover(end)); !ok {
					return nil, false
				}
				continue
			}
			if e, ok = p.resolveProperty(e, nameTok); !ok {
				return nil, false
			}
		case p.at(token.LBracket):
			args, end, ok := p.parseArgs(token.LBracket, token.RBracket)
			if !ok {
				return nil, false
			}
			if e, ok = p.resolveIndex(e, args, e.Span.Cover(end)); !ok {
				return nil, false
			}
		default:
			return e, true
		}
	}
}

// parseArgs разбирает open [expr {',' expr}] close.
func (p *Parser) parseArgs(open, close token.Kind) ([]*expr.Expr, source.Span, bool) {
	openTok, ok := p.expect(open, diag.SynUnexpectedToken, "expected '"+open.String()+"'")
	if !ok {
		return nil, source.Span{}, false
	}
	var args []*expr.Expr
	if p.at(close) {
		return args, p.advance().Span, true
	}
	for {
		a, ok := p.parseExpr()
		if !ok {
			return nil, source.Span{}, false
		}
		args = append(args, a)
		switch {
		case p.at(token.Comma):
			p.advance()
		case p.at(close):
			return args, p.advance().Span, true
		case p.at(token.EOF):
			diag.ReportError(p, diag.SynUnclosedDelimiter, p.diagSpan(), "expected '"+close.String()+"'").
				WithNote(openTok.Span, "opened here").
				Emit()
			return nil, source.Span{}, false
		default:
			p.expect(close, diag.SynUnexpectedToken, "expected ',' or '"+close.String()+"'")
			return nil, source.Span{}, false
		}
	}
}

// resolveCall выбирает перегрузку метода. instance == nil означает статический вызов Type.Name(...).
func (p *Parser) resolveCall(instance *expr.Expr, decl types.TypeID, nameTok token.Token, args []*expr.Expr, sp source.Span) (*expr.Expr, bool) {
	if !p.isClass(decl) {
		p.errAt(diag.MetaUnknownMember, nameTok.Span, "type "+p.typeName(decl)+" has no methods")
		return nil, false
	}
	all := p.tbl.Methods(decl, nameTok.Text)
	if len(all) == 0 {
		p.errAt(diag.MetaUnknownMember, nameTok.Span, p.typeName(decl)+" has no method "+nameTok.Text)
		return nil, false
	}
	static := instance == nil
	cands := make([]*meta.Method, 0, len(all))
	for _, m := range all {
		if m.IsStatic() == static {
			cands = append(cands, m)
		}
	}
	m := p.selectMethod(cands, args)
	if m == nil {
		msg := "no overload of " + p.typeName(decl) + "." + nameTok.Text + " accepts " + p.argTypes(args)
		if len(cands) == 0 && static {
			msg = p.typeName(decl) + "." + nameTok.Text + " is an instance method"
		} else if len(cands) == 0 {
			msg = p.typeName(decl) + "." + nameTok.Text + " is static; call it on the type"
		}
		p.errAt(diag.MetaNoMatchingOverload, nameTok.Span, msg)
		return nil, false
	}
	return expr.NewCall(instance, m, args, sp), true
}

func (p *Parser) resolveProperty(instance *expr.Expr, nameTok token.Token) (*expr.Expr, bool) {
	if !p.isClass(instance.Type) {
		p.errAt(diag.MetaUnknownMember, nameTok.Span, "type "+p.typeName(instance.Type)+" has no properties")
		return nil, false
	}
	prop := p.tbl.LookupInstanceProperty(instance.Type, nameTok.Text)
	if prop == nil {
		msg := p.typeName(instance.Type) + " has no property " + nameTok.Text
		if len(p.tbl.Methods(instance.Type, nameTok.Text)) > 0 {
			msg = nameTok.Text + " is a method; add an argument list"
		}
		p.errAt(diag.MetaUnknownMember, nameTok.Span, msg)
		return nil, false
	}
	return expr.NewMemberAccess(instance, prop, instance.Span.Cover(nameTok.Span)), true
}

func (p *Parser) resolveIndex(instance *expr.Expr, args []*expr.Expr, sp source.Span) (*expr.Expr, bool) {
	var cands []*meta.Indexer
	if p.isClass(instance.Type) {
		cands = p.tbl.Indexers(instance.Type, meta.DefaultIndexerName)
	}
	if len(cands) == 0 {
		p.errAt(diag.MetaUnknownMember, sp, "type "+p.typeName(instance.Type)+" has no indexer")
		return nil, false
	}
	params := make([][]types.TypeID, len(cands))
	for i, ix := range cands {
		params[i] = ix.IndexParameterTypes()
	}
	best := p.selectOverload(params, args)
	if best < 0 {
		p.errAt(diag.MetaNoMatchingOverload, sp,
			"no indexer of "+p.typeName(instance.Type)+" accepts "+p.argTypes(args))
		return nil, false
	}
	return expr.NewIndex(instance, cands[best], args, sp), true
}
