package parser

import (
	"strconv"
	"strings"

	"exprnorm/internal/diag"
	"exprnorm/internal/expr"
	"exprnorm/internal/token"
)

func (p *Parser) parsePrimary() (*expr.Expr, bool) {
	tok := p.peek()
	switch tok.Kind {
	case token.IntLit:
		return p.parseIntLit()
	case token.FloatLit:
		p.advance()
		v, err := strconv.ParseFloat(strings.ReplaceAll(tok.Text, "_", ""), 64)
		if err != nil {
			p.errAt(diag.LexBadNumber, tok.Span, "invalid float literal "+tok.Text)
			return nil, false
		}
		return expr.NewFloat(p.builtins.Float, v, tok.Span), true
	case token.StringLit:
		p.advance()
		s, err := strconv.Unquote(tok.Text)
		if err != nil {
			p.errAt(diag.LexBadEscape, tok.Span, "invalid string literal")
			return nil, false
		}
		return expr.NewString(p.builtins.String, s, tok.Span), true
	case token.KwTrue, token.KwFalse:
		p.advance()
		return expr.NewBool(p.builtins.Bool, tok.Kind == token.KwTrue, tok.Span), true
	case token.KwNull:
		p.advance()
		return expr.NewNull(p.builtins.Object, tok.Span), true
	case token.Ident:
		return p.parseIdent()
	case token.LParen:
		if p.isLambdaStart() {
			return p.parseLambda()
		}
		p.advance()
		inner, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		if _, ok = p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')'"); !ok {
			return nil, false
		}
		return inner, true
	case token.KwNew:
		return p.parseNewArray()
	case token.Invalid:
		// уже описан лексером
		p.advance()
		return nil, false
	default:
		p.errAt(diag.SynExpectExpression, p.diagSpan(), "expected expression, found "+tok.Kind.String())
		return nil, false
	}
}

// Целые, помещающиеся в int32, имеют тип int, остальные long.
func (p *Parser) parseIntLit() (*expr.Expr, bool) {
	tok := p.advance()
	text := strings.ReplaceAll(tok.Text, "_", "")
	var v int64
	var err error
	if hex, ok := strings.CutPrefix(strings.ToLower(text), "0x"); ok {
		var u uint64
		u, err = strconv.ParseUint(hex, 16, 64)
		v = int64(u) //nolint:gosec // hex literals keep their bit pattern
	} else {
		v, err = strconv.ParseInt(text, 10, 64)
	}
	if err != nil {
		p.errAt(diag.LexBadNumber, tok.Span, "integer literal "+tok.Text+" is out of range")
		return nil, false
	}
	ty := p.builtins.Int
	if v < -1<<31 || v > 1<<31-1 {
		ty = p.builtins.Long
	}
	return expr.NewInt(ty, v, tok.Span), true
}

// parseIdent: параметр из области видимости или статический вызов Type.Method(...).
func (p *Parser) parseIdent() (*expr.Expr, bool) {
	tok := p.advance()
	if prm := p.scope.lookup(tok.Text); prm != nil {
		return prm, true
	}
	if id, ok := p.types.ByName(tok.Text); ok && p.isClass(id) && p.at(token.Dot) {
		p.advance()
		nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected member name after '.'")
		if !ok {
			return nil, false
		}
		if !p.at(token.LParen) {
			p.errAt(diag.MetaUnknownMember, nameTok.Span, "static properties are not supported")
			return nil, false
		}
		args, end, ok := p.parseArgs(token.LParen, token.RParen)
		if !ok {
			return nil, false
		}
		return p.resolveCall(nil, id, nameTok, args, tok.Span.Cover(end))
	}
	p.errAt(diag.MetaUnknownIdentifier, tok.Span, "unknown identifier "+tok.Text)
	return nil, false
}

// isLambdaStart: "()" "=>" или "(" ident ":".
func (p *Parser) isLambdaStart() bool {
	t1, t2 := p.peekAt(1), p.peekAt(2)
	return t1.Kind == token.RParen && t2.Kind == token.FatArrow ||
		t1.Kind == token.Ident && t2.Kind == token.Colon
}

// lambda := '(' [ident ':' type {',' ident ':' type}] ')' '=>' expr
func (p *Parser) parseLambda() (*expr.Expr, bool) {
	open := p.advance()
	inner := newScope(p.scope)
	var params []*expr.Expr
	for !p.at(token.RParen) {
		if len(params) > 0 {
			if _, ok := p.expect(token.Comma, diag.SynUnexpectedToken, "expected ',' or ')' in parameter list"); !ok {
				return nil, false
			}
		}
		nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected parameter name")
		if !ok {
			return nil, false
		}
		if _, ok = p.expect(token.Colon, diag.SynUnexpectedToken, "expected ':' after parameter name"); !ok {
			return nil, false
		}
		ty, _, ok := p.parseParamType()
		if !ok {
			return nil, false
		}
		if prev := inner.vars[nameTok.Text]; prev != nil {
			diag.ReportError(p, diag.MetaDuplicateParameter, nameTok.Span, "parameter "+nameTok.Text+" is already declared").
				WithNote(prev.Span, "previous declaration").
				Emit()
			return nil, false
		}
		prm := expr.NewParameter(nameTok.Text, ty, nameTok.Span)
		inner.declare(prm)
		params = append(params, prm)
	}
	p.advance() // ')'
	if _, ok := p.expect(token.FatArrow, diag.SynUnexpectedToken, "expected '=>' after lambda parameters"); !ok {
		return nil, false
	}

	outer := p.scope
	p.scope = inner
	body, ok := p.parseExpr()
	p.scope = outer
	if !ok {
		return nil, false
	}
	return expr.NewLambda(params, body, open.Span.Cover(body.Span)), true
}

// new T[]{a, b}; дополнительные [] дают массив массивов.
func (p *Parser) parseNewArray() (*expr.Expr, bool) {
	newTok := p.advance()
	elem, _, ok := p.parseTypeName()
	if !ok {
		return nil, false
	}
	if elem == p.builtins.Void {
		p.errAt(diag.MetaTypeMismatch, p.lastSpan, "cannot create an array of void")
		return nil, false
	}
	dims := p.arraySuffixes()
	if dims == 0 {
		p.expect(token.LBracket, diag.SynUnexpectedToken, "expected '[]' after array element type")
		return nil, false
	}
	for range dims - 1 {
		elem = p.types.ArrayOf(elem)
	}
	if !p.at(token.LBrace) {
		p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' to start array elements")
		return nil, false
	}
	elems, end, ok := p.parseArgs(token.LBrace, token.RBrace)
	if !ok {
		return nil, false
	}
	for _, e := range elems {
		if !p.convertible(e, elem) {
			p.errAt(diag.MetaTypeMismatch, e.Span,
				"cannot use "+p.typeName(e.Type)+" as an element of "+p.typeName(elem)+"[]")
			return nil, false
		}
	}
	arr := p.types.ArrayOf(elem)
	return expr.NewArray(arr, elem, elems, newTok.Span.Cover(end)), true
}
