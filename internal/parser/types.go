package parser

import (
	"exprnorm/internal/diag"
	"exprnorm/internal/source"
	"exprnorm/internal/token"
	"exprnorm/internal/types"
)

// parseTypeName разбирает имя типа без суффиксов [].
func (p *Parser) parseTypeName() (types.TypeID, source.Span, bool) {
	if !p.at(token.Ident) {
		if !p.at(token.Invalid) {
			p.errAt(diag.SynExpectType, p.diagSpan(), "expected type name")
		}
		return types.NoTypeID, p.diagSpan(), false
	}
	tok := p.advance()
	id, ok := p.types.ByName(tok.Text)
	if !ok {
		p.errAt(diag.MetaUnknownType, tok.Span, "unknown type "+tok.Text)
		return types.NoTypeID, tok.Span, false
	}
	return id, tok.Span, true
}

// arraySuffixes съедает пары [] и возвращает их количество.
func (p *Parser) arraySuffixes() int {
	n := 0
	for p.at(token.LBracket) && p.peekAt(1).Kind == token.RBracket {
		p.advance()
		p.advance()
		n++
	}
	return n
}

// parseParamType разбирает тип параметра: имя и любые суффиксы [].
func (p *Parser) parseParamType() (types.TypeID, source.Span, bool) {
	id, sp, ok := p.parseTypeName()
	if !ok {
		return id, sp, false
	}
	for range p.arraySuffixes() {
		id = p.types.ArrayOf(id)
	}
	sp = sp.Cover(p.lastSpan)
	if id == p.builtins.Void {
		p.errAt(diag.MetaTypeMismatch, sp, "parameter cannot have type void")
		return id, sp, false
	}
	return id, sp, true
}

func (p *Parser) isClass(id types.TypeID) bool {
	t, ok := p.types.Lookup(id)
	return ok && t.Kind == types.KindNamed
}

func (p *Parser) typeName(id types.TypeID) string {
	return p.types.String(id)
}
