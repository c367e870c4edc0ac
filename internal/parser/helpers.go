package parser

import (
	"slices"

	"exprnorm/internal/diag"
	"exprnorm/internal/source"
	"exprnorm/internal/token"
)

func (p *Parser) peek() token.Token {
	return p.peekAt(0)
}

// peekAt смотрит на n токенов вперёд; за концом потока всегда EOF.
func (p *Parser) peekAt(n int) token.Token {
	if i := p.pos + n; i < len(p.toks) {
		return p.toks[i]
	}
	return p.toks[len(p.toks)-1]
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.peek().Kind)
}

// advance: съедает следующий токен и обновляет lastSpan
func (p *Parser) advance() token.Token {
	tok := p.peek()
	if tok.Kind != token.EOF {
		p.pos++
		p.lastSpan = tok.Span
	}
	return tok
}

// diagSpan: span для диагностики: на EOF указываем сразу за последним токеном.
func (p *Parser) diagSpan() source.Span {
	tok := p.peek()
	if tok.Kind == token.EOF {
		return source.Span{File: p.lastSpan.File, Start: p.lastSpan.End, End: p.lastSpan.End}
	}
	return tok.Span
}

// expect: ожидаем конкретный токен. Если нет: репортим и возвращаем (invalid,false).
// Invalid-токены уже описаны лексером и повторно не репортятся.
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	if !p.at(token.Invalid) {
		p.errAt(code, p.diagSpan(), msg)
	}
	return token.Token{Kind: token.Invalid, Span: p.diagSpan()}, false
}

func (p *Parser) errAt(code diag.Code, sp source.Span, msg string) {
	p.Report(code, diag.SevError, sp, msg, nil)
}

// Report implements diag.Reporter for the lexer and the parser itself,
// counting errors against Options.MaxErrors.
func (p *Parser) Report(code diag.Code, sev diag.Severity, sp source.Span, msg string, notes []diag.Note) {
	if p.opts.Enough() {
		return
	}
	if sev == diag.SevError {
		p.opts.CurrentErrors++
	}
	if p.opts.Reporter != nil {
		p.opts.Reporter.Report(code, sev, sp, msg, notes)
	}
}
