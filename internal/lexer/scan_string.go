package lexer

import (
	"golang.org/x/text/unicode/norm"

	"exprnorm/internal/diag"
	"exprnorm/internal/source"
	"exprnorm/internal/token"
)

// scanString сканирует "..." с escape \\ \" \n \t \r \xNN \uNNNN.
// Token.Text сохраняет кавычки и escape-последовательности; декодирует парсер.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '"'
	bad := false
	for !lx.cursor.EOF() {
		switch b := lx.cursor.Peek(); b {
		case '"':
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			if bad {
				return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
			}
			text := lx.text(sp)
			if !lx.opts.KeepRawText {
				text = norm.NFC.String(text)
			}
			return token.Token{Kind: token.StringLit, Span: sp, Text: text}
		case '\\':
			if !lx.scanEscape() {
				bad = true
			}
		case '\n':
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexUnterminatedString, sp, "newline in string literal")
			return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
		default:
			lx.cursor.Bump()
		}
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}

func (lx *Lexer) scanEscape() bool {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '\\'
	hex := 0
	switch lx.cursor.Peek() {
	case '\\', '"', 'n', 't', 'r':
		lx.cursor.Bump()
		return true
	case 'x':
		hex = 2
	case 'u':
		hex = 4
	default:
		if !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
			lx.bumpRune()
		}
		lx.badEscape(lx.cursor.SpanFrom(start))
		return false
	}
	lx.cursor.Bump()
	for range hex {
		if !isHex(lx.cursor.Peek()) {
			lx.badEscape(lx.cursor.SpanFrom(start))
			return false
		}
		lx.cursor.Bump()
	}
	return true
}

func (lx *Lexer) badEscape(sp source.Span) {
	lx.errLex(diag.LexBadEscape, sp, "invalid escape sequence "+lx.text(sp))
}
