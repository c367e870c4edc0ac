package lexer

import (
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"exprnorm/internal/diag"
	"exprnorm/internal/token"
)

// scanIdentOrKeyword сканирует идентификатор и проверяет через LookupKeyword.
// Текст идентификатора приводится к NFC, чтобы "é" и "é" давали одно имя.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()

	r, _ := lx.peekRune()
	if r < utf8.RuneSelf {
		lx.cursor.Bump()
		for isIdentContinueByte(lx.cursor.Peek()) || lx.cursor.Peek() >= utf8.RuneSelf {
			if lx.cursor.Peek() >= utf8.RuneSelf {
				if r2, _ := lx.peekRune(); !isIdentContinueRune(r2) {
					break
				}
				lx.bumpRune()
				continue
			}
			lx.cursor.Bump()
		}
	} else {
		if !isIdentStartRune(r) {
			lx.bumpRune()
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexUnknownChar, sp, "unknown character "+lx.text(sp))
			return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
		}
		lx.bumpRune()
		for {
			r2, sz := lx.peekRune()
			if sz == 0 || !(isIdentContinueRune(r2) || (r2 < utf8.RuneSelf && isIdentContinueByte(byte(r2)))) {
				break
			}
			lx.bumpRune()
		}
	}

	sp := lx.cursor.SpanFrom(start)
	text := lx.text(sp)
	if k, ok := token.LookupKeyword(text); ok {
		return token.Token{Kind: k, Span: sp, Text: text}
	}
	if !lx.opts.KeepRawText {
		text = norm.NFC.String(text)
	}
	return token.Token{Kind: token.Ident, Span: sp, Text: text}
}
