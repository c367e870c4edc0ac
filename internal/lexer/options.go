package lexer

import (
	"exprnorm/internal/diag"
	"exprnorm/internal/source"
)

type Options struct {
	Reporter diag.Reporter // может быть nil, тогда ошибки игнорируем (но продолжаем лексить)
	// KeepRawText disables NFC normalization of identifiers and string literals.
	KeepRawText bool
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	diag.ReportError(lx.opts.Reporter, code, sp, msg).Emit()
}
