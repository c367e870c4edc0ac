package parser

import (
	"exprnorm/internal/diag"
	"exprnorm/internal/expr"
	"exprnorm/internal/lexer"
	"exprnorm/internal/meta"
	"exprnorm/internal/source"
	"exprnorm/internal/token"
	"exprnorm/internal/types"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
	// KeepRawText disables NFC normalization of identifiers and strings.
	KeepRawText bool
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

// Stmt is one top-level expression statement.
type Stmt struct {
	Expr *expr.Expr
	Span source.Span
}

type Result struct {
	Params []*expr.Expr // declared with `param name: Type;`, in order
	Stmts  []Stmt
	Errors uint
}

// Parser: состояние парсера на один файл
type Parser struct {
	toks     []token.Token
	pos      int
	file     *source.File
	tbl      *meta.Table
	types    *types.Interner
	builtins types.Builtins
	opts     Options
	scope    *scope
	params   []*expr.Expr
	stmts    []Stmt
	lastSpan source.Span // span последнего съеденного токена для лучшей диагностики
}

// ParseFile lexes and parses one expression file, resolving type, member and
// method names against tbl. Statements with errors are reported and dropped.
func ParseFile(file *source.File, tbl *meta.Table, opts Options) Result {
	p := &Parser{
		file:     file,
		tbl:      tbl,
		types:    tbl.Types(),
		builtins: tbl.Types().Builtins(),
		opts:     opts,
		scope:    newScope(nil),
		lastSpan: source.Span{File: file.ID},
	}
	// лексер пишет в парсер, чтобы лимит ошибок был общим
	p.toks = lexer.New(file, lexer.Options{Reporter: p, KeepRawText: opts.KeepRawText}).All()
	p.parseStmts()
	return Result{Params: p.params, Stmts: p.stmts, Errors: p.opts.CurrentErrors}
}

func (p *Parser) parseStmts() {
	for !p.at(token.EOF) && !p.opts.Enough() {
		var ok bool
		if p.at(token.KwParam) {
			ok = p.parseParamDecl()
		} else {
			ok = p.parseExprStmt()
		}
		if !ok {
			p.resync()
		}
	}
}

// param x: Widget;
func (p *Parser) parseParamDecl() bool {
	p.advance() // param
	nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected parameter name after 'param'")
	if !ok {
		return false
	}
	if _, ok = p.expect(token.Colon, diag.SynUnexpectedToken, "expected ':' after parameter name"); !ok {
		return false
	}
	ty, _, ok := p.parseParamType()
	if !ok {
		return false
	}
	if !p.endStmt() {
		return false
	}
	if prev := p.scope.vars[nameTok.Text]; prev != nil {
		diag.ReportError(p, diag.MetaDuplicateParameter, nameTok.Span, "parameter "+nameTok.Text+" is already declared").
			WithNote(prev.Span, "previous declaration").
			Emit()
		return true
	}
	prm := expr.NewParameter(nameTok.Text, ty, nameTok.Span)
	p.scope.declare(prm)
	p.params = append(p.params, prm)
	return true
}

func (p *Parser) parseExprStmt() bool {
	start := p.peek().Span
	e, ok := p.parseExpr()
	if !ok || !p.endStmt() {
		return false
	}
	p.stmts = append(p.stmts, Stmt{Expr: e, Span: start.Cover(p.lastSpan)})
	return true
}

// endStmt accepts ';' or the end of input.
func (p *Parser) endStmt() bool {
	if p.at(token.EOF) {
		return true
	}
	_, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after statement")
	return ok
}

// resync прокручивает до ';' (включительно) или EOF.
func (p *Parser) resync() {
	for !p.at(token.EOF) {
		if p.advance().Kind == token.Semicolon {
			return
		}
	}
}
