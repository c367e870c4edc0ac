//nolint:errcheck // Kind implies the Data payload type.
package driver

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"exprnorm/internal/diag"
	"exprnorm/internal/expr"
	"exprnorm/internal/normalize"
	"exprnorm/internal/parser"
	"exprnorm/internal/source"
	"exprnorm/internal/trace"
)

// Entry pairs a parsed statement with its normalized tree.
type Entry struct {
	Stmt   parser.Stmt
	Output *expr.Expr // nil when normalization rejected the statement
}

// Changed reports whether normalization rewrote anything in the statement.
func (e Entry) Changed() bool {
	return e.Output != nil && e.Output != e.Stmt.Expr
}

// Stats summarizes one file.
type Stats struct {
	Statements int `json:"statements"`
	Rewritten  int `json:"rewritten"`
	Rejected   int `json:"rejected"`
	Accessors  int `json:"accessors"` // accessor calls replaced
}

// Add accumulates other into s.
func (s *Stats) Add(other Stats) {
	s.Statements += other.Statements
	s.Rewritten += other.Rewritten
	s.Rejected += other.Rejected
	s.Accessors += other.Accessors
}

// FileResult is the outcome of normalizing one expression file.
type FileResult struct {
	Path    string
	FileSet *source.FileSet
	FileID  source.FileID
	Params  []*expr.Expr
	Entries []Entry
	Bag     *diag.Bag
	Stats   Stats
}

// HasErrors reports whether the file produced error diagnostics.
func (r *FileResult) HasErrors() bool {
	return r != nil && r.Bag.HasErrors()
}

// NormalizeSource normalizes in-memory source registered under name.
func (s *Session) NormalizeSource(ctx context.Context, name string, src []byte) (*FileResult, error) {
	fs := source.NewFileSet()
	id := fs.AddVirtual(name, src)
	return s.normalizeLoaded(ctx, fs, id, nil)
}

// NormalizeFile reads and normalizes one file. A read failure is reported as an
// IO5001 diagnostic, not as an error; the error result is reserved for cancellation.
func (s *Session) NormalizeFile(ctx context.Context, path string) (*FileResult, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return s.readFailure(fs, path, err), nil
	}
	return s.normalizeLoaded(ctx, fs, id, nil)
}

// readFailure registers an empty placeholder so the diagnostic still carries a path.
func (s *Session) readFailure(fs *source.FileSet, path string, err error) *FileResult {
	return s.loadFailure(fs, fs.Add(path, nil, 0), err)
}

func (s *Session) loadFailure(fs *source.FileSet, id source.FileID, err error) *FileResult {
	bag := diag.NewBag(s.opts.MaxDiagnostics)
	bag.Add(diag.NewError(diag.IOReadFailed, source.Span{File: id}, "failed to read file: "+err.Error()))
	return &FileResult{Path: fs.Get(id).Path, FileSet: fs, FileID: id, Bag: bag}
}

func (s *Session) normalizeLoaded(ctx context.Context, fs *source.FileSet, id source.FileID, onStage func(Stage)) (*FileResult, error) {
	file := fs.Get(id)
	span, ctx := trace.Start(ctx, trace.ScopeFile, "file:"+file.Path)
	res := &FileResult{Path: file.Path, FileSet: fs, FileID: id, Bag: diag.NewBag(s.opts.MaxDiagnostics)}

	if onStage != nil {
		onStage(StageParse)
	}
	endParse := s.opts.Timer.Track("parse")
	parsed := parser.ParseFile(file, s.table, parser.Options{
		MaxErrors:   s.maxErrors(),
		Reporter:    diag.NewDedupReporter(diag.BagReporter{Bag: res.Bag}),
		KeepRawText: s.opts.KeepRawText,
	})
	endParse("")
	res.Params = parsed.Params

	if onStage != nil {
		onStage(StageNormalize)
	}
	endNorm := s.opts.Timer.Track("normalize")
	res.Entries = make([]Entry, 0, len(parsed.Stmts))
	for _, st := range parsed.Stmts {
		if err := ctx.Err(); err != nil {
			endNorm("cancelled")
			span.End("cancelled")
			return nil, err
		}
		res.Entries = append(res.Entries, s.normalizeStmt(ctx, st, res))
	}
	endNorm("")

	span.WithExtra("stmts", strconv.Itoa(res.Stats.Statements)).
		WithExtra("rewritten", strconv.Itoa(res.Stats.Rewritten)).
		End(fmt.Sprintf("%d diagnostic(s)", res.Bag.Len()))
	return res, nil
}

func (s *Session) normalizeStmt(ctx context.Context, st parser.Stmt, res *FileResult) Entry {
	span, _ := trace.Start(ctx, trace.ScopeNode, "stmt")
	res.Stats.Statements++
	out, err := s.norm.Normalize(st.Expr)
	if err != nil {
		res.Stats.Rejected++
		res.Bag.Add(rejection(err, st.Span))
		span.End("rejected")
		return Entry{Stmt: st}
	}
	if out != st.Expr {
		res.Stats.Rewritten++
		res.Stats.Accessors += accessorCalls(st.Expr) - accessorCalls(out)
	}
	span.End("")
	return Entry{Stmt: st, Output: out}
}

// rejection converts a normalization failure into NORM4001.
func rejection(err error, stmt source.Span) diag.Diagnostic {
	var pv *normalize.PreconditionViolation
	if !errors.As(err, &pv) {
		return diag.NewError(diag.NormNotSupported, stmt, err.Error())
	}
	sp := pv.Span
	if sp == (source.Span{}) {
		sp = stmt
	}
	msg := fmt.Sprintf("%s is not a real %s: %s", pv.Method.Name(), pv.Shape, pv.Reason)
	return diag.NewError(diag.NormNotSupported, sp, msg).
		WithNote(stmt, "statement left unnormalized")
}

func accessorCalls(e *expr.Expr) int {
	n := 0
	expr.Walk(e, func(x *expr.Expr) bool {
		if x.Kind == expr.ExprCall && x.Data.(expr.CallData).Method.IsSpecialName() {
			n++
		}
		return true
	})
	return n
}
