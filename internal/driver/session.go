package driver

import (
	"context"
	"fmt"

	"fortio.org/safecast"

	"exprnorm/internal/meta"
	"exprnorm/internal/normalize"
	"exprnorm/internal/observ"
	"exprnorm/internal/trace"
)

// Options configure a Session.
type Options struct {
	MaxDiagnostics int           // per file; <= 0 means unlimited
	KeepRawText    bool          // skip NFC normalization in the lexer
	Timer          *observ.Timer // nil disables phase timings
}

// Session holds a sealed metadata table and normalizes expression files against it.
// A Session is safe for concurrent use.
type Session struct {
	table *meta.Table
	norm  *normalize.Normalizer
	opts  Options
}

// NewSession wraps an already built table.
func NewSession(tbl *meta.Table, opts Options) *Session {
	tbl.Seal()
	return &Session{table: tbl, norm: normalize.New(tbl), opts: opts}
}

// OpenSession loads metadata files (through cache when non-nil) and builds a Session.
func OpenSession(ctx context.Context, metaPaths []string, cache *meta.Cache, opts Options) (*Session, error) {
	if len(metaPaths) == 0 {
		return nil, fmt.Errorf("no metadata files given")
	}
	span, _ := trace.Start(ctx, trace.ScopePass, "load-meta")
	end := opts.Timer.Track("load-meta")
	tbl, err := meta.LoadTable(metaPaths, cache)
	note := fmt.Sprintf("%d file(s)", len(metaPaths))
	end(note)
	if err != nil {
		span.End("failed")
		return nil, err
	}
	span.End(note)
	return NewSession(tbl, opts), nil
}

// Table returns the session's metadata table.
func (s *Session) Table() *meta.Table { return s.table }

// Timer returns the phase timer, possibly nil.
func (s *Session) Timer() *observ.Timer { return s.opts.Timer }

func (s *Session) maxErrors() uint {
	n, err := safecast.Conv[uint](s.opts.MaxDiagnostics)
	if err != nil {
		return 0
	}
	return n
}
