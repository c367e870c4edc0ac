package diagfmt

import (
	"fmt"
	"sort"
	"strings"

	"exprnorm/internal/diag"
	"exprnorm/internal/source"
)

type shortEntry struct {
	Severity string
	Code     string
	Path     string
	Line     uint32
	Column   uint32
	Message  string
}

// Short renders diagnostics one per line, sorted by location, without colour or
// source context: `error SYN2001 file.xn:1:5 message`. Notes follow as `note` lines
// when includeNotes is set.
func Short(diags []diag.Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if fs == nil || len(diags) == 0 {
		return ""
	}
	entries := make([]shortEntry, 0, len(diags))
	add := func(sev string, code diag.Code, sp source.Span, msg string) {
		start, _ := fs.Resolve(sp)
		entries = append(entries, shortEntry{
			Severity: sev,
			Code:     code.ID(),
			Path:     displayPath(fs, sp.File, PathModeAuto),
			Line:     start.Line,
			Column:   start.Col,
			Message:  sanitizeMessage(msg),
		})
	}
	for _, d := range diags {
		add(d.Severity.Label(), d.Code, d.Primary, d.Message)
		if includeNotes {
			for _, n := range d.Notes {
				add("note", d.Code, n.Span, n.Msg)
			}
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		di, dj := entries[i], entries[j]
		if di.Path != dj.Path {
			return di.Path < dj.Path
		}
		if di.Line != dj.Line {
			return di.Line < dj.Line
		}
		if di.Column != dj.Column {
			return di.Column < dj.Column
		}
		return di.Code < dj.Code
	})

	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = fmt.Sprintf("%s %s %s:%d:%d %s", e.Severity, e.Code, e.Path, e.Line, e.Column, e.Message)
	}
	return strings.Join(lines, "\n")
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\r", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
