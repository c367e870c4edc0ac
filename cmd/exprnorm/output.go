package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"exprnorm/internal/diagfmt"
	"exprnorm/internal/driver"
	"exprnorm/internal/expr"
)

type outputFormat string

const (
	formatPretty outputFormat = "pretty"
	formatTree   outputFormat = "tree"
	formatJSON   outputFormat = "json"
)

func readOutputFormat(value string) (outputFormat, error) {
	switch outputFormat(strings.ToLower(strings.TrimSpace(value))) {
	case "", formatPretty:
		return formatPretty, nil
	case formatTree:
		return formatTree, nil
	case formatJSON:
		return formatJSON, nil
	default:
		return "", fmt.Errorf("unknown format %q (expected pretty|tree|json)", value)
	}
}

func printDiagnostics(w io.Writer, res *driver.FileResult, maxDiag int) error {
	if res.Bag.Len() == 0 {
		return nil
	}
	res.Bag.Sort()
	return diagfmt.Pretty(w, res.Bag, res.FileSet, diagfmt.PrettyOpts{
		Color:     useColor(),
		PathMode:  diagfmt.PathModeAuto,
		ShowNotes: true,
		Max:       maxDiag,
	})
}

// printEntries writes one line per statement, or an indented dump for tree format.
func printEntries(w io.Writer, p *expr.Printer, res *driver.FileResult, format outputFormat) error {
	for _, e := range res.Entries {
		if e.Output == nil {
			continue
		}
		if format == formatTree {
			if err := p.Dump(w, e.Output); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintln(w, p.Format(e.Output)); err != nil {
			return err
		}
	}
	return nil
}

type entryJSON struct {
	Input   string `json:"input"`
	Output  string `json:"output,omitempty"`
	Changed bool   `json:"changed"`
}

type fileJSON struct {
	Path        string                    `json:"path"`
	Entries     []entryJSON               `json:"entries"`
	Stats       driver.Stats              `json:"stats"`
	Diagnostics diagfmt.DiagnosticsOutput `json:"diagnostics"`
}

func buildFileJSON(p *expr.Printer, res *driver.FileResult, maxDiag int) fileJSON {
	out := fileJSON{Path: res.Path, Entries: make([]entryJSON, 0, len(res.Entries)), Stats: res.Stats}
	for _, e := range res.Entries {
		ej := entryJSON{Input: p.Format(e.Stmt.Expr), Changed: e.Changed()}
		if e.Output != nil {
			ej.Output = p.Format(e.Output)
		}
		out.Entries = append(out.Entries, ej)
	}
	res.Bag.Sort()
	out.Diagnostics = diagfmt.BuildDiagnosticsOutput(res.Bag, res.FileSet, diagfmt.JSONOpts{
		IncludePositions: true,
		PathMode:         diagfmt.PathModeAuto,
		Max:              maxDiag,
		IncludeNotes:     true,
	})
	return out
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
