package diagfmt_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"exprnorm/internal/diag"
	"exprnorm/internal/diagfmt"
	"exprnorm/internal/source"
)

func sampleBag(t *testing.T) (*diag.Bag, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("sample.xn", []byte("param x: Widget;\nx.get_Secret();\n"))
	bag := diag.NewBag(0)
	r := diag.BagReporter{Bag: bag}
	diag.ReportError(r, diag.NormNotSupported, source.Span{File: id, Start: 17, End: 31}, "get_Secret has no property").
		WithNote(source.Span{File: id, Start: 6, End: 7}, "x declared here").
		Emit()
	return bag, fs
}

func TestPretty(t *testing.T) {
	bag, fs := sampleBag(t)
	var buf bytes.Buffer
	if err := diagfmt.Pretty(&buf, bag, fs, diagfmt.PrettyOpts{ShowNotes: true}); err != nil {
		t.Fatalf("Pretty: %v", err)
	}
	want := "sample.xn:2:1: ERROR NORM4001: get_Secret has no property\n" +
		"  x.get_Secret();\n" +
		"  ^~~~~~~~~~~~~~\n" +
		"  note: sample.xn:1:7: x declared here\n"
	if buf.String() != want {
		t.Errorf("Pretty =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestPrettyTruncates(t *testing.T) {
	bag, fs := sampleBag(t)
	bag.Add(diag.NewError(diag.SynUnexpectedToken, source.Span{File: 1, Start: 0, End: 5}, "second"))
	var buf bytes.Buffer
	if err := diagfmt.Pretty(&buf, bag, fs, diagfmt.PrettyOpts{Max: 1}); err != nil {
		t.Fatalf("Pretty: %v", err)
	}
	if !strings.HasSuffix(buf.String(), "... and 1 more\n") {
		t.Errorf("missing truncation line:\n%s", buf.String())
	}
}

func TestJSON(t *testing.T) {
	bag, fs := sampleBag(t)
	var buf bytes.Buffer
	err := diagfmt.JSON(&buf, bag, fs, diagfmt.JSONOpts{IncludePositions: true, IncludeNotes: true})
	if err != nil {
		t.Fatalf("JSON: %v", err)
	}
	var out diagfmt.DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if out.Count != 1 || len(out.Diagnostics) != 1 {
		t.Fatalf("count = %d", out.Count)
	}
	d := out.Diagnostics[0]
	if d.Code != "NORM4001" || d.Severity != "error" {
		t.Errorf("got %s %s", d.Severity, d.Code)
	}
	if d.Location.StartLine != 2 || d.Location.StartCol != 1 || d.Location.File != "sample.xn" {
		t.Errorf("location = %+v", d.Location)
	}
	if len(d.Notes) != 1 || d.Notes[0].Location.StartCol != 7 {
		t.Errorf("notes = %+v", d.Notes)
	}
}

func TestShort(t *testing.T) {
	bag, fs := sampleBag(t)
	got := diagfmt.Short(bag.Items(), fs, true)
	want := "note NORM4001 sample.xn:1:7 x declared here\n" +
		"error NORM4001 sample.xn:2:1 get_Secret has no property"
	if got != want {
		t.Errorf("Short =\n%s\nwant\n%s", got, want)
	}
}
