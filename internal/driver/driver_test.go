package driver_test

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"exprnorm/internal/diag"
	"exprnorm/internal/driver"
	"exprnorm/internal/expr"
	"exprnorm/internal/meta"
	"exprnorm/internal/observ"
	"exprnorm/internal/testkit"
)

func newSession(t *testing.T, opts driver.Options) *driver.Session {
	t.Helper()
	dir := t.TempDir()
	metaPath := filepath.Join(dir, "widget.meta.toml")
	if err := os.WriteFile(metaPath, []byte(testkit.WidgetSchema), 0o600); err != nil {
		t.Fatal(err)
	}
	cache, err := meta.OpenCacheDir(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatalf("OpenCacheDir: %v", err)
	}
	s, err := driver.OpenSession(context.Background(), []string{metaPath}, cache, opts)
	if err != nil {
		t.Fatalf("OpenSession: %v", err)
	}
	return s
}

func format(s *driver.Session, e *expr.Expr) string {
	return expr.NewPrinter(s.Table().Types()).Format(e)
}

func TestNormalizeSource(t *testing.T) {
	timer := observ.NewTimer()
	s := newSession(t, driver.Options{Timer: timer})
	src := `param x: Widget;
x.get_Item(3);
x.set_Item(3, "a");
x.Name;
x.set_Parent(x.get_Parent().get_Parent());
`
	res, err := s.NormalizeSource(context.Background(), "sample.xn", []byte(src))
	if err != nil {
		t.Fatalf("NormalizeSource: %v", err)
	}
	if res.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", res.Bag.Items())
	}
	want := []string{`x[3]`, `x[3] = "a"`, `x.Name`, `x.Parent = x.Parent.Parent`}
	for i, e := range res.Entries {
		if got := format(s, e.Output); got != want[i] {
			t.Errorf("entry %d = %q, want %q", i, got, want[i])
		}
	}
	if res.Entries[2].Changed() {
		t.Error("x.Name must come back unchanged")
	}
	wantStats := driver.Stats{Statements: 4, Rewritten: 3, Accessors: 5}
	if res.Stats != wantStats {
		t.Errorf("stats = %+v, want %+v", res.Stats, wantStats)
	}

	phases := map[string]bool{}
	for _, p := range timer.Report().Phases {
		phases[p.Name] = true
	}
	for _, name := range []string{"load-meta", "parse", "normalize"} {
		if !phases[name] {
			t.Errorf("timer has no %q phase", name)
		}
	}
}

func TestNormalizeRejectsLookalikeAccessor(t *testing.T) {
	s := newSession(t, driver.Options{})
	src := "param x: Widget;\nx.get_Secret();\nx.get_Item(1);\n"
	res, err := s.NormalizeSource(context.Background(), "bad.xn", []byte(src))
	if err != nil {
		t.Fatalf("NormalizeSource: %v", err)
	}
	if res.Bag.Len() != 1 {
		t.Fatalf("got %d diagnostics, want 1: %v", res.Bag.Len(), res.Bag.Items())
	}
	d := res.Bag.Items()[0]
	if d.Code != diag.NormNotSupported || !strings.Contains(d.Message, "get_Secret") {
		t.Errorf("diagnostic = %s %q", d.Code.ID(), d.Message)
	}
	if len(d.Notes) != 1 {
		t.Errorf("want a note pointing at the statement, got %v", d.Notes)
	}
	if res.Entries[0].Output != nil {
		t.Error("rejected statement must have no output")
	}
	if got := format(s, res.Entries[1].Output); got != "x[1]" {
		t.Errorf("later statement = %q, want x[1]", got)
	}
	if res.Stats.Rejected != 1 || res.Stats.Rewritten != 1 {
		t.Errorf("stats = %+v", res.Stats)
	}
}

func TestNormalizeFileReadFailure(t *testing.T) {
	s := newSession(t, driver.Options{})
	res, err := s.NormalizeFile(context.Background(), filepath.Join(t.TempDir(), "missing.xn"))
	if err != nil {
		t.Fatalf("NormalizeFile: %v", err)
	}
	if !res.HasErrors() || res.Bag.Items()[0].Code != diag.IOReadFailed {
		t.Fatalf("want IO5001, got %v", res.Bag.Items())
	}
	if !strings.HasSuffix(res.Path, "missing.xn") {
		t.Errorf("path = %q", res.Path)
	}
}

func TestNormalizeCancelled(t *testing.T) {
	s := newSession(t, driver.Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.NormalizeSource(ctx, "c.xn", []byte("param x: Widget; x.Name;")); err == nil {
		t.Fatal("expected context error")
	}
}

type recordSink struct {
	mu     sync.Mutex
	events []driver.Event
}

func (r *recordSink) OnEvent(ev driver.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func TestNormalizeDir(t *testing.T) {
	s := newSession(t, driver.Options{})
	dir := t.TempDir()
	files := map[string]string{
		"a.xn":        "param x: Widget; x.get_Name();",
		"b.xn":        "param x: Widget; x.get_Secret();",
		"nested/c.xn": "param x: Widget; x.set_Item(1, 2, \"v\");",
		"skip.txt":    "not an expression file",
	}
	for name, body := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	sink := &recordSink{}
	results, err := s.NormalizeDir(context.Background(), dir, 2, sink)
	if err != nil {
		t.Fatalf("NormalizeDir: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	var names []string
	for _, r := range results {
		names = append(names, filepath.Base(r.Path))
	}
	if !slices.Equal(names, []string{"a.xn", "b.xn", "c.xn"}) {
		t.Errorf("result order = %v", names)
	}
	if results[0].HasErrors() || !results[1].HasErrors() || results[2].HasErrors() {
		t.Errorf("error flags = %v %v %v", results[0].HasErrors(), results[1].HasErrors(), results[2].HasErrors())
	}
	if got := format(s, results[2].Entries[0].Output); got != `x[1, 2] = "v"` {
		t.Errorf("c.xn = %q", got)
	}

	final := map[string]driver.Status{}
	queued := 0
	for _, ev := range sink.events {
		switch ev.Status {
		case driver.StatusQueued:
			queued++
		case driver.StatusDone, driver.StatusError:
			final[filepath.Base(ev.File)] = ev.Status
		}
	}
	if queued != 3 {
		t.Errorf("queued events = %d, want 3", queued)
	}
	want := map[string]driver.Status{"a.xn": driver.StatusDone, "b.xn": driver.StatusError, "c.xn": driver.StatusDone}
	for name, st := range want {
		if final[name] != st {
			t.Errorf("%s final status = %q, want %q", name, final[name], st)
		}
	}
}

func TestMatch(t *testing.T) {
	s := newSession(t, driver.Options{})
	ctx := context.Background()
	params := []string{"x: Widget"}

	tests := []struct {
		expected, observed string
		equal              bool
	}{
		{`x[3]`, `x.get_Item(3)`, true},
		{`x[3] = "a"`, `x.set_Item(3, "a")`, true},
		{`x.Parent.Name`, `x.get_Parent().get_Name()`, true},
		{`x[3]`, `x.get_Item(4)`, false},
		{`x.Name`, `x.Describe()`, false},
	}
	for _, tt := range tests {
		m, err := s.Match(ctx, params, tt.expected, tt.observed)
		if err != nil {
			t.Fatalf("Match(%q, %q): %v", tt.expected, tt.observed, err)
		}
		if m.File.HasErrors() {
			t.Fatalf("Match(%q, %q): %v", tt.expected, tt.observed, m.File.Bag.Items())
		}
		if m.Equal != tt.equal {
			t.Errorf("Match(%q, %q) = %v, want %v", tt.expected, tt.observed, m.Equal, tt.equal)
		}
	}

	m, err := s.Match(ctx, params, "x.Nope", "x.Name")
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if m.Equal || !m.File.HasErrors() {
		t.Error("unresolvable expression must produce diagnostics and no match")
	}
	if _, err := s.Match(ctx, params, "x.Name; x.Name", "x.Name"); err == nil {
		t.Error("three statements must be rejected")
	}
}

func TestWatcher(t *testing.T) {
	dir := t.TempDir()
	w, err := driver.NewWatcher([]string{dir})
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	changes := make(chan []string, 4)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, 20*time.Millisecond, func(_ context.Context, changed []string) {
			changes <- changed
		})
	}()

	if err := os.WriteFile(filepath.Join(dir, "ignored.txt"), []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	target := filepath.Join(dir, "a.xn")
	if err := os.WriteFile(target, []byte("param x: Widget;"), 0o600); err != nil {
		t.Fatal(err)
	}

	select {
	case changed := <-changes:
		if !slices.Equal(changed, []string{filepath.Clean(target)}) {
			t.Errorf("changed = %v", changed)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Run: %v", err)
	}
}
