package observ_test

import (
	"strings"
	"sync"
	"testing"

	"exprnorm/internal/observ"
)

func TestTimerMergesPhasesByName(t *testing.T) {
	timer := observ.NewTimer()
	timer.Track("load-meta")("1 schema")

	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			timer.Track("parse")("")
		}()
	}
	wg.Wait()

	report := timer.Report()
	if len(report.Phases) != 2 {
		t.Fatalf("got %d phases, want 2: %+v", len(report.Phases), report.Phases)
	}
	if p := report.Phases[0]; p.Name != "load-meta" || p.Count != 1 || p.Note != "1 schema" {
		t.Errorf("phase 0 = %+v", p)
	}
	if p := report.Phases[1]; p.Name != "parse" || p.Count != 4 {
		t.Errorf("phase 1 = %+v", p)
	}

	sum := timer.Summary()
	for _, want := range []string{"timings:", "load-meta", "// 1 schema", "x4", "total"} {
		if !strings.Contains(sum, want) {
			t.Errorf("summary missing %q:\n%s", want, sum)
		}
	}
}

func TestNilTimer(t *testing.T) {
	var timer *observ.Timer
	timer.Track("parse")("")
	if r := timer.Report(); len(r.Phases) != 0 {
		t.Errorf("nil timer report = %+v", r)
	}
}
