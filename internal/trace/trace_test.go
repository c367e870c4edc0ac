package trace_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"exprnorm/internal/trace"
)

func TestLevelShouldEmit(t *testing.T) {
	tests := []struct {
		level trace.Level
		scope trace.Scope
		want  bool
	}{
		{trace.LevelOff, trace.ScopeDriver, false},
		{trace.LevelError, trace.ScopeDriver, false},
		{trace.LevelPhase, trace.ScopePass, true},
		{trace.LevelPhase, trace.ScopeFile, false},
		{trace.LevelDetail, trace.ScopeFile, true},
		{trace.LevelDetail, trace.ScopeNode, false},
		{trace.LevelDebug, trace.ScopeNode, true},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.scope); got != tt.want {
			t.Errorf("%s.ShouldEmit(%s) = %v, want %v", tt.level, tt.scope, got, tt.want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	if l, err := trace.ParseLevel("DETAIL"); err != nil || l != trace.LevelDetail {
		t.Fatalf("ParseLevel(DETAIL) = %v, %v", l, err)
	}
	if _, err := trace.ParseLevel("loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := trace.NewStreamTracer(&buf, trace.LevelDetail, trace.FormatNDJSON)

	span := trace.Begin(tr, trace.ScopeFile, "file:a.xn", 7)
	span.WithExtra("stmts", "3").End("ok")
	trace.Begin(tr, trace.ScopeNode, "stmt", span.ID()).End("") // filtered by level

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines:\n%s", len(lines), buf.String())
	}
	var end struct {
		Kind     string            `json:"kind"`
		Scope    string            `json:"scope"`
		ParentID uint64            `json:"parent_id"`
		Name     string            `json:"name"`
		Detail   string            `json:"detail"`
		Extra    map[string]string `json:"extra"`
	}
	if err := json.Unmarshal([]byte(lines[1]), &end); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if end.Kind != "end" || end.Scope != "file" || end.ParentID != 7 ||
		end.Name != "file:a.xn" || end.Detail != "ok" || end.Extra["stmts"] != "3" {
		t.Errorf("unexpected end event: %+v", end)
	}
}

func TestRingTracerWraps(t *testing.T) {
	ring := trace.NewRingTracer(3, trace.LevelDebug)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		ring.Emit(&trace.Event{Kind: trace.KindPoint, Scope: trace.ScopePass, Name: name})
	}
	snap := ring.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("snapshot has %d events, want 3", len(snap))
	}
	for i, want := range []string{"c", "d", "e"} {
		if snap[i].Name != want {
			t.Errorf("snap[%d] = %q, want %q", i, snap[i].Name, want)
		}
	}

	var buf bytes.Buffer
	if err := ring.Dump(&buf, trace.FormatText); err != nil {
		t.Fatalf("Dump: %v", err)
	}
	if !strings.Contains(buf.String(), "• e") {
		t.Errorf("text dump missing last event:\n%s", buf.String())
	}
}

func TestMultiTracerFansOut(t *testing.T) {
	a := trace.NewRingTracer(8, trace.LevelPhase)
	b := trace.NewRingTracer(8, trace.LevelPhase)
	m := trace.NewMultiTracer(trace.LevelPhase, a, b)
	trace.Begin(m, trace.ScopeDriver, "batch", 0).End("")
	if len(a.Snapshot()) != 2 || len(b.Snapshot()) != 2 {
		t.Errorf("events: a=%d b=%d, want 2 each", len(a.Snapshot()), len(b.Snapshot()))
	}
}

func TestNopAndContext(t *testing.T) {
	if trace.FromContext(context.Background()) != trace.Nop {
		t.Fatal("empty context must yield Nop")
	}
	ring := trace.NewRingTracer(4, trace.LevelPhase)
	ctx := trace.WithTracer(context.Background(), ring)
	if trace.FromContext(ctx) != trace.Tracer(ring) {
		t.Fatal("tracer not propagated through context")
	}
	if span := trace.Begin(trace.Nop, trace.ScopeDriver, "x", 0); span.End("") != 0 {
		t.Error("nop span must report zero duration")
	}
	tr, err := trace.New(trace.Config{Level: trace.LevelOff})
	if err != nil || tr.Enabled() {
		t.Errorf("New(off) = %v, %v", tr, err)
	}
}

func TestStartNestsSpans(t *testing.T) {
	ring := trace.NewRingTracer(8, trace.LevelDetail)
	ctx := trace.WithTracer(context.Background(), ring)

	outer, ctx := trace.Start(ctx, trace.ScopePass, "batch")
	inner, innerCtx := trace.Start(ctx, trace.ScopeFile, "file:a.xn")
	if trace.CurrentSpan(innerCtx).SpanID != inner.ID() {
		t.Errorf("current span = %d, want %d", trace.CurrentSpan(innerCtx).SpanID, inner.ID())
	}
	// ScopeNode is filtered at LevelDetail: the context is passed through unchanged.
	node, nodeCtx := trace.Start(innerCtx, trace.ScopeNode, "stmt")
	if node.ID() != 0 || nodeCtx != innerCtx {
		t.Errorf("filtered span: id=%d, context replaced=%v", node.ID(), nodeCtx != innerCtx)
	}
	node.End("")
	inner.End("")
	outer.End("")

	snap := ring.Snapshot()
	if len(snap) != 4 {
		t.Fatalf("got %d events, want 4", len(snap))
	}
	if snap[1].ParentID != outer.ID() || snap[1].Name != "file:a.xn" {
		t.Errorf("inner begin = %+v, want parent %d", snap[1], outer.ID())
	}
}

func TestRingModeDumpsOnClose(t *testing.T) {
	var buf bytes.Buffer
	tr, err := trace.New(trace.Config{
		Level:    trace.LevelPhase,
		Mode:     trace.ModeRing,
		Format:   trace.FormatNDJSON,
		Output:   &buf,
		RingSize: 2,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for _, name := range []string{"load-meta", "batch"} {
		trace.Begin(tr, trace.ScopePass, name, 0).End("")
	}
	if buf.Len() != 0 {
		t.Fatalf("ring mode wrote before Close:\n%s", buf.String())
	}
	if err := tr.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 || !strings.Contains(lines[0], `"batch"`) || !strings.Contains(lines[1], `"batch"`) {
		t.Errorf("dump should hold the last two events:\n%s", buf.String())
	}
}
