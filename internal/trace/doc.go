// Package trace records what the normalizer is doing while it runs.
//
// Spans mark command, pass, file and statement boundaries so that slow or
// stuck batches can be diagnosed after the fact.
//
// # Usage
//
//	exprnorm batch --trace=- --trace-level=detail ./exprs
//
// # Tracers
//
//   - Nop: zero-overhead tracer used when tracing is off
//   - StreamTracer: writes every event immediately (file or stderr)
//   - RingTracer: keeps the last N events for a dump on failure
//   - MultiTracer: fans events out to several tracers
//
// # Levels
//
//   - LevelOff: no tracing
//   - LevelError: only ring dumps on failure
//   - LevelPhase: command and pass boundaries
//   - LevelDetail: per-file events
//   - LevelDebug: everything including per-statement spans
//
// # Context propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopePass, "parse", parentID)
//	defer span.End("")
package trace
