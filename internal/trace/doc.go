// Package trace records what the conversion loop is doing while it runs.
//
// A run of fltc on one file opens a driver span, then one span per phase,
// one per compile pass and, at the most verbose level, one point event per
// diagnostic with the outcome the rewrite engine reached for it. A stuck or
// slow conversion shows up as a long pass span or as heartbeats with no
// span ends between them.
//
// # Usage
//
//	fltc convert --trace=- --trace-level=detail prog.c
//
// # Tracers
//
//   - Nop: zero-overhead tracer used when tracing is off
//   - StreamTracer: writes every event as it arrives
//   - RingTracer: keeps the last N events for a dump after a failure
//   - MultiTracer: fans out to several tracers
//   - Heartbeat: wraps a tracer and periodically reports each running
//     file's phase and pass
//
// # Levels
//
//   - LevelOff: nothing
//   - LevelError: ring only, dumped when a conversion fails
//   - LevelPhase: run and phase boundaries
//   - LevelDetail: every pass
//   - LevelDebug: every diagnostic
//
// # Context Propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	file := trace.BeginFile(t, path)
//	ctx = trace.WithSpan(ctx, file)
//	pass := trace.Begin(t, trace.ScopePass, "pass:03", trace.SpanFrom(ctx))
//	defer pass.End("")
//
// Every span begun under a file span carries that file, so a ring dump can
// be limited to the one input that failed.
package trace
