// Package trace records what the lamb pipeline is doing.
//
// Enable it from the command line:
//
//	lamb check --trace=- --trace-level=phase prelude.lc
//
// Tracers:
//
//   - Nop: tracing disabled
//   - StreamTracer: writes each event as it happens
//   - RingTracer: keeps the last N events for a dump after a crash
//   - MultiTracer: fans out to several tracers
//
// Levels select scopes: phase shows driver and pass spans, detail adds one
// span per file, debug adds one span per normalized definition.
//
// A tracer travels in the context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "parse", 0)
//	defer span.End("")
package trace
