// Package trace records what the emblem front end is doing.
//
// Spans cover the em command, each batch of documents and each document,
// which helps when a large documentation tree is slow to check or a watch
// seems to hang.
//
// # Usage
//
//	em check --trace=- --trace-level=batch docs/
//	em check --trace=run.ndjson --trace-level=document docs/
//	em watch --trace=- --trace-heartbeat=5s docs/
//
// # Sinks
//
//   - Nop: used when a context carries no tracer
//   - stream: text or NDJSON written as events happen
//   - ring: recent events kept in memory and dumped on failure
//   - log: structured zerolog records
//
// New stamps every event with a run id so that traces from concurrent or
// repeated runs can be told apart.
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span, ctx := trace.StartDoc(ctx, "parse", path)
//	defer span.End(nil)
package trace
