// Package stats provides unified, run-scoped statistics reporting for the
// compiler toolchain.
//
// One Reporter is created at process startup and torn down exactly once at
// process end. In between, code paths increment plain counter fields and
// bracket interesting regions with scoped tracers:
//
//	r := stats.New(stats.Config{ProgramName: "mycc", Directory: dir, TraceEvents: true})
//	...
//	r.Frontend().NumSourceLines += n
//	tr := r.TraceScope("parse", stats.Entity{Kind: stats.EntityDecl, Ref: d})
//	defer tr.Done()
//	...
//	r.NoteExitStatus(0)
//	r.Flush()
//
// # Counter domains
//
// Counters live in two independent, lazily allocated domains: Frontend
// (per-compilation work) and Driver (per-invocation orchestration). A
// domain appears in the output only once something touched it.
//
// # Event tracing
//
// When tracing is enabled the Reporter keeps one shared baseline of all
// frontend counters. Opening or closing a traced scope flushes every
// counter whose value moved off the baseline as a trace event and advances
// the baseline, so the log records transitions rather than scope
// boundaries: a scope that changes nothing writes nothing. Scopes must
// nest lexically on a single goroutine.
//
// # Artifacts
//
// Teardown writes a JSON counter/timer snapshot and, when tracing was
// enabled, a CSV event trace into the configured directory. Both writes
// are best-effort: a failure is logged and the remaining teardown phases
// still run.
//
// # Reporter propagation
//
// Reporters travel through the pipeline via context:
//
//	ctx = stats.WithReporter(ctx, r)
//	tr := stats.FromContext(ctx).TraceScope("sema", stats.Entity{})
//	defer tr.Done()
package stats
