// Package pipeline orchestrates one end-to-end run of the query catalog.
//
// The runner walks the catalog in order, one query at a time, against the
// run's single engine connection:
//
//	Idle -> Executing(q) -> Reporting(q) -> Executing(next) -> ... -> Done
//
// A failure at either stage is recorded against the query and the loop
// advances; no error escapes Run, no query is retried, and the run always
// reaches Done carrying the full per-query tally. Report-stage failures
// are finer-grained still: each artifact records its own outcome, so a
// degenerate column costs one plot, not the query.
//
// Concurrency is absent by design. The engine connection and output root
// are exclusively owned by the one active run.
package pipeline
