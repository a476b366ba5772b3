// Package engine wraps the embedded analytical SQL engine behind a single
// run-scoped connection and a bounded query executor.
//
// Two backends are supported through database/sql:
//
//   - duckdb: an in-memory DuckDB connection whose queries read an on-disk
//     parquet file directly. This is the default and mirrors how the system
//     is meant to run against large datasets: the file is never loaded as a
//     whole, only each query's reduced result is materialized.
//   - sqlite: a read-only connection to a SQLite database file, with the
//     transactions table as the source relation. Used for fixtures and for
//     datasets that already live in SQLite.
//
// The connection is a single shared, non-thread-safe resource: opened once
// per pipeline run, reused across catalog queries in order, and closed at
// run end regardless of intermediate failures. The executor never
// post-filters or truncates a result; bounding is the query's job, and a
// result that blows past the safety cap fails loudly instead of being
// silently trimmed.
package engine
