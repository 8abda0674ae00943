// Package database provides SQLite-based storage for intelseed.
//
// This package implements IntelDB, which owns the connection to the
// intelligence database and exposes:
//   - Schema migrations for the research and optimizations tables
//   - A seeding transaction with insert-if-absent semantics for research
//   - Table statistics for diagnostics
//
// Design decision: We use SQLite (via modernc.org/sqlite) because the
// intelligence database is a single local file shared with other tools, and
// the CGO-free driver keeps the binary trivially cross-compilable.
package database
