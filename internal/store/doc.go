// Package store provides the SQLite-backed run journal.
//
// Every harness run executed with --db is recorded with:
//   - runs: the scenario file as it was run, pass/fail, errors and trace digest
//   - run_events: one row per trace event
//
// Container contents themselves are never persisted; the journal only keeps
// what is needed to list past runs and replay them.
//
// # Ordering
//
// All ordering uses logical seq columns, never timestamps. Runs get a
// journal-wide seq at write time; events keep the step number the harness
// assigned them.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL
//   - busy_timeout=5000ms
//   - foreign_keys=ON
//   - Schema migrations tracked with PRAGMA user_version
package store
