// Package storage persists index snapshots, classified chunks, and entity
// anchors in SQLite.
//
// # Data model
//
// A snapshot row identifies one (root_path, project_type) pair and owns its
// file_records, chunks, and entities via ON DELETE CASCADE. Writes go
// through SaveSnapshot, which replaces the whole ownership tree inside a
// single transaction, so readers observe either the previous complete index
// or the next one, never a mix.
//
// # Drivers
//
// Two SQLite drivers are supported via build tags. The default build uses
// modernc.org/sqlite (pure Go, no C toolchain); building with the
// sqlite_cgo tag switches to github.com/mattn/go-sqlite3 for the faster C
// implementation. Behavior is identical under both drivers.
//
// # Concurrency
//
// The connection pool is capped at a single connection: SQLite allows one
// writer, and WAL mode already gives readers a consistent view. Higher-level
// serialization of index builds is the orchestrator's job, not storage's.
package storage
