package storage

import (
	"context"
	"database/sql"
	"fmt"
)

const (
	// CurrentSchemaVersion tracks the database schema version
	CurrentSchemaVersion = "1"
)

// Migration represents a database schema migration
type Migration struct {
	Version string
	Up      string
	Down    string
}

// AllMigrations contains all database migrations in order
var AllMigrations = []Migration{
	{
		Version: "1",
		Up:      migrationV1Up,
		Down:    migrationV1Down,
	},
}

const migrationV1Up = `
-- Schema version tracking
CREATE TABLE IF NOT EXISTS schema_version (
    version TEXT PRIMARY KEY,
    applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

-- Snapshots table: one row per indexed (root_path, project_type) pair
CREATE TABLE IF NOT EXISTS snapshots (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    root_path TEXT NOT NULL,
    project_type TEXT NOT NULL,
    last_commit TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    UNIQUE(root_path, project_type)
);

CREATE INDEX IF NOT EXISTS idx_snapshots_root ON snapshots(root_path);

-- Per-file staleness baselines
CREATE TABLE IF NOT EXISTS file_records (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    snapshot_id INTEGER NOT NULL,
    path TEXT NOT NULL,
    content_hash TEXT NOT NULL,
    size_bytes INTEGER NOT NULL,
    mod_time TIMESTAMP,
    FOREIGN KEY (snapshot_id) REFERENCES snapshots(id) ON DELETE CASCADE,
    UNIQUE(snapshot_id, path)
);

CREATE INDEX IF NOT EXISTS idx_file_records_snapshot ON file_records(snapshot_id);
CREATE INDEX IF NOT EXISTS idx_file_records_hash ON file_records(content_hash);

-- Classified chunks
CREATE TABLE IF NOT EXISTS chunks (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    snapshot_id INTEGER NOT NULL,
    source_path TEXT NOT NULL,
    sequence INTEGER NOT NULL,
    start_line INTEGER NOT NULL,
    end_line INTEGER NOT NULL,
    kind TEXT NOT NULL,
    content TEXT NOT NULL,
    summary TEXT NOT NULL DEFAULT '',
    FOREIGN KEY (snapshot_id) REFERENCES snapshots(id) ON DELETE CASCADE,
    UNIQUE(snapshot_id, source_path, sequence)
);

CREATE INDEX IF NOT EXISTS idx_chunks_snapshot ON chunks(snapshot_id);
CREATE INDEX IF NOT EXISTS idx_chunks_path ON chunks(snapshot_id, source_path);
CREATE INDEX IF NOT EXISTS idx_chunks_kind ON chunks(kind);

-- Entity anchors extracted from chunks
CREATE TABLE IF NOT EXISTS entities (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    snapshot_id INTEGER NOT NULL,
    source_path TEXT NOT NULL,
    sequence INTEGER NOT NULL,
    kind TEXT NOT NULL,
    name TEXT NOT NULL,
    FOREIGN KEY (snapshot_id) REFERENCES snapshots(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_entities_snapshot ON entities(snapshot_id);
CREATE INDEX IF NOT EXISTS idx_entities_name ON entities(name);
CREATE INDEX IF NOT EXISTS idx_entities_kind ON entities(kind);
`

const migrationV1Down = `
DROP TABLE IF EXISTS entities;
DROP TABLE IF EXISTS chunks;
DROP TABLE IF EXISTS file_records;
DROP TABLE IF EXISTS snapshots;
DROP TABLE IF EXISTS schema_version;
`

// ApplyMigrations runs all pending migrations
func ApplyMigrations(ctx context.Context, db *sql.DB) error {
	applied := make(map[string]bool)

	var tableName string
	err := db.QueryRowContext(ctx, "SELECT name FROM sqlite_master WHERE type='table' AND name='schema_version'").Scan(&tableName)
	if err != nil && err != sql.ErrNoRows {
		return fmt.Errorf("failed to check schema_version table: %w", err)
	}
	if err == nil {
		rows, err := db.QueryContext(ctx, "SELECT version FROM schema_version")
		if err != nil {
			return fmt.Errorf("failed to read schema_version: %w", err)
		}
		for rows.Next() {
			var v string
			if err := rows.Scan(&v); err != nil {
				_ = rows.Close()
				return fmt.Errorf("failed to scan schema_version: %w", err)
			}
			applied[v] = true
		}
		// Release the connection before running migrations; the pool holds
		// a single connection.
		if cerr := rows.Close(); cerr != nil {
			return fmt.Errorf("failed to read schema_version: %w", cerr)
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("failed to read schema_version: %w", err)
		}
	}

	for _, migration := range AllMigrations {
		if applied[migration.Version] {
			continue
		}

		if _, err := db.ExecContext(ctx, migration.Up); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", migration.Version, err)
		}

		if _, err := db.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", migration.Version); err != nil {
			return fmt.Errorf("failed to record migration %s: %w", migration.Version, err)
		}
	}

	return nil
}

// RollbackMigration rolls back the most recent migration
func RollbackMigration(ctx context.Context, db *sql.DB) error {
	var currentVersion string
	err := db.QueryRowContext(ctx, "SELECT version FROM schema_version ORDER BY applied_at DESC LIMIT 1").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("no migrations to rollback: %w", err)
	}

	var migration *Migration
	for i := range AllMigrations {
		if AllMigrations[i].Version == currentVersion {
			migration = &AllMigrations[i]
			break
		}
	}
	if migration == nil {
		return fmt.Errorf("migration %s not found", currentVersion)
	}

	if _, err := db.ExecContext(ctx, migration.Down); err != nil {
		return fmt.Errorf("failed to rollback migration %s: %w", currentVersion, err)
	}

	if _, err := db.ExecContext(ctx, "DELETE FROM schema_version WHERE version = ?", currentVersion); err != nil {
		return fmt.Errorf("failed to remove migration record %s: %w", currentVersion, err)
	}

	return nil
}
