package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/codescope/codescope-mcp/pkg/types"
)

// ErrNotFound is returned when a requested snapshot doesn't exist
var ErrNotFound = errors.New("not found")

// SQLiteStorage implements the Storage interface using SQLite
type SQLiteStorage struct {
	db *sql.DB
}

// openDatabase opens a SQLite database with appropriate settings
func openDatabase(dbPath string) (*sql.DB, error) {
	db, err := sql.Open(DriverName, dbPath)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	// Set connection pool settings
	db.SetMaxOpenConns(1) // SQLite benefits from single writer
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return db, nil
}

// NewSQLiteStorage creates a new SQLite storage instance
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	db, err := openDatabase(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := ApplyMigrations(context.Background(), db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	return &SQLiteStorage{db: db}, nil
}

// Close closes the database connection
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// querier is an interface that both *sql.DB and *sql.Tx implement
type querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// snapshotID resolves the row id for a (root_path, project_type) pair.
func snapshotID(ctx context.Context, q querier, rootPath, projectType string) (int64, error) {
	var id int64
	err := q.QueryRowContext(ctx,
		"SELECT id FROM snapshots WHERE root_path = ? AND project_type = ?",
		rootPath, projectType).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	return id, nil
}

// GetSnapshot loads the persisted snapshot for a (root_path, project_type)
// pair, including its file records. Returns ErrNotFound when no snapshot
// exists, or an error wrapping types.ErrSnapshotCorrupt when rows cannot be
// decoded.
func (s *SQLiteStorage) GetSnapshot(ctx context.Context, rootPath, projectType string) (*types.IndexSnapshot, error) {
	var id int64
	snap := &types.IndexSnapshot{
		RootPath:    rootPath,
		ProjectType: projectType,
		Files:       make(map[string]types.FileRecord),
	}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, last_commit FROM snapshots WHERE root_path = ? AND project_type = ?",
		rootPath, projectType).Scan(&id, &snap.LastCommit)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT path, content_hash, size_bytes, mod_time FROM file_records WHERE snapshot_id = ?", id)
	if err != nil {
		return nil, fmt.Errorf("failed to load file records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var rec types.FileRecord
		var modTime sql.NullTime
		if err := rows.Scan(&rec.Path, &rec.ContentHash, &rec.SizeBytes, &modTime); err != nil {
			return nil, fmt.Errorf("%w: file record: %v", types.ErrSnapshotCorrupt, err)
		}
		if rec.Path == "" || rec.ContentHash == "" {
			return nil, fmt.Errorf("%w: file record missing path or hash", types.ErrSnapshotCorrupt)
		}
		if modTime.Valid {
			rec.ModTime = modTime.Time
		}
		snap.Files[rec.Path] = rec
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to load file records: %w", err)
	}

	return snap, nil
}

// SaveSnapshot replaces the persisted state for the snapshot's
// (root_path, project_type) pair in a single transaction. The previous file
// records, chunks, and entities are dropped and the new ones inserted; a
// failure at any point rolls the whole replacement back.
func (s *SQLiteStorage) SaveSnapshot(ctx context.Context, snap *types.IndexSnapshot, chunks []types.ChunkUnit, entities []types.EntityAnchor) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	id, err := upsertSnapshotRow(ctx, tx, snap)
	if err != nil {
		return err
	}

	// Drop the previous ownership tree. Cascades do this on snapshot
	// delete, but the snapshot row itself survives an update.
	for _, table := range []string{"file_records", "chunks", "entities"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE snapshot_id = ?", id); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for _, rec := range snap.Files {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO file_records (snapshot_id, path, content_hash, size_bytes, mod_time) VALUES (?, ?, ?, ?, ?)",
			id, rec.Path, rec.ContentHash, rec.SizeBytes, rec.ModTime)
		if err != nil {
			return fmt.Errorf("failed to insert file record %s: %w", rec.Path, err)
		}
	}

	for i := range chunks {
		c := &chunks[i]
		_, err := tx.ExecContext(ctx,
			"INSERT INTO chunks (snapshot_id, source_path, sequence, start_line, end_line, kind, content, summary) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
			id, c.SourcePath, c.Sequence, c.StartLine, c.EndLine, string(c.Kind), c.Content, c.Summary)
		if err != nil {
			return fmt.Errorf("failed to insert chunk %s: %w", c.ID(), err)
		}
	}

	for i := range entities {
		e := &entities[i]
		_, err := tx.ExecContext(ctx,
			"INSERT INTO entities (snapshot_id, source_path, sequence, kind, name) VALUES (?, ?, ?, ?, ?)",
			id, e.SourcePath, e.Sequence, string(e.Kind), e.Name)
		if err != nil {
			return fmt.Errorf("failed to insert entity %s/%s: %w", e.Kind, e.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}
	return nil
}

// upsertSnapshotRow creates or refreshes the snapshot row and returns its id.
func upsertSnapshotRow(ctx context.Context, q querier, snap *types.IndexSnapshot) (int64, error) {
	now := time.Now()
	var id int64
	err := q.QueryRowContext(ctx, `
		INSERT INTO snapshots (root_path, project_type, last_commit, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(root_path, project_type) DO UPDATE SET
			last_commit = excluded.last_commit,
			updated_at = excluded.updated_at
		RETURNING id
	`, snap.RootPath, snap.ProjectType, snap.LastCommit, now, now).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to upsert snapshot: %w", err)
	}
	return id, nil
}

// DeleteSnapshot removes a snapshot and, via cascades, everything it owns.
func (s *SQLiteStorage) DeleteSnapshot(ctx context.Context, rootPath, projectType string) error {
	result, err := s.db.ExecContext(ctx,
		"DELETE FROM snapshots WHERE root_path = ? AND project_type = ?",
		rootPath, projectType)
	if err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListChunks returns a snapshot's chunks ordered by source path then
// sequence.
func (s *SQLiteStorage) ListChunks(ctx context.Context, rootPath, projectType string) ([]types.ChunkUnit, error) {
	id, err := snapshotID(ctx, s.db, rootPath, projectType)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT source_path, sequence, start_line, end_line, kind, content, summary
		FROM chunks WHERE snapshot_id = ?
		ORDER BY source_path, sequence
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list chunks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var chunks []types.ChunkUnit
	for rows.Next() {
		var c types.ChunkUnit
		var kind string
		if err := rows.Scan(&c.SourcePath, &c.Sequence, &c.StartLine, &c.EndLine, &kind, &c.Content, &c.Summary); err != nil {
			return nil, fmt.Errorf("%w: chunk row: %v", types.ErrSnapshotCorrupt, err)
		}
		c.Kind = types.ChunkKind(kind)
		chunks = append(chunks, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list chunks: %w", err)
	}
	return chunks, nil
}

// ListEntities returns a snapshot's entity anchors ordered by source path
// then owning-chunk sequence.
func (s *SQLiteStorage) ListEntities(ctx context.Context, rootPath, projectType string) ([]types.EntityAnchor, error) {
	id, err := snapshotID(ctx, s.db, rootPath, projectType)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT source_path, sequence, kind, name
		FROM entities WHERE snapshot_id = ?
		ORDER BY source_path, sequence, id
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list entities: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var anchors []types.EntityAnchor
	for rows.Next() {
		var a types.EntityAnchor
		var kind string
		if err := rows.Scan(&a.SourcePath, &a.Sequence, &kind, &a.Name); err != nil {
			return nil, fmt.Errorf("%w: entity row: %v", types.ErrSnapshotCorrupt, err)
		}
		a.Kind = types.EntityKind(kind)
		anchors = append(anchors, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list entities: %w", err)
	}
	return anchors, nil
}

// GetStatus reports counts for one snapshot. A missing snapshot is not an
// error; Exists is false and the counts are zero.
func (s *SQLiteStorage) GetStatus(ctx context.Context, rootPath, projectType string) (*SnapshotStatus, error) {
	status := &SnapshotStatus{
		RootPath:    rootPath,
		ProjectType: projectType,
	}

	var id int64
	err := s.db.QueryRowContext(ctx,
		"SELECT id, last_commit, updated_at FROM snapshots WHERE root_path = ? AND project_type = ?",
		rootPath, projectType).Scan(&id, &status.LastCommit, &status.UpdatedAt)
	if err == sql.ErrNoRows {
		return status, nil
	}
	if err != nil {
		return nil, err
	}
	status.Exists = true

	counts := []struct {
		query string
		dest  *int
	}{
		{"SELECT COUNT(*) FROM file_records WHERE snapshot_id = ?", &status.FileCount},
		{"SELECT COUNT(*) FROM chunks WHERE snapshot_id = ?", &status.ChunkCount},
		{"SELECT COUNT(*) FROM entities WHERE snapshot_id = ?", &status.EntityCount},
	}
	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, c.query, id).Scan(c.dest); err != nil {
			return nil, fmt.Errorf("failed to count rows: %w", err)
		}
	}

	return status, nil
}
