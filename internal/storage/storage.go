package storage

import (
	"context"
	"time"

	"github.com/codescope/codescope-mcp/pkg/types"
)

// Storage defines the interface for persisting and querying index snapshots
type Storage interface {
	// Snapshot operations
	GetSnapshot(ctx context.Context, rootPath, projectType string) (*types.IndexSnapshot, error)
	SaveSnapshot(ctx context.Context, snap *types.IndexSnapshot, chunks []types.ChunkUnit, entities []types.EntityAnchor) error
	DeleteSnapshot(ctx context.Context, rootPath, projectType string) error

	// Derived-data reads
	ListChunks(ctx context.Context, rootPath, projectType string) ([]types.ChunkUnit, error)
	ListEntities(ctx context.Context, rootPath, projectType string) ([]types.EntityAnchor, error)

	// Status operations
	GetStatus(ctx context.Context, rootPath, projectType string) (*SnapshotStatus, error)

	// Database operations
	Close() error
}

// SnapshotStatus summarizes one persisted snapshot for reporting.
type SnapshotStatus struct {
	Exists      bool
	RootPath    string
	ProjectType string
	FileCount   int
	ChunkCount  int
	EntityCount int
	LastCommit  string
	UpdatedAt   time.Time
}
