package types

import "errors"

// Domain errors shared across packages
var (
	// ErrSnapshotCorrupt is returned when persisted snapshot state cannot be
	// decoded. Callers recover by treating the project as not built.
	ErrSnapshotCorrupt = errors.New("snapshot corrupt")

	// ErrEmptyContent is returned when a chunk or anchor carries no text.
	ErrEmptyContent = errors.New("content cannot be empty")
)
