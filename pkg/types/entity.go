package types

import (
	"errors"
	"fmt"
)

// EntityKind classifies a named anchor extracted from a chunk
type EntityKind string

const (
	EntityScreen    EntityKind = "screen"
	EntityClass     EntityKind = "class"
	EntityFunction  EntityKind = "function"
	EntityComponent EntityKind = "component"
)

// EntityAnchor is a named identifier pulled from a chunk's text, used for
// cross-file relationship indexing. Anchors are derived data: they are never
// persisted independently of their owning chunk.
type EntityAnchor struct {
	SourcePath string // Owning chunk's source path
	Sequence   int    // Owning chunk's sequence index
	Kind       EntityKind
	Name       string
}

// ChunkID returns the identity of the owning chunk.
func (e *EntityAnchor) ChunkID() string {
	return fmt.Sprintf("%s#%d", e.SourcePath, e.Sequence)
}

// Validate checks the anchor's invariants.
func (e *EntityAnchor) Validate() error {
	if e.Name == "" {
		return errors.New("anchor name is required")
	}
	if e.SourcePath == "" {
		return errors.New("anchor source path is required")
	}
	switch e.Kind {
	case EntityScreen, EntityClass, EntityFunction, EntityComponent:
	default:
		return fmt.Errorf("invalid entity kind %q", e.Kind)
	}
	return nil
}
