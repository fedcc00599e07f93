package types

import (
	"errors"
	"fmt"
)

// ChunkKind classifies the structural region a chunk covers
type ChunkKind string

const (
	ChunkClass      ChunkKind = "class"
	ChunkFunction   ChunkKind = "function"
	ChunkImport     ChunkKind = "import"
	ChunkAnnotation ChunkKind = "annotation"
	ChunkTypeDecl   ChunkKind = "type"
	ChunkComponent  ChunkKind = "component"
	ChunkDecorator  ChunkKind = "decorator"
	ChunkStyle      ChunkKind = "style"
	ChunkFreeform   ChunkKind = "freeform"
)

// ChunkUnit is a contiguous, typed region of a source file produced by the
// structural classifier. Units are immutable once produced; a re-index
// supersedes them rather than mutating in place.
type ChunkUnit struct {
	// Location
	SourcePath string // Relative to project root
	StartLine  int    // 1-based, inclusive
	EndLine    int    // 1-based, inclusive

	// Content
	Kind    ChunkKind
	Content string
	Summary string // "[ANDROID] From MainActivity.kt: class MainActivity ..."

	// Sequence is the unit's rank within its file, assigned top to bottom
	// starting at 0. (SourcePath, Sequence) is the stable chunk identity.
	Sequence int
}

// ID returns the stable chunk identity used by downstream relationship links.
func (c *ChunkUnit) ID() string {
	return fmt.Sprintf("%s#%d", c.SourcePath, c.Sequence)
}

// LineCount returns the number of source lines the chunk spans.
func (c *ChunkUnit) LineCount() int {
	return c.EndLine - c.StartLine + 1
}

// Validate checks the structural invariants of the chunk.
func (c *ChunkUnit) Validate() error {
	if c.SourcePath == "" {
		return errors.New("chunk source path is required")
	}
	if c.Content == "" {
		return ErrEmptyContent
	}
	if c.StartLine <= 0 || c.EndLine <= 0 {
		return errors.New("line numbers must be positive")
	}
	if c.StartLine > c.EndLine {
		return errors.New("start line must be before or equal to end line")
	}
	if c.Sequence < 0 {
		return errors.New("sequence index must be non-negative")
	}
	switch c.Kind {
	case ChunkClass, ChunkFunction, ChunkImport, ChunkAnnotation,
		ChunkTypeDecl, ChunkComponent, ChunkDecorator, ChunkStyle, ChunkFreeform:
	default:
		return fmt.Errorf("invalid chunk kind %q", c.Kind)
	}
	return nil
}
