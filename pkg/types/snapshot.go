package types

import "time"

// FileRecord is the staleness baseline for a single tracked file. It is
// replaced wholesale when the file is successfully re-indexed.
type FileRecord struct {
	Path        string // Relative to project root
	ContentHash string // Lowercase hex SHA-256
	SizeBytes   int64
	ModTime     time.Time
}

// IndexSnapshot is the persisted state of one (project_dir, project_type)
// pair. It survives process restarts and is the sole input to staleness
// decisions across invocations.
type IndexSnapshot struct {
	RootPath    string
	ProjectType string
	Files       map[string]FileRecord // Keyed by relative path

	// LastCommit is the version-control commit the tree was at when the
	// snapshot was written. Empty when version control was unavailable.
	LastCommit string
}

// Decision is the outcome of a staleness check
type Decision string

const (
	// DecisionNotBuilt means no snapshot exists; everything must be built.
	DecisionNotBuilt Decision = "not_built"
	// DecisionFresh means the persisted index matches the working tree.
	DecisionFresh Decision = "fresh"
	// DecisionStale means at least one tracked file diverged (or force was set).
	DecisionStale Decision = "stale"
)

// ChangeSet names the paths that diverged between a snapshot and the
// current working tree.
type ChangeSet struct {
	Added    []string
	Modified []string
	Removed  []string
}

// Empty reports whether no path diverged.
func (c *ChangeSet) Empty() bool {
	return len(c.Added) == 0 && len(c.Modified) == 0 && len(c.Removed) == 0
}

// Total returns the number of diverged paths.
func (c *ChangeSet) Total() int {
	return len(c.Added) + len(c.Modified) + len(c.Removed)
}
