// Package indexer coordinates the index pipeline: detect staleness, walk
// and fingerprint the tree, classify chunks, extract entities, persist.
//
// # Staleness
//
// Detect compares the working tree against the persisted snapshot and
// classifies it as not_built, fresh, or stale, along with the
// added/modified/removed diff. A commit pointer, when available, is an extra
// staleness signal only; the hash comparison always runs, because working
// tree edits do not move HEAD.
//
// # Rebuilds
//
// EnsureFresh is the single entry point callers use. On fresh it returns
// the decision without recomputing anything. On stale or not_built it
// re-classifies every tracked file — not just the changed ones — with a
// bounded worker pool, merges results in sorted path order so sequence
// assignment is reproducible, and persists the new snapshot in one
// transaction. The previous snapshot stays valid until that transaction
// commits.
//
// Unreadable files are skipped with a recorded warning and left out of the
// new snapshot; they never abort the build.
package indexer
