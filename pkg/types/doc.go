// Package types contains the shared domain model for the indexing core:
// chunks, entity anchors, file records, and the persisted index snapshot.
//
// These types are used across all internal packages and form the contract
// with the external embedding/vector-store pipeline. They carry no behavior
// beyond validation and identity helpers.
//
// # Chunk Identity
//
// A chunk is identified by its source path and its sequence index within
// that file:
//
//	id := chunk.ID() // "app/src/MainActivity.kt#3"
//
// The pair is stable under edits elsewhere in the file: it changes only
// when a chunk is inserted, removed, or reordered above it. Downstream
// relationship links key off this identity.
//
// # Snapshots
//
// IndexSnapshot is the persisted staleness baseline: one FileRecord per
// tracked file plus an optional last-indexed commit pointer. It is loaded
// at the start of an ensure-fresh cycle and replaced wholesale after a
// successful rebuild.
package types
