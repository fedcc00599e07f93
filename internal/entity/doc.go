// Package entity extracts named anchors (screens, classes, functions,
// components) from classified chunks.
//
// Extraction runs a profile's entity rule groups over a chunk's content in
// declaration order. Each pattern must carry a capture group naming the
// anchor; the first non-empty group of each match supplies the name.
// Duplicate (kind, name) pairs within one chunk collapse to the first
// occurrence, so a class mentioned five times anchors once.
package entity
