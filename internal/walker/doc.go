// Package walker enumerates the files a project type tracks and fingerprints
// their content.
//
// Walk applies a profile's extension filter and ignore patterns while
// traversing, skips hidden directories, and returns slash-separated paths
// relative to the project root in lexicographic order. The sorted order is
// what makes index builds reproducible: two walks of an unchanged tree yield
// identical lists.
//
// Fingerprint hashes file content with SHA-256 and records size and mtime.
// Hash plus size is the staleness baseline; mtime is informational only.
package walker
