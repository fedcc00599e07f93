// Package profile holds the per-project-type rule sets that drive chunk
// classification and entity extraction, plus project-type auto-detection.
//
// A profile is pure data: file extensions, ignore globs, detection
// indicators, ordered chunk-pattern groups, entity-anchor patterns, and
// priority/summary metadata. Profiles are declared as Definitions (raw
// pattern strings) and compiled once at registry construction; a malformed
// pattern fails the whole registry load, since a broken profile cannot
// safely classify anything.
//
// Detection is indicator-based: the first registered profile with at least
// one indicator file present in the project directory wins. A directory
// satisfying indicators for two profiles resolves to whichever is registered
// first; this ambiguity is a documented limitation, not resolved by
// heuristics.
package profile
