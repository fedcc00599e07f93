// Package classifier turns raw file content into ordered, classified chunks
// using a profile's pattern groups.
//
// Classification is a single line scan. A line matching any chunk pattern is
// a boundary: it closes the chunk in progress and opens a new one with the
// matching group's kind. When a line satisfies patterns from more than one
// group, the group declared first in the profile wins. Lines before the
// first boundary become a freeform chunk, so no content is ever dropped.
//
// Chunks carry a one-line summary ("[ANDROID] From MainActivity.kt: class
// MainActivity ...") built from the first meaningful line of the chunk,
// skipping blank lines and comment/import noise.
package classifier
