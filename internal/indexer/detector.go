package indexer

import (
	"context"
	"fmt"
	"sort"

	"github.com/codescope/codescope-mcp/internal/gitstate"
	"github.com/codescope/codescope-mcp/internal/profile"
	"github.com/codescope/codescope-mcp/internal/walker"
	"github.com/codescope/codescope-mcp/pkg/types"
)

// Detection is the outcome of a staleness check against the working tree.
type Detection struct {
	Decision types.Decision
	Changes  types.ChangeSet

	// Files is the sorted list of currently tracked relative paths.
	Files []string
	// Records holds the current fingerprint for every path in Files.
	Records map[string]types.FileRecord

	// Head is the current commit, empty when version control is unavailable.
	Head string

	// Warnings collects non-fatal degradations: per-file fingerprint
	// failures (the file is dropped from Files/Records rather than aborting
	// the check) and an unavailable commit pointer.
	Warnings []string
}

// Detect fingerprints the working tree under root and compares it against
// the persisted snapshot. A nil snapshot always yields not_built. The
// commit pointer is consulted as an additional staleness signal when both
// sides have one; it never replaces the hash comparison.
func Detect(ctx context.Context, root string, p *profile.Profile, snap *types.IndexSnapshot, force bool) (*Detection, error) {
	files, err := walker.Walk(root, p)
	if err != nil {
		return nil, err
	}

	det := &Detection{
		Records: make(map[string]types.FileRecord, len(files)),
	}

	if head, err := gitstate.Head(ctx, root); err == nil {
		det.Head = head
	} else {
		det.Warnings = append(det.Warnings, fmt.Sprintf("version control unavailable, relying on content hashes: %v", err))
	}

	for _, rel := range files {
		rec, err := walker.Fingerprint(root, rel)
		if err != nil {
			det.Warnings = append(det.Warnings, fmt.Sprintf("%s: %v", rel, err))
			continue
		}
		det.Files = append(det.Files, rel)
		det.Records[rel] = rec
	}

	if snap == nil {
		det.Decision = types.DecisionNotBuilt
		det.Changes.Added = append([]string(nil), det.Files...)
		return det, nil
	}

	for _, rel := range det.Files {
		prev, tracked := snap.Files[rel]
		cur := det.Records[rel]
		switch {
		case !tracked:
			det.Changes.Added = append(det.Changes.Added, rel)
		case prev.ContentHash != cur.ContentHash || prev.SizeBytes != cur.SizeBytes:
			det.Changes.Modified = append(det.Changes.Modified, rel)
		}
	}
	for rel := range snap.Files {
		if _, present := det.Records[rel]; !present {
			det.Changes.Removed = append(det.Changes.Removed, rel)
		}
	}
	sort.Strings(det.Changes.Removed)

	commitMoved := det.Head != "" && snap.LastCommit != "" && det.Head != snap.LastCommit
	if force || commitMoved || !det.Changes.Empty() {
		det.Decision = types.DecisionStale
	} else {
		det.Decision = types.DecisionFresh
	}
	return det, nil
}
