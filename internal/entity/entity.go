package entity

import (
	"github.com/codescope/codescope-mcp/internal/profile"
	"github.com/codescope/codescope-mcp/pkg/types"
)

// Extract returns the entity anchors found in the chunk, in rule-group then
// match order, deduplicated by (kind, name). A chunk with no matches yields
// nil.
func Extract(chunk *types.ChunkUnit, p *profile.Profile) []types.EntityAnchor {
	var anchors []types.EntityAnchor
	seen := make(map[string]bool)

	for _, group := range p.EntityRules {
		for _, re := range group.Patterns {
			for _, match := range re.FindAllStringSubmatch(chunk.Content, -1) {
				name := firstCaptured(match)
				if name == "" {
					continue
				}
				key := string(group.Kind) + "\x00" + name
				if seen[key] {
					continue
				}
				seen[key] = true
				anchors = append(anchors, types.EntityAnchor{
					SourcePath: chunk.SourcePath,
					Sequence:   chunk.Sequence,
					Kind:       group.Kind,
					Name:       name,
				})
			}
		}
	}
	return anchors
}

// ExtractAll runs Extract over every chunk and concatenates the results in
// chunk order.
func ExtractAll(chunks []types.ChunkUnit, p *profile.Profile) []types.EntityAnchor {
	var anchors []types.EntityAnchor
	for i := range chunks {
		anchors = append(anchors, Extract(&chunks[i], p)...)
	}
	return anchors
}

// firstCaptured returns the first non-empty capture group of a submatch.
func firstCaptured(match []string) string {
	for _, group := range match[1:] {
		if group != "" {
			return group
		}
	}
	return ""
}
