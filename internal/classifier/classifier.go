package classifier

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/codescope/codescope-mcp/internal/profile"
	"github.com/codescope/codescope-mcp/pkg/types"
)

// summaryLineLimit is the maximum summary excerpt length before truncation.
const summaryLineLimit = 80

// Classify splits content into classified chunks using the profile's chunk
// rules. Chunks are returned in source order with sequence numbers assigned
// from zero; line numbers are 1-based and inclusive. Empty content yields no
// chunks.
func Classify(sourcePath, content string, p *profile.Profile) []types.ChunkUnit {
	if content == "" {
		return nil
	}

	lines := strings.Split(content, "\n")
	// A trailing newline produces a phantom empty last line; drop it so
	// EndLine reflects real content.
	if len(lines) > 1 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	var chunks []types.ChunkUnit
	var current []string
	currentKind := types.ChunkFreeform
	currentStart := 1

	flush := func(endLine int) {
		if len(current) == 0 {
			return
		}
		// A blank-only freeform region carries nothing worth indexing.
		if currentKind == types.ChunkFreeform && strings.TrimSpace(strings.Join(current, "\n")) == "" {
			current = nil
			return
		}
		chunks = append(chunks, types.ChunkUnit{
			SourcePath: sourcePath,
			StartLine:  currentStart,
			EndLine:    endLine,
			Kind:       currentKind,
			Content:    strings.Join(current, "\n"),
			Sequence:   len(chunks),
		})
		current = nil
	}

	for i, line := range lines {
		lineNo := i + 1
		if kind, ok := classifyLine(line, p); ok {
			flush(lineNo - 1)
			currentKind = kind
			currentStart = lineNo
		}
		current = append(current, line)
	}
	flush(len(lines))

	for i := range chunks {
		chunks[i].Summary = summarize(&chunks[i], p)
	}
	return chunks
}

// classifyLine returns the kind of the first rule group with a pattern
// matching the line. Group declaration order is the priority order.
func classifyLine(line string, p *profile.Profile) (types.ChunkKind, bool) {
	for _, group := range p.ChunkRules {
		for _, re := range group.Patterns {
			if re.MatchString(line) {
				return group.Kind, true
			}
		}
	}
	return "", false
}

// summarize builds the one-line chunk summary from its first meaningful
// line: the first non-blank line that is not a comment or import.
func summarize(chunk *types.ChunkUnit, p *profile.Profile) string {
	base := filepath.Base(chunk.SourcePath)
	line := firstMeaningfulLine(chunk.Content)
	if line == "" {
		line = "No content"
	}
	// Truncate on rune boundaries so a multi-byte first line stays valid UTF-8.
	if runes := []rune(line); len(runes) > summaryLineLimit {
		line = string(runes[:summaryLineLimit]) + "..."
	}
	return fmt.Sprintf("[%s] From %s: %s", strings.ToUpper(p.Type), base, line)
}

func firstMeaningfulLine(content string) string {
	var firstNonBlank string
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if firstNonBlank == "" {
			firstNonBlank = trimmed
		}
		if strings.HasPrefix(trimmed, "#") ||
			strings.HasPrefix(trimmed, "//") ||
			strings.HasPrefix(trimmed, "/*") ||
			strings.HasPrefix(trimmed, "*") ||
			strings.HasPrefix(trimmed, "import") {
			continue
		}
		return trimmed
	}
	// Comment-only chunks fall back to their first line rather than nothing.
	return firstNonBlank
}
