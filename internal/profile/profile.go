package profile

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/codescope/codescope-mcp/pkg/types"
)

// TypeUnknown is the sentinel returned when no profile's indicators match.
const TypeUnknown = "unknown"

var (
	// ErrProfileNotFound is returned for a type id with no registered profile.
	// Callers must fall back explicitly; the registry never substitutes
	// another language's rules.
	ErrProfileNotFound = errors.New("profile not found")

	// ErrPatternCompile is returned when a profile definition carries a
	// malformed pattern. Fatal at registry load.
	ErrPatternCompile = errors.New("pattern compile failed")
)

// ChunkRuleDef declares one chunk kind's boundary patterns as raw strings.
type ChunkRuleDef struct {
	Kind     types.ChunkKind
	Patterns []string
}

// EntityRuleDef declares one entity kind's extraction patterns. Each pattern
// must carry at least one capture group naming the anchor.
type EntityRuleDef struct {
	Kind     types.EntityKind
	Patterns []string
}

// Definition is the raw, data-only form of a profile. Definitions are
// compiled into Profiles by the registry; the declared order of rule groups
// and patterns is the matching priority order.
type Definition struct {
	Type               string
	Extensions         []string
	PriorityFiles      []string
	PriorityExtensions []string
	IgnorePatterns     []string
	Indicators         []string
	ChunkRules         []ChunkRuleDef
	EntityRules        []EntityRuleDef
	SummaryKeywords    []string
}

// ChunkRuleGroup is a compiled chunk-kind pattern group.
type ChunkRuleGroup struct {
	Kind     types.ChunkKind
	Patterns []*regexp.Regexp
}

// EntityRuleGroup is a compiled entity-kind pattern group.
type EntityRuleGroup struct {
	Kind     types.EntityKind
	Patterns []*regexp.Regexp
}

// Profile is the compiled, immutable rule set for one project type. One
// instance exists per supported type for the process lifetime, owned by the
// registry.
type Profile struct {
	Type               string
	Extensions         []string
	PriorityFiles      []string
	PriorityExtensions []string
	IgnorePatterns     []string
	Indicators         []string
	ChunkRules         []ChunkRuleGroup
	EntityRules        []EntityRuleGroup
	SummaryKeywords    []string

	extSet map[string]bool
}

// compile turns a Definition into a Profile, rejecting malformed patterns.
func compile(def Definition) (*Profile, error) {
	p := &Profile{
		Type:               def.Type,
		Extensions:         def.Extensions,
		PriorityFiles:      def.PriorityFiles,
		PriorityExtensions: def.PriorityExtensions,
		IgnorePatterns:     def.IgnorePatterns,
		Indicators:         def.Indicators,
		SummaryKeywords:    def.SummaryKeywords,
		extSet:             make(map[string]bool, len(def.Extensions)),
	}
	for _, ext := range def.Extensions {
		p.extSet[strings.ToLower(ext)] = true
	}

	for _, group := range def.ChunkRules {
		compiled := ChunkRuleGroup{Kind: group.Kind}
		for _, pat := range group.Patterns {
			re, err := regexp.Compile(pat)
			if err != nil {
				return nil, fmt.Errorf("%w: profile %q chunk kind %q pattern %q: %v",
					ErrPatternCompile, def.Type, group.Kind, pat, err)
			}
			compiled.Patterns = append(compiled.Patterns, re)
		}
		p.ChunkRules = append(p.ChunkRules, compiled)
	}

	for _, group := range def.EntityRules {
		compiled := EntityRuleGroup{Kind: group.Kind}
		for _, pat := range group.Patterns {
			re, err := regexp.Compile(pat)
			if err != nil {
				return nil, fmt.Errorf("%w: profile %q entity kind %q pattern %q: %v",
					ErrPatternCompile, def.Type, group.Kind, pat, err)
			}
			compiled.Patterns = append(compiled.Patterns, re)
		}
		p.EntityRules = append(p.EntityRules, compiled)
	}

	return p, nil
}

// MatchesExtension reports whether the path's extension is tracked by this
// profile.
func (p *Profile) MatchesExtension(path string) bool {
	return p.extSet[strings.ToLower(filepath.Ext(path))]
}

// IsIgnored reports whether the relative path matches any of the profile's
// ignore patterns. Patterns ending in "/" match a directory name anywhere in
// the path; patterns containing "*" glob against the base name and the full
// relative path; plain patterns match a path segment exactly.
func (p *Profile) IsIgnored(relPath string) bool {
	rel := filepath.ToSlash(relPath)
	segments := strings.Split(rel, "/")
	base := segments[len(segments)-1]

	for _, pattern := range p.IgnorePatterns {
		switch {
		case strings.HasSuffix(pattern, "/"):
			dir := strings.TrimSuffix(pattern, "/")
			for _, seg := range segments {
				if seg == dir {
					return true
				}
				if strings.Contains(dir, "*") {
					if ok, _ := filepath.Match(dir, seg); ok {
						return true
					}
				}
			}
		case strings.Contains(pattern, "*"):
			if ok, _ := filepath.Match(pattern, base); ok {
				return true
			}
			if ok, _ := filepath.Match(pattern, rel); ok {
				return true
			}
		default:
			for _, seg := range segments {
				if seg == pattern {
					return true
				}
			}
		}
	}
	return false
}

// IsPriorityPath reports whether the path names one of the profile's
// priority files or carries a priority extension. Used for status ordering,
// never for inclusion decisions.
func (p *Profile) IsPriorityPath(relPath string) bool {
	base := strings.ToLower(filepath.Base(relPath))
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	for _, name := range p.PriorityFiles {
		if strings.Contains(stem, strings.ToLower(name)) {
			return true
		}
	}
	ext := strings.ToLower(filepath.Ext(relPath))
	for _, pext := range p.PriorityExtensions {
		if ext == strings.ToLower(pext) {
			return true
		}
	}
	return false
}
