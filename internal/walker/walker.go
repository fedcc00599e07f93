package walker

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/codescope/codescope-mcp/internal/profile"
	"github.com/codescope/codescope-mcp/pkg/types"
)

// Walk enumerates the files under root that the profile tracks. Hidden
// directories and the profile's ignored paths are pruned during traversal;
// files whose extension the profile does not list are dropped. The returned
// paths are slash-separated, relative to root, and sorted.
func Walk(root string, p *profile.Profile) ([]string, error) {
	var files []string

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)
		if rel == "." {
			return nil
		}

		if info.IsDir() {
			if strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			if p.IsIgnored(rel) {
				return filepath.SkipDir
			}
			return nil
		}

		if !info.Mode().IsRegular() {
			return nil
		}
		if strings.HasPrefix(info.Name(), ".") {
			return nil
		}
		if p.IsIgnored(rel) {
			return nil
		}
		if !p.MatchesExtension(rel) {
			return nil
		}

		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	sort.Strings(files)
	return files, nil
}

// Fingerprint hashes the file at root/rel and returns its staleness record.
func Fingerprint(root, rel string) (types.FileRecord, error) {
	path := filepath.Join(root, filepath.FromSlash(rel))

	file, err := os.Open(path)
	if err != nil {
		return types.FileRecord{}, err
	}
	defer func() { _ = file.Close() }()

	info, err := file.Stat()
	if err != nil {
		return types.FileRecord{}, err
	}

	hash := sha256.New()
	if _, err := io.Copy(hash, file); err != nil {
		return types.FileRecord{}, fmt.Errorf("hash %s: %w", rel, err)
	}

	return types.FileRecord{
		Path:        rel,
		ContentHash: hex.EncodeToString(hash.Sum(nil)),
		SizeBytes:   info.Size(),
		ModTime:     info.ModTime(),
	}, nil
}
