// Package gitstate reads the version-control position of a project tree.
//
// Commit pointers are an optimization input for staleness checks, never a
// requirement: when git is missing, the directory is not a repository, or
// the command times out, Head returns ErrUnavailable and callers fall back
// to content hashing alone.
package gitstate

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// ErrUnavailable is returned when no commit pointer can be read for a
// directory. It covers missing git, non-repository directories, and command
// failures alike; callers never need to distinguish.
var ErrUnavailable = errors.New("git state unavailable")

// headTimeout bounds the rev-parse call so a hung git (e.g. on a network
// mount) cannot stall an index build.
const headTimeout = 2 * time.Second

// Head returns the full commit hash the working tree at dir is checked out
// at, or ErrUnavailable.
func Head(ctx context.Context, dir string) (string, error) {
	// Cheap pre-check avoids spawning git for plain directories.
	if _, err := os.Stat(filepath.Join(dir, ".git")); err != nil {
		return "", fmt.Errorf("%w: %s is not a repository", ErrUnavailable, dir)
	}

	ctx, cancel := context.WithTimeout(ctx, headTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", "-C", dir, "rev-parse", "HEAD")
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("%w: rev-parse: %v", ErrUnavailable, err)
	}

	head := strings.TrimSpace(string(out))
	if head == "" {
		return "", fmt.Errorf("%w: empty rev-parse output", ErrUnavailable)
	}
	return head, nil
}
