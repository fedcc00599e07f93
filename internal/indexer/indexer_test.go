package indexer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codescope/codescope-mcp/internal/profile"
	"github.com/codescope/codescope-mcp/internal/storage"
	"github.com/codescope/codescope-mcp/pkg/types"
)

func newTestOrchestrator(t *testing.T) *Orchestrator {
	t.Helper()
	store, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "index.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return New(profile.Default(), store)
}

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// newAndroidProject seeds a directory that detects as android.
func newAndroidProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, root, "AndroidManifest.xml", "<manifest/>")
	writeFile(t, root, "app/src/MainActivity.kt", `package com.example

class MainActivity : AppCompatActivity() {
    override fun onCreate(savedInstanceState: Bundle?) {
    }
}
`)
	writeFile(t, root, "app/src/Util.kt", "object Util {\n    fun now() = 0L\n}\n")
	return root
}

func TestSetWorkers(t *testing.T) {
	orch := newTestOrchestrator(t)

	orch.SetWorkers(2)
	assert.Equal(t, 2, orch.workers)

	orch.SetWorkers(0)
	assert.Equal(t, 2, orch.workers, "non-positive values keep the current default")

	result, err := orch.EnsureFresh(context.Background(), newAndroidProject(t), nil)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Stats.FilesIndexed)
}

func TestEnsureFreshFirstBuild(t *testing.T) {
	orch := newTestOrchestrator(t)
	root := newAndroidProject(t)

	result, err := orch.EnsureFresh(context.Background(), root, nil)
	require.NoError(t, err)

	assert.Equal(t, "android", result.ProjectType)
	assert.Equal(t, types.DecisionNotBuilt, result.Decision)
	assert.NotEmpty(t, result.Chunks)
	assert.NotEmpty(t, result.Entities)
	require.NotNil(t, result.Snapshot)
	assert.Len(t, result.Snapshot.Files, 3)
	assert.Equal(t, 3, result.Stats.FilesIndexed)
	assert.Zero(t, result.Stats.FilesFailed)

	// Everything is "added" on a first build
	assert.Len(t, result.Changes.Added, 3)
}

func TestEnsureFreshIdempotent(t *testing.T) {
	orch := newTestOrchestrator(t)
	root := newAndroidProject(t)
	ctx := context.Background()

	first, err := orch.EnsureFresh(ctx, root, nil)
	require.NoError(t, err)
	require.Equal(t, types.DecisionNotBuilt, first.Decision)

	second, err := orch.EnsureFresh(ctx, root, nil)
	require.NoError(t, err)
	assert.Equal(t, types.DecisionFresh, second.Decision)
	assert.Nil(t, second.Chunks, "fresh decision recomputes nothing")
	assert.Nil(t, second.Entities)
	assert.True(t, second.Changes.Empty())
}

func TestEnsureFreshDeterministic(t *testing.T) {
	root := newAndroidProject(t)
	ctx := context.Background()

	// Two independent orchestrators over the same unmodified tree must
	// produce identical chunk sequences.
	first, err := newTestOrchestrator(t).EnsureFresh(ctx, root, nil)
	require.NoError(t, err)
	second, err := newTestOrchestrator(t).EnsureFresh(ctx, root, nil)
	require.NoError(t, err)

	assert.Equal(t, first.Chunks, second.Chunks)
	assert.Equal(t, first.Entities, second.Entities)
}

func TestEnsureFreshDetectsModification(t *testing.T) {
	orch := newTestOrchestrator(t)
	root := newAndroidProject(t)
	ctx := context.Background()

	_, err := orch.EnsureFresh(ctx, root, nil)
	require.NoError(t, err)

	writeFile(t, root, "app/src/Util.kt", "object Util {\n    fun now() = 1L\n}\n")

	result, err := orch.EnsureFresh(ctx, root, nil)
	require.NoError(t, err)
	assert.Equal(t, types.DecisionStale, result.Decision)
	assert.Equal(t, []string{"app/src/Util.kt"}, result.Changes.Modified)
	assert.Empty(t, result.Changes.Added)
	assert.Empty(t, result.Changes.Removed)
	assert.NotEmpty(t, result.Chunks)
}

func TestEnsureFreshDetectsAddAndRemove(t *testing.T) {
	orch := newTestOrchestrator(t)
	root := newAndroidProject(t)
	ctx := context.Background()

	_, err := orch.EnsureFresh(ctx, root, nil)
	require.NoError(t, err)

	writeFile(t, root, "app/src/New.kt", "class New {}\n")
	require.NoError(t, os.Remove(filepath.Join(root, "app", "src", "Util.kt")))

	result, err := orch.EnsureFresh(ctx, root, nil)
	require.NoError(t, err)
	assert.Equal(t, types.DecisionStale, result.Decision)
	assert.Equal(t, []string{"app/src/New.kt"}, result.Changes.Added)
	assert.Equal(t, []string{"app/src/Util.kt"}, result.Changes.Removed)

	require.NotNil(t, result.Snapshot)
	_, tracked := result.Snapshot.Files["app/src/Util.kt"]
	assert.False(t, tracked, "removed file leaves the snapshot")
}

func TestEnsureFreshForceRebuild(t *testing.T) {
	orch := newTestOrchestrator(t)
	root := newAndroidProject(t)
	ctx := context.Background()

	first, err := orch.EnsureFresh(ctx, root, nil)
	require.NoError(t, err)

	result, err := orch.EnsureFresh(ctx, root, &Options{Force: true})
	require.NoError(t, err)
	assert.Equal(t, types.DecisionStale, result.Decision)
	assert.True(t, result.Changes.Empty(), "force alone reports no diff")
	assert.Equal(t, first.Chunks, result.Chunks, "unchanged tree rebuilds to identical content")
}

func TestEnsureFreshRespectsIgnoreRules(t *testing.T) {
	orch := newTestOrchestrator(t)
	root := newAndroidProject(t)
	writeFile(t, root, "app/build/gen/R.java", "class R {}")

	result, err := orch.EnsureFresh(context.Background(), root, nil)
	require.NoError(t, err)

	_, tracked := result.Snapshot.Files["app/build/gen/R.java"]
	assert.False(t, tracked)
	for _, c := range result.Chunks {
		assert.NotEqual(t, "app/build/gen/R.java", c.SourcePath)
	}
}

func TestEnsureFreshEmptyFile(t *testing.T) {
	orch := newTestOrchestrator(t)
	root := t.TempDir()
	writeFile(t, root, "AndroidManifest.xml", "<manifest/>")
	writeFile(t, root, "Empty.kt", "")
	ctx := context.Background()

	result, err := orch.EnsureFresh(ctx, root, nil)
	require.NoError(t, err)
	assert.Equal(t, types.DecisionNotBuilt, result.Decision)
	for _, c := range result.Chunks {
		assert.NotEqual(t, "Empty.kt", c.SourcePath, "empty file yields no chunks")
	}
	_, tracked := result.Snapshot.Files["Empty.kt"]
	assert.True(t, tracked, "empty file is still fingerprinted")

	second, err := orch.EnsureFresh(ctx, root, nil)
	require.NoError(t, err)
	assert.Equal(t, types.DecisionFresh, second.Decision)
}

func TestEnsureFreshProjectTypeOverride(t *testing.T) {
	orch := newTestOrchestrator(t)
	root := t.TempDir()
	writeFile(t, root, "AndroidManifest.xml", "<manifest/>")
	writeFile(t, root, "tool.py", "def main():\n    pass\n")

	result, err := orch.EnsureFresh(context.Background(), root, &Options{ProjectType: "python"})
	require.NoError(t, err)
	assert.Equal(t, "python", result.ProjectType)

	_, tracked := result.Snapshot.Files["tool.py"]
	assert.True(t, tracked)
}

func TestEnsureFreshUnknownType(t *testing.T) {
	orch := newTestOrchestrator(t)
	root := t.TempDir()
	writeFile(t, root, "README", "no indicators here")

	_, err := orch.EnsureFresh(context.Background(), root, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, profile.ErrProfileNotFound)
}

func TestEnsureFreshMissingDirectory(t *testing.T) {
	orch := newTestOrchestrator(t)

	_, err := orch.EnsureFresh(context.Background(), "/no/such/dir", nil)
	require.Error(t, err)
}

func TestEnsureFreshSkipsUnreadableFile(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("permission bits are ignored when running as root")
	}
	orch := newTestOrchestrator(t)
	root := newAndroidProject(t)
	writeFile(t, root, "app/src/Locked.kt", "class Locked {}\n")
	require.NoError(t, os.Chmod(filepath.Join(root, "app", "src", "Locked.kt"), 0o000))

	result, err := orch.EnsureFresh(context.Background(), root, nil)
	require.NoError(t, err)

	assert.NotEmpty(t, result.Warnings)
	_, tracked := result.Snapshot.Files["app/src/Locked.kt"]
	assert.False(t, tracked, "unreadable file is excluded from the snapshot")
}

func TestEnsureFreshConcurrentBuildRejected(t *testing.T) {
	orch := newTestOrchestrator(t)

	require.True(t, orch.lock.TryAcquire())
	defer orch.lock.Release()

	_, err := orch.EnsureFresh(context.Background(), t.TempDir(), nil)
	assert.ErrorIs(t, err, ErrIndexingInProgress)
}

func TestDetectNilSnapshot(t *testing.T) {
	root := newAndroidProject(t)
	p, err := profile.Default().Get("android")
	require.NoError(t, err)

	det, err := Detect(context.Background(), root, p, nil, false)
	require.NoError(t, err)
	assert.Equal(t, types.DecisionNotBuilt, det.Decision)
	assert.Len(t, det.Files, 3)
	assert.Equal(t, det.Files, det.Changes.Added)
}

func TestDetectWarnsWithoutVersionControl(t *testing.T) {
	root := newAndroidProject(t)
	p, err := profile.Default().Get("android")
	require.NoError(t, err)

	det, err := Detect(context.Background(), root, p, nil, false)
	require.NoError(t, err)
	assert.Empty(t, det.Head)

	require.NotEmpty(t, det.Warnings)
	assert.Contains(t, det.Warnings[0], "version control unavailable")
}

func TestDetectFreshAfterSnapshot(t *testing.T) {
	root := newAndroidProject(t)
	p, err := profile.Default().Get("android")
	require.NoError(t, err)
	ctx := context.Background()

	det, err := Detect(ctx, root, p, nil, false)
	require.NoError(t, err)

	snap := &types.IndexSnapshot{
		RootPath:    root,
		ProjectType: "android",
		Files:       det.Records,
		LastCommit:  det.Head,
	}

	again, err := Detect(ctx, root, p, snap, false)
	require.NoError(t, err)
	assert.Equal(t, types.DecisionFresh, again.Decision)
	assert.True(t, again.Changes.Empty())

	forced, err := Detect(ctx, root, p, snap, true)
	require.NoError(t, err)
	assert.Equal(t, types.DecisionStale, forced.Decision)
}
