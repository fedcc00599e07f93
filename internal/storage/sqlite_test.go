package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codescope/codescope-mcp/pkg/types"
)

func createTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func testSnapshot(root string) *types.IndexSnapshot {
	return &types.IndexSnapshot{
		RootPath:    root,
		ProjectType: "android",
		Files: map[string]types.FileRecord{
			"app/MainActivity.kt": {
				Path:        "app/MainActivity.kt",
				ContentHash: "aa11",
				SizeBytes:   120,
				ModTime:     time.Now().Truncate(time.Second),
			},
			"README.md": {
				Path:        "README.md",
				ContentHash: "bb22",
				SizeBytes:   40,
			},
		},
		LastCommit: "deadbeef",
	}
}

func testChunks() []types.ChunkUnit {
	return []types.ChunkUnit{
		{SourcePath: "app/MainActivity.kt", StartLine: 1, EndLine: 3, Kind: types.ChunkClass, Content: "class MainActivity {}", Summary: "[ANDROID] From MainActivity.kt: class MainActivity {}", Sequence: 0},
		{SourcePath: "app/MainActivity.kt", StartLine: 4, EndLine: 6, Kind: types.ChunkFunction, Content: "fun onCreate() {}", Summary: "[ANDROID] From MainActivity.kt: fun onCreate() {}", Sequence: 1},
		{SourcePath: "README.md", StartLine: 1, EndLine: 2, Kind: types.ChunkFreeform, Content: "# readme", Summary: "[ANDROID] From README.md: # readme", Sequence: 0},
	}
}

func testEntities() []types.EntityAnchor {
	return []types.EntityAnchor{
		{SourcePath: "app/MainActivity.kt", Sequence: 0, Kind: types.EntityScreen, Name: "MainActivity"},
		{SourcePath: "app/MainActivity.kt", Sequence: 0, Kind: types.EntityClass, Name: "MainActivity"},
		{SourcePath: "app/MainActivity.kt", Sequence: 1, Kind: types.EntityFunction, Name: "onCreate"},
	}
}

func TestGetSnapshotNotFound(t *testing.T) {
	store := createTestStorage(t)

	_, err := store.GetSnapshot(context.Background(), "/nowhere", "android")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSaveAndGetSnapshot(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()
	snap := testSnapshot("/proj")

	require.NoError(t, store.SaveSnapshot(ctx, snap, testChunks(), testEntities()))

	loaded, err := store.GetSnapshot(ctx, "/proj", "android")
	require.NoError(t, err)
	assert.Equal(t, "/proj", loaded.RootPath)
	assert.Equal(t, "android", loaded.ProjectType)
	assert.Equal(t, "deadbeef", loaded.LastCommit)
	require.Len(t, loaded.Files, 2)
	assert.Equal(t, "aa11", loaded.Files["app/MainActivity.kt"].ContentHash)
	assert.Equal(t, int64(120), loaded.Files["app/MainActivity.kt"].SizeBytes)
}

func TestSaveSnapshotReplacesPrevious(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SaveSnapshot(ctx, testSnapshot("/proj"), testChunks(), testEntities()))

	// Second build: one file gone, commit moved
	snap := &types.IndexSnapshot{
		RootPath:    "/proj",
		ProjectType: "android",
		Files: map[string]types.FileRecord{
			"README.md": {Path: "README.md", ContentHash: "cc33", SizeBytes: 44},
		},
		LastCommit: "feedface",
	}
	chunks := []types.ChunkUnit{
		{SourcePath: "README.md", StartLine: 1, EndLine: 1, Kind: types.ChunkFreeform, Content: "# readme v2", Sequence: 0},
	}

	require.NoError(t, store.SaveSnapshot(ctx, snap, chunks, nil))

	loaded, err := store.GetSnapshot(ctx, "/proj", "android")
	require.NoError(t, err)
	assert.Equal(t, "feedface", loaded.LastCommit)
	require.Len(t, loaded.Files, 1)
	assert.Equal(t, "cc33", loaded.Files["README.md"].ContentHash)

	gotChunks, err := store.ListChunks(ctx, "/proj", "android")
	require.NoError(t, err)
	require.Len(t, gotChunks, 1)
	assert.Equal(t, "# readme v2", gotChunks[0].Content)

	gotEntities, err := store.ListEntities(ctx, "/proj", "android")
	require.NoError(t, err)
	assert.Empty(t, gotEntities)
}

func TestSnapshotsIsolatedByType(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	android := testSnapshot("/proj")
	require.NoError(t, store.SaveSnapshot(ctx, android, testChunks(), nil))

	python := &types.IndexSnapshot{
		RootPath:    "/proj",
		ProjectType: "python",
		Files: map[string]types.FileRecord{
			"main.py": {Path: "main.py", ContentHash: "dd44", SizeBytes: 10},
		},
	}
	require.NoError(t, store.SaveSnapshot(ctx, python, nil, nil))

	loaded, err := store.GetSnapshot(ctx, "/proj", "android")
	require.NoError(t, err)
	assert.Len(t, loaded.Files, 2)

	loaded, err = store.GetSnapshot(ctx, "/proj", "python")
	require.NoError(t, err)
	assert.Len(t, loaded.Files, 1)
}

func TestListChunksOrdered(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SaveSnapshot(ctx, testSnapshot("/proj"), testChunks(), nil))

	chunks, err := store.ListChunks(ctx, "/proj", "android")
	require.NoError(t, err)
	require.Len(t, chunks, 3)
	assert.Equal(t, "README.md#0", chunks[0].ID())
	assert.Equal(t, "app/MainActivity.kt#0", chunks[1].ID())
	assert.Equal(t, "app/MainActivity.kt#1", chunks[2].ID())
	assert.Equal(t, types.ChunkClass, chunks[1].Kind)
	assert.Equal(t, "[ANDROID] From MainActivity.kt: fun onCreate() {}", chunks[2].Summary)
}

func TestListEntities(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SaveSnapshot(ctx, testSnapshot("/proj"), testChunks(), testEntities()))

	anchors, err := store.ListEntities(ctx, "/proj", "android")
	require.NoError(t, err)
	require.Len(t, anchors, 3)
	assert.Equal(t, types.EntityScreen, anchors[0].Kind)
	assert.Equal(t, "MainActivity", anchors[0].Name)
	assert.Equal(t, "app/MainActivity.kt#0", anchors[0].ChunkID())
}

func TestListChunksMissingSnapshot(t *testing.T) {
	store := createTestStorage(t)

	_, err := store.ListChunks(context.Background(), "/nowhere", "android")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteSnapshot(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SaveSnapshot(ctx, testSnapshot("/proj"), testChunks(), testEntities()))
	require.NoError(t, store.DeleteSnapshot(ctx, "/proj", "android"))

	_, err := store.GetSnapshot(ctx, "/proj", "android")
	assert.ErrorIs(t, err, ErrNotFound)

	err = store.DeleteSnapshot(ctx, "/proj", "android")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetStatus(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	status, err := store.GetStatus(ctx, "/proj", "android")
	require.NoError(t, err)
	assert.False(t, status.Exists)
	assert.Zero(t, status.FileCount)

	require.NoError(t, store.SaveSnapshot(ctx, testSnapshot("/proj"), testChunks(), testEntities()))

	status, err = store.GetStatus(ctx, "/proj", "android")
	require.NoError(t, err)
	assert.True(t, status.Exists)
	assert.Equal(t, 2, status.FileCount)
	assert.Equal(t, 3, status.ChunkCount)
	assert.Equal(t, 3, status.EntityCount)
	assert.Equal(t, "deadbeef", status.LastCommit)
	assert.False(t, status.UpdatedAt.IsZero())
}

func TestMigrationsIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	require.NoError(t, store.SaveSnapshot(context.Background(), testSnapshot("/proj"), nil, nil))
	require.NoError(t, store.Close())

	// Reopen: migrations must not reapply or disturb data.
	store, err = NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	loaded, err := store.GetSnapshot(context.Background(), "/proj", "android")
	require.NoError(t, err)
	assert.Equal(t, "deadbeef", loaded.LastCommit)
}
