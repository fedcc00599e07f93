package indexer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/codescope/codescope-mcp/internal/classifier"
	"github.com/codescope/codescope-mcp/internal/entity"
	"github.com/codescope/codescope-mcp/internal/profile"
	"github.com/codescope/codescope-mcp/internal/storage"
	"github.com/codescope/codescope-mcp/pkg/types"
)

// ErrIndexingInProgress is returned when a build is requested while another
// one is already running on the same Orchestrator.
var ErrIndexingInProgress = errors.New("indexing already in progress")

// Orchestrator owns the ensure-fresh pipeline for one storage backend.
type Orchestrator struct {
	registry *profile.Registry
	storage  storage.Storage
	workers  int

	lock buildLock
}

// Options controls a single EnsureFresh call.
type Options struct {
	Force       bool   // Rebuild even when the snapshot looks fresh
	ProjectType string // Override auto-detection (must be a registered type)
	Workers     int    // Concurrent classification workers (default: runtime.NumCPU())
}

// Statistics describes what a build actually did.
type Statistics struct {
	FilesScanned  int
	FilesIndexed  int
	FilesFailed   int
	ChunksCreated int
	EntitiesFound int
	Duration      time.Duration
	ErrorMessages []string
}

// Result is the outcome of EnsureFresh. On a fresh decision Chunks and
// Entities are nil: nothing was recomputed and the persisted index stands.
type Result struct {
	RootPath    string
	ProjectType string
	Decision    types.Decision
	Changes     types.ChangeSet
	Chunks      []types.ChunkUnit
	Entities    []types.EntityAnchor
	Snapshot    *types.IndexSnapshot
	Warnings    []string
	Stats       Statistics
}

// New creates an Orchestrator using the given profile registry and storage.
func New(registry *profile.Registry, store storage.Storage) *Orchestrator {
	return &Orchestrator{
		registry: registry,
		storage:  store,
		workers:  runtime.NumCPU(),
	}
}

// SetWorkers overrides the default worker count used by builds that do not
// pass one in Options. Values below one leave the default untouched.
func (o *Orchestrator) SetWorkers(n int) {
	if n > 0 {
		o.workers = n
	}
}

// EnsureFresh guarantees the persisted index for rootPath matches its
// working tree, rebuilding it when necessary. Only one build runs at a
// time; concurrent calls fail fast with ErrIndexingInProgress.
func (o *Orchestrator) EnsureFresh(ctx context.Context, rootPath string, opts *Options) (*Result, error) {
	if opts == nil {
		opts = &Options{}
	}

	if !o.lock.TryAcquire() {
		return nil, ErrIndexingInProgress
	}
	defer o.lock.Release()

	startTime := time.Now()

	absRoot, err := filepath.Abs(rootPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to access project directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", absRoot)
	}

	projectType := opts.ProjectType
	if projectType == "" {
		projectType = o.registry.DetectType(absRoot)
	}
	prof, err := o.registry.Get(projectType)
	if err != nil {
		return nil, err
	}

	result := &Result{
		RootPath:    absRoot,
		ProjectType: projectType,
	}

	// Corrupt persisted state degrades to a full rebuild; only unexpected
	// storage failures abort.
	snap, err := o.storage.GetSnapshot(ctx, absRoot, projectType)
	if errors.Is(err, storage.ErrNotFound) {
		snap = nil
	} else if errors.Is(err, types.ErrSnapshotCorrupt) {
		result.Warnings = append(result.Warnings, fmt.Sprintf("snapshot unreadable, rebuilding: %v", err))
		snap = nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	det, err := Detect(ctx, absRoot, prof, snap, opts.Force)
	if err != nil {
		return nil, err
	}
	result.Decision = det.Decision
	result.Changes = det.Changes
	result.Warnings = append(result.Warnings, det.Warnings...)
	result.Stats.FilesScanned = len(det.Files)

	if det.Decision == types.DecisionFresh {
		result.Snapshot = snap
		result.Stats.Duration = time.Since(startTime)
		return result, nil
	}

	if err := o.rebuild(ctx, absRoot, prof, det, opts, result); err != nil {
		return nil, err
	}

	result.Stats.Duration = time.Since(startTime)
	return result, nil
}

// fileOutput is one worker's result for a single file, merged back in
// sorted file order after all workers finish.
type fileOutput struct {
	record   types.FileRecord
	chunks   []types.ChunkUnit
	entities []types.EntityAnchor
	err      error
}

// rebuild classifies every tracked file and swaps in the new snapshot.
func (o *Orchestrator) rebuild(ctx context.Context, root string, prof *profile.Profile, det *Detection, opts *Options, result *Result) error {
	workers := opts.Workers
	if workers <= 0 {
		workers = o.workers
	}

	outputs := make([]fileOutput, len(det.Files))

	var indexed, failed, chunkCount, entityCount int32

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, rel := range det.Files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			out := &outputs[i]
			content, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
			if err != nil {
				out.err = err
				atomic.AddInt32(&failed, 1)
				return nil // Skip-and-warn, never abort the batch
			}

			out.record = det.Records[rel]
			out.chunks = classifier.Classify(rel, string(content), prof)
			out.entities = entity.ExtractAll(out.chunks, prof)

			atomic.AddInt32(&indexed, 1)
			atomic.AddInt32(&chunkCount, int32(len(out.chunks)))
			atomic.AddInt32(&entityCount, int32(len(out.entities)))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	// Merge in sorted file order so sequence assignment and downstream
	// chunk identity are reproducible regardless of completion order.
	newSnap := &types.IndexSnapshot{
		RootPath:    root,
		ProjectType: prof.Type,
		Files:       make(map[string]types.FileRecord, len(det.Files)),
		LastCommit:  det.Head,
	}
	var chunks []types.ChunkUnit
	var entities []types.EntityAnchor

	for i, rel := range det.Files {
		out := &outputs[i]
		if out.err != nil {
			msg := fmt.Sprintf("%s: %v", rel, out.err)
			result.Warnings = append(result.Warnings, msg)
			result.Stats.ErrorMessages = append(result.Stats.ErrorMessages, msg)
			continue
		}
		newSnap.Files[rel] = out.record
		chunks = append(chunks, out.chunks...)
		entities = append(entities, out.entities...)
	}

	if err := o.storage.SaveSnapshot(ctx, newSnap, chunks, entities); err != nil {
		return fmt.Errorf("failed to persist snapshot: %w", err)
	}

	result.Snapshot = newSnap
	result.Chunks = chunks
	result.Entities = entities
	result.Stats.FilesIndexed = int(indexed)
	result.Stats.FilesFailed = int(failed)
	result.Stats.ChunksCreated = int(chunkCount)
	result.Stats.EntitiesFound = int(entityCount)
	return nil
}
