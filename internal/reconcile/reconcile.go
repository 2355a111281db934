package reconcile

import (
	"context"
	"fmt"
	"sync"

	"media-server/internal/database"
	"media-server/internal/logging"
	"media-server/internal/metrics"
	"media-server/internal/naming"
	"media-server/internal/store"
	"media-server/internal/thumbnailer"
	"media-server/internal/workers"
)

// maxBackfillWorkers caps concurrent FFmpeg invocations during backfill.
const maxBackfillWorkers = 4

// Extractor is the slice of the thumbnailer the backfill pass needs.
type Extractor interface {
	Available() bool
	Extract(ctx context.Context, sourcePath string) thumbnailer.Result
}

// Reconciler restores the invariant between the catalog and the on-disk
// store: every row has a backing file, every file has a row. It is the
// only component allowed to resolve disagreements between the two.
type Reconciler struct {
	store     *store.Store
	catalog   *database.Database
	extractor Extractor
}

// New creates a Reconciler over the given components.
func New(st *store.Store, catalog *database.Database, extractor Extractor) *Reconciler {
	return &Reconciler{
		store:     st,
		catalog:   catalog,
		extractor: extractor,
	}
}

// CleanOrphans runs both reconciliation passes and returns the total
// number of artifacts removed. The operation is idempotent: a second
// run with no intervening writes removes nothing.
func (r *Reconciler) CleanOrphans(ctx context.Context) (int, error) {
	removed, err := r.cleanOrphanedRecords(ctx)
	if err != nil {
		return removed, err
	}

	fileRemoved, err := r.cleanOrphanedFiles(ctx)
	removed += fileRemoved
	if err != nil {
		return removed, err
	}

	logging.Info("Reconciliation removed %d orphaned artifacts", removed)
	return removed, nil
}

// cleanOrphanedRecords is the record-to-file pass: any catalog row
// whose original file is gone is deleted along with its thumbnail.
func (r *Reconciler) cleanOrphanedRecords(ctx context.Context) (int, error) {
	items, err := r.catalog.ListAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list catalog for reconciliation: %w", err)
	}

	removed := 0
	for _, item := range items {
		if r.store.Exists(store.KindOriginal, item.Filename) {
			continue
		}

		if item.HasThumbnail() {
			if err := r.store.Delete(store.KindThumbnail, *item.Thumbnail); err != nil {
				logging.Warn("failed to delete thumbnail of orphaned record %d: %v", item.ID, err)
			}
		}
		if err := r.catalog.DeleteByID(ctx, item.ID); err != nil {
			return removed, fmt.Errorf("failed to delete orphaned record %d: %w", item.ID, err)
		}

		logging.Info("Deleted orphaned record %d (%s)", item.ID, item.Filename)
		metrics.OrphansRemovedTotal.WithLabelValues("record").Inc()
		removed++
	}
	return removed, nil
}

// cleanOrphanedFiles is the file-to-record pass: any file in either
// directory that no surviving catalog row references is deleted.
func (r *Reconciler) cleanOrphanedFiles(ctx context.Context) (int, error) {
	items, err := r.catalog.ListAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list catalog for reconciliation: %w", err)
	}

	originals := make(map[string]struct{}, len(items))
	thumbnails := make(map[string]struct{}, len(items))
	for _, item := range items {
		originals[item.Filename] = struct{}{}
		if item.HasThumbnail() {
			thumbnails[*item.Thumbnail] = struct{}{}
		}
	}

	removed := 0

	passes := []struct {
		kind       store.Kind
		referenced map[string]struct{}
		metric     string
	}{
		{store.KindOriginal, originals, "original_file"},
		{store.KindThumbnail, thumbnails, "thumbnail_file"},
	}

	for _, pass := range passes {
		names, err := r.store.ListNames(pass.kind)
		if err != nil {
			return removed, err
		}
		for name := range names {
			if _, ok := pass.referenced[name]; ok {
				continue
			}
			if err := r.store.Delete(pass.kind, name); err != nil {
				logging.Warn("failed to delete orphaned %s file %s: %v", pass.kind, name, err)
				continue
			}
			logging.Info("Deleted orphaned %s file: %s", pass.kind, name)
			metrics.OrphansRemovedTotal.WithLabelValues(pass.metric).Inc()
			removed++
		}
	}

	return removed, nil
}

// BackfillThumbnails generates thumbnails for catalog rows that lack
// one. Individual extraction failures are counted, never raised.
func (r *Reconciler) BackfillThumbnails(ctx context.Context) (generated, failed int, err error) {
	metrics.BackfillRunsTotal.Inc()

	items, err := r.catalog.ListMissingThumbnails(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to list items without thumbnails: %w", err)
	}

	// FFmpeg is CPU-heavy and the writes are I/O-bound, so extractions
	// run on a small mixed-workload pool.
	workerCount := workers.ForMixed(maxBackfillWorkers)
	if workerCount > len(items) {
		workerCount = len(items)
	}

	jobs := make(chan database.MediaItem)
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range jobs {
				ok := r.backfillOne(ctx, item)
				mu.Lock()
				if ok {
					generated++
				} else {
					failed++
				}
				mu.Unlock()
			}
		}()
	}

	for _, item := range items {
		jobs <- item
	}
	close(jobs)
	wg.Wait()

	metrics.BackfillThumbnailsTotal.WithLabelValues("generated").Add(float64(generated))
	metrics.BackfillThumbnailsTotal.WithLabelValues("failed").Add(float64(failed))

	logging.Info("Thumbnail backfill completed: %d generated, %d failed", generated, failed)
	return generated, failed, nil
}

// backfillOne attempts extraction for a single item and reports success.
func (r *Reconciler) backfillOne(ctx context.Context, item database.MediaItem) bool {
	if !r.store.Exists(store.KindOriginal, item.Filename) || !naming.IsVideo(item.Filename) {
		return false
	}

	thumbName := naming.ThumbnailName(item.Filename)
	res := r.extractor.Extract(ctx, r.store.Path(store.KindOriginal, item.Filename))
	if !res.OK() {
		logging.Info("Backfill failed for %s (%s)", item.Filename, res.Status)
		return false
	}

	if _, err := r.store.WriteThumbnail(thumbName, res.Data); err != nil {
		logging.Warn("failed to store backfilled thumbnail for %s: %v", item.Filename, err)
		return false
	}

	if err := r.catalog.SetThumbnail(ctx, item.ID, thumbName); err != nil {
		logging.Warn("generated thumbnail for %s but failed to record it: %v", item.Filename, err)
		return false
	}

	logging.Info("Generated thumbnail for %s", item.Filename)
	return true
}
