package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"media-server/internal/database"
	"media-server/internal/logging"
	"media-server/internal/metrics"
	"media-server/internal/naming"
	"media-server/internal/store"
	"media-server/internal/thumbnailer"
)

// ValidationError marks an upload rejected for user-correctable input:
// a missing file, an empty filename, or a disallowed format.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

func validationErrorf(format string, args ...interface{}) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// Extractor is the slice of the thumbnailer the pipeline needs.
type Extractor interface {
	Extract(ctx context.Context, sourcePath string) thumbnailer.Result
}

// Pipeline runs an upload through normalization, file persistence,
// best-effort thumbnail extraction, and the catalog insert.
type Pipeline struct {
	store     *store.Store
	catalog   *database.Database
	extractor Extractor
}

// New creates an ingestion pipeline over the given components.
func New(st *store.Store, catalog *database.Database, extractor Extractor) *Pipeline {
	return &Pipeline{
		store:     st,
		catalog:   catalog,
		extractor: extractor,
	}
}

// Ingest persists one uploaded file and records it in the catalog.
//
// The steps are strictly ordered: validate, uniquify, write the
// original, extract a thumbnail (videos only, failure tolerated),
// insert the catalog row. A failed insert deliberately leaves the
// written file and thumbnail behind as orphans; the reconcile package
// repairs that drift later. No rollback is attempted here.
func (p *Pipeline) Ingest(ctx context.Context, clientFilename string, r io.Reader) (*database.MediaItem, error) {
	start := time.Now()

	item, err := p.ingest(ctx, clientFilename, r)
	switch {
	case err == nil:
		metrics.UploadsTotal.WithLabelValues("success").Inc()
		metrics.UploadBytesTotal.Add(float64(item.FileSize))
		metrics.UploadDuration.Observe(time.Since(start).Seconds())
	case IsValidation(err):
		metrics.UploadsTotal.WithLabelValues("rejected").Inc()
	default:
		metrics.UploadsTotal.WithLabelValues("error").Inc()
	}
	return item, err
}

func (p *Pipeline) ingest(ctx context.Context, clientFilename string, r io.Reader) (*database.MediaItem, error) {
	if clientFilename == "" {
		return nil, validationErrorf("no file selected")
	}

	sanitized := naming.Normalize(clientFilename)
	if _, _, err := naming.SplitExt(sanitized); err != nil {
		return nil, validationErrorf("file format not supported; allowed: MP4, MP3, AVI, MOV, MKV, WEBM, WAV, OGG")
	}

	storedName, err := naming.Uniquify(sanitized)
	if err != nil {
		return nil, validationErrorf("file format not supported; allowed: MP4, MP3, AVI, MOV, MKV, WEBM, WAV, OGG")
	}

	path, size, err := p.store.WriteOriginal(storedName, r)
	if err != nil {
		return nil, fmt.Errorf("failed to store upload: %w", err)
	}
	logging.Debug("Stored upload %s (%d bytes)", storedName, size)

	var thumbnail *string
	if naming.IsVideo(storedName) {
		thumbName := naming.ThumbnailName(storedName)
		res := p.extractor.Extract(ctx, path)
		if !res.OK() {
			logging.Info("Could not generate thumbnail for %s (%s)", storedName, res.Status)
		} else if _, err := p.store.WriteThumbnail(thumbName, res.Data); err != nil {
			logging.Warn("failed to store thumbnail for %s: %v", storedName, err)
		} else {
			thumbnail = &thumbName
		}
	}

	item := &database.MediaItem{
		Name:             naming.DisplayName(sanitized),
		Filename:         storedName,
		OriginalFilename: sanitized,
		FileSize:         size,
		Thumbnail:        thumbnail,
	}

	if _, err := p.catalog.Insert(ctx, item); err != nil {
		// The stored file and any thumbnail are now orphans; reconciliation
		// cleans them up on the next pass.
		return nil, fmt.Errorf("failed to record upload in catalog: %w", err)
	}

	logging.Info("Ingested %s as %s (id=%d, %d bytes)", sanitized, storedName, item.ID, size)
	return item, nil
}

// Remove is the pipeline's inverse: it deletes the original file and
// thumbnail (both tolerated if already missing) and then removes the
// catalog row. Returns database.ErrNotFound for an unknown id.
func (p *Pipeline) Remove(ctx context.Context, id int64) error {
	item, err := p.catalog.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := p.store.Delete(store.KindOriginal, item.Filename); err != nil {
		logging.Warn("failed to delete original %s: %v", item.Filename, err)
	}
	if item.HasThumbnail() {
		if err := p.store.Delete(store.KindThumbnail, *item.Thumbnail); err != nil {
			logging.Warn("failed to delete thumbnail %s: %v", *item.Thumbnail, err)
		}
	}

	if err := p.catalog.DeleteByID(ctx, id); err != nil {
		return err
	}

	logging.Info("Deleted media item %d (%s)", id, item.Filename)
	return nil
}

// IsValidation reports whether err is a user-correctable input error.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
