package ingest

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"media-server/internal/database"
	"media-server/internal/store"
	"media-server/internal/thumbnailer"
)

// stubExtractor is a controllable stand-in for the ffmpeg adapter.
type stubExtractor struct {
	status thumbnailer.Status
	calls  int
}

func (s *stubExtractor) Extract(_ context.Context, _ string) thumbnailer.Result {
	s.calls++
	if s.status != thumbnailer.StatusSuccess {
		return thumbnailer.Result{Status: s.status}
	}
	return thumbnailer.Result{Status: thumbnailer.StatusSuccess, Data: []byte{0xFF, 0xD8, 0xFF}}
}

func newTestPipeline(t *testing.T, ext Extractor) (*Pipeline, *store.Store, *database.Database) {
	t.Helper()

	base := t.TempDir()
	st := store.New(filepath.Join(base, "upload"), filepath.Join(base, "thumbnails"))

	db, err := database.New(context.Background(), filepath.Join(base, "videos.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return New(st, db, ext), st, db
}

func TestIngestVideoWithThumbnail(t *testing.T) {
	t.Parallel()

	ext := &stubExtractor{status: thumbnailer.StatusSuccess}
	p, st, db := newTestPipeline(t, ext)

	content := "fake video payload"
	item, err := p.Ingest(context.Background(), "My Holiday.mp4", strings.NewReader(content))
	if err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}

	if item.ID <= 0 {
		t.Errorf("ID = %d, want positive", item.ID)
	}
	if item.Name != "My_Holiday" {
		t.Errorf("Name = %q, want My_Holiday", item.Name)
	}
	if item.OriginalFilename != "My_Holiday.mp4" {
		t.Errorf("OriginalFilename = %q, want My_Holiday.mp4", item.OriginalFilename)
	}
	if item.FileSize != int64(len(content)) {
		t.Errorf("FileSize = %d, want %d", item.FileSize, len(content))
	}
	if !item.HasThumbnail() {
		t.Fatal("expected a thumbnail reference")
	}

	if !st.Exists(store.KindOriginal, item.Filename) {
		t.Error("original file missing from store")
	}
	if !st.Exists(store.KindThumbnail, *item.Thumbnail) {
		t.Error("thumbnail file missing from store")
	}

	got, err := db.GetByID(context.Background(), item.ID)
	if err != nil {
		t.Fatalf("catalog row missing: %v", err)
	}
	if got.Filename != item.Filename {
		t.Errorf("catalog filename = %q, want %q", got.Filename, item.Filename)
	}
}

func TestIngestAudioSkipsThumbnail(t *testing.T) {
	t.Parallel()

	ext := &stubExtractor{status: thumbnailer.StatusSuccess}
	p, _, _ := newTestPipeline(t, ext)

	item, err := p.Ingest(context.Background(), "song.mp3", strings.NewReader("audio"))
	if err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}
	if item.HasThumbnail() {
		t.Error("audio upload should not get a thumbnail")
	}
	if ext.calls != 0 {
		t.Errorf("extractor called %d times for an audio file", ext.calls)
	}
}

func TestIngestToleratesExtractionFailure(t *testing.T) {
	t.Parallel()

	for _, status := range []thumbnailer.Status{
		thumbnailer.StatusFailed,
		thumbnailer.StatusTimedOut,
		thumbnailer.StatusUnavailable,
	} {
		ext := &stubExtractor{status: status}
		p, st, _ := newTestPipeline(t, ext)

		item, err := p.Ingest(context.Background(), "clip.mp4", strings.NewReader("video"))
		if err != nil {
			t.Fatalf("Ingest with %v extractor failed: %v", status, err)
		}
		if item.HasThumbnail() {
			t.Errorf("thumbnail set despite %v extraction", status)
		}
		if !st.Exists(store.KindOriginal, item.Filename) {
			t.Errorf("original missing after %v extraction", status)
		}
	}
}

func TestIngestRejectsBadInput(t *testing.T) {
	t.Parallel()

	ext := &stubExtractor{status: thumbnailer.StatusSuccess}
	p, st, db := newTestPipeline(t, ext)

	tests := []struct {
		name     string
		filename string
	}{
		{name: "Empty filename", filename: ""},
		{name: "Disallowed extension", filename: "notes.txt"},
		{name: "No extension", filename: "mystery"},
		{name: "Emoji only", filename: "🎬🎥"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.Ingest(context.Background(), tt.filename, strings.NewReader("x"))
			if err == nil {
				t.Fatal("Ingest accepted invalid input")
			}
			if !IsValidation(err) {
				t.Errorf("error %v is not a ValidationError", err)
			}
		})
	}

	// Rejected uploads must leave no trace: no files, no rows.
	names, err := st.ListNames(store.KindOriginal)
	if err != nil {
		t.Fatalf("ListNames failed: %v", err)
	}
	if len(names) != 0 {
		t.Errorf("rejected uploads left %d files behind", len(names))
	}
	count, err := db.CountAll(context.Background())
	if err != nil {
		t.Fatalf("CountAll failed: %v", err)
	}
	if count != 0 {
		t.Errorf("rejected uploads left %d catalog rows behind", count)
	}
}

func TestIngestSameNameTwiceDistinctStoredNames(t *testing.T) {
	t.Parallel()

	ext := &stubExtractor{status: thumbnailer.StatusUnavailable}
	p, _, _ := newTestPipeline(t, ext)

	first, err := p.Ingest(context.Background(), "duplicate.mp4", strings.NewReader("a"))
	if err != nil {
		t.Fatalf("first Ingest failed: %v", err)
	}
	second, err := p.Ingest(context.Background(), "duplicate.mp4", strings.NewReader("b"))
	if err != nil {
		t.Fatalf("second Ingest failed: %v", err)
	}

	if first.Filename == second.Filename {
		t.Errorf("stored filenames collide: %q", first.Filename)
	}
}

func TestRemove(t *testing.T) {
	t.Parallel()

	ext := &stubExtractor{status: thumbnailer.StatusSuccess}
	p, st, db := newTestPipeline(t, ext)

	item, err := p.Ingest(context.Background(), "removeme.mp4", strings.NewReader("video"))
	if err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}

	if err := p.Remove(context.Background(), item.ID); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}

	if st.Exists(store.KindOriginal, item.Filename) {
		t.Error("original still present after Remove")
	}
	if st.Exists(store.KindThumbnail, *item.Thumbnail) {
		t.Error("thumbnail still present after Remove")
	}
	if _, err := db.GetByID(context.Background(), item.ID); !errors.Is(err, database.ErrNotFound) {
		t.Errorf("catalog row still present after Remove: %v", err)
	}

	// Second removal reports not-found and changes nothing.
	if err := p.Remove(context.Background(), item.ID); !errors.Is(err, database.ErrNotFound) {
		t.Errorf("second Remove error = %v, want ErrNotFound", err)
	}
}

func TestRemoveToleratesMissingFiles(t *testing.T) {
	t.Parallel()

	ext := &stubExtractor{status: thumbnailer.StatusSuccess}
	p, st, db := newTestPipeline(t, ext)

	item, err := p.Ingest(context.Background(), "halfgone.mp4", strings.NewReader("video"))
	if err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}

	// Simulate external interference: the original vanishes from disk.
	if err := st.Delete(store.KindOriginal, item.Filename); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if err := p.Remove(context.Background(), item.ID); err != nil {
		t.Fatalf("Remove with missing original failed: %v", err)
	}
	if _, err := db.GetByID(context.Background(), item.ID); !errors.Is(err, database.ErrNotFound) {
		t.Error("catalog row survived Remove")
	}
}
