package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	base := t.TempDir()
	return New(filepath.Join(base, "upload"), filepath.Join(base, "thumbnails"))
}

func TestWriteOriginal(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	content := "fake video bytes"

	path, size, err := s.WriteOriginal("clip_1a2b3c4d.mp4", strings.NewReader(content))
	if err != nil {
		t.Fatalf("WriteOriginal failed: %v", err)
	}
	if size != int64(len(content)) {
		t.Errorf("size = %d, want %d", size, len(content))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading written file: %v", err)
	}
	if string(data) != content {
		t.Errorf("file content = %q, want %q", data, content)
	}

	if !s.Exists(KindOriginal, "clip_1a2b3c4d.mp4") {
		t.Error("Exists returned false for a written file")
	}
}

func TestWriteOriginalCreatesDirectoryLazily(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	if s.DirExists(KindOriginal) {
		t.Fatal("media directory should not exist before first write")
	}

	if _, _, err := s.WriteOriginal("a.mp4", strings.NewReader("x")); err != nil {
		t.Fatalf("WriteOriginal failed: %v", err)
	}

	if !s.DirExists(KindOriginal) {
		t.Error("media directory missing after write")
	}
}

func TestWriteThumbnail(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	path, err := s.WriteThumbnail("clip_1a2b3c4d.jpg", []byte{0xFF, 0xD8, 0xFF})
	if err != nil {
		t.Fatalf("WriteThumbnail failed: %v", err)
	}
	if filepath.Base(path) != "clip_1a2b3c4d.jpg" {
		t.Errorf("unexpected thumbnail path %q", path)
	}
	if !s.Exists(KindThumbnail, "clip_1a2b3c4d.jpg") {
		t.Error("thumbnail not found after write")
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	if _, _, err := s.WriteOriginal("gone.mp4", strings.NewReader("x")); err != nil {
		t.Fatalf("WriteOriginal failed: %v", err)
	}

	if err := s.Delete(KindOriginal, "gone.mp4"); err != nil {
		t.Fatalf("first Delete failed: %v", err)
	}
	if s.Exists(KindOriginal, "gone.mp4") {
		t.Error("file still exists after delete")
	}

	// Second delete of a missing file is a no-op, not an error.
	if err := s.Delete(KindOriginal, "gone.mp4"); err != nil {
		t.Errorf("second Delete returned error: %v", err)
	}
	if err := s.Delete(KindOriginal, "never-existed.mp4"); err != nil {
		t.Errorf("Delete of unknown file returned error: %v", err)
	}
}

func TestListNames(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	// Listing a directory that was never created yields an empty set.
	names, err := s.ListNames(KindThumbnail)
	if err != nil {
		t.Fatalf("ListNames on missing dir failed: %v", err)
	}
	if len(names) != 0 {
		t.Errorf("expected empty set, got %d names", len(names))
	}

	for _, n := range []string{"a.mp4", "b.mp3", "c.webm"} {
		if _, _, err := s.WriteOriginal(n, strings.NewReader("x")); err != nil {
			t.Fatalf("WriteOriginal(%s) failed: %v", n, err)
		}
	}

	names, err = s.ListNames(KindOriginal)
	if err != nil {
		t.Fatalf("ListNames failed: %v", err)
	}
	if len(names) != 3 {
		t.Errorf("got %d names, want 3", len(names))
	}
	for _, n := range []string{"a.mp4", "b.mp3", "c.webm"} {
		if _, ok := names[n]; !ok {
			t.Errorf("ListNames missing %q", n)
		}
	}

	if got := s.CountFiles(KindOriginal); got != 3 {
		t.Errorf("CountFiles = %d, want 3", got)
	}
}

func TestPathRejectsTraversal(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	path := s.Path(KindOriginal, "../../etc/passwd")
	if filepath.Base(path) != "passwd" {
		t.Fatalf("unexpected base in %q", path)
	}
	if strings.Contains(path, "..") {
		t.Errorf("Path allowed traversal: %q", path)
	}
}
