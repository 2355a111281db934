package store

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"media-server/internal/logging"
)

// Kind selects one of the two store directories.
type Kind string

const (
	// KindOriginal is the directory holding uploaded media files.
	KindOriginal Kind = "original"
	// KindThumbnail is the directory holding derived thumbnails.
	KindThumbnail Kind = "thumbnail"
)

// Store manages the on-disk layout for uploaded media and thumbnails.
// Directories are created lazily before the first write or listing.
type Store struct {
	mediaDir string
	thumbDir string
}

// New creates a Store over the given directories. The directories are
// not created until first use.
func New(mediaDir, thumbDir string) *Store {
	return &Store{
		mediaDir: mediaDir,
		thumbDir: thumbDir,
	}
}

func (s *Store) dir(kind Kind) string {
	if kind == KindThumbnail {
		return s.thumbDir
	}
	return s.mediaDir
}

// Path returns the absolute path for a name within a store directory.
// The name is reduced to its base component so request-supplied names
// cannot escape the directory.
func (s *Store) Path(kind Kind, name string) string {
	return filepath.Join(s.dir(kind), filepath.Base(name))
}

// ensureDir creates the directory for kind if it does not exist yet.
func (s *Store) ensureDir(kind Kind) error {
	return os.MkdirAll(s.dir(kind), 0o755)
}

// WriteOriginal streams an uploaded file into the media directory and
// returns its final path and size.
func (s *Store) WriteOriginal(name string, r io.Reader) (string, int64, error) {
	if err := s.ensureDir(KindOriginal); err != nil {
		return "", 0, fmt.Errorf("failed to create media directory: %w", err)
	}

	path := s.Path(KindOriginal, name)
	f, err := os.Create(path)
	if err != nil {
		return "", 0, fmt.Errorf("failed to create %s: %w", path, err)
	}

	size, err := io.Copy(f, r)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		// A short write leaves a truncated file behind; remove it so the
		// failed upload does not linger as an orphan.
		if rmErr := os.Remove(path); rmErr != nil {
			logging.Warn("failed to remove partial upload %s: %v", path, rmErr)
		}
		return "", 0, fmt.Errorf("failed to write %s: %w", path, err)
	}

	return path, size, nil
}

// WriteThumbnail writes encoded thumbnail bytes into the thumbnail
// directory and returns the final path.
func (s *Store) WriteThumbnail(name string, data []byte) (string, error) {
	if err := s.ensureDir(KindThumbnail); err != nil {
		return "", fmt.Errorf("failed to create thumbnail directory: %w", err)
	}

	path := s.Path(KindThumbnail, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

// Delete removes a file from a store directory. Deleting a file that
// does not exist is a no-op.
func (s *Store) Delete(kind Kind, name string) error {
	err := os.Remove(s.Path(kind, name))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete %s %s: %w", kind, name, err)
	}
	return nil
}

// Exists reports whether a file of the given name is present.
func (s *Store) Exists(kind Kind, name string) bool {
	info, err := os.Stat(s.Path(kind, name))
	return err == nil && !info.IsDir()
}

// DirExists reports whether the directory for kind has been created.
func (s *Store) DirExists(kind Kind) bool {
	info, err := os.Stat(s.dir(kind))
	return err == nil && info.IsDir()
}

// ListNames returns the set of file names in a store directory. A
// directory that does not exist yet yields an empty set.
func (s *Store) ListNames(kind Kind) (map[string]struct{}, error) {
	entries, err := os.ReadDir(s.dir(kind))
	if errors.Is(err, os.ErrNotExist) {
		return map[string]struct{}{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list %s directory: %w", kind, err)
	}

	names := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names[e.Name()] = struct{}{}
	}
	return names, nil
}

// CountFiles returns the number of files in a store directory, for
// health reporting. Errors count as zero.
func (s *Store) CountFiles(kind Kind) int {
	names, err := s.ListNames(kind)
	if err != nil {
		logging.Warn("failed to count %s files: %v", kind, err)
		return 0
	}
	return len(names)
}
