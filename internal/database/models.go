package database

import "time"

// MediaItem is one catalog row describing an ingested media file and
// its optional thumbnail.
type MediaItem struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	Filename         string    `json:"filename"`
	OriginalFilename string    `json:"original_filename"`
	FileSize         int64     `json:"file_size"`
	Thumbnail        *string   `json:"thumbnail"`
	CreatedAt        time.Time `json:"created_at"`
}

// HasThumbnail reports whether the item carries a thumbnail reference.
func (m *MediaItem) HasThumbnail() bool {
	return m.Thumbnail != nil && *m.Thumbnail != ""
}
