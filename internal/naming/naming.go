package naming

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

// ErrUnsupportedFormat is returned when a filename has no extension or an
// extension outside the allowed set.
var ErrUnsupportedFormat = errors.New("file format not supported")

// AllowedExtensions lists the media formats the server accepts, keyed by
// lower-cased extension without the dot.
var AllowedExtensions = map[string]bool{
	"mp4":  true,
	"mp3":  true,
	"webm": true,
	"ogg":  true,
	"avi":  true,
	"mov":  true,
	"mkv":  true,
	"wav":  true,
}

// videoExtensions are the subset of allowed formats that get thumbnails.
var videoExtensions = map[string]bool{
	"mp4":  true,
	"avi":  true,
	"mov":  true,
	"mkv":  true,
	"webm": true,
}

const (
	placeholderName = "unnamed_file"
	placeholderBase = "file"
)

// Normalize maps an arbitrary client-supplied filename to a safe ASCII
// name usable on disk and in URLs. Non-portable characters are dropped,
// whitespace and path separators collapse to underscores, and an empty
// result is replaced with a fixed placeholder.
func Normalize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))

	lastUnderscore := false
	for _, r := range raw {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '-', r == '_':
			b.WriteRune(r)
			lastUnderscore = false
		case r == ' ', r == '\t', r == '/', r == '\\':
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
		default:
			// Non-ASCII and control characters are dropped entirely.
		}
	}

	name := strings.Trim(b.String(), "._-")
	if name == "" {
		return placeholderName
	}
	return name
}

// SplitExt splits a sanitized filename into base and lower-cased
// extension. It returns ErrUnsupportedFormat when the name has no
// dot-extension or the extension is outside AllowedExtensions.
func SplitExt(name string) (base, ext string, err error) {
	idx := strings.LastIndexByte(name, '.')
	if idx <= 0 || idx == len(name)-1 {
		return "", "", ErrUnsupportedFormat
	}

	base = name[:idx]
	ext = strings.ToLower(name[idx+1:])
	if !AllowedExtensions[ext] {
		return "", "", ErrUnsupportedFormat
	}
	return base, ext, nil
}

// Uniquify derives a unique on-disk filename from a sanitized name by
// inserting a random 8-hex-character suffix before the extension. The
// base component is re-sanitized; if it collapses to nothing the fixed
// placeholder "file" is used instead.
func Uniquify(safeName string) (string, error) {
	base, ext, err := SplitExt(safeName)
	if err != nil {
		return "", err
	}

	base = strings.Trim(Normalize(base), "._-")
	if base == "" || base == placeholderName {
		base = placeholderBase
	}

	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
	return base + "_" + suffix + "." + ext, nil
}

// IsVideo reports whether the filename's extension is a video format
// eligible for thumbnail extraction.
func IsVideo(name string) bool {
	idx := strings.LastIndexByte(name, '.')
	if idx < 0 {
		return false
	}
	return videoExtensions[strings.ToLower(name[idx+1:])]
}

// DisplayName returns the human-facing name for a sanitized filename:
// everything before the final extension.
func DisplayName(sanitized string) string {
	idx := strings.LastIndexByte(sanitized, '.')
	if idx <= 0 {
		return sanitized
	}
	return sanitized[:idx]
}

// ThumbnailName returns the thumbnail filename paired with a stored
// media filename: the stored base with a .jpg extension.
func ThumbnailName(storedName string) string {
	idx := strings.LastIndexByte(storedName, '.')
	if idx <= 0 {
		return storedName + ".jpg"
	}
	return storedName[:idx] + ".jpg"
}
