package naming

import (
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Plain ASCII name",
			input:    "holiday.mp4",
			expected: "holiday.mp4",
		},
		{
			name:     "Spaces collapse to underscores",
			input:    "my summer   trip.mov",
			expected: "my_summer_trip.mov",
		},
		{
			name:     "Path separators stripped",
			input:    "../../etc/passwd.mp4",
			expected: "etc_passwd.mp4",
		},
		{
			name:     "Non-ASCII dropped",
			input:    "видео☀️.mp4",
			expected: "mp4",
		},
		{
			name:     "Emoji only becomes placeholder",
			input:    "🎬🎥",
			expected: "unnamed_file",
		},
		{
			name:     "Empty input",
			input:    "",
			expected: "unnamed_file",
		},
		{
			name:     "Leading dots trimmed",
			input:    "...hidden.mp3",
			expected: "hidden.mp3",
		},
		{
			name:     "Mixed safe and unsafe",
			input:    "clip (final) #2.webm",
			expected: "clip_final_2.webm",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Normalize(tt.input); got != tt.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestSplitExt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		wantBase string
		wantExt  string
		wantErr  bool
	}{
		{name: "mp4 allowed", input: "movie.mp4", wantBase: "movie", wantExt: "mp4"},
		{name: "Upper-case extension lowered", input: "SONG.MP3", wantBase: "SONG", wantExt: "mp3"},
		{name: "txt rejected", input: "notes.txt", wantErr: true},
		{name: "No extension", input: "movie", wantErr: true},
		{name: "Trailing dot", input: "movie.", wantErr: true},
		{name: "Dotfile only", input: ".mp4", wantErr: true},
		{name: "Multiple dots", input: "my.best.clip.mkv", wantBase: "my.best.clip", wantExt: "mkv"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			base, ext, err := SplitExt(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("SplitExt(%q) expected error, got base=%q ext=%q", tt.input, base, ext)
				}
				return
			}
			if err != nil {
				t.Fatalf("SplitExt(%q) unexpected error: %v", tt.input, err)
			}
			if base != tt.wantBase || ext != tt.wantExt {
				t.Errorf("SplitExt(%q) = (%q, %q), want (%q, %q)", tt.input, base, ext, tt.wantBase, tt.wantExt)
			}
		})
	}
}

func TestUniquify(t *testing.T) {
	t.Parallel()

	stored, err := Uniquify("holiday.mp4")
	if err != nil {
		t.Fatalf("Uniquify failed: %v", err)
	}
	if !strings.HasPrefix(stored, "holiday_") || !strings.HasSuffix(stored, ".mp4") {
		t.Errorf("Uniquify produced unexpected name %q", stored)
	}

	// 8 hex chars between the underscore and extension
	suffix := strings.TrimSuffix(strings.TrimPrefix(stored, "holiday_"), ".mp4")
	if len(suffix) != 8 {
		t.Errorf("unique suffix %q has length %d, want 8", suffix, len(suffix))
	}
}

func TestUniquifyDistinctNames(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		stored, err := Uniquify("collision.mp4")
		if err != nil {
			t.Fatalf("Uniquify failed: %v", err)
		}
		if seen[stored] {
			t.Fatalf("Uniquify produced duplicate name %q", stored)
		}
		seen[stored] = true
	}
}

func TestUniquifyEmptyBase(t *testing.T) {
	t.Parallel()

	stored, err := Uniquify("unnamed_file.mp4")
	if err != nil {
		t.Fatalf("Uniquify failed: %v", err)
	}
	if !strings.HasPrefix(stored, "file_") {
		t.Errorf("Uniquify(%q) = %q, want file_ prefix placeholder", "unnamed_file.mp4", stored)
	}
}

func TestUniquifyRejectsUnsupported(t *testing.T) {
	t.Parallel()

	if _, err := Uniquify("document.pdf"); err == nil {
		t.Error("Uniquify accepted a disallowed extension")
	}
	if _, err := Uniquify("noext"); err == nil {
		t.Error("Uniquify accepted a name without extension")
	}
}

func TestIsVideo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected bool
	}{
		{"clip.mp4", true},
		{"clip.MOV", true},
		{"clip.webm", true},
		{"clip.mkv", true},
		{"clip.avi", true},
		{"song.mp3", false},
		{"song.wav", false},
		{"song.ogg", false},
		{"noext", false},
	}

	for _, tt := range tests {
		if got := IsVideo(tt.input); got != tt.expected {
			t.Errorf("IsVideo(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestDisplayName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{"holiday.mp4", "holiday"},
		{"my.best.clip.mkv", "my.best.clip"},
		{"noext", "noext"},
	}

	for _, tt := range tests {
		if got := DisplayName(tt.input); got != tt.expected {
			t.Errorf("DisplayName(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestThumbnailName(t *testing.T) {
	t.Parallel()

	if got := ThumbnailName("holiday_1a2b3c4d.mp4"); got != "holiday_1a2b3c4d.jpg" {
		t.Errorf("ThumbnailName = %q, want holiday_1a2b3c4d.jpg", got)
	}
}
