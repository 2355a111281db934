package startup

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestGetBuildInfo(t *testing.T) {
	info := GetBuildInfo()

	// Check that all fields are populated
	if info.Version == "" {
		t.Error("Expected Version to be set")
	}
	if info.GoVersion == "" {
		t.Error("Expected GoVersion to be set")
	}
	if info.OS == "" {
		t.Error("Expected OS to be set")
	}
	if info.Arch == "" {
		t.Error("Expected Arch to be set")
	}

	// Verify that runtime values are correct
	if info.GoVersion != GoVersion {
		t.Errorf("Expected GoVersion=%s, got %s", GoVersion, info.GoVersion)
	}
}

func TestGetEnv(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		defaultValue string
		envValue     string
		want         string
		setEnv       bool
	}{
		{
			name:         "Returns default when env var not set",
			key:          "TEST_UNSET_VAR",
			defaultValue: "default",
			want:         "default",
			setEnv:       false,
		},
		{
			name:         "Returns env value when set",
			key:          "TEST_SET_VAR",
			defaultValue: "default",
			envValue:     "custom",
			want:         "custom",
			setEnv:       true,
		},
		{
			name:         "Returns default when env var is empty",
			key:          "TEST_EMPTY_VAR",
			defaultValue: "default",
			envValue:     "",
			want:         "default",
			setEnv:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setEnv {
				t.Setenv(tt.key, tt.envValue)
			} else {
				os.Unsetenv(tt.key)
			}

			got := getEnv(tt.key, tt.defaultValue)
			if got != tt.want {
				t.Errorf("getEnv(%q, %q) = %q, want %q", tt.key, tt.defaultValue, got, tt.want)
			}
		})
	}
}

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		envValue     string
		defaultValue bool
		want         bool
		setEnv       bool
	}{
		{
			name:         "Returns default when env var not set",
			key:          "TEST_BOOL_UNSET",
			defaultValue: true,
			want:         true,
			setEnv:       false,
		},
		{
			name:         "Returns true when env var is 'true'",
			key:          "TEST_BOOL_TRUE",
			envValue:     "true",
			defaultValue: false,
			want:         true,
			setEnv:       true,
		},
		{
			name:         "Returns false when env var is 'false'",
			key:          "TEST_BOOL_FALSE",
			envValue:     "false",
			defaultValue: true,
			want:         false,
			setEnv:       true,
		},
		{
			name:         "Returns true when env var is '1'",
			key:          "TEST_BOOL_ONE",
			envValue:     "1",
			defaultValue: false,
			want:         true,
			setEnv:       true,
		},
		{
			name:         "Returns default when env var is invalid",
			key:          "TEST_BOOL_INVALID",
			envValue:     "maybe",
			defaultValue: true,
			want:         true,
			setEnv:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setEnv {
				t.Setenv(tt.key, tt.envValue)
			} else {
				os.Unsetenv(tt.key)
			}

			got := getEnvBool(tt.key, tt.defaultValue)
			if got != tt.want {
				t.Errorf("getEnvBool(%q, %v) = %v, want %v", tt.key, tt.defaultValue, got, tt.want)
			}
		})
	}
}

func TestGetEnvInt(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		envValue     string
		defaultValue int
		want         int
		setEnv       bool
	}{
		{
			name:         "Returns default when env var not set",
			key:          "TEST_INT_UNSET",
			defaultValue: 500,
			want:         500,
			setEnv:       false,
		},
		{
			name:         "Returns parsed value when set",
			key:          "TEST_INT_SET",
			envValue:     "42",
			defaultValue: 500,
			want:         42,
			setEnv:       true,
		},
		{
			name:         "Returns default when env var is invalid",
			key:          "TEST_INT_INVALID",
			envValue:     "lots",
			defaultValue: 500,
			want:         500,
			setEnv:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setEnv {
				t.Setenv(tt.key, tt.envValue)
			} else {
				os.Unsetenv(tt.key)
			}

			got := getEnvInt(tt.key, tt.defaultValue)
			if got != tt.want {
				t.Errorf("getEnvInt(%q, %d) = %d, want %d", tt.key, tt.defaultValue, got, tt.want)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	tmpDir := t.TempDir()

	t.Setenv("MEDIA_DIR", filepath.Join(tmpDir, "upload"))
	t.Setenv("THUMBNAILS_DIR", filepath.Join(tmpDir, "thumbnails"))
	t.Setenv("DATABASE_PATH", filepath.Join(tmpDir, "videos.db"))
	t.Setenv("PORT", "18080")
	t.Setenv("MAX_UPLOAD_MB", "100")
	t.Setenv("THUMBNAIL_OFFSET_SECONDS", "5")
	t.Setenv("THUMBNAIL_TIMEOUT", "10s")

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() returned error: %v", err)
	}

	if config.Port != "18080" {
		t.Errorf("Expected Port=18080, got %s", config.Port)
	}
	if config.MaxUploadBytes != 100<<20 {
		t.Errorf("Expected MaxUploadBytes=%d, got %d", int64(100<<20), config.MaxUploadBytes)
	}
	if config.ThumbnailOffsetSeconds != 5 {
		t.Errorf("Expected ThumbnailOffsetSeconds=5, got %d", config.ThumbnailOffsetSeconds)
	}
	if config.ThumbnailTimeout != 10*time.Second {
		t.Errorf("Expected ThumbnailTimeout=10s, got %v", config.ThumbnailTimeout)
	}

	// Directories should have been created
	if _, err := os.Stat(config.MediaDir); err != nil {
		t.Errorf("Expected media directory to exist: %v", err)
	}
	if _, err := os.Stat(config.ThumbnailsDir); err != nil {
		t.Errorf("Expected thumbnails directory to exist: %v", err)
	}
}

func TestLoadConfigInvalidDurations(t *testing.T) {
	tmpDir := t.TempDir()

	t.Setenv("MEDIA_DIR", filepath.Join(tmpDir, "upload"))
	t.Setenv("THUMBNAILS_DIR", filepath.Join(tmpDir, "thumbnails"))
	t.Setenv("DATABASE_PATH", filepath.Join(tmpDir, "videos.db"))
	t.Setenv("THUMBNAIL_TIMEOUT", "not-a-duration")
	t.Setenv("MAX_UPLOAD_MB", "-3")

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() returned error: %v", err)
	}

	if config.ThumbnailTimeout != 30*time.Second {
		t.Errorf("Expected default ThumbnailTimeout=30s, got %v", config.ThumbnailTimeout)
	}
	if config.MaxUploadBytes != 500<<20 {
		t.Errorf("Expected default MaxUploadBytes=%d, got %d", int64(500<<20), config.MaxUploadBytes)
	}
}
