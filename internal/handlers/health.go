package handlers

import (
	"net/http"
	"os"
	"time"

	"media-server/internal/logging"
	"media-server/internal/startup"
	"media-server/internal/store"
)

const (
	statusHealthy  = "ok"
	statusDegraded = "degraded"
)

// HealthResponse reports the existence and size of the three persisted
// stores: the database file, the media directory, and the thumbnail
// directory.
type HealthResponse struct {
	Status           string  `json:"status"`
	Timestamp        float64 `json:"timestamp"`
	Uptime           string  `json:"uptime"`
	Version          string  `json:"version"`
	Database         bool    `json:"database"`
	UploadFolder     bool    `json:"upload_folder"`
	ThumbnailsFolder bool    `json:"thumbnails_folder"`
	FFmpegAvailable  bool    `json:"ffmpeg_available"`
	VideoCount       int     `json:"video_count"`
	ThumbnailCount   int     `json:"thumbnail_count"`
	UploadFiles      int     `json:"upload_files"`
	ThumbFiles       int     `json:"thumb_files"`
}

// HealthCheck returns the health status of the service.
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	_, dbErr := os.Stat(h.catalog.Path())

	response := HealthResponse{
		Status:           statusHealthy,
		Timestamp:        float64(time.Now().UnixMilli()) / 1000,
		Uptime:           time.Since(h.startTime).Round(time.Second).String(),
		Version:          startup.Version,
		Database:         dbErr == nil,
		UploadFolder:     h.store.DirExists(store.KindOriginal),
		ThumbnailsFolder: h.store.DirExists(store.KindThumbnail),
		FFmpegAvailable:  h.extractor.Available(),
		UploadFiles:      h.store.CountFiles(store.KindOriginal),
		ThumbFiles:       h.store.CountFiles(store.KindThumbnail),
	}

	videoCount, err := h.catalog.CountAll(r.Context())
	if err != nil {
		logging.Error("health check: failed to count videos: %v", err)
		response.Status = statusDegraded
	}
	response.VideoCount = videoCount

	thumbCount, err := h.catalog.CountWithThumbnail(r.Context())
	if err != nil {
		logging.Error("health check: failed to count thumbnails: %v", err)
		response.Status = statusDegraded
	}
	response.ThumbnailCount = thumbCount

	code := http.StatusOK
	if response.Status == statusDegraded {
		code = http.StatusInternalServerError
	}
	writeJSON(w, code, response)
}
