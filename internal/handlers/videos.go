package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"media-server/internal/database"
	"media-server/internal/logging"
	"media-server/internal/store"
)

// VideoResponse is a catalog row plus its derived URLs.
type VideoResponse struct {
	database.MediaItem
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
}

// ListVideos returns every catalog item, most recent first, with
// derived media and thumbnail URLs.
func (h *Handlers) ListVideos(w http.ResponseWriter, r *http.Request) {
	items, err := h.catalog.ListAll(r.Context())
	if err != nil {
		logging.Error("failed to list videos: %v", err)
		writeJSONError(w, "error fetching videos", http.StatusInternalServerError)
		return
	}

	videos := make([]VideoResponse, 0, len(items))
	for _, item := range items {
		v := VideoResponse{
			MediaItem: item,
			URL:       "/video/" + item.Filename,
		}
		if item.HasThumbnail() {
			v.ThumbnailURL = "/thumb/" + *item.Thumbnail
		}
		videos = append(videos, v)
	}

	writeJSON(w, http.StatusOK, videos)
}

// DeleteVideo removes a media item by id: files first, then the
// catalog row.
func (h *Handlers) DeleteVideo(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeJSONError(w, "invalid video id", http.StatusBadRequest)
		return
	}

	if err := h.pipeline.Remove(r.Context(), id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			writeJSONError(w, "video not found", http.StatusNotFound)
			return
		}
		logging.Error("failed to delete video %d: %v", id, err)
		writeJSONError(w, "error deleting video", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Video deleted successfully"})
}

// ServeVideo streams an original media file.
func (h *Handlers) ServeVideo(w http.ResponseWriter, r *http.Request) {
	h.serveStored(w, r, store.KindOriginal)
}

// ServeThumbnail streams a thumbnail image.
func (h *Handlers) ServeThumbnail(w http.ResponseWriter, r *http.Request) {
	h.serveStored(w, r, store.KindThumbnail)
}

func (h *Handlers) serveStored(w http.ResponseWriter, r *http.Request, kind store.Kind) {
	filename := mux.Vars(r)["filename"]
	if !h.store.Exists(kind, filename) {
		writeJSONError(w, "file not found", http.StatusNotFound)
		return
	}
	// Path reduces the name to its base component, so request-supplied
	// values cannot reach outside the store directories.
	http.ServeFile(w, r, h.store.Path(kind, filename))
}
