package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"media-server/internal/ingest"
	"media-server/internal/logging"
)

// multipartMemoryLimit is how much of the form is buffered in memory
// before spilling to temporary files.
const multipartMemoryLimit = 32 << 20 // 32 MiB

// UploadResponse is the payload returned for a successful upload.
type UploadResponse struct {
	Message   string  `json:"message"`
	ID        int64   `json:"id"`
	Filename  string  `json:"filename"`
	Name      string  `json:"name"`
	Size      int64   `json:"size"`
	Thumbnail *string `json:"thumbnail"`
	URL       string  `json:"url"`
}

// Upload accepts a multipart upload in the "file" field, runs it
// through the ingestion pipeline, and returns the created item.
func (h *Handlers) Upload(w http.ResponseWriter, r *http.Request) {
	// Reject oversized bodies before the pipeline ever runs.
	r.Body = http.MaxBytesReader(w, r.Body, h.config.MaxUploadBytes)

	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeJSONError(w, fmt.Sprintf("file exceeds the %d MiB upload limit", h.config.MaxUploadBytes>>20),
				http.StatusRequestEntityTooLarge)
			return
		}
		writeJSONError(w, "invalid multipart request", http.StatusBadRequest)
		return
	}
	defer func() {
		if err := r.MultipartForm.RemoveAll(); err != nil {
			logging.Warn("failed to clean up multipart temp files: %v", err)
		}
	}()

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSONError(w, "no file in request", http.StatusBadRequest)
		return
	}
	defer file.Close()

	item, err := h.pipeline.Ingest(r.Context(), header.Filename, file)
	if err != nil {
		if ingest.IsValidation(err) {
			writeJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		logging.Error("upload failed: %v", err)
		writeJSONError(w, "error uploading file", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, UploadResponse{
		Message:   "File uploaded successfully",
		ID:        item.ID,
		Filename:  item.Filename,
		Name:      item.Name,
		Size:      item.FileSize,
		Thumbnail: item.Thumbnail,
		URL:       "/video/" + item.Filename,
	})
}
