package handlers

import (
	"fmt"
	"net/http"

	"media-server/internal/logging"
)

// CleanupResponse reports the outcome of an orphan reconciliation run.
type CleanupResponse struct {
	Message string `json:"message"`
	Removed int    `json:"removed"`
}

// Cleanup runs the orphan reconciliation passes and reports how many
// artifacts were removed.
func (h *Handlers) Cleanup(w http.ResponseWriter, r *http.Request) {
	removed, err := h.reconciler.CleanOrphans(r.Context())
	if err != nil {
		logging.Error("cleanup failed: %v", err)
		writeJSONError(w, "error during cleanup", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, CleanupResponse{
		Message: fmt.Sprintf("Cleanup completed successfully, deleted %d artifacts", removed),
		Removed: removed,
	})
}

// BackfillResponse reports the outcome of a thumbnail backfill run.
type BackfillResponse struct {
	Message   string `json:"message"`
	Generated int    `json:"generated"`
	Failed    int    `json:"failed"`
}

// GenerateThumbnails retroactively generates thumbnails for catalog
// rows that lack one.
func (h *Handlers) GenerateThumbnails(w http.ResponseWriter, r *http.Request) {
	generated, failed, err := h.reconciler.BackfillThumbnails(r.Context())
	if err != nil {
		logging.Error("thumbnail backfill failed: %v", err)
		writeJSONError(w, "error generating thumbnails", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, BackfillResponse{
		Message:   fmt.Sprintf("Thumbnail generation completed: %d generated, %d failed", generated, failed),
		Generated: generated,
		Failed:    failed,
	})
}
