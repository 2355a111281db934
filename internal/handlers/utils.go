package handlers

import (
	"encoding/json"
	"net/http"

	"media-server/internal/logging"
)

// writeJSON encodes v as JSON and writes it to the response writer with
// the given status code. Encoding errors are logged since we typically
// cannot recover from them in an HTTP handler context.
func writeJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error("failed to encode JSON response: %v", err)
	}
}

// writeJSONError writes an error response as JSON with the given status code.
func writeJSONError(w http.ResponseWriter, message string, statusCode int) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}
