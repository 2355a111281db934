package middleware

import (
	"net/http"
	"runtime/debug"

	"media-server/internal/logging"
)

// Recovery returns a middleware that recovers from panics in handlers,
// logs the stack trace, and responds with a JSON 500.
func Recovery() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logging.Error("panic serving %s %s: %v\n%s", r.Method, r.URL.Path, rec, debug.Stack())

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					//nolint:errcheck // best effort, client may be gone
					w.Write([]byte(`{"error":"internal server error"}`))
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
