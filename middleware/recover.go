// ABOUTME: Panic recovery middleware for API handlers
// ABOUTME: Converts handler panics into JSON 500 responses

package middleware

import (
	"log/slog"
	"net/http"
)

// Recover returns middleware that catches panics from the wrapped
// handler, logs them, and responds with a JSON 500. Without it a panic
// in a single request tears down the connection mid-response.
func Recover(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				slog.Error("Handler panic",
					"method", r.Method,
					"path", r.URL.Path,
					"panic", rec,
				)
				writeJSONError(w, "Internal server error", http.StatusInternalServerError)
			}
		}()
		next(w, r)
	}
}
