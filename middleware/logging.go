// ABOUTME: HTTP request logging middleware with correlation IDs.
// ABOUTME: Logs request start/end with method, path, status, and latency.

package middleware

import (
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// LogRequest logs HTTP requests with timing and correlation ID.
func LogRequest(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := generateRequestID()
		path := sanitizePath(r.URL.Path)

		// Add request ID to response header
		w.Header().Set("X-Request-ID", requestID)

		slog.Info("Request started",
			"request_id", requestID,
			"method", r.Method,
			"path", path,
		)

		// Wrap response writer to capture status
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next(wrapped, r)

		slog.Info("Request completed",
			"request_id", requestID,
			"method", r.Method,
			"path", path,
			"status", wrapped.statusCode,
			"latency_ms", time.Since(start).Milliseconds(),
		)
	}
}

// sanitizePath strips control characters so a crafted URL cannot inject
// fake log lines.
func sanitizePath(p string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, p)
}

// generateRequestID creates a short random hex ID.
func generateRequestID() string {
	b := make([]byte, 8)
	rand.Read(b)
	return hex.EncodeToString(b)
}
