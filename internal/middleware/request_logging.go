package middleware

import (
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// RequestIDHeader carries the per-request ID in both directions
const RequestIDHeader = "X-Request-ID"

// RequestLogger assigns a request ID (or keeps the caller's) and writes one
// log line per request.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, requestID)

		wrapped := &statusRecorder{ResponseWriter: w, statusCode: 200}
		next.ServeHTTP(wrapped, r)

		// Skip noisy probe and scrape endpoints
		switch r.URL.Path {
		case "/health", "/health/ready", "/metrics":
			return
		}

		log.Printf("[HTTP] %s %s %d %dB %s rid=%s",
			r.Method, r.URL.Path, wrapped.statusCode, wrapped.bytesWritten,
			time.Since(start).Round(time.Millisecond), requestID)
	})
}
