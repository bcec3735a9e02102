package api

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"travel-search-service/internal/metrics"
	"travel-search-service/internal/platform/obs"
)

// statusWriter captures the final HTTP status code and number of bytes written.
// This helps distinguish "handler returned 200" from "client received a response".
type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// Record implicit 200 responses when handlers write without calling WriteHeader.
func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}

	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// requestIDMiddleware assigns each request an identifier (honoring one the
// client supplied), threads it through the context for log correlation, and
// echoes it in the response.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}

		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(obs.WithRequestID(r.Context(), id)))
	})
}

// loggingMiddleware logs end-to-end request duration and response size for
// basic observability.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		sw := &statusWriter{
			ResponseWriter: w,
			status:         0,
		}

		next.ServeHTTP(sw, r)

		duration := time.Since(start).Milliseconds()

		log.Printf(
			"req_id=%s method=%s path=%s status=%d bytes=%d dur=%dms",
			obs.RequestID(r.Context()), r.Method, r.URL.RequestURI(), sw.status, sw.bytes, duration,
		)
	})
}

// metricsMiddleware records the request counter and duration histogram.
func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		sw := &statusWriter{ResponseWriter: w}
		next.ServeHTTP(sw, r)

		status := strconv.Itoa(sw.status)
		metrics.HTTPRequests.WithLabelValues(r.Method, r.URL.Path, status).Inc()
		metrics.HTTPDuration.WithLabelValues(r.Method, r.URL.Path, status).Observe(time.Since(start).Seconds())
	})
}
