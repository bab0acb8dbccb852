package httpx

import (
	"net/http"
	"strconv"
	"time"

	"github.com/hirewire/hirewire-api/internal/observability/statsd"
)

// Metrics returns a middleware that emits request counts and latency per
// method, path, and status. A nil sink disables emission.
func Metrics(sink statsd.Sink) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if sink == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := &respWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(ww, r)

			tags := map[string]string{
				"method": r.Method,
				"path":   r.URL.Path,
				"status": strconv.Itoa(ww.status),
			}
			sink.Count("http.requests", 1, tags)
			sink.Timing("http.request_duration", time.Since(start), tags)
		})
	}
}
