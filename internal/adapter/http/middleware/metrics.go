package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gobooks_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gobooks_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "gobooks_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)
)

// Metrics middleware records HTTP metrics.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		httpRequestsInFlight.Inc()
		defer httpRequestsInFlight.Dec()

		wrapped := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		duration := time.Since(start).Seconds()
		path := normalizePath(r.URL.Path)

		httpRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(wrapped.statusCode)).Inc()
		httpRequestDuration.WithLabelValues(r.Method, path).Observe(duration)
	})
}

// Collections whose next path segment is an id. Fixed sub-routes such as
// /expenses/journal are not ids.
var idCollections = []string{
	"/api/v1/accounts/",
	"/api/v1/journal-entries/",
}

var staticSegments = map[string]bool{
	"resolve": true,
}

// keyedSegments introduce a natural key in the segment that follows.
var keyedSegments = map[string]string{
	"code": ":code",
}

// normalizePath replaces ids in URL paths to avoid high cardinality:
// /api/v1/accounts/01ABC123/balance -> /api/v1/accounts/:id/balance
func normalizePath(path string) string {
	for _, prefix := range idCollections {
		rest, ok := strings.CutPrefix(path, prefix)
		if !ok || rest == "" {
			continue
		}

		id, suffix, found := strings.Cut(rest, "/")
		if staticSegments[id] {
			return path
		}
		if placeholder, ok := keyedSegments[id]; ok && found {
			_, tail, more := strings.Cut(suffix, "/")
			if more {
				return prefix + id + "/" + placeholder + "/" + tail
			}
			return prefix + id + "/" + placeholder
		}
		if found {
			return prefix + ":id/" + suffix
		}
		return prefix + ":id"
	}

	return path
}
