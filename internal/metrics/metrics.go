// Package metrics provides Prometheus metrics for the dirscope server.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Scan metrics
	scansTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dirscope_scans_total",
			Help: "Total number of scan requests",
		},
		[]string{"status"},
	)

	scanDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dirscope_scan_duration_seconds",
			Help:    "Scan duration in seconds, cache hits included",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
		},
	)

	// Cache metrics
	cacheHitsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dirscope_cache_hits_total",
			Help: "Scan requests served from the result cache",
		},
	)

	cacheMissesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dirscope_cache_misses_total",
			Help: "Scan requests that required a full traversal",
		},
	)

	cacheEvictionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dirscope_cache_evictions_total",
			Help: "Cache entries evicted to satisfy capacity bounds",
		},
	)

	cacheEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "dirscope_cache_entries",
			Help: "Number of entries currently in the result cache",
		},
	)

	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dirscope_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dirscope_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

// RecordScan records the outcome and duration of one scan request.
func RecordScan(status string, d time.Duration) {
	scansTotal.WithLabelValues(status).Inc()
	scanDuration.Observe(d.Seconds())
}

// RecordCacheHit counts a scan served from cache.
func RecordCacheHit() {
	cacheHitsTotal.Inc()
}

// RecordCacheMiss counts a scan that required a full traversal.
func RecordCacheMiss() {
	cacheMissesTotal.Inc()
}

// RecordCacheEviction counts a capacity eviction.
func RecordCacheEviction() {
	cacheEvictionsTotal.Inc()
}

// SetCacheEntries updates the cache size gauge.
func SetCacheEntries(n int) {
	cacheEntries.Set(float64(n))
}

// RecordHTTPRequest records one served HTTP request.
func RecordHTTPRequest(method, path string, status int, d time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, path).Observe(d.Seconds())
}

// Handler returns the Prometheus scrape handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
