// Package metrics collects and exposes Prometheus metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Search outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// SearchRecorder records member search results. Used by the member service.
type SearchRecorder interface {
	RecordSearch(outcome string, filters, results int)
}

// HTTPRecorder records served HTTP requests. Used by the metrics middleware.
type HTTPRecorder interface {
	RecordHTTPRequest(method, path string, status int, duration time.Duration)
}

// Collector is the Prometheus implementation of SearchRecorder and HTTPRecorder.
type Collector struct {
	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
	searches      *prometheus.CounterVec
	searchResults prometheus.Histogram
	searchFilters prometheus.Histogram
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "member_search_http_requests_total",
			Help: "Total HTTP requests by method, route and status.",
		}, []string{"method", "path", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "member_search_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "member_search_searches_total",
			Help: "Member searches by outcome.",
		}, []string{"outcome"}),
		searchResults: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "member_search_search_results",
			Help:    "Number of members returned per search.",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		}),
		searchFilters: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "member_search_search_filters",
			Help:    "Number of active filters per search.",
			Buckets: []float64{0, 1, 2, 3, 4},
		}),
	}

	reg.MustRegister(
		c.httpRequests,
		c.httpDuration,
		c.searches,
		c.searchResults,
		c.searchFilters,
	)

	return c
}

// RecordHTTPRequest records one served request.
func (c *Collector) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	c.httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	c.httpDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordSearch records one member search. Result counts are only observed on success.
func (c *Collector) RecordSearch(outcome string, filters, results int) {
	c.searches.WithLabelValues(outcome).Inc()
	c.searchFilters.Observe(float64(filters))
	if outcome == OutcomeSuccess {
		c.searchResults.Observe(float64(results))
	}
}

// Handler returns the HTTP handler for Prometheus scraping.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
