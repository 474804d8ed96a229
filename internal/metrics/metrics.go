// Marquee - Semantic Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Recommendation Metrics
	RecommendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marquee_recommend_requests_total",
			Help: "Total number of recommendation requests",
		},
		[]string{"status"}, // "ok", "empty", "invalid_query", "not_ready", "embedding_unavailable", "error"
	)

	RecommendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "marquee_recommend_duration_seconds",
			Help:    "End-to-end recommendation latency in seconds",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
	)

	RecommendResults = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "marquee_recommend_results",
			Help:    "Number of results returned per recommendation after source filtering",
			Buckets: []float64{0, 1, 2, 3, 5, 8, 10, 20, 50},
		},
	)

	// Embedding Metrics
	EmbeddingRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marquee_embedding_requests_total",
			Help: "Total number of embedding calls by provider",
		},
		[]string{"provider", "status"},
	)

	EmbeddingDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "marquee_embedding_duration_seconds",
			Help:    "Embedding call latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"provider"},
	)

	EmbeddingCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "marquee_embedding_cache_hits_total",
			Help: "Total number of query embedding cache hits",
		},
	)

	EmbeddingCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "marquee_embedding_cache_misses_total",
			Help: "Total number of query embedding cache misses",
		},
	)

	// Catalog Index Metrics
	CatalogItems = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "marquee_catalog_items",
			Help: "Number of indexed catalog items per source",
		},
		[]string{"source"},
	)

	IndexBuildDuration = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "marquee_index_build_duration_seconds",
			Help: "Duration of the startup catalog embedding in seconds",
		},
	)

	IndexReady = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "marquee_index_ready",
			Help: "Whether the catalog index is ready (1) or not (0)",
		},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)
)

// RecordRecommendation records the outcome of one recommendation request.
func RecordRecommendation(status string, duration time.Duration, results int) {
	RecommendRequests.WithLabelValues(status).Inc()
	RecommendDuration.Observe(duration.Seconds())
	if status == "ok" || status == "empty" {
		RecommendResults.Observe(float64(results))
	}
}

// RecordEmbedding records one embedding provider call.
func RecordEmbedding(provider string, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	EmbeddingRequests.WithLabelValues(provider, status).Inc()
	EmbeddingDuration.WithLabelValues(provider).Observe(duration.Seconds())
}

// RecordIndexBuild records a completed catalog index build.
func RecordIndexBuild(duration time.Duration, itemsBySource map[string]int) {
	IndexBuildDuration.Set(duration.Seconds())
	for source, n := range itemsBySource {
		CatalogItems.WithLabelValues(source).Set(float64(n))
	}
	IndexReady.Set(1)
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
