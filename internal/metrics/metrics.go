// Package metrics exposes Prometheus instrumentation for the recommendation pipeline and HTTP API.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recommendation outcomes.
const (
	OutcomeMatched  = "matched"
	OutcomeNoMatch  = "no_match"
	OutcomeDegraded = "degraded"
)

var (
	// Pipeline Metrics
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookrec_recommendations_total",
			Help: "Total number of recommendation queries by outcome",
		},
		[]string{"outcome"}, // "matched", "no_match", "degraded"
	)

	CatalogLoadFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bookrec_catalog_load_failures_total",
			Help: "Total number of catalog loads that fell back to an empty catalog",
		},
	)

	StoreWriteErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bookrec_store_write_errors_total",
			Help: "Total number of failed writes to the recommendation store or user input log",
		},
	)

	PipelineDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "bookrec_pipeline_duration_seconds",
			Help:    "Duration of a full load, score, recommend and persist run in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookrec_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "route", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bookrec_api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "route"},
	)
)

// RecordRecommendation counts one finished query and its pipeline duration.
func RecordRecommendation(outcome string, duration time.Duration) {
	RecommendationsTotal.WithLabelValues(outcome).Inc()
	PipelineDuration.Observe(duration.Seconds())
}

// RecordCatalogLoadFailure counts a degraded catalog load.
func RecordCatalogLoadFailure() {
	CatalogLoadFailures.Inc()
}

// RecordStoreWriteError counts a failed persistence write.
func RecordStoreWriteError() {
	StoreWriteErrors.Inc()
}

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, route string, statusCode int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, route, strconv.Itoa(statusCode)).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}
