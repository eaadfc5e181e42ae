// Cinemate - Movie Recommendation API and Catalog Tooling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemate

// Package metrics defines Prometheus metrics for the API, the recommendation
// engine, and the catalog ingest pipeline. All metrics register on the default
// registry and are exposed on GET /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API endpoint metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinemate_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cinemate_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cinemate_api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Recommendation engine metrics
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinemate_recommendations_total",
			Help: "Total recommendation requests by outcome (success, not_found, error)",
		},
		[]string{"outcome"},
	)

	EngineTrainDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cinemate_engine_train_duration_seconds",
			Help:    "Duration of recommendation engine training runs",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 120},
		},
	)

	EngineCatalogSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cinemate_engine_catalog_size",
			Help: "Number of catalog movies indexed by the engine",
		},
	)

	// Catalog ingest metrics
	IngestRowsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinemate_ingest_rows_total",
			Help: "Catalog rows processed by the ingest pipeline, by result (imported, skipped, error)",
		},
		[]string{"result"},
	)

	IngestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cinemate_ingest_duration_seconds",
			Help:    "Duration of catalog ingest runs",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300, 600},
		},
	)
)

// RecordAPIRequest records one completed API request.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest adjusts the active request gauge. Call with true when a
// request starts and false when it completes.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRecommendation records a recommendation request outcome.
func RecordRecommendation(outcome string) {
	RecommendationsTotal.WithLabelValues(outcome).Inc()
}

// RecordTrainDuration records a completed engine training run.
func RecordTrainDuration(duration time.Duration) {
	EngineTrainDuration.Observe(duration.Seconds())
}

// SetCatalogSize updates the indexed catalog size gauge.
func SetCatalogSize(n int) {
	EngineCatalogSize.Set(float64(n))
}

// RecordIngestRows adds n processed ingest rows with the given result.
func RecordIngestRows(result string, n int64) {
	if n > 0 {
		IngestRowsTotal.WithLabelValues(result).Add(float64(n))
	}
}

// RecordIngestDuration records a completed catalog ingest run.
func RecordIngestDuration(duration time.Duration) {
	IngestDuration.Observe(duration.Seconds())
}
