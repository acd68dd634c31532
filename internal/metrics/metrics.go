// Bookgraph - Knowledge Graph Book Recommendations
// Copyright 2026 Readmill Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/readmill/bookgraph

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

	// Recommendation engine metrics
	RecommendationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommendation_duration_seconds",
			Help:    "Duration of recommendation computations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"engine"}, // "weighted", "collaborative"
	)

	RecommendationsServed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendations_served_total",
			Help: "Total number of recommendation items returned",
		},
		[]string{"engine"},
	)

	RecommendationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_errors_total",
			Help: "Total number of failed recommendation requests",
		},
		[]string{"engine", "reason"}, // reason: "not_found", "cancelled", "internal"
	)

	// Graph store metrics
	GraphTriples = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "graph_triples",
			Help: "Current number of distinct triples in the graph store",
		},
	)

	GraphSnapshotDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "graph_snapshot_duration_seconds",
			Help:    "Duration of graph snapshot writes in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
		},
	)

	GraphSnapshotErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "graph_snapshot_errors_total",
			Help: "Total number of failed graph snapshot writes",
		},
	)

	// Importer metrics
	ImporterQueries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "importer_queries_total",
			Help: "Total number of SPARQL endpoint queries",
		},
		[]string{"outcome"}, // "ok", "error", "rejected"
	)

	ImporterTriplesAdded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "importer_triples_added_total",
			Help: "Total number of triples added by the importer",
		},
	)

	// Analytics metrics
	AnalyticsWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analytics_writes_total",
			Help: "Total number of analytics rows written",
		},
		[]string{"table"}, // "impressions", "likes"
	)

	AnalyticsWriteErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analytics_write_errors_total",
			Help: "Total number of failed analytics writes",
		},
		[]string{"table"},
	)

	// Event bus metrics
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "events_published_total",
			Help: "Total number of events published to the bus",
		},
		[]string{"topic"},
	)
)

// RecordRecommendation records one recommendation request. reason is
// only consulted when err is non-nil.
func RecordRecommendation(engine string, served int, duration time.Duration, err error, reason string) {
	RecommendationDuration.WithLabelValues(engine).Observe(duration.Seconds())
	if err != nil {
		RecommendationErrors.WithLabelValues(engine, reason).Inc()
		return
	}
	RecommendationsServed.WithLabelValues(engine).Add(float64(served))
}

// RecordSnapshot records one graph snapshot attempt.
func RecordSnapshot(duration time.Duration, err error) {
	GraphSnapshotDuration.Observe(duration.Seconds())
	if err != nil {
		GraphSnapshotErrors.Inc()
	}
}
