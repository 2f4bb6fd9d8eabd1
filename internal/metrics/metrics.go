// Cinemora - Web Series Reviews and Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemora

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
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
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"scope"}, // "api", "auth"
	)

	// Response cache
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"namespace"}, // "series", "series_detail", "genres", "tvmaze"
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"namespace"},
	)

	CacheSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_entries",
			Help: "Current number of cached entries",
		},
		[]string{"backend"},
	)

	CacheEvictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_evictions_total",
			Help: "Total number of cache evictions (TTL expiry)",
		},
		[]string{"backend"},
	)

	CacheInvalidations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_invalidations_total",
			Help: "Total number of full cache clears",
		},
		[]string{"reason"}, // "review", "admin"
	)

	// Domain writes
	ReviewMutations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "review_mutations_total",
			Help: "Total number of review writes",
		},
		[]string{"action"}, // "create", "update", "delete"
	)

	CatalogMutations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_mutations_total",
			Help: "Total number of admin catalog writes",
		},
		[]string{"action"},
	)

	CatalogJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_job_duration_seconds",
			Help:    "Duration of catalog maintenance jobs",
			Buckets: []float64{0.1, 0.5, 1, 5, 15, 30, 60, 120, 300},
		},
		[]string{"job"},
	)

	CatalogJobRows = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_job_rows_total",
			Help: "Series rows changed by catalog maintenance jobs",
		},
		[]string{"job"},
	)

	// Audit trail
	AuditEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "audit_events_total",
			Help: "Audit events accepted for persistence",
		},
		[]string{"type", "outcome"},
	)

	AuditEventsDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "audit_events_dropped_total",
			Help: "Audit events dropped because the write buffer was full",
		},
	)

	AuditEventsPurged = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "audit_events_purged_total",
			Help: "Audit events removed by retention cleanup",
		},
	)

	// Live feed
	WebSocketClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "websocket_clients",
			Help: "Connected live feed clients",
		},
	)

	WebSocketBroadcasts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "websocket_broadcasts_total",
			Help: "Live feed messages queued for broadcast",
		},
		[]string{"type", "result"}, // result: "queued", "dropped"
	)

	// TVMaze upstream
	TVMazeRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tvmaze_request_duration_seconds",
			Help:    "Duration of TVMaze API calls",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	TVMazeErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tvmaze_errors_total",
			Help: "Total number of failed TVMaze API calls",
		},
		[]string{"endpoint"},
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

// RecordCacheLookup counts a hit or miss for a cache namespace.
func RecordCacheLookup(namespace string, hit bool) {
	if hit {
		CacheHits.WithLabelValues(namespace).Inc()
		return
	}
	CacheMisses.WithLabelValues(namespace).Inc()
}

// RecordCacheCleanup publishes the janitor's view of a cache backend.
func RecordCacheCleanup(backend string, removed, entries int) {
	if removed > 0 {
		CacheEvictions.WithLabelValues(backend).Add(float64(removed))
	}
	CacheSize.WithLabelValues(backend).Set(float64(entries))
}

// RecordCacheInvalidation counts a full cache clear.
func RecordCacheInvalidation(reason string) {
	CacheInvalidations.WithLabelValues(reason).Inc()
}

// RecordReviewMutation counts a review create, update or delete.
func RecordReviewMutation(action string) {
	ReviewMutations.WithLabelValues(action).Inc()
}

// RecordCatalogMutation counts an admin catalog write.
func RecordCatalogMutation(action string) {
	CatalogMutations.WithLabelValues(action).Inc()
}

// RecordCatalogJob records a maintenance job run.
func RecordCatalogJob(job string, duration time.Duration, rows int) {
	CatalogJobDuration.WithLabelValues(job).Observe(duration.Seconds())
	if rows > 0 {
		CatalogJobRows.WithLabelValues(job).Add(float64(rows))
	}
}

// RecordTVMazeRequest records one upstream call.
func RecordTVMazeRequest(endpoint string, duration time.Duration, err error) {
	TVMazeRequestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
	if err != nil {
		TVMazeErrors.WithLabelValues(endpoint).Inc()
	}
}

// RecordAuditEvent counts an audit event by type and outcome, or a drop
// when the write buffer was full.
func RecordAuditEvent(eventType, outcome string, dropped bool) {
	if dropped {
		AuditEventsDropped.Inc()
		return
	}
	AuditEvents.WithLabelValues(eventType, outcome).Inc()
}

// RecordAuditPurge counts events removed by retention cleanup.
func RecordAuditPurge(n int64) {
	if n > 0 {
		AuditEventsPurged.Add(float64(n))
	}
}

// RecordWebSocketBroadcast counts a live feed message.
func RecordWebSocketBroadcast(messageType string, dropped bool) {
	result := "queued"
	if dropped {
		result = "dropped"
	}
	WebSocketBroadcasts.WithLabelValues(messageType, result).Inc()
}
