// Cinequiz - Quiz-Driven Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinequiz

package metrics

import (
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Upstream call outcomes used as label values.
const (
	OutcomeSuccess   = "success"
	OutcomeRetryable = "retryable"
	OutcomeHardError = "hard_error"
	OutcomeParse     = "parse_error"
	OutcomeCached    = "cached"
)

var (
	// API Metrics
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
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
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
			Help: "Total number of requests rejected by the inbound rate limiter",
		},
		[]string{"endpoint"},
	)

	// Catalog (TMDB) Metrics
	CatalogRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_requests_total",
			Help: "Total number of logical catalog calls by outcome",
		},
		[]string{"endpoint", "outcome"}, // endpoint: "discover", "detail"
	)

	CatalogRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_request_duration_seconds",
			Help:    "Duration of individual catalog HTTP attempts",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 15},
		},
		[]string{"endpoint"},
	)

	CatalogRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_retries_total",
			Help: "Total number of catalog retries by trigger",
		},
		[]string{"endpoint", "reason"}, // reason: "rate_limited", "server_error", "transport"
	)

	CatalogDetailFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_detail_fallbacks_total",
			Help: "Detail lookups that failed and fell back to discovery data",
		},
	)

	// Arbiter (language model) Metrics
	ArbiterRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "arbiter_requests_total",
			Help: "Total number of arbiter calls by model and outcome",
		},
		[]string{"model", "outcome"},
	)

	ArbiterRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "arbiter_request_duration_seconds",
			Help:    "Duration of arbiter calls",
			Buckets: []float64{0.5, 1, 2, 4, 8, 15, 30},
		},
		[]string{"model"},
	)

	ArbiterVerdictsDiscarded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "arbiter_verdicts_discarded_total",
			Help: "Verdicts dropped because the movie was not in the shortlist",
		},
	)

	// Recommendation pipeline
	Recommendations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendations_total",
			Help: "Total number of recommendation submissions by genre and outcome",
		},
		[]string{"genre", "outcome"}, // outcome: "shortlist", "verdict", "empty", "error"
	)

	// Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_type"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_type"},
	)

	CacheSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_entries",
			Help: "Current number of cached entries",
		},
		[]string{"cache_type"},
	)

	CacheEvictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_evictions_total",
			Help: "Total number of cache evictions (TTL expiry)",
		},
		[]string{"cache_type"},
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

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
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

// RecordCatalogAttempt observes the duration of one catalog HTTP attempt.
func RecordCatalogAttempt(endpoint string, duration time.Duration) {
	CatalogRequestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// RecordCatalogRetry counts a retry and what triggered it.
func RecordCatalogRetry(endpoint, reason string) {
	CatalogRetries.WithLabelValues(endpoint, reason).Inc()
}

// RecordCatalogCall counts a finished logical catalog call.
func RecordCatalogCall(endpoint, outcome string) {
	CatalogRequests.WithLabelValues(endpoint, outcome).Inc()
}

// RecordArbiterCall records a finished arbiter call.
func RecordArbiterCall(model, outcome string, duration time.Duration) {
	ArbiterRequests.WithLabelValues(model, outcome).Inc()
	ArbiterRequestDuration.WithLabelValues(model).Observe(duration.Seconds())
}

// RecordRecommendation counts a finished submission.
func RecordRecommendation(genre, outcome string) {
	Recommendations.WithLabelValues(genre, outcome).Inc()
}

// RecordCacheLookup counts a cache hit or miss for cacheType.
func RecordCacheLookup(cacheType string, hit bool) {
	if hit {
		CacheHits.WithLabelValues(cacheType).Inc()
		return
	}
	CacheMisses.WithLabelValues(cacheType).Inc()
}

// RecordCacheEvictions adds n evictions for cacheType.
func RecordCacheEvictions(cacheType string, n int) {
	if n > 0 {
		CacheEvictions.WithLabelValues(cacheType).Add(float64(n))
	}
}

// SetAppInfo publishes the running version.
func SetAppInfo(version string) {
	AppInfo.WithLabelValues(version, runtime.Version()).Set(1)
}
