// Cinequiz - Quiz-Driven Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinequiz

/*
Package metrics provides Prometheus instrumentation for Cinequiz.

All collectors are registered with the default registry through promauto and
exposed by the HTTP server at /metrics.

Metric families:

  - api_*: inbound HTTP requests (count, latency, in-flight, rate-limit rejections)
  - catalog_*: catalog calls by endpoint and outcome, per-attempt latency,
    retries by trigger, detail fallbacks
  - arbiter_*: language-model calls by model and outcome, latency, discarded verdicts
  - recommendations_total: submissions by genre and outcome
  - cache_*: hits, misses, size and evictions per cache
  - circuit_breaker_*: state, results and transitions per breaker

Record* helpers keep label handling in one place:

	metrics.RecordCatalogRetry("discover", "rate_limited")
	metrics.RecordArbiterCall("gpt-5-mini", metrics.OutcomeSuccess, elapsed)
*/
package metrics
