// Cinequiz - Quiz-Driven Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinequiz

/*
Package middleware provides HTTP middleware shared by the API router.

Key Components:

  - RequestID: accepts or generates X-Request-ID and seeds the logging
    context with request and correlation IDs
  - PrometheusMetrics: request count, latency and in-flight gauge, labelled
    by chi route pattern rather than raw path
  - AccessLog: one zerolog line per request, written through the request
    logger so IDs are attached

All middleware has the chi signature func(http.Handler) http.Handler.

Typical order:

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.AccessLog)
	r.Use(middleware.PrometheusMetrics)

Metrics are labelled with the matched route pattern; requests that match no
route are recorded under "unmatched" so arbitrary paths cannot grow label
cardinality.
*/
package middleware
