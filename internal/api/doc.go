// Cinequiz - Quiz-Driven Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinequiz

/*
Package api provides the HTTP REST API layer for Cinequiz.

Endpoints:

	GET  /api/v1/health/live        liveness
	GET  /api/v1/health/ready       readiness (cache round-trip, breaker states)
	GET  /api/v1/quiz/questions     question set, categories and genre table
	POST /api/v1/quiz/classify      answers -> genre, rationale, tally (no upstream calls)
	POST /api/v1/recommendations    full pipeline: discover, rank, enrich, arbitrate
	GET  /metrics                   Prometheus exposition

Every JSON body uses the models.APIResponse envelope:

	{"status": "success", "data": {...}, "metadata": {"timestamp": "...", "query_time_ms": 12}}
	{"status": "error", "data": null, "metadata": {...}, "error": {"code": "VALIDATION_ERROR", "message": "..."}}

Request bodies are validated with go-playground/validator tags, then against
values that come from configuration (languages, allowed models). Pipeline
errors are mapped with apperrors.Code and apperrors.HTTPStatus.

Credentials sent in a recommendation request are used for that request only.
They are never logged, cached, or echoed back.

Middleware stack (in order): request ID, real IP, access log, panic recovery,
CORS; then per group: go-chi/httprate limiting, security headers, Prometheus
request metrics.
*/
package api
