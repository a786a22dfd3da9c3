// Cinequiz - Quiz-Driven Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinequiz

package apperrors

import (
	"errors"
	"net/http"
)

// API error codes.
const (
	CodeConfiguration       = "CONFIGURATION_ERROR"
	CodeUpstreamAuth        = "UPSTREAM_AUTH_ERROR"
	CodeUpstreamRateLimited = "UPSTREAM_RATE_LIMITED"
	CodeUpstreamUnavailable = "UPSTREAM_UNAVAILABLE"
	CodeUpstreamError       = "UPSTREAM_ERROR"
	CodeParse               = "PARSE_ERROR"
	CodeEmptyResult         = "EMPTY_RESULT"
	CodeInternal            = "INTERNAL_ERROR"
)

// Code maps err onto a stable API error code.
func Code(err error) string {
	var (
		cfgErr   *ConfigurationError
		transErr *TransientNetworkError
		hardErr  *HardAPIError
		parseErr *ParseError
	)
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrEmptyResult):
		return CodeEmptyResult
	case errors.As(err, &cfgErr):
		return CodeConfiguration
	case errors.As(err, &transErr):
		return CodeUpstreamUnavailable
	case errors.As(err, &hardErr):
		switch {
		case hardErr.IsAuthFailure():
			return CodeUpstreamAuth
		case hardErr.StatusCode == http.StatusTooManyRequests:
			return CodeUpstreamRateLimited
		default:
			return CodeUpstreamError
		}
	case errors.As(err, &parseErr):
		return CodeParse
	default:
		return CodeInternal
	}
}

// HTTPStatus maps err onto the status code returned to API clients.
// Upstream credential rejections are the caller's problem (400), other
// upstream failures are gateway errors.
func HTTPStatus(err error) int {
	switch Code(err) {
	case "", CodeEmptyResult:
		return http.StatusOK
	case CodeConfiguration, CodeUpstreamAuth:
		return http.StatusBadRequest
	case CodeUpstreamRateLimited:
		return http.StatusTooManyRequests
	case CodeUpstreamUnavailable:
		return http.StatusServiceUnavailable
	case CodeUpstreamError, CodeParse:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
