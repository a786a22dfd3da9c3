// Cinequiz - Quiz-Driven Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinequiz

// Package apperrors defines the error taxonomy shared by the catalog client,
// the arbiter and the recommendation pipeline.
//
// Four typed errors cover the failure classes of a submission:
//
//   - ConfigurationError: a credential or setting is missing. Raised before
//     any network call is made.
//   - TransientNetworkError: rate limiting, server errors or transport
//     failures that outlived the retry budget (or an open circuit breaker).
//   - HardAPIError: a non-retryable upstream answer such as 401 or a
//     malformed payload.
//   - ParseError: language-model output that could not be turned into a
//     verdict.
//
// ErrEmptyResult marks the "no candidates" terminal state. It is not a
// failure and the HTTP layer reports it with a 200 response.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrEmptyResult indicates that no movie satisfied the requested filters.
var ErrEmptyResult = errors.New("no candidates matched the filters")

// ConfigurationError reports a missing credential or invalid setting.
type ConfigurationError struct {
	Field   string
	Message string
}

// NewConfigurationError creates a configuration error for field.
func NewConfigurationError(field, message string) *ConfigurationError {
	return &ConfigurationError{Field: field, Message: message}
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	if e.Field == "" {
		return "configuration error: " + e.Message
	}
	return "configuration error: " + e.Field + ": " + e.Message
}

// TransientNetworkError is returned once every attempt of a retried call has
// failed with a retryable condition. Cause holds the last underlying error.
type TransientNetworkError struct {
	Service    string
	Attempts   int
	StatusCode int // last HTTP status, 0 for transport failures
	Cause      error
}

// Error implements the error interface.
func (e *TransientNetworkError) Error() string {
	msg := fmt.Sprintf("%s unavailable after %d attempt(s)", e.Service, e.Attempts)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (last status %d)", e.StatusCode)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the last underlying error.
func (e *TransientNetworkError) Unwrap() error {
	return e.Cause
}

// HardAPIError is a non-retryable upstream failure.
type HardAPIError struct {
	Service    string
	StatusCode int // 0 when no HTTP response was received
	Message    string
	Cause      error
}

// Error implements the error interface.
func (e *HardAPIError) Error() string {
	msg := e.Service + " request failed"
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" with status %d", e.StatusCode)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *HardAPIError) Unwrap() error {
	return e.Cause
}

// IsAuthFailure reports whether the upstream rejected the credential.
func (e *HardAPIError) IsAuthFailure() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// ParseError reports output that could not be decoded into the expected
// structure.
type ParseError struct {
	Service string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	msg := e.Service + ": " + e.Message
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *ParseError) Unwrap() error {
	return e.Cause
}
