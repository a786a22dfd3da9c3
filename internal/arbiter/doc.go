// Cinequiz - Quiz-Driven Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinequiz

// Package arbiter asks a language model to pick one movie from a shortlist.
//
// The client calls the OpenAI Responses API (POST /responses) with a strict
// JSON schema output format:
//
//	{"movie_id": int, "title": string, "reason": string, "confidence": 0..1}
//
// The output text is collected from every output_text part of every message
// item. It is parsed as JSON; when that fails the substring from the first
// '{' to the last '}' is tried once more. The decoded object is validated
// against the same schema that was sent to the model.
//
// # Errors
//
// The arbiter never retries. Failures map to the apperrors taxonomy:
//
//   - missing API key or disallowed model: *apperrors.ConfigurationError
//   - HTTP 401/403, 429, any other status >= 400, transport failure:
//     *apperrors.HardAPIError
//   - unusable output: *apperrors.ParseError
//
// Callers decide whether a verdict references a shortlisted movie.
package arbiter
