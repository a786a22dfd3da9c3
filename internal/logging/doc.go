// Cinequiz - Quiz-Driven Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinequiz

// Package logging provides zerolog-based structured logging for Cinequiz.
//
// A single global logger is configured at startup from the logging section
// of the application config. Components derive child loggers with a
// "component" field, and request handlers log through Ctx so that every
// line carries the request and correlation IDs placed by the HTTP
// middleware.
//
// # Quick Start
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//	logging.Info().Msg("Server starting")
//	logging.Ctx(ctx).Warn().Err(err).Msg("Detail lookup failed")
//
// # Environment Variables
//
//	LOG_LEVEL   - trace, debug, info, warn, error (default: info)
//	LOG_FORMAT  - json, console (default: json)
//	LOG_CALLER  - true, false (default: false)
//
// # Credentials
//
// Catalog and language-model credentials arrive with each request and must
// never be written to logs. Use MaskSecret when a credential needs to be
// referenced at all, and prefer logging the auth fingerprint instead.
//
// # Supervisor Integration
//
// NewSlogLogger returns a log/slog logger backed by zerolog. The supervisor
// tree hands it to sutureslog so that restart and failure events share the
// same output stream and format.
package logging
