// Cinequiz - Quiz-Driven Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinequiz

package config

import (
	"fmt"
	"regexp"
	"slices"
	"time"
)

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateSecurity(); err != nil {
		return err
	}

	if err := c.validateLogging(); err != nil {
		return err
	}

	if err := c.validateCatalog(); err != nil {
		return err
	}

	if err := c.validateArbiter(); err != nil {
		return err
	}

	if err := c.validateCache(); err != nil {
		return err
	}

	return c.validateRecommend()
}

var validEnvironments = map[string]bool{
	"development": true,
	"staging":     true,
	"production":  true,
}

// validateServer validates server configuration
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	if !validEnvironments[c.Server.Environment] {
		return fmt.Errorf("ENVIRONMENT must be one of: development, staging, production")
	}
	return nil
}

// Rate limit constants
const (
	minRateLimitRequests = 1           // Minimum 1 request allowed
	maxRateLimitRequests = 100000      // Maximum 100K requests per window
	minRateLimitWindow   = time.Second // Minimum 1 second window
	maxRateLimitWindow   = time.Hour   // Maximum 1 hour window
)

// validateSecurity validates CORS and rate limiting configuration
func (c *Config) validateSecurity() error {
	if len(c.Security.CORSOrigins) == 0 {
		return fmt.Errorf("CORS_ORIGINS must list at least one origin")
	}
	return c.validateRateLimits()
}

// validateRateLimits validates rate limiting configuration bounds.
func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

// HasWildcardCORS reports whether any origin is allowed.
func (c *Config) HasWildcardCORS() bool {
	return slices.Contains(c.Security.CORSOrigins, "*")
}

var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

// validateCatalog validates TMDB client settings. Credentials stay optional:
// submissions may carry their own.
func (c *Config) validateCatalog() error {
	cat := c.Catalog
	if err := validateBaseURL(cat.BaseURL, "TMDB_BASE_URL"); err != nil {
		return err
	}
	if err := validateBaseURL(cat.ImageBaseURL, "TMDB_IMAGE_BASE_URL"); err != nil {
		return err
	}
	if cat.Timeout <= 0 {
		return fmt.Errorf("TMDB_TIMEOUT must be positive")
	}
	if cat.MaxAttempts < 1 || cat.MaxAttempts > 10 {
		return fmt.Errorf("TMDB_MAX_ATTEMPTS must be between 1 and 10")
	}
	if cat.RetryBaseDelay <= 0 || cat.RetryMaxDelay < cat.RetryBaseDelay {
		return fmt.Errorf("TMDB_RETRY_BASE_DELAY must be positive and not exceed TMDB_RETRY_MAX_DELAY")
	}
	if cat.DiscoverTTL <= 0 || cat.DetailTTL <= 0 {
		return fmt.Errorf("TMDB_DISCOVER_TTL and TMDB_DETAIL_TTL must be positive")
	}
	if cat.RequestsPerSecond < 0 {
		return fmt.Errorf("TMDB_REQUESTS_PER_SECOND must not be negative")
	}
	if cat.RequestsPerSecond > 0 && cat.Burst < 1 {
		return fmt.Errorf("TMDB_BURST must be at least 1 when pacing is enabled")
	}
	return nil
}

// validateArbiter validates language model settings
func (c *Config) validateArbiter() error {
	arb := c.Arbiter
	if err := validateBaseURL(arb.BaseURL, "OPENAI_BASE_URL"); err != nil {
		return err
	}
	if len(arb.AllowedModels) == 0 {
		return fmt.Errorf("OPENAI_ALLOWED_MODELS must list at least one model")
	}
	if !slices.Contains(arb.AllowedModels, arb.DefaultModel) {
		return fmt.Errorf("OPENAI_MODEL %q is not in OPENAI_ALLOWED_MODELS", arb.DefaultModel)
	}
	if arb.Timeout <= 0 {
		return fmt.Errorf("OPENAI_TIMEOUT must be positive")
	}
	if arb.Temperature < 0 || arb.Temperature > 2 {
		return fmt.Errorf("OPENAI_TEMPERATURE must be between 0 and 2")
	}
	if arb.MaxOutputTokens < 1 {
		return fmt.Errorf("OPENAI_MAX_OUTPUT_TOKENS must be positive")
	}
	return nil
}

// validateCache validates the cache backend selection
func (c *Config) validateCache() error {
	switch c.Cache.Backend {
	case "memory":
	case "badger":
		if c.Cache.Path == "" {
			return fmt.Errorf("CACHE_PATH is required when CACHE_BACKEND=badger")
		}
	default:
		return fmt.Errorf("CACHE_BACKEND must be one of: memory, badger")
	}
	if c.Cache.CleanupInterval <= 0 {
		return fmt.Errorf("CACHE_CLEANUP_INTERVAL must be positive")
	}
	return nil
}

// languageTagPattern matches catalog language tags such as ko-KR.
var languageTagPattern = regexp.MustCompile(`^[a-z]{2,3}-[A-Z]{2}$`)

// validateRecommend validates pipeline settings and filter defaults.
// Range checks on the defaults are delegated to recommend.Filters when the
// pipeline config is built.
func (c *Config) validateRecommend() error {
	rec := c.Recommend
	if len(rec.Languages) == 0 {
		return fmt.Errorf("RECOMMEND_LANGUAGES must list at least one language")
	}
	for _, lang := range rec.Languages {
		if !languageTagPattern.MatchString(lang) {
			return fmt.Errorf("RECOMMEND_LANGUAGES contains invalid language tag %q", lang)
		}
	}
	if !slices.Contains(rec.Languages, rec.DefaultLanguage) {
		return fmt.Errorf("RECOMMEND_LANGUAGE %q is not in RECOMMEND_LANGUAGES", rec.DefaultLanguage)
	}
	if err := c.RecommendConfig().Validate(); err != nil {
		return fmt.Errorf("invalid recommend settings: %w", err)
	}
	return nil
}
