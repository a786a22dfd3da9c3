// Cinequiz - Quiz-Driven Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinequiz

package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration loaded from defaults, an
// optional YAML file and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in defaults for every setting
//  2. Config File: Optional YAML config file (config.yaml)
//  3. Environment Variables: Override any setting
//
// Credentials under Catalog and Arbiter are optional. They are used only when
// a submission does not carry its own keys.
//
// Config is immutable after Load() and safe for concurrent read access.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
	Catalog   CatalogConfig   `koanf:"catalog"`
	Arbiter   ArbiterConfig   `koanf:"arbiter"`
	Cache     CacheConfig     `koanf:"cache"`
	Recommend RecommendConfig `koanf:"recommend"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port        int           `koanf:"port"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"` // "development", "staging", "production"
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// SecurityConfig holds inbound CORS and rate limiting settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	// Default: false
	Caller bool `koanf:"caller"`
}

// CatalogConfig holds TMDB client settings.
//
// Environment Variables:
//   - TMDB_BASE_URL, TMDB_IMAGE_BASE_URL
//   - TMDB_API_KEY, TMDB_BEARER_TOKEN: server-side fallback credentials
//   - TMDB_TIMEOUT, TMDB_MAX_ATTEMPTS, TMDB_RETRY_BASE_DELAY, TMDB_RETRY_MAX_DELAY
//   - TMDB_DISCOVER_TTL, TMDB_DETAIL_TTL
//   - TMDB_REQUESTS_PER_SECOND, TMDB_BURST
type CatalogConfig struct {
	BaseURL           string        `koanf:"base_url"`
	ImageBaseURL      string        `koanf:"image_base_url"`
	APIKey            string        `koanf:"api_key"`
	BearerToken       string        `koanf:"bearer_token"`
	Timeout           time.Duration `koanf:"timeout"`
	MaxAttempts       int           `koanf:"max_attempts"`
	RetryBaseDelay    time.Duration `koanf:"retry_base_delay"`
	RetryMaxDelay     time.Duration `koanf:"retry_max_delay"`
	DiscoverTTL       time.Duration `koanf:"discover_ttl"`
	DetailTTL         time.Duration `koanf:"detail_ttl"`
	RequestsPerSecond float64       `koanf:"requests_per_second"`
	Burst             int           `koanf:"burst"`
}

// ArbiterConfig holds language model settings.
type ArbiterConfig struct {
	BaseURL         string        `koanf:"base_url"`
	APIKey          string        `koanf:"api_key"`
	DefaultModel    string        `koanf:"default_model"`
	AllowedModels   []string      `koanf:"allowed_models"`
	Timeout         time.Duration `koanf:"timeout"`
	Temperature     float64       `koanf:"temperature"`
	MaxOutputTokens int           `koanf:"max_output_tokens"`
}

// CacheConfig selects the response cache backend.
type CacheConfig struct {
	// Backend is "memory" (default) or "badger".
	Backend string `koanf:"backend"`

	// Path is the Badger directory (backend=badger only).
	Path string `koanf:"path"`

	// CleanupInterval is the expiry sweep period for memory and the
	// value-log GC period for Badger.
	CleanupInterval time.Duration `koanf:"cleanup_interval"`
}

// RecommendConfig holds pipeline settings and the defaults applied to
// filter fields a submission leaves out.
type RecommendConfig struct {
	ShortlistSize           int           `koanf:"shortlist_size"`
	RequestTimeout          time.Duration `koanf:"request_timeout"`
	Languages               []string      `koanf:"languages"`
	DefaultLanguage         string        `koanf:"default_language"`
	DefaultIncludeAdult     bool          `koanf:"default_include_adult"`
	DefaultMinVoteAverage   float64       `koanf:"default_min_vote_average"`
	DefaultMinVoteCount     int           `koanf:"default_min_vote_count"`
	DefaultPageCount        int           `koanf:"default_page_count"`
	DefaultShowTrailer      bool          `koanf:"default_show_trailer"`
	ArbiterEnabledByDefault bool          `koanf:"arbiter_enabled_by_default"`
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// HasCatalogCredentials reports whether server-side TMDB credentials exist.
func (c *Config) HasCatalogCredentials() bool {
	return c.Catalog.APIKey != "" || c.Catalog.BearerToken != ""
}

// Load reads configuration from defaults, the optional config file and the
// environment, then validates it.
//
// See LoadWithKoanf() for the underlying implementation.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
