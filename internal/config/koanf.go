// Cinequiz - Quiz-Driven Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinequiz

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/cinequiz/config.yaml",
	"/etc/cinequiz/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        8080,
			Host:        "0.0.0.0",
			Timeout:     30 * time.Second,
			Environment: "development",
		},
		Security: SecurityConfig{
			CORSOrigins:       []string{"*"},
			RateLimitReqs:     60,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Catalog: CatalogConfig{
			BaseURL:           "https://api.themoviedb.org/3",
			ImageBaseURL:      "https://image.tmdb.org/t/p/w500",
			Timeout:           15 * time.Second,
			MaxAttempts:       4,
			RetryBaseDelay:    1200 * time.Millisecond,
			RetryMaxDelay:     8 * time.Second,
			DiscoverTTL:       30 * time.Minute,
			DetailTTL:         60 * time.Minute,
			RequestsPerSecond: 20,
			Burst:             5,
		},
		Arbiter: ArbiterConfig{
			BaseURL:         "https://api.openai.com/v1",
			DefaultModel:    "gpt-5-mini",
			AllowedModels:   []string{"gpt-5-mini", "gpt-4o-mini", "gpt-4.1-mini"},
			Timeout:         30 * time.Second,
			Temperature:     0.4,
			MaxOutputTokens: 400,
		},
		Cache: CacheConfig{
			Backend:         "memory",
			Path:            "/data/cache",
			CleanupInterval: 5 * time.Minute,
		},
		Recommend: RecommendConfig{
			ShortlistSize:           5,
			RequestTimeout:          2 * time.Minute,
			Languages:               []string{"ko-KR", "en-US", "ja-JP"},
			DefaultLanguage:         "ko-KR",
			DefaultIncludeAdult:     false,
			DefaultMinVoteAverage:   6.0,
			DefaultMinVoteCount:     200,
			DefaultPageCount:        2,
			DefaultShowTrailer:      true,
			ArbiterEnabledByDefault: true,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any setting
//
// Precedence is ENV > File > Defaults.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	defaults := defaultConfig()
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	configPath := findConfigFile()
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	// TMDB_API_KEY -> catalog.api_key
	// RECOMMEND_PAGE_COUNT -> recommend.default_page_count
	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Post-process slice fields from comma-separated strings
	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"security.cors_origins",
	"arbiter.allowed_models",
	"recommend.languages",
}

// processSliceFields converts comma-separated string values to slices
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}
		if _, ok := val.([]string); ok {
			continue
		}

		if strVal, ok := val.(string); ok {
			if strVal == "" {
				continue
			}
			parts := strings.Split(strVal, ",")
			trimmed := make([]string, 0, len(parts))
			for _, p := range parts {
				p = strings.TrimSpace(p)
				if p != "" {
					trimmed = append(trimmed, p)
				}
			}
			if len(trimmed) > 0 {
				if err := k.Set(path, trimmed); err != nil {
					return fmt.Errorf("failed to set %s: %w", path, err)
				}
			}
		}
	}
	return nil
}

// envMappings maps lowercased environment variable names to koanf paths.
var envMappings = map[string]string{
	// Server mappings
	"http_port":    "server.port",
	"http_host":    "server.host",
	"http_timeout": "server.timeout",
	"environment":  "server.environment",

	// Security mappings
	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",

	// Logging mappings
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// Catalog (TMDB) mappings
	"tmdb_base_url":            "catalog.base_url",
	"tmdb_image_base_url":      "catalog.image_base_url",
	"tmdb_api_key":             "catalog.api_key",
	"tmdb_bearer_token":        "catalog.bearer_token",
	"tmdb_timeout":             "catalog.timeout",
	"tmdb_max_attempts":        "catalog.max_attempts",
	"tmdb_retry_base_delay":    "catalog.retry_base_delay",
	"tmdb_retry_max_delay":     "catalog.retry_max_delay",
	"tmdb_discover_ttl":        "catalog.discover_ttl",
	"tmdb_detail_ttl":          "catalog.detail_ttl",
	"tmdb_requests_per_second": "catalog.requests_per_second",
	"tmdb_burst":               "catalog.burst",

	// Arbiter (OpenAI) mappings
	"openai_base_url":          "arbiter.base_url",
	"openai_api_key":           "arbiter.api_key",
	"openai_model":             "arbiter.default_model",
	"openai_allowed_models":    "arbiter.allowed_models",
	"openai_timeout":           "arbiter.timeout",
	"openai_temperature":       "arbiter.temperature",
	"openai_max_output_tokens": "arbiter.max_output_tokens",

	// Cache mappings
	"cache_backend":          "cache.backend",
	"cache_path":             "cache.path",
	"cache_cleanup_interval": "cache.cleanup_interval",

	// Recommendation pipeline mappings
	"recommend_shortlist_size":   "recommend.shortlist_size",
	"recommend_request_timeout":  "recommend.request_timeout",
	"recommend_languages":        "recommend.languages",
	"recommend_language":         "recommend.default_language",
	"recommend_include_adult":    "recommend.default_include_adult",
	"recommend_min_vote_average": "recommend.default_min_vote_average",
	"recommend_min_vote_count":   "recommend.default_min_vote_count",
	"recommend_page_count":       "recommend.default_page_count",
	"recommend_show_trailer":     "recommend.default_show_trailer",
	"recommend_arbiter_enabled":  "recommend.arbiter_enabled_by_default",
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - HTTP_PORT -> server.port
//   - TMDB_BEARER_TOKEN -> catalog.bearer_token
//   - OPENAI_MODEL -> arbiter.default_model
//   - RECOMMEND_PAGE_COUNT -> recommend.default_page_count
func envTransformFunc(key string) string {
	key = strings.ToLower(key)

	if mapped, ok := envMappings[key]; ok {
		return mapped
	}

	// Unmapped keys are skipped so unrelated variables never reach config
	return ""
}
