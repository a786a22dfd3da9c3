// Cinequiz - Quiz-Driven Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinequiz

package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"
)

// TestDefaultConfig verifies that defaultConfig() returns proper defaults
func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want 0.0.0.0", cfg.Server.Host)
	}
	if cfg.Catalog.BaseURL != "https://api.themoviedb.org/3" {
		t.Errorf("Catalog.BaseURL = %q", cfg.Catalog.BaseURL)
	}
	if cfg.Catalog.MaxAttempts != 4 {
		t.Errorf("Catalog.MaxAttempts = %d, want 4", cfg.Catalog.MaxAttempts)
	}
	if cfg.Catalog.RetryBaseDelay != 1200*time.Millisecond {
		t.Errorf("Catalog.RetryBaseDelay = %v, want 1.2s", cfg.Catalog.RetryBaseDelay)
	}
	if cfg.Catalog.RetryMaxDelay != 8*time.Second {
		t.Errorf("Catalog.RetryMaxDelay = %v, want 8s", cfg.Catalog.RetryMaxDelay)
	}
	if cfg.Catalog.DiscoverTTL != 30*time.Minute || cfg.Catalog.DetailTTL != time.Hour {
		t.Errorf("Catalog TTLs = %v/%v, want 30m/1h", cfg.Catalog.DiscoverTTL, cfg.Catalog.DetailTTL)
	}
	if cfg.Catalog.APIKey != "" || cfg.Catalog.BearerToken != "" {
		t.Error("catalog credentials should be empty by default")
	}
	if cfg.Arbiter.DefaultModel != "gpt-5-mini" {
		t.Errorf("Arbiter.DefaultModel = %q, want gpt-5-mini", cfg.Arbiter.DefaultModel)
	}
	if cfg.Arbiter.Timeout != 30*time.Second {
		t.Errorf("Arbiter.Timeout = %v, want 30s", cfg.Arbiter.Timeout)
	}
	if cfg.Cache.Backend != "memory" {
		t.Errorf("Cache.Backend = %q, want memory", cfg.Cache.Backend)
	}
	if cfg.Recommend.ShortlistSize != 5 {
		t.Errorf("Recommend.ShortlistSize = %d, want 5", cfg.Recommend.ShortlistSize)
	}
	if cfg.Recommend.DefaultPageCount != 2 {
		t.Errorf("Recommend.DefaultPageCount = %d, want 2", cfg.Recommend.DefaultPageCount)
	}
	if cfg.Recommend.DefaultLanguage != "ko-KR" {
		t.Errorf("Recommend.DefaultLanguage = %q, want ko-KR", cfg.Recommend.DefaultLanguage)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate, got %v", err)
	}
}

// TestEnvTransformFunc verifies environment variable name mapping
func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"HTTP_PORT", "server.port"},
		{"ENVIRONMENT", "server.environment"},
		{"CORS_ORIGINS", "security.cors_origins"},
		{"DISABLE_RATE_LIMIT", "security.rate_limit_disabled"},
		{"LOG_LEVEL", "logging.level"},
		{"TMDB_API_KEY", "catalog.api_key"},
		{"TMDB_BEARER_TOKEN", "catalog.bearer_token"},
		{"TMDB_MAX_ATTEMPTS", "catalog.max_attempts"},
		{"OPENAI_API_KEY", "arbiter.api_key"},
		{"OPENAI_MODEL", "arbiter.default_model"},
		{"CACHE_BACKEND", "cache.backend"},
		{"RECOMMEND_PAGE_COUNT", "recommend.default_page_count"},
		{"RECOMMEND_LANGUAGES", "recommend.languages"},
		{"tmdb_api_key", "catalog.api_key"},
		{"PATH", ""},
		{"HOME", ""},
		{"TMDB_UNKNOWN", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := envTransformFunc(tt.input)
			if result != tt.expected {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

// chdirTemp switches into a fresh temporary directory for the test.
func chdirTemp(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	origDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("Failed to change to temp directory: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(origDir); err != nil {
			t.Errorf("Failed to restore working directory: %v", err)
		}
	})
	return tmpDir
}

// TestFindConfigFile verifies config file discovery
func TestFindConfigFile(t *testing.T) {
	tmpDir := chdirTemp(t)

	t.Run("no config file exists", func(t *testing.T) {
		t.Setenv(ConfigPathEnvVar, "")
		if result := findConfigFile(); result != "" {
			t.Errorf("findConfigFile() = %q, want empty string", result)
		}
	})

	t.Run("config.yaml exists", func(t *testing.T) {
		configPath := filepath.Join(tmpDir, "config.yaml")
		if err := os.WriteFile(configPath, []byte("server:\n  port: 9000\n"), 0o644); err != nil {
			t.Fatalf("Failed to create config file: %v", err)
		}
		defer os.Remove(configPath)

		t.Setenv(ConfigPathEnvVar, "")
		if result := findConfigFile(); result != "config.yaml" {
			t.Errorf("findConfigFile() = %q, want config.yaml", result)
		}
	})

	t.Run("CONFIG_PATH env var takes precedence", func(t *testing.T) {
		customPath := filepath.Join(tmpDir, "custom.yaml")
		if err := os.WriteFile(customPath, []byte("server:\n  port: 9000\n"), 0o644); err != nil {
			t.Fatalf("Failed to create custom config file: %v", err)
		}
		defer os.Remove(customPath)

		t.Setenv(ConfigPathEnvVar, customPath)
		if result := findConfigFile(); result != customPath {
			t.Errorf("findConfigFile() = %q, want %q", result, customPath)
		}
	})

	t.Run("CONFIG_PATH env var with non-existent file", func(t *testing.T) {
		t.Setenv(ConfigPathEnvVar, "/non/existent/config.yaml")
		if result := findConfigFile(); result != "" {
			t.Errorf("findConfigFile() = %q, want empty string", result)
		}
	})
}

// TestLoadWithKoanfEnvVars tests loading configuration from environment variables
func TestLoadWithKoanfEnvVars(t *testing.T) {
	chdirTemp(t)
	t.Setenv(ConfigPathEnvVar, "")

	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("TMDB_BEARER_TOKEN", "server-token")
	t.Setenv("TMDB_MAX_ATTEMPTS", "6")
	t.Setenv("TMDB_RETRY_BASE_DELAY", "500ms")
	t.Setenv("OPENAI_MODEL", "gpt-4o-mini")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("RECOMMEND_PAGE_COUNT", "4")
	t.Setenv("RECOMMEND_INCLUDE_ADULT", "true")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Catalog.BearerToken != "server-token" {
		t.Errorf("Catalog.BearerToken = %q, want server-token", cfg.Catalog.BearerToken)
	}
	if cfg.Catalog.MaxAttempts != 6 {
		t.Errorf("Catalog.MaxAttempts = %d, want 6", cfg.Catalog.MaxAttempts)
	}
	if cfg.Catalog.RetryBaseDelay != 500*time.Millisecond {
		t.Errorf("Catalog.RetryBaseDelay = %v, want 500ms", cfg.Catalog.RetryBaseDelay)
	}
	if cfg.Arbiter.DefaultModel != "gpt-4o-mini" {
		t.Errorf("Arbiter.DefaultModel = %q, want gpt-4o-mini", cfg.Arbiter.DefaultModel)
	}
	wantOrigins := []string{"https://a.example", "https://b.example"}
	if !slices.Equal(cfg.Security.CORSOrigins, wantOrigins) {
		t.Errorf("Security.CORSOrigins = %v, want %v", cfg.Security.CORSOrigins, wantOrigins)
	}
	if cfg.Recommend.DefaultPageCount != 4 {
		t.Errorf("Recommend.DefaultPageCount = %d, want 4", cfg.Recommend.DefaultPageCount)
	}
	if !cfg.Recommend.DefaultIncludeAdult {
		t.Error("Recommend.DefaultIncludeAdult should be true")
	}

	// Defaults are still applied for unset values
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want 0.0.0.0 (default)", cfg.Server.Host)
	}
	if cfg.Catalog.DetailTTL != time.Hour {
		t.Errorf("Catalog.DetailTTL = %v, want 1h (default)", cfg.Catalog.DetailTTL)
	}
}

// TestLoadWithKoanfConfigFile tests loading configuration from a YAML file
// and that environment variables override it.
func TestLoadWithKoanfConfigFile(t *testing.T) {
	tmpDir := chdirTemp(t)

	configContent := `
server:
  port: 7000
  environment: staging
catalog:
  api_key: file-key
  discover_ttl: 10m
cache:
  backend: badger
  path: /tmp/cinequiz-cache
recommend:
  languages: [en-US, ko-KR]
  default_language: en-US
logging:
  level: warn
`
	configPath := filepath.Join(tmpDir, "cinequiz.yaml")
	if err := os.WriteFile(configPath, []byte(configContent), 0o644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, configPath)
	t.Setenv("LOG_LEVEL", "error")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Server.Port != 7000 {
		t.Errorf("Server.Port = %d, want 7000", cfg.Server.Port)
	}
	if cfg.Server.Environment != "staging" {
		t.Errorf("Server.Environment = %q, want staging", cfg.Server.Environment)
	}
	if cfg.Catalog.APIKey != "file-key" {
		t.Errorf("Catalog.APIKey = %q, want file-key", cfg.Catalog.APIKey)
	}
	if cfg.Catalog.DiscoverTTL != 10*time.Minute {
		t.Errorf("Catalog.DiscoverTTL = %v, want 10m", cfg.Catalog.DiscoverTTL)
	}
	if cfg.Cache.Backend != "badger" || cfg.Cache.Path != "/tmp/cinequiz-cache" {
		t.Errorf("Cache = %+v, want badger at /tmp/cinequiz-cache", cfg.Cache)
	}
	if !slices.Equal(cfg.Recommend.Languages, []string{"en-US", "ko-KR"}) {
		t.Errorf("Recommend.Languages = %v", cfg.Recommend.Languages)
	}
	if cfg.Logging.Level != "error" {
		t.Errorf("Logging.Level = %q, want error (env overrides file)", cfg.Logging.Level)
	}
}

// TestLoadWithKoanfValidation verifies that invalid values are rejected
func TestLoadWithKoanfValidation(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"invalid port", map[string]string{"HTTP_PORT": "70000"}, "HTTP_PORT"},
		{"invalid log level", map[string]string{"LOG_LEVEL": "verbose"}, "LOG_LEVEL"},
		{"model not allowed", map[string]string{"OPENAI_MODEL": "gpt-3"}, "OPENAI_MODEL"},
		{"unknown cache backend", map[string]string{"CACHE_BACKEND": "redis"}, "CACHE_BACKEND"},
		{"page count out of range", map[string]string{"RECOMMEND_PAGE_COUNT": "9"}, "page_count"},
		{"bad base url", map[string]string{"TMDB_BASE_URL": "ftp://example.com"}, "TMDB_BASE_URL"},
		{"default language not listed", map[string]string{"RECOMMEND_LANGUAGE": "fr-FR"}, "RECOMMEND_LANGUAGE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chdirTemp(t)
			t.Setenv(ConfigPathEnvVar, "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := LoadWithKoanf()
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}
