// Cinequiz - Quiz-Driven Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinequiz

/*
Package config provides centralized configuration management for Cinequiz.

# Configuration Sources

Configuration is layered with Koanf v2, later sources overriding earlier ones:
  - Built-in defaults (defaultConfig)
  - Optional YAML file: $CONFIG_PATH, ./config.yaml, /etc/cinequiz/config.yaml
  - Environment variables, mapped explicitly (unknown variables are ignored)

# Configuration Structure

  - ServerConfig: listen address, timeout, environment
  - SecurityConfig: CORS origins and inbound rate limiting
  - LoggingConfig: level, format, caller
  - CatalogConfig: TMDB endpoints, retry policy, cache TTLs, pacing
  - ArbiterConfig: OpenAI endpoint, model allow-list, sampling settings
  - CacheConfig: memory or badger backend
  - RecommendConfig: shortlist size, languages and filter defaults

TMDB and OpenAI credentials are optional at this level. When present they act
as fallbacks for submissions that do not carry their own keys.

# Usage

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}
	client := catalog.New(cfg.CatalogConfig())

# Environment Variables

	HTTP_PORT, HTTP_HOST, HTTP_TIMEOUT, ENVIRONMENT
	CORS_ORIGINS, RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT
	LOG_LEVEL, LOG_FORMAT, LOG_CALLER
	TMDB_API_KEY, TMDB_BEARER_TOKEN, TMDB_BASE_URL, TMDB_MAX_ATTEMPTS, ...
	OPENAI_API_KEY, OPENAI_MODEL, OPENAI_ALLOWED_MODELS, ...
	CACHE_BACKEND, CACHE_PATH, CACHE_CLEANUP_INTERVAL
	RECOMMEND_LANGUAGES, RECOMMEND_LANGUAGE, RECOMMEND_PAGE_COUNT, ...

Comma-separated values are split for CORS_ORIGINS, OPENAI_ALLOWED_MODELS and
RECOMMEND_LANGUAGES.
*/
package config
