// Cinequiz - Quiz-Driven Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinequiz

package config

import (
	"github.com/tomtom215/cinequiz/internal/arbiter"
	"github.com/tomtom215/cinequiz/internal/cache"
	"github.com/tomtom215/cinequiz/internal/catalog"
	"github.com/tomtom215/cinequiz/internal/logging"
	"github.com/tomtom215/cinequiz/internal/recommend"
)

// LoggingConfig converts the logging section for logging.Init.
func (c *Config) LoggingConfig() logging.Config {
	lc := logging.DefaultConfig()
	lc.Level = c.Logging.Level
	if c.Logging.Format != "" {
		lc.Format = c.Logging.Format
	}
	lc.Caller = c.Logging.Caller
	return lc
}

// CatalogConfig converts the catalog section for catalog.New.
func (c *Config) CatalogConfig() catalog.Config {
	return catalog.Config{
		BaseURL:           c.Catalog.BaseURL,
		ImageBaseURL:      c.Catalog.ImageBaseURL,
		Timeout:           c.Catalog.Timeout,
		MaxAttempts:       c.Catalog.MaxAttempts,
		RetryBaseDelay:    c.Catalog.RetryBaseDelay,
		RetryMaxDelay:     c.Catalog.RetryMaxDelay,
		DiscoverTTL:       c.Catalog.DiscoverTTL,
		DetailTTL:         c.Catalog.DetailTTL,
		RequestsPerSecond: c.Catalog.RequestsPerSecond,
		Burst:             c.Catalog.Burst,
	}
}

// ArbiterConfig converts the arbiter section for arbiter.New.
func (c *Config) ArbiterConfig() arbiter.Config {
	return arbiter.Config{
		BaseURL:         c.Arbiter.BaseURL,
		DefaultModel:    c.Arbiter.DefaultModel,
		AllowedModels:   append([]string(nil), c.Arbiter.AllowedModels...),
		Timeout:         c.Arbiter.Timeout,
		Temperature:     c.Arbiter.Temperature,
		MaxOutputTokens: c.Arbiter.MaxOutputTokens,
	}
}

// CacheConfig converts the cache section for cache.NewCacher. The default
// TTL is the discover TTL; detail entries set their own.
func (c *Config) CacheConfig() cache.CacheConfig {
	return cache.CacheConfig{
		Backend:         cache.Backend(c.Cache.Backend),
		Name:            "catalog",
		TTL:             c.Catalog.DiscoverTTL,
		CleanupInterval: c.Cache.CleanupInterval,
		Path:            c.Cache.Path,
	}
}

// RecommendConfig converts the recommend section for recommend.NewEngine.
func (c *Config) RecommendConfig() *recommend.Config {
	return &recommend.Config{
		ShortlistSize:  c.Recommend.ShortlistSize,
		RequestTimeout: c.Recommend.RequestTimeout,
		Defaults: recommend.Filters{
			Language:       c.Recommend.DefaultLanguage,
			IncludeAdult:   c.Recommend.DefaultIncludeAdult,
			MinVoteAverage: c.Recommend.DefaultMinVoteAverage,
			MinVoteCount:   c.Recommend.DefaultMinVoteCount,
			PageCount:      c.Recommend.DefaultPageCount,
			ShowTrailer:    c.Recommend.DefaultShowTrailer,
		},
		ArbiterEnabledByDefault: c.Recommend.ArbiterEnabledByDefault,
	}
}

// FallbackCredentials returns the server-side credentials used when a
// submission carries none.
func (c *Config) FallbackCredentials() recommend.Credentials {
	return recommend.Credentials{
		TMDBAPIKey:      c.Catalog.APIKey,
		TMDBBearerToken: c.Catalog.BearerToken,
		OpenAIAPIKey:    c.Arbiter.APIKey,
	}
}
