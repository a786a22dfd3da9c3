// Cinequiz - Quiz-Driven Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinequiz

package main

import (
	"fmt"
	"net/http"

	"github.com/tomtom215/cinequiz/internal/api"
	"github.com/tomtom215/cinequiz/internal/arbiter"
	"github.com/tomtom215/cinequiz/internal/breaker"
	"github.com/tomtom215/cinequiz/internal/cache"
	"github.com/tomtom215/cinequiz/internal/catalog"
	"github.com/tomtom215/cinequiz/internal/config"
	"github.com/tomtom215/cinequiz/internal/logging"
	"github.com/tomtom215/cinequiz/internal/recommend"
)

// application holds the components main supervises and closes.
type application struct {
	cache    cache.Cacher
	engine   *recommend.Engine
	breakers []*breaker.Breaker
	handler  http.Handler
}

// newApplication builds the recommendation pipeline and HTTP router.
func newApplication(cfg *config.Config) (*application, error) {
	responses, err := cache.NewCacher(cfg.CacheConfig())
	if err != nil {
		return nil, fmt.Errorf("response cache: %w", err)
	}

	catalogBreaker := breaker.New("catalog", breaker.DefaultSettings())
	arbiterBreaker := breaker.New("arbiter", breaker.DefaultSettings())

	cat := catalog.New(cfg.CatalogConfig(),
		catalog.WithCache(responses),
		catalog.WithBreaker(catalogBreaker),
	)
	arb := arbiter.New(cfg.ArbiterConfig(), arbiter.WithBreaker(arbiterBreaker))

	engine, err := recommend.NewEngine(cfg.RecommendConfig(), cat, arb, logging.WithComponent("recommend"))
	if err != nil {
		_ = responses.Close()
		return nil, fmt.Errorf("recommendation engine: %w", err)
	}
	engine.SetFallbackCredentials(cfg.FallbackCredentials())

	handler := api.NewHandler(engine,
		api.HandlerConfig{
			Languages:     cfg.Recommend.Languages,
			AllowedModels: cfg.Arbiter.AllowedModels,
		},
		api.WithCache(responses),
		api.WithBreakers(catalogBreaker, arbiterBreaker),
	)
	router := api.NewRouter(handler, api.NewChiMiddleware(middlewareConfig(cfg)))

	return &application{
		cache:    responses,
		engine:   engine,
		breakers: []*breaker.Breaker{catalogBreaker, arbiterBreaker},
		handler:  router.SetupChi(),
	}, nil
}

// Close releases the response cache.
func (a *application) Close() error {
	return a.cache.Close()
}

func middlewareConfig(cfg *config.Config) *api.ChiMiddlewareConfig {
	mw := api.DefaultChiMiddlewareConfig()
	mw.CORSAllowedOrigins = cfg.Security.CORSOrigins
	mw.RateLimitRequests = cfg.Security.RateLimitReqs
	mw.RateLimitWindow = cfg.Security.RateLimitWindow
	mw.RateLimitDisabled = cfg.Security.RateLimitDisabled
	return mw
}
