// Cinequiz - Quiz-Driven Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinequiz

package api

import (
	"context"
	"time"

	"github.com/tomtom215/cinequiz/internal/breaker"
	"github.com/tomtom215/cinequiz/internal/cache"
	"github.com/tomtom215/cinequiz/internal/recommend"
)

// Recommender runs quiz submissions. *recommend.Engine implements it.
type Recommender interface {
	Recommend(ctx context.Context, req recommend.Request) (*recommend.Result, error)
	Config() *recommend.Config
	Stats() recommend.Stats
}

// HandlerConfig holds the request checks that depend on server settings.
type HandlerConfig struct {
	// Languages accepted in filters.language.
	Languages []string

	// AllowedModels accepted in arbiter.model. Empty accepts any model and
	// leaves the check to the arbiter.
	AllowedModels []string
}

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files:
//   - handlers.go: Handler struct and constructor (this file)
//   - handlers_health.go: liveness and readiness probes
//   - handlers_quiz.go: question set and classification
//   - handlers_recommend.go: the recommendation pipeline
type Handler struct {
	engine    Recommender
	config    HandlerConfig
	cache     cache.Cacher
	breakers  []*breaker.Breaker
	startTime time.Time
}

// HandlerOption configures optional Handler dependencies.
type HandlerOption func(*Handler)

// WithCache lets the readiness probe check the response cache.
func WithCache(c cache.Cacher) HandlerOption {
	return func(h *Handler) { h.cache = c }
}

// WithBreakers lets the readiness probe report circuit breaker states.
func WithBreakers(b ...*breaker.Breaker) HandlerOption {
	return func(h *Handler) { h.breakers = append(h.breakers, b...) }
}

// NewHandler creates the API handler.
//
// Example:
//
//	handler := api.NewHandler(engine, api.HandlerConfig{Languages: cfg.Recommend.Languages},
//	    api.WithCache(responseCache), api.WithBreakers(catalogBreaker, arbiterBreaker))
//	router := api.NewRouter(handler, api.NewChiMiddleware(nil))
func NewHandler(engine Recommender, cfg HandlerConfig, opts ...HandlerOption) *Handler {
	h := &Handler{
		engine:    engine,
		config:    cfg,
		startTime: time.Now(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}
