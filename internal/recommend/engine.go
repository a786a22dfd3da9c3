// Cinequiz - Quiz-Driven Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinequiz

package recommend

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinequiz/internal/apperrors"
	"github.com/tomtom215/cinequiz/internal/arbiter"
	"github.com/tomtom215/cinequiz/internal/catalog"
	"github.com/tomtom215/cinequiz/internal/logging"
	"github.com/tomtom215/cinequiz/internal/metrics"
	"github.com/tomtom215/cinequiz/internal/models"
	"github.com/tomtom215/cinequiz/internal/quiz"
)

// Catalog is the movie source used by the engine.
type Catalog interface {
	Discover(ctx context.Context, auth catalog.Auth, q catalog.DiscoverQuery) ([]models.Movie, error)
	Detail(ctx context.Context, auth catalog.Auth, id int, language string, includeTrailer bool) (*models.Movie, error)
	PosterURL(path string) string
}

// Arbiter picks one movie from a shortlist.
type Arbiter interface {
	Pick(ctx context.Context, req arbiter.PickRequest) (*models.Verdict, error)
}

// Recommendation outcomes for metrics.
const (
	outcomeSuccess = "success"
	outcomeEmpty   = "empty"
	outcomeError   = "error"
)

// Engine runs quiz submissions. It is safe for concurrent use.
type Engine struct {
	config   *Config
	logger   zerolog.Logger
	catalog  Catalog
	arbiter  Arbiter
	fallback Credentials

	requests          atomic.Int64
	empty             atomic.Int64
	errors            atomic.Int64
	detailFallbacks   atomic.Int64
	arbiterFailures   atomic.Int64
	verdictsDiscarded atomic.Int64
}

// Stats is a snapshot of engine counters.
type Stats struct {
	Requests          int64 `json:"requests"`
	Empty             int64 `json:"empty"`
	Errors            int64 `json:"errors"`
	DetailFallbacks   int64 `json:"detail_fallbacks"`
	ArbiterFailures   int64 `json:"arbiter_failures"`
	VerdictsDiscarded int64 `json:"verdicts_discarded"`
}

// NewEngine creates a recommendation engine. arb may be nil, in which case
// arbitration requests fail with a ConfigurationError.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, cat Catalog, arb Arbiter, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if cat == nil {
		return nil, fmt.Errorf("catalog is required")
	}

	return &Engine{
		config:  cfg,
		logger:  logger.With().Str("component", "recommend").Logger(),
		catalog: cat,
		arbiter: arb,
	}, nil
}

// SetFallbackCredentials sets server-side credentials used when a request
// omits its own. Call before serving.
func (e *Engine) SetFallbackCredentials(c Credentials) {
	e.fallback = c
}

// Config returns the engine configuration.
func (e *Engine) Config() *Config {
	return e.config
}

// Stats returns a snapshot of the engine counters.
func (e *Engine) Stats() Stats {
	return Stats{
		Requests:          e.requests.Load(),
		Empty:             e.empty.Load(),
		Errors:            e.errors.Load(),
		DetailFallbacks:   e.detailFallbacks.Load(),
		ArbiterFailures:   e.arbiterFailures.Load(),
		VerdictsDiscarded: e.verdictsDiscarded.Load(),
	}
}

// Recommend runs one submission.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Recommend(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()
	e.requests.Add(1)

	creds := req.Credentials.withFallback(e.fallback)
	auth, err := catalog.NewAuth(creds.TMDBAPIKey, creds.TMDBBearerToken)
	if err != nil {
		e.errors.Add(1)
		return nil, err
	}
	if req.Arbiter.Enabled {
		if strings.TrimSpace(creds.OpenAIAPIKey) == "" {
			e.errors.Add(1)
			return nil, apperrors.NewConfigurationError("openai_api_key",
				"a language model API key is required when arbitration is enabled")
		}
		if e.arbiter == nil {
			e.errors.Add(1)
			return nil, apperrors.NewConfigurationError("arbiter", "arbitration is not configured on this server")
		}
	}
	if err := req.Filters.Validate(); err != nil {
		e.errors.Add(1)
		return nil, apperrors.NewConfigurationError("filters", err.Error())
	}

	answers, err := quiz.AnswersFromIndices(req.Answers)
	if err != nil {
		e.errors.Add(1)
		return nil, fmt.Errorf("invalid answers: %w", err)
	}
	genre := quiz.Classify(answers)
	tally := quiz.NewTally(answers)

	logger := e.logger.With().
		Str("request_id", logging.RequestIDFromContext(ctx)).
		Str("genre", string(genre)).
		Str("auth", auth.Fingerprint()).
		Logger()

	ctx = logging.ContextWithLogger(ctx, logging.Logger().With().
		Str("genre", string(genre)).
		Str("auth", auth.Fingerprint()).
		Logger())
	ctx, cancel := context.WithTimeout(ctx, e.config.RequestTimeout)
	defer cancel()

	result := &Result{
		Genre:      genre,
		GenreLabel: genre.Label(),
		Rationale:  quiz.BuildReason(genre, answers),
		Tally:      tally.Entries(),
	}

	pool, err := e.catalog.Discover(ctx, auth, catalog.DiscoverQuery{
		GenreID:        genre.CatalogID(),
		Language:       req.Filters.Language,
		IncludeAdult:   req.Filters.IncludeAdult,
		MinVoteAverage: req.Filters.MinVoteAverage,
		MinVoteCount:   req.Filters.MinVoteCount,
		Pages:          req.Filters.PageCount,
	})
	if err != nil {
		e.errors.Add(1)
		metrics.RecordRecommendation(string(genre), outcomeError)
		logger.Warn().Err(err).Msg("Discover failed")
		return nil, fmt.Errorf("discover candidates: %w", err)
	}

	if len(pool) == 0 {
		e.empty.Add(1)
		metrics.RecordRecommendation(string(genre), outcomeEmpty)
		logger.Info().Err(apperrors.ErrEmptyResult).Msg("No candidates matched the filters")
		result.Empty = true
		result.Message = EmptyMessage
		return result, nil
	}

	result.Shortlist = Rank(pool, e.config.ShortlistSize)
	e.enrich(ctx, auth, req.Filters, result.Shortlist, logger)

	if req.Arbiter.Enabled {
		e.arbitrate(ctx, req, creds.OpenAIAPIKey, answers, result, logger)
	}

	metrics.RecordRecommendation(string(genre), outcomeSuccess)
	logger.Info().
		Int("pool", len(pool)).
		Int("shortlist", len(result.Shortlist)).
		Bool("verdict", result.Verdict != nil).
		Dur("duration", time.Since(start)).
		Msg("Recommendation complete")

	return result, nil
}

// enrich replaces each shortlist entry with its detail record, one lookup
// at a time. A failed lookup keeps the discovery record.
//
//nolint:gocritic // hugeParam: logger passed by value is acceptable for zerolog
func (e *Engine) enrich(ctx context.Context, auth catalog.Auth, f Filters, shortlist []ScoredMovie, logger zerolog.Logger) {
	for i := range shortlist {
		entry := &shortlist[i]
		detail, err := e.catalog.Detail(ctx, auth, entry.Movie.ID, f.Language, f.ShowTrailer)
		if err != nil {
			e.detailFallbacks.Add(1)
			metrics.CatalogDetailFallbacks.Inc()
			logger.Warn().Err(err).Int("movie_id", entry.Movie.ID).Msg("Detail lookup failed, using discovery data")
			detail = nil
		}

		entry.Movie = catalog.MergeDetail(entry.Movie, detail)
		entry.PosterURL = e.catalog.PosterURL(entry.Movie.PosterPath)
		if f.ShowTrailer {
			entry.TrailerURL = catalog.TrailerURL(entry.Movie.Videos)
		}
	}
}

//nolint:gocritic // hugeParam: req and logger passed by value
func (e *Engine) arbitrate(ctx context.Context, req Request, apiKey string, answers []quiz.Answer, result *Result, logger zerolog.Logger) {
	candidates := make([]models.Movie, len(result.Shortlist))
	for i := range result.Shortlist {
		candidates[i] = result.Shortlist[i].Movie
	}

	verdict, err := e.arbiter.Pick(ctx, arbiter.PickRequest{
		APIKey:     apiKey,
		Model:      req.Arbiter.Model,
		Answers:    quiz.Texts(answers),
		Genre:      result.Genre,
		Candidates: candidates,
	})
	if err != nil {
		e.arbiterFailures.Add(1)
		logger.Warn().Err(err).Msg("Arbiter failed, returning shortlist only")
		result.ArbiterError = err
		return
	}

	for i := range candidates {
		if candidates[i].ID == verdict.MovieID {
			result.Verdict = verdict
			return
		}
	}

	e.verdictsDiscarded.Add(1)
	metrics.ArbiterVerdictsDiscarded.Inc()
	logger.Debug().Int("movie_id", verdict.MovieID).Msg("Discarding verdict for movie outside the shortlist")
}
