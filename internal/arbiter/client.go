// Cinequiz - Quiz-Driven Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinequiz

package arbiter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/cinequiz/internal/apperrors"
	"github.com/tomtom215/cinequiz/internal/breaker"
	"github.com/tomtom215/cinequiz/internal/logging"
	"github.com/tomtom215/cinequiz/internal/metrics"
	"github.com/tomtom215/cinequiz/internal/models"
	"github.com/tomtom215/cinequiz/internal/quiz"
)

const (
	serviceName = "openai"

	maxErrorBodySize = 64 * 1024
	errorExcerptLen  = 400
)

// Config configures a Client.
type Config struct {
	BaseURL         string
	DefaultModel    string
	AllowedModels   []string
	Timeout         time.Duration
	Temperature     float64
	MaxOutputTokens int
}

// DefaultConfig returns the production settings.
func DefaultConfig() Config {
	return Config{
		BaseURL:         "https://api.openai.com/v1",
		DefaultModel:    "gpt-5-mini",
		AllowedModels:   []string{"gpt-5-mini", "gpt-4o-mini", "gpt-4.1-mini"},
		Timeout:         30 * time.Second,
		Temperature:     0.4,
		MaxOutputTokens: 400,
	}
}

// PickRequest is one arbitration.
type PickRequest struct {
	APIKey     string
	Model      string // empty selects Config.DefaultModel
	Answers    []string
	Genre      quiz.GenreKey
	Candidates []models.Movie
}

// Client calls the Responses API. It holds no credentials.
type Client struct {
	cfg     Config
	http    *http.Client
	breaker *breaker.Breaker
	logger  zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithBreaker wraps every call in b.
func WithBreaker(b *breaker.Breaker) Option {
	return func(c *Client) { c.breaker = b }
}

// New creates an arbiter client.
func New(cfg Config, opts ...Option) *Client {
	def := DefaultConfig()
	if cfg.BaseURL == "" {
		cfg.BaseURL = def.BaseURL
	}
	if cfg.DefaultModel == "" {
		cfg.DefaultModel = def.DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.MaxOutputTokens <= 0 {
		cfg.MaxOutputTokens = def.MaxOutputTokens
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	c := &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: logging.WithComponent("arbiter"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ResolveModel returns the model to use for requested, or a
// ConfigurationError when it is not allowed.
func (c *Client) ResolveModel(requested string) (string, error) {
	model := strings.TrimSpace(requested)
	if model == "" {
		return c.cfg.DefaultModel, nil
	}
	if len(c.cfg.AllowedModels) > 0 && !slices.Contains(c.cfg.AllowedModels, model) {
		return "", apperrors.NewConfigurationError("arbiter.model",
			fmt.Sprintf("model %q is not allowed", model))
	}
	return model, nil
}

type requestBody struct {
	Model           string         `json:"model"`
	Instructions    string         `json:"instructions"`
	Input           []inputMessage `json:"input"`
	Temperature     float64        `json:"temperature"`
	MaxOutputTokens int            `json:"max_output_tokens"`
	Text            textOptions    `json:"text"`
}

type inputMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type textOptions struct {
	Format textFormat `json:"format"`
}

type textFormat struct {
	Type   string                 `json:"type"`
	Name   string                 `json:"name"`
	Strict bool                   `json:"strict"`
	Schema map[string]interface{} `json:"schema"`
}

// Pick asks the model for one movie from req.Candidates. The returned
// verdict may name a movie outside the candidates.
func (c *Client) Pick(ctx context.Context, req PickRequest) (*models.Verdict, error) {
	apiKey := strings.TrimSpace(req.APIKey)
	if apiKey == "" {
		return nil, apperrors.NewConfigurationError("openai_api_key", "a language model API key is required for arbitration")
	}
	model, err := c.ResolveModel(req.Model)
	if err != nil {
		return nil, err
	}
	if len(req.Candidates) == 0 {
		return nil, errors.New("arbiter: no candidates")
	}

	schema, err := schemaDocument()
	if err != nil {
		return nil, err
	}
	payload, err := json.Marshal(requestBody{
		Model:        model,
		Instructions: Instructions,
		Input: []inputMessage{
			{Role: "user", Content: BuildPrompt(req.Answers, req.Genre, req.Candidates)},
		},
		Temperature:     c.cfg.Temperature,
		MaxOutputTokens: c.cfg.MaxOutputTokens,
		Text: textOptions{Format: textFormat{
			Type:   "json_schema",
			Name:   SchemaName,
			Strict: true,
			Schema: schema,
		}},
	})
	if err != nil {
		return nil, fmt.Errorf("encode arbiter request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	start := time.Now()
	verdict, err := breaker.Call(c.breaker, func() (*models.Verdict, error) {
		return c.do(ctx, apiKey, payload)
	})
	metrics.RecordArbiterCall(model, outcomeFor(err), time.Since(start))
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("model", model).Msg("Arbiter call failed")
		return nil, err
	}

	logging.Ctx(ctx).Debug().
		Str("model", model).
		Int("movie_id", verdict.MovieID).
		Float64("confidence", verdict.Confidence).
		Dur("duration", time.Since(start)).
		Msg("Arbiter verdict received")
	return verdict, nil
}

func (c *Client) do(ctx context.Context, apiKey string, payload []byte) (*models.Verdict, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/responses", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		var ue *url.Error
		if errors.As(err, &ue) {
			err = ue.Err
		}
		return nil, &apperrors.HardAPIError{Service: serviceName, Message: "request failed", Cause: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBodySize))
		logging.Ctx(ctx).Warn().
			Int("status", resp.StatusCode).
			Str("credential", logging.MaskSecret(apiKey)).
			Msg("Language model rejected credential")
		return nil, &apperrors.HardAPIError{Service: serviceName, StatusCode: resp.StatusCode,
			Message: "authentication failed, check the API key"}
	case resp.StatusCode == http.StatusTooManyRequests:
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBodySize))
		return nil, &apperrors.HardAPIError{Service: serviceName, StatusCode: resp.StatusCode,
			Message: "too many requests, try again later"}
	case resp.StatusCode >= 400:
		return nil, &apperrors.HardAPIError{Service: serviceName, StatusCode: resp.StatusCode,
			Message: readBodyExcerpt(resp.Body)}
	}

	var body responseBody
	if err := json.NewDecoder(io.LimitReader(resp.Body, 4*maxErrorBodySize)).Decode(&body); err != nil {
		return nil, &apperrors.ParseError{Service: serviceName, Message: "malformed response body", Cause: err}
	}

	text := ExtractOutputText(&body)
	if text == "" {
		return nil, &apperrors.ParseError{Service: serviceName, Message: "no output text in response"}
	}
	return ParseVerdict(text)
}

func readBodyExcerpt(r io.Reader) string {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return "(failed to read response body)"
	}
	s := strings.TrimSpace(string(body))
	if runes := []rune(s); len(runes) > errorExcerptLen {
		s = string(runes[:errorExcerptLen])
	}
	return s
}

func outcomeFor(err error) string {
	if err == nil {
		return metrics.OutcomeSuccess
	}
	var (
		parseErr     *apperrors.ParseError
		transientErr *apperrors.TransientNetworkError
	)
	switch {
	case errors.As(err, &parseErr):
		return metrics.OutcomeParse
	case errors.As(err, &transientErr):
		return metrics.OutcomeRetryable
	}
	return metrics.OutcomeHardError
}
