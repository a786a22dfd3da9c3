// Cinequiz - Quiz-Driven Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinequiz

package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/tomtom215/cinequiz/internal/apperrors"
	"github.com/tomtom215/cinequiz/internal/breaker"
	"github.com/tomtom215/cinequiz/internal/cache"
	"github.com/tomtom215/cinequiz/internal/logging"
	"github.com/tomtom215/cinequiz/internal/metrics"
)

const serviceName = "tmdb"

// maxErrorBodySize limits how much of an error response is read.
const maxErrorBodySize = 64 * 1024

// Config configures a Client.
type Config struct {
	BaseURL      string
	ImageBaseURL string

	// Timeout bounds each HTTP attempt.
	Timeout time.Duration

	// MaxAttempts per logical call, including the first.
	MaxAttempts int

	// RetryBaseDelay doubles after every failed attempt up to RetryMaxDelay.
	RetryBaseDelay time.Duration
	RetryMaxDelay  time.Duration

	DiscoverTTL time.Duration
	DetailTTL   time.Duration

	// RequestsPerSecond and Burst pace outbound attempts. Zero disables
	// pacing.
	RequestsPerSecond float64
	Burst             int
}

// DefaultConfig returns the production settings.
func DefaultConfig() Config {
	return Config{
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
	}
}

// Client talks to the catalog API. It is safe for concurrent use and holds
// no credentials.
type Client struct {
	cfg     Config
	http    *http.Client
	limiter *rate.Limiter
	cache   cache.Cacher
	breaker *breaker.Breaker
	logger  zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client. Its Timeout is left untouched.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithCache enables response caching.
func WithCache(cc cache.Cacher) Option {
	return func(c *Client) { c.cache = cc }
}

// WithBreaker wraps every logical call in b.
func WithBreaker(b *breaker.Breaker) Option {
	return func(c *Client) { c.breaker = b }
}

// New creates a catalog client. Zero-valued fields of cfg take defaults.
func New(cfg Config, opts ...Option) *Client {
	def := DefaultConfig()
	if cfg.BaseURL == "" {
		cfg.BaseURL = def.BaseURL
	}
	if cfg.ImageBaseURL == "" {
		cfg.ImageBaseURL = def.ImageBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = def.MaxAttempts
	}
	if cfg.RetryBaseDelay <= 0 {
		cfg.RetryBaseDelay = def.RetryBaseDelay
	}
	if cfg.RetryMaxDelay <= 0 {
		cfg.RetryMaxDelay = def.RetryMaxDelay
	}
	if cfg.DiscoverTTL <= 0 {
		cfg.DiscoverTTL = def.DiscoverTTL
	}
	if cfg.DetailTTL <= 0 {
		cfg.DetailTTL = def.DetailTTL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	c := &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: logging.WithComponent("catalog"),
	}
	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Config returns the effective configuration.
func (c *Client) Config() Config {
	return c.cfg
}

// backoff returns the wait after the given zero-based failed attempt.
func (c *Client) backoff(attempt int) time.Duration {
	d := c.cfg.RetryBaseDelay
	for i := 0; i < attempt && d < c.cfg.RetryMaxDelay; i++ {
		d *= 2
	}
	if d > c.cfg.RetryMaxDelay {
		d = c.cfg.RetryMaxDelay
	}
	return d
}

// attemptError classifies the outcome of one HTTP attempt.
type attemptError struct {
	retryable  bool
	reason     string // metrics label for retryable failures
	statusCode int
	err        error
}

// get performs a GET with retries and decodes a 200 body into out.
func (c *Client) get(ctx context.Context, auth Auth, endpoint, path string, params url.Values, out interface{}) error {
	if !auth.Valid() {
		return apperrors.NewConfigurationError("tmdb_credentials", "no catalog credential supplied")
	}

	reqURL := c.cfg.BaseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	var last *attemptError
	for attempt := 0; attempt < c.cfg.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return c.exhausted(endpoint, attempt, last, err)
		}
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return c.exhausted(endpoint, attempt, last, err)
			}
		}

		last = c.attempt(ctx, auth, endpoint, reqURL, out)
		if last == nil {
			metrics.RecordCatalogCall(endpoint, metrics.OutcomeSuccess)
			return nil
		}
		if !last.retryable {
			metrics.RecordCatalogCall(endpoint, metrics.OutcomeHardError)
			if last.statusCode == http.StatusUnauthorized || last.statusCode == http.StatusForbidden {
				logging.Ctx(ctx).Warn().
					Str("endpoint", endpoint).
					Int("status", last.statusCode).
					Str("auth", auth.Fingerprint()).
					Str("credential", auth.masked()).
					Msg("Catalog rejected credential")
			}
			return &apperrors.HardAPIError{
				Service:    serviceName,
				StatusCode: last.statusCode,
				Cause:      last.err,
			}
		}

		if attempt == c.cfg.MaxAttempts-1 {
			break
		}

		delay := c.backoff(attempt)
		metrics.RecordCatalogRetry(endpoint, last.reason)
		logging.Ctx(ctx).Warn().
			Err(last.err).
			Str("endpoint", endpoint).
			Int("attempt", attempt+1).
			Int("status", last.statusCode).
			Dur("backoff", delay).
			Msg("Catalog request failed, retrying")

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return c.exhausted(endpoint, attempt+1, last, ctx.Err())
		}
	}

	metrics.RecordCatalogCall(endpoint, metrics.OutcomeRetryable)
	return &apperrors.TransientNetworkError{
		Service:    serviceName,
		Attempts:   c.cfg.MaxAttempts,
		StatusCode: last.statusCode,
		Cause:      last.err,
	}
}

// exhausted builds the error returned when ctx ends the retry loop early.
func (c *Client) exhausted(endpoint string, attempts int, last *attemptError, ctxErr error) error {
	metrics.RecordCatalogCall(endpoint, metrics.OutcomeRetryable)
	te := &apperrors.TransientNetworkError{Service: serviceName, Attempts: attempts, Cause: ctxErr}
	if last != nil {
		te.StatusCode = last.statusCode
		te.Cause = fmt.Errorf("%w (last error: %v)", ctxErr, last.err)
	}
	return te
}

func (c *Client) attempt(ctx context.Context, auth Auth, endpoint, reqURL string, out interface{}) *attemptError {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return &attemptError{err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	auth.apply(req)

	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.RecordCatalogAttempt(endpoint, time.Since(start))
	if err != nil {
		return &attemptError{retryable: true, reason: "transport", err: fmt.Errorf("HTTP request failed: %w", stripURL(err))}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusTooManyRequests:
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBodySize))
		return &attemptError{retryable: true, reason: "rate_limited", statusCode: resp.StatusCode,
			err: fmt.Errorf("%s: rate limited", endpoint)}
	case resp.StatusCode >= 500:
		body := readBodyForError(resp.Body)
		return &attemptError{retryable: true, reason: "server_error", statusCode: resp.StatusCode,
			err: fmt.Errorf("%s: %s", endpoint, body)}
	default:
		body := readBodyForError(resp.Body)
		return &attemptError{statusCode: resp.StatusCode,
			err: fmt.Errorf("%s: %s", endpoint, body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &attemptError{statusCode: resp.StatusCode, err: fmt.Errorf("malformed %s response: %w", endpoint, err)}
	}
	return nil
}

// stripURL drops the request URL from transport errors; with api_key auth
// the URL carries the credential.
func stripURL(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		return fmt.Errorf("%s: %w", ue.Op, ue.Err)
	}
	return err
}

// readBodyForError reads at most maxErrorBodySize bytes for diagnostics.
func readBodyForError(r io.Reader) string {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return "(failed to read response body)"
	}
	s := strings.TrimSpace(string(body))
	if len(s) > 400 {
		s = s[:400] + "..."
	}
	return s
}

// cached looks up key and decodes it into out. Undecodable entries are
// dropped and reported as a miss.
func (c *Client) cached(key string, out interface{}) bool {
	if c.cache == nil {
		return false
	}
	data, ok := c.cache.Get(key)
	if !ok {
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("Dropping undecodable cache entry")
		c.cache.Delete(key)
		return false
	}
	return true
}

func (c *Client) store(key string, v interface{}, ttl time.Duration) {
	if c.cache == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("Failed to encode cache entry")
		return
	}
	c.cache.SetWithTTL(key, data, ttl)
}
