// Cinequiz - Quiz-Driven Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinequiz

package recommend

import (
	"fmt"
	"time"
)

// Limits on the filters accepted from callers.
const (
	MinPageCount    = 1
	MaxPageCount    = 5
	MaxVoteAverage  = 10.0
	MaxVoteCountMin = 10000
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// ShortlistSize caps the ranked list.
	ShortlistSize int

	// RequestTimeout bounds one whole submission.
	RequestTimeout time.Duration

	// Defaults fill filter fields a caller leaves out.
	Defaults Filters

	// ArbiterEnabledByDefault applies when the caller does not say.
	ArbiterEnabledByDefault bool
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		ShortlistSize:  5,
		RequestTimeout: 2 * time.Minute,
		Defaults: Filters{
			Language:       "ko-KR",
			IncludeAdult:   false,
			MinVoteAverage: 6.0,
			MinVoteCount:   200,
			PageCount:      2,
			ShowTrailer:    true,
		},
		ArbiterEnabledByDefault: true,
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.ShortlistSize < 1 {
		return fmt.Errorf("shortlist_size must be positive, got %d", c.ShortlistSize)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be positive, got %v", c.RequestTimeout)
	}
	if err := c.Defaults.Validate(); err != nil {
		return fmt.Errorf("defaults: %w", err)
	}
	return nil
}

// Validate checks filter ranges.
func (f *Filters) Validate() error {
	if f.Language == "" {
		return fmt.Errorf("language must not be empty")
	}
	if f.MinVoteAverage < 0 || f.MinVoteAverage > MaxVoteAverage {
		return fmt.Errorf("min_vote_average must be in [0, %v], got %v", MaxVoteAverage, f.MinVoteAverage)
	}
	if f.MinVoteCount < 0 || f.MinVoteCount > MaxVoteCountMin {
		return fmt.Errorf("min_vote_count must be in [0, %d], got %d", MaxVoteCountMin, f.MinVoteCount)
	}
	if f.PageCount < MinPageCount || f.PageCount > MaxPageCount {
		return fmt.Errorf("page_count must be in [%d, %d], got %d", MinPageCount, MaxPageCount, f.PageCount)
	}
	return nil
}
