// Cinequiz - Quiz-Driven Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinequiz

package recommend

import (
	"strings"

	"github.com/tomtom215/cinequiz/internal/models"
	"github.com/tomtom215/cinequiz/internal/quiz"
)

// Filters narrow the catalog query.
type Filters struct {
	Language       string
	IncludeAdult   bool
	MinVoteAverage float64
	MinVoteCount   int
	PageCount      int
	ShowTrailer    bool
}

// Credentials are supplied per submission and never stored.
type Credentials struct {
	TMDBAPIKey      string
	TMDBBearerToken string
	OpenAIAPIKey    string
}

// withFallback fills missing values from fb. The catalog pair is taken as a
// unit so a request never mixes its own key with a server token.
func (c Credentials) withFallback(fb Credentials) Credentials {
	out := c
	if strings.TrimSpace(c.TMDBAPIKey) == "" && strings.TrimSpace(c.TMDBBearerToken) == "" {
		out.TMDBAPIKey = fb.TMDBAPIKey
		out.TMDBBearerToken = fb.TMDBBearerToken
	}
	if strings.TrimSpace(c.OpenAIAPIKey) == "" {
		out.OpenAIAPIKey = fb.OpenAIAPIKey
	}
	return out
}

// ArbiterOptions control the final pick.
type ArbiterOptions struct {
	Enabled bool
	Model   string
}

// Request is one quiz submission.
type Request struct {
	// Answers holds one option index (0..3) per question.
	Answers     []int
	Filters     Filters
	Credentials Credentials
	Arbiter     ArbiterOptions
}

// ScoredMovie is a shortlist entry.
type ScoredMovie struct {
	Movie      models.Movie
	Score      float64
	PosterURL  string
	TrailerURL string
}

// Result is what a submission produces.
type Result struct {
	Genre      quiz.GenreKey
	GenreLabel string
	Rationale  string
	Tally      []quiz.CategoryCount

	// Empty is set when no movie satisfied the filters.
	Empty   bool
	Message string

	Shortlist []ScoredMovie

	// Verdict is nil when arbitration was off, failed, or named a movie
	// outside the shortlist.
	Verdict      *models.Verdict
	ArbiterError error
}

// EmptyMessage is shown when discovery yields nothing.
const EmptyMessage = "조건에 맞는 영화가 없습니다. 최소 평점이나 투표 수 필터를 낮춰 보세요."
