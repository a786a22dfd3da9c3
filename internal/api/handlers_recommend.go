// Cinequiz - Quiz-Driven Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinequiz

package api

import (
	"math"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/tomtom215/cinequiz/internal/apperrors"
	"github.com/tomtom215/cinequiz/internal/models"
	"github.com/tomtom215/cinequiz/internal/quiz"
	"github.com/tomtom215/cinequiz/internal/recommend"
	"github.com/tomtom215/cinequiz/internal/validation"
)

// MovieResponse is one shortlist entry.
type MovieResponse struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	VoteAverage float64 `json:"vote_average"`
	VoteCount   int     `json:"vote_count"`
	ReleaseDate string  `json:"release_date"`
	PosterURL   string  `json:"poster_url,omitempty"`
	TrailerURL  string  `json:"trailer_url,omitempty"`
	Score       float64 `json:"score"`
}

// VerdictResponse is the arbiter's pick. Confidence is clamped to [0,1].
type VerdictResponse struct {
	MovieID    int     `json:"movie_id"`
	Title      string  `json:"title"`
	Reason     string  `json:"reason"`
	Confidence float64 `json:"confidence"`
}

// VerdictErrorResponse reports an arbitration failure next to a usable
// shortlist.
type VerdictErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RecommendResponse is the body of POST /api/v1/recommendations.
type RecommendResponse struct {
	Genre        quiz.GenreKey         `json:"genre"`
	GenreLabel   string                `json:"genre_label"`
	Rationale    string                `json:"rationale"`
	Tally        []quiz.CategoryCount  `json:"tally"`
	Empty        bool                  `json:"empty"`
	Message      string                `json:"message,omitempty"`
	Shortlist    []MovieResponse       `json:"shortlist"`
	Verdict      *VerdictResponse      `json:"verdict,omitempty"`
	VerdictError *VerdictErrorResponse `json:"verdict_error,omitempty"`
}

// Recommendations handles POST /api/v1/recommendations.
//
// Filter fields left out of the body take the configured defaults. Missing
// credentials fall back to server-side keys inside the engine.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var body RecommendRequest
	if err := decodeJSONBody(w, r, &body); err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, err.Error(), nil)
		return
	}
	if verr := validation.ValidateStruct(&body); verr != nil {
		respondValidationError(w, r, verr)
		return
	}

	req := h.buildRequest(&body)
	if verr := h.checkConfiguredValues(&req); verr != nil {
		respondValidationError(w, r, verr)
		return
	}

	result, err := h.engine.Recommend(r.Context(), req)
	if err != nil {
		respondAppError(w, r, err)
		return
	}

	respondSuccess(w, toRecommendResponse(result), start)
}

// buildRequest merges the body with configured defaults.
func (h *Handler) buildRequest(body *RecommendRequest) recommend.Request {
	cfg := h.engine.Config()
	f := cfg.Defaults

	if body.Filters.Language != nil {
		f.Language = *body.Filters.Language
	}
	if body.Filters.IncludeAdult != nil {
		f.IncludeAdult = *body.Filters.IncludeAdult
	}
	if body.Filters.MinVoteAverage != nil {
		f.MinVoteAverage = *body.Filters.MinVoteAverage
	}
	if body.Filters.MinVoteCount != nil {
		f.MinVoteCount = *body.Filters.MinVoteCount
	}
	if body.Filters.PageCount != nil {
		f.PageCount = *body.Filters.PageCount
	}
	if body.Filters.ShowTrailer != nil {
		f.ShowTrailer = *body.Filters.ShowTrailer
	}

	enabled := cfg.ArbiterEnabledByDefault
	if body.Arbiter.Enabled != nil {
		enabled = *body.Arbiter.Enabled
	}

	return recommend.Request{
		Answers: body.Answers,
		Filters: f,
		Credentials: recommend.Credentials{
			TMDBAPIKey:      strings.TrimSpace(body.Credentials.TMDBAPIKey),
			TMDBBearerToken: strings.TrimSpace(body.Credentials.TMDBBearerToken),
			OpenAIAPIKey:    strings.TrimSpace(body.Credentials.OpenAIAPIKey),
		},
		Arbiter: recommend.ArbiterOptions{
			Enabled: enabled,
			Model:   strings.TrimSpace(body.Arbiter.Model),
		},
	}
}

// checkConfiguredValues validates fields whose allowed values come from
// server configuration.
func (h *Handler) checkConfiguredValues(req *recommend.Request) *validation.RequestValidationError {
	if len(h.config.Languages) > 0 && !slices.Contains(h.config.Languages, req.Filters.Language) {
		return validation.NewFieldError("filters.language", "oneof", strings.Join(h.config.Languages, " "),
			req.Filters.Language, "filters.language must be one of: "+strings.Join(h.config.Languages, ", "))
	}
	model := req.Arbiter.Model
	if model != "" && len(h.config.AllowedModels) > 0 && !slices.Contains(h.config.AllowedModels, model) {
		return validation.NewFieldError("arbiter.model", "oneof", strings.Join(h.config.AllowedModels, " "),
			model, "arbiter.model must be one of: "+strings.Join(h.config.AllowedModels, ", "))
	}
	return nil
}

func toRecommendResponse(res *recommend.Result) RecommendResponse {
	out := RecommendResponse{
		Genre:      res.Genre,
		GenreLabel: res.GenreLabel,
		Rationale:  res.Rationale,
		Tally:      res.Tally,
		Empty:      res.Empty,
		Message:    res.Message,
		Shortlist:  make([]MovieResponse, len(res.Shortlist)),
	}

	for i := range res.Shortlist {
		sm := &res.Shortlist[i]
		out.Shortlist[i] = MovieResponse{
			ID:          sm.Movie.ID,
			Title:       sm.Movie.Title,
			Overview:    sm.Movie.Overview,
			VoteAverage: sm.Movie.VoteAverage,
			VoteCount:   sm.Movie.VoteCount,
			ReleaseDate: sm.Movie.ReleaseDate,
			PosterURL:   sm.PosterURL,
			TrailerURL:  sm.TrailerURL,
			Score:       sm.Score,
		}
	}

	if res.Verdict != nil {
		out.Verdict = toVerdictResponse(res.Verdict)
	}
	if res.ArbiterError != nil {
		out.VerdictError = &VerdictErrorResponse{
			Code:    apperrors.Code(res.ArbiterError),
			Message: res.ArbiterError.Error(),
		}
	}
	return out
}

func toVerdictResponse(v *models.Verdict) *VerdictResponse {
	return &VerdictResponse{
		MovieID:    v.MovieID,
		Title:      v.Title,
		Reason:     v.Reason,
		Confidence: clampConfidence(v.Confidence),
	}
}

// clampConfidence bounds c to [0,1] for display.
func clampConfidence(c float64) float64 {
	switch {
	case math.IsNaN(c), c < 0:
		return 0
	case c > 1:
		return 1
	default:
		return c
	}
}
