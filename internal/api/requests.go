// Cinequiz - Quiz-Driven Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinequiz

package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/goccy/go-json"
)

// maxRequestBodyBytes bounds request bodies. Submissions are a handful of
// integers plus optional keys.
const maxRequestBodyBytes = 64 << 10

// ClassifyRequest is the body of POST /api/v1/quiz/classify.
type ClassifyRequest struct {
	Answers []int `json:"answers" validate:"required,len=5,dive,min=0,max=3"`
}

// FiltersRequest carries optional filter overrides. Nil fields take the
// configured defaults.
type FiltersRequest struct {
	Language       *string  `json:"language" validate:"omitempty,langtag"`
	IncludeAdult   *bool    `json:"include_adult"`
	MinVoteAverage *float64 `json:"min_vote_average" validate:"omitempty,min=0,max=10"`
	MinVoteCount   *int     `json:"min_vote_count" validate:"omitempty,min=0,max=10000"`
	PageCount      *int     `json:"page_count" validate:"omitempty,min=1,max=5"`
	ShowTrailer    *bool    `json:"show_trailer"`
}

// CredentialsRequest carries per-submission keys. They are used for this
// request only and never logged.
type CredentialsRequest struct {
	TMDBAPIKey      string `json:"tmdb_api_key" validate:"max=512"`
	TMDBBearerToken string `json:"tmdb_bearer_token" validate:"max=4096"`
	OpenAIAPIKey    string `json:"openai_api_key" validate:"max=512"`
}

// ArbiterRequest toggles the final pick.
type ArbiterRequest struct {
	Enabled *bool  `json:"enabled"`
	Model   string `json:"model" validate:"max=64"`
}

// RecommendRequest is the body of POST /api/v1/recommendations.
type RecommendRequest struct {
	Answers     []int              `json:"answers" validate:"required,len=5,dive,min=0,max=3"`
	Filters     FiltersRequest     `json:"filters"`
	Credentials CredentialsRequest `json:"credentials"`
	Arbiter     ArbiterRequest     `json:"arbiter"`
}

// errBodyTooLarge is reported when a body exceeds maxRequestBodyBytes.
var errBodyTooLarge = errors.New("request body too large")

// decodeJSONBody decodes a single JSON object from r into dst. Unknown
// fields are rejected so misspelled filters do not silently fall back to
// defaults.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr), strings.Contains(err.Error(), "request body too large"):
			return errBodyTooLarge
		case errors.Is(err, io.EOF):
			return errors.New("request body is empty")
		default:
			return fmt.Errorf("malformed JSON body: %w", err)
		}
	}
	if dec.More() {
		return errors.New("request body must contain a single JSON object")
	}
	return nil
}
