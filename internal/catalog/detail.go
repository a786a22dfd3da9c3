// Cinequiz - Quiz-Driven Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinequiz

package catalog

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/tomtom215/cinequiz/internal/apperrors"
	"github.com/tomtom215/cinequiz/internal/breaker"
	"github.com/tomtom215/cinequiz/internal/cache"
	"github.com/tomtom215/cinequiz/internal/models"
)

const (
	endpointDetail = "detail"

	// UntitledMovie is used when neither lookup yields a title.
	UntitledMovie = "제목 없음"
)

// Detail fetches one movie. With includeTrailer the video list is embedded
// in the same response through append_to_response.
func (c *Client) Detail(ctx context.Context, auth Auth, id int, language string, includeTrailer bool) (*models.Movie, error) {
	if !auth.Valid() {
		return nil, apperrors.NewConfigurationError("tmdb_credentials", "no catalog credential supplied")
	}
	if id <= 0 {
		return nil, fmt.Errorf("invalid movie id %d", id)
	}

	key := cache.GenerateKey("tmdb:detail", struct {
		BaseURL  string `json:"base_url"`
		Auth     string `json:"auth"`
		ID       int    `json:"id"`
		Language string `json:"language"`
		Trailer  bool   `json:"trailer"`
	}{c.cfg.BaseURL, auth.Fingerprint(), id, language, includeTrailer})

	var movie models.Movie
	if c.cached(key, &movie) {
		return &movie, nil
	}

	params := url.Values{}
	if language != "" {
		params.Set("language", language)
	}
	if includeTrailer {
		params.Set("append_to_response", "videos")
	}

	fetched, err := breaker.Call(c.breaker, func() (*models.Movie, error) {
		var m models.Movie
		if err := c.get(ctx, auth, endpointDetail, "/movie/"+strconv.Itoa(id), params, &m); err != nil {
			return nil, err
		}
		return &m, nil
	})
	if err != nil {
		return nil, err
	}

	c.store(key, fetched, c.cfg.DetailTTL)
	return fetched, nil
}

// MergeDetail overlays non-empty detail fields on the discovery record.
// A nil detail returns base unchanged apart from title and overview
// normalisation.
func MergeDetail(base models.Movie, detail *models.Movie) models.Movie {
	out := base
	if detail != nil {
		if detail.Title != "" {
			out.Title = detail.Title
		}
		if strings.TrimSpace(detail.Overview) != "" {
			out.Overview = detail.Overview
		}
		if detail.VoteAverage > 0 || detail.VoteCount > 0 {
			out.VoteAverage = detail.VoteAverage
			out.VoteCount = detail.VoteCount
		}
		if detail.ReleaseDate != "" {
			out.ReleaseDate = detail.ReleaseDate
		}
		if detail.PosterPath != "" {
			out.PosterPath = detail.PosterPath
		}
		if detail.Popularity > 0 {
			out.Popularity = detail.Popularity
		}
		out.Videos = detail.Videos
	}
	if strings.TrimSpace(out.Title) == "" {
		out.Title = UntitledMovie
	}
	out.Overview = strings.TrimSpace(out.Overview)
	return out
}
