// Cinequiz - Quiz-Driven Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinequiz

package catalog

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/tomtom215/cinequiz/internal/apperrors"
	"github.com/tomtom215/cinequiz/internal/breaker"
	"github.com/tomtom215/cinequiz/internal/cache"
	"github.com/tomtom215/cinequiz/internal/logging"
	"github.com/tomtom215/cinequiz/internal/models"
)

const endpointDiscover = "discover"

// DiscoverQuery selects movies by genre and quality floor.
type DiscoverQuery struct {
	GenreID        int
	Language       string
	IncludeAdult   bool
	MinVoteAverage float64
	MinVoteCount   int
	Pages          int
}

type discoverPage struct {
	Page    int            `json:"page"`
	Results []models.Movie `json:"results"`
}

// Discover fetches Pages sequential pages sorted by popularity and merges
// them, keeping the first occurrence of each id.
func (c *Client) Discover(ctx context.Context, auth Auth, q DiscoverQuery) ([]models.Movie, error) {
	if !auth.Valid() {
		return nil, apperrors.NewConfigurationError("tmdb_credentials", "no catalog credential supplied")
	}
	if q.Pages < 1 {
		q.Pages = 1
	}

	key := cache.GenerateKey("tmdb:discover", struct {
		BaseURL string        `json:"base_url"`
		Auth    string        `json:"auth"`
		Query   DiscoverQuery `json:"query"`
	}{c.cfg.BaseURL, auth.Fingerprint(), q})

	var movies []models.Movie
	if c.cached(key, &movies) {
		logging.Ctx(ctx).Debug().Int("genre_id", q.GenreID).Int("movies", len(movies)).Msg("Discover served from cache")
		return movies, nil
	}

	movies, err := breaker.Call(c.breaker, func() ([]models.Movie, error) {
		return c.discover(ctx, auth, q)
	})
	if err != nil {
		return nil, err
	}

	c.store(key, movies, c.cfg.DiscoverTTL)
	return movies, nil
}

func (c *Client) discover(ctx context.Context, auth Auth, q DiscoverQuery) ([]models.Movie, error) {
	seen := make(map[int]struct{})
	movies := make([]models.Movie, 0, 20*q.Pages)

	for page := 1; page <= q.Pages; page++ {
		var resp discoverPage
		if err := c.get(ctx, auth, endpointDiscover, "/discover/movie", discoverParams(q, page), &resp); err != nil {
			return nil, err
		}
		for i := range resp.Results {
			m := resp.Results[i]
			if m.ID <= 0 {
				continue
			}
			if _, dup := seen[m.ID]; dup {
				continue
			}
			seen[m.ID] = struct{}{}
			movies = append(movies, m)
		}
	}

	logging.Ctx(ctx).Debug().
		Int("genre_id", q.GenreID).
		Int("pages", q.Pages).
		Int("movies", len(movies)).
		Msg("Discover completed")
	return movies, nil
}

func discoverParams(q DiscoverQuery, page int) url.Values {
	v := url.Values{}
	v.Set("with_genres", strconv.Itoa(q.GenreID))
	v.Set("sort_by", "popularity.desc")
	v.Set("include_adult", strings.ToLower(strconv.FormatBool(q.IncludeAdult)))
	v.Set("page", strconv.Itoa(page))
	if q.Language != "" {
		v.Set("language", q.Language)
	}
	v.Set("vote_average.gte", strconv.FormatFloat(q.MinVoteAverage, 'f', -1, 64))
	v.Set("vote_count.gte", strconv.Itoa(q.MinVoteCount))
	return v
}
