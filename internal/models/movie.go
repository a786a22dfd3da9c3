// Cinequiz - Quiz-Driven Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinequiz

package models

// Movie is a catalog title. Identity is ID; every other field can be
// refreshed from a detail lookup.
type Movie struct {
	ID          int        `json:"id"`
	Title       string     `json:"title"`
	Overview    string     `json:"overview"`
	VoteAverage float64    `json:"vote_average"`
	VoteCount   int        `json:"vote_count"`
	ReleaseDate string     `json:"release_date"`
	Popularity  float64    `json:"popularity"`
	PosterPath  string     `json:"poster_path"`
	Videos      *VideoList `json:"videos,omitempty"`
}

// HasPoster reports whether the movie carries poster artwork.
func (m *Movie) HasPoster() bool {
	return m.PosterPath != ""
}

// VideoList is the embedded videos block of a detail response.
type VideoList struct {
	Results []Video `json:"results"`
}

// Video is one video reference attached to a movie.
type Video struct {
	Site     string `json:"site"`
	Key      string `json:"key"`
	Type     string `json:"type"`
	Official bool   `json:"official"`
}

// Verdict is the arbiter's single pick from a shortlist.
type Verdict struct {
	MovieID    int     `json:"movie_id"`
	Title      string  `json:"title"`
	Reason     string  `json:"reason"`
	Confidence float64 `json:"confidence"`
}
