// Cinequiz - Quiz-Driven Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinequiz

package catalog

import (
	"strings"

	"github.com/tomtom215/cinequiz/internal/models"
)

const youtubeWatchURL = "https://www.youtube.com/watch?v="

// PosterURL joins the image base with a poster path. Empty when the movie
// has no poster.
func (c *Client) PosterURL(path string) string {
	return PosterURL(c.cfg.ImageBaseURL, path)
}

// PosterURL joins base and path.
func PosterURL(base, path string) string {
	if path == "" {
		return ""
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}

// TrailerURL picks the best YouTube video: trailers over teasers, official
// uploads over fan uploads. Ties keep catalog order.
func TrailerURL(videos *models.VideoList) string {
	if videos == nil {
		return ""
	}
	best, bestScore := "", -1
	for _, v := range videos.Results {
		if v.Site != "YouTube" || v.Key == "" {
			continue
		}
		score := 0
		switch strings.ToLower(v.Type) {
		case "trailer":
			score += 20
		case "teaser":
			score += 10
		}
		if v.Official {
			score += 5
		}
		if score > bestScore {
			best, bestScore = v.Key, score
		}
	}
	if best == "" {
		return ""
	}
	return youtubeWatchURL + best
}
