// Cinequiz - Quiz-Driven Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinequiz

package recommend

import (
	"math"
	"sort"

	"github.com/tomtom215/cinequiz/internal/models"
)

// Blend weights.
const (
	voteWeight       = 2.0
	popularityWeight = 0.6
)

// Score blends rating and popularity. Negative inputs count as zero.
func Score(m *models.Movie) float64 {
	vote := math.Max(m.VoteAverage, 0)
	pop := math.Max(m.Popularity, 0)
	return voteWeight*vote + popularityWeight*math.Sqrt(pop)
}

// Rank scores pool, orders it and keeps the first n entries. The pool is
// not modified.
func Rank(pool []models.Movie, n int) []ScoredMovie {
	scored := make([]ScoredMovie, len(pool))
	for i := range pool {
		scored[i] = ScoredMovie{Movie: pool[i], Score: Score(&pool[i])}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	// Second pass: artwork first, score order kept within each group.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Movie.HasPoster() && !scored[j].Movie.HasPoster()
	})

	if n < 0 {
		n = 0
	}
	if len(scored) > n {
		scored = scored[:n]
	}
	return scored
}
