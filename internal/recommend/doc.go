// Cinequiz - Quiz-Driven Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinequiz

// Package recommend turns five quiz answers into a ranked shortlist and an
// optional single pick.
//
// # Pipeline
//
// Engine.Recommend runs one submission end to end:
//
//	credentials -> classify answers -> discover pool -> rank -> detail per
//	shortlist entry -> optional arbiter pick -> rationale
//
// Every step runs sequentially on the calling goroutine. Credential checks
// happen before any network call. An empty pool is a successful result with
// Empty set. A failed detail lookup degrades to the discovery record. An
// arbiter failure is reported on the result while the shortlist is still
// returned.
//
// # Ranking
//
// Rank scores each movie with
//
//	score = 2.0*vote_average + 0.6*sqrt(popularity)
//
// sorts by score descending, then runs a second stable pass that moves
// movies without poster art behind those with art. Both passes are stable,
// so score order is preserved inside each artwork group.
//
// # Thread Safety
//
// The engine is safe for concurrent use. It keeps no per-request state;
// credentials live only for the duration of a call.
package recommend
