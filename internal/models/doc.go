// Cinequiz - Quiz-Driven Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinequiz

/*
Package models defines the data structures shared across Cinequiz.

Key Components:

  - Movie: a catalog title as returned by discovery or detail lookups, with
    optional embedded trailer videos
  - Verdict: the single pick returned by the language-model arbiter
  - APIResponse, APIError, Metadata: the envelope used by every HTTP endpoint

Catalog payloads are decoded straight into Movie, so the JSON tags follow the
catalog's field names (vote_average, poster_path, videos.results).
*/
package models
