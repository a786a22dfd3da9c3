// Cinequiz - Quiz-Driven Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinequiz

/*
Package catalog is the client for the TMDB movie catalog.

It exposes two logical calls:

  - Discover: fetches N discovery pages sequentially for one genre and filter
    set and unions them into a pool deduplicated by movie ID (first occurrence
    in page order wins).
  - Detail: fetches one movie, optionally with its videos embedded through
    append_to_response so trailers cost no extra round trip.

Authentication is explicit. Every call takes an Auth built by NewAuth, which
prefers a bearer token over an api_key query credential and refuses to exist
when neither is supplied. Nothing about the credential is kept on the Client.

Resilience:

  - Up to 4 attempts per call. 429, 5xx and transport failures are retried
    with backoff min(8s, 1.2s * 2^attempt). Other 4xx answers and malformed
    payloads fail immediately with a HardAPIError.
  - When the retry budget is spent the call returns one TransientNetworkError
    carrying the last underlying error.
  - Each attempt is bounded by a 15s HTTP timeout and paced by a token-bucket
    limiter (golang.org/x/time/rate).
  - An optional circuit breaker wraps the whole logical call.

Caching:

Results are stored in a cache.Cacher as JSON (discover 30 minutes, detail 60
minutes). Keys hash every effective query parameter plus the auth fingerprint
("bearer" or "apikey"), never the credential.
*/
package catalog
