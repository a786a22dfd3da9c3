// Cinequiz - Quiz-Driven Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinequiz

/*
Package cache provides the TTL caches used for catalog discovery and detail
responses.

Two backends implement Cacher:

  - Cache: an in-memory map of key -> (value, expiry) guarded by a mutex.
    Expired entries are dropped lazily on Get and in bulk by Serve.
  - BadgerCache: entries stored in Badger with native per-entry TTL, so a
    restarted server keeps its warm cache. Serve runs value-log GC.

Both are suture services; the supervisor tree runs their housekeeping loop.

Keys come from GenerateKey, which hashes the JSON encoding of the query
parameters. The catalog client includes the auth fingerprint ("bearer" or
"apikey") in those parameters and never the credential itself.

	c := cache.New(30*time.Minute, cache.WithName("catalog"))
	key := cache.GenerateKey("discover", params)
	c.SetWithTTL(key, payload, 30*time.Minute)
*/
package cache
