// Cinequiz - Quiz-Driven Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinequiz

// Package services adapts Cinequiz components to suture.Service.
//
// A suture.Service is anything with Serve(ctx) error. Serve must block until
// ctx is canceled and return ctx.Err(), or return early with an error to ask
// for a restart. String() names the service in supervisor logs.
//
// HTTPServerService turns http.Server's ListenAndServe/Shutdown pair into
// that shape. CacheStatsService refreshes the cache size gauge and logs hit
// rates. Cache janitors need no adapter: cache.Cacher already implements
// suture.Service.
package services
