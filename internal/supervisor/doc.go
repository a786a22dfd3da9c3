// Cinequiz - Quiz-Driven Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinequiz

/*
Package supervisor runs Cinequiz's long-lived goroutines under suture v4.

Tree layout:

	RootSupervisor ("cinequiz")
	├── CacheSupervisor ("cache-layer")
	│   ├── cache janitor (cache.Cacher.Serve)
	│   └── CacheStatsService
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Crashed services restart with suture's backoff. Each layer counts failures
on its own, so cache housekeeping trouble does not restart the HTTP server.
Supervisor events (start, stop, panic, backoff) are logged through the
sutureslog adapter, which the caller feeds from the zerolog-backed
logging.NewSlogLogger.

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddCacheService(responseCache)
	tree.AddCacheService(services.NewCacheStatsService("catalog", responseCache, 30*time.Second))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	err = tree.Serve(ctx)

See the services subpackage for the suture.Service adapters.
*/
package supervisor
