// Cinequiz - Quiz-Driven Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinequiz

/*
Package main is the entry point for the Cinequiz server.

Cinequiz turns a five-question mood quiz into a genre, pulls matching films
from TMDB, ranks them, and can ask an OpenAI model to pick one.

# Application Architecture

	RootSupervisor ("cinequiz")
	├── CacheSupervisor ("cache-layer")
	│   ├── cache janitor (memory expiry or badger value-log GC)
	│   └── cache stats reporter
	└── APISupervisor ("api-layer")
	    └── HTTP Server (chi router)

Initialization order:

 1. Configuration: Koanf v2 (defaults, config.yaml, environment)
 2. Logging: zerolog, JSON or console
 3. Response cache: in-memory or BadgerDB
 4. Circuit breakers: one for TMDB, one for OpenAI
 5. Catalog and arbiter clients
 6. Recommendation engine with server-side fallback keys
 7. HTTP handler, middleware and router
 8. Supervisor tree, then block until SIGINT or SIGTERM

# Configuration

Every setting has a default except the upstream credentials. Common
variables:

	HTTP_PORT=8080
	TMDB_BEARER_TOKEN=...        # or TMDB_API_KEY
	OPENAI_API_KEY=...           # needed only when arbitration runs
	OPENAI_MODEL=gpt-5-mini
	CACHE_BACKEND=memory         # or badger with CACHE_PATH
	CORS_ORIGINS=https://quiz.example.com
	LOG_LEVEL=info
	LOG_FORMAT=json

Requests may carry their own keys in the credentials object; those take
precedence over the server keys for that request only.

# Signal Handling

On SIGINT or SIGTERM the HTTP server stops accepting connections and waits
for in-flight recommendations, then the cache is closed.

# Example Usage

	export TMDB_BEARER_TOKEN=your-read-access-token
	export OPENAI_API_KEY=sk-...
	./cinequiz

	curl -s localhost:8080/api/v1/recommendations \
	  -H 'Content-Type: application/json' \
	  -d '{"answers":[1,1,2,1,3],"filters":{"language":"en-US"}}'
*/
package main
