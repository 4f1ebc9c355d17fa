// Animerec - Anime Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

/*
Package main is the entry point for the Animerec server.

Animerec ranks anime similar to a title the user types, and serves trending
listings and a feedback form on top of the public Jikan catalog.

# Application Architecture

The server runs under a Suture v4 supervisor tree:

	RootSupervisor ("animerec")
	├── MaintenanceSupervisor ("maintenance-layer")
	│   └── Cache janitor (expired trending entries)
	└── APISupervisor ("api-layer")
	    └── HTTP Server

Component initialization order:

 1. Configuration: Koanf v2 with defaults, config.yaml and environment variables
 2. Logging: zerolog with JSON/console output modes
 3. Catalog client: Jikan v4 with rate limiting, retries and a circuit breaker
 4. Similarity chain: Hugging Face sentence similarity, then lexical cosine
 5. Ranker (optional): OpenAI or Gemini full ranking
 6. Recommendation engine and trending service
 7. Feedback store (optional): BadgerDB, on disk or in memory
 8. Supervisor tree and HTTP server

# Configuration

Commonly used environment variables:

	PORT                 listen port (default 3000)
	HF_TOKEN             Hugging Face token; lexical scoring only when unset
	RANKER_PROVIDER      openai, gemini or none
	OPENAI_API_KEY       key for the openai ranker
	GEMINI_API_KEY       key for the gemini ranker
	FEEDBACK_PATH        BadgerDB directory; in-memory when empty
	CORS_ORIGINS         comma-separated allowed origins
	LOG_LEVEL            trace, debug, info, warn, error

# Signal Handling

SIGINT and SIGTERM cancel the root context. The HTTP server drains
in-flight requests within HTTP_SHUTDOWN_TIMEOUT, then the feedback store
and ranker client are closed.

# Example Usage

	export HF_TOKEN=hf_xxx
	export RANKER_PROVIDER=openai
	export OPENAI_API_KEY=sk-xxx
	./animerec

	curl 'http://localhost:3000/api/v1/recommendations?anime=Naruto'
*/
package main
