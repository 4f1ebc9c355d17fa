// Animerec - Anime Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

/*
Package config loads and validates Animerec configuration.

# Configuration Sources

Configuration is layered with Koanf v2, later layers overriding earlier ones:

 1. Built-in defaults (defaultConfig)
 2. Optional YAML file: $CONFIG_PATH, ./config.yaml, /etc/animerec/config.yaml
 3. Environment variables, mapped explicitly in envTransformFunc

Unknown environment variables are ignored so the process environment cannot
leak into configuration by accident.

# Environment Variables

Server:
  - HTTP_HOST, HTTP_PORT, HTTP_READ_TIMEOUT, HTTP_WRITE_TIMEOUT, ENVIRONMENT

Catalog (Jikan):
  - JIKAN_BASE_URL, JIKAN_TIMEOUT, JIKAN_MAX_ATTEMPTS, JIKAN_BACKOFF
  - JIKAN_RATE_LIMIT, JIKAN_RATE_BURST

Semantic similarity (Hugging Face):
  - SIMILARITY_PROVIDER (huggingface, none)
  - HF_TOKEN or HUGGINGFACE_API_TOKEN
  - HF_MODEL, HF_TASK, HF_BASE_URL, HF_MAX_RETRIES, HF_RETRY_DELAY

Full ranking (generative model):
  - RANKER_PROVIDER (openai, gemini, none)
  - OPENAI_API_KEY, OPENAI_MODEL, OPENAI_ENDPOINT
  - GEMINI_API_KEY, GEMINI_MODEL

Ranking pipeline:
  - RECOMMEND_MAX_SEEDS, RECOMMEND_MAX_RESULTS, RECOMMEND_ENRICH_CONCURRENCY
  - RECOMMEND_REQUEST_TIMEOUT

Trending, feedback, security and logging:
  - TRENDING_CACHE_TTL, TRENDING_CATEGORY_CACHE_TTL, TRENDING_CACHE_CAPACITY
  - FEEDBACK_ENABLED, FEEDBACK_PATH
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT, CORS_ORIGINS
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER

# Credentials

Missing provider credentials are not configuration errors. The similarity
provider and the ranker simply report themselves unavailable and the
ranking pipeline falls back to lexical similarity.
*/
package config
