// Animerec - Anime Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

/*
Package api provides the HTTP REST API layer for Animerec.

Key Components:

  - Router: chi route configuration and middleware stack
  - Handler: request handlers backed by the recommendation engine, the
    trending service, the catalog client and the feedback store
  - Response formatting: the APIResponse envelope with request metadata
  - ChiMiddleware: go-chi/cors and go-chi/httprate factories

Endpoints (/api/v1):

  - GET  /recommendations?anime=<title>  ranked similar titles
  - GET  /trending                       top anime
  - GET  /trending/{category}            category page (genres, page)
  - GET  /anime/{id}                     catalog record
  - POST /feedback                       contact-form message
  - GET  /health                         service health

Prometheus metrics are served at /metrics and Swagger UI at /swagger/.

Response Envelope:

	{
	  "success": true,
	  "data": [...],
	  "meta": {"request_id": "...", "timestamp": "...", "duration_ms": 12}
	}

Errors set success to false and carry {code, message, details, request_id}
under "error". Recommendation lists never fail: upstream problems yield an
empty data array.

Usage Example:

	handler := api.NewHandler(api.Dependencies{
	    Recommender: engine,
	    Trending:    trendingService,
	    Anime:       catalogClient,
	    Feedback:    feedbackStore,
	})
	router := api.NewRouter(handler, api.NewChiMiddlewareFromConfig(cfg.Security), nil)
	http.ListenAndServe(":3000", router.SetupChi())
*/
package api
