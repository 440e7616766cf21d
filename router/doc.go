// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Patterns API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(guarded, cfg)

# Endpoints

Health:

	GET /health

Submissions (public):

	POST /answers - Save one quiz result

Answer management (admin, X-Admin-Key header or ?password=):

	GET    /answers - List every saved result
	DELETE /answers - Erase all saved results
	GET    /answers/stats - Compatibility summary

Every /answers route is wrapped with middleware.WithLogging. CORS is applied
around the whole mux by the caller.
*/
package router
