// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Patterns API.

# Handler Types

RecordsHandler serves the quiz answers file through a *store.Guarded:

	recordsHandler := handlers.NewRecordsHandler(guarded, cfg)

# Endpoints

	POST   /answers → Submit (public)
	GET    /answers → List   (admin)
	DELETE /answers → Erase  (admin)
	GET    /answers/stats → Stats (admin)

Submit expects {"userData": {...}}; userData must be a JSON object and is
stored as-is. A write that loses a race with another submission is rerun up
to cfg.SubmitAttempts times.

Stats summarizes the compatibility field of every record: mean, median,
P10, P90 and a count per band of the messages the quiz shows (perfect ≥ 90,
very ≥ 75, some ≥ 50, low).

Admin operations read the password from the X-Admin-Key header, or from the
password query parameter when the header is absent.

# Error Responses

Store errors map to status codes:

	store.ErrUnauthorized  → 401
	store.ErrInvalidRecord → 400
	store.ErrNotFound      → 404 (strict erase only)
	store.ErrConflict      → 409
	store.ErrCorruptData   → 500
	store.ErrUnavailable   → 502

All errors use the standard format:

	{
	  "error": "Conflict",
	  "message": "Answers changed concurrently, try again"
	}
*/
package handlers
