// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/macdeesh/patterns/cliparse"
	"github.com/macdeesh/patterns/handlers"
	"github.com/macdeesh/patterns/middleware"
	"github.com/macdeesh/patterns/store"
)

func NewRouter(g *store.Guarded, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	recordsHandler := handlers.NewRecordsHandler(g, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Quiz submissions (public)
	mux.HandleFunc("POST /answers", middleware.WithLogging(recordsHandler.Submit))

	// Answer management (admin)
	mux.HandleFunc("GET /answers", middleware.WithLogging(recordsHandler.List))
	mux.HandleFunc("DELETE /answers", middleware.WithLogging(recordsHandler.Erase))
	mux.HandleFunc("GET /answers/stats", middleware.WithLogging(recordsHandler.Stats))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("patterns API v1"))
	})

	return mux
}
