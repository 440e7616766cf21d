// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/macdeesh/patterns/cliparse"
	"github.com/macdeesh/patterns/middleware"
	"github.com/macdeesh/patterns/models"
	"github.com/macdeesh/patterns/store"
)

// MaxBodyBytes caps a submission body.
const MaxBodyBytes = 1 << 20

type RecordsHandler struct {
	store *store.Guarded
	cfg   cliparse.Config
}

func NewRecordsHandler(g *store.Guarded, cfg cliparse.Config) *RecordsHandler {
	return &RecordsHandler{store: g, cfg: cfg}
}

// Submit handles POST /answers
func (h *RecordsHandler) Submit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)

	var req models.SubmitRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// userData must be a JSON object
	data := bytes.TrimSpace(req.UserData)
	if len(data) == 0 || data[0] != '{' {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid user data")
		return
	}

	err := store.RetryConflicts(r.Context(), h.cfg.SubmitAttempts, func(ctx context.Context) error {
		return h.store.Append(ctx, data)
	})
	if err != nil {
		h.storeError(w, r, "submit", err)
		return
	}

	slog.Info("answer saved",
		"request_id", middleware.RequestID(r.Context()),
		"bytes", len(data),
	)

	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{Success: true})
}

// List handles GET /answers
func (h *RecordsHandler) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.store.ListAll(r.Context(), credential(r))
	if err != nil {
		h.storeError(w, r, "list", err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ListResponse{Records: records})
}

// Erase handles DELETE /answers
func (h *RecordsHandler) Erase(w http.ResponseWriter, r *http.Request) {
	if err := h.store.EraseAll(r.Context(), credential(r)); err != nil {
		h.storeError(w, r, "erase", err)
		return
	}

	slog.Info("answers erased", "request_id", middleware.RequestID(r.Context()))

	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{Success: true})
}

// credential reads the admin secret from X-Admin-Key, falling back to the
// password query parameter the quiz's admin page uses.
func credential(r *http.Request) string {
	if key := r.Header.Get("X-Admin-Key"); key != "" {
		return key
	}
	return r.URL.Query().Get("password")
}

// storeError maps store errors onto HTTP responses
func (h *RecordsHandler) storeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, store.ErrUnauthorized):
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	case errors.Is(err, store.ErrInvalidRecord):
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid user data")
		return
	case errors.Is(err, store.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "No saved answers")
		return
	case errors.Is(err, store.ErrConflict):
		slog.Warn("write conflict", "op", op, "request_id", middleware.RequestID(r.Context()), "error", err)
		middleware.ErrorResponse(w, http.StatusConflict, "Answers changed concurrently, try again")
		return
	}

	slog.Error("store operation failed", "op", op, "request_id", middleware.RequestID(r.Context()), "error", err)

	switch {
	case errors.Is(err, store.ErrUnavailable):
		middleware.ErrorResponse(w, http.StatusBadGateway, "Storage unavailable")
	case errors.Is(err, store.ErrCorruptData):
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Saved answers are corrupt")
	default:
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to "+op+" answers")
	}
}
