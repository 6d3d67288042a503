package handler

import (
	"log/slog"
	"net/http"

	"abctrack/internal/domain/models"
	"abctrack/internal/domain/services"
	"abctrack/internal/httputil"
)

// SelectionHandler handles the "currently active child" pointer
type SelectionHandler struct {
	service services.ChildService
	logger  *slog.Logger
}

// NewSelectionHandler creates a new selection handler
func NewSelectionHandler(service services.ChildService, logger *slog.Logger) *SelectionHandler {
	return &SelectionHandler{
		service: service,
		logger:  logger,
	}
}

// GetSelection returns the current selection pointer, null when unset.
// This read never writes; clients call EnsureSelection at startup instead.
// GET /api/selection
func (h *SelectionHandler) GetSelection(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	sel, err := h.service.Selected(r.Context(), userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, sel)
}

// SetSelection overwrites the selection pointer
// PUT /api/selection
func (h *SelectionHandler) SetSelection(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	var sel models.SelectedChild
	if err := httputil.ParseJSON(w, r, &sel); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.service.SetSelected(r.Context(), userID, sel); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, sel)
}

// EnsureSelection defaults the pointer to the first enumerated child when
// unset or dangling. Invoked once at client startup.
// POST /api/selection/ensure
func (h *SelectionHandler) EnsureSelection(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	sel, err := h.service.EnsureSelection(r.Context(), userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, sel)
}
