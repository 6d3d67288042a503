package handler

import (
	"log/slog"
	"net/http"

	"abctrack/internal/domain/services"
	"abctrack/internal/httputil"
)

// ChildHandler handles child record HTTP requests
type ChildHandler struct {
	service services.ChildService
	logger  *slog.Logger
}

// NewChildHandler creates a new child handler
func NewChildHandler(service services.ChildService, logger *slog.Logger) *ChildHandler {
	return &ChildHandler{
		service: service,
		logger:  logger,
	}
}

// HealthCheck responds to liveness probes
// GET /health
func (h *ChildHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ListChildren retrieves all non-deleted children for the caregiver
// GET /api/children
func (h *ChildHandler) ListChildren(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	children, err := h.service.ListChildren(r.Context(), userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, children)
}

// CreateChild creates a new child record
// POST /api/children
func (h *ChildHandler) CreateChild(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	var req services.CreateChildRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	child, err := h.service.CreateChild(r.Context(), userID, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, child)
}

// GetChild retrieves a child by id, including soft-deleted records
// GET /api/children/{id}
func (h *ChildHandler) GetChild(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "child id is required")
		return
	}

	child, err := h.service.GetChild(r.Context(), userID, id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, child)
}

// UpdateChild edits display fields; the id never changes
// PATCH /api/children/{id}
func (h *ChildHandler) UpdateChild(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "child id is required")
		return
	}

	var req services.UpdateChildRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	child, err := h.service.UpdateChild(r.Context(), userID, id, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, child)
}

// DeleteChild soft-deletes a child record
// DELETE /api/children/{id}
func (h *ChildHandler) DeleteChild(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "child id is required")
		return
	}

	if err := h.service.DeleteChild(r.Context(), userID, id); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AddCustomOption attaches a caregiver-defined pin to a question
// POST /api/children/{id}/options
func (h *ChildHandler) AddCustomOption(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)
	id := r.PathValue("id")

	var req services.CustomOptionRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	child, err := h.service.AddCustomOption(r.Context(), userID, id, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, child)
}

// RemoveCustomOption removes a pin by label
// DELETE /api/children/{id}/options
func (h *ChildHandler) RemoveCustomOption(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)
	id := r.PathValue("id")

	var req services.CustomOptionRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	child, err := h.service.RemoveCustomOption(r.Context(), userID, id, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, child)
}
