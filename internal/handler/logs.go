package handler

import (
	"log/slog"
	"net/http"

	"abctrack/internal/domain/services"
	"abctrack/internal/export"
	"abctrack/internal/httputil"
)

// LogHandler handles log append, listing, clearing and progress views
type LogHandler struct {
	logs     services.LogService
	children services.ChildService
	logger   *slog.Logger
}

// NewLogHandler creates a new log handler
func NewLogHandler(logs services.LogService, children services.ChildService, logger *slog.Logger) *LogHandler {
	return &LogHandler{
		logs:     logs,
		children: children,
		logger:   logger,
	}
}

// AppendLog appends a completed questionnaire pass
// POST /api/children/{id}/logs
func (h *LogHandler) AppendLog(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)
	childID := r.PathValue("id")

	var req services.AppendLogRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.logs.AppendLog(r.Context(), userID, childID, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, result)
}

// ListLogs lists log entries in a named range (default: week)
// GET /api/children/{id}/logs?range=today|yesterday|week
func (h *LogHandler) ListLogs(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)
	childID := r.PathValue("id")

	rangeName := r.URL.Query().Get("range")
	if rangeName == "" {
		rangeName = string(export.RangeWeek)
	}
	rng, err := export.ParseRange(rangeName)
	if err != nil {
		handleError(w, err)
		return
	}

	entries, err := h.logs.EntriesInRange(r.Context(), userID, childID, rng)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, entries)
}

// ClearLogs resets both sentiment arrays, keeping the record
// DELETE /api/children/{id}/logs
func (h *LogHandler) ClearLogs(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)
	childID := r.PathValue("id")

	if err := h.children.ClearLogs(r.Context(), userID, childID); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetProgress returns the derived streak and weekly completion view
// GET /api/children/{id}/streak
func (h *LogHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)
	childID := r.PathValue("id")

	progress, err := h.logs.Progress(r.Context(), userID, childID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, progress)
}
