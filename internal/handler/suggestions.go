package handler

import (
	"log/slog"
	"net/http"

	"abctrack/internal/httputil"
	"abctrack/internal/suggest"
)

// SuggestionHandler serves cached or freshly fetched suggestion lists
type SuggestionHandler struct {
	service *suggest.Service
	logger  *slog.Logger
}

// NewSuggestionHandler creates a new suggestion handler
func NewSuggestionHandler(service *suggest.Service, logger *slog.Logger) *SuggestionHandler {
	return &SuggestionHandler{
		service: service,
		logger:  logger,
	}
}

// GetSuggestions returns antecedent/consequence suggestions for a behavior.
// Remote failures degrade to the static tables, flagged isFallback.
// GET /api/suggestions?behavior=...
func (h *SuggestionHandler) GetSuggestions(w http.ResponseWriter, r *http.Request) {
	behavior := r.URL.Query().Get("behavior")
	if behavior == "" {
		httputil.RespondError(w, http.StatusBadRequest, "behavior query parameter is required")
		return
	}

	result, err := h.service.Get(r.Context(), behavior)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, result)
}
