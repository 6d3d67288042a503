package handler

import (
	"log/slog"
	"net/http"

	"abctrack/internal/flow"
	"abctrack/internal/httputil"
)

// FlowHandler serves the static questionnaire definitions
type FlowHandler struct {
	flows  *flow.Registry
	logger *slog.Logger
}

// NewFlowHandler creates a new flow handler
func NewFlowHandler(flows *flow.Registry, logger *slog.Logger) *FlowHandler {
	return &FlowHandler{
		flows:  flows,
		logger: logger,
	}
}

// ListFlows returns the defined flow names
// GET /api/flows
func (h *FlowHandler) ListFlows(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, h.flows.Names())
}

// GetFlow returns one flow definition by name
// GET /api/flows/{name}
func (h *FlowHandler) GetFlow(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	f, ok := h.flows.Get(name)
	if !ok {
		httputil.RespondError(w, http.StatusNotFound, "unknown flow: "+name)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, f)
}
