package handler

import (
	"log/slog"
	"net/http"

	"abctrack/internal/domain/services"
	"abctrack/internal/httputil"
	"abctrack/internal/store"
)

// ExportHandler handles summary export and maintenance requests
type ExportHandler struct {
	service services.ExportService
	store   *store.RecordStore
	logger  *slog.Logger
}

// NewExportHandler creates a new export handler
func NewExportHandler(service services.ExportService, recordStore *store.RecordStore, logger *slog.Logger) *ExportHandler {
	return &ExportHandler{
		service: service,
		store:   recordStore,
		logger:  logger,
	}
}

// Export builds a plain-text summary for a date range, returning the mailto
// compose URL and, when SES and a recipient are configured, sending it
// POST /api/export
func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	var req services.ExportRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.service.Export(r.Context(), userID, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, result)
}

// PurgeCorrupted removes this caregiver's unparseable records. The only
// path that deletes data after a read failure.
// POST /api/maintenance/purge-corrupted
func (h *ExportHandler) PurgeCorrupted(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	purged, err := h.store.PurgeCorrupted(r.Context(), userID)
	if err != nil {
		handleError(w, err)
		return
	}
	if purged == nil {
		purged = []string{}
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{"purged": purged})
}
