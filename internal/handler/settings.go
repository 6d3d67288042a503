package handler

import (
	"log/slog"
	"net/http"
	"time"

	"abctrack/internal/domain/models"
	"abctrack/internal/httputil"
	"abctrack/internal/store"
)

// SettingsHandler handles reminder and onboarding settings
type SettingsHandler struct {
	store  *store.RecordStore
	logger *slog.Logger
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(recordStore *store.RecordStore, logger *slog.Logger) *SettingsHandler {
	return &SettingsHandler{
		store:  recordStore,
		logger: logger,
	}
}

// GetReminder returns the caregiver's daily reminder settings
// GET /api/settings/reminder
func (h *SettingsHandler) GetReminder(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	settings, err := h.store.ReminderSettings(r.Context(), userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, settings)
}

// SetReminder overwrites the reminder settings; the scheduler picks the
// change up on its next tick
// PUT /api/settings/reminder
func (h *SettingsHandler) SetReminder(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	var settings models.ReminderSettings
	if err := httputil.ParseJSON(w, r, &settings); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if settings.Enabled {
		if _, err := time.Parse("15:04", settings.TimeOfDay); err != nil {
			httputil.RespondError(w, http.StatusBadRequest, "time_of_day must be HH:MM")
			return
		}
	}

	if err := h.store.SetReminderSettings(r.Context(), userID, settings); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, settings)
}

// GetOnboarding returns the onboarding-completed flag
// GET /api/settings/onboarding
func (h *SettingsHandler) GetOnboarding(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	done, err := h.store.OnboardingCompleted(r.Context(), userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]bool{"completed": done})
}

// SetOnboarding writes the onboarding-completed flag
// PUT /api/settings/onboarding
func (h *SettingsHandler) SetOnboarding(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	var body struct {
		Completed bool `json:"completed"`
	}
	if err := httputil.ParseJSON(w, r, &body); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.store.SetOnboardingCompleted(r.Context(), userID, body.Completed); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]bool{"completed": body.Completed})
}
