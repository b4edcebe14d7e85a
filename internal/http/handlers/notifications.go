package handlers

import (
	"net/http"

	"github.com/preston-bernstein/scoreboard-service/internal/domain/prefs"
)

const msgPreferencesFailed = "Unable to update notification preferences right now."

type preferencesResponse struct {
	Preferences prefs.NotificationPreferences `json:"preferences"`
}

// Notifications returns saved preferences, or the defaults when none are stored.
func (h *Handler) Notifications(w http.ResponseWriter, r *http.Request) {
	prefsOut := prefs.DefaultNotifications()
	var stored prefs.NotificationUpdate
	if readCookieJSON(r, notificationsCookie, &stored) {
		prefsOut = stored.Stored()
	}
	writeJSON(w, http.StatusOK, preferencesResponse{Preferences: prefsOut}, h.logger)
}

// UpdateNotifications replaces the preferences. Omitted flags reset to defaults.
func (h *Handler) UpdateNotifications(w http.ResponseWriter, r *http.Request) {
	var update prefs.NotificationUpdate
	if err := decodeBody(w, r, &update); err != nil {
		writeError(w, r, http.StatusBadRequest, msgPreferencesFailed, h.logger)
		return
	}

	resolved := update.ApplyDefaults()
	if err := writeCookieJSON(w, notificationsCookie, resolved); err != nil {
		writeError(w, r, http.StatusInternalServerError, msgPreferencesFailed, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, preferencesResponse{Preferences: resolved}, h.logger)
}
