// ABOUTME: Settings handlers for the app settings singleton
// ABOUTME: GET returns stored or default settings; PUT overwrites them

package handlers

import (
	"encoding/json"
	"net/http"

	"pacereader-api/core/domain"
	coreerrors "pacereader-api/core/errors"
	"pacereader-api/core/interfaces"

	"github.com/go-chi/chi/v5"
)

// SettingsHandler handles settings requests
type SettingsHandler struct {
	storage interfaces.SettingsStorage
	logger  interfaces.Logger
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(storage interfaces.SettingsStorage, logger interfaces.Logger) *SettingsHandler {
	return &SettingsHandler{storage: storage, logger: logger}
}

// RegisterRoutes registers all settings routes
func (h *SettingsHandler) RegisterRoutes(r chi.Router) {
	r.Get("/settings", h.Get)
	r.Put("/settings", h.Update)
}

type settingsPayload struct {
	RSVPSpeedWPM       int                   `json:"rsvpSpeedWpm"`
	TTSSpeedMultiplier float64               `json:"ttsSpeedMultiplier"`
	FocusColor         domain.RGBColor       `json:"focusColor"`
	SelectedVoiceID    string                `json:"selectedVoiceId"`
	Appearance         domain.AppearanceMode `json:"appearance"`
}

func toSettingsPayload(s *domain.AppSettings) settingsPayload {
	return settingsPayload{
		RSVPSpeedWPM:       s.RSVPSpeedWPM,
		TTSSpeedMultiplier: s.TTSSpeedMultiplier,
		FocusColor:         s.FocusColor,
		SelectedVoiceID:    s.SelectedVoiceID,
		Appearance:         s.Appearance,
	}
}

// Get returns the current settings
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	settings, err := h.storage.GetSettings(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toSettingsPayload(settings))
}

// Update overwrites the settings singleton. Out-of-range values are
// clamped rather than rejected.
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var payload settingsPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, &coreerrors.ValidationError{Field: "body", Message: "invalid JSON"})
		return
	}

	settings := &domain.AppSettings{
		RSVPSpeedWPM:       payload.RSVPSpeedWPM,
		TTSSpeedMultiplier: payload.TTSSpeedMultiplier,
		FocusColor:         payload.FocusColor,
		SelectedVoiceID:    payload.SelectedVoiceID,
		Appearance:         payload.Appearance,
	}
	settings.Normalize()

	if err := h.storage.SaveSettings(r.Context(), settings); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toSettingsPayload(settings))
}
