package handler

import (
	"encoding/json"
	"net/http"

	"github.com/sakif/shop-ledger/internal/service"
)

// SettingsHandler exposes the theme preference.
type SettingsHandler struct {
	settings *service.SettingsService
}

func NewSettingsHandler(settings *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// HandleGetTheme returns the saved theme.
//
// HTTP: GET /api/settings/theme
func (h *SettingsHandler) HandleGetTheme(w http.ResponseWriter, r *http.Request) {
	theme, err := h.settings.Theme(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"theme": theme})
}

// HandleSetTheme saves the theme.
//
// HTTP: PUT /api/settings/theme
// BODY: {"theme":"dark"}
func (h *SettingsHandler) HandleSetTheme(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Theme string `json:"theme"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	if err := h.settings.SetTheme(r.Context(), req.Theme); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"theme": req.Theme})
}
