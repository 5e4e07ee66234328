package http

import (
	"net/http"

	"github.com/MKhiriev/go-uid-panel/internal/utils"
	"github.com/MKhiriev/go-uid-panel/models"
)

func (h *Handler) getSettings(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		writeError(w, r, "*Handler.getSettings", err)
		return
	}

	settings, err := h.services.SettingsService.Get(r.Context(), actor)
	if err != nil {
		writeError(w, r, "*Handler.getSettings", err)
		return
	}

	utils.WriteJSON(w, settings, http.StatusOK)
}

func (h *Handler) saveSettings(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		writeError(w, r, "*Handler.saveSettings", err)
		return
	}

	var req models.SaveSettingsRequest
	if err = decodeJSON(r, &req); err != nil {
		writeError(w, r, "*Handler.saveSettings", err)
		return
	}

	settings, err := h.services.SettingsService.Save(r.Context(), actor, req)
	if err != nil {
		writeError(w, r, "*Handler.saveSettings", err)
		return
	}

	utils.WriteJSON(w, settings, http.StatusOK)
}
