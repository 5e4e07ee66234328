package http

import (
	"net/http"

	"github.com/MKhiriev/go-uid-panel/internal/utils"
	"github.com/MKhiriev/go-uid-panel/models"
)

type apiKeysResponse struct {
	APIKeys []models.APIKey `json:"api_keys"`
}

// createAPIKey returns the plaintext key. It is never shown again.
func (h *Handler) createAPIKey(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		writeError(w, r, "*Handler.createAPIKey", err)
		return
	}

	var req models.CreateAPIKeyRequest
	if err = decodeJSON(r, &req); err != nil {
		writeError(w, r, "*Handler.createAPIKey", err)
		return
	}

	key, err := h.services.APIKeyService.Create(r.Context(), actor, req)
	if err != nil {
		writeError(w, r, "*Handler.createAPIKey", err)
		return
	}

	utils.WriteJSON(w, key, http.StatusCreated)
}

func (h *Handler) listAPIKeys(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		writeError(w, r, "*Handler.listAPIKeys", err)
		return
	}

	keys, err := h.services.APIKeyService.List(r.Context(), actor)
	if err != nil {
		writeError(w, r, "*Handler.listAPIKeys", err)
		return
	}

	utils.WriteJSON(w, apiKeysResponse{APIKeys: nonNil(keys)}, http.StatusOK)
}

func (h *Handler) deleteAPIKey(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		writeError(w, r, "*Handler.deleteAPIKey", err)
		return
	}
	keyID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, "*Handler.deleteAPIKey", err)
		return
	}

	if err = h.services.APIKeyService.Delete(r.Context(), actor, keyID); err != nil {
		writeError(w, r, "*Handler.deleteAPIKey", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
