package http

import (
	"net/http"

	"github.com/MKhiriev/go-uid-panel/internal/utils"
	"github.com/MKhiriev/go-uid-panel/models"
)

type uidsResponse struct {
	UIDs []models.UIDRecord `json:"uids"`
}

func (h *Handler) createUID(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		writeError(w, r, "*Handler.createUID", err)
		return
	}

	var req models.CreateUIDRequest
	if err = decodeJSON(r, &req); err != nil {
		writeError(w, r, "*Handler.createUID", err)
		return
	}

	resp, err := h.services.UIDService.Create(r.Context(), actor, req)
	if err != nil {
		writeError(w, r, "*Handler.createUID", err)
		return
	}

	utils.WriteJSON(w, resp, http.StatusCreated)
}

func (h *Handler) listUserUIDs(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		writeError(w, r, "*Handler.listUserUIDs", err)
		return
	}
	userID, err := pathID(r, "userId")
	if err != nil {
		writeError(w, r, "*Handler.listUserUIDs", err)
		return
	}

	uids, err := h.services.UIDService.ListForUser(r.Context(), actor, userID)
	if err != nil {
		writeError(w, r, "*Handler.listUserUIDs", err)
		return
	}

	utils.WriteJSON(w, uidsResponse{UIDs: nonNil(uids)}, http.StatusOK)
}

// listAllUIDs answers 200 even when the external listing failed; the
// failure is reported in external_error next to the local records.
func (h *Handler) listAllUIDs(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		writeError(w, r, "*Handler.listAllUIDs", err)
		return
	}

	resp, err := h.services.UIDService.ListAll(r.Context(), actor)
	if err != nil {
		writeError(w, r, "*Handler.listAllUIDs", err)
		return
	}
	resp.UIDs = nonNil(resp.UIDs)

	utils.WriteJSON(w, resp, http.StatusOK)
}

func (h *Handler) deleteUID(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		writeError(w, r, "*Handler.deleteUID", err)
		return
	}
	uidID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, "*Handler.deleteUID", err)
		return
	}

	if err = h.services.UIDService.Delete(r.Context(), actor, uidID); err != nil {
		writeError(w, r, "*Handler.deleteUID", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) updateUIDStatus(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		writeError(w, r, "*Handler.updateUIDStatus", err)
		return
	}
	uidID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, "*Handler.updateUIDStatus", err)
		return
	}

	var req models.UpdateUIDStatusRequest
	if err = decodeJSON(r, &req); err != nil {
		writeError(w, r, "*Handler.updateUIDStatus", err)
		return
	}

	record, err := h.services.UIDService.UpdateStatus(r.Context(), actor, uidID, req.Status)
	if err != nil {
		writeError(w, r, "*Handler.updateUIDStatus", err)
		return
	}

	utils.WriteJSON(w, record, http.StatusOK)
}

func (h *Handler) updateUIDValue(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		writeError(w, r, "*Handler.updateUIDValue", err)
		return
	}
	uidID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, "*Handler.updateUIDValue", err)
		return
	}

	var req models.UpdateUIDValueRequest
	if err = decodeJSON(r, &req); err != nil {
		writeError(w, r, "*Handler.updateUIDValue", err)
		return
	}

	record, err := h.services.UIDService.UpdateValue(r.Context(), actor, uidID, req.NewUIDValue)
	if err != nil {
		writeError(w, r, "*Handler.updateUIDValue", err)
		return
	}

	utils.WriteJSON(w, record, http.StatusOK)
}
