package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/MKhiriev/go-uid-panel/internal/utils"
	"github.com/MKhiriev/go-uid-panel/models"
)

type activityResponse struct {
	Entries []models.ActivityEntry `json:"entries"`
}

func (h *Handler) listActivity(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		writeError(w, r, "*Handler.listActivity", err)
		return
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(w, r, "*Handler.listActivity", err)
		return
	}

	entries, err := h.services.ActivityService.List(r.Context(), actor, limit)
	if err != nil {
		writeError(w, r, "*Handler.listActivity", err)
		return
	}

	utils.WriteJSON(w, activityResponse{Entries: nonNil(entries)}, http.StatusOK)
}

// cleanupActivity accepts an empty body; daysOld then defaults.
func (h *Handler) cleanupActivity(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		writeError(w, r, "*Handler.cleanupActivity", err)
		return
	}

	var req models.CleanupActivityRequest
	if err = decodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, r, "*Handler.cleanupActivity", err)
		return
	}

	resp, err := h.services.ActivityService.Cleanup(r.Context(), actor, req.DaysOld)
	if err != nil {
		writeError(w, r, "*Handler.cleanupActivity", err)
		return
	}

	utils.WriteJSON(w, resp, http.StatusOK)
}
