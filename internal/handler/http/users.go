package http

import (
	"net/http"

	"github.com/MKhiriev/go-uid-panel/internal/utils"
	"github.com/MKhiriev/go-uid-panel/models"
)

type usersResponse struct {
	Users []models.User `json:"users"`
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		writeError(w, r, "*Handler.listUsers", err)
		return
	}

	users, err := h.services.UserService.List(r.Context(), actor)
	if err != nil {
		writeError(w, r, "*Handler.listUsers", err)
		return
	}

	utils.WriteJSON(w, usersResponse{Users: nonNil(users)}, http.StatusOK)
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		writeError(w, r, "*Handler.getUser", err)
		return
	}
	userID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, "*Handler.getUser", err)
		return
	}

	user, err := h.services.UserService.Get(r.Context(), actor, userID)
	if err != nil {
		writeError(w, r, "*Handler.getUser", err)
		return
	}

	utils.WriteJSON(w, userResponse{User: user}, http.StatusOK)
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		writeError(w, r, "*Handler.createUser", err)
		return
	}

	var req models.CreateUserRequest
	if err = decodeJSON(r, &req); err != nil {
		writeError(w, r, "*Handler.createUser", err)
		return
	}

	user, err := h.services.UserService.Create(r.Context(), actor, req)
	if err != nil {
		writeError(w, r, "*Handler.createUser", err)
		return
	}

	utils.WriteJSON(w, userResponse{User: user}, http.StatusCreated)
}

func (h *Handler) adjustCredits(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		writeError(w, r, "*Handler.adjustCredits", err)
		return
	}
	userID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, "*Handler.adjustCredits", err)
		return
	}

	var req models.AdjustCreditsRequest
	if err = decodeJSON(r, &req); err != nil {
		writeError(w, r, "*Handler.adjustCredits", err)
		return
	}

	user, err := h.services.UserService.AdjustCredits(r.Context(), actor, userID, req)
	if err != nil {
		writeError(w, r, "*Handler.adjustCredits", err)
		return
	}

	utils.WriteJSON(w, userResponse{User: user}, http.StatusOK)
}

func (h *Handler) setUserStatus(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		writeError(w, r, "*Handler.setUserStatus", err)
		return
	}
	userID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, "*Handler.setUserStatus", err)
		return
	}

	var req models.SetUserActiveRequest
	if err = decodeJSON(r, &req); err != nil {
		writeError(w, r, "*Handler.setUserStatus", err)
		return
	}

	user, err := h.services.UserService.SetActive(r.Context(), actor, userID, req.Active)
	if err != nil {
		writeError(w, r, "*Handler.setUserStatus", err)
		return
	}

	utils.WriteJSON(w, userResponse{User: user}, http.StatusOK)
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		writeError(w, r, "*Handler.deleteUser", err)
		return
	}
	userID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, "*Handler.deleteUser", err)
		return
	}

	if err = h.services.UserService.Delete(r.Context(), actor, userID); err != nil {
		writeError(w, r, "*Handler.deleteUser", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// nonNil turns a nil slice into an empty one so it encodes as [].
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
