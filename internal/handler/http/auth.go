package http

import (
	"net/http"

	"github.com/MKhiriev/go-uid-panel/internal/logger"
	"github.com/MKhiriev/go-uid-panel/internal/utils"
	"github.com/MKhiriev/go-uid-panel/models"
)

type userResponse struct {
	User models.User `json:"user"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, "*Handler.login", err)
		return
	}

	user, token, err := h.services.AuthService.Login(r.Context(), req)
	if err != nil {
		writeError(w, r, "*Handler.login", err)
		return
	}

	logger.FromRequest(r).Info().Int64("id", user.ID).Msg("user successfully logged in")

	h.setSessionCookie(w, token)
	utils.WriteJSON(w, userResponse{User: user}, http.StatusOK)
}

// logout clears the session cookie. Tokens are stateless, so there is
// nothing to revoke server-side.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	h.clearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		writeError(w, r, "*Handler.me", err)
		return
	}

	user, err := h.services.UserService.Get(r.Context(), actor, actor.ID)
	if err != nil {
		writeError(w, r, "*Handler.me", err)
		return
	}

	utils.WriteJSON(w, userResponse{User: user}, http.StatusOK)
}
