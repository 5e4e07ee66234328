package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-uid-panel/internal/logger"
	"github.com/MKhiriev/go-uid-panel/internal/service"
	"github.com/MKhiriev/go-uid-panel/internal/utils"
	"github.com/MKhiriev/go-uid-panel/models"
	"github.com/rs/zerolog"
)

const (
	sessionCookieName = "uid_session"
	apiKeyHeader      = "X-API-Key"
)

// withSession authenticates dashboard requests.
//
// The session cookie is parsed and the session user is reloaded, so the
// [models.Actor] stored in the context always reflects the current role and
// suspension flag. Requests are rejected with 401 when the cookie is missing
// or invalid and with 403 when the user is suspended. A rejected session
// cookie is cleared.
func (h *Handler) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		cookie, err := r.Cookie(sessionCookieName)
		if err != nil || cookie.Value == "" {
			writeError(w, r, "*Handler.withSession", ErrNoSession)
			return
		}

		token, err := h.services.AuthService.ParseSession(ctx, cookie.Value)
		if err != nil {
			h.clearSessionCookie(w)
			writeError(w, r, "*Handler.withSession", err)
			return
		}

		actor, _, err := h.services.AuthService.ResolveActor(ctx, token)
		if err != nil {
			if errors.Is(err, service.ErrUnauthorized) || errors.Is(err, service.ErrUserSuspended) {
				h.clearSessionCookie(w)
			}
			writeError(w, r, "*Handler.withSession", err)
			return
		}

		log := logger.FromRequest(r).WithActor(actor.ID)
		ctx = log.WithContext(utils.WithActor(ctx, actor))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireOwner rejects non-owner actors with 403. It must run after
// withSession.
func requireOwner(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := utils.ActorFromContext(r.Context())
		if !ok {
			writeError(w, r, "requireOwner", ErrNoActor)
			return
		}
		if !actor.IsOwner() {
			writeError(w, r, "requireOwner", service.ErrForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withAPIKey authenticates integration requests by the X-API-Key header and
// stores both the key scope and the actor of the key's user in the context.
// Failures are written in the integration envelope.
func (h *Handler) withAPIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get(apiKeyHeader)
		if key == "" {
			writeIntegrationError(w, r, "*Handler.withAPIKey", ErrNoAPIKey)
			return
		}

		scope, actor, err := h.services.APIKeyService.Authenticate(r.Context(), key)
		if err != nil {
			writeIntegrationError(w, r, "*Handler.withAPIKey", err)
			return
		}

		log := logger.FromRequest(r).WithActor(actor.ID)
		log.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Int64("api_key_id", scope.KeyID)
		})
		ctx := utils.WithAPIKeyScope(utils.WithActor(r.Context(), actor), scope)
		ctx = log.WithContext(ctx)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) setSessionCookie(w http.ResponseWriter, token models.Token) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token.SignedString,
		Path:     "/",
		Expires:  token.Expires(),
		MaxAge:   int(h.sessionDuration.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

// actorFrom returns the actor stored by the auth middlewares.
func actorFrom(r *http.Request) (models.Actor, error) {
	actor, ok := utils.ActorFromContext(r.Context())
	if !ok {
		return models.Actor{}, ErrNoActor
	}
	return actor, nil
}
