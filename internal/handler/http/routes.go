package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging, withGZip)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/healthz", h.healthz)
		r.Get("/version", h.version)
		r.Post("/auth/login", h.login)
		r.Post("/auth/logout", h.logout)
	})

	// dashboard routes, session cookie
	router.Group(func(r chi.Router) {
		r.Use(h.withSession)

		r.Get("/auth/me", h.me)
		r.Get("/plans", h.plans)

		r.Get("/users/{id}", h.getUser)

		r.Post("/uids", h.createUID)
		r.Get("/uids/user/{userId}", h.listUserUIDs)
		r.Delete("/uids/{id}", h.deleteUID)
		r.Patch("/uids/{id}", h.updateUIDStatus)
		r.Patch("/uids/{id}/value", h.updateUIDValue)

		r.Get("/activity", h.listActivity)

		// owner only
		r.Group(func(r chi.Router) {
			r.Use(requireOwner)

			r.Get("/users", h.listUsers)
			r.Post("/users", h.createUser)
			r.Patch("/users/{id}/credits", h.adjustCredits)
			r.Patch("/users/{id}/status", h.setUserStatus)
			r.Delete("/users/{id}", h.deleteUser)

			r.Get("/uids/all", h.listAllUIDs)

			r.Get("/settings", h.getSettings)
			r.Post("/settings", h.saveSettings)

			r.Post("/activity/cleanup", h.cleanupActivity)

			r.Post("/api-keys", h.createAPIKey)
			r.Get("/api-keys", h.listAPIKeys)
			r.Delete("/api-keys/{id}", h.deleteAPIKey)
		})
	})

	// integration API, X-API-Key
	router.Route("/api/v1", func(r chi.Router) {
		r.Use(h.withAPIKey)

		r.Post("/add_uid", h.integrationAddUID)
		r.Post("/add_uid_free", h.integrationAddUIDFree)
		r.Post("/remove_uid", h.integrationRemoveUID)
		r.Post("/renew_uid", h.integrationRenewUID)
		r.Get("/list_uids", h.integrationListUIDs)
	})

	router.NotFound(notFound)
	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
