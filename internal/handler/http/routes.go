package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Init builds the router. Routes under the second group require a token.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, withLogging, withGZip)

	router.Group(func(r chi.Router) {
		r.Post("/api/auth/register", h.register)
		r.Post("/api/auth/login", h.login)

		r.Post("/api/generator", h.generatePassword)
		r.Post("/api/generator/validate", h.validateOptions)
		r.Post("/api/generator/strength", h.passwordStrength)

		r.Get("/api/version", h.getServerVersion)
	})

	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Post("/api/auth/logout", h.logout)
		r.Get("/api/auth/me", h.me)
		r.Put("/api/auth/password", h.changePassword)

		r.Post("/api/vault", h.createItem)
		r.Get("/api/vault", h.listItems)
		r.Get("/api/vault/search", h.searchItems)
		r.Get("/api/vault/{id}", h.getItem)
		r.Patch("/api/vault/{id}", h.updateItem)
		r.Delete("/api/vault/{id}", h.deleteItem)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
