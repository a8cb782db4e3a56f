package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer, h.withTraceID, h.withLogging, withGZip)

	// routes without authorization
	router.Get("/api/version/", h.getServerVersion)

	router.Route("/api/sync", func(r chi.Router) {
		r.Use(h.auth)

		r.With(h.checkHash).Post("/", h.fullSync)
		r.With(h.checkHash).Post("/push", h.push)
		r.Post("/pull", h.pull)

		r.Get("/conflicts", h.listConflicts)
		r.Post("/conflicts/{conflictID}/resolve", h.resolveConflict)

		r.Get("/status", h.status)
		r.Get("/history", h.history)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
