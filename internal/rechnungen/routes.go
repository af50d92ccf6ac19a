package rechnungen

import "github.com/go-chi/chi/v5"

// RegisterRoutes mounts the Rechnungen CRUD endpoints under /api/rechnungen.
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/api/rechnungen", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}
