package calculator

import "github.com/go-chi/chi/v5"

// RegisterRoutes mounts the calculate endpoint onto the given router.
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Get("/api/calculate", h.Calculate)
}
