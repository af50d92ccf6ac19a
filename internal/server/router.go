package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"rechner-api/internal/calculator"
	"rechner-api/internal/handlers"
	"rechner-api/internal/observability"
	"rechner-api/internal/rechnungen"
)

// NewRouter wires the calculate and Rechnungen endpoints over store.
func NewRouter(store rechnungen.Store) http.Handler {

	svc := rechnungen.NewService(store)

	r := chi.NewRouter()

	r.Use(observability.RequestIDMiddleware)
	r.Use(observability.TracingMiddleware)
	r.Use(observability.LoggingMiddleware)
	r.Use(middleware.Recoverer)

	r.Get("/health", handlers.Health)
	r.Get("/ready", handlers.Ready(store))

	r.Handle("/metrics", observability.PrometheusHandler())

	calculator.RegisterRoutes(r, calculator.NewHandler(svc))
	rechnungen.RegisterRoutes(r, rechnungen.NewHandler(svc))

	return r
}
