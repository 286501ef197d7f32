package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"dropship/internal/metrics"
)

// Routes builds the service router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, s.AccessLog, middleware.Recoverer)

	r.Get("/healthz", s.HealthHandler)
	r.Get("/readyz", s.ReadyHandler)
	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))
	r.Get("/debug/config", s.DebugJSON)

	r.Group(func(r chi.Router) {
		r.Use(s.RateLimit)
		// Any method reaches the handler so non-POST gets the JSON 405 body.
		r.HandleFunc("/api/fulfill", s.FulfillHandler)
		r.HandleFunc("/api/cj-fulfill", s.FulfillHandler)

		r.Get("/v1/catalog", s.CatalogHandler)
		r.Get("/v1/catalog/{sku}", s.CatalogBySKUHandler)
	})
	return r
}
