// Package api implements the HTTP surface of the fulfillment bridge.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// Health
func (s *Server) HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, 200, map[string]string{"status": "ok"})
}

func (s *Server) ReadyHandler(w http.ResponseWriter, r *http.Request) {
	if s.Ready != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if err := s.Ready.Ping(ctx); err != nil {
			writeProblem(w, 503, "Not Ready", err.Error(), r.URL.Path)
			return
		}
	}
	writeJSON(w, 200, map[string]string{"status": "ready"})
}

type catalogItem struct {
	SKU         string `json:"sku"`
	Name        string `json:"name"`
	SearchQuery string `json:"searchQuery"`
}

// CatalogHandler lists every known SKU, sorted.
func (s *Server) CatalogHandler(w http.ResponseWriter, r *http.Request) {
	skus := s.Catalog.SKUs()
	items := make([]catalogItem, 0, len(skus))
	for _, sku := range skus {
		e, _ := s.Catalog.Lookup(sku)
		items = append(items, catalogItem{SKU: sku, Name: e.DisplayName, SearchQuery: e.SearchQuery})
	}
	writeJSON(w, 200, map[string]any{"items": items, "count": len(items)})
}

func (s *Server) CatalogBySKUHandler(w http.ResponseWriter, r *http.Request) {
	sku := chi.URLParam(r, "sku")
	e, ok := s.Catalog.Lookup(sku)
	if !ok {
		writeProblem(w, 404, "Not Found", "unknown sku: "+sku, r.URL.Path)
		return
	}
	writeJSON(w, 200, catalogItem{SKU: sku, Name: e.DisplayName, SearchQuery: e.SearchQuery})
}
