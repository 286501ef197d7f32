package api

import (
	"net/http"
	"os"
	"time"

	"dropship/internal/buildinfo"
)

// DebugJSON reports build info and the non-secret configuration. Secrets
// are only reported as present or absent.
func (s *Server) DebugJSON(w http.ResponseWriter, r *http.Request) {
	info := map[string]any{
		"build": buildinfo.Info(),
		"time":  time.Now().UTC().Format(time.RFC3339),
		"config": map[string]any{
			"PORT":                os.Getenv("PORT"),
			"CJ_BASE_URL":         os.Getenv("CJ_BASE_URL"),
			"SUPPLIER_RPS":        os.Getenv("SUPPLIER_RPS"),
			"RESOLVE_CONCURRENCY": os.Getenv("RESOLVE_CONCURRENCY"),
			"RATE_RPS":            os.Getenv("RATE_RPS"),
			"RATE_BURST":          os.Getenv("RATE_BURST"),
			"CATALOG_SKUS":        s.Catalog.Len(),
			"HAS_ORDERS_SECRET":   os.Getenv("ORDERS_SECRET") != "",
			"HAS_CJ_API_KEY":      os.Getenv("CJ_API_KEY") != "",
			"HAS_REDIS_URL":       os.Getenv("REDIS_URL") != "",
		},
	}
	writeJSON(w, 200, info)
}
