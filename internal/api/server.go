package api

import (
	"context"
	"log/slog"

	"golang.org/x/time/rate"

	"dropship/internal/catalog"
	"dropship/internal/config"
	"dropship/internal/fulfill"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	Fulfiller *fulfill.Service
	Catalog   *catalog.Catalog
	// Secrets is called on every fulfill request so rotated values apply immediately.
	Secrets func() config.Secrets
	// Ready, when set, is pinged by the readiness probe (the event broker).
	Ready pinger
	Log   *slog.Logger

	limiter *rate.Limiter
}

// NewServer wires a Server around a fulfillment service. Inbound rate
// limiting is enabled when cfg.RateRPS is positive.
func NewServer(cfg config.Config, svc *fulfill.Service, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	s := &Server{
		Fulfiller: svc,
		Catalog:   svc.Catalog,
		Secrets:   config.LoadSecrets,
		Log:       log,
	}
	if cfg.RateRPS > 0 {
		burst := cfg.RateBurst
		if burst < 1 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(cfg.RateRPS), burst)
	}
	return s
}
