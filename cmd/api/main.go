package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/time/rate"

	"dropship/internal/api"
	"dropship/internal/buildinfo"
	"dropship/internal/catalog"
	"dropship/internal/config"
	"dropship/internal/events"
	"dropship/internal/fulfill"
	"dropship/internal/integrations/cj"
	"dropship/internal/logging"
	"dropship/internal/metrics"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logging.New(cfg.LogLevel)
	slog.SetDefault(log)
	metrics.RegisterDefault()

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		log.Error("load catalog", "path", cfg.CatalogPath, "err", err)
		os.Exit(1)
	}

	var limiter *rate.Limiter
	if cfg.SupplierRPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.SupplierRPS), cfg.SupplierBurst)
	}
	supplier := cj.New(cj.Config{
		BaseURL:   cfg.SupplierBaseURL,
		Timeout:   cfg.SupplierTimeout,
		Limiter:   limiter,
		RemarkTag: cfg.OrderRemarkTag,
		UserAgent: buildinfo.UserAgent(),
	})

	svc := fulfill.NewService(cat, supplier, log)
	svc.Concurrency = cfg.ResolveConcurrency

	srvDeps := api.NewServer(cfg, svc, log)
	if cfg.RedisURL != "" {
		pub, err := events.NewRedisPublisher(cfg.RedisURL, cfg.OutcomeChannel)
		if err != nil {
			log.Error("redis publisher disabled", "err", err)
		} else {
			defer func() { _ = pub.Close() }()
			svc.Events = pub
			srvDeps.Ready = pub
			log.Info("publishing outcomes", "channel", pub.Channel())
		}
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srvDeps.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("API listening", "addr", cfg.HTTPAddr, "catalogSkus", cat.Len(), "version", buildinfo.Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", "err", err)
	}
}
