// Package config reads service settings from the environment.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	HTTPAddr string

	SupplierBaseURL    string
	SupplierTimeout    time.Duration
	SupplierRPS        float64
	SupplierBurst      int
	ResolveConcurrency int
	OrderRemarkTag     string
	CatalogPath        string

	RateRPS   float64
	RateBurst int

	RedisURL       string
	OutcomeChannel string

	LogLevel string
}

func Load() Config {
	addr := getenv("HTTP_ADDR", ":8080")
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}
	return Config{
		HTTPAddr:           addr,
		SupplierBaseURL:    getenv("CJ_BASE_URL", "https://developers.cjdropshipping.com/api2.0/v1"),
		SupplierTimeout:    getduration("SUPPLIER_TIMEOUT", 30*time.Second),
		SupplierRPS:        getfloat("SUPPLIER_RPS", 0),
		SupplierBurst:      getint("SUPPLIER_BURST", 1),
		ResolveConcurrency: getint("RESOLVE_CONCURRENCY", 4),
		OrderRemarkTag:     getenv("ORDER_REMARK_TAG", "SkillzStorm"),
		CatalogPath:        os.Getenv("CATALOG_PATH"),
		RateRPS:            getfloat("RATE_RPS", 0),
		RateBurst:          getint("RATE_BURST", 10),
		RedisURL:           os.Getenv("REDIS_URL"),
		OutcomeChannel:     getenv("OUTCOME_CHANNEL", "fulfillment.outcomes"),
		LogLevel:           getenv("LOG_LEVEL", "info"),
	}
}

// Secrets are read on every request so rotating them needs no restart.
type Secrets struct {
	// SharedSecret guards the inbound endpoint (X-Fulfill-Secret).
	SharedSecret string
	// SupplierAPIKey may be empty; the flow then falls back to manual fulfillment.
	SupplierAPIKey string
}

func LoadSecrets() Secrets {
	return Secrets{
		SharedSecret:   os.Getenv("ORDERS_SECRET"),
		SupplierAPIKey: os.Getenv("CJ_API_KEY"),
	}
}

func getenv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func getint(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func getfloat(k string, def float64) float64 {
	if v := os.Getenv(k); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 {
			return f
		}
	}
	return def
}

func getduration(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return def
}
