// Package cj implements the supplier adapter for the CJ Dropshipping API.
package cj

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"dropship/internal/integrations"
	"dropship/internal/metrics"
)

const (
	DefaultBaseURL = "https://developers.cjdropshipping.com/api2.0/v1"
	// CodeSuccess is the envelope code CJ uses for a successful call.
	CodeSuccess = 200

	tokenHeader     = "CJ-Access-Token"
	maxResponseSize = 4 << 20
)

var _ integrations.SupplierAdapter = (*Client)(nil)

// Config holds CJ client settings. Zero values get defaults.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	Timeout    time.Duration
	// Limiter paces outbound calls when set. Waiting honors the request context.
	Limiter   *rate.Limiter
	RemarkTag string
	UserAgent string
}

type Client struct {
	base      string
	http      *http.Client
	limiter   *rate.Limiter
	remarkTag string
	userAgent string
}

func New(cfg Config) *Client {
	base := strings.TrimSuffix(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	hc := cfg.HTTPClient
	if hc == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		hc = &http.Client{Timeout: timeout}
	}
	tag := cfg.RemarkTag
	if tag == "" {
		tag = "SkillzStorm"
	}
	return &Client{base: base, http: hc, limiter: cfg.Limiter, remarkTag: tag, userAgent: cfg.UserAgent}
}

func (c *Client) Name() string { return "cj" }

// envelope is the wrapper CJ puts around every response body.
type envelope struct {
	Code      int             `json:"code"`
	Result    bool            `json:"result"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
	RequestID string          `json:"requestId,omitempty"`
}

// do sends one request and decodes the envelope. It returns the raw body as
// well so callers can surface it verbatim.
func (c *Client) do(ctx context.Context, op, method, path, token string, body any) (*envelope, []byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			metrics.SupplierCalls.WithLabelValues(op, "throttled").Inc()
			return nil, nil, fmt.Errorf("cj %s: rate limit wait: %w", op, err)
		}
	}
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, nil, fmt.Errorf("cj %s: encode request: %w", op, err)
		}
		rdr = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, rdr)
	if err != nil {
		return nil, nil, fmt.Errorf("cj %s: build request: %w", op, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(tokenHeader, token)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.SupplierLatency.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.SupplierCalls.WithLabelValues(op, "transport_error").Inc()
		return nil, nil, fmt.Errorf("cj %s: %w", op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		metrics.SupplierCalls.WithLabelValues(op, "transport_error").Inc()
		return nil, nil, fmt.Errorf("cj %s: read response: %w", op, err)
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		metrics.SupplierCalls.WithLabelValues(op, "bad_response").Inc()
		return nil, raw, fmt.Errorf("cj %s: decode response (http %d): %w", op, resp.StatusCode, err)
	}
	result := "ok"
	if env.Code != CodeSuccess {
		result = "rejected"
	}
	metrics.SupplierCalls.WithLabelValues(op, result).Inc()
	return &env, raw, nil
}
