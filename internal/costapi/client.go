// Package costapi is the typed client of the remote cost-intelligence API.
package costapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// DefaultTimeout aborts requests that take longer than this.
const DefaultTimeout = 20 * time.Second

// APIKeyHeader carries the optional static API key.
const APIKeyHeader = "X-API-Key"

const maxErrorBody = 64 << 10

// Config configures the API client.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Observer receives one notification per finished API call.
type Observer interface {
	ObserveAPICall(operation, outcome string, elapsed time.Duration)
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient swaps the underlying transport, mainly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger attaches a logger for request diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithObserver records call outcomes, typically into Prometheus.
func WithObserver(obs Observer) Option {
	return func(c *Client) {
		c.observer = obs
	}
}

// Client calls the cost API. It performs no retries and keeps no cache.
type Client struct {
	baseURL  string
	apiKey   string
	timeout  time.Duration
	http     *http.Client
	logger   *slog.Logger
	observer Observer
}

// New constructs a Client.
func New(cfg Config, opts ...Option) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c := &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		apiKey:  strings.TrimSpace(cfg.APIKey),
		timeout: timeout,
		http:    &http.Client{},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Timeout exposes the per-request timeout.
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

func (c *Client) getJSON(ctx context.Context, operation, path string, dest any) error {
	return c.do(ctx, operation, http.MethodGet, path, nil, dest)
}

func (c *Client) postJSON(ctx context.Context, operation, path string, payload, dest any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("costapi: encode %s: %w", operation, err)
	}
	return c.do(ctx, operation, http.MethodPost, path, body, dest)
}

func (c *Client) do(ctx context.Context, operation, method, path string, body []byte, dest any) (err error) {
	start := time.Now()
	defer func() {
		if c.observer != nil {
			c.observer.ObserveAPICall(operation, outcomeOf(err), time.Since(start))
		}
	}()

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(reqCtx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("costapi: build %s request: %w", operation, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")
	if c.apiKey != "" {
		req.Header.Set(APIKeyHeader, c.apiKey)
	}
	if method != http.MethodGet {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return c.transportError(ctx, reqCtx, operation, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if readErr != nil {
			return c.transportError(ctx, reqCtx, operation, readErr)
		}
		c.logger.Warn("cost api non-success status",
			slog.String("operation", operation),
			slog.Int("status", resp.StatusCode))
		return &StatusError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		if reqCtx.Err() != nil {
			return c.transportError(ctx, reqCtx, operation, err)
		}
		return fmt.Errorf("costapi: decode %s: %w", operation, err)
	}
	c.logger.Debug("cost api call",
		slog.String("operation", operation),
		slog.Duration("elapsed", time.Since(start)))
	return nil
}

// transportError maps our own deadline to ErrSlowResponse and keeps other failures generic.
func (c *Client) transportError(parent, reqCtx context.Context, operation string, err error) error {
	if errors.Is(reqCtx.Err(), context.DeadlineExceeded) && parent.Err() == nil {
		c.logger.Warn("cost api timeout", slog.String("operation", operation), slog.Duration("timeout", c.timeout))
		return fmt.Errorf("costapi: %s: %w", operation, ErrSlowResponse)
	}
	return fmt.Errorf("costapi: %s: %w", operation, err)
}

func outcomeOf(err error) string {
	var statusErr *StatusError
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrSlowResponse):
		return "timeout"
	case errors.As(err, &statusErr):
		return "status"
	default:
		return "error"
	}
}
