// Package client talks to the external RAiD registry over HTTP. The Registry
// interface is kept small so services can be tested against a mock and reads
// can be wrapped with a cache.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"conflux/internal/raid/models"
	"conflux/pkg/platform/sentinel"
)

//go:generate mockgen -source=client.go -destination=mocks/mocks.go -package=mocks Registry

// Registry is the boundary to the external RAiD registry. Retry and timeout
// policy live here, not in the core mapping/checking engine.
type Registry interface {
	Mint(ctx context.Context, req *models.CreateRequest) (*models.RaidDto, error)
	Update(ctx context.Context, prefix, suffix string, req *models.UpdateRequest) (*models.RaidDto, error)
	Get(ctx context.Context, prefix, suffix string) (*models.RaidDto, error)
}

// HTTPRegistry is the production Registry implementation.
type HTTPRegistry struct {
	baseURL string
	apiKey  string
	client  *http.Client
	logger  *slog.Logger
}

type Option func(*HTTPRegistry)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(r *HTTPRegistry) {
		r.client = c
	}
}

// WithLogger attaches a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *HTTPRegistry) {
		r.logger = logger
	}
}

// NewHTTP creates an HTTP registry client.
func NewHTTP(baseURL, apiKey string, opts ...Option) (*HTTPRegistry, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("registry base URL is required")
	}

	r := &HTTPRegistry{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 30 * time.Second},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

func (r *HTTPRegistry) Mint(ctx context.Context, req *models.CreateRequest) (*models.RaidDto, error) {
	return r.do(ctx, http.MethodPost, r.baseURL+"/raid/", req)
}

func (r *HTTPRegistry) Update(ctx context.Context, prefix, suffix string, req *models.UpdateRequest) (*models.RaidDto, error) {
	return r.do(ctx, http.MethodPut, fmt.Sprintf("%s/raid/%s/%s", r.baseURL, prefix, suffix), req)
}

func (r *HTTPRegistry) Get(ctx context.Context, prefix, suffix string) (*models.RaidDto, error) {
	return r.do(ctx, http.MethodGet, fmt.Sprintf("%s/raid/%s/%s", r.baseURL, prefix, suffix), nil)
}

func (r *HTTPRegistry) do(ctx context.Context, method, url string, payload any) (*models.RaidDto, error) {
	var body io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("serialize registry payload: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("build registry request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+r.apiKey)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("registry request: %w: %w", sentinel.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("registry %s %s: %w", method, url, sentinel.ErrNotFound)
	case resp.StatusCode >= 500:
		return nil, fmt.Errorf("registry %s %s: status %d: %w", method, url, resp.StatusCode, sentinel.ErrUnavailable)
	case resp.StatusCode >= 400:
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("registry %s %s: status %d: %s", method, url, resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	var dto models.RaidDto
	if err := json.NewDecoder(resp.Body).Decode(&dto); err != nil {
		return nil, fmt.Errorf("decode registry response: %w", err)
	}
	return &dto, nil
}
