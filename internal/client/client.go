// Package client calls the intake handler over HTTP on behalf of the form
// clients.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Vero970/ProjFit/internal/config"

	"go.uber.org/zap"
)

// Result mirrors the intake record returned by the handler.
type Result struct {
	Alimento        string  `json:"alimento"`
	QuantidadeG     float64 `json:"quantidade_g"`
	CaloriasPor100g float64 `json:"calorias_por_100g"`
	CaloriasTotais  float64 `json:"calorias_totais"`
	Timestamp       string  `json:"timestamp"`
}

// APIError is a non-200 answer from the handler. Body is kept verbatim.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return e.Body
}

// Client is a thin HTTP client for the intake function URL. It never retries.
type Client struct {
	functionURL string
	httpClient  *http.Client
	logger      *zap.Logger
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a client for the configured function URL.
func New(cfg *config.ClientConfig, logger *zap.Logger, opts ...Option) *Client {
	c := &Client{
		functionURL: cfg.FunctionURL,
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		logger:      logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Lookup asks the handler to compute and record an intake.
func (c *Client) Lookup(ctx context.Context, food string, grams float64) (*Result, error) {
	u, err := url.Parse(c.functionURL)
	if err != nil {
		return nil, fmt.Errorf("invalid function URL: %w", err)
	}
	q := u.Query()
	q.Set("alimento", food)
	q.Set("quantidade", strconv.FormatFloat(grams, 'f', -1, 64))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call intake function: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	c.logger.Debug("Intake function called",
		zap.String("food", food),
		zap.Float64("grams", grams),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var result Result
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode intake record: %w", err)
	}
	return &result, nil
}
