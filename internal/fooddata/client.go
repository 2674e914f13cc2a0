// Package fooddata is the client for the USDA FoodData Central search API,
// the upstream food database the intake handler depends on.
package fooddata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Vero970/ProjFit/internal/config"
	appErrors "github.com/Vero970/ProjFit/pkg/errors"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// Searcher resolves a free-text food name to candidate foods.
type Searcher interface {
	Search(ctx context.Context, query string) (*SearchResult, error)
}

// SearchResult is the subset of the /foods/search response the handler reads.
type SearchResult struct {
	TotalHits int    `json:"totalHits"`
	Foods     []Food `json:"foods"`
}

// Food is one search hit.
type Food struct {
	FDCID         int        `json:"fdcId"`
	Description   string     `json:"description"`
	DataType      string     `json:"dataType,omitempty"`
	FoodNutrients []Nutrient `json:"foodNutrients"`
}

// Nutrient is one entry of a food's nutrient list. Values are per 100g;
// Value is nil when the upstream entry has a null or absent value.
type Nutrient struct {
	NutrientID   int      `json:"nutrientId,omitempty"`
	NutrientName string   `json:"nutrientName"`
	UnitName     string   `json:"unitName,omitempty"`
	Value        *float64 `json:"value"`
}

// Client calls FoodData Central over HTTP.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	logger     *zap.Logger
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient initializes the client with its credential and HTTP client
func NewClient(cfg config.USDA, logger *zap.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	if cfg.EnableCircuitBreaker {
		c.breaker = newBreaker("usda-search", logger)
	}
	return c
}

func newBreaker(name string, logger *zap.Logger) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 5,
		Interval:    30 * time.Second,
		Timeout:     60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 5 {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= 0.8
		},
		// A caller hanging up says nothing about the upstream's health.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})
}

// Search queries /foods/search by name. Every failure, including an open
// circuit, is reported as KindUpstreamUnavailable; an empty hit list is
// not an error here.
func (c *Client) Search(ctx context.Context, query string) (*SearchResult, error) {
	if c.breaker == nil {
		return c.search(ctx, query)
	}

	out, err := c.breaker.Execute(func() (interface{}, error) {
		return c.search(ctx, query)
	})
	if err != nil {
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			return nil, appErrors.NewUpstreamUnavailable("usda search rejected by circuit breaker", err)
		}
		return nil, err
	}
	return out.(*SearchResult), nil
}

func (c *Client) search(ctx context.Context, query string) (*SearchResult, error) {
	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("query", query)
	u := c.baseURL + "/foods/search?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, appErrors.NewUpstreamUnavailable("failed to create usda search request", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, appErrors.NewUpstreamUnavailable("failed to call usda search", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, appErrors.NewUpstreamUnavailable("failed to read usda search response", err)
	}

	c.logger.Debug("USDA search completed",
		zap.String("query", query),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode != http.StatusOK {
		return nil, appErrors.NewUpstreamUnavailable(
			"usda search failed",
			fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))),
		)
	}

	var result SearchResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, appErrors.NewUpstreamUnavailable("failed to parse usda search JSON", err)
	}
	return &result, nil
}
