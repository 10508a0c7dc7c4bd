// Package polymarket provides the Polymarket Gamma REST fetch layer and the
// venue adapter that translates Gamma market records into canonical
// contracts.
package polymarket

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

// Client is the REST client for the Polymarket Gamma API market listing.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	pageLimit  int
	maxPages   int
}

// ClientConfig configures the Gamma client.
type ClientConfig struct {
	BaseURL   string  // Gamma API root, e.g. "https://gamma-api.polymarket.com"
	PageLimit int     // records per page
	MaxPages  int     // pagination cap per listing call
	RateRPS   float64 // request rate limit
	Timeout   time.Duration
}

// NewClient creates a new Gamma API client.
func NewClient(cfg ClientConfig) *Client {
	if cfg.PageLimit <= 0 {
		cfg.PageLimit = 100
	}
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = 20
	}
	if cfg.RateRPS <= 0 {
		cfg.RateRPS = 5
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(rate.Limit(cfg.RateRPS), 1),
		pageLimit:  cfg.PageLimit,
		maxPages:   cfg.MaxPages,
	}
}

// ListMarkets returns the open markets from the Gamma listing endpoint,
// paginating until a short page or the configured page cap.
func (c *Client) ListMarkets(ctx context.Context) ([]APIMarket, error) {
	var all []APIMarket

	for page := 0; page < c.maxPages; page++ {
		params := url.Values{}
		params.Set("limit", strconv.Itoa(c.pageLimit))
		params.Set("offset", strconv.Itoa(page*c.pageLimit))
		params.Set("closed", "false")

		body, err := c.doGet(ctx, "/markets?"+params.Encode())
		if err != nil {
			return nil, fmt.Errorf("polymarket/gamma: list markets: %w", err)
		}

		var markets []APIMarket
		if err := json.Unmarshal(body, &markets); err != nil {
			return nil, fmt.Errorf("polymarket/gamma: decode markets: %w", err)
		}

		all = append(all, markets...)
		if len(markets) < c.pageLimit {
			break
		}
	}

	return all, nil
}

// doGet sends an unauthenticated GET request to the Gamma API, honoring the
// client rate limit.
func (c *Client) doGet(ctx context.Context, path string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, truncate(body, 256))
	}

	return body, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
