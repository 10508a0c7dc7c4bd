// Package kalshi provides the Kalshi REST fetch layer, the ticker grammar
// decoder, and the venue adapter that translates Kalshi market records into
// canonical contracts.
package kalshi

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

// Client is the REST client for the public Kalshi market listing endpoint.
type Client struct {
	baseURL      string
	seriesTicker string
	httpClient   *http.Client
	limiter      *rate.Limiter
	pageLimit    int
	maxPages     int
}

// ClientConfig configures the Kalshi client.
type ClientConfig struct {
	BaseURL      string // API root, e.g. "https://api.elections.kalshi.com/trade-api/v2"
	SeriesTicker string // series to list, e.g. "KXNFLSPREAD"
	PageLimit    int
	MaxPages     int
	RateRPS      float64
	Timeout      time.Duration
}

// NewClient creates a new Kalshi REST client.
func NewClient(cfg ClientConfig) *Client {
	if cfg.PageLimit <= 0 {
		cfg.PageLimit = 200
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
		baseURL:      cfg.BaseURL,
		seriesTicker: cfg.SeriesTicker,
		httpClient:   &http.Client{Timeout: cfg.Timeout},
		limiter:      rate.NewLimiter(rate.Limit(cfg.RateRPS), 1),
		pageLimit:    cfg.PageLimit,
		maxPages:     cfg.MaxPages,
	}
}

// ListMarkets returns the open markets of the configured series, following
// the cursor until exhaustion or the page cap.
func (c *Client) ListMarkets(ctx context.Context) ([]Market, error) {
	var all []Market
	cursor := ""

	for page := 0; page < c.maxPages; page++ {
		params := url.Values{}
		params.Set("limit", strconv.Itoa(c.pageLimit))
		params.Set("status", "open")
		if c.seriesTicker != "" {
			params.Set("series_ticker", c.seriesTicker)
		}
		if cursor != "" {
			params.Set("cursor", cursor)
		}

		body, err := c.doGet(ctx, "/markets?"+params.Encode())
		if err != nil {
			return nil, fmt.Errorf("kalshi: list markets: %w", err)
		}

		var resp struct {
			Markets []Market `json:"markets"`
			Cursor  string   `json:"cursor"`
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			return nil, fmt.Errorf("kalshi: decode markets: %w", err)
		}

		all = append(all, resp.Markets...)
		cursor = resp.Cursor
		if cursor == "" || len(resp.Markets) == 0 {
			break
		}
	}

	return all, nil
}

// doGet sends an unauthenticated GET request to the Kalshi API, honoring the
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

	if err := checkStatus(resp.StatusCode, body); err != nil {
		return nil, err
	}

	return body, nil
}

// checkStatus maps non-2xx HTTP status codes to descriptive errors.
func checkStatus(statusCode int, body []byte) error {
	if statusCode >= 200 && statusCode < 300 {
		return nil
	}

	var apiErr ErrorResponse
	_ = json.Unmarshal(body, &apiErr)

	switch statusCode {
	case http.StatusNotFound:
		return fmt.Errorf("kalshi: not found: %s (%s)", apiErr.Message, apiErr.Code)
	case http.StatusTooManyRequests:
		return fmt.Errorf("kalshi: rate limited: %s (%s)", apiErr.Message, apiErr.Code)
	case http.StatusBadRequest:
		return fmt.Errorf("kalshi: bad request: %s (%s)", apiErr.Message, apiErr.Code)
	default:
		return fmt.Errorf("kalshi: HTTP %d: %s (%s)", statusCode, apiErr.Message, apiErr.Code)
	}
}
