// Package omdb is a minimal client for the OMDb lookup-by-identifier API.
package omdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/perhult/reelsync/internal/apperr"
)

// DefaultBaseURL is the production OMDb endpoint.
const DefaultBaseURL = "https://www.omdbapi.com/"

const requestTimeout = 10 * time.Second

// Client performs OMDb lookups. Requests are paced through a rate limiter
// so batch syncs respect the provider's limits; there is no retry logic, a
// failed request is reported to the caller immediately.
type Client struct {
	baseURL string
	apiKey  string
	hc      *http.Client
	limiter *rate.Limiter
}

// NewClient creates a client keyed with apiKey. delay is the minimum spacing
// between consecutive requests; zero disables pacing.
func NewClient(apiKey string, delay time.Duration) *Client {
	limit := rate.Inf
	if delay > 0 {
		limit = rate.Every(delay)
	}
	return &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		hc:      &http.Client{Timeout: requestTimeout},
		limiter: rate.NewLimiter(limit, 1),
	}
}

// SetBaseURL overrides the endpoint. Used by tests.
func (c *Client) SetBaseURL(u string) {
	c.baseURL = u
}

// HasKey reports whether an API key is configured.
func (c *Client) HasKey() bool {
	return c.apiKey != ""
}

// Lookup fetches the record for an IMDb identifier. Transport failures and
// non-2xx responses return an error; a 2xx response is decoded as-is, so the
// caller must still check Record.Failed for provider-level failure.
func (c *Client) Lookup(ctx context.Context, id string) (*Record, error) {
	if c.apiKey == "" {
		return nil, apperr.ErrMissingAPIKey
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("omdb: wait: %w", err)
	}

	q := url.Values{}
	q.Set("i", id)
	q.Set("apikey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("omdb: build request: %w", err)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("omdb: fetch %s: %w", id, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("omdb: fetch %s: unexpected status %d", id, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("omdb: read response: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(body, &rec); err != nil {
		return nil, fmt.Errorf("omdb: decode response: %w", err)
	}
	return &rec, nil
}
