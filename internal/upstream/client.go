// Package upstream provides a minimal client for the CoinMarketCap Pro API.
package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultBaseURL is the CoinMarketCap Pro API host.
const DefaultBaseURL = "https://pro-api.coinmarketcap.com"

// APIKeyHeader carries the credential on every request.
const APIKeyHeader = "X-CMC_PRO_API_KEY"

// Client issues GET requests against the CoinMarketCap API. It is safe for
// concurrent use.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// New returns a client for baseURL. If httpClient is nil, one with the given
// timeout is created; a zero timeout leaves requests unbounded.
func New(baseURL string, httpClient *http.Client, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{BaseURL: strings.TrimRight(baseURL, "/"), HTTP: httpClient}
}

// StatusError is returned when the API answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream status %d: %s", e.StatusCode, e.StatusText())
}

// StatusText is the reason phrase of the response, e.g. "Unauthorized".
func (e *StatusError) StatusText() string {
	if text := strings.TrimSpace(strings.TrimPrefix(e.Status, fmt.Sprint(e.StatusCode))); text != "" {
		return text
	}
	return http.StatusText(e.StatusCode)
}

// Get performs one GET of path?rawQuery with the credential header and
// returns the response body, which must be valid JSON. The body is returned
// byte-for-byte.
func (c *Client) Get(ctx context.Context, path, rawQuery, apiKey string) (json.RawMessage, error) {
	reqURL := c.BaseURL + path
	if rawQuery != "" {
		reqURL += "?" + rawQuery
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(APIKeyHeader, apiKey)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("invalid JSON in response body")
	}
	return json.RawMessage(body), nil
}
