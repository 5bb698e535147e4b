// Package geocoding resolves coordinates into addresses through LocationIQ.
package geocoding

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

	"github.com/mrlokans/hirehub/internal/config"
)

const maxResponseSize = 1 << 20

var (
	ErrNoResponse      = errors.New("no response from location service")
	ErrInvalidResponse = errors.New("invalid response from location service")
)

// APIError is returned when LocationIQ answers with a non-2xx status.
type APIError struct {
	StatusCode int
	Message    string // Upstream "error" field, may be empty
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("location API error (status %d)", e.StatusCode)
	}
	return fmt.Sprintf("location API error (status %d): %s", e.StatusCode, e.Message)
}

// Client performs reverse geocoding lookups.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewClient creates a LocationIQ client.
func NewClient(cfg config.Geocoding) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
	}
}

// Reverse returns the raw LocationIQ document for the coordinates.
func (c *Client) Reverse(ctx context.Context, latitude, longitude string) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("lat", latitude)
	params.Set("lon", longitude)
	params.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/reverse.php?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// The api key is part of the URL, so the transport error is not wrapped
		return nil, ErrNoResponse
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, ErrNoResponse
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var upstream struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(body, &upstream)
		return nil, &APIError{StatusCode: resp.StatusCode, Message: upstream.Error}
	}

	if !json.Valid(body) {
		return nil, ErrInvalidResponse
	}
	return json.RawMessage(body), nil
}
