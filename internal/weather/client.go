// Package weather is a small client for the OpenWeatherMap current weather endpoint.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	DefaultBaseURL = "https://api.openweathermap.org/data/2.5/weather"

	fallbackErrorMessage = "City not found or an error occurred."
)

// APIError is a non-200 answer from the upstream API.
type APIError struct {
	StatusCode int    `json:"-"`
	Cod        any    `json:"cod"` // int or string depending on the endpoint
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("weather API error (HTTP %d): %s", e.StatusCode, e.Message)
}

// Client wraps an HTTP client configured for OpenWeatherMap.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a Client with an explicit timeout. An empty baseURL selects DefaultBaseURL.
func NewClient(apiKey, baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// FetchByCity requests current weather for a city name.
func (c *Client) FetchByCity(ctx context.Context, city string) (*Response, error) {
	q := url.Values{}
	q.Set("q", city)
	return c.fetch(ctx, q)
}

// FetchByCoords requests current weather for a latitude/longitude pair.
func (c *Client) FetchByCoords(ctx context.Context, lat, lon float64) (*Response, error) {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	return c.fetch(ctx, q)
}

func (c *Client) fetch(ctx context.Context, q url.Values) (*Response, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}

	q.Set("appid", c.apiKey)
	q.Set("units", "metric")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if err := json.NewDecoder(resp.Body).Decode(apiErr); err != nil || apiErr.Message == "" {
			apiErr.Message = fallbackErrorMessage
		}
		return nil, apiErr
	}

	var out Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return &out, nil
}
