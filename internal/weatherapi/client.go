// Package weatherapi is a thin OpenWeatherMap client with bounded retries.
package weatherapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/ritwikdas/stormy/internal/agenterr"
	"go.uber.org/zap"
)

// Client calls the OpenWeatherMap REST API.
type Client struct {
	baseURL    string
	apiKey     string
	units      string
	maxRetries int
	retryDelay time.Duration
	httpClient *http.Client
	logger     *zap.Logger
}

// Config holds client settings.
type Config struct {
	BaseURL    string
	APIKey     string
	Units      string
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration
	Logger     *zap.Logger
}

// NewClient creates a weather API client.
func NewClient(cfg Config) *Client {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.MaxRetries < 1 {
		cfg.MaxRetries = 1
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		units:      cfg.Units,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     cfg.Logger,
	}
}

// CurrentResponse is the subset of the /weather payload we consume.
type CurrentResponse struct {
	Name string `json:"name"`
	Sys  struct {
		Country string `json:"country"`
	} `json:"sys"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Weather []WeatherCondition `json:"weather"`
}

// WeatherCondition is one entry of the "weather" array.
type WeatherCondition struct {
	Main        string `json:"main"`
	Description string `json:"description"`
}

// ForecastResponse is the subset of the /forecast payload we consume.
type ForecastResponse struct {
	City struct {
		Name    string `json:"name"`
		Country string `json:"country"`
	} `json:"city"`
	List []ForecastEntry `json:"list"`
}

// ForecastEntry is one 3-hourly forecast slot.
type ForecastEntry struct {
	Dt   int64 `json:"dt"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Weather []WeatherCondition `json:"weather"`
}

// Current fetches current weather for a city.
func (c *Client) Current(ctx context.Context, city string) (*CurrentResponse, error) {
	var out CurrentResponse
	if err := c.get(ctx, "weather", city, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Forecast fetches the 5-day/3-hour forecast for a city.
func (c *Client) Forecast(ctx context.Context, city string) (*ForecastResponse, error) {
	var out ForecastResponse
	if err := c.get(ctx, "forecast", city, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// get performs a GET against one endpoint with retry on transport errors
// and 5xx responses. 4xx responses fail immediately; retrying a bad city
// name cannot help.
func (c *Client) get(ctx context.Context, endpoint, city string, out any) error {
	if c.apiKey == "" {
		return agenterr.New(agenterr.KindConfiguration, "OpenWeatherMap API key is required")
	}

	q := url.Values{}
	q.Set("q", city)
	q.Set("appid", c.apiKey)
	q.Set("units", c.units)
	reqURL := fmt.Sprintf("%s/%s?%s", c.baseURL, endpoint, q.Encode())

	var lastErr error
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		body, retryable, err := c.doOnce(ctx, reqURL)
		if err == nil {
			if err := json.Unmarshal(body, out); err != nil {
				return agenterr.Wrap(agenterr.KindWeatherAPI, "unexpected API response format", err)
			}
			return nil
		}

		lastErr = err
		if !retryable {
			return err
		}

		c.logger.Warn("weather request failed",
			zap.String("endpoint", endpoint),
			zap.Int("attempt", attempt),
			zap.Int("max_retries", c.maxRetries),
			zap.Error(err))

		if attempt < c.maxRetries {
			select {
			case <-ctx.Done():
				return agenterr.Wrap(agenterr.KindWeatherAPI, "request cancelled", ctx.Err())
			case <-time.After(c.retryDelay):
			}
		}
	}

	return agenterr.Wrap(agenterr.KindWeatherAPI,
		fmt.Sprintf("request failed after %d attempts", c.maxRetries), lastErr)
}

// doOnce performs a single request. The bool reports whether the failure is
// worth retrying.
func (c *Client) doOnce(ctx context.Context, reqURL string) ([]byte, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, false, agenterr.Wrap(agenterr.KindWeatherAPI, "build request", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, fmt.Errorf("read response: %w", err)
	}

	switch {
	case resp.StatusCode >= 500:
		return nil, true, fmt.Errorf("weather API returned status %d", resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return nil, false, agenterr.Newf(agenterr.KindWeatherAPI,
			"weather API returned status %d: %s", resp.StatusCode, apiMessage(body))
	}

	return body, false, nil
}

// apiMessage extracts OpenWeatherMap's error message, falling back to the
// raw body.
func apiMessage(body []byte) string {
	var e struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &e); err == nil && e.Message != "" {
		return e.Message
	}
	const max = 200
	if len(body) > max {
		body = body[:max]
	}
	return string(body)
}
