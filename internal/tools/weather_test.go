package tools

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/ritwikdas/stormy/internal/weatherapi"
)

func newWeatherServer(t *testing.T, path, payload string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != path {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Write([]byte(payload))
	}))
}

func newToolClient(baseURL string) *weatherapi.Client {
	return weatherapi.NewClient(weatherapi.Config{
		BaseURL:    baseURL,
		APIKey:     "test-key",
		Units:      "metric",
		Timeout:    2 * time.Second,
		MaxRetries: 1,
	})
}

func TestWeatherTool_Execute(t *testing.T) {
	srv := newWeatherServer(t, "/weather", `{
		"name": "London",
		"sys": {"country": "GB"},
		"main": {"temp": 18.5, "feels_like": 17.9, "humidity": 75},
		"wind": {"speed": 5.2},
		"weather": [{"main": "Clouds", "description": "scattered clouds"}]
	}`)
	defer srv.Close()

	tool := NewWeatherTool(newToolClient(srv.URL))
	tool.now = func() time.Time { return time.Date(2025, 5, 5, 13, 45, 22, 0, time.UTC) }

	result, err := tool.Execute("London")
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	want := map[string]any{
		"city":              "London",
		"country":           "GB",
		"temperature":       18.5,
		"feels_like":        17.9,
		"humidity":          75,
		"wind_speed":        5.2,
		"weather_condition": "Clouds",
		"description":       "scattered clouds",
		"timestamp":         "2025-05-05 13:45:22",
	}
	for key, expected := range want {
		if got := result[key]; got != expected {
			t.Errorf("result[%q] = %v, want %v", key, got, expected)
		}
	}
}

func TestWeatherTool_EmptyCity(t *testing.T) {
	tool := NewWeatherTool(newToolClient("http://example.invalid"))

	if _, err := tool.Execute("   "); err == nil {
		t.Fatal("expected error for empty city")
	}
}

func TestForecastTool_Execute(t *testing.T) {
	// Two slots on the same day plus one on the next: the reduction must
	// keep the first slot of each day.
	day1 := time.Date(2025, 5, 5, 9, 0, 0, 0, time.UTC).Unix()
	day1later := time.Date(2025, 5, 5, 12, 0, 0, 0, time.UTC).Unix()
	day2 := time.Date(2025, 5, 6, 9, 0, 0, 0, time.UTC).Unix()

	srv := newWeatherServer(t, "/forecast", `{
		"city": {"name": "London", "country": "GB"},
		"list": [
			{"dt": `+itoa(day1)+`, "main": {"temp": 18.5, "feels_like": 18.0, "humidity": 70},
			 "weather": [{"main": "Clouds", "description": "scattered clouds"}]},
			{"dt": `+itoa(day1later)+`, "main": {"temp": 20.0, "feels_like": 19.5, "humidity": 60},
			 "weather": [{"main": "Clear", "description": "clear sky"}]},
			{"dt": `+itoa(day2)+`, "main": {"temp": 19.2, "feels_like": 19.0, "humidity": 65},
			 "weather": [{"main": "Clear", "description": "clear sky"}]}
		]
	}`)
	defer srv.Close()

	tool := NewForecastTool(newToolClient(srv.URL))

	result, err := tool.Execute("London")
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	if result["city"] != "London" || result["country"] != "GB" {
		t.Errorf("unexpected city fields: %v", result)
	}

	forecast, ok := result["forecast"].([]map[string]any)
	if !ok {
		t.Fatalf("forecast has unexpected type %T", result["forecast"])
	}
	if len(forecast) != 2 {
		t.Fatalf("expected 2 daily entries, got %d", len(forecast))
	}
	if forecast[0]["temperature"] != 18.5 {
		t.Errorf("expected first slot of day 1, got %v", forecast[0])
	}
	if forecast[1]["weather_condition"] != "Clear" {
		t.Errorf("unexpected day 2 condition: %v", forecast[1])
	}
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}
