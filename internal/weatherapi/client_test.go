package weatherapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ritwikdas/stormy/internal/agenterr"
)

const currentPayload = `{
	"name": "London",
	"sys": {"country": "GB"},
	"main": {"temp": 18.5, "feels_like": 17.9, "humidity": 75},
	"wind": {"speed": 5.2},
	"weather": [{"main": "Clouds", "description": "scattered clouds"}]
}`

func newTestClient(baseURL string, retries int) *Client {
	return NewClient(Config{
		BaseURL:    baseURL,
		APIKey:     "test-key",
		Units:      "metric",
		Timeout:    2 * time.Second,
		MaxRetries: retries,
		RetryDelay: time.Millisecond,
	})
}

func TestCurrent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/weather" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("q"); got != "London" {
			t.Errorf("expected q=London, got %q", got)
		}
		if got := r.URL.Query().Get("appid"); got != "test-key" {
			t.Errorf("expected api key, got %q", got)
		}
		w.Write([]byte(currentPayload))
	}))
	defer srv.Close()

	resp, err := newTestClient(srv.URL, 3).Current(context.Background(), "London")
	if err != nil {
		t.Fatalf("Current() error: %v", err)
	}

	if resp.Name != "London" || resp.Sys.Country != "GB" {
		t.Errorf("unexpected city %q/%q", resp.Name, resp.Sys.Country)
	}
	if resp.Main.Temp != 18.5 {
		t.Errorf("expected temp 18.5, got %v", resp.Main.Temp)
	}
	if len(resp.Weather) != 1 || resp.Weather[0].Main != "Clouds" {
		t.Errorf("unexpected weather conditions %+v", resp.Weather)
	}
}

func TestGet_RetriesOn5xx(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(currentPayload))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, 3).Current(context.Background(), "London")
	if err != nil {
		t.Fatalf("expected success after retries, got %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 attempts, got %d", calls)
	}
}

func TestGet_NoRetryOn4xx(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"cod": "404", "message": "city not found"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, 3).Current(context.Background(), "Atlantis")
	if err == nil {
		t.Fatal("expected error for unknown city")
	}
	if calls != 1 {
		t.Errorf("expected no retry on 404, got %d attempts", calls)
	}
	if !agenterr.IsKind(err, agenterr.KindWeatherAPI) {
		t.Errorf("expected KindWeatherAPI, got %v", agenterr.KindOf(err))
	}
}

func TestGet_ExhaustedRetries(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, 2).Current(context.Background(), "London")
	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if calls != 2 {
		t.Errorf("expected 2 attempts, got %d", calls)
	}
	if !agenterr.IsKind(err, agenterr.KindWeatherAPI) {
		t.Errorf("expected KindWeatherAPI, got %v", agenterr.KindOf(err))
	}
}

func TestGet_MissingAPIKey(t *testing.T) {
	c := NewClient(Config{BaseURL: "http://example.invalid", Units: "metric"})

	_, err := c.Current(context.Background(), "London")
	if !agenterr.IsKind(err, agenterr.KindConfiguration) {
		t.Fatalf("expected KindConfiguration, got %v", err)
	}
}

func TestForecast(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/forecast" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Write([]byte(`{
			"city": {"name": "London", "country": "GB"},
			"list": [
				{"dt": 1746450000, "main": {"temp": 18.5, "feels_like": 18.0, "humidity": 70},
				 "weather": [{"main": "Clouds", "description": "scattered clouds"}]}
			]
		}`))
	}))
	defer srv.Close()

	resp, err := newTestClient(srv.URL, 1).Forecast(context.Background(), "London")
	if err != nil {
		t.Fatalf("Forecast() error: %v", err)
	}
	if resp.City.Name != "London" {
		t.Errorf("unexpected city %q", resp.City.Name)
	}
	if len(resp.List) != 1 || resp.List[0].Main.Temp != 18.5 {
		t.Errorf("unexpected forecast list %+v", resp.List)
	}
}
