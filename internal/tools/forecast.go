package tools

import (
	"context"
	"strings"
	"time"

	"github.com/ritwikdas/stormy/internal/agenterr"
	"github.com/ritwikdas/stormy/internal/weatherapi"
)

// forecastDays caps the simplified forecast at five days.
const forecastDays = 5

// ForecastTool fetches a 5-day forecast for a city.
type ForecastTool struct {
	client *weatherapi.Client
}

var _ Tool = (*ForecastTool)(nil)

// NewForecastTool creates the get_forecast tool.
func NewForecastTool(client *weatherapi.Client) *ForecastTool {
	return &ForecastTool{client: client}
}

func (t *ForecastTool) Name() string { return "get_forecast" }

func (t *ForecastTool) Description() string {
	return "Fetches 5-day forecast for a city. Usage: get_forecast: [city name]"
}

// Execute fetches the forecast for the city named in args, reduced to one
// entry per day.
func (t *ForecastTool) Execute(args string) (map[string]any, error) {
	city := strings.TrimSpace(args)
	if city == "" {
		return nil, agenterr.New(agenterr.KindToolExecution, "city name is required")
	}

	data, err := t.client.Forecast(context.Background(), city)
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"city":     data.City.Name,
		"country":  data.City.Country,
		"forecast": reduceForecast(data.List),
	}, nil
}

// reduceForecast keeps the first 3-hourly slot of each calendar day, at
// most forecastDays entries.
func reduceForecast(entries []weatherapi.ForecastEntry) []map[string]any {
	daily := make([]map[string]any, 0, forecastDays)
	seen := make(map[string]bool)

	for _, item := range entries {
		if len(item.Weather) == 0 {
			continue
		}

		// Forecast slots arrive as UTC timestamps; bucket days in UTC so
		// the reduction does not depend on the host timezone.
		ts := time.Unix(item.Dt, 0).UTC()
		date := ts.Format("2006-01-02")
		if seen[date] {
			continue
		}
		seen[date] = true

		daily = append(daily, map[string]any{
			"date":              date,
			"time":              ts.Format("15:04"),
			"temperature":       item.Main.Temp,
			"feels_like":        item.Main.FeelsLike,
			"humidity":          item.Main.Humidity,
			"weather_condition": item.Weather[0].Main,
			"description":       item.Weather[0].Description,
		})

		if len(daily) >= forecastDays {
			break
		}
	}

	return daily
}
