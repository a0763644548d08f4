package tools

import (
	"context"
	"strings"
	"time"

	"github.com/ritwikdas/stormy/internal/agenterr"
	"github.com/ritwikdas/stormy/internal/weatherapi"
)

// WeatherTool fetches current weather data for a city.
type WeatherTool struct {
	client *weatherapi.Client
	now    func() time.Time
}

var _ Tool = (*WeatherTool)(nil)

// NewWeatherTool creates the get_weather tool.
func NewWeatherTool(client *weatherapi.Client) *WeatherTool {
	return &WeatherTool{client: client, now: time.Now}
}

func (t *WeatherTool) Name() string { return "get_weather" }

func (t *WeatherTool) Description() string {
	return "Fetches current weather for a city. Usage: get_weather: [city name]"
}

// Execute fetches current weather for the city named in args.
func (t *WeatherTool) Execute(args string) (map[string]any, error) {
	city := strings.TrimSpace(args)
	if city == "" {
		return nil, agenterr.New(agenterr.KindToolExecution, "city name is required")
	}

	data, err := t.client.Current(context.Background(), city)
	if err != nil {
		return nil, err
	}
	if len(data.Weather) == 0 {
		return nil, agenterr.New(agenterr.KindWeatherAPI, "unexpected API response format: no weather conditions")
	}

	return map[string]any{
		"city":              data.Name,
		"country":           data.Sys.Country,
		"temperature":       data.Main.Temp,
		"feels_like":        data.Main.FeelsLike,
		"humidity":          data.Main.Humidity,
		"wind_speed":        data.Wind.Speed,
		"weather_condition": data.Weather[0].Main,
		"description":       data.Weather[0].Description,
		"timestamp":         t.now().Format("2006-01-02 15:04:05"),
	}, nil
}
