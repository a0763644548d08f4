// Package config handles stormy configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all stormy configuration.
type Config struct {
	LLM     LLMConfig     `mapstructure:"llm" yaml:"llm"`
	Weather WeatherConfig `mapstructure:"weather" yaml:"weather"`
	Agent   AgentConfig   `mapstructure:"agent" yaml:"agent"`
}

// LLMConfig configures the model provider.
type LLMConfig struct {
	BaseURL        string  `mapstructure:"base_url" yaml:"base_url"`
	Model          string  `mapstructure:"model" yaml:"model"`
	APIKey         string  `mapstructure:"api_key" yaml:"api_key,omitempty"`
	Temperature    float32 `mapstructure:"temperature" yaml:"temperature"`
	TimeoutSeconds int     `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
}

// WeatherConfig configures the OpenWeatherMap client.
type WeatherConfig struct {
	BaseURL           string `mapstructure:"base_url" yaml:"base_url"`
	APIKey            string `mapstructure:"api_key" yaml:"api_key,omitempty"`
	Units             string `mapstructure:"units" yaml:"units"`
	TimeoutSeconds    int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	MaxRetries        int    `mapstructure:"max_retries" yaml:"max_retries"`
	RetryDelaySeconds int    `mapstructure:"retry_delay_seconds" yaml:"retry_delay_seconds"`
}

// AgentConfig configures the ReACT loop.
type AgentConfig struct {
	MaxIterations int  `mapstructure:"max_iterations" yaml:"max_iterations"`
	Debug         bool `mapstructure:"debug" yaml:"debug"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		LLM: LLMConfig{
			BaseURL:        "https://api.groq.com/openai/v1",
			Model:          "llama-3.3-70b-versatile",
			Temperature:    0.0,
			TimeoutSeconds: 60,
		},
		Weather: WeatherConfig{
			BaseURL:           "https://api.openweathermap.org/data/2.5",
			Units:             "metric",
			TimeoutSeconds:    15,
			MaxRetries:        3,
			RetryDelaySeconds: 1,
		},
		Agent: AgentConfig{
			MaxIterations: 10,
		},
	}
}

// ConfigDir returns the configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".stormy"), nil
}

// Load reads configuration from config.yaml in the working directory or
// ~/.stormy, layered over defaults, with API keys bound to the GROQ_API_KEY
// and OPENWEATHERMAP_API_KEY environment variables.
func Load() (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if dir, err := ConfigDir(); err == nil {
		v.AddConfigPath(dir)
	}

	v.SetEnvPrefix("STORMY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// Provider credentials keep their conventional names.
	_ = v.BindEnv("llm.api_key", "GROQ_API_KEY")
	_ = v.BindEnv("weather.api_key", "OPENWEATHERMAP_API_KEY")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return DefaultConfig(), fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parse config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	def := DefaultConfig()

	v.SetDefault("llm.base_url", def.LLM.BaseURL)
	v.SetDefault("llm.model", def.LLM.Model)
	v.SetDefault("llm.temperature", def.LLM.Temperature)
	v.SetDefault("llm.timeout_seconds", def.LLM.TimeoutSeconds)

	v.SetDefault("weather.base_url", def.Weather.BaseURL)
	v.SetDefault("weather.units", def.Weather.Units)
	v.SetDefault("weather.timeout_seconds", def.Weather.TimeoutSeconds)
	v.SetDefault("weather.max_retries", def.Weather.MaxRetries)
	v.SetDefault("weather.retry_delay_seconds", def.Weather.RetryDelaySeconds)

	v.SetDefault("agent.max_iterations", def.Agent.MaxIterations)
	v.SetDefault("agent.debug", def.Agent.Debug)
}

// Save writes the configuration to the given path as YAML, creating parent
// directories as needed.
func (c Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}

	v := viper.New()
	v.Set("llm.base_url", c.LLM.BaseURL)
	v.Set("llm.model", c.LLM.Model)
	v.Set("llm.temperature", c.LLM.Temperature)
	v.Set("llm.timeout_seconds", c.LLM.TimeoutSeconds)
	v.Set("weather.base_url", c.Weather.BaseURL)
	v.Set("weather.units", c.Weather.Units)
	v.Set("weather.timeout_seconds", c.Weather.TimeoutSeconds)
	v.Set("weather.max_retries", c.Weather.MaxRetries)
	v.Set("weather.retry_delay_seconds", c.Weather.RetryDelaySeconds)
	v.Set("agent.max_iterations", c.Agent.MaxIterations)
	v.Set("agent.debug", c.Agent.Debug)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
