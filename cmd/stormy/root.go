package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/ritwikdas/stormy/internal/agent"
	"github.com/ritwikdas/stormy/internal/config"
	"github.com/ritwikdas/stormy/internal/llm"
	"github.com/ritwikdas/stormy/internal/tools"
	"github.com/ritwikdas/stormy/internal/ui"
	"github.com/ritwikdas/stormy/internal/weatherapi"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	flagModel         string
	flagAPIKey        string
	flagMaxIterations int
	flagDebug         bool
	flagVerbose       bool
	flagInteractive   bool

	cfg    config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "stormy [query]",
	Short: "AI weather assistant",
	Long: `stormy answers weather questions by reasoning through a
Thought/Action/Observation loop, calling weather and calculation tools as
needed.

Usage:
  stormy "What's the weather in London?"   Run a one-shot query
  stormy --it                              Start an interactive chat
  stormy tools                             List available tools
  stormy config                            View/create configuration
  stormy version                           Show version info

Required environment:
  GROQ_API_KEY             Groq API key for the language model
  OPENWEATHERMAP_API_KEY   OpenWeatherMap API key for weather data`,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if flagVerbose {
			logger, err = zap.NewDevelopment()
		} else {
			logger, err = zap.NewProduction()
		}
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}

		cfg, err = config.Load()
		if err != nil {
			fmt.Printf("Warning: could not load config: %v\n", err)
			cfg = config.DefaultConfig()
		}

		// Flags override config.
		if flagModel != "" {
			cfg.LLM.Model = flagModel
		}
		if flagAPIKey != "" {
			cfg.LLM.APIKey = flagAPIKey
		}
		if flagMaxIterations > 0 {
			cfg.Agent.MaxIterations = flagMaxIterations
		}
		if flagDebug {
			cfg.Agent.Debug = true
		}

		return nil
	},

	Run: func(cmd *cobra.Command, args []string) {
		if flagInteractive {
			runInteractive()
			return
		}

		if len(args) > 0 {
			runOneShot(args)
			return
		}

		cmd.Help()
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVar(&flagInteractive, "it", false, "Start interactive chat mode")

	rootCmd.PersistentFlags().StringVar(&flagModel, "model", "", "LLM model to use")
	rootCmd.PersistentFlags().StringVar(&flagAPIKey, "api-key", "", "API key for Groq")
	rootCmd.PersistentFlags().IntVar(&flagMaxIterations, "max-iterations", 0, "Iteration ceiling for the agent loop")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Echo every iteration to stdout")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable verbose logging")

	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(toolsCmd)
	rootCmd.AddCommand(versionCmd)
}

// newRegistry wires the standard tool set against the configured weather
// API client.
func newRegistry(cfg config.Config, logger *zap.Logger) *tools.Registry {
	weatherClient := weatherapi.NewClient(weatherapi.Config{
		BaseURL:    cfg.Weather.BaseURL,
		APIKey:     cfg.Weather.APIKey,
		Units:      cfg.Weather.Units,
		Timeout:    time.Duration(cfg.Weather.TimeoutSeconds) * time.Second,
		MaxRetries: cfg.Weather.MaxRetries,
		RetryDelay: time.Duration(cfg.Weather.RetryDelaySeconds) * time.Second,
		Logger:     logger,
	})

	return tools.NewRegistry(
		tools.NewWeatherTool(weatherClient),
		tools.NewForecastTool(weatherClient),
		tools.NewCalculatorTool(logger),
	)
}

// newAgent builds a fully wired agent from the effective configuration.
func newAgent(cfg config.Config, logger *zap.Logger) (*agent.Agent, error) {
	client, err := llm.NewClient(llm.Config{
		BaseURL:     cfg.LLM.BaseURL,
		APIKey:      cfg.LLM.APIKey,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		Timeout:     time.Duration(cfg.LLM.TimeoutSeconds) * time.Second,
		Logger:      logger,
	})
	if err != nil {
		return nil, err
	}

	return agent.New(agent.Config{
		Client:        client,
		Registry:      newRegistry(cfg, logger),
		MaxIterations: cfg.Agent.MaxIterations,
		Debug:         cfg.Agent.Debug,
		Logger:        logger,
	}), nil
}

// runOneShot answers a single query and exits.
func runOneShot(args []string) {
	query := strings.Join(args, " ")

	headerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#0EA5E9")).Bold(true)
	traceStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	answerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#F9FAFB"))
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))

	a, err := newAgent(cfg, logger)
	if err != nil {
		fmt.Println(errorStyle.Render(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}

	fmt.Printf("%s %s\n\n", headerStyle.Render("Query:"), query)

	result, err := a.RunLoop(context.Background(), query,
		agent.WithObserver(func(text string) {
			fmt.Println(traceStyle.Render(text))
		}))
	if err != nil {
		fmt.Println(errorStyle.Render(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println(headerStyle.Render("Answer:"))
	fmt.Println(answerStyle.Render(ui.FinalAnswer(result)))
}
