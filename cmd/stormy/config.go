package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/ritwikdas/stormy/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var flagConfigInit bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or initialize configuration",
	Long: `Shows the effective configuration after defaults, config file, and
environment variables have been merged. With --init, writes a default
config.yaml to ~/.stormy for editing.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#0EA5E9")).Bold(true)
		pathStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF"))

		if flagConfigInit {
			dir, err := config.ConfigDir()
			if err != nil {
				return err
			}
			path := filepath.Join(dir, "config.yaml")

			if _, err := os.Stat(path); err == nil {
				fmt.Printf("Config already exists at %s\n", path)
				return nil
			}

			if err := config.DefaultConfig().Save(path); err != nil {
				return err
			}
			fmt.Printf("Wrote default config to %s\n", pathStyle.Render(path))
			return nil
		}

		// API keys come from the environment and are redacted from display.
		shown := cfg
		shown.LLM.APIKey = ""
		shown.Weather.APIKey = ""

		out, err := yaml.Marshal(shown)
		if err != nil {
			return fmt.Errorf("render config: %w", err)
		}

		fmt.Println(titleStyle.Render("Effective configuration:"))
		fmt.Println()
		fmt.Print(string(out))
		return nil
	},
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigInit, "init", false, "Write a default config.yaml to ~/.stormy")
}
