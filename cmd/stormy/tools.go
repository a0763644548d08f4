package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the tools available to the agent",
	Run: func(cmd *cobra.Command, args []string) {
		titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#0EA5E9")).Bold(true)
		nameStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#06B6D4")).Bold(true)
		descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF")).PaddingLeft(2)

		// Listing tools needs no model credentials, only the registry.
		registry := newRegistry(cfg, zap.NewNop())

		fmt.Println(titleStyle.Render("Available tools:"))
		fmt.Println()
		for _, tool := range registry.All() {
			fmt.Println(nameStyle.Render(tool.Name()))
			fmt.Println(descStyle.Render(tool.Description()))
			fmt.Println()
		}
	},
}
