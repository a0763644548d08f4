package main

import (
	"fmt"
	"runtime"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// Build information, set via ldflags.
var (
	Version   = "0.1.0"
	GitCommit = "dev"
	BuildDate = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#0EA5E9")).Bold(true)
		labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF"))

		fmt.Println(titleStyle.Render("stormy " + Version))
		fmt.Printf("%s %s\n", labelStyle.Render("commit:"), GitCommit)
		fmt.Printf("%s %s\n", labelStyle.Render("built:"), BuildDate)
		fmt.Printf("%s %s %s/%s\n", labelStyle.Render("runtime:"), runtime.Version(), runtime.GOOS, runtime.GOARCH)
	},
}
