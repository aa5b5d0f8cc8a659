package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "compass",
	Short: "FII Compass - Brazilian real-estate fund dashboard",
	Long: `FII Compass

Scrapes or fetches market data for Brazilian real-estate funds (FIIs),
scores each fund against the SELIC reference rate and serves a ranked
dashboard with historical charts.

Usage:
  go run ./cmd/compass [command]

Examples:
  go run ./cmd/compass api
  go run ./cmd/compass collect yahoo
  go run ./cmd/compass analyze
  go run ./cmd/compass scheduler`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. Called by main.main().
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
