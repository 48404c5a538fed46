package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "datoactivo",
	Short: "Animalitos draw results: scraping, pattern analysis and forecasts",
	Long: `DatoActivo CLI

Collects animalitos lottery draw results, stores them in PostgreSQL and
runs pattern-similarity analysis over the history.

Usage:
  go run ./cmd/datoactivo [command]

Examples:
  go run ./cmd/datoactivo api
  go run ./cmd/datoactivo scrape --from 01/01/2025 --to 31/01/2025
  go run ./cmd/datoactivo forecast --series "LOTTO ACTIVO"
  go run ./cmd/datoactivo status`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
