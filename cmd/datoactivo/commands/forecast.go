package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/datoactivo/backend/internal/analysis"
	"github.com/datoactivo/backend/internal/contracts"
	"github.com/datoactivo/backend/internal/results"
	"github.com/datoactivo/backend/pkg/config"
	"github.com/datoactivo/backend/pkg/database"
	"github.com/datoactivo/backend/pkg/logger"
)

// forecastCmd represents the forecast command
var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Generate a forecast from the console",
	Long: `Generates a forecast for a series and prints the ranking.

Methods:
  fused    - multi-signal fusion with justification trails (default)
  patterns - similarity-weighted pattern forecast
  animals  - outcome-set overlap forecast

Example:
  go run ./cmd/datoactivo forecast --series "LOTTO ACTIVO"
  go run ./cmd/datoactivo forecast --method patterns --reference-date 15/01/2025`,
	RunE: runForecast,
}

var (
	forecastSeries  string
	forecastRefDate string
	forecastFrom    string
	forecastTo      string
	forecastMethod  string
	forecastTopN    int
)

func init() {
	rootCmd.AddCommand(forecastCmd)

	forecastCmd.Flags().StringVar(&forecastSeries, "series", "LOTTO ACTIVO", "series to forecast")
	forecastCmd.Flags().StringVar(&forecastRefDate, "reference-date", "", "reference day (dd/mm/yyyy, default today)")
	forecastCmd.Flags().StringVar(&forecastFrom, "from", "", "history start (dd/mm/yyyy, default 30 days ago)")
	forecastCmd.Flags().StringVar(&forecastTo, "to", "", "history end (dd/mm/yyyy, default today)")
	forecastCmd.Flags().StringVar(&forecastMethod, "method", "fused", "forecast method (fused|patterns|animals)")
	forecastCmd.Flags().IntVar(&forecastTopN, "top", analysis.DefaultTopN, "entries to show")
}

func runForecast(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg)

	db, err := database.New(cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	store := results.NewRepository(db.Pool)
	engine := analysis.NewEngine(store, log.Zerolog())

	now := time.Now()
	refDate := forecastRefDate
	if refDate == "" {
		refDate = now.Format(contracts.DisplayDateLayout)
	}
	from := forecastFrom
	if from == "" {
		from = now.AddDate(0, 0, -30).Format(contracts.DisplayDateLayout)
	}
	to := forecastTo
	if to == "" {
		to = now.Format(contracts.DisplayDateLayout)
	}

	ctx := context.Background()

	fmt.Printf("=== Forecast: %s (%s) ===\n", forecastSeries, refDate)
	fmt.Printf("History: %s .. %s\n\n", from, to)

	switch forecastMethod {
	case "fused":
		fused, err := engine.FusedForecast(ctx, forecastSeries, refDate, from, to)
		if err != nil {
			return err
		}
		entries := fused.Entries
		if len(entries) > forecastTopN {
			entries = entries[:forecastTopN]
		}
		for i, e := range entries {
			fmt.Printf("%2d. %-3s %-16s %4d pts (%d sources)\n", i+1, e.Outcome, e.Name, e.Total, e.Sources)
			for _, j := range e.Justifications {
				fmt.Printf("      %s: +%d\n", j.Label, j.Points)
			}
		}
	case "patterns":
		forecast, err := engine.PatternForecast(ctx, forecastSeries, refDate, from, to, forecastTopN)
		if err != nil {
			return err
		}
		printForecast(forecast)
	case "animals":
		forecast, err := engine.AnimalSetForecast(ctx, forecastSeries, refDate, from, to, forecastTopN)
		if err != nil {
			return err
		}
		printForecast(forecast)
	default:
		return fmt.Errorf("unknown method %q (valid: fused, patterns, animals)", forecastMethod)
	}

	return nil
}

func printForecast(f *contracts.Forecast) {
	for i, e := range f.Entries {
		fmt.Printf("%2d. %-3s %-16s score %6.2f (freq %.2f)\n", i+1, e.Outcome, e.Name, e.Score, e.Frequency)
	}
	fmt.Printf("\nCandidates analyzed: %d\n", f.TotalPatterns)
}
