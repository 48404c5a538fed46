package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/datoactivo/backend/internal/contracts"
	"github.com/datoactivo/backend/internal/results"
	"github.com/datoactivo/backend/internal/scraper"
	"github.com/datoactivo/backend/pkg/config"
	"github.com/datoactivo/backend/pkg/database"
	"github.com/datoactivo/backend/pkg/logger"
)

// scrapeCmd represents the scrape command
var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape published draw results into the store",
	Long: `Scrapes the results source day by day and upserts into PostgreSQL.

Without flags it fetches today's results for every series. Failed days
are skipped and reported, not fatal.

Example:
  go run ./cmd/datoactivo scrape
  go run ./cmd/datoactivo scrape --from 01/01/2025 --to 31/01/2025
  go run ./cmd/datoactivo scrape --series "LOTTO ACTIVO" --series "LA GRANJITA"`,
	RunE: runScrape,
}

var (
	scrapeFrom   string
	scrapeTo     string
	scrapeSeries []string
)

func init() {
	rootCmd.AddCommand(scrapeCmd)

	scrapeCmd.Flags().StringVar(&scrapeFrom, "from", "", "start date (dd/mm/yyyy, default today)")
	scrapeCmd.Flags().StringVar(&scrapeTo, "to", "", "end date (dd/mm/yyyy, default today)")
	scrapeCmd.Flags().StringArrayVar(&scrapeSeries, "series", nil, "series to scrape (default all)")
}

func runScrape(cmd *cobra.Command, args []string) error {
	fmt.Println("=== DatoActivo Scrape ===")

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
	scr := scraper.New(cfg, store, log)

	from, to := time.Now(), time.Now()
	if scrapeFrom != "" {
		if from, err = time.Parse(contracts.DisplayDateLayout, scrapeFrom); err != nil {
			return fmt.Errorf("invalid --from, use dd/mm/yyyy: %w", err)
		}
	}
	if scrapeTo != "" {
		if to, err = time.Parse(contracts.DisplayDateLayout, scrapeTo); err != nil {
			return fmt.Errorf("invalid --to, use dd/mm/yyyy: %w", err)
		}
	}

	fmt.Printf("Range: %s .. %s\n", from.Format(contracts.DisplayDateLayout), to.Format(contracts.DisplayDateLayout))

	summary, err := scr.Backfill(context.Background(), from, to, scrapeSeries)
	if err != nil {
		return fmt.Errorf("backfill failed: %w", err)
	}

	fmt.Printf("\n✅ Scrape complete\n")
	fmt.Printf("%-10s %6d\n", "Days:", summary.Days)
	fmt.Printf("%-10s %6d\n", "Fetched:", summary.Fetched)
	fmt.Printf("%-10s %6d\n", "Saved:", summary.Saved)
	fmt.Printf("%-10s %6d\n", "Failures:", summary.Failures)
	return nil
}
