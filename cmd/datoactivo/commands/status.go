package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/datoactivo/backend/internal/results"
	"github.com/datoactivo/backend/pkg/config"
	"github.com/datoactivo/backend/pkg/database"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show result store status",
	Long: `Prints store-wide statistics: total results, covered date range and
per-series counts.

Example:
  go run ./cmd/datoactivo status`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	fmt.Println("=== DatoActivo Store Status ===")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store := results.NewRepository(db.Pool)
	stats, err := store.Stats(ctx)
	if err != nil {
		return fmt.Errorf("load stats: %w", err)
	}

	fmt.Printf("\n%-12s %10d\n", "Results:", stats.Total)
	fmt.Printf("%-12s %10s\n", "First day:", stats.MinDate)
	fmt.Printf("%-12s %10s\n", "Last day:", stats.MaxDate)

	fmt.Println("\nPer series")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	for _, sc := range stats.PerSeries {
		fmt.Printf("%-20s %10d\n", sc.Series, sc.Total)
	}
	return nil
}
