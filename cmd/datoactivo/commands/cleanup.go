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

// cleanupCmd represents the cleanup command
var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Result store maintenance",
	Long: `Store cleanup tools.

Example:
  datoactivo cleanup duplicates`,
}

var cleanupDuplicatesCmd = &cobra.Command{
	Use:   "duplicates",
	Short: "Remove duplicate result rows",
	Long: `Deletes rows sharing a (date, series, slot) key, keeping the newest.

Duplicates only appear after manual imports; regular scrapes upsert on
the unique key.

Example:
  datoactivo cleanup duplicates`,
	RunE: runCleanupDuplicates,
}

func init() {
	rootCmd.AddCommand(cleanupCmd)
	cleanupCmd.AddCommand(cleanupDuplicatesCmd)
}

func runCleanupDuplicates(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Duplicate Cleanup ===")

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

	report, err := store.DetectDuplicates(ctx)
	if err != nil {
		return fmt.Errorf("detect duplicates: %w", err)
	}

	fmt.Printf("📊 Found %d duplicate groups (%d rows)\n", report.Groups, report.Rows)
	if report.Groups == 0 {
		fmt.Println("✅ Nothing to clean up")
		return nil
	}

	removed, err := store.PurgeDuplicates(ctx)
	if err != nil {
		return fmt.Errorf("purge duplicates: %w", err)
	}

	fmt.Printf("✅ Deleted %d rows\n", removed)
	return nil
}
