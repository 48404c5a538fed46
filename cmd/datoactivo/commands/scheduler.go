package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/datoactivo/backend/internal/realtime"
	"github.com/datoactivo/backend/internal/results"
	"github.com/datoactivo/backend/internal/scheduler"
	"github.com/datoactivo/backend/internal/scheduler/jobs"
	"github.com/datoactivo/backend/internal/scraper"
	"github.com/datoactivo/backend/pkg/config"
	"github.com/datoactivo/backend/pkg/database"
	"github.com/datoactivo/backend/pkg/logger"
)

// schedulerCmd represents the scheduler command
var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "Run the standalone job scheduler",
	Long: `Runs the scheduled jobs without the API server:

- auto_refresh: scrapes today's results on the refresh interval
- store_maintenance: purges duplicate rows nightly

Example:
  go run ./cmd/datoactivo scheduler`,
	RunE: runScheduler,
}

func init() {
	rootCmd.AddCommand(schedulerCmd)
}

func runScheduler(cmd *cobra.Command, args []string) error {
	fmt.Println("=== DatoActivo Scheduler ===")

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

	hubCtx, hubCancel := context.WithCancel(context.Background())
	defer hubCancel()
	hub := realtime.NewHub(log)
	go hub.Run(hubCtx)

	sched := scheduler.New(log)
	if err := sched.AddJob(jobs.NewRefreshJob(cfg, scr, hub, log)); err != nil {
		return fmt.Errorf("add refresh job: %w", err)
	}
	if err := sched.AddJob(jobs.NewMaintenanceJob(store, log)); err != nil {
		return fmt.Errorf("add maintenance job: %w", err)
	}

	sched.Start()
	fmt.Println("\n✅ Scheduler running, press Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	sched.Stop()
	return nil
}
