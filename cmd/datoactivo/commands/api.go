package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/datoactivo/backend/internal/analysis"
	"github.com/datoactivo/backend/internal/api"
	"github.com/datoactivo/backend/internal/api/handlers"
	"github.com/datoactivo/backend/internal/realtime"
	"github.com/datoactivo/backend/internal/results"
	"github.com/datoactivo/backend/internal/scheduler/jobs"
	"github.com/datoactivo/backend/internal/scraper"
	"github.com/datoactivo/backend/pkg/config"
	"github.com/datoactivo/backend/pkg/database"
	"github.com/datoactivo/backend/pkg/logger"
	"github.com/datoactivo/backend/pkg/redis"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the API server",
	Long: `Starts the REST API server.

This command serves:
- Results browsing and store statistics
- Pattern, set, cross-series, frequency and pair analysis
- The fused multi-signal forecast
- Scrape triggers and the auto-refresh toggle
- A websocket feed of refresh events at /api/live

Example:
  go run ./cmd/datoactivo api
  go run ./cmd/datoactivo api --port 8080`,
	RunE: runAPIServer,
}

var apiPort string

func init() {
	rootCmd.AddCommand(apiCmd)

	apiCmd.Flags().StringVar(&apiPort, "port", "", "API server port (overrides PORT)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	fmt.Println("=== DatoActivo API Server ===")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if apiPort != "" {
		cfg.Port = apiPort
	}

	log := logger.New(cfg)

	db, err := database.New(cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()
	log.Info("Connected to database")

	redisClient, err := redis.New(cfg)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer redisClient.Close()
	cache := redis.NewCache(redisClient, "datoactivo")

	store := results.NewRepository(db.Pool)
	engine := analysis.NewEngine(store, log.Zerolog())
	scr := scraper.New(cfg, store, log)

	hubCtx, hubCancel := context.WithCancel(context.Background())
	defer hubCancel()
	hub := realtime.NewHub(log)
	go hub.Run(hubCtx)

	auto, err := jobs.NewAutoRefresh(cfg, scr, hub, log)
	if err != nil {
		return fmt.Errorf("create auto-refresh: %w", err)
	}
	defer auto.Stop()

	router := api.NewRouter(api.Handlers{
		Results:     handlers.NewResultsHandler(store, log),
		Analysis:    handlers.NewAnalysisHandler(engine, log),
		Forecast:    handlers.NewForecastHandler(engine, cache, cfg.Redis.TTL, log),
		Scrape:      handlers.NewScrapeHandler(scr, auto, log),
		Maintenance: handlers.NewMaintenanceHandler(store, log),
		Hub:         hub,
	}, log)

	server := api.New(cfg, log, router)

	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	fmt.Printf("\n✅ Server running on http://localhost:%s\n", cfg.Port)
	fmt.Println("\nPress Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
