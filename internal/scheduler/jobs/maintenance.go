package jobs

import (
	"context"

	"github.com/datoactivo/backend/internal/results"
	"github.com/datoactivo/backend/pkg/logger"
)

// MaintenanceJob purges duplicate result rows nightly. Duplicates only
// appear after manual imports; scrapes upsert on the unique key.
type MaintenanceJob struct {
	store  *results.Repository
	logger *logger.Logger
}

// NewMaintenanceJob creates a new maintenance job.
func NewMaintenanceJob(store *results.Repository, log *logger.Logger) *MaintenanceJob {
	return &MaintenanceJob{store: store, logger: log}
}

// Name returns the job name.
func (j *MaintenanceJob) Name() string {
	return "store_maintenance"
}

// Schedule returns the cron schedule (daily at 03:00).
func (j *MaintenanceJob) Schedule() string {
	return "0 0 3 * * *"
}

// Run executes the duplicate purge.
func (j *MaintenanceJob) Run(ctx context.Context) error {
	report, err := j.store.DetectDuplicates(ctx)
	if err != nil {
		return err
	}
	if report.Groups == 0 {
		return nil
	}

	removed, err := j.store.PurgeDuplicates(ctx)
	if err != nil {
		return err
	}

	j.logger.WithFields(map[string]interface{}{
		"groups":  report.Groups,
		"removed": removed,
	}).Info("Duplicate purge completed")
	return nil
}
