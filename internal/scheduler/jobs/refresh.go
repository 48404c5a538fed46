package jobs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/datoactivo/backend/internal/realtime"
	"github.com/datoactivo/backend/internal/scheduler"
	"github.com/datoactivo/backend/internal/scraper"
	"github.com/datoactivo/backend/pkg/config"
	"github.com/datoactivo/backend/pkg/logger"
)

// RefreshJob scrapes today's results for every series and pushes a summary
// to live subscribers.
type RefreshJob struct {
	scraper  *scraper.Scraper
	hub      *realtime.Hub
	logger   *logger.Logger
	interval time.Duration

	mu          sync.Mutex
	lastRun     time.Time
	lastSummary *scraper.Summary
	lastError   string
}

// NewRefreshJob creates a new refresh job.
func NewRefreshJob(cfg *config.Config, sc *scraper.Scraper, hub *realtime.Hub, log *logger.Logger) *RefreshJob {
	return &RefreshJob{
		scraper:  sc,
		hub:      hub,
		logger:   log,
		interval: cfg.Scraper.RefreshInterval,
	}
}

// Name returns the job name.
func (j *RefreshJob) Name() string {
	return "auto_refresh"
}

// Schedule returns the cron schedule.
func (j *RefreshJob) Schedule() string {
	return fmt.Sprintf("@every %s", j.interval)
}

// Run scrapes the current day for every series.
func (j *RefreshJob) Run(ctx context.Context) error {
	summary, err := j.scraper.RefreshToday(ctx)

	j.mu.Lock()
	j.lastRun = time.Now()
	j.lastSummary = summary
	j.lastError = ""
	if err != nil {
		j.lastError = err.Error()
	}
	j.mu.Unlock()

	if err != nil {
		return err
	}

	if j.hub != nil && summary.Saved > 0 {
		j.hub.Broadcast("refresh", summary)
	}
	return nil
}

// RefreshStatus reports the supervisor state for the API.
type RefreshStatus struct {
	Active      bool             `json:"active"`
	Interval    string           `json:"interval"`
	LastRun     *time.Time       `json:"last_run,omitempty"`
	LastSummary *scraper.Summary `json:"last_summary,omitempty"`
	LastError   string           `json:"last_error,omitempty"`
}

// AutoRefresh owns the scheduler that drives the refresh job and can be
// toggled at runtime.
type AutoRefresh struct {
	sched *scheduler.Scheduler
	job   *RefreshJob

	mu     sync.Mutex
	active bool
}

// NewAutoRefresh wires the refresh job into its own scheduler, stopped.
func NewAutoRefresh(cfg *config.Config, sc *scraper.Scraper, hub *realtime.Hub, log *logger.Logger) (*AutoRefresh, error) {
	job := NewRefreshJob(cfg, sc, hub, log)
	sched := scheduler.New(log)
	if err := sched.AddJob(job); err != nil {
		return nil, err
	}
	return &AutoRefresh{sched: sched, job: job}, nil
}

// Start begins periodic refreshing. Idempotent.
func (a *AutoRefresh) Start() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.active {
		return
	}
	a.sched.Start()
	a.active = true
}

// Stop halts periodic refreshing and waits for a running cycle to finish.
// Idempotent.
func (a *AutoRefresh) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.active {
		return
	}
	a.sched.Stop()
	a.active = false
}

// RunNow triggers one refresh cycle immediately.
func (a *AutoRefresh) RunNow() error {
	return a.sched.RunJob(a.job.Name())
}

// Status reports whether the supervisor is active and what its last cycle did.
func (a *AutoRefresh) Status() RefreshStatus {
	a.mu.Lock()
	active := a.active
	a.mu.Unlock()

	a.job.mu.Lock()
	defer a.job.mu.Unlock()

	status := RefreshStatus{
		Active:      active,
		Interval:    a.job.interval.String(),
		LastSummary: a.job.lastSummary,
		LastError:   a.job.lastError,
	}
	if !a.job.lastRun.IsZero() {
		lastRun := a.job.lastRun
		status.LastRun = &lastRun
	}
	return status
}
