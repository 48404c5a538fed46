package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/datoactivo/backend/internal/contracts"
	"github.com/datoactivo/backend/internal/results"
	"github.com/datoactivo/backend/pkg/config"
	"github.com/datoactivo/backend/pkg/httputil"
	"github.com/datoactivo/backend/pkg/logger"
)

var errNoContainer = errors.New("results container not found")

// sourcePaths maps each series to its results path slug on the source site.
var sourcePaths = map[string]string{
	"LOTTO ACTIVO":    "lottoactivo",
	"LA GRANJITA":     "lagranjita",
	"SELVA PLUS":      "selvaplus",
	"LOTTO REY":       "lottorey",
	"RULETA ACTIVA":   "ruletaactiva",
	"LOTTO ACT INT":   "lottoactivordint",
	"LOTTO ACTIVO RD": "lottoactivordominicana",
	"GUACHARO ACTIVO": "guacharoactivo",
	"LA RICACHONA":    "la-ricachona",
}

// Scraper fetches published draw results and loads them into the result
// store. One instance is shared by the API, the CLI and the scheduler.
type Scraper struct {
	http    *httputil.Client
	store   *results.Repository
	baseURL string
	logger  *logger.Logger
}

// New creates a scraper. The HTTP client is rate limited so backfills stay
// polite toward the source site.
func New(cfg *config.Config, store *results.Repository, log *logger.Logger) *Scraper {
	return &Scraper{
		http:    httputil.New(cfg, log).WithRateLimit(cfg.Scraper.RequestsPerSec),
		store:   store,
		baseURL: cfg.Scraper.BaseURL,
		logger:  log.WithField("component", "scraper"),
	}
}

// FetchDay fetches and parses one day's results for one series. Returns rows
// ready for the store, display date attached.
func (s *Scraper) FetchDay(ctx context.Context, series string, date time.Time) ([]contracts.ResultRow, error) {
	path, ok := sourcePaths[series]
	if !ok {
		return nil, contracts.NewInputError(fmt.Sprintf("no source URL for series %q", series))
	}

	url := fmt.Sprintf("%s/animalito/%s/resultados/%s/", s.baseURL, path, date.Format(contracts.ISODateLayout))
	resp, err := s.http.GetWithHeaders(ctx, url, map[string]string{
		"User-Agent": "Mozilla/5.0",
	})
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer func() {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", url, resp.StatusCode)
	}

	draws, err := parseDay(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", url, err)
	}

	displayDate := date.Format(contracts.DisplayDateLayout)
	rows := make([]contracts.ResultRow, 0, len(draws))
	for _, d := range draws {
		rows = append(rows, contracts.ResultRow{
			Date:    displayDate,
			Series:  series,
			Slot:    d.Slot,
			Outcome: d.Outcome,
		})
	}
	return rows, nil
}

// Summary aggregates one scrape run.
type Summary struct {
	Days     int `json:"days"`
	Fetched  int `json:"fetched"`
	Saved    int `json:"saved"`
	Failures int `json:"failures"`
}

// Backfill scrapes a date range for the given series, day by day. A failed
// fetch is logged and skipped; the run continues with whatever the site
// serves. Nil series means all of them.
func (s *Scraper) Backfill(ctx context.Context, from, to time.Time, series []string) (*Summary, error) {
	if to.Before(from) {
		return nil, contracts.NewInputError("backfill range is inverted")
	}
	if len(series) == 0 {
		series = contracts.Series
	}

	summary := &Summary{}
	perSeries := make(map[string]*results.ScrapeLogEntry, len(series))
	for _, sr := range series {
		perSeries[sr] = &results.ScrapeLogEntry{Series: sr, Status: "ok"}
	}

	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		summary.Days++

		for _, sr := range series {
			entry := perSeries[sr]

			rows, err := s.FetchDay(ctx, sr, day)
			if err != nil {
				summary.Failures++
				entry.Status = "partial"
				entry.Details = err.Error()
				s.logger.WithFields(map[string]interface{}{
					"series": sr,
					"date":   day.Format(contracts.DisplayDateLayout),
					"error":  err.Error(),
				}).Warn("scrape failed, skipping day")
				continue
			}

			entry.Fetched += len(rows)
			summary.Fetched += len(rows)

			saved, err := s.store.SaveBatch(ctx, rows)
			entry.Loaded += saved
			summary.Saved += saved
			if err != nil {
				return summary, fmt.Errorf("save %s %s: %w", sr, day.Format(contracts.DisplayDateLayout), err)
			}
		}
	}

	for _, sr := range series {
		if err := s.store.LogScrape(ctx, *perSeries[sr]); err != nil {
			s.logger.WithError(err).Warn("failed to write scrape log")
		}
	}

	s.logger.WithFields(map[string]interface{}{
		"days":     summary.Days,
		"fetched":  summary.Fetched,
		"saved":    summary.Saved,
		"failures": summary.Failures,
	}).Info("backfill completed")
	return summary, nil
}

// RefreshToday scrapes the current day for every series.
func (s *Scraper) RefreshToday(ctx context.Context) (*Summary, error) {
	today := time.Now()
	return s.Backfill(ctx, today, today, nil)
}
