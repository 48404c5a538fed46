package results

import (
	"context"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/datoactivo/backend/internal/contracts"
)

// Repository is the draw result store. Every read is a self-contained query;
// callers never observe partial writes.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new result repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// DayRecord returns the slot -> outcome mapping for one (date, series).
// Empty record when the day has no data.
func (r *Repository) DayRecord(ctx context.Context, date, series string) (contracts.DayRecord, error) {
	query := `
		SELECT slot, outcome
		FROM results
		WHERE draw_date = $1 AND series = $2
	`

	rows, err := r.pool.Query(ctx, query, date, series)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	record := contracts.DayRecord{}
	for rows.Next() {
		var slot, outcome string
		if err := rows.Scan(&slot, &outcome); err != nil {
			return nil, err
		}
		record[slot] = outcome
	}
	return record, rows.Err()
}

// DaySet returns the set of outcomes drawn on one (date, series), slot
// identity discarded.
func (r *Repository) DaySet(ctx context.Context, date, series string) (map[string]struct{}, error) {
	query := `
		SELECT outcome
		FROM results
		WHERE draw_date = $1 AND series = $2
	`

	rows, err := r.pool.Query(ctx, query, date, series)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	set := make(map[string]struct{})
	for rows.Next() {
		var outcome string
		if err := rows.Scan(&outcome); err != nil {
			return nil, err
		}
		set[outcome] = struct{}{}
	}
	return set, rows.Err()
}

// DistinctDates returns the display dates with any data for a series, newest
// first. Empty bounds default to the last 180 days.
func (r *Repository) DistinctDates(ctx context.Context, series, from, to string) ([]string, error) {
	var query string
	var args []interface{}

	if from != "" && to != "" {
		query = `
			SELECT DISTINCT draw_date, draw_date_iso
			FROM results
			WHERE draw_date_iso BETWEEN $1 AND $2 AND series = $3
			ORDER BY draw_date_iso DESC
		`
		args = []interface{}{contracts.DateToISO(from), contracts.DateToISO(to), series}
	} else {
		cutoff := time.Now().AddDate(0, 0, -180).Format(contracts.ISODateLayout)
		query = `
			SELECT DISTINCT draw_date, draw_date_iso
			FROM results
			WHERE draw_date_iso >= $1 AND series = $2
			ORDER BY draw_date_iso DESC
		`
		args = []interface{}{cutoff, series}
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dates []string
	for rows.Next() {
		var date string
		var iso time.Time
		if err := rows.Scan(&date, &iso); err != nil {
			return nil, err
		}
		dates = append(dates, date)
	}
	return dates, rows.Err()
}

// RangeSequence returns every (date, slot, outcome) for a series inside a
// date range, ordered by date then slot. Feeds the frequency and
// consecutive-pair signals.
func (r *Repository) RangeSequence(ctx context.Context, series, from, to string) ([]contracts.ResultRow, error) {
	query := `
		SELECT draw_date, series, slot, outcome
		FROM results
		WHERE draw_date_iso BETWEEN $1 AND $2 AND series = $3
		ORDER BY draw_date_iso, slot
	`

	return r.queryRows(ctx, query, contracts.DateToISO(from), contracts.DateToISO(to), series)
}

// RangeSequenceExcluding is RangeSequence minus a single date, used when the
// reference day must not match against itself.
func (r *Repository) RangeSequenceExcluding(ctx context.Context, series, from, to, excludeDate string) ([]contracts.ResultRow, error) {
	query := `
		SELECT draw_date, series, slot, outcome
		FROM results
		WHERE draw_date_iso BETWEEN $1 AND $2 AND draw_date != $3 AND series = $4
		ORDER BY draw_date_iso, slot
	`

	return r.queryRows(ctx, query, contracts.DateToISO(from), contracts.DateToISO(to), excludeDate, series)
}

func (r *Repository) queryRows(ctx context.Context, query string, args ...interface{}) ([]contracts.ResultRow, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []contracts.ResultRow
	for rows.Next() {
		var row contracts.ResultRow
		if err := rows.Scan(&row.Date, &row.Series, &row.Slot, &row.Outcome); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// List returns observed results with optional filters, newest first, display
// names attached. Series "TODAS" and slot "TODOS" disable their filters.
func (r *Repository) List(ctx context.Context, from, to, series, slot string) ([]contracts.ResultRow, error) {
	query := `
		SELECT draw_date, series, slot, outcome
		FROM results
		WHERE 1=1
	`
	var args []interface{}

	if from != "" && to != "" {
		args = append(args, contracts.DateToISO(from), contracts.DateToISO(to))
		query += ` AND draw_date_iso BETWEEN $1 AND $2`
	}
	if series != "" && series != "TODAS" {
		args = append(args, series)
		query += ` AND series = $` + strconv.Itoa(len(args))
	}
	if slot != "" && slot != "TODOS" {
		args = append(args, slot)
		query += ` AND slot = $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY draw_date_iso DESC, series, slot`

	rows, err := r.queryRows(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].Name = contracts.OutcomeName(rows[i].Outcome)
	}
	return rows, nil
}

// SeriesCount is a per-series result total.
type SeriesCount struct {
	Series string `json:"series"`
	Total  int64  `json:"total"`
}

// StoreStats summarizes the result store contents.
type StoreStats struct {
	Total     int64         `json:"total"`
	MinDate   string        `json:"min_date"`
	MaxDate   string        `json:"max_date"`
	PerSeries []SeriesCount `json:"per_series"`
}

// Stats returns store-wide statistics.
func (r *Repository) Stats(ctx context.Context) (*StoreStats, error) {
	stats := &StoreStats{MinDate: "N/A", MaxDate: "N/A"}

	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM results`).Scan(&stats.Total); err != nil {
		return nil, err
	}

	var minDate, maxDate *time.Time
	err := r.pool.QueryRow(ctx, `SELECT MIN(draw_date_iso), MAX(draw_date_iso) FROM results`).
		Scan(&minDate, &maxDate)
	if err != nil {
		return nil, err
	}
	if minDate != nil {
		stats.MinDate = contracts.ISOToDate(minDate.Format(contracts.ISODateLayout))
	}
	if maxDate != nil {
		stats.MaxDate = contracts.ISOToDate(maxDate.Format(contracts.ISODateLayout))
	}

	rows, err := r.pool.Query(ctx, `
		SELECT series, COUNT(*) AS total
		FROM results
		GROUP BY series
		ORDER BY total DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var sc SeriesCount
		if err := rows.Scan(&sc.Series, &sc.Total); err != nil {
			return nil, err
		}
		stats.PerSeries = append(stats.PerSeries, sc)
	}
	return stats, rows.Err()
}

// Save upserts one result. The (date, series, slot) key is the external
// schema contract; re-scrapes overwrite the outcome.
func (r *Repository) Save(ctx context.Context, row contracts.ResultRow) error {
	query := `
		INSERT INTO results (draw_date, draw_date_iso, series, slot, outcome)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (draw_date, series, slot) DO UPDATE
			SET outcome = EXCLUDED.outcome
	`

	_, err := r.pool.Exec(ctx, query,
		row.Date, contracts.DateToISO(row.Date), row.Series, row.Slot, row.Outcome,
	)
	return err
}

// SaveBatch upserts multiple results.
func (r *Repository) SaveBatch(ctx context.Context, rowsIn []contracts.ResultRow) (int, error) {
	saved := 0
	for _, row := range rowsIn {
		if err := r.Save(ctx, row); err != nil {
			return saved, err
		}
		saved++
	}
	return saved, nil
}

// ScrapeLogEntry records one scrape attempt.
type ScrapeLogEntry struct {
	Series  string `json:"series"`
	Fetched int    `json:"fetched"`
	Loaded  int    `json:"loaded"`
	Status  string `json:"status"`
	Details string `json:"details,omitempty"`
}

// LogScrape appends a scrape log entry.
func (r *Repository) LogScrape(ctx context.Context, entry ScrapeLogEntry) error {
	query := `
		INSERT INTO scrape_log (series, fetched, loaded, status, details)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query,
		entry.Series, entry.Fetched, entry.Loaded, entry.Status, entry.Details,
	)
	return err
}

// DuplicateReport summarizes duplicate (date, series, slot) groups.
type DuplicateReport struct {
	Groups int64 `json:"groups"`
	Rows   int64 `json:"rows"`
}

// DetectDuplicates reports rows sharing a (date, series, slot) key.
func (r *Repository) DetectDuplicates(ctx context.Context) (*DuplicateReport, error) {
	query := `
		SELECT COUNT(*), COALESCE(SUM(cnt), 0)
		FROM (
			SELECT COUNT(*) AS cnt
			FROM results
			GROUP BY draw_date, series, slot
			HAVING COUNT(*) > 1
		) dup
	`

	var report DuplicateReport
	if err := r.pool.QueryRow(ctx, query).Scan(&report.Groups, &report.Rows); err != nil {
		return nil, err
	}
	return &report, nil
}

// PurgeDuplicates deletes duplicate rows keeping the newest id per key.
func (r *Repository) PurgeDuplicates(ctx context.Context) (int64, error) {
	query := `
		DELETE FROM results WHERE id NOT IN (
			SELECT MAX(id) FROM results GROUP BY draw_date, series, slot
		)
	`

	tag, err := r.pool.Exec(ctx, query)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
