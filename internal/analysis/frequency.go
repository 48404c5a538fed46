package analysis

import (
	"context"
	"fmt"
	"sort"

	"github.com/datoactivo/backend/internal/contracts"
)

// TransitionTables builds immediate-follower and immediate-predecessor counts
// for every outcome across the range. Adjacency is within a single day only:
// the last slot of one day and the first slot of the next are never paired.
func (e *Engine) TransitionTables(ctx context.Context, series, from, to string) (*contracts.TransitionTables, error) {
	rows, err := e.store.RangeSequence(ctx, series, from, to)
	if err != nil {
		return nil, fmt.Errorf("load range: %w", err)
	}
	if len(rows) == 0 {
		return nil, contracts.NewNoDataError("no results in range")
	}

	perDay, dates := groupByDay(rows)

	after := make(map[string]map[string]int)
	before := make(map[string]map[string]int)
	for _, date := range dates {
		day := perDay[date]
		for i := 0; i+1 < len(day); i++ {
			cur, next := day[i].Outcome, day[i+1].Outcome
			if after[cur] == nil {
				after[cur] = make(map[string]int)
			}
			after[cur][next]++
			if before[next] == nil {
				before[next] = make(map[string]int)
			}
			before[next][cur]++
		}
	}

	return &contracts.TransitionTables{
		After:     after,
		Before:    before,
		TotalDays: len(dates),
	}, nil
}

// TopFollowers ranks a transition row by count descending, code ascending.
// When five or more entries exist the cutoff is the fifth-highest count and
// every entry at or above it is included, capped at six, so ties at the
// boundary are not dropped arbitrarily.
func TopFollowers(counts map[string]int) []contracts.FollowerCount {
	if len(counts) == 0 {
		return nil
	}

	entries := make([]contracts.FollowerCount, 0, len(counts))
	for outcome, count := range counts {
		entries = append(entries, contracts.FollowerCount{
			Outcome: outcome,
			Name:    contracts.OutcomeName(outcome),
			Count:   count,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Outcome < entries[j].Outcome
	})

	if len(entries) >= 5 {
		cutoff := entries[4].Count
		kept := entries[:0:0]
		for _, entry := range entries {
			if entry.Count >= cutoff {
				kept = append(kept, entry)
			}
		}
		entries = kept
		if len(entries) > 6 {
			entries = entries[:6]
		}
	}
	return entries
}

// FrequencyReport answers the API-facing question "what tends to come
// right after (or before) this outcome". Direction is "after" or "before".
func (e *Engine) FrequencyReport(ctx context.Context, series, outcome, direction, from, to string) ([]contracts.FollowerCount, int, error) {
	if direction != "after" && direction != "before" {
		return nil, 0, contracts.NewInputError(fmt.Sprintf("unknown direction %q", direction))
	}
	if !contracts.KnownOutcome(outcome) {
		return nil, 0, contracts.NewInputError(fmt.Sprintf("unknown outcome %q", outcome))
	}

	tables, err := e.TransitionTables(ctx, series, from, to)
	if err != nil {
		return nil, 0, err
	}

	row := tables.After[outcome]
	if direction == "before" {
		row = tables.Before[outcome]
	}
	if len(row) == 0 {
		return nil, 0, contracts.NewNoDataError(fmt.Sprintf("no transitions recorded for %s", outcome))
	}
	return TopFollowers(row), tables.TotalDays, nil
}

// groupByDay splits a range sequence into per-day slot sequences, each sorted
// by time of day, and returns the day keys in range order.
func groupByDay(rows []contracts.ResultRow) (map[string][]contracts.ResultRow, []string) {
	perDay := make(map[string][]contracts.ResultRow)
	var dates []string
	for _, row := range rows {
		if _, seen := perDay[row.Date]; !seen {
			dates = append(dates, row.Date)
		}
		perDay[row.Date] = append(perDay[row.Date], row)
	}
	for date := range perDay {
		day := perDay[date]
		sort.SliceStable(day, func(i, j int) bool {
			return contracts.SlotMinutes(day[i].Slot) < contracts.SlotMinutes(day[j].Slot)
		})
		perDay[date] = day
	}
	return perDay, dates
}
