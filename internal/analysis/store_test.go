package analysis

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/datoactivo/backend/internal/contracts"
)

// fakeStore is an in-memory Store. Days are returned newest first by
// DistinctDates and oldest first by RangeSequence, matching the repository.
type fakeStore struct {
	days  map[string]map[string]contracts.DayRecord
	dates map[string][]string // oldest first
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		days:  make(map[string]map[string]contracts.DayRecord),
		dates: make(map[string][]string),
	}
}

func (s *fakeStore) addDay(series, date string, record contracts.DayRecord) {
	if s.days[series] == nil {
		s.days[series] = make(map[string]contracts.DayRecord)
	}
	if _, exists := s.days[series][date]; !exists {
		s.dates[series] = append(s.dates[series], date)
	}
	s.days[series][date] = record
}

func (s *fakeStore) DayRecord(_ context.Context, date, series string) (contracts.DayRecord, error) {
	record := contracts.DayRecord{}
	for slot, outcome := range s.days[series][date] {
		record[slot] = outcome
	}
	return record, nil
}

func (s *fakeStore) DaySet(_ context.Context, date, series string) (map[string]struct{}, error) {
	return s.days[series][date].OutcomeSet(), nil
}

func (s *fakeStore) DistinctDates(_ context.Context, series, _, _ string) ([]string, error) {
	dates := s.dates[series]
	out := make([]string, 0, len(dates))
	for i := len(dates) - 1; i >= 0; i-- {
		out = append(out, dates[i])
	}
	return out, nil
}

func (s *fakeStore) RangeSequence(_ context.Context, series, _, _ string) ([]contracts.ResultRow, error) {
	return s.sequence(series, ""), nil
}

func (s *fakeStore) RangeSequenceExcluding(_ context.Context, series, _, _, excludeDate string) ([]contracts.ResultRow, error) {
	return s.sequence(series, excludeDate), nil
}

func (s *fakeStore) sequence(series, excludeDate string) []contracts.ResultRow {
	var rows []contracts.ResultRow
	for _, date := range s.dates[series] {
		if date == excludeDate {
			continue
		}
		record := s.days[series][date]
		for _, slot := range record.OrderedSlots() {
			rows = append(rows, contracts.ResultRow{
				Date:    date,
				Series:  series,
				Slot:    slot,
				Outcome: record[slot],
			})
		}
	}
	return rows
}

func newTestEngine(store Store) *Engine {
	return NewEngine(store, zerolog.Nop())
}
