package analysis

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/datoactivo/backend/internal/contracts"
)

// Fusion point values. Patterns and frequencies are the strong signals;
// cross-series is a weaker corroborator.
const (
	patternPoints      = 10
	followUpPoints     = 3
	crossSeriesPoints  = 5
	frequencyPoints    = 10
	consecutivePoints  = 10
	doubleSourcePoints = 20
)

// patternLead remembers where a pattern award came from so the follow-up
// bonus can re-examine the slot preceding the awarded one.
type patternLead struct {
	date     string
	outcome  string
	prevSlot string
}

// fusionState accumulates points and justification trails per outcome.
type fusionState struct {
	points     map[string]int
	trail      map[string][]contracts.Justification
	patternPts map[string]int
	freqPts    map[string]int
}

func newFusionState() *fusionState {
	return &fusionState{
		points:     make(map[string]int),
		trail:      make(map[string][]contracts.Justification),
		patternPts: make(map[string]int),
		freqPts:    make(map[string]int),
	}
}

func (s *fusionState) add(outcome string, kind contracts.SourceKind, pts int) {
	s.points[outcome] += pts
	s.trail[outcome] = append(s.trail[outcome], contracts.Justification{
		Kind:   kind,
		Label:  kind.Label(),
		Points: pts,
	})
	switch kind {
	case contracts.SourcePattern:
		s.patternPts[outcome] += pts
	case contracts.SourceFrequencyAfter, contracts.SourceFrequencyBefore:
		s.freqPts[outcome] += pts
	}
}

// FusedForecast combines every signal into one scored forecast for the slot
// following the reference day's pattern. Signals that find no data are
// skipped, not fatal; only a fully empty scoreboard is an error.
func (e *Engine) FusedForecast(ctx context.Context, series, refDate, from, to string) (*contracts.FusedForecast, error) {
	if from == "" || to == "" {
		return nil, contracts.NewInputError("date range is required")
	}

	state := newFusionState()

	refDay, err := e.store.DayRecord(ctx, refDate, series)
	if err != nil {
		return nil, fmt.Errorf("load reference day: %w", err)
	}

	leads, err := e.scorePatterns(ctx, state, series, refDate, from, to)
	if err != nil {
		return nil, err
	}
	e.scoreFollowUps(ctx, state, refDay, series, leads)
	if err := e.scoreCrossSeries(ctx, state, series, refDate, from, to); err != nil {
		return nil, err
	}
	if err := e.scoreFrequencies(ctx, state, refDay, series, from, to); err != nil {
		return nil, err
	}
	if err := e.scoreConsecutive(ctx, state, refDay, series, refDate, from, to); err != nil {
		return nil, err
	}

	// Corroboration bonus: the two strong signals agreeing on an outcome is
	// worth more than either alone.
	for outcome := range state.points {
		if state.patternPts[outcome] > 0 && state.freqPts[outcome] > 0 {
			state.add(outcome, contracts.BonusDoubleSource, doubleSourcePoints)
		}
	}

	var entries []contracts.FusedEntry
	for outcome, total := range state.points {
		if !contracts.KnownOutcome(outcome) {
			continue
		}
		kinds := make(map[contracts.SourceKind]struct{})
		for _, j := range state.trail[outcome] {
			if !j.Kind.IsBonus() {
				kinds[j.Kind] = struct{}{}
			}
		}
		entries = append(entries, contracts.FusedEntry{
			Outcome:        outcome,
			Name:           contracts.OutcomeName(outcome),
			Total:          total,
			Justifications: state.trail[outcome],
			Sources:        len(kinds),
		})
	}
	if len(entries) == 0 {
		return nil, contracts.NewNoDataError("no signal produced any points")
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Total != entries[j].Total {
			return entries[i].Total > entries[j].Total
		}
		return entries[i].Outcome < entries[j].Outcome
	})

	e.log.Info().
		Str("series", series).
		Str("reference_date", refDate).
		Int("outcomes", len(entries)).
		Msg("fused forecast generated")

	return &contracts.FusedForecast{
		Series:        series,
		ReferenceDate: refDate,
		Entries:       entries,
	}, nil
}

// scorePatterns awards points to the next-slot outcome of every same-series
// candidate with at least 2 exact hits. No similarity floor here: raw hit
// count is the filter.
func (e *Engine) scorePatterns(ctx context.Context, state *fusionState, series, refDate, from, to string) ([]patternLead, error) {
	search, err := e.SearchSimilarDays(ctx, series, refDate, from, to, 0)
	if err != nil {
		if isNoData(err) {
			return nil, nil
		}
		return nil, err
	}

	refSlotSet := make(map[string]struct{}, len(search.ReferenceSlots))
	for _, slot := range search.ReferenceSlots {
		refSlotSet[slot] = struct{}{}
	}

	var leads []patternLead
	for _, cand := range search.Candidates {
		if cand.Hits < 2 {
			continue
		}

		hist, err := e.store.DayRecord(ctx, cand.Date, series)
		if err != nil {
			return nil, fmt.Errorf("load day %s: %w", cand.Date, err)
		}
		if len(hist) == 0 {
			continue
		}

		ordered := hist.OrderedSlots()
		nextSlot, prevSlot := "", ""
		for i, slot := range ordered {
			if _, inRef := refSlotSet[slot]; !inRef {
				nextSlot = slot
				if i > 0 {
					prevSlot = ordered[i-1]
				}
				break
			}
		}
		if nextSlot == "" {
			continue
		}

		outcome := hist[nextSlot]
		state.add(outcome, contracts.SourcePattern, patternPoints)
		leads = append(leads, patternLead{date: cand.Date, outcome: outcome, prevSlot: prevSlot})
	}
	return leads, nil
}

// scoreFollowUps awards a small bonus when the pattern day and the reference
// day agree on the slot just before the awarded one, i.e. the pattern was
// still tracking at its final compared slot.
func (e *Engine) scoreFollowUps(ctx context.Context, state *fusionState, refDay contracts.DayRecord, series string, leads []patternLead) {
	if len(refDay) == 0 {
		return
	}
	for _, lead := range leads {
		if lead.prevSlot == "" {
			continue
		}
		refOutcome, ok := refDay[lead.prevSlot]
		if !ok {
			continue
		}
		hist, err := e.store.DayRecord(ctx, lead.date, series)
		if err != nil {
			continue
		}
		if histOutcome, ok := hist[lead.prevSlot]; ok && histOutcome == refOutcome {
			state.add(lead.outcome, contracts.BonusFollowUp, followUpPoints)
		}
	}
}

// scoreCrossSeries awards the first native future outcome of every
// other-series candidate with at least 2 hits on the normalized grid.
func (e *Engine) scoreCrossSeries(ctx context.Context, state *fusionState, series, refDate, from, to string) error {
	var others []string
	for _, s := range contracts.Series {
		if s != series {
			others = append(others, s)
		}
	}

	cross, err := e.SearchCrossSeries(ctx, series, refDate, others, from, to, 0)
	if err != nil {
		if isNoData(err) {
			return nil
		}
		return err
	}

	for _, cand := range cross.Candidates {
		if cand.Hits < 2 || len(cand.Futures) == 0 {
			continue
		}
		state.add(cand.Futures[0].Outcome, contracts.SourceCrossSeries, crossSeriesPoints)
	}
	return nil
}

// scoreFrequencies anchors on the reference day's last recorded outcome and
// awards its top followers and top predecessors over the range.
func (e *Engine) scoreFrequencies(ctx context.Context, state *fusionState, refDay contracts.DayRecord, series, from, to string) error {
	slots := refDay.OrderedSlots()
	if len(slots) == 0 {
		return nil
	}
	anchor := refDay[slots[len(slots)-1]]

	tables, err := e.TransitionTables(ctx, series, from, to)
	if err != nil {
		if isNoData(err) {
			return nil
		}
		return err
	}

	for _, entry := range TopFollowers(tables.After[anchor]) {
		state.add(entry.Outcome, contracts.SourceFrequencyAfter, frequencyPoints)
	}
	for _, entry := range TopFollowers(tables.Before[anchor]) {
		state.add(entry.Outcome, contracts.SourceFrequencyBefore, frequencyPoints)
	}
	return nil
}

// scoreConsecutive replays every adjacent pair of the reference day against
// the range, anchored to the exact same slots, and awards whatever came two
// positions later on the matching day. One award per pair per day.
func (e *Engine) scoreConsecutive(ctx context.Context, state *fusionState, refDay contracts.DayRecord, series, refDate, from, to string) error {
	if len(refDay) < 2 {
		return nil
	}

	rows, err := e.store.RangeSequenceExcluding(ctx, series, from, to, refDate)
	if err != nil {
		return fmt.Errorf("load range: %w", err)
	}
	if len(rows) == 0 {
		return nil
	}
	perDay, dates := groupByDay(rows)

	refSlots := refDay.OrderedSlots()
	for i := 0; i+1 < len(refSlots); i++ {
		first, second := refDay[refSlots[i]], refDay[refSlots[i+1]]
		firstSlot, secondSlot := refSlots[i], refSlots[i+1]

		for _, date := range dates {
			day := perDay[date]
			for j := 0; j+1 < len(day); j++ {
				if day[j].Outcome != first || day[j+1].Outcome != second {
					continue
				}
				if day[j].Slot != firstSlot || day[j+1].Slot != secondSlot {
					continue
				}
				if j+2 < len(day) {
					state.add(day[j+2].Outcome, contracts.SourceConsecutive, consecutivePoints)
				}
				break
			}
		}
	}
	return nil
}

func isNoData(err error) bool {
	var noData *contracts.NoDataError
	return errors.As(err, &noData)
}
