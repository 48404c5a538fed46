package analysis

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/datoactivo/backend/internal/contracts"
)

// CompareDays scores a candidate day against a reference day over an ordered
// slot set. Returns (similarity%, hits, compared). A (0, 0, 0) result means
// the days share no slot and are incomparable, not 0% similar.
func CompareDays(ref, candidate contracts.DayRecord, slots []string) (float64, int, int) {
	hits, total := 0, 0
	for _, slot := range slots {
		refOutcome, inRef := ref[slot]
		candOutcome, inCand := candidate[slot]
		if !inRef || !inCand {
			continue
		}
		total++
		if refOutcome == candOutcome {
			hits++
		}
	}
	if total == 0 {
		return 0, 0, 0
	}
	return float64(hits) / float64(total) * 100, hits, total
}

// SearchSimilarDays compares a reference day's pattern against every
// historical day of the same series and returns the top candidates by
// (hits desc, similarity desc). Raw match count dominates over percentage,
// which small overlaps inflate.
func (e *Engine) SearchSimilarDays(ctx context.Context, series, refDate, from, to string, minSimilarity float64) (*contracts.PatternSearch, error) {
	ref, err := e.store.DayRecord(ctx, refDate, series)
	if err != nil {
		return nil, fmt.Errorf("load reference day: %w", err)
	}
	if len(ref) == 0 {
		return nil, contracts.NewNoDataError(fmt.Sprintf("no results for %s on %s", series, refDate))
	}

	refSlots := ref.OrderedSlots()
	if len(refSlots) < 2 {
		return nil, contracts.NewNoDataError("reference day needs at least 2 recorded slots")
	}

	dates, err := e.store.DistinctDates(ctx, series, from, to)
	if err != nil {
		return nil, fmt.Errorf("enumerate historical days: %w", err)
	}
	if len(dates) == 0 {
		return nil, contracts.NewNoDataError("no historical days in range")
	}

	refSlotSet := make(map[string]struct{}, len(refSlots))
	for _, slot := range refSlots {
		refSlotSet[slot] = struct{}{}
	}

	var candidates []contracts.MatchCandidate
	for _, date := range dates {
		// The reference day never matches against itself.
		if date == refDate {
			continue
		}

		hist, err := e.store.DayRecord(ctx, date, series)
		if err != nil {
			return nil, fmt.Errorf("load day %s: %w", date, err)
		}
		if len(hist) == 0 {
			continue
		}

		sim, hits, total := CompareDays(ref, hist, refSlots)
		if total == 0 {
			// No overlapping slot: incomparable, silently excluded.
			continue
		}
		if sim < minSimilarity {
			continue
		}

		candidates = append(candidates, contracts.MatchCandidate{
			Date:       date,
			Similarity: round1(sim),
			Hits:       hits,
			Compared:   total,
			Futures:    futureOutcomes(hist, refSlotSet),
		})
	}

	sortCandidates(candidates)
	if len(candidates) > maxCandidates {
		candidates = candidates[:maxCandidates]
	}

	e.log.Debug().
		Str("series", series).
		Str("reference_date", refDate).
		Int("analyzed", len(dates)).
		Int("candidates", len(candidates)).
		Msg("similarity search completed")

	return &contracts.PatternSearch{
		Series:         series,
		ReferenceDate:  refDate,
		Reference:      ref,
		ReferenceSlots: refSlots,
		Candidates:     candidates,
		TotalAnalyzed:  len(dates),
	}, nil
}

// futureOutcomes lists the candidate's slots outside the reference pattern,
// in daily time order.
func futureOutcomes(hist contracts.DayRecord, refSlotSet map[string]struct{}) []contracts.SlotOutcome {
	var futures []contracts.SlotOutcome
	for _, slot := range hist.OrderedSlots() {
		if _, inRef := refSlotSet[slot]; inRef {
			continue
		}
		futures = append(futures, contracts.SlotOutcome{
			Slot:    slot,
			Outcome: hist[slot],
			Name:    contracts.OutcomeName(hist[slot]),
		})
	}
	return futures
}

// sortCandidates applies the ranking policy shared by every same-series
// caller: hits descending, then similarity descending. Stable, so equal
// candidates keep their enumeration order and results are deterministic.
func sortCandidates(candidates []contracts.MatchCandidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Hits != candidates[j].Hits {
			return candidates[i].Hits > candidates[j].Hits
		}
		return candidates[i].Similarity > candidates[j].Similarity
	})
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
