package analysis

import (
	"context"
	"fmt"
	"sort"

	"github.com/datoactivo/backend/internal/contracts"
)

// SearchCrossSeries compares the reference day against days from other
// series. Both sides are mapped to the coarse 30-minute grid before
// comparison; future outcomes keep the candidate's native slot labels.
// Ranking uses hits only, since cross-series similarity% carries less
// meaning.
func (e *Engine) SearchCrossSeries(ctx context.Context, refSeries, refDate string, compareSeries []string, from, to string, minSimilarity float64) (*contracts.CrossSearch, error) {
	ref, err := e.store.DayRecord(ctx, refDate, refSeries)
	if err != nil {
		return nil, fmt.Errorf("load reference day: %w", err)
	}
	if len(ref) == 0 {
		return nil, contracts.NewNoDataError(fmt.Sprintf("no results for %s on %s", refSeries, refDate))
	}

	refSlots := ref.OrderedSlots()
	if len(refSlots) < 2 {
		return nil, contracts.NewNoDataError("reference day needs at least 2 recorded slots")
	}

	refNorm := ref.Normalized()
	normSlots := make([]string, 0, len(refSlots))
	normSlotSet := make(map[string]struct{}, len(refSlots))
	for _, slot := range refSlots {
		norm := contracts.NormalizeSlot(slot)
		normSlots = append(normSlots, norm)
		normSlotSet[norm] = struct{}{}
	}

	var candidates []contracts.CrossCandidate
	for _, series := range compareSeries {
		if series == refSeries {
			continue
		}

		dates, err := e.store.DistinctDates(ctx, series, from, to)
		if err != nil {
			return nil, fmt.Errorf("enumerate days for %s: %w", series, err)
		}

		for _, date := range dates {
			hist, err := e.store.DayRecord(ctx, date, series)
			if err != nil {
				return nil, fmt.Errorf("load day %s %s: %w", series, date, err)
			}
			if len(hist) == 0 {
				continue
			}

			histNorm := hist.Normalized()
			sim, hits, total := CompareDays(refNorm, histNorm, normSlots)
			if total == 0 {
				continue
			}
			if sim < minSimilarity {
				continue
			}

			var futures []contracts.SlotOutcome
			for _, slot := range hist.OrderedSlots() {
				if _, covered := normSlotSet[contracts.NormalizeSlot(slot)]; covered {
					continue
				}
				futures = append(futures, contracts.SlotOutcome{
					Slot:    slot,
					Outcome: hist[slot],
					Name:    contracts.OutcomeName(hist[slot]),
				})
			}

			candidates = append(candidates, contracts.CrossCandidate{
				Series:     series,
				Date:       date,
				Similarity: round1(sim),
				Hits:       hits,
				Compared:   total,
				Futures:    futures,
			})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Hits > candidates[j].Hits
	})
	if len(candidates) > maxCandidates {
		candidates = candidates[:maxCandidates]
	}

	return &contracts.CrossSearch{
		ReferenceSeries: refSeries,
		ReferenceDate:   refDate,
		Reference:       ref,
		ReferenceSlots:  refSlots,
		Candidates:      candidates,
	}, nil
}
