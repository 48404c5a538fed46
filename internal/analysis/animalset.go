package analysis

import (
	"context"
	"fmt"
	"sort"

	"github.com/datoactivo/backend/internal/contracts"
)

// SearchAnimalSets compares the set of outcomes seen on the reference day
// against each historical day's set, ignoring slot identity. Similarity is
// relative to the reference set size, not a symmetric Jaccard.
func (e *Engine) SearchAnimalSets(ctx context.Context, series, refDate, from, to string, minSimilarity float64) (*contracts.SetSearch, error) {
	refSet, err := e.store.DaySet(ctx, refDate, series)
	if err != nil {
		return nil, fmt.Errorf("load reference day: %w", err)
	}
	if len(refSet) < 2 {
		return nil, contracts.NewNoDataError("reference day needs at least 2 outcomes")
	}

	dates, err := e.store.DistinctDates(ctx, series, from, to)
	if err != nil {
		return nil, fmt.Errorf("enumerate historical days: %w", err)
	}
	if len(dates) == 0 {
		return nil, contracts.NewNoDataError("no historical days in range")
	}

	var candidates []contracts.SetCandidate
	for _, date := range dates {
		if date == refDate {
			continue
		}

		daySet, err := e.store.DaySet(ctx, date, series)
		if err != nil {
			return nil, fmt.Errorf("load day %s: %w", date, err)
		}
		if len(daySet) == 0 {
			continue
		}

		common := 0
		for outcome := range refSet {
			if _, ok := daySet[outcome]; ok {
				common++
			}
		}

		sim := float64(common) / float64(len(refSet)) * 100
		if sim < minSimilarity {
			continue
		}

		var futures []string
		for outcome := range daySet {
			if _, ok := refSet[outcome]; !ok {
				futures = append(futures, outcome)
			}
		}
		sort.Strings(futures)

		candidates = append(candidates, contracts.SetCandidate{
			Date:       date,
			Similarity: round1(sim),
			Hits:       common,
			RefCount:   len(refSet),
			DayCount:   len(daySet),
			Futures:    futures,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Hits != candidates[j].Hits {
			return candidates[i].Hits > candidates[j].Hits
		}
		return candidates[i].Similarity > candidates[j].Similarity
	})
	if len(candidates) > maxCandidates {
		candidates = candidates[:maxCandidates]
	}

	reference := make([]string, 0, len(refSet))
	for outcome := range refSet {
		reference = append(reference, outcome)
	}
	sort.Strings(reference)

	return &contracts.SetSearch{
		Series:        series,
		ReferenceDate: refDate,
		Reference:     reference,
		Candidates:    candidates,
		TotalAnalyzed: len(dates),
	}, nil
}

// AnimalSetForecast weights only the local top tier of set candidates: days
// at the maximum hit count get 3.0, days within 1 of it get 2.0. The -1 tier
// width is kept exactly as observed in production use.
func (e *Engine) AnimalSetForecast(ctx context.Context, series, refDate, from, to string, topN int) (*contracts.Forecast, error) {
	search, err := e.SearchAnimalSets(ctx, series, refDate, from, to, DefaultMinSimilarity)
	if err != nil {
		return nil, err
	}
	if len(search.Candidates) == 0 {
		return nil, contracts.NewNoDataError("no similar outcome sets found")
	}

	maxHits := 0
	for _, cand := range search.Candidates {
		if cand.Hits > maxHits {
			maxHits = cand.Hits
		}
	}
	if maxHits == 0 {
		return nil, contracts.NewNoDataError("no overlapping outcomes among candidates")
	}

	var tier []contracts.SetCandidate
	for _, cand := range search.Candidates {
		if cand.Hits >= maxHits-1 {
			tier = append(tier, cand)
		}
	}

	frequency := make(map[string]float64)
	appearances := make(map[string]int)
	totalWeight := 0.0
	for _, cand := range tier {
		weight := 2.0
		if cand.Hits == maxHits {
			weight = 3.0
		}
		totalWeight += weight
		for _, outcome := range cand.Futures {
			frequency[outcome] += weight
			appearances[outcome]++
		}
	}
	if len(frequency) == 0 {
		return nil, contracts.NewNoDataError("no future outcomes among tier days")
	}

	entries := rankWeighted(frequency, totalWeight, 100)
	for i := range entries {
		entries[i].Days = appearances[entries[i].Outcome]
	}
	if topN <= 0 {
		topN = DefaultTopN
	}
	if len(entries) > topN {
		entries = entries[:topN]
	}

	return &contracts.Forecast{
		Method:        "animal_sets",
		Series:        series,
		ReferenceDate: refDate,
		Entries:       entries,
		TotalPatterns: len(tier),
		MaxHits:       maxHits,
	}, nil
}
