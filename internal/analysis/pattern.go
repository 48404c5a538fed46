package analysis

import (
	"context"
	"sort"

	"github.com/datoactivo/backend/internal/contracts"
)

// PatternForecast turns the similarity search into a ranked forecast: each
// qualifying candidate votes on its future outcomes with weight similarity/100,
// and scores are normalized to a 0-10 scale.
func (e *Engine) PatternForecast(ctx context.Context, series, refDate, from, to string, topN int) (*contracts.Forecast, error) {
	search, err := e.SearchSimilarDays(ctx, series, refDate, from, to, DefaultMinSimilarity)
	if err != nil {
		return nil, err
	}
	if len(search.Candidates) == 0 {
		return nil, contracts.NewNoDataError("no similar patterns found")
	}

	frequency := make(map[string]float64)
	totalWeight := 0.0
	for _, cand := range search.Candidates {
		weight := cand.Similarity / 100.0
		for _, future := range cand.Futures {
			frequency[future.Outcome] += weight
		}
		totalWeight += weight
	}
	if len(frequency) == 0 {
		return nil, contracts.NewNoDataError("no future outcomes among similar days")
	}

	entries := rankWeighted(frequency, totalWeight, 10)
	if topN <= 0 {
		topN = DefaultTopN
	}
	if len(entries) > topN {
		entries = entries[:topN]
	}

	return &contracts.Forecast{
		Method:         "patterns",
		Series:         series,
		ReferenceDate:  refDate,
		Entries:        entries,
		TotalPatterns:  len(search.Candidates),
		BestSimilarity: search.Candidates[0].Similarity,
	}, nil
}

// rankWeighted converts a weighted frequency table into ranked entries with
// score = frequency / totalWeight * scale. Outcomes outside the closed set
// are dropped. Ranking is an explicit stable sort: score desc, frequency
// desc, then code asc, never incidental map order.
func rankWeighted(frequency map[string]float64, totalWeight float64, scale float64) []contracts.ForecastEntry {
	var entries []contracts.ForecastEntry
	for outcome, freq := range frequency {
		if !contracts.KnownOutcome(outcome) {
			continue
		}
		entries = append(entries, contracts.ForecastEntry{
			Outcome:   outcome,
			Name:      contracts.OutcomeName(outcome),
			Score:     round2(freq / totalWeight * scale),
			Frequency: round2(freq),
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		if entries[i].Frequency != entries[j].Frequency {
			return entries[i].Frequency > entries[j].Frequency
		}
		return entries[i].Outcome < entries[j].Outcome
	})
	return entries
}
