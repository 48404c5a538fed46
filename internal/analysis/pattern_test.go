package analysis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datoactivo/backend/internal/contracts"
)

func TestPatternForecast(t *testing.T) {
	store := newFakeStore()
	// Full match: votes with weight 1.0.
	store.addDay("LOTTO ACTIVO", "10/01/2025", contracts.DayRecord{
		"08:00AM": "1", "08:30AM": "2", "09:00AM": "5",
	})
	// Half match: votes with weight 0.5.
	store.addDay("LOTTO ACTIVO", "11/01/2025", contracts.DayRecord{
		"08:00AM": "1", "08:30AM": "9", "09:00AM": "5", "09:30AM": "7",
	})
	store.addDay("LOTTO ACTIVO", "15/01/2025", contracts.DayRecord{
		"08:00AM": "1", "08:30AM": "2",
	})
	engine := newTestEngine(store)

	forecast, err := engine.PatternForecast(context.Background(), "LOTTO ACTIVO", "15/01/2025", "", "", 10)
	require.NoError(t, err)

	assert.Equal(t, "patterns", forecast.Method)
	assert.Equal(t, 2, forecast.TotalPatterns)
	assert.Equal(t, 100.0, forecast.BestSimilarity)
	require.Len(t, forecast.Entries, 2)

	// totalWeight = 1.0 + 0.5; "5" voted by both, "7" only by the weaker day.
	top := forecast.Entries[0]
	assert.Equal(t, "5", top.Outcome)
	assert.Equal(t, "LEON", top.Name)
	assert.Equal(t, 10.0, top.Score)
	assert.Equal(t, 1.5, top.Frequency)

	second := forecast.Entries[1]
	assert.Equal(t, "7", second.Outcome)
	assert.Equal(t, 3.33, second.Score)
	assert.Equal(t, 0.5, second.Frequency)
}

func TestPatternForecastNoCandidates(t *testing.T) {
	store := newFakeStore()
	store.addDay("LOTTO ACTIVO", "10/01/2025", contracts.DayRecord{
		"08:00AM": "7", "08:30AM": "9",
	})
	store.addDay("LOTTO ACTIVO", "15/01/2025", contracts.DayRecord{
		"08:00AM": "1", "08:30AM": "2",
	})
	engine := newTestEngine(store)

	// Nothing clears the 30% default threshold.
	_, err := engine.PatternForecast(context.Background(), "LOTTO ACTIVO", "15/01/2025", "", "", 10)
	var noData *contracts.NoDataError
	require.ErrorAs(t, err, &noData)
}

func TestRankWeightedDropsUnknownOutcomes(t *testing.T) {
	entries := rankWeighted(map[string]float64{
		"5":  1.0,
		"99": 2.0, // outside the closed set
	}, 2.0, 10)

	require.Len(t, entries, 1)
	assert.Equal(t, "5", entries[0].Outcome)
}

func TestRankWeightedTieBreaksByCode(t *testing.T) {
	entries := rankWeighted(map[string]float64{
		"7": 1.0,
		"3": 1.0,
		"5": 1.0,
	}, 3.0, 10)

	require.Len(t, entries, 3)
	assert.Equal(t, "3", entries[0].Outcome)
	assert.Equal(t, "5", entries[1].Outcome)
	assert.Equal(t, "7", entries[2].Outcome)
}
