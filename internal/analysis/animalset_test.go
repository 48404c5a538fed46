package analysis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datoactivo/backend/internal/contracts"
)

func TestSearchAnimalSets(t *testing.T) {
	store := newFakeStore()
	store.addDay("LA GRANJITA", "10/01/2025", contracts.DayRecord{
		"08:00AM": "1", "09:00AM": "2", "10:00AM": "3", "11:00AM": "9",
	})
	store.addDay("LA GRANJITA", "11/01/2025", contracts.DayRecord{
		"08:00AM": "2", "09:00AM": "1", "10:00AM": "7",
	})
	store.addDay("LA GRANJITA", "15/01/2025", contracts.DayRecord{
		"08:00AM": "1", "09:00AM": "2", "10:00AM": "3",
	})
	engine := newTestEngine(store)

	search, err := engine.SearchAnimalSets(context.Background(), "LA GRANJITA", "15/01/2025", "", "", 30)
	require.NoError(t, err)

	assert.Equal(t, []string{"1", "2", "3"}, search.Reference)
	require.Len(t, search.Candidates, 2)

	// Slot identity is ignored: 11/01 shares {1,2} despite swapped slots.
	best := search.Candidates[0]
	assert.Equal(t, "10/01/2025", best.Date)
	assert.Equal(t, 3, best.Hits)
	assert.Equal(t, 100.0, best.Similarity)
	assert.Equal(t, []string{"9"}, best.Futures)

	second := search.Candidates[1]
	assert.Equal(t, "11/01/2025", second.Date)
	assert.Equal(t, 2, second.Hits)
	assert.Equal(t, 66.7, second.Similarity)
	assert.Equal(t, []string{"7"}, second.Futures)
}

func TestSearchAnimalSetsShortReference(t *testing.T) {
	store := newFakeStore()
	store.addDay("LA GRANJITA", "15/01/2025", contracts.DayRecord{"08:00AM": "1"})
	engine := newTestEngine(store)

	_, err := engine.SearchAnimalSets(context.Background(), "LA GRANJITA", "15/01/2025", "", "", 30)
	var noData *contracts.NoDataError
	require.ErrorAs(t, err, &noData)
}

func TestAnimalSetForecast(t *testing.T) {
	store := newFakeStore()
	// Max-hits day: weight 3.0.
	store.addDay("LA GRANJITA", "10/01/2025", contracts.DayRecord{
		"08:00AM": "1", "09:00AM": "2", "10:00AM": "3", "11:00AM": "9",
	})
	// One below max: weight 2.0.
	store.addDay("LA GRANJITA", "11/01/2025", contracts.DayRecord{
		"08:00AM": "1", "09:00AM": "2", "10:00AM": "7",
	})
	// Two below max: outside the tier.
	store.addDay("LA GRANJITA", "12/01/2025", contracts.DayRecord{
		"08:00AM": "1", "09:00AM": "8", "10:00AM": "9",
	})
	store.addDay("LA GRANJITA", "15/01/2025", contracts.DayRecord{
		"08:00AM": "1", "09:00AM": "2", "10:00AM": "3",
	})
	engine := newTestEngine(store)

	forecast, err := engine.AnimalSetForecast(context.Background(), "LA GRANJITA", "15/01/2025", "", "", 10)
	require.NoError(t, err)

	assert.Equal(t, "animal_sets", forecast.Method)
	assert.Equal(t, 3, forecast.MaxHits)
	assert.Equal(t, 2, forecast.TotalPatterns)
	require.Len(t, forecast.Entries, 2)

	// totalWeight = 3.0 + 2.0; "9" comes from the max day, "7" from the
	// near-max day. The 12/01 futures ("8") never score.
	top := forecast.Entries[0]
	assert.Equal(t, "9", top.Outcome)
	assert.Equal(t, 60.0, top.Score)
	assert.Equal(t, 3.0, top.Frequency)
	assert.Equal(t, 1, top.Days)

	second := forecast.Entries[1]
	assert.Equal(t, "7", second.Outcome)
	assert.Equal(t, 40.0, second.Score)
	assert.Equal(t, 2.0, second.Frequency)
}
