package analysis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datoactivo/backend/internal/contracts"
)

func TestSearchCrossSeries(t *testing.T) {
	store := newFakeStore()
	// Reference draws on the half-hour; candidates draw at :10. Both land on
	// the same hour grid after normalization.
	store.addDay("LOTTO ACTIVO", "15/01/2025", contracts.DayRecord{
		"08:30AM": "1", "09:30AM": "2",
	})
	store.addDay("LA GRANJITA", "10/01/2025", contracts.DayRecord{
		"08:10AM": "1", "09:10AM": "2", "10:10AM": "5",
	})
	store.addDay("LA GRANJITA", "11/01/2025", contracts.DayRecord{
		"08:00AM": "1", "10:00AM": "9",
	})
	// No slot in common with the reference grid: incomparable, excluded.
	store.addDay("TRIPLE GATO", "12/01/2025", contracts.DayRecord{
		"11:00AM": "9", "12:00PM": "3",
	})
	engine := newTestEngine(store)

	cross, err := engine.SearchCrossSeries(context.Background(), "LOTTO ACTIVO", "15/01/2025",
		[]string{"LA GRANJITA", "TRIPLE GATO"}, "01/01/2025", "31/01/2025", 0)
	require.NoError(t, err)

	assert.Equal(t, "LOTTO ACTIVO", cross.ReferenceSeries)
	assert.Equal(t, []string{"08:30AM", "09:30AM"}, cross.ReferenceSlots)
	require.Len(t, cross.Candidates, 2)

	best := cross.Candidates[0]
	assert.Equal(t, "LA GRANJITA", best.Series)
	assert.Equal(t, "10/01/2025", best.Date)
	assert.Equal(t, 2, best.Hits)
	assert.Equal(t, 100.0, best.Similarity)
	// Futures keep the candidate's native slot label, not the grid label.
	require.Len(t, best.Futures, 1)
	assert.Equal(t, "10:10AM", best.Futures[0].Slot)
	assert.Equal(t, "5", best.Futures[0].Outcome)

	second := cross.Candidates[1]
	assert.Equal(t, "11/01/2025", second.Date)
	assert.Equal(t, 1, second.Hits)
	assert.Equal(t, 1, second.Compared)
	require.Len(t, second.Futures, 1)
	assert.Equal(t, "9", second.Futures[0].Outcome)
}

func TestSearchCrossSeriesSkipsOwnSeries(t *testing.T) {
	store := newFakeStore()
	store.addDay("LOTTO ACTIVO", "15/01/2025", contracts.DayRecord{
		"08:00AM": "1", "09:00AM": "2",
	})
	store.addDay("LOTTO ACTIVO", "10/01/2025", contracts.DayRecord{
		"08:00AM": "1", "09:00AM": "2", "10:00AM": "5",
	})
	engine := newTestEngine(store)

	cross, err := engine.SearchCrossSeries(context.Background(), "LOTTO ACTIVO", "15/01/2025",
		[]string{"LOTTO ACTIVO"}, "01/01/2025", "31/01/2025", 0)
	require.NoError(t, err)
	assert.Empty(t, cross.Candidates)
}

func TestSearchCrossSeriesShortReference(t *testing.T) {
	store := newFakeStore()
	store.addDay("LOTTO ACTIVO", "15/01/2025", contracts.DayRecord{"08:00AM": "1"})
	engine := newTestEngine(store)

	_, err := engine.SearchCrossSeries(context.Background(), "LOTTO ACTIVO", "15/01/2025",
		contracts.Series, "01/01/2025", "31/01/2025", 0)
	var noData *contracts.NoDataError
	require.ErrorAs(t, err, &noData)
}
