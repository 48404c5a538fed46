package analysis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datoactivo/backend/internal/contracts"
)

func TestSearchConsecutivePairs(t *testing.T) {
	store := newFakeStore()
	store.addDay("SELVA PLUS", "10/01/2025", contracts.DayRecord{
		"08:00AM": "1", "08:30AM": "2", "09:00AM": "3",
	})
	// Pair occurs twice; only the first position is recorded.
	store.addDay("SELVA PLUS", "11/01/2025", contracts.DayRecord{
		"08:00AM": "4", "08:30AM": "1", "09:00AM": "2", "09:30AM": "1", "10:00AM": "2",
	})
	store.addDay("SELVA PLUS", "12/01/2025", contracts.DayRecord{
		"08:00AM": "2", "08:30AM": "1",
	})
	engine := newTestEngine(store)

	search, err := engine.SearchConsecutivePairs(context.Background(), "SELVA PLUS", "1", "2", "01/01/2025", "31/01/2025")
	require.NoError(t, err)

	assert.Equal(t, "CARNERO", search.FirstName)
	assert.Equal(t, "TORO", search.SecondName)
	require.Len(t, search.Matches, 2)

	first := search.Matches[0]
	assert.Equal(t, "10/01/2025", first.Date)
	assert.Equal(t, "08:00AM", first.FirstSlot)
	assert.Equal(t, "08:30AM", first.SecondSlot)
	assert.Equal(t, 1, first.Position)
	assert.Equal(t, 3, first.DayTotal)

	second := search.Matches[1]
	assert.Equal(t, "11/01/2025", second.Date)
	assert.Equal(t, "08:30AM", second.FirstSlot)
	assert.Equal(t, 2, second.Position)
	assert.Equal(t, 5, second.DayTotal)
}

func TestSearchConsecutivePairsOrderMatters(t *testing.T) {
	store := newFakeStore()
	store.addDay("SELVA PLUS", "10/01/2025", contracts.DayRecord{
		"08:00AM": "2", "08:30AM": "1",
	})
	engine := newTestEngine(store)

	search, err := engine.SearchConsecutivePairs(context.Background(), "SELVA PLUS", "1", "2", "01/01/2025", "31/01/2025")
	require.NoError(t, err)
	assert.Empty(t, search.Matches)
}

func TestSearchConsecutivePairsUnknownOutcome(t *testing.T) {
	engine := newTestEngine(newFakeStore())

	_, err := engine.SearchConsecutivePairs(context.Background(), "SELVA PLUS", "1", "99", "", "")
	var inputErr *contracts.InputError
	require.ErrorAs(t, err, &inputErr)
}
