package analysis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datoactivo/backend/internal/contracts"
)

func TestCompareDays(t *testing.T) {
	ref := contracts.DayRecord{"08:00AM": "1", "08:30AM": "2", "09:00AM": "3"}
	slots := ref.OrderedSlots()

	t.Run("full match", func(t *testing.T) {
		sim, hits, total := CompareDays(ref, contracts.DayRecord{
			"08:00AM": "1", "08:30AM": "2", "09:00AM": "3",
		}, slots)
		assert.Equal(t, 100.0, sim)
		assert.Equal(t, 3, hits)
		assert.Equal(t, 3, total)
	})

	t.Run("partial overlap", func(t *testing.T) {
		// Only two shared slots, one agreeing.
		sim, hits, total := CompareDays(ref, contracts.DayRecord{
			"08:00AM": "1", "08:30AM": "9",
		}, slots)
		assert.Equal(t, 50.0, sim)
		assert.Equal(t, 1, hits)
		assert.Equal(t, 2, total)
	})

	t.Run("no shared slot is incomparable", func(t *testing.T) {
		sim, hits, total := CompareDays(ref, contracts.DayRecord{
			"05:00PM": "1",
		}, slots)
		assert.Equal(t, 0.0, sim)
		assert.Equal(t, 0, hits)
		assert.Equal(t, 0, total)
	})
}

func TestSearchSimilarDays(t *testing.T) {
	store := newFakeStore()
	store.addDay("LOTTO ACTIVO", "10/01/2025", contracts.DayRecord{
		"08:00AM": "1", "08:30AM": "2", "09:00AM": "5",
	})
	store.addDay("LOTTO ACTIVO", "11/01/2025", contracts.DayRecord{
		"08:00AM": "1", "08:30AM": "9",
	})
	store.addDay("LOTTO ACTIVO", "15/01/2025", contracts.DayRecord{
		"08:00AM": "1", "08:30AM": "2",
	})
	engine := newTestEngine(store)

	search, err := engine.SearchSimilarDays(context.Background(), "LOTTO ACTIVO", "15/01/2025", "", "", 30)
	require.NoError(t, err)

	assert.Equal(t, []string{"08:00AM", "08:30AM"}, search.ReferenceSlots)
	assert.Equal(t, 3, search.TotalAnalyzed)
	require.Len(t, search.Candidates, 2)

	// Full match first: 2 hits beat 1 hit.
	best := search.Candidates[0]
	assert.Equal(t, "10/01/2025", best.Date)
	assert.Equal(t, 100.0, best.Similarity)
	assert.Equal(t, 2, best.Hits)
	assert.Equal(t, 2, best.Compared)
	require.Len(t, best.Futures, 1)
	assert.Equal(t, contracts.SlotOutcome{Slot: "09:00AM", Outcome: "5", Name: "LEON"}, best.Futures[0])

	second := search.Candidates[1]
	assert.Equal(t, "11/01/2025", second.Date)
	assert.Equal(t, 50.0, second.Similarity)
	assert.Equal(t, 1, second.Hits)
	assert.Empty(t, second.Futures)
}

func TestSearchSimilarDaysExcludesReference(t *testing.T) {
	store := newFakeStore()
	store.addDay("LOTTO ACTIVO", "15/01/2025", contracts.DayRecord{
		"08:00AM": "1", "08:30AM": "2",
	})
	engine := newTestEngine(store)

	// The only day is the reference day itself; there is nothing to match.
	_, err := engine.SearchSimilarDays(context.Background(), "LOTTO ACTIVO", "15/01/2025", "", "", 0)
	require.NoError(t, err) // no candidates is a valid empty result for the search
}

func TestSearchSimilarDaysNoData(t *testing.T) {
	store := newFakeStore()
	engine := newTestEngine(store)

	_, err := engine.SearchSimilarDays(context.Background(), "LOTTO ACTIVO", "15/01/2025", "", "", 30)
	var noData *contracts.NoDataError
	require.ErrorAs(t, err, &noData)
}

func TestSearchSimilarDaysShortReference(t *testing.T) {
	store := newFakeStore()
	store.addDay("LOTTO ACTIVO", "15/01/2025", contracts.DayRecord{"08:00AM": "1"})
	engine := newTestEngine(store)

	_, err := engine.SearchSimilarDays(context.Background(), "LOTTO ACTIVO", "15/01/2025", "", "", 30)
	var noData *contracts.NoDataError
	require.ErrorAs(t, err, &noData)
	assert.Contains(t, noData.Reason, "at least 2")
}

func TestSearchSimilarDaysMinSimilarityFilter(t *testing.T) {
	store := newFakeStore()
	store.addDay("LOTTO ACTIVO", "10/01/2025", contracts.DayRecord{
		"08:00AM": "7", "08:30AM": "9",
	})
	store.addDay("LOTTO ACTIVO", "15/01/2025", contracts.DayRecord{
		"08:00AM": "1", "08:30AM": "2",
	})
	engine := newTestEngine(store)

	search, err := engine.SearchSimilarDays(context.Background(), "LOTTO ACTIVO", "15/01/2025", "", "", 30)
	require.NoError(t, err)
	assert.Empty(t, search.Candidates)

	// At threshold 0 the 0% match is still a comparable day.
	search, err = engine.SearchSimilarDays(context.Background(), "LOTTO ACTIVO", "15/01/2025", "", "", 0)
	require.NoError(t, err)
	require.Len(t, search.Candidates, 1)
	assert.Equal(t, 0, search.Candidates[0].Hits)
	assert.Equal(t, 2, search.Candidates[0].Compared)
}
