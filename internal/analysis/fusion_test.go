package analysis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datoactivo/backend/internal/contracts"
)

func fusionFixture() *fakeStore {
	store := newFakeStore()
	// Historical day matching the reference on both slots; its next slot
	// carries "5".
	store.addDay("LOTTO ACTIVO", "10/01/2025", contracts.DayRecord{
		"08:00AM": "1", "08:30AM": "2", "09:00AM": "5",
	})
	// Single hit: below the 2-hit floor for pattern points.
	store.addDay("LOTTO ACTIVO", "11/01/2025", contracts.DayRecord{
		"08:00AM": "1", "08:30AM": "9",
	})
	store.addDay("LOTTO ACTIVO", "15/01/2025", contracts.DayRecord{
		"08:00AM": "1", "08:30AM": "2",
	})
	return store
}

func TestFusedForecast(t *testing.T) {
	engine := newTestEngine(fusionFixture())

	fused, err := engine.FusedForecast(context.Background(), "LOTTO ACTIVO", "15/01/2025", "01/01/2025", "31/01/2025")
	require.NoError(t, err)
	require.NotEmpty(t, fused.Entries)

	byOutcome := make(map[string]contracts.FusedEntry)
	for _, e := range fused.Entries {
		byOutcome[e.Outcome] = e
	}

	// "5" collects: pattern +10, follow-up +3 (10/01 agrees with the
	// reference at 08:30AM), frequency-after +10 (follows "2" on 10/01),
	// consecutive +10 (comes after the exact "1","2" slot pair on 10/01),
	// and double-source +20.
	top, ok := byOutcome["5"]
	require.True(t, ok)
	assert.Equal(t, 53, top.Total)
	assert.Equal(t, 3, top.Sources)

	kinds := make(map[contracts.SourceKind]int)
	for _, j := range top.Justifications {
		kinds[j.Kind] += j.Points
	}
	assert.Equal(t, 10, kinds[contracts.SourcePattern])
	assert.Equal(t, 3, kinds[contracts.BonusFollowUp])
	assert.Equal(t, 10, kinds[contracts.SourceFrequencyAfter])
	assert.Equal(t, 10, kinds[contracts.SourceConsecutive])
	assert.Equal(t, 20, kinds[contracts.BonusDoubleSource])

	// "1" precedes the anchor "2" on both recorded days: frequency-before
	// only, one source, no corroboration bonus.
	pred, ok := byOutcome["1"]
	require.True(t, ok)
	assert.Equal(t, 10, pred.Total)
	assert.Equal(t, 1, pred.Sources)

	// Highest total first.
	assert.Equal(t, "5", fused.Entries[0].Outcome)
}

func TestFusedForecastDoubleSourceRequiresBoth(t *testing.T) {
	store := newFakeStore()
	// Two hits (08:00, 08:30) award "30" via patterns, but "30" never
	// follows or precedes the anchor "3" anywhere, so frequencies stay
	// silent on it and the corroboration bonus must not fire.
	store.addDay("LOTTO ACTIVO", "10/01/2025", contracts.DayRecord{
		"08:00AM": "1", "08:30AM": "2", "09:00AM": "9", "09:30AM": "30",
	})
	store.addDay("LOTTO ACTIVO", "15/01/2025", contracts.DayRecord{
		"08:00AM": "1", "08:30AM": "2", "09:00AM": "3",
	})
	engine := newTestEngine(store)

	fused, err := engine.FusedForecast(context.Background(), "LOTTO ACTIVO", "15/01/2025", "01/01/2025", "31/01/2025")
	require.NoError(t, err)

	for _, e := range fused.Entries {
		for _, j := range e.Justifications {
			assert.NotEqual(t, contracts.BonusDoubleSource, j.Kind,
				"outcome %s should not earn the corroboration bonus", e.Outcome)
		}
	}
}

func TestFusedForecastRequiresRange(t *testing.T) {
	engine := newTestEngine(newFakeStore())

	_, err := engine.FusedForecast(context.Background(), "LOTTO ACTIVO", "15/01/2025", "", "")
	var inputErr *contracts.InputError
	require.ErrorAs(t, err, &inputErr)
}

func TestFusedForecastNoSignals(t *testing.T) {
	store := newFakeStore()
	store.addDay("LOTTO ACTIVO", "15/01/2025", contracts.DayRecord{"08:00AM": "1"})
	engine := newTestEngine(store)

	// Reference day too short for every signal; nothing scores.
	_, err := engine.FusedForecast(context.Background(), "LOTTO ACTIVO", "15/01/2025", "01/01/2025", "31/01/2025")
	var noData *contracts.NoDataError
	require.ErrorAs(t, err, &noData)
}

func TestFusedForecastBonusesDoNotCountAsSources(t *testing.T) {
	engine := newTestEngine(fusionFixture())

	fused, err := engine.FusedForecast(context.Background(), "LOTTO ACTIVO", "15/01/2025", "01/01/2025", "31/01/2025")
	require.NoError(t, err)

	for _, e := range fused.Entries {
		distinct := make(map[contracts.SourceKind]struct{})
		for _, j := range e.Justifications {
			if !j.Kind.IsBonus() {
				distinct[j.Kind] = struct{}{}
			}
		}
		assert.Equal(t, len(distinct), e.Sources, "outcome %s", e.Outcome)
	}
}
