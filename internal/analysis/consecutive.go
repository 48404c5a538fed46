package analysis

import (
	"context"
	"fmt"

	"github.com/datoactivo/backend/internal/contracts"
)

// SearchConsecutivePairs finds every day in the range on which the given pair
// of outcomes fell in two adjacent slots, in that exact order. Only the first
// occurrence per day is recorded.
func (e *Engine) SearchConsecutivePairs(ctx context.Context, series, first, second, from, to string) (*contracts.PairSearch, error) {
	if !contracts.KnownOutcome(first) || !contracts.KnownOutcome(second) {
		return nil, contracts.NewInputError("unknown outcome in pair")
	}

	rows, err := e.store.RangeSequence(ctx, series, from, to)
	if err != nil {
		return nil, fmt.Errorf("load range: %w", err)
	}
	if len(rows) == 0 {
		return nil, contracts.NewNoDataError("no results in range")
	}

	perDay, dates := groupByDay(rows)

	var matches []contracts.PairMatch
	for _, date := range dates {
		day := perDay[date]
		for i := 0; i+1 < len(day); i++ {
			if day[i].Outcome != first || day[i+1].Outcome != second {
				continue
			}
			matches = append(matches, contracts.PairMatch{
				Date:       date,
				FirstSlot:  day[i].Slot,
				SecondSlot: day[i+1].Slot,
				Position:   i + 1,
				DayTotal:   len(day),
			})
			break
		}
	}

	return &contracts.PairSearch{
		First:      first,
		Second:     second,
		FirstName:  contracts.OutcomeName(first),
		SecondName: contracts.OutcomeName(second),
		Matches:    matches,
	}, nil
}
