package contracts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDayRecordOrderedSlots(t *testing.T) {
	record := DayRecord{
		"01:00PM": "5",
		"08:00AM": "1",
		"12:30PM": "3",
	}
	assert.Equal(t, []string{"08:00AM", "12:30PM", "01:00PM"}, record.OrderedSlots())
	assert.Empty(t, DayRecord{}.OrderedSlots())
}

func TestDayRecordNormalized(t *testing.T) {
	record := DayRecord{
		"08:00AM": "1",
		"09:40AM": "7",
		"01:00PM": "5",
	}
	norm := record.Normalized()
	assert.Equal(t, DayRecord{
		"08:00AM": "1",
		"09:30AM": "7",
		"01:00PM": "5",
	}, norm)

	// Source record untouched.
	assert.Equal(t, "7", record["09:40AM"])
}

func TestDayRecordNormalizedCollision(t *testing.T) {
	// 08:10 and 08:00 both land on 08:00; the later slot wins.
	record := DayRecord{
		"08:00AM": "1",
		"08:10AM": "2",
	}
	norm := record.Normalized()
	assert.Equal(t, DayRecord{"08:00AM": "2"}, norm)
}

func TestDayRecordOutcomeSet(t *testing.T) {
	record := DayRecord{
		"08:00AM": "1",
		"09:00AM": "2",
		"10:00AM": "1",
	}
	set := record.OutcomeSet()
	assert.Len(t, set, 2)
	assert.Contains(t, set, "1")
	assert.Contains(t, set, "2")
}
