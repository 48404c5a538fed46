package contracts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlotMinutes(t *testing.T) {
	tests := []struct {
		slot string
		want int
	}{
		{"08:00AM", 480},
		{"08:30AM", 510},
		{"12:00PM", 720},
		{"12:30PM", 750},
		{"01:00PM", 780},
		{"07:00PM", 1140},
		{"12:15AM", 15},
		{"garbage", 0},
		{"", 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, SlotMinutes(tt.slot), "slot %q", tt.slot)
	}
}

func TestSortSlots(t *testing.T) {
	slots := []string{"01:00PM", "08:00AM", "12:30PM", "09:00AM", "12:00PM"}
	SortSlots(slots)
	assert.Equal(t, []string{"08:00AM", "09:00AM", "12:00PM", "12:30PM", "01:00PM"}, slots)
}

func TestScheduleIsInDayOrder(t *testing.T) {
	for i := 1; i < len(Schedule); i++ {
		assert.Less(t, SlotMinutes(Schedule[i-1]), SlotMinutes(Schedule[i]),
			"%s should come before %s", Schedule[i-1], Schedule[i])
	}
}

func TestNormalizeSlot(t *testing.T) {
	tests := []struct {
		slot string
		want string
	}{
		{"08:10AM", "08:00AM"},
		{"08:40AM", "08:30AM"},
		{"08:30AM", "08:00AM"},
		{"08:00AM", "08:00AM"},
		{"01:00PM", "01:00PM"},
		{"1:00PM", "01:00PM"},
		// Normalization is applied once, never chained: :40 lands on :30
		// and stays there.
		{"12:40PM", "12:30PM"},
		{"", ""},
		{"garbage", "garbage"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeSlot(tt.slot), "slot %q", tt.slot)
	}
}

func TestDateConversions(t *testing.T) {
	assert.Equal(t, "2025-01-15", DateToISO("15/01/2025"))
	assert.Equal(t, "15/01/2025", ISOToDate("2025-01-15"))

	// Unparseable input passes through unchanged.
	assert.Equal(t, "not-a-date", DateToISO("not-a-date"))
	assert.Equal(t, "not a date", ISOToDate("not a date"))
}

func TestValidDisplayDate(t *testing.T) {
	assert.True(t, ValidDisplayDate("15/01/2025"))
	assert.True(t, ValidDisplayDate("29/02/2024"))
	assert.False(t, ValidDisplayDate("2025-01-15"))
	assert.False(t, ValidDisplayDate("32/01/2025"))
	assert.False(t, ValidDisplayDate("29/02/2025"))
	assert.False(t, ValidDisplayDate(""))
}

func TestOutcomeName(t *testing.T) {
	assert.Equal(t, "DELFIN", OutcomeName("0"))
	assert.Equal(t, "BALLENA", OutcomeName("00"))
	assert.Equal(t, "GUACHARO", OutcomeName("75"))
	assert.Equal(t, "DESCONOCIDO", OutcomeName("99"))
}

func TestKnownOutcome(t *testing.T) {
	assert.True(t, KnownOutcome("0"))
	assert.True(t, KnownOutcome("00"))
	assert.True(t, KnownOutcome("75"))
	assert.False(t, KnownOutcome("76"))
	assert.False(t, KnownOutcome(""))
	assert.Len(t, Outcomes, 77)
}
