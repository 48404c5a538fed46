package contracts

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// SlotMinutes converts a slot label like "08:30AM" to minutes since midnight.
// Malformed labels sort first (0), matching the tolerant boundary contract.
func SlotMinutes(slot string) int {
	if len(slot) < 3 {
		return 0
	}
	period := slot[len(slot)-2:]
	parts := strings.Split(slot[:len(slot)-2], ":")
	if len(parts) != 2 {
		return 0
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0
	}
	if period == "PM" && hour != 12 {
		hour += 12
	} else if period == "AM" && hour == 12 {
		hour = 0
	}
	return hour*60 + minutes
}

// SortSlots sorts slot labels in place by time of day.
// Slot ordering is total and stable regardless of lexical form.
func SortSlots(slots []string) {
	sort.SliceStable(slots, func(i, j int) bool {
		return SlotMinutes(slots[i]) < SlotMinutes(slots[j])
	})
}

// NormalizeSlot maps a slot label onto the coarse 30-minute grid used for
// cross-series comparison: :10 -> :00, :40 -> :30, :30 -> :00. The mapping is
// lossy and never reversed; normalized labels are only compared to other
// normalized labels.
func NormalizeSlot(slot string) string {
	if slot == "" {
		return slot
	}
	if len(slot) < 3 {
		return slot
	}
	period := slot[len(slot)-2:]
	parts := strings.Split(slot[:len(slot)-2], ":")
	if len(parts) != 2 {
		return slot
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return slot
	}
	minutes := parts[1]
	switch minutes {
	case "10":
		minutes = "00"
	case "40":
		minutes = "30"
	case "30":
		minutes = "00"
	}
	return fmt.Sprintf("%02d:%s%s", hour, minutes, period)
}

const (
	// DisplayDateLayout is the calendar date form used at every boundary.
	DisplayDateLayout = "02/01/2006"
	// ISODateLayout is the sortable internal form.
	ISODateLayout = "2006-01-02"
)

// DateToISO converts dd/mm/yyyy to yyyy-mm-dd. Unparseable input is returned
// unchanged so downstream queries simply match nothing.
func DateToISO(date string) string {
	parts := strings.Split(date, "/")
	if len(parts) != 3 {
		return date
	}
	return fmt.Sprintf("%s-%s-%s", parts[2], parts[1], parts[0])
}

// ISOToDate converts yyyy-mm-dd back to dd/mm/yyyy.
func ISOToDate(iso string) string {
	parts := strings.Split(iso, "-")
	if len(parts) != 3 {
		return iso
	}
	return fmt.Sprintf("%s/%s/%s", parts[2], parts[1], parts[0])
}

// ValidDisplayDate reports whether date is a real calendar date in dd/mm/yyyy.
func ValidDisplayDate(date string) bool {
	_, err := time.Parse(DisplayDateLayout, date)
	return err == nil
}
