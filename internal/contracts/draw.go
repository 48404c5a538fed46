package contracts

// ResultRow is one observed draw result as stored in the result store.
type ResultRow struct {
	Date    string `json:"date"` // dd/mm/yyyy
	Series  string `json:"series"`
	Slot    string `json:"slot"`
	Outcome string `json:"outcome"`
	Name    string `json:"name,omitempty"`
}

// DayRecord is the slot -> outcome mapping observed for one (date, series).
// Built fresh per query; may be partial ("today so far"). Iteration must go
// through OrderedSlots, never raw map order.
type DayRecord map[string]string

// OrderedSlots returns the record's slots sorted by time of day.
func (d DayRecord) OrderedSlots() []string {
	slots := make([]string, 0, len(d))
	for slot := range d {
		slots = append(slots, slot)
	}
	SortSlots(slots)
	return slots
}

// Normalized maps the record's slots onto the coarse 30-minute grid.
// Slots are walked in daily time order so that grid collisions resolve
// deterministically: the later slot wins.
func (d DayRecord) Normalized() DayRecord {
	if len(d) == 0 {
		return DayRecord{}
	}
	norm := make(DayRecord, len(d))
	for _, slot := range d.OrderedSlots() {
		norm[NormalizeSlot(slot)] = d[slot]
	}
	return norm
}

// OutcomeSet returns the set of outcomes drawn on the day, slot identity
// discarded.
func (d DayRecord) OutcomeSet() map[string]struct{} {
	set := make(map[string]struct{}, len(d))
	for _, outcome := range d {
		set[outcome] = struct{}{}
	}
	return set
}
