package contracts

// SlotOutcome is one (slot, outcome) pair from a candidate day's continuation.
type SlotOutcome struct {
	Slot    string `json:"slot"`
	Outcome string `json:"outcome"`
	Name    string `json:"name"`
}

// MatchCandidate is a historical day scored against a reference pattern.
// Only produced when at least one slot was compared.
type MatchCandidate struct {
	Date       string        `json:"date"`
	Similarity float64       `json:"similarity"` // percent, one decimal
	Hits       int           `json:"hits"`       // exact-match count
	Compared   int           `json:"compared"`
	Futures    []SlotOutcome `json:"futures"` // slots beyond the reference pattern, in daily time order
}

// PatternSearch is the result of a same-series similarity search.
type PatternSearch struct {
	Series         string           `json:"series"`
	ReferenceDate  string           `json:"reference_date"`
	Reference      DayRecord        `json:"reference"`
	ReferenceSlots []string         `json:"reference_slots"`
	Candidates     []MatchCandidate `json:"candidates"`
	TotalAnalyzed  int              `json:"total_analyzed"`
}

// SetCandidate is a historical day scored by outcome-set overlap, slot
// identity ignored. Similarity is relative to the reference set size.
type SetCandidate struct {
	Date       string   `json:"date"`
	Similarity float64  `json:"similarity"`
	Hits       int      `json:"hits"`
	RefCount   int      `json:"ref_count"`
	DayCount   int      `json:"day_count"`
	Futures    []string `json:"futures"` // outcomes seen on the day but not on the reference day
}

// SetSearch is the result of an outcome-set similarity search.
type SetSearch struct {
	Series        string         `json:"series"`
	ReferenceDate string         `json:"reference_date"`
	Reference     []string       `json:"reference"`
	Candidates    []SetCandidate `json:"candidates"`
	TotalAnalyzed int            `json:"total_analyzed"`
}

// CrossCandidate is a day from a different series scored on the normalized
// time grid. Futures keep the candidate's native slot labels.
type CrossCandidate struct {
	Series     string        `json:"series"`
	Date       string        `json:"date"`
	Similarity float64       `json:"similarity"`
	Hits       int           `json:"hits"`
	Compared   int           `json:"compared"`
	Futures    []SlotOutcome `json:"futures"`
}

// CrossSearch is the result of a cross-series similarity search.
type CrossSearch struct {
	ReferenceSeries string           `json:"reference_series"`
	ReferenceDate   string           `json:"reference_date"`
	Reference       DayRecord        `json:"reference"`
	ReferenceSlots  []string         `json:"reference_slots"`
	Candidates      []CrossCandidate `json:"candidates"`
}

// PairMatch records a day on which a reference consecutive pair recurred.
type PairMatch struct {
	Date       string `json:"date"`
	FirstSlot  string `json:"first_slot"`
	SecondSlot string `json:"second_slot"`
	Position   int    `json:"position"`
	DayTotal   int    `json:"day_total"`
}

// PairSearch is the result of a consecutive-pair recurrence search.
type PairSearch struct {
	First      string      `json:"first"`
	Second     string      `json:"second"`
	FirstName  string      `json:"first_name"`
	SecondName string      `json:"second_name"`
	Matches    []PairMatch `json:"matches"`
}

// TransitionTables holds immediate-follower and immediate-predecessor counts
// per outcome across a date range.
type TransitionTables struct {
	After     map[string]map[string]int `json:"after"`
	Before    map[string]map[string]int `json:"before"`
	TotalDays int                       `json:"total_days"`
}

// FollowerCount is one (outcome, count) entry from a transition table.
type FollowerCount struct {
	Outcome string `json:"outcome"`
	Name    string `json:"name"`
	Count   int    `json:"count"`
}
