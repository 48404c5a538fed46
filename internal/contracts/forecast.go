package contracts

// SourceKind identifies the origin of a score contribution. Bonus kinds never
// count toward an outcome's distinct source count.
type SourceKind string

const (
	SourcePattern         SourceKind = "pattern"
	SourceCrossSeries     SourceKind = "cross_series"
	SourceFrequencyAfter  SourceKind = "frequency_after"
	SourceFrequencyBefore SourceKind = "frequency_before"
	SourceConsecutive     SourceKind = "consecutive"
	BonusFollowUp         SourceKind = "bonus_follow_up"
	BonusDoubleSource     SourceKind = "bonus_double_source"
)

// IsBonus reports whether the kind is a corroboration bonus rather than an
// independent signal.
func (k SourceKind) IsBonus() bool {
	return k == BonusFollowUp || k == BonusDoubleSource
}

// Label returns the human-readable name used in justification trails.
func (k SourceKind) Label() string {
	switch k {
	case SourcePattern:
		return "Patrones Históricos"
	case SourceCrossSeries:
		return "Multiloterías"
	case SourceFrequencyAfter:
		return "Frecuencias (despues)"
	case SourceFrequencyBefore:
		return "Frecuencias (antes)"
	case SourceConsecutive:
		return "Coincidencias Consecutivas"
	case BonusFollowUp:
		return "Bonus Seguimiento"
	case BonusDoubleSource:
		return "Bonus Doble Fuente"
	}
	return string(k)
}

// Justification is one structured score contribution. Source identity is an
// enum, never recovered by parsing the label.
type Justification struct {
	Kind   SourceKind `json:"kind"`
	Label  string     `json:"label"`
	Points int        `json:"points"`
}

// ForecastEntry is one ranked outcome from a single-signal forecast.
type ForecastEntry struct {
	Outcome   string  `json:"outcome"`
	Name      string  `json:"name"`
	Score     float64 `json:"score"`
	Frequency float64 `json:"frequency"`
	Days      int     `json:"days,omitempty"` // distinct candidate days the outcome appeared on
}

// Forecast is a ranked single-signal forecast.
type Forecast struct {
	Method         string          `json:"method"`
	Series         string          `json:"series"`
	ReferenceDate  string          `json:"reference_date"`
	Entries        []ForecastEntry `json:"entries"`
	TotalPatterns  int             `json:"total_patterns"`
	BestSimilarity float64         `json:"best_similarity,omitempty"`
	MaxHits        int             `json:"max_hits,omitempty"`
}

// FusedEntry is one ranked outcome from the multi-signal fusion, with its full
// justification trail.
type FusedEntry struct {
	Outcome        string          `json:"outcome"`
	Name           string          `json:"name"`
	Total          int             `json:"total"`
	Justifications []Justification `json:"justifications"`
	Sources        int             `json:"sources"` // distinct non-bonus source kinds
}

// FusedForecast is the combined multi-signal forecast. Every outcome that
// received at least one point is included.
type FusedForecast struct {
	Series        string       `json:"series"`
	ReferenceDate string       `json:"reference_date"`
	Entries       []FusedEntry `json:"entries"`
}
