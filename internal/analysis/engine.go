package analysis

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/datoactivo/backend/internal/contracts"
)

// Store is the result-store surface the engine needs. Implemented by
// results.Repository; tests substitute an in-memory fake.
type Store interface {
	DayRecord(ctx context.Context, date, series string) (contracts.DayRecord, error)
	DaySet(ctx context.Context, date, series string) (map[string]struct{}, error)
	DistinctDates(ctx context.Context, series, from, to string) ([]string, error)
	RangeSequence(ctx context.Context, series, from, to string) ([]contracts.ResultRow, error)
	RangeSequenceExcluding(ctx context.Context, series, from, to, excludeDate string) ([]contracts.ResultRow, error)
}

const (
	// DefaultMinSimilarity is the threshold applied by the single-signal
	// forecasts when the caller does not supply one.
	DefaultMinSimilarity = 30.0

	// DefaultTopN caps single-signal forecast output.
	DefaultTopN = 10

	// maxCandidates caps every similarity search result.
	maxCandidates = 50
)

// Engine runs the pattern-similarity searches, the signal generators and the
// fusion scorer. Every operation is pure given the store contents.
type Engine struct {
	store Store
	log   zerolog.Logger
}

// NewEngine creates a new analysis engine.
func NewEngine(store Store, log zerolog.Logger) *Engine {
	return &Engine{
		store: store,
		log:   log.With().Str("component", "analysis").Logger(),
	}
}
