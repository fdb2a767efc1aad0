// Package strategy defines the trading strategy contract and the built-in
// strategies dispatched through it.
//
// A strategy prepares its indicator columns exactly once over the full price
// series, then answers one decision per simulated bar. Decisions only consult
// indicator values at or before the requested index; the engine enforces the
// boundary by handing Decide a History view truncated at the current bar.
package strategy

import (
	"github.com/go-playground/validator/v10"
	"github.com/quantframe/quantframe/internal/types"
	"github.com/quantframe/quantframe/pkg/errors"
)

var validate = validator.New()

// History is a read-only view of the bars visible at decision time. It never
// extends past the bar being decided, so a strategy cannot read ahead even by
// accident.
type History struct {
	bars []types.MarketData
}

// NewHistory wraps the bars visible through the current index.
func NewHistory(bars []types.MarketData) History {
	return History{bars: bars}
}

// Len returns the number of visible bars.
func (h History) Len() int {
	return len(h.bars)
}

// Bar returns the bar at index i.
func (h History) Bar(i int) types.MarketData {
	return h.bars[i]
}

// Last returns the most recent visible bar, the one being decided.
func (h History) Last() types.MarketData {
	return h.bars[len(h.bars)-1]
}

// Strategy is the capability set every trading strategy implements.
type Strategy interface {
	// Name returns the registry key of the strategy.
	Name() string
	// WarmUp returns the number of leading bars for which Decide always
	// returns a hold signal because its indicators are still undefined.
	WarmUp() int
	// Prepare computes the indicator series over the entire price history.
	// It runs exactly once, before the first simulated bar. Computing over
	// the full series is sound because each indicator value is a function of
	// prices up to its own index only, and Decide never consults values past
	// the current index.
	Prepare(bars []types.MarketData) error
	// Decide maps the visible history and the current bar index to a signal.
	// It is a pure function of the prepared series and the index.
	Decide(history History, index int) (types.Signal, error)
}

// checkDecide validates the shared Decide preconditions.
func checkDecide(prepared bool, seriesLen int, history History, index int) error {
	if !prepared {
		return errors.New(errors.ErrCodeStrategyNotPrepared, "strategy has not been prepared")
	}

	if index < 0 || index >= seriesLen || index >= history.Len() {
		return errors.Newf(errors.ErrCodeIndexOutOfRange, "decision index %d out of range (history %d, prepared %d)", index, history.Len(), seriesLen)
	}

	return nil
}

func closes(bars []types.MarketData) []float64 {
	out := make([]float64, len(bars))
	for i, bar := range bars {
		out[i] = bar.Close
	}

	return out
}

func highs(bars []types.MarketData) []float64 {
	out := make([]float64, len(bars))
	for i, bar := range bars {
		out[i] = bar.High
	}

	return out
}

func lows(bars []types.MarketData) []float64 {
	out := make([]float64, len(bars))
	for i, bar := range bars {
		out[i] = bar.Low
	}

	return out
}
