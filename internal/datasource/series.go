// Package datasource loads and validates the price series a backtest runs on.
package datasource

import (
	"math"
	"time"

	"github.com/moznion/go-optional"

	"github.com/quantframe/quantframe/internal/types"
	"github.com/quantframe/quantframe/pkg/errors"
)

// Series is a validated, chronologically ordered price series for one symbol.
// Construction is the only place bar data is checked; everything downstream
// can assume the series is well formed.
type Series struct {
	symbol string
	bars   []types.MarketData
}

// NewSeries validates bars and wraps them into a Series. The bars must be
// non-empty, strictly increasing in time and carry a positive close price.
func NewSeries(symbol string, bars []types.MarketData) (*Series, error) {
	if len(bars) == 0 {
		return nil, errors.Newf(errors.ErrCodeEmptyPriceSeries, "price series for %q is empty", symbol)
	}

	for i, bar := range bars {
		if i > 0 && !bar.Time.After(bars[i-1].Time) {
			return nil, errors.Newf(errors.ErrCodeUnorderedPriceSeries,
				"bar %d (%s) is not after bar %d (%s)",
				i, bar.Time.Format(time.DateOnly), i-1, bars[i-1].Time.Format(time.DateOnly))
		}

		if bar.Close <= 0 || math.IsNaN(bar.Close) {
			return nil, errors.Newf(errors.ErrCodeMissingClosePrice,
				"bar %d (%s) has no usable close price: %f", i, bar.Time.Format(time.DateOnly), bar.Close)
		}
	}

	copied := make([]types.MarketData, len(bars))
	copy(copied, bars)

	return &Series{symbol: symbol, bars: copied}, nil
}

// Symbol returns the instrument symbol of the series.
func (s *Series) Symbol() string {
	return s.symbol
}

// Len returns the number of bars.
func (s *Series) Len() int {
	return len(s.bars)
}

// Bars returns the underlying bars. Callers must treat the slice as read-only.
func (s *Series) Bars() []types.MarketData {
	return s.bars
}

// Between returns the sub-series inside the inclusive [start, end] window.
// A missing bound leaves that side open. An empty window is an error.
func (s *Series) Between(start, end optional.Option[time.Time]) (*Series, error) {
	lo, hi := 0, len(s.bars)

	if start.IsSome() {
		from := start.Unwrap()
		for lo < hi && s.bars[lo].Time.Before(from) {
			lo++
		}
	}

	if end.IsSome() {
		until := end.Unwrap()
		for hi > lo && s.bars[hi-1].Time.After(until) {
			hi--
		}
	}

	if lo == hi {
		return nil, errors.Newf(errors.ErrCodeEmptyPriceSeries, "no bars for %q in the requested window", s.symbol)
	}

	return &Series{symbol: s.symbol, bars: s.bars[lo:hi]}, nil
}
