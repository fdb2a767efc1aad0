package strategy

import (
	"fmt"

	"github.com/quantframe/quantframe/internal/indicator"
	"github.com/quantframe/quantframe/internal/types"
	"github.com/quantframe/quantframe/pkg/errors"
)

// DoubleMAConfig holds the window lengths of the dual moving average strategy.
type DoubleMAConfig struct {
	ShortWindow int `yaml:"short_window" validate:"required,gt=0"`
	LongWindow  int `yaml:"long_window" validate:"required,gtfield=ShortWindow"`
}

// DefaultDoubleMAConfig returns the conventional 5/20 day parameterization.
func DefaultDoubleMAConfig() DoubleMAConfig {
	return DoubleMAConfig{
		ShortWindow: 5,
		LongWindow:  20,
	}
}

// DoubleMA buys when the short moving average crosses above the long one and
// sells on the opposite cross. A cross fires only on the bar where the
// relation flips, never while the averages stay on the same side.
type DoubleMA struct {
	config   DoubleMAConfig
	prepared bool

	maShort     []float64
	maLong      []float64
	maShortPrev []float64
	maLongPrev  []float64
}

// NewDoubleMA creates the strategy after validating its configuration.
func NewDoubleMA(config DoubleMAConfig) (*DoubleMA, error) {
	if err := validate.Struct(config); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStrategyConfigError, "invalid double_ma config", err)
	}

	return &DoubleMA{config: config}, nil
}

// Name implements Strategy.
func (s *DoubleMA) Name() string {
	return "double_ma"
}

// WarmUp implements Strategy.
func (s *DoubleMA) WarmUp() int {
	return s.config.LongWindow
}

// Prepare implements Strategy.
func (s *DoubleMA) Prepare(bars []types.MarketData) error {
	close := closes(bars)

	s.maShort = indicator.SMA(close, s.config.ShortWindow)
	s.maLong = indicator.SMA(close, s.config.LongWindow)
	s.maShortPrev = indicator.Shift(s.maShort, 1)
	s.maLongPrev = indicator.Shift(s.maLong, 1)
	s.prepared = true

	return nil
}

// Decide implements Strategy.
func (s *DoubleMA) Decide(history History, index int) (types.Signal, error) {
	if err := checkDecide(s.prepared, len(s.maShort), history, index); err != nil {
		return types.Signal{}, err
	}

	bar := history.Bar(index)
	if index < s.WarmUp() {
		return types.Hold(bar.Time, s.Name(), ""), nil
	}

	short, long := s.maShort[index], s.maLong[index]
	shortPrev, longPrev := s.maShortPrev[index], s.maLongPrev[index]

	// Golden cross: short average moves above the long average.
	if short > long && shortPrev <= longPrev {
		return types.Signal{
			Time:   bar.Time,
			Type:   types.SignalTypeBuy,
			Name:   s.Name(),
			Reason: fmt.Sprintf("short MA %.4f crossed above long MA %.4f", short, long),
			RawValue: map[string]float64{
				"ma_short": short,
				"ma_long":  long,
			},
		}, nil
	}

	// Death cross: short average moves below the long average.
	if short < long && shortPrev >= longPrev {
		return types.Signal{
			Time:   bar.Time,
			Type:   types.SignalTypeSell,
			Name:   s.Name(),
			Reason: fmt.Sprintf("short MA %.4f crossed below long MA %.4f", short, long),
			RawValue: map[string]float64{
				"ma_short": short,
				"ma_long":  long,
			},
		}, nil
	}

	return types.Hold(bar.Time, s.Name(), ""), nil
}
