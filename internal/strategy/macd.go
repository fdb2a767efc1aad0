package strategy

import (
	"fmt"

	"github.com/quantframe/quantframe/internal/indicator"
	"github.com/quantframe/quantframe/internal/types"
	"github.com/quantframe/quantframe/pkg/errors"
)

// MACDConfig holds the EMA spans of the MACD strategy.
type MACDConfig struct {
	FastPeriod   int `yaml:"fast_period" validate:"required,gt=0"`
	SlowPeriod   int `yaml:"slow_period" validate:"required,gtfield=FastPeriod"`
	SignalPeriod int `yaml:"signal_period" validate:"required,gt=0"`
}

// DefaultMACDConfig returns the conventional 12/26/9 parameterization.
func DefaultMACDConfig() MACDConfig {
	return MACDConfig{
		FastPeriod:   12,
		SlowPeriod:   26,
		SignalPeriod: 9,
	}
}

// MACDStrategy buys when the MACD line crosses above its signal line with a
// positive histogram and sells when it crosses below.
type MACDStrategy struct {
	config   MACDConfig
	prepared bool

	macd       []float64
	signal     []float64
	histogram  []float64
	macdPrev   []float64
	signalPrev []float64
}

// NewMACD creates the strategy after validating its configuration.
func NewMACD(config MACDConfig) (*MACDStrategy, error) {
	if err := validate.Struct(config); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStrategyConfigError, "invalid macd config", err)
	}

	return &MACDStrategy{config: config}, nil
}

// Name implements Strategy.
func (s *MACDStrategy) Name() string {
	return "macd"
}

// WarmUp implements Strategy.
// The EMAs are defined from the first bar, but their values are unstable
// until the slow span plus the signal span have passed.
func (s *MACDStrategy) WarmUp() int {
	return s.config.SlowPeriod + s.config.SignalPeriod
}

// Prepare implements Strategy.
func (s *MACDStrategy) Prepare(bars []types.MarketData) error {
	close := closes(bars)

	s.macd, s.signal, s.histogram = indicator.MACD(close, s.config.FastPeriod, s.config.SlowPeriod, s.config.SignalPeriod)
	s.macdPrev = indicator.Shift(s.macd, 1)
	s.signalPrev = indicator.Shift(s.signal, 1)
	s.prepared = true

	return nil
}

// Decide implements Strategy.
func (s *MACDStrategy) Decide(history History, index int) (types.Signal, error) {
	if err := checkDecide(s.prepared, len(s.macd), history, index); err != nil {
		return types.Signal{}, err
	}

	bar := history.Bar(index)
	if index < s.WarmUp() {
		return types.Hold(bar.Time, s.Name(), ""), nil
	}

	macd, signal, histogram := s.macd[index], s.signal[index], s.histogram[index]

	if macd > signal && s.macdPrev[index] <= s.signalPrev[index] && histogram > 0 {
		return types.Signal{
			Time:   bar.Time,
			Type:   types.SignalTypeBuy,
			Name:   s.Name(),
			Reason: fmt.Sprintf("MACD %.4f crossed above signal %.4f with positive histogram", macd, signal),
			RawValue: map[string]float64{
				"macd":      macd,
				"signal":    signal,
				"histogram": histogram,
			},
		}, nil
	}

	if macd < signal && s.macdPrev[index] >= s.signalPrev[index] {
		return types.Signal{
			Time:   bar.Time,
			Type:   types.SignalTypeSell,
			Name:   s.Name(),
			Reason: fmt.Sprintf("MACD %.4f crossed below signal %.4f", macd, signal),
			RawValue: map[string]float64{
				"macd":      macd,
				"signal":    signal,
				"histogram": histogram,
			},
		}, nil
	}

	return types.Hold(bar.Time, s.Name(), ""), nil
}
