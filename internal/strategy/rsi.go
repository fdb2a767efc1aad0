package strategy

import (
	"fmt"

	"github.com/quantframe/quantframe/internal/indicator"
	"github.com/quantframe/quantframe/internal/types"
	"github.com/quantframe/quantframe/pkg/errors"
)

// RSIConfig holds the period and thresholds of the RSI reversal strategy.
type RSIConfig struct {
	Period     int     `yaml:"period" validate:"required,gt=0"`
	Oversold   float64 `yaml:"oversold" validate:"required,gt=0"`
	Overbought float64 `yaml:"overbought" validate:"required,gtfield=Oversold,lt=100"`
}

// DefaultRSIConfig returns the conventional 14/30/70 parameterization.
func DefaultRSIConfig() RSIConfig {
	return RSIConfig{
		Period:     14,
		Oversold:   30,
		Overbought: 70,
	}
}

// RSIStrategy buys when the oscillator climbs out of the oversold zone and
// sells when it drops out of the overbought zone.
type RSIStrategy struct {
	config   RSIConfig
	prepared bool

	rsi     []float64
	rsiPrev []float64
}

// NewRSI creates the strategy after validating its configuration.
func NewRSI(config RSIConfig) (*RSIStrategy, error) {
	if err := validate.Struct(config); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStrategyConfigError, "invalid rsi config", err)
	}

	return &RSIStrategy{config: config}, nil
}

// Name implements Strategy.
func (s *RSIStrategy) Name() string {
	return "rsi"
}

// WarmUp implements Strategy.
// The oscillator is defined from index Period, and the crossing check needs
// one defined previous value on top of that.
func (s *RSIStrategy) WarmUp() int {
	return s.config.Period + 1
}

// Prepare implements Strategy.
func (s *RSIStrategy) Prepare(bars []types.MarketData) error {
	s.rsi = indicator.RSI(closes(bars), s.config.Period)
	s.rsiPrev = indicator.Shift(s.rsi, 1)
	s.prepared = true

	return nil
}

// Decide implements Strategy.
func (s *RSIStrategy) Decide(history History, index int) (types.Signal, error) {
	if err := checkDecide(s.prepared, len(s.rsi), history, index); err != nil {
		return types.Signal{}, err
	}

	bar := history.Bar(index)
	if index < s.WarmUp() {
		return types.Hold(bar.Time, s.Name(), ""), nil
	}

	rsi, rsiPrev := s.rsi[index], s.rsiPrev[index]

	if rsi > s.config.Oversold && rsiPrev <= s.config.Oversold {
		return types.Signal{
			Time:   bar.Time,
			Type:   types.SignalTypeBuy,
			Name:   s.Name(),
			Reason: fmt.Sprintf("RSI %.2f recovered above oversold threshold %.0f", rsi, s.config.Oversold),
			RawValue: map[string]float64{
				"rsi": rsi,
			},
		}, nil
	}

	if rsi < s.config.Overbought && rsiPrev >= s.config.Overbought {
		return types.Signal{
			Time:   bar.Time,
			Type:   types.SignalTypeSell,
			Name:   s.Name(),
			Reason: fmt.Sprintf("RSI %.2f fell below overbought threshold %.0f", rsi, s.config.Overbought),
			RawValue: map[string]float64{
				"rsi": rsi,
			},
		}, nil
	}

	return types.Hold(bar.Time, s.Name(), ""), nil
}
