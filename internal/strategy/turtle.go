package strategy

import (
	"fmt"

	"github.com/quantframe/quantframe/internal/indicator"
	"github.com/quantframe/quantframe/internal/types"
	"github.com/quantframe/quantframe/pkg/errors"
)

// TurtleConfig holds the channel windows of the simplified turtle system.
type TurtleConfig struct {
	EntryWindow int `yaml:"entry_window" validate:"required,gt=0"`
	ExitWindow  int `yaml:"exit_window" validate:"required,gt=0"`
	ATRPeriod   int `yaml:"atr_period" validate:"required,gt=0"`
}

// DefaultTurtleConfig returns the conventional 20/10/20 parameterization.
func DefaultTurtleConfig() TurtleConfig {
	return TurtleConfig{
		EntryWindow: 20,
		ExitWindow:  10,
		ATRPeriod:   20,
	}
}

// Turtle is a Donchian channel breakout system: it buys when the close breaks
// above the previous entry-window high and sells when the close falls below
// the previous exit-window low. Both checks use the channel value of the
// prior bar so the breakout bar itself does not move its own channel.
type Turtle struct {
	config   TurtleConfig
	prepared bool

	upperPrev     []float64
	exitLowerPrev []float64
	atr           []float64
}

// NewTurtle creates the strategy after validating its configuration.
func NewTurtle(config TurtleConfig) (*Turtle, error) {
	if err := validate.Struct(config); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStrategyConfigError, "invalid turtle config", err)
	}

	return &Turtle{config: config}, nil
}

// Name implements Strategy.
func (s *Turtle) Name() string {
	return "turtle"
}

// WarmUp implements Strategy.
func (s *Turtle) WarmUp() int {
	return s.config.EntryWindow
}

// Prepare implements Strategy.
func (s *Turtle) Prepare(bars []types.MarketData) error {
	high := highs(bars)
	low := lows(bars)
	close := closes(bars)

	s.upperPrev = indicator.Shift(indicator.RollingMax(high, s.config.EntryWindow), 1)
	s.exitLowerPrev = indicator.Shift(indicator.RollingMin(low, s.config.ExitWindow), 1)
	// ATR is prepared alongside the channels for position sizing extensions.
	s.atr = indicator.ATR(high, low, close, s.config.ATRPeriod)
	s.prepared = true

	return nil
}

// ATRAt returns the prepared average true range at index.
func (s *Turtle) ATRAt(index int) float64 {
	return s.atr[index]
}

// Decide implements Strategy.
func (s *Turtle) Decide(history History, index int) (types.Signal, error) {
	if err := checkDecide(s.prepared, len(s.upperPrev), history, index); err != nil {
		return types.Signal{}, err
	}

	bar := history.Bar(index)
	if index < s.WarmUp() || index == 0 {
		return types.Hold(bar.Time, s.Name(), ""), nil
	}

	prevBar := history.Bar(index - 1)
	upper := s.upperPrev[index]
	exitLower := s.exitLowerPrev[index]

	// Breakout above the entry channel, on the flip bar only.
	if bar.Close > upper && prevBar.Close <= s.upperPrev[index-1] {
		return types.Signal{
			Time:   bar.Time,
			Type:   types.SignalTypeBuy,
			Name:   s.Name(),
			Reason: fmt.Sprintf("close %.4f broke above %d-day high %.4f", bar.Close, s.config.EntryWindow, upper),
			RawValue: map[string]float64{
				"upper_band": upper,
				"atr":        s.atr[index],
			},
		}, nil
	}

	// Breakdown below the exit channel.
	if bar.Close < exitLower && prevBar.Close >= s.exitLowerPrev[index-1] {
		return types.Signal{
			Time:   bar.Time,
			Type:   types.SignalTypeSell,
			Name:   s.Name(),
			Reason: fmt.Sprintf("close %.4f fell below %d-day low %.4f", bar.Close, s.config.ExitWindow, exitLower),
			RawValue: map[string]float64{
				"exit_lower": exitLower,
				"atr":        s.atr[index],
			},
		}, nil
	}

	return types.Hold(bar.Time, s.Name(), ""), nil
}
