package strategy

import (
	"fmt"

	"github.com/quantframe/quantframe/internal/indicator"
	"github.com/quantframe/quantframe/internal/types"
	"github.com/quantframe/quantframe/pkg/errors"
)

// BollingerConfig holds the window and band width of the Bollinger strategy.
type BollingerConfig struct {
	Period int     `yaml:"period" validate:"required,gt=1"`
	StdDev float64 `yaml:"std_dev" validate:"required,gt=0"`
}

// DefaultBollingerConfig returns the conventional 20-day, 2-sigma bands.
func DefaultBollingerConfig() BollingerConfig {
	return BollingerConfig{
		Period: 20,
		StdDev: 2.0,
	}
}

// Bollinger is a mean reversion strategy: it buys when the close recovers
// above the lower band and sells the moment the close touches the upper band.
type Bollinger struct {
	config   BollingerConfig
	prepared bool

	middle    []float64
	upper     []float64
	lower     []float64
	lowerPrev []float64
	width     []float64
	position  []float64
}

// NewBollinger creates the strategy after validating its configuration.
func NewBollinger(config BollingerConfig) (*Bollinger, error) {
	if err := validate.Struct(config); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStrategyConfigError, "invalid bollinger config", err)
	}

	return &Bollinger{config: config}, nil
}

// Name implements Strategy.
func (s *Bollinger) Name() string {
	return "bollinger"
}

// WarmUp implements Strategy.
func (s *Bollinger) WarmUp() int {
	return s.config.Period
}

// Prepare implements Strategy.
func (s *Bollinger) Prepare(bars []types.MarketData) error {
	close := closes(bars)

	s.middle, s.upper, s.lower = indicator.BollingerBands(close, s.config.Period, s.config.StdDev)
	s.lowerPrev = indicator.Shift(s.lower, 1)
	s.width = indicator.BandWidth(s.middle, s.upper, s.lower)
	s.position = indicator.BandPosition(close, s.upper, s.lower)
	s.prepared = true

	return nil
}

// Decide implements Strategy.
func (s *Bollinger) Decide(history History, index int) (types.Signal, error) {
	if err := checkDecide(s.prepared, len(s.middle), history, index); err != nil {
		return types.Signal{}, err
	}

	bar := history.Bar(index)
	if index < s.WarmUp() || index == 0 {
		return types.Hold(bar.Time, s.Name(), ""), nil
	}

	prevBar := history.Bar(index - 1)

	// Recovery through the lower band, on the flip bar only.
	if bar.Close > s.lower[index] && prevBar.Close <= s.lowerPrev[index] {
		return types.Signal{
			Time:   bar.Time,
			Type:   types.SignalTypeBuy,
			Name:   s.Name(),
			Reason: fmt.Sprintf("close %.4f recovered above lower band %.4f", bar.Close, s.lower[index]),
			RawValue: map[string]float64{
				"lower_band":  s.lower[index],
				"band_width":  s.width[index],
				"band_pos":    s.position[index],
				"middle_band": s.middle[index],
			},
		}, nil
	}

	// Touching or exceeding the upper band exits immediately.
	if bar.Close >= s.upper[index] {
		return types.Signal{
			Time:   bar.Time,
			Type:   types.SignalTypeSell,
			Name:   s.Name(),
			Reason: fmt.Sprintf("close %.4f reached upper band %.4f", bar.Close, s.upper[index]),
			RawValue: map[string]float64{
				"upper_band":  s.upper[index],
				"band_width":  s.width[index],
				"band_pos":    s.position[index],
				"middle_band": s.middle[index],
			},
		}, nil
	}

	return types.Hold(bar.Time, s.Name(), ""), nil
}
