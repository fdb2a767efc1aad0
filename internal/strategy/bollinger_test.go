package strategy

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/quantframe/quantframe/internal/types"
)

type BollingerTestSuite struct {
	suite.Suite
}

func TestBollingerSuite(t *testing.T) {
	suite.Run(t, new(BollingerTestSuite))
}

func (suite *BollingerTestSuite) TestConfigValidation() {
	_, err := NewBollinger(BollingerConfig{Period: 1, StdDev: 2})
	suite.Error(err)

	_, err = NewBollinger(BollingerConfig{Period: 20, StdDev: 0})
	suite.Error(err)

	s, err := NewBollinger(DefaultBollingerConfig())
	suite.NoError(err)
	suite.Equal(20, s.WarmUp())
}

func (suite *BollingerTestSuite) TestBuyOnLowerBandRecovery() {
	// The dip to 4 sits below the 1-sigma lower band (8 - 3.4641 = 4.5359);
	// the bounce back to 10 crosses up through it.
	bars := barsFromCloses(10, 10, 10, 4, 10)

	s, err := NewBollinger(BollingerConfig{Period: 3, StdDev: 1})
	suite.Require().NoError(err)
	suite.Require().NoError(s.Prepare(bars))

	signals, err := decideAll(s, bars)
	suite.Require().NoError(err)

	for i := 0; i < 4; i++ {
		suite.Equal(types.SignalTypeHold, signals[i].Type, "index %d", i)
	}

	suite.Equal(types.SignalTypeBuy, signals[4].Type)
	suite.InDelta(4.5359, signals[4].RawValue["lower_band"], 1e-4)
}

func (suite *BollingerTestSuite) TestSellOnUpperBandTouch() {
	// At index 3 the band is 11.6667 +/- 2.0817 and the 14 close clears the top.
	bars := barsFromCloses(10, 11, 10, 14)

	s, err := NewBollinger(BollingerConfig{Period: 3, StdDev: 1})
	suite.Require().NoError(err)
	suite.Require().NoError(s.Prepare(bars))

	signals, err := decideAll(s, bars)
	suite.Require().NoError(err)

	suite.Equal(types.SignalTypeHold, signals[2].Type)
	suite.Equal(types.SignalTypeSell, signals[3].Type)
	suite.InDelta(13.7484, signals[3].RawValue["upper_band"], 1e-4)
}

func (suite *BollingerTestSuite) TestQuietDriftInsideBandsHolds() {
	// Small oscillation around 50 keeps the close strictly inside 2-sigma bands.
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 50 + 0.1*float64(i%2)
	}

	bars := barsFromCloses(closes...)

	s, err := NewBollinger(BollingerConfig{Period: 4, StdDev: 2})
	suite.Require().NoError(err)
	suite.Require().NoError(s.Prepare(bars))

	signals, err := decideAll(s, bars)
	suite.Require().NoError(err)

	for i, sig := range signals {
		suite.Equal(types.SignalTypeHold, sig.Type, "index %d", i)
	}
}
