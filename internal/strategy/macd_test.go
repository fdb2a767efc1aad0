package strategy

import (
	"testing"

	"github.com/quantframe/quantframe/internal/types"
	"github.com/stretchr/testify/suite"
)

type MACDStrategyTestSuite struct {
	suite.Suite
}

func TestMACDStrategySuite(t *testing.T) {
	suite.Run(t, new(MACDStrategyTestSuite))
}

func (suite *MACDStrategyTestSuite) TestConfigValidation() {
	_, err := NewMACD(MACDConfig{FastPeriod: 26, SlowPeriod: 12, SignalPeriod: 9})
	suite.Error(err, "slow period must exceed fast period")

	_, err = NewMACD(MACDConfig{FastPeriod: 12, SlowPeriod: 26, SignalPeriod: 0})
	suite.Error(err)
}

func (suite *MACDStrategyTestSuite) TestBuyOnBullishCross() {
	// Ten flat bars keep MACD and signal pinned at zero, then a rally pushes
	// the MACD line above its signal line on the first rising bar.
	closes := make([]float64, 20)
	for i := range closes {
		if i < 10 {
			closes[i] = 10
		} else {
			closes[i] = 10 + float64(i-9)
		}
	}

	bars := barsFromCloses(closes...)

	s, err := NewMACD(MACDConfig{FastPeriod: 3, SlowPeriod: 5, SignalPeriod: 3})
	suite.Require().NoError(err)
	suite.Require().NoError(s.Prepare(bars))

	signals, err := decideAll(s, bars)
	suite.Require().NoError(err)

	suite.Equal(types.SignalTypeBuy, signals[10].Type)
	suite.Equal(types.SignalTypeHold, signals[11].Type, "no refire while MACD stays above signal")
}

func (suite *MACDStrategyTestSuite) TestSellAfterTrendReversal() {
	// Rally then collapse: the MACD line must cross back below its signal
	// line somewhere in the falling leg.
	closes := make([]float64, 30)
	for i := range closes {
		switch {
		case i < 10:
			closes[i] = 10
		case i < 18:
			closes[i] = 10 + float64(i-9)
		default:
			closes[i] = 18 - float64(i-17)
		}
	}

	bars := barsFromCloses(closes...)

	s, err := NewMACD(MACDConfig{FastPeriod: 3, SlowPeriod: 5, SignalPeriod: 3})
	suite.Require().NoError(err)
	suite.Require().NoError(s.Prepare(bars))

	signals, err := decideAll(s, bars)
	suite.Require().NoError(err)

	sawBuy, sawSellAfterBuy := false, false

	for _, sig := range signals {
		if sig.Type == types.SignalTypeBuy {
			sawBuy = true
		}

		if sawBuy && sig.Type == types.SignalTypeSell {
			sawSellAfterBuy = true
		}
	}

	suite.True(sawBuy)
	suite.True(sawSellAfterBuy)
}

func (suite *MACDStrategyTestSuite) TestWarmUpLength() {
	s, err := NewMACD(DefaultMACDConfig())
	suite.Require().NoError(err)
	suite.Equal(35, s.WarmUp())
}
