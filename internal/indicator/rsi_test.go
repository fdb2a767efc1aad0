package indicator

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type RSITestSuite struct {
	suite.Suite
}

func TestRSISuite(t *testing.T) {
	suite.Run(t, new(RSITestSuite))
}

func (suite *RSITestSuite) TestRSIWarmUp() {
	values := []float64{10, 11, 12, 11, 12, 13}
	out := RSI(values, 3)

	// First delta exists at index 1, so the rolling window fills at index 3.
	suite.False(Defined(out[0]))
	suite.False(Defined(out[1]))
	suite.False(Defined(out[2]))
	suite.True(Defined(out[3]))
}

func (suite *RSITestSuite) TestRSIHandComputed() {
	// Deltas: +1, +1, -1. avgGain = 2/3, avgLoss = 1/3, rs = 2, rsi = 100 - 100/3.
	values := []float64{10, 11, 12, 11}
	out := RSI(values, 3)

	suite.InDelta(100.0-100.0/3.0, out[3], 1e-9)
}

func (suite *RSITestSuite) TestRSISaturatesOnZeroLoss() {
	// Monotonically rising: average loss is zero, oscillator pins at 100.
	values := []float64{10, 11, 12, 13, 14}
	out := RSI(values, 3)

	suite.InDelta(100.0, out[3], 1e-9)
	suite.InDelta(100.0, out[4], 1e-9)
}

func (suite *RSITestSuite) TestRSIFlatSeriesSaturates() {
	// Flat series: both average gain and loss are zero. The documented
	// zero-denominator policy still saturates at 100.
	values := []float64{10, 10, 10, 10, 10}
	out := RSI(values, 3)

	suite.InDelta(100.0, out[3], 1e-9)
}

func (suite *RSITestSuite) TestRSIPureDownTrendIsZero() {
	values := []float64{14, 13, 12, 11, 10}
	out := RSI(values, 3)

	suite.InDelta(0.0, out[3], 1e-9)
	suite.InDelta(0.0, out[4], 1e-9)
}

func (suite *RSITestSuite) TestRSITooShortSeries() {
	out := RSI([]float64{10}, 3)
	suite.False(Defined(out[0]))
}
