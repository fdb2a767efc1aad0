package indicator

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type MATestSuite struct {
	suite.Suite
}

func TestMASuite(t *testing.T) {
	suite.Run(t, new(MATestSuite))
}

func (suite *MATestSuite) TestSMAWarmUp() {
	values := []float64{1, 2, 3, 4, 5}
	out := SMA(values, 3)

	suite.False(Defined(out[0]))
	suite.False(Defined(out[1]))
	suite.InDelta(2.0, out[2], 1e-9)
	suite.InDelta(3.0, out[3], 1e-9)
	suite.InDelta(4.0, out[4], 1e-9)
}

func (suite *MATestSuite) TestSMAWindowLargerThanSeries() {
	out := SMA([]float64{1, 2}, 5)
	for _, v := range out {
		suite.False(Defined(v))
	}
}

func (suite *MATestSuite) TestSMAInvalidPeriod() {
	out := SMA([]float64{1, 2, 3}, 0)
	for _, v := range out {
		suite.False(Defined(v))
	}
}

func (suite *MATestSuite) TestSMAPropagatesUndefinedInputs() {
	// An undefined input keeps every window containing it undefined.
	values := Shift([]float64{1, 2, 3, 4}, 1)
	out := SMA(values, 2)

	suite.False(Defined(out[0]))
	suite.False(Defined(out[1]))
	suite.InDelta(1.5, out[2], 1e-9)
	suite.InDelta(2.5, out[3], 1e-9)
}

func (suite *MATestSuite) TestShift() {
	out := Shift([]float64{10, 20, 30}, 1)

	suite.False(Defined(out[0]))
	suite.InDelta(10.0, out[1], 1e-9)
	suite.InDelta(20.0, out[2], 1e-9)
}
