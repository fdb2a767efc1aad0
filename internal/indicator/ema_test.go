package indicator

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type EMATestSuite struct {
	suite.Suite
}

func TestEMASuite(t *testing.T) {
	suite.Run(t, new(EMATestSuite))
}

func (suite *EMATestSuite) TestEMASeedsWithFirstValue() {
	out := EMA([]float64{10, 10, 10}, 3)

	suite.InDelta(10.0, out[0], 1e-9)
	suite.InDelta(10.0, out[1], 1e-9)
	suite.InDelta(10.0, out[2], 1e-9)
}

func (suite *EMATestSuite) TestEMARecursion() {
	// span=3 gives alpha=0.5, so each value is the midpoint of the input and
	// the previous EMA.
	out := EMA([]float64{2, 4, 8}, 3)

	suite.InDelta(2.0, out[0], 1e-9)
	suite.InDelta(3.0, out[1], 1e-9)
	suite.InDelta(5.5, out[2], 1e-9)
}

func (suite *EMATestSuite) TestEMAEmptyInput() {
	suite.Empty(EMA(nil, 3))
}

func (suite *EMATestSuite) TestEMAInvalidSpan() {
	out := EMA([]float64{1, 2}, 0)
	suite.False(Defined(out[0]))
	suite.False(Defined(out[1]))
}
