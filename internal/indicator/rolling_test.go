package indicator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/suite"
)

type RollingTestSuite struct {
	suite.Suite
}

func TestRollingSuite(t *testing.T) {
	suite.Run(t, new(RollingTestSuite))
}

func (suite *RollingTestSuite) TestRollingMax() {
	values := []float64{3, 1, 4, 1, 5}
	out := RollingMax(values, 3)

	suite.False(Defined(out[0]))
	suite.False(Defined(out[1]))
	suite.InDelta(4.0, out[2], 1e-9)
	suite.InDelta(4.0, out[3], 1e-9)
	suite.InDelta(5.0, out[4], 1e-9)
}

func (suite *RollingTestSuite) TestRollingMin() {
	values := []float64{3, 1, 4, 1, 5}
	out := RollingMin(values, 3)

	suite.InDelta(1.0, out[2], 1e-9)
	suite.InDelta(1.0, out[3], 1e-9)
	suite.InDelta(1.0, out[4], 1e-9)
}

func (suite *RollingTestSuite) TestRollingStdDevSample() {
	// Sample std of {2, 4, 6} is 2.
	out := RollingStdDev([]float64{2, 4, 6}, 3)

	suite.False(Defined(out[0]))
	suite.False(Defined(out[1]))
	suite.InDelta(2.0, out[2], 1e-9)
}

func (suite *RollingTestSuite) TestRollingStdDevConstantWindow() {
	out := RollingStdDev([]float64{5, 5, 5, 5}, 3)
	suite.InDelta(0.0, out[2], 1e-9)
	suite.InDelta(0.0, out[3], 1e-9)
}

func (suite *RollingTestSuite) TestRollingStdDevSingleValueWindow() {
	out := RollingStdDev([]float64{1, 2, 3}, 1)
	for _, v := range out {
		suite.True(math.IsNaN(v))
	}
}
