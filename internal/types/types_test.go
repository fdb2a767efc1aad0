package types

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type TypesTestSuite struct {
	suite.Suite
}

func TestTypesSuite(t *testing.T) {
	suite.Run(t, new(TypesTestSuite))
}

func (suite *TypesTestSuite) TestPositionMarketValue() {
	pos := Position{
		Symbol:      "600519",
		Quantity:    200,
		AverageCost: 10.0,
		LastPrice:   12.5,
	}

	suite.InDelta(2500.0, pos.MarketValue(), 1e-9)
	suite.InDelta(500.0, pos.UnrealizedPnL(), 1e-9)
	suite.InDelta(0.25, pos.UnrealizedPnLRate(), 1e-9)
}

func (suite *TypesTestSuite) TestPositionZeroAverageCost() {
	pos := Position{Symbol: "600519", Quantity: 100, AverageCost: 0, LastPrice: 5}
	suite.Zero(pos.UnrealizedPnLRate())
}

func (suite *TypesTestSuite) TestHoldSignal() {
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	sig := Hold(now, "double_ma", "600519")

	suite.Equal(SignalTypeHold, sig.Type)
	suite.Equal("double_ma", sig.Name)
	suite.Equal("600519", sig.Symbol)
	suite.Equal(now, sig.Time)
}

func (suite *TypesTestSuite) TestWriteResult() {
	dir := suite.T().TempDir()
	path := filepath.Join(dir, "result.yaml")

	result := BacktestResult{
		ID:          "run-1",
		Timestamp:   time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		Symbol:      "600519",
		Strategy:    "double_ma",
		InitialCash: 100000,
		Metrics: PerformanceMetrics{
			TotalReturn: 0.1,
			FinalValue:  110000,
			TotalTrades: 2,
		},
		EquityCurve: []PortfolioSnapshot{
			{Time: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Cash: 110000, TotalValue: 110000, Return: 0.1},
		},
		Trades: []Trade{
			{Time: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Symbol: "600519", Side: SideBuy, Price: 10, Quantity: 100, GrossAmount: 1000, Fees: 0.3},
		},
	}

	err := WriteResult(path, result)
	suite.NoError(err)

	data, err := os.ReadFile(path)
	suite.NoError(err)
	suite.Contains(string(data), "total_return: 0.1")
	suite.Contains(string(data), "strategy: double_ma")
}
