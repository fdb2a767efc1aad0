// Package analysis computes performance, trade and risk statistics from a
// completed backtest. All functions are pure: the same equity curve and
// trade log always produce the same numbers.
package analysis

import (
	"math"

	"github.com/quantframe/quantframe/internal/types"
)

const (
	// tradingDaysPerYear annualizes daily return statistics.
	tradingDaysPerYear = 252
	// calendarDaysPerYear annualizes the total return over the run span.
	calendarDaysPerYear = 365
)

// DefaultRiskFreeRate is the annual risk free rate used when none is configured.
const DefaultRiskFreeRate = 0.03

// Calculator derives statistics from equity curves and trade logs.
type Calculator struct {
	riskFreeRate float64
}

// NewCalculator creates a calculator using the given annual risk free rate.
func NewCalculator(riskFreeRate float64) *Calculator {
	return &Calculator{riskFreeRate: riskFreeRate}
}

// Metrics computes the headline performance metrics for a run. An empty
// equity curve yields zero metrics with FinalValue equal to initialCash.
func (c *Calculator) Metrics(snapshots []types.PortfolioSnapshot, trades []types.Trade, initialCash float64) types.PerformanceMetrics {
	metrics := types.PerformanceMetrics{
		FinalValue: initialCash,
	}

	if len(snapshots) == 0 {
		return metrics
	}

	final := snapshots[len(snapshots)-1].TotalValue
	metrics.FinalValue = final
	metrics.TotalReturn = final/initialCash - 1
	metrics.AnnualReturn = annualReturn(metrics.TotalReturn, snapshots)
	metrics.MaxDrawdown = MaxDrawdown(snapshots)
	metrics.SharpeRatio = c.sharpeRatio(DailyReturns(snapshots))
	metrics.TotalTrades = len(trades)
	metrics.WinRate = c.Trades(trades).WinRate

	return metrics
}

// DailyReturns converts an equity curve into bar-over-bar returns. The series
// is one element shorter than the curve.
func DailyReturns(snapshots []types.PortfolioSnapshot) []float64 {
	if len(snapshots) < 2 {
		return nil
	}

	returns := make([]float64, 0, len(snapshots)-1)

	for i := 1; i < len(snapshots); i++ {
		prev := snapshots[i-1].TotalValue
		if prev == 0 {
			returns = append(returns, 0)
			continue
		}

		returns = append(returns, snapshots[i].TotalValue/prev-1)
	}

	return returns
}

// MaxDrawdown returns the largest peak-to-trough decline of the equity curve
// as a non-positive fraction in [-1, 0].
func MaxDrawdown(snapshots []types.PortfolioSnapshot) float64 {
	maxDrawdown := 0.0
	peak := math.Inf(-1)

	for _, snapshot := range snapshots {
		if snapshot.TotalValue > peak {
			peak = snapshot.TotalValue
		}

		if peak <= 0 {
			continue
		}

		drawdown := (snapshot.TotalValue - peak) / peak
		if drawdown < maxDrawdown {
			maxDrawdown = drawdown
		}
	}

	return maxDrawdown
}

// annualReturn compounds the total return over the calendar span of the run.
// A span of zero or negative days yields 0.
func annualReturn(totalReturn float64, snapshots []types.PortfolioSnapshot) float64 {
	first := snapshots[0].Time
	last := snapshots[len(snapshots)-1].Time

	days := int(last.Sub(first).Hours() / 24)
	if days <= 0 {
		return 0
	}

	return math.Pow(1+totalReturn, float64(calendarDaysPerYear)/float64(days)) - 1
}

// sharpeRatio annualizes the mean and standard deviation of daily returns.
// A zero standard deviation yields 0.
func (c *Calculator) sharpeRatio(returns []float64) float64 {
	if len(returns) < 2 {
		return 0
	}

	std := stdDev(returns)
	if std == 0 {
		return 0
	}

	annualized := mean(returns) * tradingDaysPerYear

	return (annualized - c.riskFreeRate) / (std * math.Sqrt(tradingDaysPerYear))
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sum := 0.0
	for _, v := range values {
		sum += v
	}

	return sum / float64(len(values))
}

// stdDev is the sample standard deviation, zero for fewer than two values.
func stdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}

	m := mean(values)

	sum := 0.0
	for _, v := range values {
		d := v - m
		sum += d * d
	}

	return math.Sqrt(sum / float64(len(values)-1))
}
