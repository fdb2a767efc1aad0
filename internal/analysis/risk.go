package analysis

import (
	"math"
	"sort"

	"github.com/quantframe/quantframe/internal/types"
)

// RiskMetrics describes the downside profile of a run's daily returns.
type RiskMetrics struct {
	Volatility        float64 `yaml:"volatility"`
	DownsideDeviation float64 `yaml:"downside_deviation"`
	SortinoRatio      float64 `yaml:"sortino_ratio"`
	CalmarRatio       float64 `yaml:"calmar_ratio"`
	VaR95             float64 `yaml:"var_95"`
	CVaR95            float64 `yaml:"cvar_95"`
}

// Risk computes the risk metrics of an equity curve. annualReturn and
// maxDrawdown are taken from the already computed performance metrics so the
// two reports can never disagree.
func (c *Calculator) Risk(snapshots []types.PortfolioSnapshot, annualReturn, maxDrawdown float64) RiskMetrics {
	var metrics RiskMetrics

	returns := DailyReturns(snapshots)
	if len(returns) == 0 {
		return metrics
	}

	metrics.Volatility = stdDev(returns) * math.Sqrt(tradingDaysPerYear)

	var downside []float64

	for _, r := range returns {
		if r < 0 {
			downside = append(downside, r)
		}
	}

	metrics.DownsideDeviation = stdDev(downside) * math.Sqrt(tradingDaysPerYear)

	if metrics.DownsideDeviation > 0 {
		metrics.SortinoRatio = (mean(returns)*tradingDaysPerYear - c.riskFreeRate) / metrics.DownsideDeviation
	}

	if maxDrawdown != 0 {
		metrics.CalmarRatio = annualReturn / math.Abs(maxDrawdown)
	}

	metrics.VaR95 = quantile(returns, 0.05)
	metrics.CVaR95 = tailMean(returns, metrics.VaR95)

	return metrics
}

// quantile linearly interpolates the q-th quantile of values.
func quantile(values []float64, q float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	h := q * float64(len(sorted)-1)
	lo := int(math.Floor(h))

	if lo >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}

	return sorted[lo] + (h-float64(lo))*(sorted[lo+1]-sorted[lo])
}

// tailMean averages the returns at or below the cutoff.
func tailMean(values []float64, cutoff float64) float64 {
	var tail []float64

	for _, v := range values {
		if v <= cutoff {
			tail = append(tail, v)
		}
	}

	return mean(tail)
}
