package analysis

import (
	"time"

	"github.com/quantframe/quantframe/internal/types"
)

// PeriodReturn is the compounded return of one calendar period.
type PeriodReturn struct {
	Period string  `yaml:"period"`
	Return float64 `yaml:"return"`
}

// DrawdownPoint is the drawdown of one snapshot against the running peak.
type DrawdownPoint struct {
	Time     time.Time `yaml:"time"`
	Value    float64   `yaml:"value"`
	Peak     float64   `yaml:"peak"`
	Drawdown float64   `yaml:"drawdown"`
}

// MonthlyReturns compounds bar-over-bar returns within each calendar month.
// Each return is attributed to the month of the bar it was realized on, so a
// month-opening bar carries the gap from the previous month's close.
func MonthlyReturns(snapshots []types.PortfolioSnapshot) []PeriodReturn {
	return periodReturns(snapshots, func(t time.Time) string {
		return t.Format("2006-01")
	})
}

// YearlyReturns compounds bar-over-bar returns within each calendar year.
func YearlyReturns(snapshots []types.PortfolioSnapshot) []PeriodReturn {
	return periodReturns(snapshots, func(t time.Time) string {
		return t.Format("2006")
	})
}

func periodReturns(snapshots []types.PortfolioSnapshot, key func(time.Time) string) []PeriodReturn {
	if len(snapshots) < 2 {
		return nil
	}

	var periods []PeriodReturn

	for i := 1; i < len(snapshots); i++ {
		r := snapshots[i].TotalValue/snapshots[i-1].TotalValue - 1
		period := key(snapshots[i].Time)

		if len(periods) == 0 || periods[len(periods)-1].Period != period {
			periods = append(periods, PeriodReturn{Period: period})
		}

		last := &periods[len(periods)-1]
		last.Return = (1+last.Return)*(1+r) - 1
	}

	return periods
}

// DrawdownDetails returns the full drawdown series of an equity curve: each
// snapshot's value, the peak seen so far and the drawdown against that peak.
func DrawdownDetails(snapshots []types.PortfolioSnapshot) []DrawdownPoint {
	if len(snapshots) == 0 {
		return nil
	}

	points := make([]DrawdownPoint, 0, len(snapshots))
	peak := snapshots[0].TotalValue

	for _, snapshot := range snapshots {
		if snapshot.TotalValue > peak {
			peak = snapshot.TotalValue
		}

		points = append(points, DrawdownPoint{
			Time:     snapshot.Time,
			Value:    snapshot.TotalValue,
			Peak:     peak,
			Drawdown: snapshot.TotalValue/peak - 1,
		})
	}

	return points
}
