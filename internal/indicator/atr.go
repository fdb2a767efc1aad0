package indicator

import "math"

// TrueRange computes the per-bar true range: the greatest of high-low,
// |high - previous close| and |low - previous close|. The first bar has no
// previous close, so its true range falls back to high-low.
func TrueRange(high, low, close []float64) []float64 {
	tr := make([]float64, len(close))
	for i := range close {
		tr[i] = high[i] - low[i]

		if i > 0 {
			tr[i] = math.Max(tr[i], math.Abs(high[i]-close[i-1]))
			tr[i] = math.Max(tr[i], math.Abs(low[i]-close[i-1]))
		}
	}

	return tr
}

// ATR computes the average true range as a rolling mean of the true range.
func ATR(high, low, close []float64, period int) []float64 {
	return SMA(TrueRange(high, low, close), period)
}
