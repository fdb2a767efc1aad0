package indicator

import "math"

// RSI computes the relative strength index from rolling mean gains and losses.
// The first defined value appears at index == period because the first price
// delta only exists at index 1.
//
// Zero-denominator policy: when the average loss over the window is zero the
// oscillator saturates at 100 rather than propagating an undefined ratio.
// This includes the flat-series case where the average gain is also zero.
func RSI(values []float64, period int) []float64 {
	out := undefinedSeries(len(values))
	if period < 1 || len(values) < 2 {
		return out
	}

	gains := undefinedSeries(len(values))
	losses := undefinedSeries(len(values))

	for i := 1; i < len(values); i++ {
		delta := values[i] - values[i-1]
		if delta > 0 {
			gains[i] = delta
			losses[i] = 0
		} else {
			gains[i] = 0
			losses[i] = -delta
		}
	}

	avgGain := SMA(gains, period)
	avgLoss := SMA(losses, period)

	for i := range values {
		if math.IsNaN(avgGain[i]) || math.IsNaN(avgLoss[i]) {
			continue
		}

		if avgLoss[i] == 0 {
			out[i] = 100

			continue
		}

		rs := avgGain[i] / avgLoss[i]
		out[i] = 100 - 100/(1+rs)
	}

	return out
}
