package indicator

import "math"

// SMA computes the simple moving average over a rolling window. A value is
// defined only once the window is full and contains no undefined inputs.
func SMA(values []float64, period int) []float64 {
	out := undefinedSeries(len(values))
	if period < 1 {
		return out
	}

	for i := period - 1; i < len(values); i++ {
		sum := 0.0
		defined := true

		for j := i - period + 1; j <= i; j++ {
			if math.IsNaN(values[j]) {
				defined = false

				break
			}

			sum += values[j]
		}

		if defined {
			out[i] = sum / float64(period)
		}
	}

	return out
}
