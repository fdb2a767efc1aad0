package indicator

import "math"

// RollingMax computes the highest value over a rolling window. Defined once
// the window is full.
func RollingMax(values []float64, period int) []float64 {
	out := undefinedSeries(len(values))
	if period < 1 {
		return out
	}

	for i := period - 1; i < len(values); i++ {
		max := math.Inf(-1)
		defined := true

		for j := i - period + 1; j <= i; j++ {
			if math.IsNaN(values[j]) {
				defined = false

				break
			}

			if values[j] > max {
				max = values[j]
			}
		}

		if defined {
			out[i] = max
		}
	}

	return out
}

// RollingMin computes the lowest value over a rolling window. Defined once
// the window is full.
func RollingMin(values []float64, period int) []float64 {
	out := undefinedSeries(len(values))
	if period < 1 {
		return out
	}

	for i := period - 1; i < len(values); i++ {
		min := math.Inf(1)
		defined := true

		for j := i - period + 1; j <= i; j++ {
			if math.IsNaN(values[j]) {
				defined = false

				break
			}

			if values[j] < min {
				min = values[j]
			}
		}

		if defined {
			out[i] = min
		}
	}

	return out
}

// RollingStdDev computes the sample standard deviation over a rolling window.
// Requires a window of at least two values.
func RollingStdDev(values []float64, period int) []float64 {
	out := undefinedSeries(len(values))
	if period < 2 {
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

		if !defined {
			continue
		}

		mean := sum / float64(period)
		variance := 0.0

		for j := i - period + 1; j <= i; j++ {
			d := values[j] - mean
			variance += d * d
		}

		out[i] = math.Sqrt(variance / float64(period-1))
	}

	return out
}
