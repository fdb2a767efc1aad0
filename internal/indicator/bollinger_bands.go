package indicator

// BollingerBands computes the middle band (SMA), and the upper and lower
// bands offset by stdDevMultiplier sample standard deviations. All three
// share the SMA warm-up window.
func BollingerBands(values []float64, period int, stdDevMultiplier float64) (middle, upper, lower []float64) {
	middle = SMA(values, period)
	std := RollingStdDev(values, period)

	upper = make([]float64, len(values))
	lower = make([]float64, len(values))

	for i := range values {
		upper[i] = middle[i] + std[i]*stdDevMultiplier
		lower[i] = middle[i] - std[i]*stdDevMultiplier
	}

	return middle, upper, lower
}

// BandWidth returns (upper - lower) / middle for each index, a measure of
// band expansion.
func BandWidth(middle, upper, lower []float64) []float64 {
	width := undefinedSeries(len(middle))
	for i := range middle {
		if middle[i] != 0 {
			width[i] = (upper[i] - lower[i]) / middle[i]
		}
	}

	return width
}

// BandPosition returns (value - lower) / (upper - lower), the position of a
// price inside the bands. Undefined when the bands collapse to zero width.
func BandPosition(values, upper, lower []float64) []float64 {
	position := undefinedSeries(len(values))
	for i := range values {
		if span := upper[i] - lower[i]; span != 0 {
			position[i] = (values[i] - lower[i]) / span
		}
	}

	return position
}
