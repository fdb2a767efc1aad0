package indicator

// EMA computes the exponential moving average with smoothing factor
// alpha = 2 / (span + 1) and no warm-up adjustment: the series is seeded with
// the first value and defined from index 0 onward.
func EMA(values []float64, span int) []float64 {
	out := undefinedSeries(len(values))
	if span < 1 || len(values) == 0 {
		return out
	}

	alpha := 2.0 / (float64(span) + 1.0)

	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = alpha*values[i] + (1-alpha)*out[i-1]
	}

	return out
}
