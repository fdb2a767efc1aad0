package indicator

// MACD computes the moving average convergence divergence line, its signal
// line, and the histogram between them. All three series are defined from
// index 0 because they are built from unadjusted EMAs.
func MACD(values []float64, fastSpan, slowSpan, signalSpan int) (macd, signal, histogram []float64) {
	fast := EMA(values, fastSpan)
	slow := EMA(values, slowSpan)

	macd = make([]float64, len(values))
	for i := range values {
		macd[i] = fast[i] - slow[i]
	}

	signal = EMA(macd, signalSpan)

	histogram = make([]float64, len(values))
	for i := range values {
		histogram[i] = macd[i] - signal[i]
	}

	return macd, signal, histogram
}
