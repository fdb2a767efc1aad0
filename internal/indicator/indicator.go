// Package indicator computes technical indicator series over a full price
// history in one pass, the way a strategy prepares its columns before a
// simulation starts.
//
// Every function returns a slice aligned index-for-index with its input.
// Indices inside an indicator's warm-up window hold NaN; callers test values
// with Defined before using them. Comparisons against NaN are always false in
// Go, so crossover checks involving warm-up values never fire spuriously.
package indicator

import "math"

// Defined reports whether an indicator value is available at an index.
func Defined(v float64) bool {
	return !math.IsNaN(v)
}

// Shift returns the series moved forward by n indices. The first n slots are
// undefined. It is used to line up previous-bar values for crossover checks.
func Shift(values []float64, n int) []float64 {
	shifted := undefinedSeries(len(values))
	for i := n; i < len(values); i++ {
		shifted[i] = values[i-n]
	}

	return shifted
}

func undefinedSeries(n int) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = math.NaN()
	}

	return s
}
