// Package duration builds load duration curves: a series sorted descending,
// used both for rendering and for reading off the N-th largest threshold.
package duration

import "sort"

// Curve returns a descending-sorted copy of the input. The input is left
// untouched and the output is a permutation of it; relative order among
// duplicate values is not meaningful.
func Curve(values []float64) []float64 {
	out := make([]float64, len(values))
	copy(out, values)
	sort.Sort(sort.Reverse(sort.Float64Slice(out)))
	return out
}

// Threshold returns the n-th largest value of the series, the boundary
// value for top-n membership tests. n must be in [1, len(values)]; callers
// validate before calling.
func Threshold(values []float64, n int) float64 {
	return Curve(values)[n-1]
}
