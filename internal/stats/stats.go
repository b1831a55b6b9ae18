// Package stats computes descriptive statistics over enrollment slices.
//
// Every function skips NaN cells, treating them as absent from the sample.
// The boolean result is false when no non-missing cell remains.
package stats

import (
	"errors"
	"math"

	mstats "github.com/montanaflynn/stats"
)

// Present returns the non-missing values of xs in their original order.
func Present(xs []float64) []float64 {
	out := make([]float64, 0, len(xs))
	for _, v := range xs {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

// Sum adds the non-missing values. An all-missing slice sums to 0.
func Sum(xs []float64) float64 {
	total, ok := reduce(mstats.Sum, xs)
	if !ok {
		return 0
	}
	return total
}

// Mean is the arithmetic mean of the non-missing values.
func Mean(xs []float64) (float64, bool) {
	return reduce(mstats.Mean, xs)
}

// Max returns the largest non-missing value.
func Max(xs []float64) (float64, bool) {
	return reduce(mstats.Max, xs)
}

// Min returns the smallest non-missing value.
func Min(xs []float64) (float64, bool) {
	return reduce(mstats.Min, xs)
}

// Median returns the middle non-missing value, averaging the two middle
// values for an even count. A single value is its own median.
func Median(xs []float64) (float64, bool) {
	return reduce(mstats.Median, xs)
}

// reduce applies f to the non-missing values of xs. An empty sample is
// reported as !ok.
func reduce(f func(mstats.Float64Data) (float64, error), xs []float64) (float64, bool) {
	v, err := f(Present(xs))
	if errors.Is(err, mstats.ErrEmptyInput) {
		return 0, false
	}
	return v, err == nil
}

// Above keeps the non-missing values strictly greater than threshold.
func Above(xs []float64, threshold float64) []float64 {
	var out []float64
	for _, v := range xs {
		if !math.IsNaN(v) && v > threshold {
			out = append(out, v)
		}
	}
	return out
}

// Floor rounds toward negative infinity.
func Floor(v float64) int64 {
	return int64(math.Floor(v))
}
