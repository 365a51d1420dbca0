package panel

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// dropNaN copies the non-NaN values of xs into a fresh slice.
func dropNaN(xs []float64) []float64 {
	out := make([]float64, 0, len(xs))
	for _, x := range xs {
		if !math.IsNaN(x) {
			out = append(out, x)
		}
	}
	return out
}

// NaNMean returns the mean of the non-NaN values, or NaN if none exist.
func NaNMean(xs []float64) float64 {
	vals := dropNaN(xs)
	if len(vals) == 0 {
		return math.NaN()
	}
	return stat.Mean(vals, nil)
}

// NaNStdDev returns the sample standard deviation of the non-NaN values.
// Fewer than two observations yields NaN.
func NaNStdDev(xs []float64) float64 {
	vals := dropNaN(xs)
	if len(vals) < 2 {
		return math.NaN()
	}
	return stat.StdDev(vals, nil)
}

// NaNMedian returns the median of the non-NaN values, averaging the two
// middle observations for even counts. NaN if no values exist.
func NaNMedian(xs []float64) float64 {
	vals := dropNaN(xs)
	if len(vals) == 0 {
		return math.NaN()
	}
	sort.Float64s(vals)
	mid := len(vals) / 2
	if len(vals)%2 == 1 {
		return vals[mid]
	}
	return (vals[mid-1] + vals[mid]) / 2
}
