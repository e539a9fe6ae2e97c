// Package stats provides the small numeric kernel shared by every
// analyzer: mean, median, population standard deviation and Pearson
// correlation. All functions are total over their inputs; degenerate
// inputs (empty series, mismatched lengths, zero variance) yield 0
// rather than NaN or Infinity.
package stats

import (
	"math"
	"sort"
)

// Mean returns the arithmetic mean of xs, 0 for an empty slice.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// Median returns the middle value of xs (average of the two middle
// values for even lengths), 0 for an empty slice. xs is not modified.
func Median(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// StdDev returns the population standard deviation of xs.
func StdDev(xs []float64) float64 {
	avg := Mean(xs)
	devs := make([]float64, len(xs))
	for i, x := range xs {
		devs[i] = (x - avg) * (x - avg)
	}
	return math.Sqrt(Mean(devs))
}

// Pearson returns the Pearson correlation coefficient between xs and
// ys. It returns 0 when the series differ in length, are empty, or
// either series has zero variance.
func Pearson(xs, ys []float64) float64 {
	if len(xs) != len(ys) || len(xs) == 0 {
		return 0
	}

	meanX := Mean(xs)
	meanY := Mean(ys)

	var cov, ssX, ssY float64
	for i := range xs {
		dx := xs[i] - meanX
		dy := ys[i] - meanY
		cov += dx * dy
		ssX += dx * dx
		ssY += dy * dy
	}

	if ssX == 0 || ssY == 0 {
		return 0
	}
	return cov / math.Sqrt(ssX*ssY)
}
