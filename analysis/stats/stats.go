// Package stats provides the small statistical kernel shared by the
// analysis and chorus packages, built on gonum.
package stats

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Mean calculates the arithmetic mean of a slice
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return stat.Mean(data, nil)
}

// Variance calculates the population variance of a slice.
// Population (not sample) variance keeps single-frame windows well defined
// and matches how segment statistics are normalized against each other.
func Variance(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}

	mean := stat.Mean(data, nil)
	variance := 0.0
	for _, val := range data {
		diff := val - mean
		variance += diff * diff
	}

	return variance / float64(len(data))
}

// Correlation calculates the Pearson correlation coefficient between two
// equal-length series. Degenerate inputs (length mismatch, empty, zero
// variance) yield 0 rather than NaN.
func Correlation(x, y []float64) float64 {
	if len(x) != len(y) || len(x) == 0 {
		return 0.0
	}

	r := stat.Correlation(x, y, nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0.0
	}

	return clampCorrelation(r)
}

// Max returns the maximum value of a slice, 0 for empty input
func Max(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return floats.Max(data)
}

// RMS calculates root mean square
func RMS(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}

	sumSquares := 0.0
	for _, val := range data {
		sumSquares += val * val
	}

	return math.Sqrt(sumSquares / float64(len(data)))
}

// Flatten concatenates the rows of a matrix into one vector, row-major
func Flatten(matrix [][]float64) []float64 {
	total := 0
	for _, row := range matrix {
		total += len(row)
	}

	flat := make([]float64, 0, total)
	for _, row := range matrix {
		flat = append(flat, row...)
	}

	return flat
}

// clampCorrelation ensures correlation stays in [-1, 1]
func clampCorrelation(r float64) float64 {
	if r > 1.0 {
		return 1.0
	}
	if r < -1.0 {
		return -1.0
	}
	return r
}
