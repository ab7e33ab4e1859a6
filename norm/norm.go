// Package norm provides sequence normalizers applied before DTW alignment.
//
// A normalizer is an external strategy: the alignment kernels consume
// already-normalized sequences, and sliding search applies a normalizer to
// the query once and to each candidate window independently (per-window
// normalization is what makes shape matching invariant to local offset and
// scale). Normalizers never mutate their input.
package norm

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Func transforms a scalar sequence into its normalized form.
type Func func(x []float64) []float64

// VecFunc transforms a vector-sample sequence into its normalized form.
type VecFunc func(x [][]float64) [][]float64

// Registry maps normalizer names to scalar implementations.
var Registry = map[string]Func{
	"zscore":   ZScore,
	"z":        ZScore,
	"minmax":   MinMax,
	"identity": Identity,
	"none":     Identity,
}

// Get returns the scalar normalizer for the given name.
func Get(name string) (Func, bool) {
	f, ok := Registry[name]
	return f, ok
}

// Identity returns x unchanged.
func Identity(x []float64) []float64 {
	return x
}

// ZScore returns a copy of x shifted to zero mean and scaled to unit
// standard deviation. Constant (or single-sample) sequences have no scale
// and normalize to all zeros.
func ZScore(x []float64) []float64 {
	mean, std := stat.MeanStdDev(x, nil)
	out := make([]float64, len(x))
	if !(std > 0) { // std is NaN for a single sample
		return out
	}
	for i, v := range x {
		out[i] = (v - mean) / std
	}
	return out
}

// MinMax returns a copy of x rescaled to the unit interval [0, 1].
// Constant sequences normalize to all zeros.
func MinMax(x []float64) []float64 {
	out := make([]float64, len(x))
	if len(x) == 0 {
		return out
	}
	lo, hi := floats.Min(x), floats.Max(x)
	span := hi - lo
	if span == 0 || math.IsNaN(span) {
		return out
	}
	for i, v := range x {
		out[i] = (v - lo) / span
	}
	return out
}

// ZScoreVec z-normalizes a vector-sample sequence per dimension: every
// feature channel is shifted and scaled independently across the sequence.
func ZScoreVec(x [][]float64) [][]float64 {
	if len(x) == 0 {
		return nil
	}
	width := len(x[0])
	out := make([][]float64, len(x))
	for i := range out {
		out[i] = make([]float64, width)
	}

	col := make([]float64, len(x))
	for d := 0; d < width; d++ {
		for i := range x {
			col[i] = x[i][d]
		}
		mean, std := stat.MeanStdDev(col, nil)
		if !(std > 0) {
			continue
		}
		for i := range x {
			out[i][d] = (x[i][d] - mean) / std
		}
	}
	return out
}
