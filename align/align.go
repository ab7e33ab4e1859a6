// Package align implements the Dynamic Time Warping alignment kernels:
// banded exact DTW with path recovery, the differentiable soft-DTW variant,
// and the multi-resolution FastDTW approximation.
//
// All kernels are generic over the sample type S, so the same code aligns
// scalar series ([]float64) and multivariate series ([][]float64). The
// pointwise distance between samples is supplied by the caller as a
// distance.Func[S]; kernels assume the incoming sequences are already
// normalized (see package norm) and never mutate them.
package align

import (
	"errors"
	"fmt"
	"math"
)

// FullCoverage is a band radius large enough to disable the Sakoe-Chiba
// constraint for any pair of sequences, degenerating banded DTW to full DTW.
const FullCoverage = math.MaxInt32

var (
	// ErrEmptySequence indicates one or both input sequences are empty.
	ErrEmptySequence = errors.New("align: input sequences must be non-empty")

	// ErrInvalidTransportCost indicates a transport cost multiplier below 1.
	ErrInvalidTransportCost = errors.New("align: transport cost must be at least 1")
)

// ErrLengthMismatchBand indicates a band radius too small to bridge the
// difference between the two sequence lengths: no warping path can reach
// the corner cell.
type ErrLengthMismatchBand struct {
	Radius int
	LenX   int
	LenY   int
}

func (e *ErrLengthMismatchBand) Error() string {
	return fmt.Sprintf("align: radius %d cannot bridge sequence lengths %d and %d", e.Radius, e.LenX, e.LenY)
}

// ErrInvalidGamma indicates a non-positive (or NaN) soft-DTW smoothing
// parameter.
type ErrInvalidGamma struct {
	Gamma float64
}

func (e *ErrInvalidGamma) Error() string {
	return fmt.Sprintf("align: smoothing parameter gamma must be positive, got %v", e.Gamma)
}

// Step is one cell of an alignment path, 0-based into both sequences.
type Step struct {
	I int // index into the first sequence
	J int // index into the second sequence
}

// Options configures the exact DTW kernel.
type Options struct {
	// Radius is the Sakoe-Chiba band radius: cell (i, j) is only evaluated
	// if |i-j| <= Radius, with slack at length-mismatch boundaries. Must be
	// non-negative and at least |len(x)-len(y)|. FullCoverage disables the
	// constraint.
	Radius int

	// TransportCost is a multiplier >= 1 applied to non-diagonal
	// (insertion/deletion) moves, biasing the optimal path toward the
	// diagonal. 1 recovers unweighted DTW.
	TransportCost float64
}

// DefaultOptions returns an unconstrained, unweighted configuration.
func DefaultOptions() Options {
	return Options{
		Radius:        FullCoverage,
		TransportCost: 1,
	}
}
