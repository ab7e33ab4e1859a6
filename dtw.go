// Package dtw computes similarity between ordered numeric sequences (time
// series) using Dynamic Time Warping and its variants, exposed as pluggable
// distance metrics for downstream search and clustering.
//
// The package family:
//
//   - align:    the alignment kernels (exact banded DTW, soft-DTW, FastDTW)
//   - band:     banded cost-matrix storage shared by the kernels
//   - distance: pointwise inner distances between individual samples
//   - norm:     sequence normalizers (z-score, min-max)
//   - search:   sliding nearest-neighbor search (distance profiles)
//
// This top-level package is thin glue: a common Metric contract with the
// Exact, Soft and Fast variants, each carrying its own parameters and
// dispatching to the kernel in package align.
//
// Basic usage:
//
//	metric := dtw.NewExact(distance.SquaredEuclidean)
//	cost, err := metric.Distance(x, y)
package dtw

import (
	"github.com/nozzle/dtw/align"
	"github.com/nozzle/dtw/distance"
)

// Metric is the shared evaluate contract of the DTW variant family.
// Implementations never mutate the sequences they compare.
type Metric[S any] interface {
	// Distance computes the metric's cost between two sequences.
	Distance(x, y []S) (float64, error)
}

// Compile-time variant checks.
var (
	_ Metric[float64]   = Exact[float64]{}
	_ Metric[float64]   = Soft[float64]{}
	_ Metric[[]float64] = Fast[[]float64]{}
)

// Exact is the banded exact DTW metric.
type Exact[S any] struct {
	// Dist is the pointwise inner distance between samples.
	Dist distance.Func[S]

	// Radius is the Sakoe-Chiba band radius; align.FullCoverage disables
	// the constraint.
	Radius int

	// TransportCost is the non-diagonal move multiplier, >= 1.
	TransportCost float64
}

// NewExact returns an Exact metric with full band coverage and neutral
// transport cost.
func NewExact[S any](dist distance.Func[S]) Exact[S] {
	return Exact[S]{
		Dist:          dist,
		Radius:        align.FullCoverage,
		TransportCost: 1,
	}
}

// Distance computes the exact DTW cost between x and y.
func (e Exact[S]) Distance(x, y []S) (float64, error) {
	return align.Distance(x, y, e.Dist, e.options())
}

// Path computes the exact DTW cost and the optimal alignment path.
func (e Exact[S]) Path(x, y []S) (float64, []align.Step, error) {
	return align.Path(x, y, e.Dist, e.options())
}

func (e Exact[S]) options() align.Options {
	return align.Options{Radius: e.Radius, TransportCost: e.TransportCost}
}

// Soft is the differentiable soft-DTW metric.
type Soft[S any] struct {
	// Dist is the pointwise inner distance between samples.
	Dist distance.Func[S]

	// Gamma is the smoothing strength, > 0.
	Gamma float64

	// Radius optionally bands the fill; align.FullCoverage (the default)
	// runs the full matrix.
	Radius int
}

// NewSoft returns a Soft metric with the given smoothing strength and no
// band constraint.
func NewSoft[S any](dist distance.Func[S], gamma float64) Soft[S] {
	return Soft[S]{
		Dist:   dist,
		Gamma:  gamma,
		Radius: align.FullCoverage,
	}
}

// Distance computes the soft-DTW cost between x and y.
func (s Soft[S]) Distance(x, y []S) (float64, error) {
	return align.SoftDistance(x, y, s.Dist, align.SoftOptions{Gamma: s.Gamma, Radius: s.Radius})
}

// Fast is the multi-resolution approximate DTW metric. Its cost never
// underestimates the Exact metric's and converges to it as Radius grows.
type Fast[S any] struct {
	// Dist is the pointwise inner distance between samples.
	Dist distance.Func[S]

	// Mean coarsens two adjacent samples into one; use align.ScalarMean
	// for scalar series and align.VectorMean for multivariate ones.
	Mean align.MeanFunc[S]

	// Radius controls approximation quality: the projected search window
	// widens by Radius at every resolution level.
	Radius int
}

// NewFast returns a Fast metric over the given coarsening function.
func NewFast[S any](dist distance.Func[S], mean align.MeanFunc[S], radius int) Fast[S] {
	return Fast[S]{
		Dist:   dist,
		Mean:   mean,
		Radius: radius,
	}
}

// Distance computes the approximate DTW cost between x and y.
func (f Fast[S]) Distance(x, y []S) (float64, error) {
	return align.FastDistance(x, y, f.Dist, f.Mean, f.Radius)
}

// Path computes the approximate DTW cost and its alignment path.
func (f Fast[S]) Path(x, y []S) (float64, []align.Step, error) {
	return align.FastPath(x, y, f.Dist, f.Mean, f.Radius)
}
