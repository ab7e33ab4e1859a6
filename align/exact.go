package align

import (
	"math"

	"github.com/nozzle/dtw/band"
	"github.com/nozzle/dtw/distance"
)

// Distance computes the banded DTW cost between x and y under the recurrence
//
//	D[i,j] = dist(x_i, y_j) + min(D[i-1,j-1], tc*D[i-1,j], tc*D[i,j-1])
//
// with D[0,0] = 0 and cells outside the band unreachable (+Inf). The cost is
// non-negative whenever dist is.
func Distance[S any](x, y []S, dist distance.Func[S], opts Options) (float64, error) {
	return DistanceCutoff(x, y, dist, opts, math.Inf(1))
}

// DistanceCutoff behaves like Distance but abandons the fill early, returning
// +Inf, once every reachable cell of a row exceeds cutoff. Because row minima
// never decrease when dist is non-negative and the transport cost is at least
// 1, abandoning never discards an alignment cheaper than cutoff. Used by
// sliding search to skip hopeless windows.
func DistanceCutoff[S any](x, y []S, dist distance.Func[S], opts Options, cutoff float64) (float64, error) {
	g, err := newBandGrid(len(x), len(y), opts)
	if err != nil {
		return 0, err
	}
	return fill(g, x, y, dist, opts.TransportCost, cutoff), nil
}

// Path computes the banded DTW cost and recovers the optimal alignment path
// by backtracking from (n-1, m-1) to (0, 0). Ties between equal-cost
// predecessors break toward the diagonal, then vertical, then horizontal,
// so the path is deterministic.
func Path[S any](x, y []S, dist distance.Func[S], opts Options) (float64, []Step, error) {
	g, err := newBandGrid(len(x), len(y), opts)
	if err != nil {
		return 0, nil, err
	}
	cost := fill(g, x, y, dist, opts.TransportCost, math.Inf(1))
	if math.IsInf(cost, 1) {
		return cost, nil, nil
	}
	return cost, backtrack(g, opts.TransportCost), nil
}

// DistanceBounds computes the DTW cost over externally supplied per-row
// column bounds instead of a uniform radius. rowLo and rowHi hold 1-based
// inclusive bounds for each row of x, as produced by the FastDTW window
// projection. Returns +Inf when the bounds do not connect (0,0) to the
// corner cell.
func DistanceBounds[S any](x, y []S, dist distance.Func[S], rowLo, rowHi []int, transportCost float64) (float64, error) {
	g, err := newBoundsGrid(len(x), len(y), rowLo, rowHi, transportCost)
	if err != nil {
		return 0, err
	}
	return fill(g, x, y, dist, transportCost, math.Inf(1)), nil
}

// PathBounds is the path-recovery mode of DistanceBounds.
func PathBounds[S any](x, y []S, dist distance.Func[S], rowLo, rowHi []int, transportCost float64) (float64, []Step, error) {
	g, err := newBoundsGrid(len(x), len(y), rowLo, rowHi, transportCost)
	if err != nil {
		return 0, nil, err
	}
	cost := fill(g, x, y, dist, transportCost, math.Inf(1))
	if math.IsInf(cost, 1) {
		return cost, nil, nil
	}
	return cost, backtrack(g, transportCost), nil
}

// newBandGrid validates shape and parameters, then allocates the band.
// Validation happens before any computation: ErrEmptySequence,
// band.ErrInvalidRadius, ErrInvalidTransportCost, then
// ErrLengthMismatchBand when the radius cannot bridge |n-m|.
func newBandGrid(n, m int, opts Options) (*band.Grid, error) {
	if n == 0 || m == 0 {
		return nil, ErrEmptySequence
	}
	if opts.Radius < 0 {
		return nil, band.ErrInvalidRadius
	}
	if opts.TransportCost < 1 || math.IsNaN(opts.TransportCost) {
		return nil, ErrInvalidTransportCost
	}
	d := n - m
	if d < 0 {
		d = -d
	}
	if opts.Radius < d {
		return nil, &ErrLengthMismatchBand{Radius: opts.Radius, LenX: n, LenY: m}
	}
	return band.New(n, m, opts.Radius)
}

func newBoundsGrid(n, m int, rowLo, rowHi []int, transportCost float64) (*band.Grid, error) {
	if n == 0 || m == 0 {
		return nil, ErrEmptySequence
	}
	if transportCost < 1 || math.IsNaN(transportCost) {
		return nil, ErrInvalidTransportCost
	}
	return band.FromBounds(n, m, rowLo, rowHi)
}

// fill runs the DTW recurrence over the band cells in row-major order and
// returns the accumulated cost at the corner cell, or +Inf once the minimum
// of a row exceeds cutoff.
func fill[S any](g *band.Grid, x, y []S, dist distance.Func[S], tc, cutoff float64) float64 {
	g.Fill(math.Inf(1))
	g.Set(0, 0, 0)

	n, m := len(x), len(y)
	for i := 1; i <= n; i++ {
		lo, hi := g.RowBounds(i)
		rowMin := math.Inf(1)
		for j := lo; j <= hi; j++ {
			best := g.At(i-1, j-1)
			if v := tc * g.At(i-1, j); v < best {
				best = v
			}
			if h := tc * g.At(i, j-1); h < best {
				best = h
			}
			c := dist(x[i-1], y[j-1]) + best
			g.Set(i, j, c)
			if c < rowMin {
				rowMin = c
			}
		}
		if rowMin > cutoff {
			return math.Inf(1)
		}
	}
	return g.At(n, m)
}

// backtrack walks the filled grid from the corner cell back to the origin,
// applying the same diagonal > vertical > horizontal tie-break as the fill.
func backtrack(g *band.Grid, tc float64) []Step {
	n, m := g.Rows(), g.Cols()
	steps := make([]Step, 0, n+m)

	i, j := n, m
	for i > 1 || j > 1 {
		steps = append(steps, Step{I: i - 1, J: j - 1})
		diag := g.At(i-1, j-1)
		vert := tc * g.At(i-1, j)
		horz := tc * g.At(i, j-1)
		switch {
		case diag <= vert && diag <= horz:
			i--
			j--
		case vert <= horz:
			i--
		default:
			j--
		}
	}
	steps = append(steps, Step{I: 0, J: 0})

	for l, r := 0, len(steps)-1; l < r; l, r = l+1, r-1 {
		steps[l], steps[r] = steps[r], steps[l]
	}
	return steps
}
