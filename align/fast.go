package align

import (
	"github.com/nozzle/dtw/band"
	"github.com/nozzle/dtw/distance"
)

// MeanFunc combines two adjacent samples into one during FastDTW coarsening.
type MeanFunc[S any] func(a, b S) S

// ScalarMean averages two scalar samples.
func ScalarMean(a, b float64) float64 {
	return (a + b) / 2
}

// VectorMean averages two vector samples elementwise.
func VectorMean(a, b []float64) []float64 {
	out := make([]float64, len(a))
	for i := range a {
		out[i] = (a[i] + b[i]) / 2
	}
	return out
}

// FastDistance computes the FastDTW approximation of the DTW cost. The
// result never underestimates the exact cost (the refined band is a subset
// of the full lattice) and converges to it as radius grows.
func FastDistance[S any](x, y []S, dist distance.Func[S], mean MeanFunc[S], radius int) (float64, error) {
	cost, _, err := FastPath(x, y, dist, mean, radius)
	return cost, err
}

// FastPath computes the FastDTW cost and alignment path by multi-resolution
// refinement: coarsen both sequences by pairwise means, recurse for a coarse
// path, project that path back to full resolution as a per-row window
// expanded by radius, and re-solve the exact kernel inside the window.
// Recursion depth is about log2(min(n, m)); sequences at or below the
// radius+2 base threshold are solved exactly over the full lattice.
func FastPath[S any](x, y []S, dist distance.Func[S], mean MeanFunc[S], radius int) (float64, []Step, error) {
	if len(x) == 0 || len(y) == 0 {
		return 0, nil, ErrEmptySequence
	}
	if radius < 0 {
		return 0, nil, band.ErrInvalidRadius
	}
	return fastAlign(x, y, dist, mean, radius)
}

func fastAlign[S any](x, y []S, dist distance.Func[S], mean MeanFunc[S], radius int) (float64, []Step, error) {
	n, m := len(x), len(y)
	minLen := n
	if m < minLen {
		minLen = m
	}
	if minLen <= radius+2 {
		return Path(x, y, dist, Options{Radius: n + m, TransportCost: 1})
	}

	coarseX := coarsen(x, mean)
	coarseY := coarsen(y, mean)
	_, coarsePath, err := fastAlign(coarseX, coarseY, dist, mean, radius)
	if err != nil {
		return 0, nil, err
	}

	rowLo, rowHi := projectWindow(coarsePath, n, m, radius)
	return PathBounds(x, y, dist, rowLo, rowHi, 1)
}

// coarsen halves a sequence's resolution by averaging consecutive sample
// pairs, dropping the unpaired tail sample of odd-length input.
func coarsen[S any](x []S, mean MeanFunc[S]) []S {
	half := len(x) / 2
	out := make([]S, half)
	for i := 0; i < half; i++ {
		out[i] = mean(x[2*i], x[2*i+1])
	}
	return out
}

// projectWindow maps a coarse-resolution alignment path onto per-row column
// bounds at full resolution. Each coarse cell (i, j) covers the fine block
// rows 2i..2i+1 by columns 2j..2j+1; blocks touching the coarse boundary
// absorb the unpaired odd row/column. The resulting intervals are then
// widened by radius in both directions. Bounds are returned 1-based for
// band.FromBounds.
func projectWindow(path []Step, n, m, radius int) (rowLo, rowHi []int) {
	nc, mc := n/2, m/2

	// Column extent of the coarse path on each coarse row. The path is
	// monotone, so extents are non-decreasing row to row.
	minJ := make([]int, nc)
	maxJ := make([]int, nc)
	for i := range minJ {
		minJ[i] = mc
	}
	for _, st := range path {
		if st.J < minJ[st.I] {
			minJ[st.I] = st.J
		}
		if st.J > maxJ[st.I] {
			maxJ[st.I] = st.J
		}
	}

	// Project coarse extents onto fine rows.
	baseLo := make([]int, n)
	baseHi := make([]int, n)
	for fi := 0; fi < n; fi++ {
		ci := fi / 2
		if ci >= nc {
			ci = nc - 1 // unpaired last row maps to the last coarse row
		}
		lo := 2 * minJ[ci]
		hi := 2*maxJ[ci] + 1
		if maxJ[ci] == mc-1 || hi > m-1 {
			hi = m - 1
		}
		baseLo[fi], baseHi[fi] = lo, hi
	}

	// Widen by radius. Extents are monotone, so the window extremes sit at
	// the clamped row offsets.
	rowLo = make([]int, n)
	rowHi = make([]int, n)
	for fi := 0; fi < n; fi++ {
		li := fi - radius
		if li < 0 {
			li = 0
		}
		hiRow := fi + radius
		if hiRow > n-1 {
			hiRow = n - 1
		}
		lo := baseLo[li] - radius
		if lo < 0 {
			lo = 0
		}
		hi := baseHi[hiRow] + radius
		if hi > m-1 {
			hi = m - 1
		}
		rowLo[fi] = lo + 1
		rowHi[fi] = hi + 1
	}
	return rowLo, rowHi
}
