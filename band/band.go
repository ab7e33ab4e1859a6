// Package band provides the banded cost-matrix storage shared by the DTW
// alignment kernels.
//
// A Grid covers the (n+1)x(m+1) dynamic-programming lattice of a pair of
// sequences with lengths n and m, but only allocates the cells inside a
// Sakoe-Chiba band of radius r around the diagonal (widened by the length
// difference so the band can still reach the corner cell). Memory is
// O(n*(r+|n-m|)) instead of O(n*m). Cells outside the band read as +Inf,
// the "unreachable" sentinel of the DTW recurrence.
package band

import (
	"errors"
	"math"
)

var (
	// ErrInvalidRadius indicates a negative band radius.
	ErrInvalidRadius = errors.New("band: radius must be non-negative")

	// ErrIncompatibleBand indicates a zero radius with unequal sequence
	// lengths: the strict diagonal admits no alignment path.
	ErrIncompatibleBand = errors.New("band: zero radius requires equal sequence lengths")

	// ErrMalformedBounds indicates per-row bounds that are out of range
	// or inverted.
	ErrMalformedBounds = errors.New("band: per-row bounds are malformed")
)

// Grid is a banded accumulator over the DP lattice of an n-by-m alignment.
// Row 0 and column 0 form the recurrence boundary; row 0 holds only the
// base cell (0,0). Rows 1..n each hold the inclusive column range
// [lo[i], hi[i]]. A Grid is owned by a single kernel invocation.
type Grid struct {
	n, m  int
	lo    []int // inclusive lower column bound per row, len n+1
	hi    []int // inclusive upper column bound per row, len n+1
	off   []int // prefix offsets into cells, len n+2
	cells []float64
}

// New builds a Grid for sequence lengths n, m under a Sakoe-Chiba radius r.
// The effective band for row i spans [max(1, i-r-k), min(m, i+r+k)] where
// k = |n-m| compensates for the length difference. A radius covering the
// full lattice (r >= max(n, m)) degenerates to an unbanded grid.
func New(n, m, r int) (*Grid, error) {
	if r < 0 {
		return nil, ErrInvalidRadius
	}
	if r == 0 && n != m {
		return nil, ErrIncompatibleBand
	}
	if r > n+m {
		r = n + m // already full coverage; avoids overflow below
	}

	k := n - m
	if k < 0 {
		k = -k
	}

	lo := make([]int, n+1)
	hi := make([]int, n+1)
	for i := 1; i <= n; i++ {
		l := i - r - k
		if l < 1 {
			l = 1
		}
		h := i + r + k
		if h > m {
			h = m
		}
		lo[i], hi[i] = l, h
	}
	return build(n, m, lo, hi), nil
}

// FromBounds builds a Grid from externally supplied per-row column bounds.
// rowLo and rowHi must have length n and hold 1-based inclusive bounds for
// rows 1..n, each within [1, m] and non-inverted. Used by the FastDTW
// window projection and by sliding search to reuse the exact kernel over
// arbitrary band shapes.
func FromBounds(n, m int, rowLo, rowHi []int) (*Grid, error) {
	if len(rowLo) != n || len(rowHi) != n {
		return nil, ErrMalformedBounds
	}
	lo := make([]int, n+1)
	hi := make([]int, n+1)
	for i := 1; i <= n; i++ {
		l, h := rowLo[i-1], rowHi[i-1]
		if l < 1 || h > m || l > h {
			return nil, ErrMalformedBounds
		}
		lo[i], hi[i] = l, h
	}
	return build(n, m, lo, hi), nil
}

func build(n, m int, lo, hi []int) *Grid {
	// Row 0 holds only the base cell (0,0).
	lo[0], hi[0] = 0, 0

	off := make([]int, n+2)
	for i := 0; i <= n; i++ {
		off[i+1] = off[i] + hi[i] - lo[i] + 1
	}
	return &Grid{
		n:     n,
		m:     m,
		lo:    lo,
		hi:    hi,
		off:   off,
		cells: make([]float64, off[n+1]),
	}
}

// Rows returns n, the number of alignment rows.
func (g *Grid) Rows() int { return g.n }

// Cols returns m, the number of alignment columns.
func (g *Grid) Cols() int { return g.m }

// Cells returns the number of allocated band cells.
func (g *Grid) Cells() int { return len(g.cells) }

// RowBounds returns the inclusive column range held by row i.
func (g *Grid) RowBounds(i int) (lo, hi int) {
	return g.lo[i], g.hi[i]
}

// Fill sets every band cell to v.
func (g *Grid) Fill(v float64) {
	for i := range g.cells {
		g.cells[i] = v
	}
}

// At returns the accumulated cost at (i, j), or +Inf outside the band.
func (g *Grid) At(i, j int) float64 {
	if i < 0 || i > g.n || j < g.lo[i] || j > g.hi[i] {
		return math.Inf(1)
	}
	return g.cells[g.off[i]+j-g.lo[i]]
}

// Set stores v at band cell (i, j). The cell must be inside the band.
func (g *Grid) Set(i, j int, v float64) {
	g.cells[g.off[i]+j-g.lo[i]] = v
}
