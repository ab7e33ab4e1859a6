// Package search implements sliding nearest-neighbor DTW search: the DTW
// distance between a fixed query and every aligned window of a longer
// target sequence, either as a full distance profile or as the best match.
//
// Each window comparison is an independent banded exact-DTW evaluation, so
// offsets can be computed serially or across workers. Two admissible
// optimizations keep repeated evaluation cheap without ever changing the
// reported minimum: an endpoint lower bound (the first and last query
// samples must align with the first and last window samples in any warping
// path) rejects hopeless offsets before the fill, and the fill itself
// abandons once a whole row exceeds the best cost seen so far.
package search

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/nozzle/dtw/align"
	"github.com/nozzle/dtw/band"
	"github.com/nozzle/dtw/distance"
	"github.com/nozzle/dtw/internal/heap"
	"github.com/nozzle/dtw/internal/parallel"
)

// ErrQueryTooLong indicates a query longer than the search target: no
// aligned window exists.
type ErrQueryTooLong struct {
	QueryLen  int
	TargetLen int
}

func (e *ErrQueryTooLong) Error() string {
	return fmt.Sprintf("search: query length %d exceeds target length %d", e.QueryLen, e.TargetLen)
}

// Options configures a sliding search over sequences with sample type S.
type Options[S any] struct {
	// Radius is the Sakoe-Chiba band radius for each window comparison.
	// Windows have the query's length, so any non-negative radius is valid.
	Radius int

	// TransportCost is the non-diagonal move multiplier, >= 1.
	TransportCost float64

	// Normalize is applied to the query once and to every window before
	// alignment. Nil means identity (sequences are used as-is).
	Normalize func(x []S) []S

	// PruneEndpoints rejects an offset without a full fill when the
	// endpoint lower bound already exceeds the best (or k-th best) cost
	// seen so far. Rejected offsets report +Inf in a SaveAll profile.
	PruneEndpoints bool

	// SaveAll retains the cost of every offset in Result.Profile. When
	// false only the best matches are kept and in-fill early abandoning
	// is enabled.
	SaveAll bool

	// TopK is the number of best matches to report, at least 1.
	TopK int

	// NumWorkers is the number of goroutines evaluating offsets.
	// 0 = auto-detect based on CPU cores; 1 forces serial evaluation.
	NumWorkers int
}

// DefaultOptions returns an unconstrained serial best-match configuration.
func DefaultOptions[S any]() Options[S] {
	return Options[S]{
		Radius:        align.FullCoverage,
		TransportCost: 1,
		TopK:          1,
		NumWorkers:    1,
	}
}

// Match is one scored window position.
type Match struct {
	Offset int // 0-based start of the window in the target
	Cost   float64
}

// Result is the outcome of a sliding search.
type Result struct {
	// Profile holds one cost per valid offset (length
	// len(target)-len(query)+1) when SaveAll is set, nil otherwise.
	// Offsets rejected by endpoint pruning hold +Inf.
	Profile []float64

	// Best is the lowest-cost match, Offset -1 if nothing scored finite.
	Best Match

	// Matches are the TopK best matches in ascending cost order.
	Matches []Match

	// Pruned counts offsets rejected by the endpoint lower bound.
	Pruned int
}

// Profile computes the DTW distance between query and every aligned window
// target[s : s+len(query)] for offsets s in [0, len(target)-len(query)].
// All shape and parameter validation happens before any computation.
func Profile[S any](query, target []S, dist distance.Func[S], opts Options[S]) (*Result, error) {
	m, n := len(query), len(target)
	if m == 0 || n == 0 {
		return nil, align.ErrEmptySequence
	}
	if m > n {
		return nil, &ErrQueryTooLong{QueryLen: m, TargetLen: n}
	}
	if opts.Radius < 0 {
		return nil, band.ErrInvalidRadius
	}
	if opts.TransportCost < 1 || math.IsNaN(opts.TransportCost) {
		return nil, align.ErrInvalidTransportCost
	}

	k := opts.TopK
	if k < 1 {
		k = 1
	}
	width := n - m + 1
	workers := opts.NumWorkers
	if workers <= 0 {
		workers = parallel.NumWorkers()
	}
	if workers > width {
		workers = width
	}

	q := query
	if opts.Normalize != nil {
		q = opts.Normalize(query)
	}
	alignOpts := align.Options{Radius: opts.Radius, TransportCost: opts.TransportCost}

	if workers == 1 {
		return searchSerial(q, target, dist, opts, alignOpts, width, k)
	}
	return searchParallel(q, target, dist, opts, alignOpts, width, k, workers)
}

// searchSerial streams offsets in order, using the k-th best cost retained
// in the match heap as both the pruning threshold and the early-abandon
// cutoff. Deterministic, and allocation-free beyond the per-window grid.
func searchSerial[S any](q, target []S, dist distance.Func[S], opts Options[S], alignOpts align.Options, width, k int) (*Result, error) {
	m := len(q)
	best := heap.New(k)
	pruned := 0

	var profile []float64
	if opts.SaveAll {
		profile = make([]float64, width)
	}

	for s := 0; s < width; s++ {
		win := target[s : s+m]
		if opts.Normalize != nil {
			win = opts.Normalize(win)
		}

		threshold := best.MaxCost()
		if opts.PruneEndpoints {
			lb := dist(q[0], win[0]) + dist(q[m-1], win[m-1])
			if lb >= threshold {
				pruned++
				if profile != nil {
					profile[s] = math.Inf(1)
				}
				continue
			}
		}

		cutoff := math.Inf(1)
		if !opts.SaveAll {
			cutoff = threshold
		}
		c, err := align.DistanceCutoff(q, win, dist, alignOpts, cutoff)
		if err != nil {
			return nil, err
		}
		if profile != nil {
			profile[s] = c
		}
		best.Push(s, c)
	}
	return buildResult(best, profile, pruned), nil
}

// searchParallel evaluates offsets across workers into a shared cost slice.
// The running best is an atomic compare-and-swap on float bits; a stale
// read only weakens pruning, never the result. Pruning against a single
// shared best is exact only for k == 1, so deeper result sets compute
// every offset.
func searchParallel[S any](q, target []S, dist distance.Func[S], opts Options[S], alignOpts align.Options, width, k, workers int) (*Result, error) {
	m := len(q)
	costs := make([]float64, width)

	var bestBits atomic.Uint64
	bestBits.Store(math.Float64bits(math.Inf(1)))
	var pruned atomic.Int64
	var firstErr atomic.Pointer[error]

	pruneOK := opts.PruneEndpoints && k == 1
	abandonOK := !opts.SaveAll && k == 1

	parallel.For(0, width, workers, func(s int) {
		win := target[s : s+m]
		if opts.Normalize != nil {
			win = opts.Normalize(win)
		}

		threshold := math.Inf(1)
		if pruneOK || abandonOK {
			threshold = math.Float64frombits(bestBits.Load())
		}
		if pruneOK {
			lb := dist(q[0], win[0]) + dist(q[m-1], win[m-1])
			if lb >= threshold {
				pruned.Add(1)
				costs[s] = math.Inf(1)
				return
			}
		}

		cutoff := math.Inf(1)
		if abandonOK {
			cutoff = threshold
		}
		c, err := align.DistanceCutoff(q, win, dist, alignOpts, cutoff)
		if err != nil {
			firstErr.CompareAndSwap(nil, &err)
			costs[s] = math.Inf(1)
			return
		}
		costs[s] = c

		for {
			old := bestBits.Load()
			if c >= math.Float64frombits(old) {
				break
			}
			if bestBits.CompareAndSwap(old, math.Float64bits(c)) {
				break
			}
		}
	})

	if ep := firstErr.Load(); ep != nil {
		return nil, *ep
	}

	best := heap.New(k)
	for s, c := range costs {
		best.Push(s, c)
	}
	var profile []float64
	if opts.SaveAll {
		profile = costs
	}
	return buildResult(best, profile, int(pruned.Load())), nil
}

func buildResult(best *heap.MaxHeap, profile []float64, pruned int) *Result {
	best.Sort()
	matches := make([]Match, 0, best.Size)
	for i := 0; i < best.K; i++ {
		if best.Offsets[i] < 0 || math.IsInf(best.Costs[i], 1) {
			continue
		}
		matches = append(matches, Match{Offset: best.Offsets[i], Cost: best.Costs[i]})
	}

	res := &Result{
		Profile: profile,
		Best:    Match{Offset: -1, Cost: math.Inf(1)},
		Matches: matches,
		Pruned:  pruned,
	}
	if len(matches) > 0 {
		res.Best = matches[0]
	}
	return res
}
