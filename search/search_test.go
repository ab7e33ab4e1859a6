package search_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nozzle/dtw/align"
	"github.com/nozzle/dtw/band"
	"github.com/nozzle/dtw/distance"
	"github.com/nozzle/dtw/norm"
	"github.com/nozzle/dtw/search"
)

// A query shape embedded verbatim in the target at offset 2, flanked by
// far-away plateau samples.
var (
	query  = []float64{0, 1, 2, 1, 0}
	target = []float64{5, 5, 0, 1, 2, 1, 0, 5, 5}
)

// TestProfile_Validation verifies shape and parameter errors surface before
// any window is evaluated.
func TestProfile_Validation(t *testing.T) {
	opts := search.DefaultOptions[float64]()

	_, err := search.Profile(nil, target, distance.SquaredEuclidean, opts)
	assert.ErrorIs(t, err, align.ErrEmptySequence)
	_, err = search.Profile(query, nil, distance.SquaredEuclidean, opts)
	assert.ErrorIs(t, err, align.ErrEmptySequence)

	_, err = search.Profile(target, query, distance.SquaredEuclidean, opts)
	var tooLong *search.ErrQueryTooLong
	require.ErrorAs(t, err, &tooLong)
	assert.Equal(t, len(target), tooLong.QueryLen)
	assert.Equal(t, len(query), tooLong.TargetLen)

	bad := opts
	bad.Radius = -1
	_, err = search.Profile(query, target, distance.SquaredEuclidean, bad)
	assert.ErrorIs(t, err, band.ErrInvalidRadius)

	bad = opts
	bad.TransportCost = 0.5
	_, err = search.Profile(query, target, distance.SquaredEuclidean, bad)
	assert.ErrorIs(t, err, align.ErrInvalidTransportCost)
}

// TestProfile_FullProfile verifies the SaveAll distance profile: one cost
// per aligned window, with an exact zero at the embedded occurrence.
func TestProfile_FullProfile(t *testing.T) {
	opts := search.DefaultOptions[float64]()
	opts.Radius = 2
	opts.SaveAll = true

	res, err := search.Profile(query, target, distance.SquaredEuclidean, opts)
	require.NoError(t, err)
	require.Len(t, res.Profile, len(target)-len(query)+1)

	assert.Equal(t, 2, res.Best.Offset)
	assert.Equal(t, 0.0, res.Best.Cost)
	assert.Equal(t, 0.0, res.Profile[2])
	for s, c := range res.Profile {
		if s == 2 {
			continue
		}
		assert.Greater(t, c, 0.0, "offset %d overlaps the plateau", s)
	}
	assert.Equal(t, 0, res.Pruned)
}

// TestProfile_BestOnly verifies the best-match-only mode agrees with the
// full profile's minimum and returns no profile.
func TestProfile_BestOnly(t *testing.T) {
	opts := search.DefaultOptions[float64]()
	opts.Radius = 2

	res, err := search.Profile(query, target, distance.SquaredEuclidean, opts)
	require.NoError(t, err)
	assert.Nil(t, res.Profile)
	assert.Equal(t, 2, res.Best.Offset)
	assert.Equal(t, 0.0, res.Best.Cost)
	require.Len(t, res.Matches, 1)
	assert.Equal(t, res.Best, res.Matches[0])
}

// TestProfile_PruneEndpoints verifies the endpoint lower bound skips offsets
// without changing the reported best. Once the zero-cost match at offset 2
// is found, both remaining offsets start or end on the plateau and are
// bounded away.
func TestProfile_PruneEndpoints(t *testing.T) {
	opts := search.DefaultOptions[float64]()
	opts.Radius = 2
	opts.PruneEndpoints = true
	opts.SaveAll = true

	res, err := search.Profile(query, target, distance.SquaredEuclidean, opts)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Best.Offset)
	assert.Equal(t, 0.0, res.Best.Cost)
	assert.GreaterOrEqual(t, res.Pruned, 2, "offsets 3 and 4 must be bounded away")

	pruned := 0
	for _, c := range res.Profile {
		if math.IsInf(c, 1) {
			pruned++
		}
	}
	assert.Equal(t, res.Pruned, pruned, "pruned offsets report +Inf in the profile")
}

// TestProfile_TopK verifies deeper result sets come back in ascending cost
// order and match the full profile.
func TestProfile_TopK(t *testing.T) {
	opts := search.DefaultOptions[float64]()
	opts.Radius = 2
	opts.SaveAll = true
	opts.TopK = 3

	res, err := search.Profile(query, target, distance.SquaredEuclidean, opts)
	require.NoError(t, err)
	require.Len(t, res.Matches, 3)

	for i := 1; i < len(res.Matches); i++ {
		assert.LessOrEqual(t, res.Matches[i-1].Cost, res.Matches[i].Cost)
	}
	for _, m := range res.Matches {
		assert.Equal(t, res.Profile[m.Offset], m.Cost)
	}
	assert.Equal(t, 2, res.Matches[0].Offset)
}

// TestProfile_ParallelMatchesSerial verifies worker count never changes the
// profile or the best match.
func TestProfile_ParallelMatchesSerial(t *testing.T) {
	long := make([]float64, 400)
	for i := range long {
		long[i] = math.Sin(0.2*float64(i)) + 0.3*math.Cos(0.7*float64(i))
	}
	q := long[150:170]

	serial := search.DefaultOptions[float64]()
	serial.Radius = 3
	serial.SaveAll = true

	parallelOpts := serial
	parallelOpts.NumWorkers = 4

	want, err := search.Profile(q, long, distance.SquaredEuclidean, serial)
	require.NoError(t, err)
	got, err := search.Profile(q, long, distance.SquaredEuclidean, parallelOpts)
	require.NoError(t, err)

	assert.Equal(t, want.Best, got.Best)
	require.Len(t, got.Profile, len(want.Profile))
	for s := range want.Profile {
		assert.InDelta(t, want.Profile[s], got.Profile[s], 1e-12, "offset %d", s)
	}
}

// TestProfile_ParallelPruning verifies pruning under parallel evaluation
// still reports the exact best match for k == 1.
func TestProfile_ParallelPruning(t *testing.T) {
	opts := search.DefaultOptions[float64]()
	opts.Radius = 2
	opts.PruneEndpoints = true
	opts.NumWorkers = 4

	res, err := search.Profile(query, target, distance.SquaredEuclidean, opts)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Best.Offset)
	assert.Equal(t, 0.0, res.Best.Cost)
}

// TestProfile_Normalize verifies per-window normalization finds a shape
// occurrence that has been shifted and rescaled in the target.
func TestProfile_Normalize(t *testing.T) {
	// target embeds 3*query+10 at offset 2.
	scaled := []float64{9, 9, 10, 13, 16, 13, 10, 9, 9}

	opts := search.DefaultOptions[float64]()
	opts.Radius = 2
	opts.Normalize = norm.ZScore

	res, err := search.Profile(query, scaled, distance.SquaredEuclidean, opts)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Best.Offset)
	assert.InDelta(t, 0.0, res.Best.Cost, 1e-12)

	// Without normalization the affine copy is far from the raw query.
	raw := search.DefaultOptions[float64]()
	raw.Radius = 2
	rawRes, err := search.Profile(query, scaled, distance.SquaredEuclidean, raw)
	require.NoError(t, err)
	assert.Greater(t, rawRes.Best.Cost, 1.0)
}

// TestProfile_QueryEqualsTarget verifies the degenerate single-offset search.
func TestProfile_QueryEqualsTarget(t *testing.T) {
	opts := search.DefaultOptions[float64]()
	opts.SaveAll = true

	res, err := search.Profile(query, query, distance.SquaredEuclidean, opts)
	require.NoError(t, err)
	require.Len(t, res.Profile, 1)
	assert.Equal(t, 0, res.Best.Offset)
	assert.Equal(t, 0.0, res.Best.Cost)
}

// TestProfile_Multivariate verifies searching vector-sample sequences.
func TestProfile_Multivariate(t *testing.T) {
	tgt := [][]float64{{5, 5}, {0, 0}, {1, -1}, {2, -2}, {1, -1}, {0, 0}, {5, 5}}
	q := tgt[1:6]

	opts := search.DefaultOptions[[]float64]()
	opts.SaveAll = true

	res, err := search.Profile(q, tgt, distance.SquaredEuclideanVec, opts)
	require.NoError(t, err)
	require.Len(t, res.Profile, 3)
	assert.Equal(t, 1, res.Best.Offset)
	assert.Equal(t, 0.0, res.Best.Cost)
}
