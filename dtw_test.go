package dtw_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nozzle/dtw"
	"github.com/nozzle/dtw/align"
	"github.com/nozzle/dtw/distance"
)

// TestExact_Distance verifies the exact metric against a hand-checked
// alignment: warping absorbs the repeated sample at zero cost.
func TestExact_Distance(t *testing.T) {
	metric := dtw.NewExact(distance.SquaredEuclidean)

	cost, err := metric.Distance([]float64{1, 2, 3}, []float64{1, 2, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, 0.0, cost)

	cost, err = metric.Distance([]float64{1, 2, 3}, []float64{2, 2, 2})
	require.NoError(t, err)
	assert.Equal(t, 2.0, cost)
}

// TestExact_Path verifies path recovery through the metric wrapper.
func TestExact_Path(t *testing.T) {
	metric := dtw.NewExact(distance.SquaredEuclidean)

	cost, path, err := metric.Path([]float64{1, 2, 3}, []float64{1, 2, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, 0.0, cost)
	assert.Equal(t, []align.Step{{I: 0, J: 0}, {I: 1, J: 1}, {I: 1, J: 2}, {I: 2, J: 3}}, path)
}

// TestExact_Banded verifies metric fields flow through to the kernel.
func TestExact_Banded(t *testing.T) {
	metric := dtw.NewExact(distance.SquaredEuclidean)
	metric.Radius = 1

	_, err := metric.Distance(make([]float64, 3), make([]float64, 8))
	var mismatch *align.ErrLengthMismatchBand
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, 1, mismatch.Radius)
}

// TestSoft_Distance verifies the soft metric stays at or below exact and
// converges to it for small gamma.
func TestSoft_Distance(t *testing.T) {
	x := []float64{0, 3, 6, 3, 0}
	y := []float64{0, 3, 3, 6, 0}

	exactCost, err := dtw.NewExact(distance.SquaredEuclidean).Distance(x, y)
	require.NoError(t, err)

	soft := dtw.NewSoft(distance.SquaredEuclidean, 1.0)
	softCost, err := soft.Distance(x, y)
	require.NoError(t, err)
	assert.LessOrEqual(t, softCost, exactCost)

	sharp := dtw.NewSoft(distance.SquaredEuclidean, 1e-5)
	sharpCost, err := sharp.Distance(x, y)
	require.NoError(t, err)
	assert.InDelta(t, exactCost, sharpCost, 1e-3)
}

// TestSoft_InvalidGamma verifies gamma validation via the metric wrapper.
func TestSoft_InvalidGamma(t *testing.T) {
	metric := dtw.NewSoft(distance.SquaredEuclidean, 0)
	_, err := metric.Distance([]float64{1}, []float64{1})
	var bad *align.ErrInvalidGamma
	assert.ErrorAs(t, err, &bad)
}

// TestFast_Distance verifies the approximation never undercuts exact and
// equals it on identical inputs.
func TestFast_Distance(t *testing.T) {
	x := make([]float64, 64)
	y := make([]float64, 64)
	for i := range x {
		x[i] = math.Sin(0.3 * float64(i))
		y[i] = math.Sin(0.3*float64(i) + 0.5)
	}

	exactCost, err := dtw.NewExact(distance.SquaredEuclidean).Distance(x, y)
	require.NoError(t, err)

	fast := dtw.NewFast(distance.SquaredEuclidean, align.ScalarMean, 2)
	fastCost, err := fast.Distance(x, y)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, fastCost, exactCost-1e-9)

	self, err := fast.Distance(x, x)
	require.NoError(t, err)
	assert.Equal(t, 0.0, self)
}

// TestFast_Path verifies the approximate path is a valid warping path.
func TestFast_Path(t *testing.T) {
	x := make([]float64, 40)
	y := make([]float64, 40)
	for i := range x {
		x[i] = math.Sin(0.4 * float64(i))
		y[i] = math.Sin(0.4*float64(i) + 0.3)
	}

	fast := dtw.NewFast(distance.SquaredEuclidean, align.ScalarMean, 2)
	_, path, err := fast.Path(x, y)
	require.NoError(t, err)
	require.NotEmpty(t, path)

	assert.Equal(t, align.Step{I: 0, J: 0}, path[0])
	assert.Equal(t, align.Step{I: len(x) - 1, J: len(y) - 1}, path[len(path)-1])
	for i := 1; i < len(path); i++ {
		di := path[i].I - path[i-1].I
		dj := path[i].J - path[i-1].J
		assert.True(t, di >= 0 && dj >= 0 && di <= 1 && dj <= 1 && di+dj > 0,
			"step %d: (%d,%d) -> (%d,%d)", i, path[i-1].I, path[i-1].J, path[i].I, path[i].J)
	}
}

// TestMetric_Interface checks the variants through the shared contract.
func TestMetric_Interface(t *testing.T) {
	x := []float64{0, 1, 2}
	metrics := map[string]dtw.Metric[float64]{
		"exact": dtw.NewExact(distance.SquaredEuclidean),
		"soft":  dtw.NewSoft(distance.SquaredEuclidean, 0.1),
		"fast":  dtw.NewFast(distance.SquaredEuclidean, align.ScalarMean, 1),
	}
	for name, m := range metrics {
		cost, err := m.Distance(x, x)
		require.NoError(t, err, name)
		assert.LessOrEqual(t, cost, 0.0, "%s self-distance must not be positive", name)
	}
}
