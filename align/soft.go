package align

import (
	"math"

	"github.com/nozzle/dtw/band"
	"github.com/nozzle/dtw/distance"
)

// SoftOptions configures the soft-DTW kernel.
type SoftOptions struct {
	// Gamma is the smoothing strength. Must be positive; as Gamma
	// approaches 0 the soft cost converges to the exact DTW cost.
	Gamma float64

	// Radius optionally constrains the fill to a Sakoe-Chiba band with the
	// same mechanics as the exact kernel. Soft alignment is typically run
	// unbanded, so the default is FullCoverage.
	Radius int
}

// DefaultSoftOptions returns an unbanded configuration with Gamma 1.
func DefaultSoftOptions() SoftOptions {
	return SoftOptions{
		Gamma:  1,
		Radius: FullCoverage,
	}
}

// SoftDistance computes the soft-DTW cost between x and y: the exact DTW
// recurrence with the hard minimum replaced by the smoothed minimum
//
//	softmin_g(a, b, c) = -g * log(exp(-a/g) + exp(-b/g) + exp(-c/g))
//
// which makes the cost differentiable in the inputs. The result is a cost
// only, never a path: smoothing blends all warping paths rather than
// selecting one.
func SoftDistance[S any](x, y []S, dist distance.Func[S], opts SoftOptions) (float64, error) {
	n, m := len(x), len(y)
	if n == 0 || m == 0 {
		return 0, ErrEmptySequence
	}
	if !(opts.Gamma > 0) { // rejects NaN as well
		return 0, &ErrInvalidGamma{Gamma: opts.Gamma}
	}
	g, err := band.New(n, m, opts.Radius)
	if err != nil {
		return 0, err
	}

	g.Fill(math.Inf(1))
	g.Set(0, 0, 0)
	for i := 1; i <= n; i++ {
		lo, hi := g.RowBounds(i)
		for j := lo; j <= hi; j++ {
			sm := softmin3(g.At(i-1, j-1), g.At(i-1, j), g.At(i, j-1), opts.Gamma)
			g.Set(i, j, dist(x[i-1], y[j-1])+sm)
		}
	}
	return g.At(n, m), nil
}

// softmin3 is the smoothed minimum of three candidates, computed as a
// shifted log-sum-exp: subtracting the running minimum before exponentiating
// keeps every exponent non-positive, so the sum cannot overflow even for
// very small gamma. Unreachable (+Inf) candidates contribute exp(-Inf) = 0.
func softmin3(a, b, c, gamma float64) float64 {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	if math.IsInf(m, 1) {
		return m
	}
	s := math.Exp((m-a)/gamma) + math.Exp((m-b)/gamma) + math.Exp((m-c)/gamma)
	return m - gamma*math.Log(s)
}
