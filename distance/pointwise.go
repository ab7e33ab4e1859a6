package distance

import "math"

// SquaredEuclidean computes the squared difference between two scalars.
// D(a, b) = (a - b)^2
func SquaredEuclidean(a, b float64) float64 {
	d := a - b
	return d * d
}

// Absolute computes the absolute difference between two scalars.
// D(a, b) = |a - b|
func Absolute(a, b float64) float64 {
	return math.Abs(a - b)
}

// Minkowski returns the scalar Minkowski distance with the given p.
// D(a, b) = |a - b|^p
// Note the missing outer 1/p root: for pointwise accumulation along a
// warping path the root is deferred to the caller, matching the
// sqeuclidean convention.
func Minkowski(p float64) Func[float64] {
	return func(a, b float64) float64 {
		return math.Pow(math.Abs(a-b), p)
	}
}
