package distance

import "math"

// SquaredEuclideanVec computes the squared Euclidean distance between
// two samples of equal width.
// D(a, b) = sum((a_i - b_i)^2)
func SquaredEuclideanVec(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

// EuclideanVec computes the Euclidean (L2) distance between two samples.
// D(a, b) = sqrt(sum((a_i - b_i)^2))
func EuclideanVec(a, b []float64) float64 {
	return math.Sqrt(SquaredEuclideanVec(a, b))
}

// ManhattanVec computes the Manhattan (L1) distance between two samples.
// D(a, b) = sum(|a_i - b_i|)
func ManhattanVec(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += math.Abs(a[i] - b[i])
	}
	return sum
}

// ChebyshevVec computes the Chebyshev (L-infinity) distance between two samples.
// D(a, b) = max(|a_i - b_i|)
func ChebyshevVec(a, b []float64) float64 {
	var maxVal float64
	for i := range a {
		d := math.Abs(a[i] - b[i])
		if d > maxVal {
			maxVal = d
		}
	}
	return maxVal
}

// CosineVec computes the cosine distance between two samples.
// D(a, b) = 1 - (a . b) / (|a| |b|)
// Zero-norm samples are treated as maximally distant from everything
// except another zero-norm sample.
func CosineVec(a, b []float64) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		if na == nb {
			return 0
		}
		return 1
	}
	return 1 - dot/math.Sqrt(na*nb)
}
