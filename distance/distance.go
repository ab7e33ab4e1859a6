// Package distance provides pointwise inner distances for DTW alignment.
//
// A pointwise distance compares two individual samples, not whole sequences;
// the alignment kernels in package align accumulate it along a warping path.
// Samples are either scalars (float64) or fixed-width feature vectors
// ([]float64), so each function comes in a scalar and a vector flavor.
package distance

// Func is a pointwise distance between two individual samples.
// It must be pure and non-negative; symmetry is not required but is
// assumed by the symmetric DTW step pattern.
type Func[S any] func(a, b S) float64

// Registry maps metric names to scalar-sample distance functions.
var Registry = map[string]Func[float64]{
	"sqeuclidean": SquaredEuclidean,
	"euclidean":   Absolute, // sqrt((a-b)^2) == |a-b| for scalars
	"absolute":    Absolute,
	"l1":          Absolute,
	"l2":          Absolute,
}

// VecRegistry maps metric names to vector-sample distance functions.
var VecRegistry = map[string]Func[[]float64]{
	"sqeuclidean": SquaredEuclideanVec,
	"euclidean":   EuclideanVec,
	"l2":          EuclideanVec,
	"manhattan":   ManhattanVec,
	"l1":          ManhattanVec,
	"chebyshev":   ChebyshevVec,
	"linf":        ChebyshevVec,
	"cosine":      CosineVec,
}

// Get returns the scalar distance function for the given metric name.
func Get(name string) (Func[float64], bool) {
	f, ok := Registry[name]
	return f, ok
}

// GetVec returns the vector distance function for the given metric name.
func GetVec(name string) (Func[[]float64], bool) {
	f, ok := VecRegistry[name]
	return f, ok
}
