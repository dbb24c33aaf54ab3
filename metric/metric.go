// Package metric provides the distance functions used for vector comparison.
// All metrics follow the same convention: smaller distance = more similar.
package metric

import (
	"fmt"
	"math"
	"strings"
)

// MaxDistance is the sentinel returned when two vectors of different
// lengths are compared. It sorts after every valid distance, so scan
// loops can treat distance computation as a total function and never
// special-case malformed candidates.
const MaxDistance float32 = math.MaxFloat32

// Metric selects the distance function used for vector comparison.
type Metric int

const (
	Euclidean Metric = iota
	Cosine
	Manhattan
	DotProduct
)

func (m Metric) String() string {
	switch m {
	case Euclidean:
		return "Euclidean"
	case Cosine:
		return "Cosine"
	case Manhattan:
		return "Manhattan"
	case DotProduct:
		return "DotProduct"
	default:
		return fmt.Sprintf("Unknown(%d)", int(m))
	}
}

// ParseMetric converts a metric name (as produced by String) back to a
// Metric. Matching is case-insensitive.
func ParseMetric(s string) (Metric, error) {
	switch strings.ToLower(s) {
	case "euclidean":
		return Euclidean, nil
	case "cosine":
		return Cosine, nil
	case "manhattan":
		return Manhattan, nil
	case "dotproduct":
		return DotProduct, nil
	default:
		return 0, fmt.Errorf("unknown metric: %q", s)
	}
}

// Func is a function type for distance calculation.
type Func func(a, b []float32) float32

// Provider returns the distance function for the given metric.
func Provider(m Metric) (Func, error) {
	switch m {
	case Euclidean:
		return EuclideanDistance, nil
	case Cosine:
		return CosineDistance, nil
	case Manhattan:
		return ManhattanDistance, nil
	case DotProduct:
		return DotProductDistance, nil
	default:
		return nil, fmt.Errorf("unsupported metric: %v", m)
	}
}

// EuclideanDistance returns the L2 distance between a and b.
func EuclideanDistance(a, b []float32) float32 {
	if len(a) != len(b) {
		return MaxDistance
	}

	var sum float32
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}

	return sqrt32(sum)
}

// CosineDistance returns 1 - cosine similarity of a and b.
// A zero-magnitude vector has no direction and is treated as maximally
// dissimilar (distance 1.0), not as an error.
func CosineDistance(a, b []float32) float32 {
	if len(a) != len(b) {
		return MaxDistance
	}

	var dot, sumA, sumB float32
	for i := range a {
		dot += a[i] * b[i]
		sumA += a[i] * a[i]
		sumB += b[i] * b[i]
	}

	normA := sqrt32(sumA)
	normB := sqrt32(sumB)
	if normA == 0 || normB == 0 {
		return 1.0
	}

	return 1.0 - dot/(normA*normB)
}

// ManhattanDistance returns the L1 distance between a and b.
func ManhattanDistance(a, b []float32) float32 {
	if len(a) != len(b) {
		return MaxDistance
	}

	var sum float32
	for i := range a {
		d := a[i] - b[i]
		if d < 0 {
			d = -d
		}
		sum += d
	}

	return sum
}

// DotProductDistance returns the negated dot product of a and b.
// Negation keeps the convention that smaller = more similar, so results
// order consistently with the other metrics. Distances are routinely
// negative for similar vectors.
func DotProductDistance(a, b []float32) float32 {
	if len(a) != len(b) {
		return MaxDistance
	}

	var dot float32
	for i := range a {
		dot += a[i] * b[i]
	}

	return -dot
}

// Magnitude returns the L2 norm of v.
func Magnitude(v []float32) float32 {
	var sum float32
	for _, x := range v {
		sum += x * x
	}

	return sqrt32(sum)
}

// Normalize returns a unit-length copy of v.
// Returns false if v has zero magnitude (no direction to preserve); the
// returned slice is then an unmodified copy.
func Normalize(v []float32) ([]float32, bool) {
	out := make([]float32, len(v))
	copy(out, v)

	mag := Magnitude(v)
	if mag == 0 {
		return out, false
	}

	for i := range out {
		out[i] /= mag
	}

	return out, true
}

func sqrt32(x float32) float32 {
	return float32(math.Sqrt(float64(x)))
}
