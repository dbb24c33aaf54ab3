// Package vectorgen generates synthetic vectors for seeding, benchmarks
// and demos. The core store consumes its output as ordinary insert input
// and has no dependency on this package.
package vectorgen

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/hupe1980/vecdb/metric"
)

// ErrLengthMismatch is returned when two vectors of different lengths are
// combined.
type ErrLengthMismatch struct {
	Want int
	Got  int
}

// Error implements the error interface.
func (e *ErrLengthMismatch) Error() string {
	return fmt.Sprintf("vector length mismatch: want %d, got %d", e.Want, e.Got)
}

// RNG is a seeded vector generator. It is safe for concurrent use; a
// mutex guards the underlying source.
type RNG struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// New creates a generator with a fixed seed. The same seed yields the
// same vector sequence, which keeps benchmarks and demos reproducible.
func New(seed int64) *RNG {
	return &RNG{rnd: rand.New(rand.NewSource(seed))}
}

// NewRandom creates a generator seeded from the current time.
func NewRandom() *RNG {
	return New(time.Now().UnixNano())
}

// Uniform returns a vector with each component drawn uniformly from
// [min, max). A non-positive dim yields nil.
func (r *RNG) Uniform(dim int, min, max float32) []float32 {
	if dim <= 0 {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	v := make([]float32, dim)
	for i := range v {
		v[i] = min + r.rnd.Float32()*(max-min)
	}
	return v
}

// UnitVector returns a vector of magnitude 1 pointing in a uniformly
// random direction. A non-positive dim yields nil.
func (r *RNG) UnitVector(dim int) []float32 {
	if dim <= 0 {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	v := make([]float32, dim)
	for {
		for i := range v {
			v[i] = float32(r.rnd.NormFloat64())
		}

		// A zero sample cannot be normalized; draw again.
		if unit, ok := metric.Normalize(v); ok {
			return unit
		}
	}
}

// Gaussian returns a vector sampled around center with per-component
// standard deviation stddev. The center length must equal dim.
func (r *RNG) Gaussian(dim int, center []float32, stddev float32) ([]float32, error) {
	if len(center) != dim {
		return nil, &ErrLengthMismatch{Want: dim, Got: len(center)}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	v := make([]float32, dim)
	for i := range v {
		v[i] = center[i] + float32(r.rnd.NormFloat64())*stddev
	}
	return v, nil
}

// Clustered returns n vectors grouped around numClusters random centers
// in [-1, 1), assigned round-robin. spread is the per-component standard
// deviation around each center. A non-positive n yields nil; numClusters
// is clamped to at least 1.
func (r *RNG) Clustered(n, dim, numClusters int, spread float32) [][]float32 {
	if n <= 0 || dim <= 0 {
		return nil
	}
	if numClusters < 1 {
		numClusters = 1
	}

	centers := make([][]float32, numClusters)
	for c := range centers {
		centers[c] = r.Uniform(dim, -1, 1)
	}

	vectors := make([][]float32, n)
	for i := range vectors {
		// The center length always matches dim here.
		vectors[i], _ = r.Gaussian(dim, centers[i%numClusters], spread)
	}
	return vectors
}

// Add returns the element-wise sum of a and b.
func Add(a, b []float32) ([]float32, error) {
	if len(a) != len(b) {
		return nil, &ErrLengthMismatch{Want: len(a), Got: len(b)}
	}

	out := make([]float32, len(a))
	for i := range out {
		out[i] = a[i] + b[i]
	}
	return out, nil
}

// Scale returns v multiplied component-wise by s.
func Scale(v []float32, s float32) []float32 {
	out := make([]float32, len(v))
	for i := range out {
		out[i] = v[i] * s
	}
	return out
}

// Preview renders a vector compactly, eliding the middle of long vectors.
// Useful for printing high-dimensional data.
func Preview(v []float32, maxElements int) string {
	if maxElements < 1 {
		maxElements = 1
	}

	var b strings.Builder
	b.WriteByte('[')

	if len(v) <= maxElements*2 {
		for i, x := range v {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%.3f", x)
		}
	} else {
		for i := 0; i < maxElements; i++ {
			fmt.Fprintf(&b, "%.3f, ", v[i])
		}
		b.WriteString("...")
		for i := len(v) - maxElements; i < len(v); i++ {
			fmt.Fprintf(&b, ", %.3f", v[i])
		}
	}

	fmt.Fprintf(&b, "] (dim=%d)", len(v))
	return b.String()
}
