package metric

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEuclideanDistance(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []float32
		expected float32
	}{
		{"Identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 0.0},
		{"Unit apart", []float32{0, 0, 0}, []float32{1, 0, 0}, 1.0},
		{"Pythagorean", []float32{1, 2}, []float32{4, 6}, 5.0},
		{"Negative components", []float32{-1, -1}, []float32{2, 3}, 5.0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.expected, EuclideanDistance(tc.a, tc.b), 1e-5)
		})
	}

	t.Run("LengthMismatch", func(t *testing.T) {
		assert.Equal(t, MaxDistance, EuclideanDistance([]float32{1, 2}, []float32{1, 2, 3}))
	})
}

func TestCosineDistance(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []float32
		expected float32
	}{
		{"Identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 0.0},
		{"Same direction scaled", []float32{1, 0, 0}, []float32{2, 0, 0}, 0.0},
		{"Orthogonal", []float32{1, 0, 0}, []float32{0, 1, 0}, 1.0},
		{"Opposite", []float32{1, 0, 0}, []float32{-1, 0, 0}, 2.0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.expected, CosineDistance(tc.a, tc.b), 1e-5)
		})
	}

	t.Run("ZeroVector", func(t *testing.T) {
		// A zero-magnitude side is maximally dissimilar, exactly 1.0.
		assert.Equal(t, float32(1.0), CosineDistance([]float32{0, 0, 0}, []float32{1, 2, 3}))
		assert.Equal(t, float32(1.0), CosineDistance([]float32{1, 2, 3}, []float32{0, 0, 0}))
		assert.Equal(t, float32(1.0), CosineDistance([]float32{0, 0, 0}, []float32{0, 0, 0}))
	})

	t.Run("LengthMismatch", func(t *testing.T) {
		assert.Equal(t, MaxDistance, CosineDistance([]float32{1}, []float32{1, 2}))
	})
}

func TestManhattanDistance(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []float32
		expected float32
	}{
		{"Identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 0.0},
		{"City block", []float32{0, 0}, []float32{3, 4}, 7.0},
		{"Negative components", []float32{-1, -2}, []float32{1, 2}, 6.0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.expected, ManhattanDistance(tc.a, tc.b), 1e-5)
		})
	}

	t.Run("LengthMismatch", func(t *testing.T) {
		assert.Equal(t, MaxDistance, ManhattanDistance([]float32{1, 2, 3}, []float32{1, 2}))
	})
}

func TestDotProductDistance(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []float32
		expected float32
	}{
		{"Positive alignment", []float32{1, 2, 3}, []float32{4, 5, 6}, -32.0},
		{"Orthogonal", []float32{1, 0}, []float32{0, 1}, 0.0},
		{"Opposite", []float32{1, 2}, []float32{-1, -2}, 5.0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.expected, DotProductDistance(tc.a, tc.b), 1e-5)
		})
	}

	t.Run("LengthMismatch", func(t *testing.T) {
		assert.Equal(t, MaxDistance, DotProductDistance([]float32{1}, []float32{}))
	})
}

func TestProvider(t *testing.T) {
	t.Run("AllMetrics", func(t *testing.T) {
		a := []float32{1, 2, 3}
		b := []float32{4, 5, 6}

		tests := []struct {
			metric Metric
			want   float32
		}{
			{Euclidean, EuclideanDistance(a, b)},
			{Cosine, CosineDistance(a, b)},
			{Manhattan, ManhattanDistance(a, b)},
			{DotProduct, DotProductDistance(a, b)},
		}

		for _, tc := range tests {
			fn, err := Provider(tc.metric)
			require.NoError(t, err, tc.metric.String())
			assert.Equal(t, tc.want, fn(a, b), tc.metric.String())
		}
	})

	t.Run("Unknown", func(t *testing.T) {
		_, err := Provider(Metric(42))
		assert.Error(t, err)
	})
}

func TestParseMetric(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		for _, m := range []Metric{Euclidean, Cosine, Manhattan, DotProduct} {
			parsed, err := ParseMetric(m.String())
			require.NoError(t, err)
			assert.Equal(t, m, parsed)
		}
	})

	t.Run("CaseInsensitive", func(t *testing.T) {
		parsed, err := ParseMetric("euclidean")
		require.NoError(t, err)
		assert.Equal(t, Euclidean, parsed)

		parsed, err = ParseMetric("dotproduct")
		require.NoError(t, err)
		assert.Equal(t, DotProduct, parsed)
	})

	t.Run("Unknown", func(t *testing.T) {
		_, err := ParseMetric("Chebyshev")
		assert.Error(t, err)
	})
}

func TestMagnitude(t *testing.T) {
	assert.InDelta(t, 5.0, Magnitude([]float32{3, 4}), 1e-5)
	assert.Equal(t, float32(0), Magnitude([]float32{0, 0, 0}))
	assert.Equal(t, float32(0), Magnitude(nil))
}

func TestNormalize(t *testing.T) {
	t.Run("UnitResult", func(t *testing.T) {
		v := []float32{3, 4}
		out, ok := Normalize(v)
		require.True(t, ok)
		assert.InDelta(t, float32(0.6), out[0], 1e-5)
		assert.InDelta(t, float32(0.8), out[1], 1e-5)
		assert.InDelta(t, 1.0, Magnitude(out), 1e-5)

		// Input must not be modified.
		assert.Equal(t, []float32{3, 4}, v)
	})

	t.Run("ZeroVector", func(t *testing.T) {
		out, ok := Normalize([]float32{0, 0})
		assert.False(t, ok)
		assert.Equal(t, []float32{0, 0}, out)
	})
}

func benchmarkVectors(dim int) ([]float32, []float32) {
	rng := rand.New(rand.NewSource(42)) // nolint gosec
	a := make([]float32, dim)
	b := make([]float32, dim)
	for i := range a {
		a[i] = rng.Float32()
		b[i] = rng.Float32()
	}
	return a, b
}

func BenchmarkEuclideanDistance(b *testing.B) {
	va, vb := benchmarkVectors(128)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = EuclideanDistance(va, vb)
	}
}

func BenchmarkCosineDistance(b *testing.B) {
	va, vb := benchmarkVectors(128)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = CosineDistance(va, vb)
	}
}

func BenchmarkManhattanDistance(b *testing.B) {
	va, vb := benchmarkVectors(128)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = ManhattanDistance(va, vb)
	}
}

func BenchmarkDotProductDistance(b *testing.B) {
	va, vb := benchmarkVectors(128)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = DotProductDistance(va, vb)
	}
}
