package vector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCosine_SelfSimilarity(t *testing.T) {
	v := []float32{0.3, -1.2, 4.5, 0.01}

	got, ok := Cosine(v, v)
	require.True(t, ok)
	assert.InDelta(t, 1.0, got, 1e-9)
}

func TestCosine_Symmetry(t *testing.T) {
	a := []float32{1, 2, 3}
	b := []float32{-4, 0.5, 2}

	ab, ok := Cosine(a, b)
	require.True(t, ok)
	ba, ok := Cosine(b, a)
	require.True(t, ok)
	assert.Equal(t, ab, ba)
}

func TestCosine_Orthogonal(t *testing.T) {
	got, ok := Cosine([]float32{1, 0}, []float32{0, 1})
	require.True(t, ok)
	assert.InDelta(t, 0.0, got, 1e-9)
}

func TestCosine_MismatchedLengths(t *testing.T) {
	_, ok := Cosine([]float32{1, 2, 3}, []float32{1, 2})
	assert.False(t, ok)
}

func TestCosine_ZeroMagnitude(t *testing.T) {
	_, ok := Cosine([]float32{0, 0, 0}, []float32{1, 2, 3})
	assert.False(t, ok)

	_, ok = Cosine([]float32{1, 2, 3}, []float32{0, 0, 0})
	assert.False(t, ok)
}

func TestCosine_EmptyVectors(t *testing.T) {
	_, ok := Cosine(nil, nil)
	assert.False(t, ok)
}
