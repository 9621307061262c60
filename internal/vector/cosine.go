// Package vector implements similarity scoring over opaque fixed-length
// embedding vectors.
package vector

import "math"

// Cosine returns the cosine similarity of a and b: their dot product divided
// by the product of their magnitudes. The second return value is false when
// the comparison is undefined: mismatched lengths, or either vector having
// zero magnitude. A degenerate input never panics or divides by zero.
func Cosine(a, b []float32) (float64, bool) {
	if len(a) != len(b) || len(a) == 0 {
		return 0, false
	}

	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0, false
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb)), true
}
