package embed

import "math"

// normEpsilon floors vector norms to avoid division by zero.
const normEpsilon = 1e-9

// Cosine returns the cosine similarity of two vectors in [-1, 1].
// If either vector is empty or their lengths differ it returns 0.0,
// a defensive default rather than an error.
func Cosine(a, b []float32) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0.0
	}

	var dot, normA, normB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}

	normA = math.Sqrt(normA)
	if normA < normEpsilon {
		normA = normEpsilon
	}
	normB = math.Sqrt(normB)
	if normB < normEpsilon {
		normB = normEpsilon
	}

	return dot / (normA * normB)
}
