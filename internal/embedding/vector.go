package embedding

import "math"

// Dot returns the dot product of two equal-length vectors.
func Dot(u, v []float32) float64 {
	var sum float64
	for i := range u {
		sum += float64(u[i]) * float64(v[i])
	}
	return sum
}

// Norm returns the Euclidean norm of a vector. A nil or empty vector has
// norm 0.
func Norm(v []float32) float64 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	return math.Sqrt(sum)
}

// Cosine returns the cosine similarity of two vectors, in [-1, 1]. Both
// vectors must have non-zero norm; callers check that first.
func Cosine(u, v []float32) float64 {
	return Dot(u, v) / (Norm(u) * Norm(v))
}
