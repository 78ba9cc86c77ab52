package match

import "math"

// unitVector converts to float64 and L2-normalizes, guaranteeing that dot
// products of the results are bounded in [-1, 1]. A zero vector stays zero
// and never satisfies any threshold above zero.
func unitVector(v []float32) []float64 {
	out := make([]float64, len(v))
	var sum float64
	for i, x := range v {
		f := float64(x)
		out[i] = f
		sum += f * f
	}
	if sum == 0 {
		return out
	}
	norm := math.Sqrt(sum)
	for i := range out {
		out[i] /= norm
	}
	return out
}

// dot is the cosine similarity of two unit vectors.
func dot(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float64
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}
