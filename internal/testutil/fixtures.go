package testutil

import "math/rand"

// DeterministicAmplitudes returns n values uniformly drawn from [lo, hi)
// with a fixed seed for reproducibility.
func DeterministicAmplitudes(seed int64, n int, lo, hi float64) []float64 {
	out := make([]float64, n)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = lo + rng.Float64()*(hi-lo)
	}
	return out
}

// Total returns the plain sum of x.
func Total(x []float64) float64 {
	s := 0.0
	for _, v := range x {
		s += v
	}
	return s
}

// Filled returns a slice of length n filled with value.
func Filled(value float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = value
	}
	return out
}
