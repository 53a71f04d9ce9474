// Package vec holds the small buffer primitives shared by the simulation
// stages: length management, constant fills and affine ramps.
package vec

// EnsureLen returns a slice with the requested length, reusing buf capacity if possible.
func EnsureLen(buf []float64, n int) []float64 {
	if n <= 0 {
		return buf[:0]
	}
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]float64, n)
}

// Zero sets all values in buf to 0.
func Zero(buf []float64) {
	for i := range buf {
		buf[i] = 0
	}
}

// ZeroComplex sets all values in buf to 0.
func ZeroComplex(buf []complex128) {
	for i := range buf {
		buf[i] = 0
	}
}

// Fill sets all values in buf to v.
func Fill(buf []float64, v float64) {
	for i := range buf {
		buf[i] = v
	}
}

// Ones returns a new slice of length n with every element set to 1.
func Ones(n int) []float64 {
	buf := make([]float64, n)
	Fill(buf, 1)
	return buf
}

// Ramp computes dst[i] = scale*src[i] + shift.
// dst must be at least as long as src; extra elements are left untouched.
func Ramp(dst, src []float64, scale, shift float64) {
	if len(dst) < len(src) {
		panic("vec: ramp destination shorter than source")
	}
	for i, v := range src {
		dst[i] = scale*v + shift
	}
}
