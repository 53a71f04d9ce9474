package wigner

import (
	"fmt"
	"math"
	"math/cmplx"
)

const (
	maxRank = 8
	maxSize = 2*maxRank + 1
)

var factorial [2*maxRank + 2]float64

func init() {
	factorial[0] = 1
	for i := 1; i < len(factorial); i++ {
		factorial[i] = factorial[i-1] * float64(i)
	}
}

// Size returns the number of components of a rank-l tensor, 2l+1.
func Size(l int) int { return 2*l + 1 }

// SmallD returns the Wigner small-d element d^l_{mp,m}(beta).
func SmallD(l, mp, m int, beta float64) float64 {
	if l < 0 || l > maxRank {
		panic(fmt.Sprintf("wigner: rank %d outside [0, %d]", l, maxRank))
	}
	if mp < -l || mp > l || m < -l || m > l {
		return 0
	}
	c := math.Cos(beta / 2)
	s := math.Sin(beta / 2)
	norm := math.Sqrt(factorial[l+mp] * factorial[l-mp] * factorial[l+m] * factorial[l-m])

	kmin := max(0, m-mp)
	kmax := min(l+m, l-mp)
	sum := 0.0
	for k := kmin; k <= kmax; k++ {
		den := factorial[l+m-k] * factorial[k] * factorial[l-k-mp] * factorial[k-m+mp]
		term := norm / den
		term *= intPow(c, 2*l-2*k+m-mp) * intPow(s, 2*k-m+mp)
		if (k-m+mp)%2 != 0 {
			term = -term
		}
		sum += term
	}
	return sum
}

// Matrix returns d^l(beta) as a row-major (2l+1)x(2l+1) slice where element
// [(mp+l)*(2l+1) + (m+l)] holds d^l_{mp,m}(beta).
func Matrix(l int, beta float64) []float64 {
	n := Size(l)
	out := make([]float64, n*n)
	MatrixInto(out, l, beta)
	return out
}

// MatrixInto writes d^l(beta) into dst, which must have length (2l+1)^2.
func MatrixInto(dst []float64, l int, beta float64) {
	n := Size(l)
	if len(dst) != n*n {
		panic(fmt.Sprintf("wigner: matrix buffer length %d, want %d", len(dst), n*n))
	}
	for mp := -l; mp <= l; mp++ {
		for m := -l; m <= l; m++ {
			dst[(mp+l)*n+m+l] = SmallD(l, mp, m, beta)
		}
	}
}

// Rotate rotates the rank-l components in by the Euler angles
// (alpha, beta, gamma) and writes the result to out. in and out must not
// alias and must both have length 2l+1.
func Rotate(l int, alpha, beta, gamma float64, in, out []complex128) {
	n := Size(l)
	var stack [maxSize * maxSize]float64
	d := stack[:n*n]
	MatrixInto(d, l, beta)
	RotateWithMatrix(l, d, alpha, gamma, in, out)
}

// RotateWithMatrix is Rotate with a precomputed d^l(beta) from Matrix.
func RotateWithMatrix(l int, d []float64, alpha, gamma float64, in, out []complex128) {
	n := Size(l)
	if len(in) != n || len(out) != n {
		panic(fmt.Sprintf("wigner: component length in=%d out=%d, want %d", len(in), len(out), n))
	}
	var phases [maxSize]complex128
	for mp := -l; mp <= l; mp++ {
		if in[mp+l] == 0 {
			phases[mp+l] = 0
			continue
		}
		phases[mp+l] = in[mp+l] * cmplx.Exp(complex(0, -float64(mp)*alpha))
	}
	for m := -l; m <= l; m++ {
		var acc complex128
		for mp := -l; mp <= l; mp++ {
			acc += phases[mp+l] * complex(d[(mp+l)*n+m+l], 0)
		}
		if gamma != 0 {
			acc *= cmplx.Exp(complex(0, -float64(m)*gamma))
		}
		out[m+l] = acc
	}
}

// Component0 returns only the m=0 component of the rotation of in by
// (alpha, beta, 0), given d^l(beta) from Matrix.
func Component0(l int, d []float64, alpha float64, in []complex128) complex128 {
	n := Size(l)
	var acc complex128
	for mp := -l; mp <= l; mp++ {
		if in[mp+l] == 0 {
			continue
		}
		ph := cmplx.Exp(complex(0, -float64(mp)*alpha))
		acc += in[mp+l] * ph * complex(d[(mp+l)*n+l], 0)
	}
	return acc
}

func intPow(x float64, n int) float64 {
	r := 1.0
	for range n {
		r *= x
	}
	return r
}
