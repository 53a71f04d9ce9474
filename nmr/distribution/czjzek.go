package distribution

import (
	"math"
	"math/rand/v2"
	"slices"
)

// matrix is a symmetric 3x3 tensor in Cartesian form.
type matrix [3][3]float64

// Czjzek is the Czjzek distribution with standard deviation Sigma of the
// tensor components.
type Czjzek struct {
	Sigma float64
}

// Sample draws n tensors and returns their Haeberlen zeta and eta.
func (c Czjzek) Sample(rng *rand.Rand, n int) (zeta, eta []float64) {
	zeta, eta = make([]float64, n), make([]float64, n)
	for i := range n {
		zeta[i], eta[i] = haeberlen(randomTensor(rng, c.Sigma))
	}
	return zeta, eta
}

// ExtendedCzjzek perturbs the dominant tensor (Zeta, Eta) by a Czjzek
// tensor whose size is Eps times the norm of the dominant tensor.
type ExtendedCzjzek struct {
	Zeta float64
	Eta  float64
	Eps  float64
}

// Sample draws n tensors and returns their Haeberlen zeta and eta.
func (e ExtendedCzjzek) Sample(rng *rand.Rand, n int) (zeta, eta []float64) {
	t0 := haeberlenTensor(e.Zeta, e.Eta)
	norm := math.Sqrt(t0[0][0]*t0[0][0] + t0[1][1]*t0[1][1] + t0[2][2]*t0[2][2])
	rho := e.Eps * norm / math.Sqrt(30)

	zeta, eta = make([]float64, n), make([]float64, n)
	for i := range n {
		t := randomTensor(rng, rho)
		for k := range 3 {
			t[k][k] += t0[k][k]
		}
		zeta[i], eta[i] = haeberlen(t)
	}
	return zeta, eta
}

// randomTensor builds a traceless symmetric tensor from five independent
// Gaussian components with standard deviation sigma.
func randomTensor(rng *rand.Rand, sigma float64) matrix {
	var u [5]float64
	for i := range u {
		u[i] = rng.NormFloat64() * sigma
	}
	s3 := math.Sqrt(3) * u[0]
	return matrix{
		{u[4] - s3, u[1], u[3]},
		{u[1], -u[4] - s3, u[2]},
		{u[3], u[2], 2 * s3},
	}
}

// haeberlenTensor is the diagonal PAS tensor with the given zeta and eta.
func haeberlenTensor(zeta, eta float64) matrix {
	return matrix{
		{-zeta * (1 + eta) / 2, 0, 0},
		{0, -zeta * (1 - eta) / 2, 0},
		{0, 0, zeta},
	}
}

// haeberlen returns zeta and eta of a traceless tensor, ordering the
// eigenvalues as |zz| >= |xx| >= |yy|.
func haeberlen(t matrix) (zeta, eta float64) {
	ev := eigenvalues(t)
	slices.SortFunc(ev[:], func(a, b float64) int {
		switch {
		case math.Abs(a) < math.Abs(b):
			return -1
		case math.Abs(a) > math.Abs(b):
			return 1
		}
		return 0
	})
	zeta = ev[2]
	if zeta == 0 {
		return 0, 0
	}
	eta = (ev[0] - ev[1]) / zeta
	return zeta, min(max(eta, 0), 1)
}

// eigenvalues of a symmetric 3x3 matrix by the trigonometric method.
func eigenvalues(a matrix) [3]float64 {
	p1 := a[0][1]*a[0][1] + a[0][2]*a[0][2] + a[1][2]*a[1][2]
	if p1 == 0 {
		return [3]float64{a[0][0], a[1][1], a[2][2]}
	}
	q := (a[0][0] + a[1][1] + a[2][2]) / 3
	d0, d1, d2 := a[0][0]-q, a[1][1]-q, a[2][2]-q
	p := math.Sqrt((d0*d0 + d1*d1 + d2*d2 + 2*p1) / 6)

	b := a
	for i := range 3 {
		b[i][i] -= q
		for j := range 3 {
			b[i][j] /= p
		}
	}
	det := b[0][0]*(b[1][1]*b[2][2]-b[1][2]*b[2][1]) -
		b[0][1]*(b[1][0]*b[2][2]-b[1][2]*b[2][0]) +
		b[0][2]*(b[1][0]*b[2][1]-b[1][1]*b[2][0])
	r := min(max(det/2, -1), 1)
	phi := math.Acos(r) / 3

	e1 := q + 2*p*math.Cos(phi)
	e3 := q + 2*p*math.Cos(phi+2*math.Pi/3)
	return [3]float64{e1, 3*q - e1 - e3, e3}
}
