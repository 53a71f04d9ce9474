package orientation

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-nmr/nmr/wigner"
)

var errInvalidDensity = errors.New("orientation: integration density must be > 0")

const (
	d2Size = 25
	d4Size = 81
)

// Scheme is a fixed powder-averaging quadrature.
type Scheme struct {
	IntegrationDensity int
	Volume             Volume
	AllowFourthRank    bool

	OctantOrientations int
	Octants            int
	TotalOrientations  int

	// Alpha and Beta hold the Euler angles of every orientation.
	Alpha []float64
	Beta  []float64

	// Weights holds one weight per octant orientation. The same weight
	// applies to that point in every octant; Octants*sum(Weights) == 1.
	Weights []float64

	// Triangles is the octant-local triangle mesh.
	Triangles [][3]int

	d2 []float64
	d4 []float64
}

// NewScheme builds the quadrature for the given integration density.
// Rank-4 Wigner matrices are only precomputed when allowFourthRank is set.
func NewScheme(density int, allowFourthRank bool, volume Volume) (*Scheme, error) {
	if density <= 0 {
		return nil, fmt.Errorf("%w: %d", errInvalidDensity, density)
	}
	if !volume.Valid() {
		return nil, fmt.Errorf("orientation: invalid integration volume %d", int(volume))
	}

	oo := (density + 1) * (density + 2) / 2
	octants := volume.Octants()
	total := oo * octants

	s := &Scheme{
		IntegrationDensity: density,
		Volume:             volume,
		AllowFourthRank:    allowFourthRank,
		OctantOrientations: oo,
		Octants:            octants,
		TotalOrientations:  total,
		Alpha:              make([]float64, total),
		Beta:               make([]float64, total),
		Weights:            make([]float64, oo),
		Triangles:          octantTriangles(density),
	}

	sum := 0.0
	idx := 0
	for j := 0; j <= density; j++ {
		for i := 0; i <= density-j; i++ {
			x := float64(density - i - j)
			y := float64(i)
			z := float64(j)
			r2 := x*x + y*y + z*z
			r := math.Sqrt(r2)
			s.Alpha[idx] = math.Atan2(y, x)
			s.Beta[idx] = math.Acos(z / r)
			s.Weights[idx] = 1 / (r2 * r)
			sum += s.Weights[idx]
			idx++
		}
	}

	norm := 1 / (sum * float64(octants))
	for i := range s.Weights {
		s.Weights[i] *= norm
	}

	for k := 1; k < octants; k++ {
		shift := float64(k%4) * math.Pi / 2
		lower := k >= 4
		for j := range oo {
			s.Alpha[k*oo+j] = s.Alpha[j] + shift
			if lower {
				s.Beta[k*oo+j] = math.Pi - s.Beta[j]
			} else {
				s.Beta[k*oo+j] = s.Beta[j]
			}
		}
	}

	s.d2 = make([]float64, total*d2Size)
	for i := range total {
		wigner.MatrixInto(s.d2[i*d2Size:(i+1)*d2Size], 2, s.Beta[i])
	}
	if allowFourthRank {
		s.d4 = make([]float64, total*d4Size)
		for i := range total {
			wigner.MatrixInto(s.d4[i*d4Size:(i+1)*d4Size], 4, s.Beta[i])
		}
	}

	return s, nil
}

// Wigner2 returns d^2(beta) of orientation i.
func (s *Scheme) Wigner2(i int) []float64 {
	return s.d2[i*d2Size : (i+1)*d2Size]
}

// Wigner4 returns d^4(beta) of orientation i, or nil when rank-4 matrices
// were not requested.
func (s *Scheme) Wigner4(i int) []float64 {
	if s.d4 == nil {
		return nil
	}
	return s.d4[i*d4Size : (i+1)*d4Size]
}

// Release drops the precomputed matrices. The scheme must not be used
// afterwards.
func (s *Scheme) Release() {
	s.d2 = nil
	s.d4 = nil
	s.Alpha = nil
	s.Beta = nil
}

// octantTriangles returns the n^2 triangles of one octahedron face. Row j of
// the grid holds n+1-j points; a point i in row j sits above point
// i+n+1-j of row j+1.
func octantTriangles(n int) [][3]int {
	tris := make([][3]int, 0, n*n)
	i := 0
	for j := range n {
		rowLen := n + 1 - j
		for p := range rowLen - 1 {
			a := i + p
			tris = append(tris, [3]int{a, a + 1, a + rowLen})
			if p < rowLen-2 {
				tris = append(tris, [3]int{a + 1, a + rowLen, a + rowLen + 1})
			}
		}
		i += rowLen
	}
	return tris
}
