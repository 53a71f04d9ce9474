package sideband

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-nmr/nmr/orientation"
	"github.com/cwbudde/algo-nmr/nmr/tensor"
)

const magicAngle = 0.9553166181245093

func newOrientationScheme(t *testing.T, density int, fourth bool) *orientation.Scheme {
	t.Helper()
	s, err := orientation.NewScheme(density, fourth, orientation.Octant)
	if err != nil {
		t.Fatalf("orientation.NewScheme error: %v", err)
	}
	return s
}

func anisotropic(zeta, eta float64) *tensor.Components {
	c := &tensor.Components{R0: 250}
	c.R2[2] = complex(math.Sqrt(1.5)*zeta, 0)
	c.R2[0] = complex(-0.5*zeta*eta, 0)
	c.R2[4] = c.R2[0]
	return c
}

func TestNewSchemeValidation(t *testing.T) {
	for _, n := range []int{0, 3, 12, -4} {
		if _, err := NewScheme(10, n); !errors.Is(err, ErrInvalidSidebands) {
			t.Fatalf("sidebands=%d err=%v want ErrInvalidSidebands", n, err)
		}
	}
	s, err := NewScheme(10, 1)
	if err != nil {
		t.Fatalf("NewScheme error: %v", err)
	}
	if s.plan != nil || len(s.Vector) != 10 {
		t.Fatalf("unexpected single-sideband scheme: plan=%v len=%d", s.plan, len(s.Vector))
	}
}

func TestRealChannel(t *testing.T) {
	src := []complex128{1 + 2i, -3 + 4i, 5}
	dst := make([]float64, 3)
	RealChannel(dst, src)
	if dst[0] != 1 || dst[1] != -3 || dst[2] != 5 {
		t.Fatalf("RealChannel=%v", dst)
	}

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for length mismatch")
		}
	}()
	RealChannel(make([]float64, 2), src)
}

func TestVRFreqOrder(t *testing.T) {
	grid := newOrientationScheme(t, 4, false)
	p, err := NewPlan(grid, 8, 1000, magicAngle, 250)
	if err != nil {
		t.Fatalf("NewPlan error: %v", err)
	}
	want := []float64{0, 4, 8, 12, -16, -12, -8, -4}
	for k := range want {
		if p.VRFreq[k] != want[k] {
			t.Fatalf("VRFreq[%d]=%v want=%v", k, p.VRFreq[k], want[k])
		}
	}
	if _, err := NewPlan(grid, 8, 1000, magicAngle, 0); !errors.Is(err, ErrInvalidIncrement) {
		t.Fatalf("err=%v want ErrInvalidIncrement", err)
	}
}

func TestFrequenciesStatic(t *testing.T) {
	grid := newOrientationScheme(t, 8, false)
	p, err := NewPlan(grid, 1, 1e9, 0, 10)
	if err != nil {
		t.Fatal(err)
	}
	c := anisotropic(100, 0)
	local := make([]float64, grid.TotalOrientations)
	r0 := 0.0
	p.Frequencies(c, 1, true, local, &r0)

	if math.Abs(r0-25) > 1e-12 {
		t.Fatalf("r0Offset=%v want=25", r0)
	}
	// beta = 0 sees the full unique component: sqrt(3/2)*zeta*d00(0)
	last := grid.OctantOrientations - 1
	if want := math.Sqrt(1.5) * 100 / 10; math.Abs(local[last]-want) > 1e-12 {
		t.Fatalf("local[beta=0]=%v want=%v", local[last], want)
	}
	// beta = pi/2 gives -1/2 of that
	if want := -0.5 * math.Sqrt(1.5) * 100 / 10; math.Abs(local[0]-want) > 1e-12 {
		t.Fatalf("local[beta=pi/2]=%v want=%v", local[0], want)
	}
}

func TestFrequenciesRefreshAccumulates(t *testing.T) {
	grid := newOrientationScheme(t, 4, false)
	p, err := NewPlan(grid, 1, 1e9, 0, 1)
	if err != nil {
		t.Fatal(err)
	}
	c := anisotropic(10, 0.5)
	first := make([]float64, grid.TotalOrientations)
	r0 := 0.0
	p.Frequencies(c, 0.25, true, first, &r0)

	both := append([]float64(nil), first...)
	r0Both := r0
	p.Frequencies(c, 0.75, false, both, &r0Both)

	full := make([]float64, grid.TotalOrientations)
	r0Full := 0.0
	p.Frequencies(c, 1, true, full, &r0Full)

	for i := range full {
		if math.Abs(both[i]-full[i]) > 1e-12 {
			t.Fatalf("orientation %d: accumulated=%v full=%v", i, both[i], full[i])
		}
	}
	if math.Abs(r0Both-r0Full) > 1e-12 {
		t.Fatalf("r0 accumulated=%v full=%v", r0Both, r0Full)
	}
}

func TestMagicAngleRemovesRankTwoAverage(t *testing.T) {
	grid := newOrientationScheme(t, 6, false)
	p, err := NewPlan(grid, 16, 5000, magicAngle, 1)
	if err != nil {
		t.Fatal(err)
	}
	local := make([]float64, grid.TotalOrientations)
	r0 := 0.0
	p.Frequencies(anisotropic(2000, 0.3), 1, true, local, &r0)
	for i, v := range local {
		if math.Abs(v) > 1e-9 {
			t.Fatalf("orientation %d: local=%v want=0 at the magic angle", i, v)
		}
	}
}

func TestAmplitudesConserveIntensity(t *testing.T) {
	grid := newOrientationScheme(t, 6, false)
	fs, err := NewScheme(grid.TotalOrientations, 32)
	if err != nil {
		t.Fatal(err)
	}
	p, err := NewPlan(grid, 32, 2000, magicAngle, 1)
	if err != nil {
		t.Fatal(err)
	}
	local := make([]float64, grid.TotalOrientations)
	r0 := 0.0
	p.Frequencies(anisotropic(3000, 0.6), 1, true, local, &r0)
	if err := p.Amplitudes(fs); err != nil {
		t.Fatalf("Amplitudes error: %v", err)
	}

	total := grid.TotalOrientations
	for i := range total {
		sum := 0.0
		for k := range 32 {
			v := real(fs.Vector[k*total+i])
			if v < 0 {
				t.Fatalf("negative amplitude %v", v)
			}
			sum += v
		}
		if math.Abs(sum-1) > 1e-9 {
			t.Fatalf("orientation %d: sideband sum=%v want=1", i, sum)
		}
	}
}

func TestAmplitudesIsotropicCentreband(t *testing.T) {
	grid := newOrientationScheme(t, 3, false)
	fs, err := NewScheme(grid.TotalOrientations, 8)
	if err != nil {
		t.Fatal(err)
	}
	p, err := NewPlan(grid, 8, 1000, magicAngle, 1)
	if err != nil {
		t.Fatal(err)
	}
	local := make([]float64, grid.TotalOrientations)
	r0 := 0.0
	p.Frequencies(&tensor.Components{R0: 40}, 1, true, local, &r0)
	if err := p.Amplitudes(fs); err != nil {
		t.Fatal(err)
	}
	total := grid.TotalOrientations
	for i := range total {
		if got := real(fs.Vector[i]); math.Abs(got-1) > 1e-12 {
			t.Fatalf("centreband[%d]=%v want=1", i, got)
		}
	}
}

func TestAmplitudesSchemeMismatch(t *testing.T) {
	grid := newOrientationScheme(t, 3, false)
	fs, err := NewScheme(grid.TotalOrientations, 4)
	if err != nil {
		t.Fatal(err)
	}
	p, err := NewPlan(grid, 8, 1000, magicAngle, 1)
	if err != nil {
		t.Fatal(err)
	}
	if err := p.Amplitudes(fs); !errors.Is(err, ErrSchemeMismatch) {
		t.Fatalf("err=%v want ErrSchemeMismatch", err)
	}
}

func BenchmarkAmplitudes(b *testing.B) {
	grid, _ := orientation.NewScheme(25, false, orientation.Octant)
	fs, _ := NewScheme(grid.TotalOrientations, 64)
	p, _ := NewPlan(grid, 64, 1500, magicAngle, 10)
	local := make([]float64, grid.TotalOrientations)
	r0 := 0.0
	p.Frequencies(anisotropic(5000, 0.4), 1, true, local, &r0)
	b.ResetTimer()
	for range b.N {
		if err := p.Amplitudes(fs); err != nil {
			b.Fatal(err)
		}
	}
}
