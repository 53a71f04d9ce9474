package simulator

import (
	"context"
	"errors"
	"testing"

	"github.com/cwbudde/algo-nmr/internal/testutil"
	"github.com/cwbudde/algo-nmr/nmr/method"
	"github.com/cwbudde/algo-nmr/nmr/orientation"
	"github.com/cwbudde/algo-nmr/nmr/spin"
)

func carbonMethod(rotor float64) *method.Method {
	return method.BlochDecay("13C", 9.4, rotor, method.SpectralDimension{Count: 128, SpectralWidth: 25600})
}

func carbonSystem(shift, zeta, abundance float64) spin.SpinSystem {
	return spin.SpinSystem{
		Abundance: abundance,
		Sites: []spin.Site{{
			Isotope:                "13C",
			IsotropicChemicalShift: shift,
			Shielding:              &spin.SymmetricTensor{Zeta: zeta, Eta: 0.4},
		}},
	}
}

func systems() []spin.SpinSystem {
	return []spin.SpinSystem{
		carbonSystem(-20, 40, 0),
		carbonSystem(10, -30, 50),
		carbonSystem(35, 60, 25),
		carbonSystem(0, 10, 0),
		carbonSystem(60, 0, 80),
	}
}

func newTestSimulator(opts ...Option) *Simulator {
	base := []Option{WithIntegrationDensity(10), WithSidebands(8)}
	return New(append(base, opts...)...)
}

func TestDefaultConfig(t *testing.T) {
	cfg := ApplyOptions(WithIntegrationDensity(-1), WithSidebands(0), WithWorkers(0), WithIntegrationVolume(orientation.Volume(9)))
	def := DefaultConfig()
	if cfg.IntegrationDensity != def.IntegrationDensity || cfg.NumberOfSidebands != def.NumberOfSidebands ||
		cfg.Workers != def.Workers || cfg.IntegrationVolume != def.IntegrationVolume {
		t.Fatalf("invalid options changed config: %+v", cfg)
	}
	if !def.Interpolation || !def.QuadSecondOrder {
		t.Fatalf("defaults=%+v", def)
	}

	cfg = ApplyOptions(WithIntegrationVolume(orientation.Sphere), WithWorkers(3), WithInterpolation(false), nil)
	if cfg.IntegrationVolume != orientation.Sphere || cfg.Workers != 3 || cfg.Interpolation {
		t.Fatalf("options not applied: %+v", cfg)
	}
}

func TestRunIndependentOfWorkers(t *testing.T) {
	m := carbonMethod(1500)
	one, err := newTestSimulator(WithWorkers(1)).Run(context.Background(), m, systems())
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	many, err := newTestSimulator(WithWorkers(4)).Run(context.Background(), m, systems())
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	for i := range one.Spectrum {
		if one.Spectrum[i] != many.Spectrum[i] {
			t.Fatalf("bin %d: 1 worker=%v 4 workers=%v", i, one.Spectrum[i], many.Spectrum[i])
		}
	}
	if len(one.Shape) != 1 || one.Shape[0] != 128 {
		t.Fatalf("shape=%v", one.Shape)
	}
}

func TestRunWeightsByAbundance(t *testing.T) {
	sim := newTestSimulator()
	m := carbonMethod(0)

	full, err := sim.Run(context.Background(), m, []spin.SpinSystem{carbonSystem(5, 20, 100)})
	if err != nil {
		t.Fatal(err)
	}
	half, err := sim.Run(context.Background(), m, []spin.SpinSystem{carbonSystem(5, 20, 50)})
	if err != nil {
		t.Fatal(err)
	}
	for i := range full.Spectrum {
		testutil.RequireNearlyEqual(t, half.Spectrum[i], 0.5*full.Spectrum[i], 1e-14)
	}
	if testutil.Total(full.Spectrum) == 0 {
		t.Fatal("empty spectrum")
	}
}

func TestRunSumsSystems(t *testing.T) {
	sim := newTestSimulator()
	m := carbonMethod(2000)
	all := systems()

	sum, err := sim.Run(context.Background(), m, all)
	if err != nil {
		t.Fatal(err)
	}
	want := make([]float64, len(sum.Spectrum))
	for i := range all {
		r, err := sim.Run(context.Background(), m, all[i:i+1])
		if err != nil {
			t.Fatal(err)
		}
		for k, v := range r.Spectrum {
			want[k] += v
		}
	}
	testutil.RequireSliceNearlyEqual(t, sum.Spectrum, want, 1e-12)
	for i, n := range sum.Pathways {
		if n != 1 {
			t.Fatalf("system %d pathways=%d want=1", i, n)
		}
	}
}

func TestRunOtherChannel(t *testing.T) {
	m := method.BlochDecay("31P", 9.4, 0, method.SpectralDimension{Count: 64, SpectralWidth: 1e4})
	res, err := newTestSimulator().Run(context.Background(), m, systems()[:1])
	if err != nil {
		t.Fatal(err)
	}
	if res.Pathways[0] != 0 || testutil.Total(res.Spectrum) != 0 {
		t.Fatalf("pathways=%v total=%v", res.Pathways, testutil.Total(res.Spectrum))
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newTestSimulator().Run(ctx, carbonMethod(0), systems())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err=%v want %v", err, context.Canceled)
	}
}

func TestRunErrors(t *testing.T) {
	sim := newTestSimulator()
	if _, err := sim.Run(context.Background(), carbonMethod(0), nil); !errors.Is(err, ErrNoSpinSystems) {
		t.Fatalf("err=%v want %v", err, ErrNoSpinSystems)
	}

	bad := carbonMethod(0)
	bad.SpectralDimensions[0].Count = 0
	if _, err := sim.Run(context.Background(), bad, systems()); !errors.Is(err, method.ErrInvalidCount) {
		t.Fatalf("err=%v want %v", err, method.ErrInvalidCount)
	}

	sys := systems()
	sys[2].Abundance = 120
	if _, err := sim.Run(context.Background(), carbonMethod(0), sys); err == nil {
		t.Fatal("expected error for invalid abundance")
	}
}

func TestSpectrumPoolZeroes(t *testing.T) {
	p := newSpectrumPool()
	b := p.get(4)
	(*b)[2] = 7
	p.put(b)
	b = p.get(4)
	for i, v := range *b {
		if v != 0 {
			t.Fatalf("reused buffer[%d]=%v want 0", i, v)
		}
	}
	p.put(nil)
}

func BenchmarkRun(b *testing.B) {
	sim := newTestSimulator()
	m := carbonMethod(2000)
	sys := systems()
	b.ReportAllocs()
	for b.Loop() {
		if _, err := sim.Run(context.Background(), m, sys); err != nil {
			b.Fatal(err)
		}
	}
}

func TestRunSTVASRefocusesIsotropicDimension(t *testing.T) {
	m, err := method.ST1VAS("87Rb", 11.7, [2]method.SpectralDimension{
		{Count: 64, SpectralWidth: 20000},
		{Count: 64, SpectralWidth: 20000},
	})
	if err != nil {
		t.Fatal(err)
	}
	sys := []spin.SpinSystem{{Sites: []spin.Site{{
		Isotope:     "87Rb",
		Quadrupolar: &spin.SymmetricTensor{Zeta: 3e6, Eta: 0.5},
	}}}}

	projection := func(m *method.Method) []float64 {
		res, err := newTestSimulator(WithSidebands(1)).Run(context.Background(), m, sys)
		if err != nil {
			t.Fatal(err)
		}
		testutil.RequireNonNegative(t, res.Spectrum, 1e-12)
		out := make([]float64, res.Shape[0])
		for i := range out {
			out[i] = testutil.Total(res.Spectrum[i*res.Shape[1] : (i+1)*res.Shape[1]])
		}
		return out
	}
	peak := func(p []float64) float64 {
		best := 0
		for i := range p {
			if p[i] > p[best] {
				best = i
			}
		}
		sum := p[best]
		if best > 0 {
			sum += p[best-1]
		}
		if best < len(p)-1 {
			sum += p[best+1]
		}
		return sum / testutil.Total(p)
	}

	sheared := projection(m)
	if f := peak(sheared); f < 0.99 {
		t.Fatalf("isotropic projection holds %.3f of the intensity near its peak", f)
	}
	m.AffineMatrix = nil
	if f := peak(projection(m)); f > 0.9 {
		t.Fatalf("unsheared satellite projection holds %.3f near its peak, want a broad line", f)
	}
}
