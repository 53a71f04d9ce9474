package method

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-nmr/nmr/spin"
)

func ptr(v float64) *float64 { return &v }

func TestSpectralDimensionGrid(t *testing.T) {
	tests := []struct {
		count      int
		sw, ref    float64
		wantInc    float64
		wantOffset float64
	}{
		{count: 256, sw: 25600, wantInc: 100, wantOffset: -12800},
		{count: 5, sw: 5, wantInc: 1, wantOffset: -2},
		{count: 4, sw: 400, ref: 1000, wantInc: 100, wantOffset: 800},
	}
	for _, tc := range tests {
		d := SpectralDimension{Count: tc.count, SpectralWidth: tc.sw, ReferenceOffset: tc.ref}
		if got := d.Increment(); got != tc.wantInc {
			t.Fatalf("count=%d increment=%v want=%v", tc.count, got, tc.wantInc)
		}
		if got := d.CoordinatesOffset(); got != tc.wantOffset {
			t.Fatalf("count=%d offset=%v want=%v", tc.count, got, tc.wantOffset)
		}
		coords := d.Coordinates()
		if coords[0] != tc.wantOffset || len(coords) != tc.count {
			t.Fatalf("coordinates=%v", coords)
		}
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Method {
		return BlochDecay("13C", 9.4, 0, SpectralDimension{Count: 64, SpectralWidth: 1e4})
	}
	if err := valid().Validate(); err != nil {
		t.Fatalf("valid method: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Method)
		want   error
	}{
		{"no dimensions", func(m *Method) { m.SpectralDimensions = nil }, ErrNoDimensions},
		{"zero count", func(m *Method) { m.SpectralDimensions[0].Count = 0 }, ErrInvalidCount},
		{"zero width", func(m *Method) { m.SpectralDimensions[0].SpectralWidth = 0 }, ErrInvalidSpectralWidth},
		{"negative fraction", func(m *Method) { m.SpectralDimensions[0].Events[0].Fraction = ptr(-1) }, ErrInvalidFraction},
		{"affine size", func(m *Method) { m.AffineMatrix = []float64{1, 0, 0, 1} }, ErrInvalidAffineMatrix},
		{"affine zero first element", func(m *Method) { m.AffineMatrix = []float64{0} }, ErrInvalidAffineMatrix},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := valid()
			tc.mutate(m)
			if err := m.Validate(); !errors.Is(err, tc.want) {
				t.Fatalf("err=%v want %v", err, tc.want)
			}
		})
	}

	m := valid()
	m.Channel = "99X"
	if err := m.Validate(); err == nil {
		t.Fatal("expected error for unknown channel")
	}
}

func TestEventsInheritDefaults(t *testing.T) {
	m := &Method{
		Channel:             "27Al",
		MagneticFluxDensity: 9.4,
		RotorAngle:          MagicAngle,
		SpectralDimensions: []SpectralDimension{
			{Count: 8, SpectralWidth: 800},
			{Count: 8, SpectralWidth: 800, Events: []Event{
				{Fraction: ptr(0.25), RotorAngle: ptr(0)},
				{Fraction: ptr(0.75), MagneticFluxDensity: ptr(14.1)},
			}},
		},
	}

	ev := m.Events(0)
	if len(ev) != 1 || ev[0].Fraction != 1 || ev[0].MagneticFluxDensity != 9.4 || ev[0].Queries[0].P != -1 {
		t.Fatalf("default event=%+v", ev)
	}
	ev = m.Events(1)
	if ev[0].RotorAngle != 0 || ev[0].MagneticFluxDensity != 9.4 {
		t.Fatalf("event 0=%+v", ev[0])
	}
	if ev[1].RotorAngle != MagicAngle || ev[1].MagneticFluxDensity != 14.1 || ev[1].Fraction != 0.75 {
		t.Fatalf("event 1=%+v", ev[1])
	}
	if m.EventCount() != 3 {
		t.Fatalf("event count=%d want=3", m.EventCount())
	}
	if m.Size() != 64 {
		t.Fatalf("size=%d want=64", m.Size())
	}
}

func TestTransitionPathwaysSingleQuantum(t *testing.T) {
	sys := &spin.SpinSystem{Sites: []spin.Site{{Isotope: "27Al"}}}

	all := BlochDecay("27Al", 9.4, 0, SpectralDimension{Count: 8, SpectralWidth: 800})
	if got := len(all.TransitionPathways(sys)); got != 5 {
		t.Fatalf("P=-1 pathways=%d want=5", got)
	}

	ct := BlochDecayCentralTransition("27Al", 9.4, 0, SpectralDimension{Count: 8, SpectralWidth: 800})
	paths := ct.TransitionPathways(sys)
	if len(paths) != 1 {
		t.Fatalf("central transition pathways=%d want=1", len(paths))
	}
	if tr := paths[0][0]; tr.Initial[0] != 0.5 || tr.Final[0] != -0.5 {
		t.Fatalf("central transition=%+v", tr)
	}
}

func TestTransitionPathwaysOtherChannel(t *testing.T) {
	sys := &spin.SpinSystem{Sites: []spin.Site{{Isotope: "13C"}, {Isotope: "1H"}}}
	m := BlochDecay("13C", 9.4, 0, SpectralDimension{Count: 8, SpectralWidth: 800})

	paths := m.TransitionPathways(sys)
	// the 1H spin stays in either of its two states
	if len(paths) != 2 {
		t.Fatalf("pathways=%d want=2", len(paths))
	}
	for _, p := range paths {
		tr := p[0]
		if tr.Initial[1] != tr.Final[1] {
			t.Fatalf("1H changed state: %+v", tr)
		}
	}

	none := BlochDecay("31P", 9.4, 0, SpectralDimension{Count: 8, SpectralWidth: 800})
	if paths := none.TransitionPathways(sys); paths != nil {
		t.Fatalf("pathways without channel site=%v", paths)
	}
}

func TestTransitionPathwaysProduct(t *testing.T) {
	sys := &spin.SpinSystem{Sites: []spin.Site{{Isotope: "87Rb"}}}
	m := &Method{
		Channel:             "87Rb",
		MagneticFluxDensity: 9.4,
		SpectralDimensions: []SpectralDimension{
			{Count: 8, SpectralWidth: 800, Events: []Event{{TransitionQueries: []TransitionQuery{
				{P: -1, D: ptr(2)}, {P: -1, D: ptr(-2)},
			}}}},
			{Count: 8, SpectralWidth: 800, Events: []Event{{TransitionQueries: []TransitionQuery{
				{P: -1, D: ptr(0)},
			}}}},
		},
	}

	paths := m.TransitionPathways(sys)
	if len(paths) != 2 {
		t.Fatalf("pathways=%d want=2", len(paths))
	}
	for _, p := range paths {
		if len(p) != 2 {
			t.Fatalf("pathway length=%d want=2", len(p))
		}
		if d := p[0].D(); d != 2 && d != -2 {
			t.Fatalf("first event D=%v", d)
		}
		if p[1].D() != 0 {
			t.Fatalf("second event D=%v", p[1].D())
		}
	}
}

func TestPathwayFlatten(t *testing.T) {
	p := Pathway{
		{Initial: []float64{0.5, 1}, Final: []float64{-0.5, 1}},
		{Initial: []float64{1.5, 0}, Final: []float64{0.5, 0}},
	}
	got := p.Flatten()
	want := []float64{0.5, 1, -0.5, 1, 1.5, 0, 0.5, 0}
	if len(got) != len(want) {
		t.Fatalf("len=%d want=%d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("flat[%d]=%v want=%v", i, got[i], want[i])
		}
	}
	if Pathway(nil).Flatten() != nil {
		t.Fatal("empty pathway should flatten to nil")
	}
}

func TestSTVASAffine(t *testing.T) {
	kSTMAS := map[int]map[float64]float64{
		3: {1.5: 24.0 / 27, 2.5: 21.0 / 72},
		5: {2.5: 132.0 / 72},
	}
	methods := []func(string, float64, [2]SpectralDimension) (*Method, error){ST1VAS, ST2VAS}
	sites := []string{"87Rb", "27Al"}
	spins := []float64{1.5, 2.5}

	for j, build := range methods {
		for i := j; i < len(sites); i++ {
			m, err := build(sites[i], 9.4, [2]SpectralDimension{})
			if err != nil {
				t.Fatalf("%s: %v", sites[i], err)
			}
			if err := m.Validate(); err != nil {
				t.Fatalf("%s: %v", m.Name, err)
			}
			for d := range 2 {
				if ev := m.Events(d); len(ev) != 1 || ev[0].Fraction != 1 {
					t.Fatalf("%s dimension %d events=%+v", m.Name, d, ev)
				}
			}
			k := kSTMAS[3+2*j][spins[i]]
			want := []float64{1 / (1 + k), k / (1 + k), 0, 1}
			for n := range want {
				if math.Abs(m.AffineMatrix[n]-want[n]) > 1e-12 {
					t.Fatalf("%s %s affine=%v want=%v", m.Name, sites[i], m.AffineMatrix, want)
				}
			}
		}
	}
}

func TestSTVASGeneral(t *testing.T) {
	st1, err := ST1VAS("87Rb", 11.7, [2]SpectralDimension{
		{Count: 1024, SpectralWidth: 3e4},
		{Count: 1024, SpectralWidth: 2e4},
	})
	if err != nil {
		t.Fatal(err)
	}
	if st1.Name != "ST1_VAS" || st1.RotorFrequency != 1e12 || st1.RotorAngle != MagicAngle {
		t.Fatalf("method=%+v", st1)
	}
	if got := st1.SpectralDimensions[1].SpectralWidth; got != 2e4 {
		t.Fatalf("spectral width=%v want=2e4", got)
	}
	want := []float64{0.52941176, 0.47058824, 0, 1}
	for i := range want {
		if math.Abs(st1.AffineMatrix[i]-want[i]) > 1e-8 {
			t.Fatalf("affine=%v want=%v", st1.AffineMatrix, want)
		}
	}
	q := st1.SpectralDimensions[0].Events[0].TransitionQueries
	if len(q) != 2 || *q[0].D != 2 || *q[1].D != -2 || q[0].P != -1 {
		t.Fatalf("dimension 0 queries=%+v", q)
	}

	// both satellites in dimension 0, the central transition in dimension 1
	sys := &spin.SpinSystem{Sites: []spin.Site{{Isotope: "87Rb"}}}
	if got := len(st1.TransitionPathways(sys)); got != 2 {
		t.Fatalf("pathways=%d want=2", got)
	}

	st2, err := ST2VAS("17O", 9.4, [2]SpectralDimension{
		{Count: 1024, SpectralWidth: 5e4},
		{Count: 1024, SpectralWidth: 5e4},
	})
	if err != nil {
		t.Fatal(err)
	}
	want = []float64{0.35294118, 0.64705882, 0, 1}
	for i := range want {
		if math.Abs(st2.AffineMatrix[i]-want[i]) > 1e-8 {
			t.Fatalf("affine=%v want=%v", st2.AffineMatrix, want)
		}
	}
	if q := st2.SpectralDimensions[0].Events[0].TransitionQueries; *q[0].D != 4 || *q[1].D != -4 {
		t.Fatalf("dimension 0 queries=%+v", q)
	}

	if _, err := ST2VAS("87Rb", 9.4, [2]SpectralDimension{}); !errors.Is(err, ErrUnsupportedSpin) {
		t.Fatalf("err=%v want %v", err, ErrUnsupportedSpin)
	}
	if _, err := ST1VAS("13C", 9.4, [2]SpectralDimension{}); !errors.Is(err, ErrUnsupportedSpin) {
		t.Fatalf("err=%v want %v", err, ErrUnsupportedSpin)
	}
}
