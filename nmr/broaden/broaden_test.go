package broaden

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-nmr/internal/testutil"
)

func delta(n, at int) []float64 {
	x := make([]float64, n)
	x[at] = 1
	return x
}

func TestApplyHalfWidth(t *testing.T) {
	const (
		n      = 1024
		center = 512
		inc    = 10.0
		fwhm   = 200.0
	)
	for _, shape := range []Shape{Lorentzian, Gaussian} {
		t.Run(shape.String(), func(t *testing.T) {
			spec := delta(n, center)
			if err := Apply(spec, []int{n}, []float64{inc}, Broadening{Shape: shape, FWHM: fwhm}); err != nil {
				t.Fatalf("Apply error: %v", err)
			}

			testutil.RequireNearlyEqual(t, testutil.Total(spec), 1, 1e-12)
			half := int(fwhm / inc / 2)
			for _, off := range []int{-half, half} {
				ratio := spec[center+off] / spec[center]
				if ratio < 0.49 || ratio > 0.51 {
					t.Fatalf("offset %d: ratio=%v want 0.5", off, ratio)
				}
			}
			for k := 1; k < 50; k++ {
				testutil.RequireNearlyEqual(t, spec[center-k], spec[center+k], 1e-9)
			}
		})
	}
}

func TestApplyAlongOneDimension(t *testing.T) {
	const rows, cols = 8, 64
	for _, dim := range []int{0, 1} {
		spec := make([]float64, rows*cols)
		spec[4*cols+32] = 1
		b := Broadening{Shape: Gaussian, FWHM: 50, Dim: dim}
		if err := Apply(spec, []int{rows, cols}, []float64{10, 10}, b); err != nil {
			t.Fatalf("dim %d: %v", dim, err)
		}
		testutil.RequireNearlyEqual(t, testutil.Total(spec), 1, 1e-12)
		for p := range rows {
			for q := range cols {
				v := spec[p*cols+q]
				if dim == 1 && p != 4 && v != 0 {
					t.Fatalf("dim 1 leaked into row %d: %v", p, v)
				}
				if dim == 0 && q != 32 && v != 0 {
					t.Fatalf("dim 0 leaked into column %d: %v", q, v)
				}
			}
		}
		if spec[4*cols+32] >= 1 {
			t.Fatalf("dim %d: peak not broadened", dim)
		}
	}
}

func TestApplyZeroWidthIsNoop(t *testing.T) {
	spec := delta(16, 3)
	if err := Apply(spec, []int{16}, []float64{1}, Broadening{FWHM: 0}); err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceNearlyEqual(t, spec, delta(16, 3), 0)
}

func TestApplyErrors(t *testing.T) {
	spec := make([]float64, 16)
	tests := []struct {
		name  string
		shape []int
		incs  []float64
		b     Broadening
		want  error
	}{
		{"negative width", []int{16}, []float64{1}, Broadening{FWHM: -1}, ErrInvalidWidth},
		{"dimension", []int{16}, []float64{1}, Broadening{FWHM: 1, Dim: 1}, ErrInvalidDimension},
		{"increments", []int{16}, nil, Broadening{FWHM: 1}, ErrInvalidDimension},
		{"shape", []int{8}, []float64{1}, Broadening{FWHM: 1}, ErrShapeMismatch},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := Apply(spec, tc.shape, tc.incs, tc.b); !errors.Is(err, tc.want) {
				t.Fatalf("err=%v want %v", err, tc.want)
			}
		})
	}
	if err := Apply(spec, []int{16}, []float64{1}, Broadening{Shape: Shape(7), FWHM: 1}); err == nil {
		t.Fatal("expected error for invalid shape")
	}
}

func TestShapeText(t *testing.T) {
	var s Shape
	if err := s.UnmarshalText([]byte(" Gaussian ")); err != nil || s != Gaussian {
		t.Fatalf("shape=%v err=%v", s, err)
	}
	if err := s.UnmarshalText([]byte("exponential")); err != nil || s != Lorentzian {
		t.Fatalf("shape=%v err=%v", s, err)
	}
	if err := s.UnmarshalText([]byte("voigt")); err == nil {
		t.Fatal("expected error for unknown shape")
	}
	b, err := Gaussian.MarshalText()
	if err != nil || string(b) != "gaussian" {
		t.Fatalf("text=%q err=%v", b, err)
	}
}

func BenchmarkApply1024(b *testing.B) {
	spec := testutil.DeterministicAmplitudes(1, 1024, 0, 1)
	br := Broadening{Shape: Lorentzian, FWHM: 100}
	b.ReportAllocs()
	for b.Loop() {
		if err := Apply(spec, []int{1024}, []float64{25}, br); err != nil {
			b.Fatal(err)
		}
	}
}
