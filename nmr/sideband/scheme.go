package sideband

import (
	"fmt"

	algofft "github.com/cwbudde/algo-fft"
)

// Scheme owns the FFT plan and the complex amplitude vector shared by all
// plans of one simulation call.
type Scheme struct {
	Sidebands         int
	TotalOrientations int

	// Vector holds Sidebands*TotalOrientations amplitudes at
	// [k*TotalOrientations + orientation].
	Vector []complex128

	plan *algofft.Plan[complex128]
	in   []complex128
	out  []complex128
}

// NewScheme allocates the FFT support for total orientations and the given
// sideband count. No FFT plan is created for a single sideband.
func NewScheme(total, sidebands int) (*Scheme, error) {
	if !validSidebands(sidebands) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSidebands, sidebands)
	}
	if total <= 0 {
		return nil, fmt.Errorf("sideband: total orientations must be > 0: %d", total)
	}

	s := &Scheme{
		Sidebands:         sidebands,
		TotalOrientations: total,
		Vector:            make([]complex128, total*sidebands),
	}
	if sidebands == 1 {
		return s, nil
	}

	plan, err := algofft.NewPlan64(sidebands)
	if err != nil {
		return nil, fmt.Errorf("sideband: failed to create FFT plan: %w", err)
	}
	s.plan = plan
	s.in = make([]complex128, sidebands)
	s.out = make([]complex128, sidebands)
	return s, nil
}

// Release drops the FFT plan and buffers.
func (s *Scheme) Release() {
	s.plan = nil
	s.in = nil
	s.out = nil
	s.Vector = nil
}

// RealChannel copies the real part of every element of src into dst.
//
// src is an interleaved (re, im) complex buffer, so this reads len(dst)
// values at stride 2 starting from the first real part. dst and src must
// have the same element count.
func RealChannel(dst []float64, src []complex128) {
	if len(dst) != len(src) {
		panic(fmt.Sprintf("sideband: real channel length mismatch: dst=%d src=%d", len(dst), len(src)))
	}
	for i, c := range src {
		dst[i] = real(c)
	}
}

func validSidebands(n int) bool {
	return n > 0 && n&(n-1) == 0
}
