package broaden

import (
	"errors"
	"fmt"
	"math"
	"strings"

	algofft "github.com/cwbudde/algo-fft"
	vecmath "github.com/cwbudde/algo-vecmath"
)

var (
	// ErrInvalidWidth is returned for a negative or non-finite FWHM.
	ErrInvalidWidth = errors.New("broaden: FWHM must be finite and >= 0")
	// ErrInvalidDimension is returned for a dimension outside the shape.
	ErrInvalidDimension = errors.New("broaden: dimension out of range")
	// ErrShapeMismatch is returned when the spectrum does not match the shape.
	ErrShapeMismatch = errors.New("broaden: spectrum length does not match shape")
)

// Shape is the line shape.
type Shape int

const (
	Lorentzian Shape = iota
	Gaussian
)

func (s Shape) String() string {
	switch s {
	case Lorentzian:
		return "lorentzian"
	case Gaussian:
		return "gaussian"
	default:
		return fmt.Sprintf("Shape(%d)", int(s))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Shape) MarshalText() ([]byte, error) {
	if s != Lorentzian && s != Gaussian {
		return nil, fmt.Errorf("broaden: invalid shape %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Shape) UnmarshalText(b []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(b))) {
	case "lorentzian", "exponential":
		*s = Lorentzian
	case "gaussian":
		*s = Gaussian
	default:
		return fmt.Errorf("broaden: unknown shape %q", string(b))
	}
	return nil
}

// Broadening describes one convolution along a spectral dimension.
type Broadening struct {
	Shape Shape `json:"shape" yaml:"shape"`
	// FWHM in Hz.
	FWHM float64 `json:"fwhm" yaml:"fwhm"`
	// Dim is the spectral dimension index.
	Dim int `json:"dim,omitempty" yaml:"dim,omitempty"`
}

// Validate checks the width.
func (b Broadening) Validate() error {
	if b.FWHM < 0 || math.IsNaN(b.FWHM) || math.IsInf(b.FWHM, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidWidth, b.FWHM)
	}
	if _, err := b.Shape.MarshalText(); err != nil {
		return err
	}
	return nil
}

// apodization returns the time-domain decay of the line shape at t seconds.
func (b Broadening) apodization(t float64) float64 {
	t = math.Abs(t)
	switch b.Shape {
	case Gaussian:
		x := math.Pi * b.FWHM * t
		return math.Exp(-x * x / (4 * math.Ln2))
	default:
		return math.Exp(-math.Pi * b.FWHM * t)
	}
}

// Apply broadens spec in place along b.Dim. shape holds the count of every
// dimension (row-major, dimension 0 outer) and increments the bin width in
// Hz of every dimension.
func Apply(spec []float64, shape []int, increments []float64, b Broadening) error {
	if err := b.Validate(); err != nil {
		return err
	}
	if b.Dim < 0 || b.Dim >= len(shape) || len(increments) != len(shape) {
		return fmt.Errorf("%w: %d of %d", ErrInvalidDimension, b.Dim, len(shape))
	}
	size := 1
	for _, n := range shape {
		size *= n
	}
	if size != len(spec) || size == 0 {
		return fmt.Errorf("%w: %d values for shape %v", ErrShapeMismatch, len(spec), shape)
	}
	if b.FWHM == 0 {
		return nil
	}

	n := shape[b.Dim]
	// stride between neighbours along the dimension, and the number of
	// lines before and after it
	stride := 1
	for _, c := range shape[b.Dim+1:] {
		stride *= c
	}
	outer := size / (n * stride)

	c, err := newConvolver(n, increments[b.Dim], b)
	if err != nil {
		return err
	}
	for o := range outer {
		for s := range stride {
			base := o*n*stride + s
			for i := range n {
				c.line[i] = spec[base+i*stride]
			}
			if err := c.process(); err != nil {
				return err
			}
			for i := range n {
				spec[base+i*stride] = c.line[i]
			}
		}
	}
	return nil
}

type convolver struct {
	plan  *algofft.Plan[complex128]
	apod  []float64
	buf   []complex128
	tmp   []complex128
	line  []float64
	check []float64
}

func newConvolver(n int, increment float64, b Broadening) (*convolver, error) {
	size := 1
	for size < 2*n {
		size <<= 1
	}
	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("broaden: failed to create FFT plan: %w", err)
	}

	// conjugate axis in seconds: k / (size * increment), FFT order
	dt := 1 / (float64(size) * math.Abs(increment))
	apod := make([]float64, size)
	for k := range size {
		order := k
		if k >= size/2 {
			order = k - size
		}
		apod[k] = b.apodization(float64(order) * dt)
	}

	return &convolver{
		plan:  plan,
		apod:  apod,
		buf:   make([]complex128, size),
		tmp:   make([]complex128, size),
		line:  make([]float64, n),
		check: make([]float64, n),
	}, nil
}

// process convolves c.line in place.
func (c *convolver) process() error {
	before := vecmath.Sum(c.line)
	if before == 0 {
		return nil
	}

	for i := range c.buf {
		c.buf[i] = 0
	}
	for i, v := range c.line {
		c.buf[i] = complex(v, 0)
	}
	if err := c.plan.Forward(c.tmp, c.buf); err != nil {
		return fmt.Errorf("broaden: forward FFT failed: %w", err)
	}
	for k, a := range c.apod {
		c.tmp[k] *= complex(a, 0)
	}
	if err := c.plan.Inverse(c.buf, c.tmp); err != nil {
		return fmt.Errorf("broaden: inverse FFT failed: %w", err)
	}

	for i := range c.line {
		c.check[i] = real(c.buf[i])
	}
	after := vecmath.Sum(c.check)
	if after == 0 {
		return nil
	}
	// restores the integral independent of the FFT scaling convention and
	// of the tails that left the window
	vecmath.ScaleBlock(c.line, c.check, before/after)
	return nil
}
