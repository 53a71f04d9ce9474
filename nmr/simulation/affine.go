package simulation

import (
	"fmt"

	vecmath "github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-nmr/internal/vec"
)

func validateAffine(m []float64, dims int) error {
	if len(m) == 0 {
		return nil
	}
	if len(m) != dims*dims {
		return fmt.Errorf("%w: %d elements for %d dimensions", ErrInvalidAffineMatrix, len(m), dims)
	}
	if m[0] == 0 {
		return fmt.Errorf("%w: first element is zero", ErrInvalidAffineMatrix)
	}
	return nil
}

// applyAffine replaces the local frequencies and isotropic offsets of every
// dimension by the affine combination of all dimensions. The mix happens in
// Hz; each result is converted back to bins of its own dimension. Sideband
// offsets are not transformed.
func (c *Core) applyAffine() {
	m := c.AffineMatrix
	switch len(c.Dimensions) {
	case 1:
		d := c.Dimensions[0]
		vecmath.ScaleBlockInPlace(d.LocalFrequency, m[0])
		d.R0Offset *= m[0]
	case 2:
		a, b := c.Dimensions[0], c.Dimensions[1]
		// ratios convert bins of one dimension into bins of the other
		ba := b.Increment / a.Increment
		ab := a.Increment / b.Increment

		n := len(a.LocalFrequency)
		c.scratch = vec.EnsureLen(c.scratch, n)
		mixed := vec.EnsureLen(c.ampA, n)
		c.ampA = mixed

		vecmath.ScaleBlock(mixed, a.LocalFrequency, m[0])
		vecmath.ScaleBlock(c.scratch, b.LocalFrequency, m[1]*ba)
		vecmath.AddBlockInPlace(mixed, c.scratch)

		vecmath.ScaleBlockInPlace(b.LocalFrequency, m[3])
		vecmath.ScaleBlock(c.scratch, a.LocalFrequency, m[2]*ab)
		vecmath.AddBlockInPlace(b.LocalFrequency, c.scratch)

		copy(a.LocalFrequency, mixed)

		r0a, r0b := a.R0Offset, b.R0Offset
		a.R0Offset = m[0]*r0a + m[1]*ba*r0b
		b.R0Offset = m[2]*ab*r0a + m[3]*r0b
	}
}
