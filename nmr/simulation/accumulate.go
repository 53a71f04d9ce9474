package simulation

import (
	"fmt"

	vecmath "github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-nmr/internal/vec"
	"github.com/cwbudde/algo-nmr/nmr/sideband"
	"github.com/cwbudde/algo-nmr/nmr/tent"
)

// inWindow reports whether a sideband at offset (in bins) is rasterized.
// The truncated offset must lie in [0, count].
func inWindow(offset float64, count int) bool {
	p := int(offset)
	return p >= 0 && p <= count
}

// eventProduct writes the elementwise product of all event amplitudes of
// dim into dst.
func eventProduct(dst []float64, dim *Dimension) {
	vec.Fill(dst, 1)
	for i := range dim.Events {
		vecmath.MulBlockInPlace(dst, dim.Events[i].FreqAmplitude)
	}
}

// applyWeights scales every octant-orientation block of amp by the
// quadrature weights. amp is laid out as consecutive blocks of
// len(weights) values (one per octant and sideband), so this is the same as
// scaling the strided slice j, j+oo, ... by weights[j].
func applyWeights(amp, weights []float64) {
	oo := len(weights)
	for b := 0; b+oo <= len(amp); b += oo {
		vecmath.MulBlockInPlace(amp[b:b+oo], weights)
	}
}

func (c *Core) ensureScratch(size, oo int) {
	c.ampA = vec.EnsureLen(c.ampA, size)
	c.ampB = vec.EnsureLen(c.ampB, size)
	c.scratch = vec.EnsureLen(c.scratch, oo)
}

func (c *Core) accumulate1D(spec []float64) error {
	dim := c.Dimensions[0]
	if len(spec) < dim.Count {
		return fmt.Errorf("%w: %d < %d", ErrSpectrumSize, len(spec), dim.Count)
	}
	plan := dim.lastPlan()
	c.ensureScratch(plan.TotalOrientations*plan.Sidebands, plan.OctantOrientations)

	amp := c.ampA
	eventProduct(amp, dim)
	applyWeights(amp, plan.NormAmplitudes)

	accumulate1D(spec[:dim.Count], dim, plan, amp, c.Scheme.Triangles)
	return nil
}

func accumulate1D(spec []float64, dim *Dimension, plan *sideband.Plan, amp []float64, tris [][3]int) {
	oo := plan.OctantOrientations
	total := plan.TotalOrientations
	offset := dim.NormalizeOffset + dim.R0Offset

	for i := range plan.Sidebands {
		offset1 := offset + plan.VRFreq[i]
		if !inWindow(offset1, dim.Count) {
			continue
		}
		step := i * total
		for j := range plan.Octants {
			addr := j * oo
			vec.Ramp(dim.FreqOffset, dim.LocalFrequency[addr:addr+oo], 1, offset1)
			tent.Octahedron1D(spec, dim.FreqOffset, amp[step+addr:step+addr+oo], tris)
		}
	}
}

func (c *Core) accumulate2D(spec []float64) error {
	dimA, dimB := c.Dimensions[0], c.Dimensions[1]
	if len(spec) != dimA.Count*dimB.Count {
		return fmt.Errorf("%w: %d != %dx%d", ErrSpectrumSize, len(spec), dimA.Count, dimB.Count)
	}
	planA, planB := dimA.lastPlan(), dimB.lastPlan()
	c.ensureScratch(planA.TotalOrientations*planA.Sidebands, planA.OctantOrientations)

	eventProduct(c.ampA, dimA)
	eventProduct(c.ampB, dimB)
	// weights once per orientation pair
	applyWeights(c.ampB, planB.NormAmplitudes)

	oo := planA.OctantOrientations
	total := planA.TotalOrientations
	tris := c.Scheme.Triangles
	offA := dimA.NormalizeOffset + dimA.R0Offset
	offB := dimB.NormalizeOffset + dimB.R0Offset

	for i := range planA.Sidebands {
		offA1 := offA + planA.VRFreq[i]
		if !inWindow(offA1, dimA.Count) {
			continue
		}
		for k := range planB.Sidebands {
			offB1 := offB + planB.VRFreq[k]
			if !inWindow(offB1, dimB.Count) {
				continue
			}
			for j := range planA.Octants {
				addr := j * oo
				vec.Ramp(dimA.FreqOffset, dimA.LocalFrequency[addr:addr+oo], 1, offA1)
				vec.Ramp(dimB.FreqOffset, dimB.LocalFrequency[addr:addr+oo], 1, offB1)
				a := c.ampA[i*total+addr : i*total+addr+oo]
				b := c.ampB[k*total+addr : k*total+addr+oo]
				vecmath.MulBlock(c.scratch, a, b)
				tent.Octahedron2D(spec, dimA.FreqOffset, dimB.FreqOffset, c.scratch, tris, dimA.Count, dimB.Count)
			}
		}
	}
	return nil
}
