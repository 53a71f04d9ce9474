package simulation

import (
	"fmt"
	"log/slog"

	"github.com/cwbudde/algo-nmr/nmr/orientation"
	"github.com/cwbudde/algo-nmr/nmr/sideband"
	"github.com/cwbudde/algo-nmr/nmr/tensor"
)

// Core runs the per-event evaluation and the accumulation for one spin
// system. A Core is not safe for concurrent use.
type Core struct {
	Isotopomer *tensor.Isotopomer
	Scheme     *orientation.Scheme
	FFT        *sideband.Scheme
	Dimensions []*Dimension

	RemoveSecondOrderQuadIsotropic bool
	// AffineMatrix mixes the dimension frequencies after evaluation. Nil
	// leaves them as they are.
	AffineMatrix []float64

	ws tensor.Workspace

	// accumulation scratch, sized on first use
	ampA, ampB, scratch []float64
}

// Run evaluates every event of every dimension, consuming one transition
// record per event, and then adds the interpolated spectrum to spec. With
// interpolation disabled only the event amplitude buffers and the dimension
// local frequencies are populated.
func (c *Core) Run(spec []float64, transitions *TransitionStream, interpolation bool) error {
	kind, err := dimensionalityOf(len(c.Dimensions))
	if err != nil {
		return fmt.Errorf("%w: got %d", err, len(c.Dimensions))
	}

	for di, dim := range c.Dimensions {
		refresh := true
		for ei := range dim.Events {
			ev := &dim.Events[ei]
			if err := c.evaluate(dim, ev, transitions, refresh); err != nil {
				return fmt.Errorf("simulation: dimension %d event %d: %w", di, ei, err)
			}
			refresh = false
		}
	}

	if len(c.AffineMatrix) > 0 {
		if err := validateAffine(c.AffineMatrix, len(c.Dimensions)); err != nil {
			return err
		}
		c.applyAffine()
	}

	if !interpolation {
		return nil
	}

	Logger().Debug("accumulating",
		slog.String("dimensionality", kind.String()),
		slog.Int("orientations", c.Scheme.TotalOrientations),
		slog.Int("sidebands", c.FFT.Sidebands))

	switch kind {
	case OneDimensional:
		return c.accumulate1D(spec)
	case TwoDimensional:
		return c.accumulate2D(spec)
	}
	return nil
}

func (c *Core) evaluate(dim *Dimension, ev *Event, transitions *TransitionStream, refresh bool) error {
	tr, err := transitions.Next()
	if err != nil {
		return err
	}

	c.ws.Zero()
	opts := tensor.Options{
		MagneticFluxDensity:            ev.MagneticFluxDensity,
		AllowFourthRank:                ev.Plan.AllowFourthRank,
		RemoveSecondOrderQuadIsotropic: c.RemoveSecondOrderQuadIsotropic,
	}
	if err := tensor.Rotate(c.Isotopomer, tr, opts, &c.ws); err != nil {
		return err
	}

	ev.Plan.Frequencies(&c.ws.Components, ev.Fraction, refresh, dim.LocalFrequency, &dim.R0Offset)
	if err := ev.Plan.Amplitudes(c.FFT); err != nil {
		return err
	}
	if ev.Plan.Sidebands != 1 {
		sideband.RealChannel(ev.FreqAmplitude, c.FFT.Vector)
	}
	return nil
}
