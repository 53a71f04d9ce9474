package simulation

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/cwbudde/algo-nmr/nmr/orientation"
	"github.com/cwbudde/algo-nmr/nmr/sideband"
	"github.com/cwbudde/algo-nmr/nmr/tensor"
)

// staticThreshold is the rotor frequency (Hz) below which a sample is
// treated as static.
const staticThreshold = 1e-3

// staticRotorFrequency replaces the rotor frequency of a static sample. It
// pushes every spinning sideband far outside any realistic window.
const staticRotorFrequency = 1e9

// EventParams describes one event of a dimension.
type EventParams struct {
	Fraction            float64
	MagneticFluxDensity float64
	// RotorAngle overrides Params.RotorAngle for this event when set.
	RotorAngle *float64
}

// DimensionParams describes one spectroscopic dimension.
type DimensionParams struct {
	Count             int
	CoordinatesOffset float64
	Increment         float64
	Events            []EventParams
}

// Params is the input of [Simulate].
type Params struct {
	Dimensions []DimensionParams
	Isotopomer *tensor.Isotopomer

	// Transitions is the flat transition sequence, one record of
	// 2*sites values per event in dimension order.
	Transitions []float64

	QuadSecondOrder                bool
	RemoveSecondOrderQuadIsotropic bool

	NumberOfSidebands int
	// RotorFrequency in Hz.
	RotorFrequency float64
	// RotorAngle in radians.
	RotorAngle float64

	IntegrationDensity int
	IntegrationVolume  orientation.Volume

	// Interpolation enables accumulation into the spectrum.
	Interpolation bool

	// AffineMatrix is an optional row-major n x n transform of the
	// dimension frequencies (in Hz) for n dimensions. Nil is the identity.
	AffineMatrix []float64
}

// Validate checks the parameters without allocating anything.
func (p *Params) Validate(specLen int) error {
	if _, err := dimensionalityOf(len(p.Dimensions)); err != nil {
		return fmt.Errorf("%w: got %d", err, len(p.Dimensions))
	}
	if p.Isotopomer == nil {
		return ErrNilIsotopomer
	}
	sites := p.Isotopomer.NumberOfSites()
	if sites == 0 {
		return errors.New("simulation: isotopomer has no sites")
	}

	size, events := 1, 0
	for i, d := range p.Dimensions {
		if d.Count <= 0 {
			return fmt.Errorf("%w: dimension %d has %d", ErrInvalidCount, i, d.Count)
		}
		if d.Increment == 0 {
			return fmt.Errorf("%w: dimension %d", ErrInvalidIncrement, i)
		}
		if len(d.Events) == 0 {
			return fmt.Errorf("%w: dimension %d", ErrNoEvents, i)
		}
		size *= d.Count
		events += len(d.Events)
	}
	if p.Interpolation && specLen != size {
		return fmt.Errorf("%w: %d, want %d", ErrSpectrumSize, specLen, size)
	}
	if want := events * 2 * sites; len(p.Transitions) != want {
		return fmt.Errorf("%w: %d values, want %d", ErrTransitionLength, len(p.Transitions), want)
	}
	if p.IntegrationDensity <= 0 {
		return fmt.Errorf("simulation: integration density must be > 0: %d", p.IntegrationDensity)
	}
	if !p.IntegrationVolume.Valid() {
		return fmt.Errorf("simulation: invalid integration volume %d", int(p.IntegrationVolume))
	}
	if err := validateAffine(p.AffineMatrix, len(p.Dimensions)); err != nil {
		return err
	}
	if n := p.NumberOfSidebands; n < 1 || n&(n-1) != 0 {
		return fmt.Errorf("%w: %d", sideband.ErrInvalidSidebands, n)
	}
	return nil
}

// allowFourthRank reports whether rank-4 terms can contribute: the first
// site must be quadrupolar and second-order terms requested.
func (p *Params) allowFourthRank() bool {
	return p.QuadSecondOrder && p.Isotopomer.Sites[0].Spin > 0.5
}

// Simulate adds the spectrum of one spin system to spec and returns the
// evaluated dimensions. spec must hold the product of all dimension counts
// and is never cleared. The returned dimensions carry the per-event
// amplitude buffers, which is what callers read when interpolation is off.
func Simulate(spec []float64, p Params) ([]*Dimension, error) {
	if err := p.Validate(len(spec)); err != nil {
		return nil, err
	}

	sidebands := p.NumberOfSidebands
	rotorFrequency := p.RotorFrequency
	rotorAngle := p.RotorAngle
	static := rotorFrequency < staticThreshold
	if static {
		rotorFrequency = staticRotorFrequency
		rotorAngle = 0
		sidebands = 1
		Logger().Debug("static sample, using single sideband")
	}

	fourth := p.allowFourthRank()
	scheme, err := orientation.NewScheme(p.IntegrationDensity, fourth, p.IntegrationVolume)
	if err != nil {
		return nil, fmt.Errorf("simulation: %w", err)
	}
	defer scheme.Release()

	fft, err := sideband.NewScheme(scheme.TotalOrientations, sidebands)
	if err != nil {
		return nil, fmt.Errorf("simulation: %w", err)
	}
	defer fft.Release()

	Logger().Debug("schemes built",
		slog.Int("density", scheme.IntegrationDensity),
		slog.String("volume", scheme.Volume.String()),
		slog.Int("orientations", scheme.TotalOrientations),
		slog.Int("sidebands", sidebands),
		slog.Bool("fourthRank", fourth))

	dims := make([]*Dimension, len(p.Dimensions))
	for i, dp := range p.Dimensions {
		dim := NewDimension(dp.Count, dp.CoordinatesOffset, dp.Increment,
			scheme.TotalOrientations, scheme.OctantOrientations)
		for _, ep := range dp.Events {
			angle := rotorAngle
			if ep.RotorAngle != nil && !static {
				angle = *ep.RotorAngle
			}
			plan, err := sideband.NewPlan(scheme, sidebands, rotorFrequency, angle, dp.Increment)
			if err != nil {
				return nil, fmt.Errorf("simulation: dimension %d: %w", i, err)
			}
			dim.AddEvent(ep.Fraction, ep.MagneticFluxDensity, plan)
		}
		dims[i] = dim
	}

	core := &Core{
		Isotopomer:                     p.Isotopomer,
		Scheme:                         scheme,
		FFT:                            fft,
		Dimensions:                     dims,
		RemoveSecondOrderQuadIsotropic: p.RemoveSecondOrderQuadIsotropic,
		AffineMatrix:                   p.AffineMatrix,
	}
	stream := NewTransitionStream(p.Transitions, p.Isotopomer.NumberOfSites())
	if err := core.Run(spec, stream, p.Interpolation); err != nil {
		return nil, err
	}
	return dims, nil
}
