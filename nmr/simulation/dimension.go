package simulation

import (
	"github.com/cwbudde/algo-nmr/internal/vec"
	"github.com/cwbudde/algo-nmr/nmr/sideband"
)

// Event is one stage of a spectroscopic dimension.
type Event struct {
	Fraction            float64
	MagneticFluxDensity float64

	Plan *sideband.Plan

	// FreqAmplitude holds the sideband amplitude of every orientation at
	// [k*TotalOrientations + orientation]. It starts out as all ones and
	// stays that way for a single sideband.
	FreqAmplitude []float64
}

// Dimension is one spectroscopic axis of the output spectrum.
type Dimension struct {
	Count             int
	CoordinatesOffset float64
	Increment         float64

	// NormalizeOffset is 0.5 - CoordinatesOffset/Increment, in bins.
	NormalizeOffset float64
	// R0Offset is the fraction-weighted isotropic offset in bins.
	R0Offset float64

	// LocalFrequency holds the orientation-dependent frequency in bins of
	// every orientation. Shared by all events of the dimension.
	LocalFrequency []float64
	// FreqOffset is per-octant scratch for the shifted frequencies.
	FreqOffset []float64

	Events []Event
}

// NewDimension allocates the buffers of a dimension for the given
// orientation counts. Events are appended by the caller with [Dimension.AddEvent].
func NewDimension(count int, coordinatesOffset, increment float64, totalOrientations, octantOrientations int) *Dimension {
	return &Dimension{
		Count:             count,
		CoordinatesOffset: coordinatesOffset,
		Increment:         increment,
		NormalizeOffset:   0.5 - coordinatesOffset/increment,
		LocalFrequency:    make([]float64, totalOrientations),
		FreqOffset:        make([]float64, octantOrientations),
	}
}

// AddEvent appends an event evaluated with plan.
func (d *Dimension) AddEvent(fraction, b0 float64, plan *sideband.Plan) {
	d.Events = append(d.Events, Event{
		Fraction:            fraction,
		MagneticFluxDensity: b0,
		Plan:                plan,
		FreqAmplitude:       vec.Ones(plan.TotalOrientations * plan.Sidebands),
	})
}

// lastPlan returns the plan of the final event, which supplies the
// sideband offsets and weights used when accumulating.
func (d *Dimension) lastPlan() *sideband.Plan {
	return d.Events[len(d.Events)-1].Plan
}

// Dimensionality selects the accumulation path.
type Dimensionality int

const (
	OneDimensional Dimensionality = iota + 1
	TwoDimensional
)

func dimensionalityOf(n int) (Dimensionality, error) {
	switch n {
	case 1:
		return OneDimensional, nil
	case 2:
		return TwoDimensional, nil
	default:
		return 0, ErrUnsupportedDimensions
	}
}

func (d Dimensionality) String() string {
	switch d {
	case OneDimensional:
		return "1D"
	case TwoDimensional:
		return "2D"
	default:
		return "unknown"
	}
}
