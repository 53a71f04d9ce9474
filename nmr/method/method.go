package method

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-nmr/nmr/spin"
)

// MagicAngle is arccos(1/sqrt(3)) in radians.
var MagicAngle = math.Acos(1 / math.Sqrt(3))

const (
	defaultCount         = 1024
	defaultSpectralWidth = 25000.0
)

// TransitionQuery selects transitions of the channel sites. P is the total
// coherence order change; D, when set, is the total sum(mf^2 - mi^2).
// Sites of other isotopes must stay in their state.
type TransitionQuery struct {
	P float64  `json:"P" yaml:"P"`
	D *float64 `json:"D,omitempty" yaml:"D,omitempty"`
}

// Event is one stage of a spectral dimension. Unset values are inherited
// from the method.
type Event struct {
	Fraction            *float64          `json:"fraction,omitempty" yaml:"fraction,omitempty"`
	MagneticFluxDensity *float64          `json:"magnetic_flux_density,omitempty" yaml:"magnetic_flux_density,omitempty"`
	RotorAngle          *float64          `json:"rotor_angle,omitempty" yaml:"rotor_angle,omitempty"`
	TransitionQueries   []TransitionQuery `json:"transition_queries,omitempty" yaml:"transition_queries,omitempty"`
}

// SpectralDimension is one axis of the simulated spectrum. Frequencies are
// in Hz.
type SpectralDimension struct {
	Count           int     `json:"count" yaml:"count"`
	SpectralWidth   float64 `json:"spectral_width" yaml:"spectral_width"`
	ReferenceOffset float64 `json:"reference_offset,omitempty" yaml:"reference_offset,omitempty"`
	Label           string  `json:"label,omitempty" yaml:"label,omitempty"`
	Events          []Event `json:"events,omitempty" yaml:"events,omitempty"`
}

// Increment returns the bin width in Hz.
func (d *SpectralDimension) Increment() float64 {
	return d.SpectralWidth / float64(d.Count)
}

// CoordinatesOffset returns the frequency of the first bin in Hz. Zero
// offset from the reference sits at the center of bin Count/2.
func (d *SpectralDimension) CoordinatesOffset() float64 {
	inc := d.Increment()
	if d.Count%2 == 0 {
		return d.ReferenceOffset - inc*float64(d.Count/2)
	}
	return d.ReferenceOffset - inc*float64((d.Count-1)/2)
}

// Coordinates returns the frequency of every bin in Hz.
func (d *SpectralDimension) Coordinates() []float64 {
	out := make([]float64, d.Count)
	inc, off := d.Increment(), d.CoordinatesOffset()
	for i := range out {
		out[i] = off + float64(i)*inc
	}
	return out
}

// Method is an NMR measurement on a single channel.
type Method struct {
	Name    string `json:"name,omitempty" yaml:"name,omitempty"`
	Channel string `json:"channel" yaml:"channel"`
	// MagneticFluxDensity in T.
	MagneticFluxDensity float64 `json:"magnetic_flux_density" yaml:"magnetic_flux_density"`
	// RotorFrequency in Hz; zero is a static sample.
	RotorFrequency float64 `json:"rotor_frequency,omitempty" yaml:"rotor_frequency,omitempty"`
	// RotorAngle in radians.
	RotorAngle         float64             `json:"rotor_angle,omitempty" yaml:"rotor_angle,omitempty"`
	SpectralDimensions []SpectralDimension `json:"spectral_dimensions" yaml:"spectral_dimensions"`
	// AffineMatrix is an optional row-major n x n transform of the
	// dimension frequencies for n spectral dimensions.
	AffineMatrix []float64 `json:"affine_matrix,omitempty" yaml:"affine_matrix,omitempty"`
}

// Validate checks the channel, the dimension grids and the events.
func (m *Method) Validate() error {
	if _, err := spin.LookupIsotope(m.Channel); err != nil {
		return fmt.Errorf("method: channel: %w", err)
	}
	if len(m.SpectralDimensions) == 0 {
		return ErrNoDimensions
	}
	if m.MagneticFluxDensity < 0 {
		return fmt.Errorf("method: magnetic flux density must be >= 0: %f", m.MagneticFluxDensity)
	}
	if m.RotorFrequency < 0 {
		return fmt.Errorf("method: rotor frequency must be >= 0: %f", m.RotorFrequency)
	}
	if n := len(m.SpectralDimensions); len(m.AffineMatrix) != 0 {
		if len(m.AffineMatrix) != n*n {
			return fmt.Errorf("%w: expecting %dx%d, got %d elements", ErrInvalidAffineMatrix, n, n, len(m.AffineMatrix))
		}
		if m.AffineMatrix[0] == 0 {
			return fmt.Errorf("%w: first element cannot be zero", ErrInvalidAffineMatrix)
		}
	}
	for i := range m.SpectralDimensions {
		d := &m.SpectralDimensions[i]
		if d.Count <= 0 {
			return fmt.Errorf("%w: dimension %d has %d", ErrInvalidCount, i, d.Count)
		}
		if d.SpectralWidth <= 0 {
			return fmt.Errorf("%w: dimension %d has %f", ErrInvalidSpectralWidth, i, d.SpectralWidth)
		}
		for j, ev := range d.Events {
			if ev.Fraction != nil && *ev.Fraction < 0 {
				return fmt.Errorf("%w: dimension %d event %d", ErrInvalidFraction, i, j)
			}
		}
	}
	return nil
}

// Shape returns the count of every dimension.
func (m *Method) Shape() []int {
	out := make([]int, len(m.SpectralDimensions))
	for i := range m.SpectralDimensions {
		out[i] = m.SpectralDimensions[i].Count
	}
	return out
}

// Size returns the number of spectrum values.
func (m *Method) Size() int {
	n := 1
	for _, c := range m.Shape() {
		n *= c
	}
	return n
}

// ResolvedEvent is an event with every inherited value filled in.
type ResolvedEvent struct {
	Fraction            float64
	MagneticFluxDensity float64
	RotorAngle          float64
	Queries             []TransitionQuery
}

// Events returns the resolved events of dimension dim. A dimension without
// events observes the P = -1 coherence with fraction one.
func (m *Method) Events(dim int) []ResolvedEvent {
	d := &m.SpectralDimensions[dim]
	if len(d.Events) == 0 {
		return []ResolvedEvent{m.resolve(Event{})}
	}
	out := make([]ResolvedEvent, len(d.Events))
	for i, ev := range d.Events {
		out[i] = m.resolve(ev)
	}
	return out
}

func (m *Method) resolve(ev Event) ResolvedEvent {
	r := ResolvedEvent{
		Fraction:            1,
		MagneticFluxDensity: m.MagneticFluxDensity,
		RotorAngle:          m.RotorAngle,
		Queries:             ev.TransitionQueries,
	}
	if ev.Fraction != nil {
		r.Fraction = *ev.Fraction
	}
	if ev.MagneticFluxDensity != nil {
		r.MagneticFluxDensity = *ev.MagneticFluxDensity
	}
	if ev.RotorAngle != nil {
		r.RotorAngle = *ev.RotorAngle
	}
	if len(r.Queries) == 0 {
		r.Queries = []TransitionQuery{{P: -1}}
	}
	return r
}

// EventCount returns the number of resolved events over all dimensions.
func (m *Method) EventCount() int {
	n := 0
	for i := range m.SpectralDimensions {
		n += len(m.Events(i))
	}
	return n
}
