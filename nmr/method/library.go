package method

import (
	"fmt"

	"github.com/cwbudde/algo-nmr/nmr/spin"
)

// BlochDecay returns a one-pulse method observing every single-quantum
// (P = -1) transition of channel.
func BlochDecay(channel string, b0, rotorFrequency float64, dim SpectralDimension) *Method {
	dim.Events = []Event{{TransitionQueries: []TransitionQuery{{P: -1}}}}
	return &Method{
		Name:                "BlochDecaySpectrum",
		Channel:             channel,
		MagneticFluxDensity: b0,
		RotorFrequency:      rotorFrequency,
		RotorAngle:          MagicAngle,
		SpectralDimensions:  []SpectralDimension{dim},
	}
}

// BlochDecayCentralTransition is [BlochDecay] restricted to the symmetric
// (D = 0) transitions, which for a half-integer quadrupolar nucleus is the
// central transition.
func BlochDecayCentralTransition(channel string, b0, rotorFrequency float64, dim SpectralDimension) *Method {
	m := BlochDecay(channel, b0, rotorFrequency, dim)
	m.Name = "BlochDecayCTSpectrum"
	zero := 0.0
	m.SpectralDimensions[0].Events[0].TransitionQueries[0].D = &zero
	return m
}

// infiniteSpinning is the rotor frequency of the named 2D methods, which
// model the infinite spinning limit.
const infiniteSpinning = 1e12

// kSTMAS holds the satellite-transition MAS scaling factor k per
// satellite order (2|D| - 1 for the +-D satellite pair) and spin.
var kSTMAS = map[int]map[float64]float64{
	3: {1.5: 24.0 / 27, 2.5: 21.0 / 72, 3.5: 84.0 / 135, 4.5: 165.0 / 216},
	5: {2.5: 132.0 / 72, 3.5: 69.0 / 135, 4.5: 12.0 / 216},
	7: {3.5: 324.0 / 135, 4.5: 243.0 / 216},
	9: {4.5: 600.0 / 216},
}

// ST1VAS returns the inner satellite-transition variable-angle spinning
// method: dimension 0 observes the +-3/2 <-> +-1/2 satellite pair
// (D = +-2), dimension 1 the central transition. The affine matrix shears
// dimension 0 so that it correlates the isotropic shift free of
// second-order quadrupolar broadening.
func ST1VAS(channel string, b0 float64, dims [2]SpectralDimension) (*Method, error) {
	return stvas("ST1_VAS", channel, b0, dims, 1)
}

// ST2VAS is [ST1VAS] for the +-5/2 <-> +-3/2 satellite pair (D = +-4).
func ST2VAS(channel string, b0 float64, dims [2]SpectralDimension) (*Method, error) {
	return stvas("ST2_VAS", channel, b0, dims, 2)
}

func stvas(name, channel string, b0 float64, dims [2]SpectralDimension, order int) (*Method, error) {
	iso, err := spin.LookupIsotope(channel)
	if err != nil {
		return nil, fmt.Errorf("method: %s: %w", name, err)
	}
	k, ok := kSTMAS[2*order+1][iso.Spin]
	if !ok {
		return nil, fmt.Errorf("%w: %s requires a spin >= %.1f, %s has %.1f",
			ErrUnsupportedSpin, name, float64(order)+0.5, channel, iso.Spin)
	}

	d := float64(2 * order)
	plus, minus, zero := d, -d, 0.0
	dims[0].Events = []Event{{TransitionQueries: []TransitionQuery{{P: -1, D: &plus}, {P: -1, D: &minus}}}}
	dims[1].Events = []Event{{TransitionQueries: []TransitionQuery{{P: -1, D: &zero}}}}
	for i := range dims {
		if dims[i].Count == 0 {
			dims[i].Count = defaultCount
		}
		if dims[i].SpectralWidth == 0 {
			dims[i].SpectralWidth = defaultSpectralWidth
		}
	}

	return &Method{
		Name:                name,
		Channel:             channel,
		MagneticFluxDensity: b0,
		RotorFrequency:      infiniteSpinning,
		RotorAngle:          MagicAngle,
		SpectralDimensions:  dims[:],
		AffineMatrix:        []float64{1 / (1 + k), k / (1 + k), 0, 1},
	}, nil
}
