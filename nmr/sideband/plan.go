package sideband

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-nmr/nmr/orientation"
	"github.com/cwbudde/algo-nmr/nmr/tensor"
	"github.com/cwbudde/algo-nmr/nmr/wigner"
)

// Plan is the per-event evaluation configuration.
type Plan struct {
	Sidebands       int
	RotorFrequency  float64
	RotorAngle      float64
	Increment       float64
	AllowFourthRank bool

	Octants            int
	OctantOrientations int
	TotalOrientations  int

	// VRFreq holds the offset of every sideband in spectral bins, in FFT
	// order: 0, 1, ..., N/2-1, -N/2, ..., -1 times the rotor frequency.
	VRFreq []float64
	// NormAmplitudes holds the quadrature weight of every octant orientation.
	NormAmplitudes []float64

	scheme  *orientation.Scheme
	rotorD2 [5]float64
	rotorD4 [9]float64

	// rotor-frame components of the last Frequencies call, m != 0 only
	lab2 []complex128
	lab4 []complex128
	rot2 [5]complex128
	rot4 [9]complex128
}

// NewPlan creates a plan over the orientations of scheme. increment is the
// spectral resolution in Hz per bin of the dimension the event belongs to.
func NewPlan(scheme *orientation.Scheme, sidebands int, rotorFrequency, rotorAngle, increment float64) (*Plan, error) {
	if !validSidebands(sidebands) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSidebands, sidebands)
	}
	if increment == 0 {
		return nil, ErrInvalidIncrement
	}

	p := &Plan{
		Sidebands:          sidebands,
		RotorFrequency:     rotorFrequency,
		RotorAngle:         rotorAngle,
		Increment:          increment,
		AllowFourthRank:    scheme.AllowFourthRank,
		Octants:            scheme.Octants,
		OctantOrientations: scheme.OctantOrientations,
		TotalOrientations:  scheme.TotalOrientations,
		VRFreq:             make([]float64, sidebands),
		NormAmplitudes:     append([]float64(nil), scheme.Weights...),
		scheme:             scheme,
	}

	for k := range sidebands {
		order := k
		if k >= sidebands/2 && sidebands > 1 {
			order = k - sidebands
		}
		p.VRFreq[k] = float64(order) * rotorFrequency / increment
	}

	for m := -2; m <= 2; m++ {
		p.rotorD2[m+2] = wigner.SmallD(2, m, 0, rotorAngle)
	}
	for m := -4; m <= 4; m++ {
		p.rotorD4[m+4] = wigner.SmallD(4, m, 0, rotorAngle)
	}

	if sidebands > 1 {
		p.lab2 = make([]complex128, p.TotalOrientations*5)
		if p.AllowFourthRank {
			p.lab4 = make([]complex128, p.TotalOrientations*9)
		}
	}
	return p, nil
}

// Frequencies evaluates the local frequency of every orientation in bins.
//
// local receives fraction times the orientation-dependent, time-averaged
// frequency and r0Offset receives fraction times the isotropic frequency.
// When refresh is set both are overwritten, otherwise the event's share is
// added to what earlier events of the same dimension left there.
func (p *Plan) Frequencies(c *tensor.Components, fraction float64, refresh bool, local []float64, r0Offset *float64) {
	if len(local) != p.TotalOrientations {
		panic(fmt.Sprintf("sideband: local frequency length %d, want %d", len(local), p.TotalOrientations))
	}
	scale := fraction / p.Increment
	if refresh {
		*r0Offset = 0
	}
	*r0Offset += c.R0 * scale

	fourth := p.AllowFourthRank && hasComponents(c.R4[:])
	s := p.scheme
	for i := range p.TotalOrientations {
		wigner.RotateWithMatrix(2, s.Wigner2(i), s.Alpha[i], 0, c.R2[:], p.rot2[:])
		v := real(p.rot2[2]) * p.rotorD2[2]
		if fourth {
			wigner.RotateWithMatrix(4, s.Wigner4(i), s.Alpha[i], 0, c.R4[:], p.rot4[:])
			v += real(p.rot4[4]) * p.rotorD4[4]
		}

		if refresh {
			local[i] = v * scale
		} else {
			local[i] += v * scale
		}

		if p.lab2 == nil {
			continue
		}
		lab2 := p.lab2[i*5 : (i+1)*5]
		for m := range lab2 {
			lab2[m] = p.rot2[m] * complex(p.rotorD2[m], 0)
		}
		lab2[2] = 0
		if p.lab4 == nil {
			continue
		}
		lab4 := p.lab4[i*9 : (i+1)*9]
		if !fourth {
			clear(lab4)
			continue
		}
		for m := range lab4 {
			lab4[m] = p.rot4[m] * complex(p.rotorD4[m], 0)
		}
		lab4[4] = 0
	}
}

// Amplitudes computes the sideband amplitudes of every orientation from the
// components of the last Frequencies call and stores them in fs.Vector.
// With a single sideband every amplitude is one and nothing is written.
func (p *Plan) Amplitudes(fs *Scheme) error {
	if fs.Sidebands != p.Sidebands || fs.TotalOrientations != p.TotalOrientations {
		return fmt.Errorf("%w: plan %dx%d, scheme %dx%d", ErrSchemeMismatch,
			p.Sidebands, p.TotalOrientations, fs.Sidebands, fs.TotalOrientations)
	}
	if p.Sidebands == 1 {
		return nil
	}

	n := p.Sidebands
	total := p.TotalOrientations
	inv := 1 / float64(n)
	for i := range total {
		lab2 := p.lab2[i*5 : (i+1)*5]
		var lab4 []complex128
		if p.lab4 != nil {
			lab4 = p.lab4[i*9 : (i+1)*9]
		}
		for k := range n {
			t := float64(k) * inv
			phase := p.phase(lab2, 2, t)
			if lab4 != nil {
				phase += p.phase(lab4, 4, t)
			}
			fs.in[k] = cmplx.Exp(complex(0, phase))
		}
		if err := fs.plan.Forward(fs.out, fs.in); err != nil {
			return fmt.Errorf("sideband: forward FFT failed: %w", err)
		}
		for k := range n {
			c := fs.out[k] * complex(inv, 0)
			fs.Vector[k*total+i] = complex(real(c)*real(c)+imag(c)*imag(c), 0)
		}
	}
	return nil
}

// phase returns the accumulated phase in radians at fraction t of a rotor
// period for the rank-l components a (m=0 excluded), whose lab-frame
// frequency is sum_m a_m exp(-i m wr t).
func (p *Plan) phase(a []complex128, l int, t float64) float64 {
	var acc complex128
	for m := -l; m <= l; m++ {
		if m == 0 || a[m+l] == 0 {
			continue
		}
		fm := float64(m)
		e := cmplx.Exp(complex(0, -2*math.Pi*fm*t)) - 1
		acc += a[m+l] * e / complex(0, -fm*p.RotorFrequency)
	}
	return real(acc)
}

func hasComponents(c []complex128) bool {
	for _, v := range c {
		if v != 0 {
			return true
		}
	}
	return false
}
