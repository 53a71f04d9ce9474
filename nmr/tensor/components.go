package tensor

import (
	"fmt"

	"github.com/cwbudde/algo-nmr/internal/vec"
	"github.com/cwbudde/algo-nmr/nmr/spin"
)

// Components holds the spatial components accumulated for one event.
type Components struct {
	R0 float64
	R2 [5]complex128
	R4 [9]complex128
}

// Zero resets all components.
func (c *Components) Zero() {
	c.R0 = 0
	vec.ZeroComplex(c.R2[:])
	vec.ZeroComplex(c.R4[:])
}

// Workspace owns the per-invocation scratch used while rotating components.
// One workspace is created per simulation call and reused for every event.
type Workspace struct {
	Components

	pas    [5]complex128
	common [5]complex128
}

// Options controls which terms are produced.
type Options struct {
	// MagneticFluxDensity in tesla.
	MagneticFluxDensity float64
	// AllowFourthRank enables the rank-4 second-order quadrupolar terms.
	AllowFourthRank bool
	// RemoveSecondOrderQuadIsotropic drops the rank-0 second-order
	// quadrupolar shift.
	RemoveSecondOrderQuadIsotropic bool
}

// Site is a spin.Site with its isotope resolved.
type Site struct {
	Spin      float64
	Isotope   spin.Isotope
	Shift     float64
	Shielding *spin.SymmetricTensor
	Quad      *spin.SymmetricTensor
}

// Isotopomer is the flattened, validated form of a spin system read by the
// rotation step. It is immutable during a simulation.
type Isotopomer struct {
	Sites []Site
}

// NewIsotopomer resolves the isotopes of sys.
func NewIsotopomer(sys *spin.SpinSystem) (*Isotopomer, error) {
	if err := sys.Validate(); err != nil {
		return nil, fmt.Errorf("tensor: %w", err)
	}
	out := &Isotopomer{Sites: make([]Site, len(sys.Sites))}
	for i := range sys.Sites {
		src := &sys.Sites[i]
		iso, err := spin.LookupIsotope(src.Isotope)
		if err != nil {
			return nil, fmt.Errorf("tensor: site %d: %w", i, err)
		}
		out.Sites[i] = Site{
			Spin:      iso.Spin,
			Isotope:   iso,
			Shift:     src.IsotropicChemicalShift,
			Shielding: src.Shielding,
			Quad:      src.Quadrupolar,
		}
	}
	return out, nil
}

// NumberOfSites returns the site count.
func (iso *Isotopomer) NumberOfSites() int { return len(iso.Sites) }
