package spin

import "fmt"

// SymmetricTensor holds the Haeberlen parameters of a traceless second-rank
// symmetric tensor and the Euler angles of its principal axis system.
//
// For a shielding tensor Zeta is the anisotropy in ppm; for a quadrupolar
// tensor it is the coupling constant Cq in Hz.
type SymmetricTensor struct {
	Zeta  float64 `json:"zeta" yaml:"zeta"`
	Eta   float64 `json:"eta" yaml:"eta"`
	Alpha float64 `json:"alpha,omitempty" yaml:"alpha,omitempty"`
	Beta  float64 `json:"beta,omitempty" yaml:"beta,omitempty"`
	Gamma float64 `json:"gamma,omitempty" yaml:"gamma,omitempty"`
}

// Validate checks the asymmetry range.
func (s *SymmetricTensor) Validate() error {
	if s.Eta < 0 || s.Eta > 1 {
		return fmt.Errorf("eta must be in [0,1]: %f", s.Eta)
	}
	return nil
}

// Site is a single nucleus with its interaction tensors.
type Site struct {
	Isotope string `json:"isotope" yaml:"isotope"`
	// IsotropicChemicalShift in ppm.
	IsotropicChemicalShift float64          `json:"isotropic_chemical_shift" yaml:"isotropic_chemical_shift"`
	Shielding              *SymmetricTensor `json:"shielding_symmetric,omitempty" yaml:"shielding_symmetric,omitempty"`
	Quadrupolar            *SymmetricTensor `json:"quadrupolar,omitempty" yaml:"quadrupolar,omitempty"`
}

// Validate checks the isotope and tensor parameters.
func (s *Site) Validate() error {
	iso, err := LookupIsotope(s.Isotope)
	if err != nil {
		return err
	}
	if s.Shielding != nil {
		if err := s.Shielding.Validate(); err != nil {
			return fmt.Errorf("shielding: %w", err)
		}
	}
	if s.Quadrupolar != nil {
		if !iso.Quadrupolar() {
			return fmt.Errorf("%s with spin %.1f does not allow a quadrupolar tensor", iso.Symbol, iso.Spin)
		}
		if err := s.Quadrupolar.Validate(); err != nil {
			return fmt.Errorf("quadrupolar: %w", err)
		}
	}
	return nil
}

// Spin returns the spin quantum number of the site isotope, or 0 when the
// isotope is unknown.
func (s *Site) Spin() float64 {
	iso, err := LookupIsotope(s.Isotope)
	if err != nil {
		return 0
	}
	return iso.Spin
}
