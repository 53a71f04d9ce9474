package distribution

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/cwbudde/algo-nmr/nmr/spin"
)

var (
	// ErrLengthMismatch is returned when per-system parameter lists differ in
	// length. Every list must hold one value or one value per system.
	ErrLengthMismatch = errors.New("distribution: parameter lengths differ")
	// ErrInvalidCount is returned for a non-positive sample count.
	ErrInvalidCount = errors.New("distribution: count must be > 0")
)

// Tensors holds parallel Haeberlen parameters, one pair per system.
type Tensors struct {
	Zeta []float64
	Eta  []float64
}

// SingleSite generates one single-site spin system per parameter set.
// Lists of length one are repeated for every system.
type SingleSite struct {
	Isotope                 string
	IsotropicChemicalShifts []float64
	Shielding               *Tensors
	Quadrupolar             *Tensors
	// Abundance per system in percent. Empty splits 100 percent evenly.
	// Systems with zero abundance are left out.
	Abundance []float64
}

// Systems returns the generated spin systems.
func (g SingleSite) Systems() ([]spin.SpinSystem, error) {
	lists := [][]float64{g.IsotropicChemicalShifts, g.Abundance}
	if g.Shielding != nil {
		lists = append(lists, g.Shielding.Zeta, g.Shielding.Eta)
	}
	if g.Quadrupolar != nil {
		lists = append(lists, g.Quadrupolar.Zeta, g.Quadrupolar.Eta)
	}
	n := 1
	for _, l := range lists {
		n = max(n, len(l))
	}
	for _, l := range lists {
		if len(l) > 1 && len(l) != n {
			return nil, fmt.Errorf("%w: %d values for %d systems", ErrLengthMismatch, len(l), n)
		}
	}

	at := func(l []float64, i int, fallback float64) float64 {
		switch len(l) {
		case 0:
			return fallback
		case 1:
			return l[0]
		}
		return l[i]
	}

	out := make([]spin.SpinSystem, 0, n)
	for i := range n {
		abundance := at(g.Abundance, i, 100/float64(n))
		if abundance == 0 {
			continue
		}
		site := spin.Site{
			Isotope:                g.Isotope,
			IsotropicChemicalShift: at(g.IsotropicChemicalShifts, i, 0),
		}
		if g.Shielding != nil {
			site.Shielding = &spin.SymmetricTensor{Zeta: at(g.Shielding.Zeta, i, 0), Eta: at(g.Shielding.Eta, i, 0)}
		}
		if g.Quadrupolar != nil {
			site.Quadrupolar = &spin.SymmetricTensor{Zeta: at(g.Quadrupolar.Zeta, i, 0), Eta: at(g.Quadrupolar.Eta, i, 0)}
		}
		sys := spin.SpinSystem{Sites: []spin.Site{site}, Abundance: abundance}
		if err := sys.Validate(); err != nil {
			return nil, fmt.Errorf("distribution: system %d: %w", i, err)
		}
		out = append(out, sys)
	}
	return out, nil
}

// Model selects a tensor distribution in an input file: the Czjzek model
// when Sigma is set, otherwise the extended Czjzek model about (Zeta, Eta).
type Model struct {
	Zeta  float64 `json:"zeta,omitempty" yaml:"zeta,omitempty"`
	Eta   float64 `json:"eta,omitempty" yaml:"eta,omitempty"`
	Eps   float64 `json:"eps,omitempty" yaml:"eps,omitempty"`
	Sigma float64 `json:"sigma,omitempty" yaml:"sigma,omitempty"`
}

// Sample draws n tensors from the model.
func (m Model) Sample(rng *rand.Rand, n int) *Tensors {
	var t Tensors
	if m.Sigma != 0 {
		t.Zeta, t.Eta = Czjzek{Sigma: m.Sigma}.Sample(rng, n)
	} else {
		t.Zeta, t.Eta = ExtendedCzjzek{Zeta: m.Zeta, Eta: m.Eta, Eps: m.Eps}.Sample(rng, n)
	}
	return &t
}

// Spec describes a sampled distribution of single-site spin systems.
type Spec struct {
	Name                   string  `json:"name,omitempty" yaml:"name,omitempty"`
	Isotope                string  `json:"isotope" yaml:"isotope"`
	IsotropicChemicalShift float64 `json:"isotropic_chemical_shift,omitempty" yaml:"isotropic_chemical_shift,omitempty"`
	// Shielding zeta is in ppm, quadrupolar zeta is Cq in Hz.
	Shielding   *Model `json:"shielding_symmetric,omitempty" yaml:"shielding_symmetric,omitempty"`
	Quadrupolar *Model `json:"quadrupolar,omitempty" yaml:"quadrupolar,omitempty"`
	Count       int    `json:"count" yaml:"count"`
	Seed        uint64 `json:"seed,omitempty" yaml:"seed,omitempty"`
	// Abundance of the whole distribution in percent; zero is 100.
	Abundance float64 `json:"abundance,omitempty" yaml:"abundance,omitempty"`
}

// Systems samples the spec. The same seed gives the same systems.
func (s Spec) Systems() ([]spin.SpinSystem, error) {
	if s.Count <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCount, s.Count)
	}
	if _, err := spin.LookupIsotope(s.Isotope); err != nil {
		return nil, fmt.Errorf("distribution: %w", err)
	}
	total := s.Abundance
	if total == 0 {
		total = 100
	}
	rng := rand.New(rand.NewPCG(s.Seed, 0))
	abundance := make([]float64, s.Count)
	for i := range abundance {
		abundance[i] = total / float64(s.Count)
	}
	g := SingleSite{
		Isotope:                 s.Isotope,
		IsotropicChemicalShifts: []float64{s.IsotropicChemicalShift},
		Abundance:               abundance,
	}
	if s.Shielding != nil {
		g.Shielding = s.Shielding.Sample(rng, s.Count)
	}
	if s.Quadrupolar != nil {
		g.Quadrupolar = s.Quadrupolar.Sample(rng, s.Count)
	}
	systems, err := g.Systems()
	if err != nil {
		return nil, err
	}
	if s.Name != "" {
		for i := range systems {
			systems[i].Name = fmt.Sprintf("%s-%d", s.Name, i)
		}
	}
	return systems, nil
}
