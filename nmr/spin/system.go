package spin

import (
	"fmt"
	"math"
)

// SpinSystem is an isolated set of sites simulated together.
type SpinSystem struct {
	Name  string `json:"name,omitempty" yaml:"name,omitempty"`
	Sites []Site `json:"sites" yaml:"sites"`
	// Abundance in percent; zero is treated as 100.
	Abundance float64 `json:"abundance,omitempty" yaml:"abundance,omitempty"`
}

// Validate checks every site and the abundance range.
func (s *SpinSystem) Validate() error {
	if len(s.Sites) == 0 {
		return errNoSites
	}
	for i := range s.Sites {
		if err := s.Sites[i].Validate(); err != nil {
			return fmt.Errorf("site %d: %w", i, err)
		}
	}
	if s.Abundance < 0 || s.Abundance > 100 {
		return fmt.Errorf("abundance must be in [0,100]: %f", s.Abundance)
	}
	return nil
}

// Weight returns the abundance as a fraction.
func (s *SpinSystem) Weight() float64 {
	if s.Abundance == 0 {
		return 1
	}
	return s.Abundance / 100
}

// Spins returns the spin quantum number of every site.
func (s *SpinSystem) Spins() []float64 {
	out := make([]float64, len(s.Sites))
	for i := range s.Sites {
		out[i] = s.Sites[i].Spin()
	}
	return out
}

// Transition connects two Zeeman product states of a spin system.
type Transition struct {
	Initial []float64
	Final   []float64
}

// P returns the total coherence order change sum(mf - mi).
func (t Transition) P() float64 {
	p := 0.0
	for i := range t.Initial {
		p += t.Final[i] - t.Initial[i]
	}
	return p
}

// D returns sum(mf^2 - mi^2) over sites.
func (t Transition) D() float64 {
	d := 0.0
	for i := range t.Initial {
		d += t.Final[i]*t.Final[i] - t.Initial[i]*t.Initial[i]
	}
	return d
}

// States returns every Zeeman product state of the system. Each state lists
// one magnetic quantum number per site, highest m first.
func (s *SpinSystem) States() [][]float64 {
	states := [][]float64{{}}
	for _, sp := range s.Spins() {
		levels := int(math.Round(2*sp)) + 1
		next := make([][]float64, 0, len(states)*levels)
		for _, st := range states {
			for k := range levels {
				m := sp - float64(k)
				row := make([]float64, len(st)+1)
				copy(row, st)
				row[len(st)] = m
				next = append(next, row)
			}
		}
		states = next
	}
	return states
}

// Transitions returns every transition between distinct Zeeman states.
func (s *SpinSystem) Transitions() []Transition {
	states := s.States()
	out := make([]Transition, 0, len(states)*(len(states)-1))
	for i := range states {
		for f := range states {
			if i == f {
				continue
			}
			out = append(out, Transition{Initial: states[i], Final: states[f]})
		}
	}
	return out
}
