package method

import (
	"github.com/cwbudde/algo-nmr/nmr/spin"
)

// Pathway is one transition per event, in dimension then event order.
type Pathway []spin.Transition

// Flatten lays the pathway out as the flat transition sequence consumed by
// the simulation core: per event the initial quantum numbers of all sites
// followed by the final ones.
func (p Pathway) Flatten() []float64 {
	if len(p) == 0 {
		return nil
	}
	sites := len(p[0].Initial)
	out := make([]float64, 0, len(p)*2*sites)
	for _, tr := range p {
		out = append(out, tr.Initial...)
		out = append(out, tr.Final...)
	}
	return out
}

// Matches reports whether tr satisfies q for a system whose channel sites
// are flagged in onChannel.
func (q TransitionQuery) Matches(tr spin.Transition, onChannel []bool) bool {
	p, d := 0.0, 0.0
	for i, obs := range onChannel {
		mi, mf := tr.Initial[i], tr.Final[i]
		if !obs {
			if mi != mf {
				return false
			}
			continue
		}
		p += mf - mi
		d += mf*mf - mi*mi
	}
	if p != q.P {
		return false
	}
	return q.D == nil || *q.D == d
}

// TransitionPathways returns every pathway of sys selected by the method.
// An event keeps the transitions matched by any of its queries. A system
// without a site on the method channel has no pathways.
func (m *Method) TransitionPathways(sys *spin.SpinSystem) []Pathway {
	onChannel := make([]bool, len(sys.Sites))
	observed := false
	for i := range sys.Sites {
		onChannel[i] = sys.Sites[i].Isotope == m.Channel
		observed = observed || onChannel[i]
	}
	if !observed {
		return nil
	}

	all := sys.Transitions()
	var segments [][]spin.Transition
	for dim := range m.SpectralDimensions {
		for _, ev := range m.Events(dim) {
			var seg []spin.Transition
			for _, tr := range all {
				for _, q := range ev.Queries {
					if q.Matches(tr, onChannel) {
						seg = append(seg, tr)
						break
					}
				}
			}
			if len(seg) == 0 {
				return nil
			}
			segments = append(segments, seg)
		}
	}
	return cartesian(segments)
}

// cartesian returns the product of segments with the last segment varying
// fastest.
func cartesian(segments [][]spin.Transition) []Pathway {
	out := []Pathway{{}}
	for _, seg := range segments {
		next := make([]Pathway, 0, len(out)*len(seg))
		for _, prefix := range out {
			for _, tr := range seg {
				p := make(Pathway, len(prefix), len(prefix)+1)
				copy(p, prefix)
				next = append(next, append(p, tr))
			}
		}
		out = next
	}
	return out
}
