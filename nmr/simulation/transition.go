package simulation

import (
	"fmt"

	"github.com/cwbudde/algo-nmr/nmr/spin"
)

// TransitionStream walks a flat transition sequence. Each record holds the
// initial quantum numbers of all sites followed by the final ones.
type TransitionStream struct {
	data  []float64
	sites int
	pos   int
}

// NewTransitionStream wraps data for a system with the given site count.
func NewTransitionStream(data []float64, sites int) *TransitionStream {
	return &TransitionStream{data: data, sites: sites}
}

// Next returns the current record and advances past it. The returned
// transition aliases the underlying data.
func (s *TransitionStream) Next() (spin.Transition, error) {
	n := 2 * s.sites
	if s.sites <= 0 || s.pos+n > len(s.data) {
		return spin.Transition{}, fmt.Errorf("%w: at %d of %d", ErrTransitionUnderflow, s.pos, len(s.data))
	}
	rec := s.data[s.pos : s.pos+n]
	s.pos += n
	return spin.Transition{Initial: rec[:s.sites], Final: rec[s.sites:]}, nil
}

// Consumed returns how many values have been read.
func (s *TransitionStream) Consumed() int { return s.pos }

// Reset rewinds the stream.
func (s *TransitionStream) Reset() { s.pos = 0 }
