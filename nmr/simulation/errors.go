package simulation

import "errors"

var (
	// ErrUnsupportedDimensions is returned for anything but one or two
	// spectroscopic dimensions.
	ErrUnsupportedDimensions = errors.New("simulation: only one or two spectroscopic dimensions are supported")
	// ErrInvalidCount is returned for a non-positive bin count.
	ErrInvalidCount = errors.New("simulation: dimension count must be > 0")
	// ErrInvalidIncrement is returned for a zero spectral increment.
	ErrInvalidIncrement = errors.New("simulation: dimension increment must be non-zero")
	// ErrNoEvents is returned for a dimension without events.
	ErrNoEvents = errors.New("simulation: dimension must have at least one event")
	// ErrSpectrumSize is returned when the spectrum length is not the product
	// of the dimension counts.
	ErrSpectrumSize = errors.New("simulation: spectrum length does not match dimension counts")
	// ErrTransitionLength is returned when the transition sequence does not
	// hold exactly one transition per event.
	ErrTransitionLength = errors.New("simulation: transition sequence length mismatch")
	// ErrTransitionUnderflow is returned when the transition stream runs out.
	ErrTransitionUnderflow = errors.New("simulation: transition stream exhausted")
	// ErrInvalidAffineMatrix is returned for an affine matrix that is not
	// n x n for n dimensions or has a zero first element.
	ErrInvalidAffineMatrix = errors.New("simulation: invalid affine matrix")
	// ErrNilIsotopomer is returned when no spin system is given.
	ErrNilIsotopomer = errors.New("simulation: isotopomer is nil")
)
