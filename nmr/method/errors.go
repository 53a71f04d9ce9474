package method

import "errors"

var (
	// ErrNoDimensions is returned for a method without spectral dimensions.
	ErrNoDimensions = errors.New("method: at least one spectral dimension is required")
	// ErrInvalidCount is returned for a non-positive dimension count.
	ErrInvalidCount = errors.New("method: count must be > 0")
	// ErrInvalidSpectralWidth is returned for a non-positive spectral width.
	ErrInvalidSpectralWidth = errors.New("method: spectral width must be > 0")
	// ErrInvalidAffineMatrix is returned for an affine matrix of the wrong
	// size or with a zero first element.
	ErrInvalidAffineMatrix = errors.New("method: invalid affine matrix")
	// ErrUnsupportedSpin is returned when a named method does not apply to
	// the spin of the channel.
	ErrUnsupportedSpin = errors.New("method: channel spin not supported")
	// ErrInvalidFraction is returned for a negative event fraction.
	ErrInvalidFraction = errors.New("method: event fraction must be >= 0")
)
