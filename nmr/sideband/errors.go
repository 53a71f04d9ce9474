package sideband

import "errors"

var (
	// ErrInvalidSidebands is returned for non-positive or non power-of-two
	// sideband counts.
	ErrInvalidSidebands = errors.New("sideband: number of sidebands must be a power of two >= 1")
	// ErrInvalidIncrement is returned when the spectral increment is zero.
	ErrInvalidIncrement = errors.New("sideband: spectral increment must be non-zero")
	// ErrSchemeMismatch is returned when a plan and a scheme disagree on sizes.
	ErrSchemeMismatch = errors.New("sideband: plan and scheme sizes differ")
)
