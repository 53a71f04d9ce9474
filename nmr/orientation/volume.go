package orientation

import (
	"fmt"
	"strings"
)

// Volume selects the part of the orientation sphere integrated over.
type Volume int

const (
	// Octant integrates over one octant, alpha and beta in [0, pi/2].
	Octant Volume = iota
	// Hemisphere integrates over the upper hemisphere.
	Hemisphere
	// Sphere integrates over the full sphere.
	Sphere
)

// Octants returns the number of octants the volume spans.
func (v Volume) Octants() int {
	switch v {
	case Hemisphere:
		return 4
	case Sphere:
		return 8
	default:
		return 1
	}
}

func (v Volume) String() string {
	switch v {
	case Octant:
		return "octant"
	case Hemisphere:
		return "hemisphere"
	case Sphere:
		return "sphere"
	default:
		return fmt.Sprintf("Volume(%d)", int(v))
	}
}

// Valid reports whether v is one of the defined volumes.
func (v Volume) Valid() bool { return v >= Octant && v <= Sphere }

// ParseVolume parses "octant", "hemisphere" or "sphere".
func ParseVolume(s string) (Volume, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "octant":
		return Octant, nil
	case "hemisphere":
		return Hemisphere, nil
	case "sphere":
		return Sphere, nil
	default:
		return 0, fmt.Errorf("orientation: unknown integration volume %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (v Volume) MarshalText() ([]byte, error) {
	if !v.Valid() {
		return nil, fmt.Errorf("orientation: invalid integration volume %d", int(v))
	}
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Volume) UnmarshalText(b []byte) error {
	parsed, err := ParseVolume(string(b))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
