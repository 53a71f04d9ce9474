package spin

import (
	"fmt"
	"sort"
	"strings"
)

// Isotope is a magnetically active nucleus.
type Isotope struct {
	Symbol string
	// Spin is the nuclear spin quantum number I.
	Spin float64
	// GyromagneticRatio in MHz/T.
	GyromagneticRatio float64
}

// LarmorFrequency returns the Larmor frequency in Hz at b0 tesla, using the
// -gamma*B0 sign convention.
func (iso Isotope) LarmorFrequency(b0 float64) float64 {
	return -iso.GyromagneticRatio * b0 * 1e6
}

// Quadrupolar reports whether the isotope can carry an electric quadrupole
// coupling (I >= 1).
func (iso Isotope) Quadrupolar() bool { return iso.Spin >= 1 }

var isotopes = map[string]Isotope{
	"1H":   {Symbol: "1H", Spin: 0.5, GyromagneticRatio: 42.577478},
	"2H":   {Symbol: "2H", Spin: 1, GyromagneticRatio: 6.535902},
	"13C":  {Symbol: "13C", Spin: 0.5, GyromagneticRatio: 10.708395},
	"15N":  {Symbol: "15N", Spin: 0.5, GyromagneticRatio: -4.316377},
	"17O":  {Symbol: "17O", Spin: 2.5, GyromagneticRatio: -5.774236},
	"23Na": {Symbol: "23Na", Spin: 1.5, GyromagneticRatio: 11.268678},
	"27Al": {Symbol: "27Al", Spin: 2.5, GyromagneticRatio: 11.103084},
	"29Si": {Symbol: "29Si", Spin: 0.5, GyromagneticRatio: -8.465499},
	"31P":  {Symbol: "31P", Spin: 0.5, GyromagneticRatio: 17.251000},
	"33S":  {Symbol: "33S", Spin: 1.5, GyromagneticRatio: 3.271670},
	"87Rb": {Symbol: "87Rb", Spin: 1.5, GyromagneticRatio: 13.984000},
}

// LookupIsotope returns the isotope with the given symbol, e.g. "27Al".
func LookupIsotope(symbol string) (Isotope, error) {
	iso, ok := isotopes[strings.TrimSpace(symbol)]
	if !ok {
		return Isotope{}, fmt.Errorf("spin: unknown isotope %q", symbol)
	}
	return iso, nil
}

// IsotopeSymbols returns the known isotope symbols in sorted order.
func IsotopeSymbols() []string {
	out := make([]string, 0, len(isotopes))
	for k := range isotopes {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
