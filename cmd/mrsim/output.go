package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/cwbudde/algo-nmr/internal/store"
	"github.com/cwbudde/algo-nmr/nmr/method"
	"github.com/cwbudde/algo-nmr/nmr/spin"
)

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// writeCSV writes one row per spectrum value. 1D rows carry the frequency
// in Hz and ppm; 2D rows carry both dimension frequencies in Hz.
func writeCSV(w io.Writer, m *method.Method, spectrum []float64) error {
	cw := csv.NewWriter(w)
	dims := m.SpectralDimensions

	switch len(dims) {
	case 1:
		larmor := 0.0
		if iso, err := spin.LookupIsotope(m.Channel); err == nil {
			larmor = math.Abs(iso.LarmorFrequency(m.MagneticFluxDensity))
		}
		if err := cw.Write([]string{"frequency_hz", "ppm", "amplitude"}); err != nil {
			return err
		}
		for i, hz := range dims[0].Coordinates() {
			ppm := math.NaN()
			if larmor != 0 {
				ppm = hz / larmor * 1e6
			}
			if err := cw.Write([]string{formatFloat(hz), formatFloat(ppm), formatFloat(spectrum[i])}); err != nil {
				return err
			}
		}
	case 2:
		if err := cw.Write([]string{"frequency0_hz", "frequency1_hz", "amplitude"}); err != nil {
			return err
		}
		c0, c1 := dims[0].Coordinates(), dims[1].Coordinates()
		for p, f0 := range c0 {
			for q, f1 := range c1 {
				v := spectrum[p*len(c1)+q]
				if err := cw.Write([]string{formatFloat(f0), formatFloat(f1), formatFloat(v)}); err != nil {
					return err
				}
			}
		}
	default:
		return fmt.Errorf("csv output supports 1 or 2 dimensions, got %d", len(dims))
	}

	cw.Flush()
	return cw.Error()
}

// writeStoredCSV writes a stored run by bin index. The method grid is not
// part of a stored run.
func writeStoredCSV(w io.Writer, run *store.Run) error {
	cw := csv.NewWriter(w)
	switch len(run.Shape) {
	case 1:
		if err := cw.Write([]string{"index", "amplitude"}); err != nil {
			return err
		}
		for i, v := range run.Spectrum {
			if err := cw.Write([]string{strconv.Itoa(i), formatFloat(v)}); err != nil {
				return err
			}
		}
	case 2:
		if err := cw.Write([]string{"index0", "index1", "amplitude"}); err != nil {
			return err
		}
		n1 := run.Shape[1]
		for i, v := range run.Spectrum {
			if err := cw.Write([]string{strconv.Itoa(i / n1), strconv.Itoa(i % n1), formatFloat(v)}); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("csv output supports 1 or 2 dimensions, got %d", len(run.Shape))
	}
	cw.Flush()
	return cw.Error()
}
