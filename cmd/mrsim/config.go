package main

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-nmr/nmr/broaden"
	"github.com/cwbudde/algo-nmr/nmr/distribution"
	"github.com/cwbudde/algo-nmr/nmr/method"
	"github.com/cwbudde/algo-nmr/nmr/orientation"
	"github.com/cwbudde/algo-nmr/nmr/simulator"
	"github.com/cwbudde/algo-nmr/nmr/spin"
)

// SimConfig holds the optional simulation settings of an input file. Zero
// values keep the simulator defaults.
type SimConfig struct {
	IntegrationDensity             int                 `yaml:"integration_density,omitempty"`
	IntegrationVolume              *orientation.Volume `yaml:"integration_volume,omitempty"`
	NumberOfSidebands              int                 `yaml:"number_of_sidebands,omitempty"`
	QuadSecondOrder                *bool               `yaml:"quad_second_order,omitempty"`
	RemoveSecondOrderQuadIsotropic bool                `yaml:"remove_second_order_quad_isotropic,omitempty"`
}

// Input is the simulation input file.
type Input struct {
	Method      method.Method     `yaml:"method"`
	SpinSystems []spin.SpinSystem `yaml:"spin_systems"`
	// Distributions are sampled and appended to SpinSystems on load.
	Distributions []distribution.Spec `yaml:"distributions,omitempty"`
	Config        SimConfig           `yaml:"config,omitempty"`
	// Processing is applied to the summed spectrum in order.
	Processing []broaden.Broadening `yaml:"processing,omitempty"`
}

// Validate checks the method and every spin system.
func (in *Input) Validate() error {
	if err := in.Method.Validate(); err != nil {
		return err
	}
	if len(in.SpinSystems) == 0 {
		return errors.New("input: at least one spin system is required")
	}
	for i := range in.SpinSystems {
		if err := in.SpinSystems[i].Validate(); err != nil {
			return fmt.Errorf("input: spin system %d: %w", i, err)
		}
	}
	for i, b := range in.Processing {
		if err := b.Validate(); err != nil {
			return fmt.Errorf("input: processing %d: %w", i, err)
		}
		if b.Dim < 0 || b.Dim >= len(in.Method.SpectralDimensions) {
			return fmt.Errorf("input: processing %d: dimension %d out of range", i, b.Dim)
		}
	}
	if in.Config.NumberOfSidebands < 0 || in.Config.IntegrationDensity < 0 {
		return errors.New("input: config values must be >= 0")
	}
	return nil
}

// Options maps the config onto simulator options.
func (c SimConfig) Options() []simulator.Option {
	opts := []simulator.Option{
		simulator.WithIntegrationDensity(c.IntegrationDensity),
		simulator.WithSidebands(c.NumberOfSidebands),
		simulator.WithRemoveSecondOrderQuadIsotropic(c.RemoveSecondOrderQuadIsotropic),
	}
	if c.IntegrationVolume != nil {
		opts = append(opts, simulator.WithIntegrationVolume(*c.IntegrationVolume))
	}
	if c.QuadSecondOrder != nil {
		opts = append(opts, simulator.WithQuadSecondOrder(*c.QuadSecondOrder))
	}
	return opts
}

func parseInput(data []byte) (Input, error) {
	var in Input
	if err := yaml.Unmarshal(data, &in); err != nil {
		return Input{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if err := in.sample(); err != nil {
		return Input{}, err
	}
	if err := in.Validate(); err != nil {
		return Input{}, fmt.Errorf("input validation: %w", err)
	}
	return in, nil
}

// sample appends the spin systems of every distribution.
func (in *Input) sample() error {
	for i, d := range in.Distributions {
		systems, err := d.Systems()
		if err != nil {
			return fmt.Errorf("input: distribution %d: %w", i, err)
		}
		in.SpinSystems = append(in.SpinSystems, systems...)
	}
	in.Distributions = nil
	return nil
}

func loadInput(path string) (Input, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Input{}, fmt.Errorf("read %s: %w", path, err)
	}
	return parseInput(data)
}

// process applies the processing steps of in to spectrum.
func (in *Input) process(spectrum []float64) error {
	shape := in.Method.Shape()
	incs := make([]float64, len(shape))
	for i := range in.Method.SpectralDimensions {
		incs[i] = in.Method.SpectralDimensions[i].Increment()
	}
	for i, b := range in.Processing {
		if err := broaden.Apply(spectrum, shape, incs, b); err != nil {
			return fmt.Errorf("processing %d: %w", i, err)
		}
	}
	return nil
}
