package simulator_test

import (
	"context"
	"fmt"

	"github.com/cwbudde/algo-nmr/nmr/method"
	"github.com/cwbudde/algo-nmr/nmr/simulator"
	"github.com/cwbudde/algo-nmr/nmr/spin"
)

func ExampleSimulator_Run() {
	m := method.BlochDecay("13C", 9.4, 0, method.SpectralDimension{
		Count:         256,
		SpectralWidth: 25600,
	})
	systems := []spin.SpinSystem{
		{Sites: []spin.Site{{Isotope: "13C", IsotropicChemicalShift: 10}}},
		{Sites: []spin.Site{{Isotope: "13C", IsotropicChemicalShift: -25}}, Abundance: 50},
	}

	sim := simulator.New(simulator.WithIntegrationDensity(20), simulator.WithWorkers(2))
	res, err := sim.Run(context.Background(), m, systems)
	if err != nil {
		panic(err)
	}

	var peaks []int
	for i, v := range res.Spectrum {
		if v > 0 {
			peaks = append(peaks, i)
		}
	}
	fmt.Println(res.Shape, peaks)

	// Output:
	// [256] [103 138]
}
