package simulator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	vecmath "github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-nmr/nmr/method"
	"github.com/cwbudde/algo-nmr/nmr/simulation"
	"github.com/cwbudde/algo-nmr/nmr/spin"
	"github.com/cwbudde/algo-nmr/nmr/tensor"
)

// ErrNoSpinSystems is returned when Run is called without spin systems.
var ErrNoSpinSystems = errors.New("simulator: no spin systems")

// Result is the summed spectrum of a run.
type Result struct {
	// Shape holds the count of every dimension; the spectrum is row-major
	// with dimension 0 as the outer index.
	Shape    []int
	Spectrum []float64
	// Pathways is the number of transition pathways simulated per system.
	Pathways []int
}

// Simulator simulates methods over spin systems. It is safe for concurrent
// use.
type Simulator struct {
	cfg  Config
	pool *spectrumPool
}

// New creates a simulator.
func New(opts ...Option) *Simulator {
	return &Simulator{cfg: ApplyOptions(opts...), pool: newSpectrumPool()}
}

// Config returns the effective configuration.
func (s *Simulator) Config() Config { return s.cfg }

func (s *Simulator) logger() *slog.Logger {
	if s.cfg.Logger != nil {
		return s.cfg.Logger
	}
	return simulation.Logger()
}

// Run simulates m for every system and returns the abundance-weighted sum.
// The context is checked before each spin system.
func (s *Simulator) Run(ctx context.Context, m *method.Method, systems []spin.SpinSystem) (*Result, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if len(systems) == 0 {
		return nil, ErrNoSpinSystems
	}
	for i := range systems {
		if err := systems[i].Validate(); err != nil {
			return nil, fmt.Errorf("simulator: spin system %d: %w", i, err)
		}
	}

	type job struct {
		idx int
	}
	type result struct {
		idx      int
		partial  *[]float64
		pathways int
		err      error
	}

	size := m.Size()
	jobs := make(chan job)
	results := make(chan result, len(systems))

	workerCount := min(s.cfg.Workers, len(systems))
	var wg sync.WaitGroup
	wg.Add(workerCount)
	for range workerCount {
		go func() {
			defer wg.Done()
			for j := range jobs {
				if err := ctx.Err(); err != nil {
					results <- result{idx: j.idx, err: err}
					continue
				}
				partial := s.pool.get(size)
				n, err := s.simulateSystem(*partial, m, &systems[j.idx])
				if err != nil {
					s.pool.put(partial)
					results <- result{idx: j.idx, err: fmt.Errorf("simulator: spin system %d: %w", j.idx, err)}
					continue
				}
				results <- result{idx: j.idx, partial: partial, pathways: n}
			}
		}()
	}

	for i := range systems {
		jobs <- job{idx: i}
	}
	close(jobs)

	wg.Wait()
	close(results)

	partials := make([]*[]float64, len(systems))
	out := &Result{
		Shape:    m.Shape(),
		Spectrum: make([]float64, size),
		Pathways: make([]int, len(systems)),
	}
	var firstErr error
	for res := range results {
		if res.err != nil {
			if firstErr == nil {
				firstErr = res.err
			}
			continue
		}
		partials[res.idx] = res.partial
		out.Pathways[res.idx] = res.pathways
	}
	defer func() {
		for _, p := range partials {
			s.pool.put(p)
		}
	}()
	if firstErr != nil {
		return nil, firstErr
	}

	for i, p := range partials {
		vecmath.ScaleBlockInPlace(*p, systems[i].Weight())
		vecmath.AddBlockInPlace(out.Spectrum, *p)
	}

	s.logger().Debug("run complete",
		slog.String("method", m.Name),
		slog.Int("systems", len(systems)),
		slog.Int("workers", workerCount))
	return out, nil
}

// simulateSystem adds the spectrum of every pathway of sys to spec and
// returns the pathway count.
func (s *Simulator) simulateSystem(spec []float64, m *method.Method, sys *spin.SpinSystem) (int, error) {
	pathways := m.TransitionPathways(sys)
	if len(pathways) == 0 {
		s.logger().Warn("no transition pathways", slog.String("system", sys.Name), slog.String("channel", m.Channel))
		return 0, nil
	}

	iso, err := tensor.NewIsotopomer(sys)
	if err != nil {
		return 0, err
	}
	params := s.params(m, iso)
	for _, p := range pathways {
		params.Transitions = p.Flatten()
		if _, err := simulation.Simulate(spec, params); err != nil {
			return 0, err
		}
	}
	return len(pathways), nil
}

// params maps the method onto the core parameters. Transitions are filled
// in per pathway.
func (s *Simulator) params(m *method.Method, iso *tensor.Isotopomer) simulation.Params {
	dims := make([]simulation.DimensionParams, len(m.SpectralDimensions))
	for i := range m.SpectralDimensions {
		d := &m.SpectralDimensions[i]
		resolved := m.Events(i)
		events := make([]simulation.EventParams, len(resolved))
		for j, ev := range resolved {
			events[j] = simulation.EventParams{
				Fraction:            ev.Fraction,
				MagneticFluxDensity: ev.MagneticFluxDensity,
			}
			if ev.RotorAngle != m.RotorAngle {
				events[j].RotorAngle = &resolved[j].RotorAngle
			}
		}
		dims[i] = simulation.DimensionParams{
			Count:             d.Count,
			CoordinatesOffset: d.CoordinatesOffset(),
			Increment:         d.Increment(),
			Events:            events,
		}
	}

	return simulation.Params{
		Dimensions:                     dims,
		Isotopomer:                     iso,
		QuadSecondOrder:                s.cfg.QuadSecondOrder,
		RemoveSecondOrderQuadIsotropic: s.cfg.RemoveSecondOrderQuadIsotropic,
		NumberOfSidebands:              s.cfg.NumberOfSidebands,
		RotorFrequency:                 m.RotorFrequency,
		RotorAngle:                     m.RotorAngle,
		IntegrationDensity:             s.cfg.IntegrationDensity,
		IntegrationVolume:              s.cfg.IntegrationVolume,
		Interpolation:                  s.cfg.Interpolation,
		AffineMatrix:                   m.AffineMatrix,
	}
}
