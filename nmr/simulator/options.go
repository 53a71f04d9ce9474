package simulator

import (
	"log/slog"
	"runtime"

	"github.com/cwbudde/algo-nmr/nmr/orientation"
)

// Config holds the simulation settings shared by all spin systems.
type Config struct {
	IntegrationDensity             int
	IntegrationVolume              orientation.Volume
	NumberOfSidebands              int
	QuadSecondOrder                bool
	RemoveSecondOrderQuadIsotropic bool
	Interpolation                  bool
	Workers                        int
	Logger                         *slog.Logger
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the defaults: density 70 over an octant, 64
// sidebands, second-order quadrupolar terms on, one worker per CPU.
func DefaultConfig() Config {
	return Config{
		IntegrationDensity: 70,
		IntegrationVolume:  orientation.Octant,
		NumberOfSidebands:  64,
		QuadSecondOrder:    true,
		Interpolation:      true,
		Workers:            runtime.GOMAXPROCS(0),
	}
}

// WithIntegrationDensity sets the number of triangle edges per octant side.
func WithIntegrationDensity(n int) Option {
	return func(cfg *Config) {
		if n > 0 {
			cfg.IntegrationDensity = n
		}
	}
}

// WithIntegrationVolume sets the orientation volume.
func WithIntegrationVolume(v orientation.Volume) Option {
	return func(cfg *Config) {
		if v.Valid() {
			cfg.IntegrationVolume = v
		}
	}
}

// WithSidebands sets the number of spinning sidebands evaluated.
func WithSidebands(n int) Option {
	return func(cfg *Config) {
		if n > 0 {
			cfg.NumberOfSidebands = n
		}
	}
}

// WithQuadSecondOrder enables or disables second-order quadrupolar terms.
func WithQuadSecondOrder(enabled bool) Option {
	return func(cfg *Config) {
		cfg.QuadSecondOrder = enabled
	}
}

// WithRemoveSecondOrderQuadIsotropic drops the second-order quadrupolar
// isotropic shift.
func WithRemoveSecondOrderQuadIsotropic(enabled bool) Option {
	return func(cfg *Config) {
		cfg.RemoveSecondOrderQuadIsotropic = enabled
	}
}

// WithInterpolation enables or disables accumulation into the spectrum.
func WithInterpolation(enabled bool) Option {
	return func(cfg *Config) {
		cfg.Interpolation = enabled
	}
}

// WithWorkers sets the number of spin systems simulated concurrently.
func WithWorkers(n int) Option {
	return func(cfg *Config) {
		if n > 0 {
			cfg.Workers = n
		}
	}
}

// WithLogger sets the logger for run progress.
func WithLogger(l *slog.Logger) Option {
	return func(cfg *Config) {
		cfg.Logger = l
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
