package interfaces

import (
	"errors"
	"fmt"
)

// Engine backends.
const (
	BackendSimulation = "simulation"
	BackendSilent     = "silent"
)

// ErrInvalidBackend indicates an unknown engine backend name.
var ErrInvalidBackend = errors.New("invalid engine backend")

// EngineConfig selects and tunes the engine implementation. The env names
// match the config package's AUDIOGLUE_ prefix with "." mapped to "_".
type EngineConfig struct {
	// Backend names the implementation: BackendSimulation or BackendSilent.
	Backend string `env:"AUDIOGLUE_ENGINE_BACKEND" mapstructure:"backend" yaml:"backend"`

	// StrictParameters makes the simulated engine reject labeled parameters
	// that were not declared for it.
	StrictParameters bool `env:"AUDIOGLUE_ENGINE_STRICT_PARAMETERS" mapstructure:"strict_parameters" yaml:"strict_parameters"`
}

// Validate checks the configuration for errors.
func (c *EngineConfig) Validate() error {
	switch c.Backend {
	case BackendSimulation, BackendSilent:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidBackend, c.Backend)
	}
}
