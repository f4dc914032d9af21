package factory

import (
	"errors"
	"fmt"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/opd-ai/audioglue/interfaces"
	"github.com/opd-ai/audioglue/silent"
	"github.com/opd-ai/audioglue/testing"
	"github.com/sirupsen/logrus"
)

// ErrUnknownBackend indicates the configuration names no known engine.
var ErrUnknownBackend = errors.New("unknown engine backend")

// EngineFactory creates audio engine implementations based on configuration.
// It is safe for concurrent use; all methods are protected by an internal mutex.
type EngineFactory struct {
	mu            sync.RWMutex
	defaultConfig *interfaces.EngineConfig
}

// NewEngineFactory creates a new factory with default configuration and
// AUDIOGLUE_* environment overrides applied.
func NewEngineFactory() *EngineFactory {
	defaultConfig := createDefaultConfig()
	applyEnvironmentOverrides(defaultConfig)
	logConfigurationInfo(defaultConfig)

	return &EngineFactory{
		defaultConfig: defaultConfig,
	}
}

// createDefaultConfig returns the built-in engine configuration.
//
// The simulated engine is the default because no middleware binding ships
// with this module; it validates everything a real engine would.
func createDefaultConfig() *interfaces.EngineConfig {
	return &interfaces.EngineConfig{
		Backend:          interfaces.BackendSimulation,
		StrictParameters: false,
	}
}

// applyEnvironmentOverrides updates config from AUDIOGLUE_ENGINE_BACKEND and
// AUDIOGLUE_ENGINE_STRICT_PARAMETERS. Unset variables keep the values
// already in config. Unparsable or invalid values are logged and
// the defaults kept.
func applyEnvironmentOverrides(config *interfaces.EngineConfig) {
	candidate := *config
	if err := env.Parse(&candidate); err != nil {
		logrus.WithFields(logrus.Fields{
			"function":    "applyEnvironmentOverrides",
			"error":       err.Error(),
			"using_value": config.Backend,
		}).Warn("Failed to parse engine environment variables, using defaults")
		return
	}
	if err := candidate.Validate(); err != nil {
		logrus.WithFields(logrus.Fields{
			"function":    "applyEnvironmentOverrides",
			"env_var":     "AUDIOGLUE_ENGINE_BACKEND",
			"value":       candidate.Backend,
			"error":       err.Error(),
			"using_value": config.Backend,
		}).Warn("AUDIOGLUE_ENGINE_BACKEND names an unknown backend, using default")
		return
	}
	*config = candidate
}

// WithEnvironment returns a copy of config with the environment overrides
// applied. Configurations that did not come from config.Load, such as ones
// built in code, get the same overrides a loaded file would.
func (f *EngineFactory) WithEnvironment(config *interfaces.EngineConfig) *interfaces.EngineConfig {
	if config == nil {
		return f.GetCurrentConfig()
	}
	cfg := *config
	applyEnvironmentOverrides(&cfg)
	return &cfg
}

// logConfigurationInfo logs the final configuration settings.
func logConfigurationInfo(config *interfaces.EngineConfig) {
	logrus.WithFields(logrus.Fields{
		"function":          "NewEngineFactory",
		"backend":           config.Backend,
		"strict_parameters": config.StrictParameters,
	}).Info("Created engine factory with configuration")
}

// CreateEngine creates an engine from the factory's default configuration.
func (f *EngineFactory) CreateEngine() (interfaces.AudioEngine, error) {
	f.mu.RLock()
	config := f.defaultConfig
	f.mu.RUnlock()
	return f.CreateEngineWithConfig(config)
}

// CreateEngineWithConfig creates an engine for config. A nil config uses the
// factory default.
func (f *EngineFactory) CreateEngineWithConfig(config *interfaces.EngineConfig) (interfaces.AudioEngine, error) {
	if config == nil {
		f.mu.RLock()
		config = f.defaultConfig
		f.mu.RUnlock()
	}

	logrus.WithFields(logrus.Fields{
		"function":          "CreateEngineWithConfig",
		"backend":           config.Backend,
		"strict_parameters": config.StrictParameters,
	}).Info("Creating audio engine")

	switch config.Backend {
	case interfaces.BackendSimulation:
		cfg := *config
		return testing.NewSimulatedEngine(&cfg), nil
	case interfaces.BackendSilent:
		return silent.New(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, config.Backend)
	}
}

// CreateSimulationForTesting returns a simulated engine directly so tests can
// use its inspection methods.
func (f *EngineFactory) CreateSimulationForTesting(strict bool) *testing.SimulatedEngine {
	logrus.WithFields(logrus.Fields{
		"function":          "CreateSimulationForTesting",
		"strict_parameters": strict,
	}).Info("Creating simulated engine for testing")

	return testing.NewSimulatedEngine(&interfaces.EngineConfig{
		Backend:          interfaces.BackendSimulation,
		StrictParameters: strict,
	})
}

// GetCurrentConfig returns a copy of the current default configuration.
func (f *EngineFactory) GetCurrentConfig() *interfaces.EngineConfig {
	f.mu.RLock()
	defer f.mu.RUnlock()

	cfg := *f.defaultConfig
	return &cfg
}

// UpdateConfig replaces the factory's default configuration.
func (f *EngineFactory) UpdateConfig(config *interfaces.EngineConfig) error {
	if config == nil {
		return fmt.Errorf("config cannot be nil")
	}
	if err := config.Validate(); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"function":    "UpdateConfig",
		"old_backend": f.defaultConfig.Backend,
		"new_backend": config.Backend,
	}).Info("Updating factory configuration")

	cfg := *config
	f.defaultConfig = &cfg
	return nil
}
