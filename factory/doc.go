// Package factory creates audio engine implementations from configuration.
//
// The factory lets the playback layer switch between the simulated engine
// (for tests and the CLI) and the silent engine (for headless builds)
// without changing consuming code.
//
// # Configuration
//
// The factory starts from built-in defaults and applies environment
// overrides parsed with github.com/caarlos0/env:
//   - AUDIOGLUE_ENGINE_BACKEND: "simulation" or "silent"
//   - AUDIOGLUE_ENGINE_STRICT_PARAMETERS: "true" to reject undeclared parameters
//
// These are the same names config.Load honours for engine.backend and
// engine.strict_parameters. Invalid values are logged and the defaults kept.
//
// # Usage
//
//	factory := NewEngineFactory()
//	engine, err := factory.CreateEngine()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// A configuration loaded from file takes precedence over the factory default.
// WithEnvironment layers the same overrides on top of it:
//
//	engine, err := factory.CreateEngineWithConfig(factory.WithEnvironment(cfg.EngineConfig()))
//
// # Testing Support
//
// CreateSimulationForTesting returns the concrete *testing.SimulatedEngine so
// tests can declare parameters, inject failures and inspect the call log:
//
//	func TestMyFeature(t *testing.T) {
//	    sim := NewEngineFactory().CreateSimulationForTesting(true)
//	    sim.DeclareParameter("musicScene", "menuMusic", "gameplayMusic")
//	    // hand sim to playback.NewManager...
//	}
package factory
