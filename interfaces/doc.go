// Package interfaces defines the audio engine abstractions the playback layer
// is written against.
//
// The playback manager never talks to audio middleware directly. It drives an
// [AudioEngine], which hands out [EventInstance] and [Bus] handles. This lets
// the same manager code run against a simulated engine in tests, a silent
// engine on headless servers, or a binding to real middleware.
//
// # Core Interfaces
//
// [AudioEngine] creates instances, fires one-shots and resolves buses:
//
//	inst, err := engine.CreateInstance(handle)
//	if err != nil {
//	    return err
//	}
//	_ = inst.SetParameterByLabel("musicScene", "menuMusic")
//	_ = inst.Start()
//	...
//	_ = inst.Stop(interfaces.StopAllowFadeout)
//	_ = inst.Release()
//
// # Configuration
//
// [EngineConfig] selects the backend:
//
//	cfg := &interfaces.EngineConfig{Backend: interfaces.BackendSimulation}
//	if err := cfg.Validate(); err != nil {
//	    log.Fatalf("invalid engine config: %v", err)
//	}
//
// The factory package turns an EngineConfig into an AudioEngine.
//
// # Error Handling
//
// Engine methods return errors for invalid handles, rejected parameters and
// operations on released instances. Callers in this module log such errors
// and carry on; a missing sound must never stop the game.
package interfaces
