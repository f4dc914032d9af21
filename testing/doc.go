// Package testing provides an in-memory audio engine for deterministic
// testing of the playback layer.
//
// # Overview
//
// SimulatedEngine implements interfaces.AudioEngine without producing any
// sound. It tracks every instance it hands out, records each call in a log,
// and validates handles, volumes and labeled parameters the way a real event
// system would. Tests drive the playback manager against it and then inspect
// the engine to verify what happened.
//
// # Usage
//
//	sim := testing.NewSimulatedEngine(nil)
//	sim.DeclareParameter("musicScene", "menuMusic", "gameplayMusic")
//
//	mgr, _ := playback.NewManager(sim, registry, playback.DefaultOptions())
//	_ = mgr.Start("Main Menu")
//
//	for _, inst := range sim.Instances() {
//	    if !inst.IsPlaying() {
//	        t.Error("expected instance to be playing")
//	    }
//	}
//
// # Fault Injection
//
// FailOn makes one operation fail with a given error until cleared:
//
//	sim.FailOn(testing.OpCreateInstance, errors.New("bank not loaded"))
//
// # Call Logs
//
// Each CallRecord contains the operation, the event handle, the instance
// number, a short detail string and the error, if any. Use Calls or CallsOf
// to retrieve the log and ClearCalls to reset it between steps.
//
// # Thread Safety
//
// All methods are safe for concurrent use. Instances and buses share their
// engine's mutex.
package testing
