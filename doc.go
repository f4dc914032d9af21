// Package audioglue connects game code to an audio engine through named
// sound events.
//
// The module is split into small packages that can be used on their own:
//
//   - events: the registry of symbolic event names and their engine handles
//   - playback: the manager that creates, tracks and releases instances, and
//     the host that drives it from application lifecycle callbacks
//   - interfaces: the engine abstraction the playback layer is written against
//   - testing, silent: in-memory and no-op engine implementations
//   - factory: engine selection from configuration and environment
//   - config: the YAML configuration file
//
// This package wires them together.
//
// # Getting Started
//
//	sys, err := audioglue.NewFromFile("audioglue.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer sys.Kill()
//
//	_ = sys.StartSession("Main Menu")
//	_ = sys.PlayOneShot("uiButtonClick")
//	_ = sys.SceneChanged("Forest")
//
// # Failure Model
//
// A missing or rejected sound never aborts the caller. Lifecycle methods log
// engine errors and only return errors for misuse, such as starting a
// session twice.
package audioglue
