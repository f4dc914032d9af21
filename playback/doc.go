// Package playback mediates between game code and the audio engine.
//
// # Architecture
//
//   - Manager: creates, tracks and tears down playback instances, owns the
//     current music track and applies the music policy
//   - Instance: a tracked engine instance with an enforced state machine
//   - MusicPolicy: maps the active scene to the music parameter label
//   - Host: drives a Manager from OnInit, OnSessionStart and OnTeardown
//
// # Instance Lifecycle
//
// Instances move created → started → stopped → released. A stopped instance
// may start again; released is terminal and any further call fails with
// ErrUseAfterRelease without reaching the engine. Every instance the Manager
// creates is tracked until Shutdown, which stops each one immediately and
// releases it exactly once.
//
// # Usage
//
//	registry, err := events.Initialize(cfg)
//	if err != nil {
//	    return err
//	}
//	host := playback.NewHost(engine, registry, playback.DefaultOptions())
//	_ = host.OnInit()
//	_ = host.OnSessionStart("Main Menu")
//	...
//	_ = host.OnSceneChanged("Forest")
//	_ = host.OnTeardown()
//
// # Music Context
//
// The "musicScene" parameter on the music track is "menuMusic" in the
// "Main Menu" scene and "gameplayMusic" everywhere else, including scenes
// that do not exist yet.
//
// # Replacing Music
//
// PlayMusic never releases the previous track. With ReplaceFadeOut (the
// default) the previous track is faded out and stays tracked until Shutdown
// releases it. With ReplaceKeep it is left playing for the caller to stop.
//
// # Errors
//
// Engine failures are wrapped in ErrPlayback or ErrParameter. Host callbacks
// log them and carry on. Installing a second manager is a warning: the new
// one takes over and Install returns ErrDuplicateManager.
package playback
