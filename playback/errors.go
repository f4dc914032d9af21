package playback

import "errors"

// Sentinel errors for playback operations.
// These errors enable reliable error classification using errors.Is().

// Engine request errors.
var (
	// ErrPlayback indicates the engine rejected a play, create or start request.
	ErrPlayback = errors.New("playback request failed")

	// ErrParameter indicates a labeled parameter could not be set, either
	// because the engine rejected the name or label or because the instance
	// was released.
	ErrParameter = errors.New("parameter rejected")
)

// Instance state errors.
var (
	// ErrUseAfterRelease indicates an operation on a released instance.
	ErrUseAfterRelease = errors.New("instance used after release")

	// ErrNoMusicTrack indicates a music operation with no current track.
	ErrNoMusicTrack = errors.New("no music track playing")

	// ErrAmbientAlreadyStarted indicates a second ambient start on one manager.
	ErrAmbientAlreadyStarted = errors.New("ambient sound already started")
)

// Manager lifecycle errors.
var (
	// ErrDuplicateManager indicates a manager was installed while another was
	// active. The new manager still takes over.
	ErrDuplicateManager = errors.New("more than one playback manager")

	// ErrLifecycleOrder indicates a host callback arrived out of order or twice.
	ErrLifecycleOrder = errors.New("lifecycle callback out of order")

	// ErrNilEngine indicates a manager was constructed without an engine.
	ErrNilEngine = errors.New("audio engine cannot be nil")

	// ErrNilRegistry indicates a manager was constructed without a registry.
	ErrNilRegistry = errors.New("event registry cannot be nil")
)
