package interfaces

import (
	"fmt"

	"github.com/opd-ai/audioglue/events"
)

// StopMode selects how an instance stops.
type StopMode uint8

const (
	// StopAllowFadeout lets the event play its fade-out before going silent.
	StopAllowFadeout StopMode = iota
	// StopImmediate cuts the event off at once.
	StopImmediate
)

// String returns the mode name.
func (m StopMode) String() string {
	switch m {
	case StopAllowFadeout:
		return "allow_fadeout"
	case StopImmediate:
		return "immediate"
	default:
		return fmt.Sprintf("StopMode(%d)", uint8(m))
	}
}

// Vector3 is a world-space position for one-shot playback.
type Vector3 struct {
	X, Y, Z float32
}

// AudioEngine is the external audio middleware the playback layer drives.
//
// Implementations must treat every call as a synchronous handle operation;
// actual mixing may happen on engine-owned threads.
type AudioEngine interface {
	// GetBus returns the mixing bus at path (e.g. "bus:/music").
	GetBus(path string) (Bus, error)

	// CreateInstance instantiates a timeline or loop event.
	CreateInstance(handle events.EventHandle) (EventInstance, error)

	// PlayOneShot fires an event at pos without retaining an instance.
	PlayOneShot(handle events.EventHandle, pos Vector3) error
}

// EventInstance is a live, stateful playback handle owned by the engine.
type EventInstance interface {
	// Start begins or restarts playback.
	Start() error

	// Stop halts playback using mode.
	Stop(mode StopMode) error

	// Release frees the instance once it has stopped. The handle is invalid
	// afterwards.
	Release() error

	// SetParameterByLabel sets a labeled (discrete) parameter.
	SetParameterByLabel(name, label string) error

	// SetVolume sets the instance volume, 0 to 1.
	SetVolume(volume float32) error
}

// Bus is a named mixing group.
type Bus interface {
	// Path returns the bus path.
	Path() string

	// SetVolume sets the aggregate volume of everything routed to the bus.
	SetVolume(volume float32) error

	// Volume returns the current bus volume.
	Volume() (float32, error)

	// SetPaused pauses or resumes every event routed to the bus.
	SetPaused(paused bool) error
}
