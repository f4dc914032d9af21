package playback

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/opd-ai/audioglue/events"
	"github.com/opd-ai/audioglue/interfaces"
)

// State is the lifecycle state of a tracked playback instance.
type State uint8

const (
	// StateCreated means the engine instantiated the event but it is silent.
	StateCreated State = iota
	// StateStarted means playback was requested.
	StateStarted
	// StateStopped means playback was halted; the instance may start again.
	StateStopped
	// StateReleased is terminal; the engine handle is gone.
	StateReleased
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateStarted:
		return "started"
	case StateStopped:
		return "stopped"
	case StateReleased:
		return "released"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// Instance is a playback instance owned by a Manager.
//
// It wraps the engine's instance and enforces the state machine
// created → started → stopped → released. Start is allowed again from
// stopped. Once released, every method fails with ErrUseAfterRelease and
// the engine is not called.
type Instance struct {
	id     uuid.UUID
	handle events.EventHandle
	engine interfaces.EventInstance

	mu    sync.Mutex
	state State
}

func newInstance(handle events.EventHandle, ei interfaces.EventInstance) *Instance {
	return &Instance{
		id:     uuid.New(),
		handle: handle,
		engine: ei,
		state:  StateCreated,
	}
}

// ID returns the instance's unique identifier.
func (i *Instance) ID() uuid.UUID { return i.id }

// Handle returns the event the instance plays.
func (i *Instance) Handle() events.EventHandle { return i.handle }

// State returns the current state.
func (i *Instance) State() State {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.state
}

// Start begins playback from created or stopped. Starting a playing
// instance is forwarded to the engine, which restarts it.
func (i *Instance) Start() error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if err := i.checkLive("start"); err != nil {
		return err
	}
	if err := i.engine.Start(); err != nil {
		return fmt.Errorf("%w: start %s: %w", ErrPlayback, i.handle, err)
	}
	i.state = StateStarted
	return nil
}

// Stop halts playback with mode. The state only changes from started;
// stopping an idle instance is still forwarded to the engine.
func (i *Instance) Stop(mode interfaces.StopMode) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if err := i.checkLive("stop"); err != nil {
		return err
	}
	if err := i.engine.Stop(mode); err != nil {
		return fmt.Errorf("%w: stop %s (%s): %w", ErrPlayback, i.handle, mode, err)
	}
	if i.state == StateStarted {
		i.state = StateStopped
	}
	return nil
}

// Release frees the engine instance. The instance is released even if the
// engine reports an error, so it is never released twice.
func (i *Instance) Release() error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if err := i.checkLive("release"); err != nil {
		return err
	}
	err := i.engine.Release()
	i.state = StateReleased
	if err != nil {
		return fmt.Errorf("%w: release %s: %w", ErrPlayback, i.handle, err)
	}
	return nil
}

// SetLabeledParameter sets a labeled parameter on the instance.
func (i *Instance) SetLabeledParameter(name, label string) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if err := i.checkLive("set parameter"); err != nil {
		return fmt.Errorf("%w: %w", ErrParameter, err)
	}
	if err := i.engine.SetParameterByLabel(name, label); err != nil {
		return fmt.Errorf("%w: %s=%s on %s: %w", ErrParameter, name, label, i.handle, err)
	}
	return nil
}

// SetVolume sets the instance volume.
func (i *Instance) SetVolume(volume float32) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if err := i.checkLive("set volume"); err != nil {
		return err
	}
	if err := i.engine.SetVolume(volume); err != nil {
		return fmt.Errorf("%w: volume %.3f on %s: %w", ErrPlayback, volume, i.handle, err)
	}
	return nil
}

// teardown stops immediately and releases. It returns false if the instance
// was already released. Stop failures do not prevent the release.
func (i *Instance) teardown() (bool, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.state == StateReleased {
		return false, nil
	}

	var stopErr error
	if err := i.engine.Stop(interfaces.StopImmediate); err != nil {
		stopErr = fmt.Errorf("stop %s: %w", i.handle, err)
	} else if i.state == StateStarted {
		i.state = StateStopped
	}

	relErr := i.engine.Release()
	i.state = StateReleased
	if relErr != nil {
		relErr = fmt.Errorf("release %s: %w", i.handle, relErr)
	}

	if stopErr != nil || relErr != nil {
		return true, fmt.Errorf("%w: %w", ErrPlayback, errors.Join(stopErr, relErr))
	}
	return true, nil
}

// checkLive fails once the instance is released. Caller holds mu.
func (i *Instance) checkLive(op string) error {
	if i.state == StateReleased {
		return fmt.Errorf("%w: %s %s", ErrUseAfterRelease, op, i.handle)
	}
	return nil
}
