package playback

import (
	"errors"
	"fmt"
	"sync"

	"github.com/opd-ai/audioglue/events"
	"github.com/opd-ai/audioglue/interfaces"
	"github.com/opd-ai/audioglue/singleton"
	"github.com/sirupsen/logrus"
)

// Manager mediates every interaction with the audio engine: it creates and
// tracks playback instances, owns the current music track and tears
// everything down at shutdown.
//
// Every instance the Manager creates stays in its instance set until
// Shutdown, which stops and releases each one exactly once. One-shots are
// never tracked.
type Manager struct {
	engine   interfaces.AudioEngine
	registry *events.Registry
	opts     Options

	musicBus interfaces.Bus
	sfxBus   interfaces.Bus

	mu             sync.Mutex
	instances      []*Instance
	music          *Instance
	ambient        *Instance
	ambientStarted bool
}

// NewManager acquires the music and SFX buses from engine and applies the
// configured SFX bus volume.
func NewManager(engine interfaces.AudioEngine, registry *events.Registry, opts Options) (*Manager, error) {
	if engine == nil {
		return nil, ErrNilEngine
	}
	if registry == nil {
		return nil, ErrNilRegistry
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	musicBus, err := engine.GetBus(opts.MusicBus)
	if err != nil {
		return nil, fmt.Errorf("%w: music bus %q: %w", ErrPlayback, opts.MusicBus, err)
	}
	sfxBus, err := engine.GetBus(opts.SFXBus)
	if err != nil {
		return nil, fmt.Errorf("%w: sfx bus %q: %w", ErrPlayback, opts.SFXBus, err)
	}
	if err := sfxBus.SetVolume(opts.SFXVolume); err != nil {
		return nil, fmt.Errorf("%w: sfx bus volume: %w", ErrPlayback, err)
	}

	logrus.WithFields(logrus.Fields{
		"function":   "NewManager",
		"music_bus":  opts.MusicBus,
		"sfx_bus":    opts.SFXBus,
		"sfx_volume": opts.SFXVolume,
		"on_replace": opts.OnReplace.String(),
		"events":     registry.Len(),
	}).Info("Created playback manager")

	return &Manager{
		engine:   engine,
		registry: registry,
		opts:     opts,
		musicBus: musicBus,
		sfxBus:   sfxBus,
	}, nil
}

// Registry returns the registry the manager resolves names with.
func (m *Manager) Registry() *events.Registry { return m.registry }

// Options returns the manager's options.
func (m *Manager) Options() Options { return m.opts }

// PlayOneShot fires handle at pos without tracking an instance. Engine
// failures are logged and returned wrapped in ErrPlayback.
func (m *Manager) PlayOneShot(handle events.EventHandle, pos interfaces.Vector3) error {
	if err := m.engine.PlayOneShot(handle, pos); err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "PlayOneShot",
			"event":    handle.String(),
			"error":    err.Error(),
		}).Warn("One-shot rejected by audio engine")
		return fmt.Errorf("%w: one-shot %s: %w", ErrPlayback, handle, err)
	}
	return nil
}

// PlayOneShotNamed resolves name in the registry and fires it at pos.
func (m *Manager) PlayOneShotNamed(name string, pos interfaces.Vector3) error {
	handle, err := m.registry.Lookup(name)
	if err != nil {
		return err
	}
	return m.PlayOneShot(handle, pos)
}

// CreateInstance asks the engine for a new instance of handle and tracks it
// until Shutdown. The instance is returned in the created state.
func (m *Manager) CreateInstance(handle events.EventHandle) (*Instance, error) {
	ei, err := m.engine.CreateInstance(handle)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "CreateInstance",
			"event":    handle.String(),
			"error":    err.Error(),
		}).Warn("Audio engine could not create instance")
		return nil, fmt.Errorf("%w: create %s: %w", ErrPlayback, handle, err)
	}

	inst := newInstance(handle, ei)

	m.mu.Lock()
	m.instances = append(m.instances, inst)
	count := len(m.instances)
	m.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"function":  "CreateInstance",
		"event":     handle.String(),
		"instance":  inst.ID().String(),
		"instances": count,
	}).Debug("Tracking new playback instance")

	return inst, nil
}

// startAmbient creates, levels and starts the ambient loop. It runs at most
// once per manager.
func (m *Manager) startAmbient(handle events.EventHandle) (*Instance, error) {
	m.mu.Lock()
	if m.ambientStarted {
		m.mu.Unlock()
		return nil, ErrAmbientAlreadyStarted
	}
	m.ambientStarted = true
	m.mu.Unlock()

	inst, err := m.CreateInstance(handle)
	if err != nil {
		return nil, err
	}
	if err := inst.SetVolume(m.opts.AmbientVolume); err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "startAmbient",
			"event":    handle.String(),
			"error":    err.Error(),
		}).Warn("Failed to set ambient volume")
	}
	if err := inst.Start(); err != nil {
		return inst, err
	}

	m.mu.Lock()
	m.ambient = inst
	m.mu.Unlock()
	return inst, nil
}

// PlayMusic creates a music instance for handle, labels it for scene, sets
// the music volume and starts it. Once started, the new instance becomes the
// current music track and the previous one is handled according to
// Options.OnReplace; it is never released here. If the new instance fails to
// start, the previous track keeps playing and stays current, and the failed
// instance remains tracked until Shutdown.
//
// Failing to label or level the track is logged and does not prevent it from
// starting.
func (m *Manager) PlayMusic(handle events.EventHandle, scene string) (*Instance, error) {
	inst, err := m.CreateInstance(handle)
	if err != nil {
		return nil, err
	}

	param, label := m.opts.Music.Parameter, m.opts.Music.LabelFor(scene)
	if err := inst.SetLabeledParameter(param, label); err != nil {
		logrus.WithFields(logrus.Fields{
			"function":  "PlayMusic",
			"event":     handle.String(),
			"parameter": param,
			"label":     label,
			"error":     err.Error(),
		}).Warn("Failed to apply music context")
	}
	if err := inst.SetVolume(m.opts.MusicVolume); err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "PlayMusic",
			"event":    handle.String(),
			"error":    err.Error(),
		}).Warn("Failed to set music volume")
	}

	if err := inst.Start(); err != nil {
		return inst, err
	}

	m.mu.Lock()
	prev := m.music
	m.music = inst
	m.mu.Unlock()

	if prev != nil && m.opts.OnReplace == ReplaceFadeOut && prev.State() == StateStarted {
		if err := prev.Stop(interfaces.StopAllowFadeout); err != nil {
			logrus.WithFields(logrus.Fields{
				"function": "PlayMusic",
				"previous": prev.ID().String(),
				"error":    err.Error(),
			}).Warn("Failed to fade out previous music track")
		}
	}

	logrus.WithFields(logrus.Fields{
		"function": "PlayMusic",
		"event":    handle.String(),
		"scene":    scene,
		"label":    label,
	}).Info("Music started")
	return inst, nil
}

// StopMusic stops inst with a fade-out. The instance is neither released nor
// untracked, and a nil instance fails with ErrNoMusicTrack.
func (m *Manager) StopMusic(inst *Instance) error {
	if inst == nil {
		return ErrNoMusicTrack
	}
	return inst.Stop(interfaces.StopAllowFadeout)
}

// SetLabeledParameter sets parameter name to label value on inst.
func (m *Manager) SetLabeledParameter(name, value string, inst *Instance) error {
	if inst == nil {
		return fmt.Errorf("%w: no instance for %s=%s", ErrParameter, name, value)
	}
	return inst.SetLabeledParameter(name, value)
}

// SetMusicContext applies the music policy for scene to the current music
// track.
func (m *Manager) SetMusicContext(scene string) error {
	m.mu.Lock()
	music := m.music
	m.mu.Unlock()

	if music == nil {
		return ErrNoMusicTrack
	}

	label := m.opts.Music.LabelFor(scene)
	logrus.WithFields(logrus.Fields{
		"function": "SetMusicContext",
		"scene":    scene,
		"label":    label,
	}).Debug("Applying music context")
	return m.SetLabeledParameter(m.opts.Music.Parameter, label, music)
}

// Start begins a session in scene: the ambient loop starts first, then the
// music track. Both are attempted; failures are joined.
func (m *Manager) Start(scene string) error {
	var errs []error

	if handle, err := m.registry.Lookup(events.AmbientSound); err != nil {
		errs = append(errs, err)
	} else if _, err := m.startAmbient(handle); err != nil {
		errs = append(errs, err)
	}

	if handle, err := m.registry.Lookup(events.AllMusic); err != nil {
		errs = append(errs, err)
	} else if _, err := m.PlayMusic(handle, scene); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// Shutdown stops every tracked instance immediately and releases it, then
// clears the instance set and the music track. Every instance is visited
// even when the engine fails; the failures are joined. Shutting down an
// empty manager does nothing.
func (m *Manager) Shutdown() error {
	m.mu.Lock()
	tracked := m.instances
	m.instances = nil
	m.music = nil
	m.ambient = nil
	m.mu.Unlock()

	if len(tracked) == 0 {
		return nil
	}

	var errs []error
	released := 0
	for _, inst := range tracked {
		did, err := inst.teardown()
		if did {
			released++
		}
		if err != nil {
			errs = append(errs, err)
		}
	}

	logrus.WithFields(logrus.Fields{
		"function": "Shutdown",
		"tracked":  len(tracked),
		"released": released,
		"errors":   len(errs),
	}).Info("Playback manager shut down")

	return errors.Join(errs...)
}

// SetMusicVolume sets the music bus volume.
func (m *Manager) SetMusicVolume(volume float32) error {
	return setBusVolume(m.musicBus, volume)
}

// SetSFXVolume sets the SFX bus volume.
func (m *Manager) SetSFXVolume(volume float32) error {
	return setBusVolume(m.sfxBus, volume)
}

// SetPaused pauses or resumes both buses, as a game pause menu does. Both
// buses are attempted; failures are joined.
func (m *Manager) SetPaused(paused bool) error {
	var errs []error
	for _, bus := range []interfaces.Bus{m.musicBus, m.sfxBus} {
		if err := bus.SetPaused(paused); err != nil {
			errs = append(errs, fmt.Errorf("%w: pause %s: %w", ErrPlayback, bus.Path(), err))
		}
	}
	logrus.WithFields(logrus.Fields{
		"function": "SetPaused",
		"paused":   paused,
		"errors":   len(errs),
	}).Debug("Bus pause state changed")
	return errors.Join(errs...)
}

func setBusVolume(bus interfaces.Bus, volume float32) error {
	if err := checkVolume(bus.Path(), volume); err != nil {
		return err
	}
	if err := bus.SetVolume(volume); err != nil {
		return fmt.Errorf("%w: %s volume: %w", ErrPlayback, bus.Path(), err)
	}
	return nil
}

// InstanceCount returns the size of the instance set.
func (m *Manager) InstanceCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.instances)
}

// Instances returns a copy of the instance set in creation order.
func (m *Manager) Instances() []*Instance {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Instance, len(m.instances))
	copy(out, m.instances)
	return out
}

// MusicTrack returns the current music track, or nil.
func (m *Manager) MusicTrack() *Instance {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.music
}

// Ambient returns the ambient loop, or nil before Start.
func (m *Manager) Ambient() *Instance {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ambient
}

var active singleton.Slot[*Manager]

// Install makes m the process-wide manager.
//
// Installing while another manager is active logs a warning and returns
// ErrDuplicateManager; m still takes over.
func Install(m *Manager) error {
	if err := active.Install(m); err != nil {
		logrus.WithFields(logrus.Fields{
			"function":     "Install",
			"replacements": active.Replacements(),
		}).Warn("Found more than one playback manager, replacing the active one")
		return ErrDuplicateManager
	}
	return nil
}

// Active returns the process-wide manager, or nil if none is installed.
func Active() *Manager {
	m, _ := active.Get()
	return m
}

// Uninstall clears the process-wide manager if it is still m. It reports
// whether m was active.
func Uninstall(m *Manager) bool {
	return active.ClearIf(func(cur *Manager) bool { return cur == m })
}
