package playback

import (
	"fmt"
	"sync"

	"github.com/opd-ai/audioglue/events"
	"github.com/opd-ai/audioglue/interfaces"
	"github.com/sirupsen/logrus"
)

// Stage is the host lifecycle position.
type Stage uint8

const (
	StageNew Stage = iota
	StageInitialized
	StageRunning
	StageTornDown
)

// String returns the stage name.
func (s Stage) String() string {
	switch s {
	case StageNew:
		return "new"
	case StageInitialized:
		return "initialized"
	case StageRunning:
		return "running"
	case StageTornDown:
		return "torn_down"
	default:
		return fmt.Sprintf("Stage(%d)", uint8(s))
	}
}

// Host drives a Manager from the application's lifecycle callbacks.
//
// OnInit, OnSessionStart and OnTeardown each run once, in that order.
// OnTeardown may follow OnInit directly when no session was started.
// Out-of-order or repeated calls return ErrLifecycleOrder and do nothing.
// Audio failures inside a callback are logged, never returned: a missing
// sound must not abort the host.
type Host struct {
	engine   interfaces.AudioEngine
	registry *events.Registry
	opts     Options

	mu      sync.Mutex
	stage   Stage
	manager *Manager
}

// NewHost returns a host that will build its manager from engine, registry
// and opts on OnInit.
func NewHost(engine interfaces.AudioEngine, registry *events.Registry, opts Options) *Host {
	return &Host{
		engine:   engine,
		registry: registry,
		opts:     opts,
	}
}

// Stage returns the current lifecycle stage.
func (h *Host) Stage() Stage {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.stage
}

// Manager returns the manager built by OnInit, or nil.
func (h *Host) Manager() *Manager {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.manager
}

// OnInit builds the manager and installs it as the active one. A manager
// that is already active is replaced with a warning.
func (h *Host) OnInit() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.expect("OnInit", StageNew); err != nil {
		return err
	}

	m, err := NewManager(h.engine, h.registry, h.opts)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "OnInit",
			"error":    err.Error(),
		}).Error("Failed to create playback manager")
		return err
	}
	_ = Install(m) // duplicate managers are logged by Install

	h.manager = m
	h.stage = StageInitialized
	return nil
}

// OnSessionStart starts the ambient loop and then the music for scene.
func (h *Host) OnSessionStart(scene string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.expect("OnSessionStart", StageInitialized); err != nil {
		return err
	}

	if err := h.manager.Start(scene); err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "OnSessionStart",
			"scene":    scene,
			"error":    err.Error(),
		}).Warn("Session audio started with errors")
	}
	h.stage = StageRunning
	return nil
}

// OnSceneChanged re-applies the music context for scene. It may be called
// any number of times while the session runs.
func (h *Host) OnSceneChanged(scene string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.expect("OnSceneChanged", StageRunning); err != nil {
		return err
	}

	if err := h.manager.SetMusicContext(scene); err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "OnSceneChanged",
			"scene":    scene,
			"error":    err.Error(),
		}).Warn("Failed to apply music context")
	}
	return nil
}

// OnTeardown shuts the manager down and uninstalls it if it is still the
// active one.
func (h *Host) OnTeardown() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.expect("OnTeardown", StageInitialized, StageRunning); err != nil {
		return err
	}

	if err := h.manager.Shutdown(); err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "OnTeardown",
			"error":    err.Error(),
		}).Warn("Playback shutdown reported engine errors")
	}
	Uninstall(h.manager)
	h.stage = StageTornDown
	return nil
}

// expect fails unless the host is in one of allowed. Caller holds mu.
func (h *Host) expect(callback string, allowed ...Stage) error {
	for _, s := range allowed {
		if h.stage == s {
			return nil
		}
	}
	logrus.WithFields(logrus.Fields{
		"function": callback,
		"stage":    h.stage.String(),
	}).Warn("Lifecycle callback out of order")
	return fmt.Errorf("%w: %s in stage %s", ErrLifecycleOrder, callback, h.stage)
}
