package audioglue

import (
	"fmt"

	"github.com/opd-ai/audioglue/config"
	"github.com/opd-ai/audioglue/events"
	"github.com/opd-ai/audioglue/factory"
	"github.com/opd-ai/audioglue/interfaces"
	"github.com/opd-ai/audioglue/playback"
	simtest "github.com/opd-ai/audioglue/testing"
	"github.com/sirupsen/logrus"
)

// System wires a registry, an engine and a playback host together from one
// configuration. It is the entry point for applications that do not need to
// assemble the pieces themselves.
type System struct {
	config   config.Config
	registry *events.Registry
	engine   interfaces.AudioEngine
	host     *playback.Host
}

// New validates cfg, builds the event registry and the engine, and runs the
// host's OnInit. AUDIOGLUE_ENGINE_* variables override cfg.Engine. The registry and manager become the active ones.
func New(cfg config.Config) (*System, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	opts, err := cfg.ManagerOptions()
	if err != nil {
		return nil, err
	}

	registry, err := events.Initialize(cfg.RegistryConfig())
	if err != nil {
		return nil, err
	}

	engines := factory.NewEngineFactory()
	cfg.Engine = *engines.WithEnvironment(cfg.EngineConfig())
	engine, err := engines.CreateEngineWithConfig(cfg.EngineConfig())
	if err != nil {
		return nil, err
	}
	if sim, ok := engine.(*simtest.SimulatedEngine); ok {
		sim.DeclareParameter(opts.Music.Parameter, opts.Music.MenuLabel, opts.Music.GameplayLabel)
	}

	host := playback.NewHost(engine, registry, opts)
	if err := host.OnInit(); err != nil {
		return nil, err
	}
	_ = events.Install(registry) // a duplicate is logged by Install

	logrus.WithFields(logrus.Fields{
		"function": "New",
		"backend":  cfg.Engine.Backend,
		"events":   registry.Len(),
	}).Info("Audio system initialized")

	return &System{
		config:   cfg,
		registry: registry,
		engine:   engine,
		host:     host,
	}, nil
}

// NewFromFile loads the configuration at path, applies its logging settings
// and calls New.
func NewFromFile(path string) (*System, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyLogging(); err != nil {
		return nil, err
	}
	return New(cfg)
}

// Config returns the configuration the system was built from.
func (s *System) Config() config.Config { return s.config }

// Registry returns the event registry.
func (s *System) Registry() *events.Registry { return s.registry }

// Engine returns the audio engine.
func (s *System) Engine() interfaces.AudioEngine { return s.engine }

// Host returns the lifecycle host.
func (s *System) Host() *playback.Host { return s.host }

// Manager returns the playback manager.
func (s *System) Manager() *playback.Manager { return s.host.Manager() }

// StartSession starts the ambient loop and the music for scene.
func (s *System) StartSession(scene string) error {
	return s.host.OnSessionStart(scene)
}

// SceneChanged re-applies the music context for scene.
func (s *System) SceneChanged(scene string) error {
	return s.host.OnSceneChanged(scene)
}

// PlayOneShot fires the event bound to name at the origin. It fails with
// playback.ErrLifecycleOrder unless a session is running.
func (s *System) PlayOneShot(name string) error {
	if stage := s.host.Stage(); stage != playback.StageRunning {
		return fmt.Errorf("%w: PlayOneShot in stage %s", playback.ErrLifecycleOrder, stage)
	}
	return s.Manager().PlayOneShotNamed(name, interfaces.Vector3{})
}

// Kill tears the host down and uninstalls the registry if it is still the
// active one.
func (s *System) Kill() error {
	err := s.host.OnTeardown()
	if events.Active() == s.registry {
		events.Uninstall()
	}
	return err
}
