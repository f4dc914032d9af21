package testing

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/opd-ai/audioglue/events"
	"github.com/opd-ai/audioglue/interfaces"
	"github.com/opd-ai/audioglue/limits"
	"github.com/sirupsen/logrus"
)

// Engine operations, as recorded in the call log and accepted by FailOn.
const (
	OpGetBus         = "GetBus"
	OpCreateInstance = "CreateInstance"
	OpPlayOneShot    = "PlayOneShot"
	OpStart          = "Start"
	OpStop           = "Stop"
	OpRelease        = "Release"
	OpSetParameter   = "SetParameterByLabel"
	OpSetVolume      = "SetVolume"
	OpSetBusVolume   = "Bus.SetVolume"
	OpSetBusPaused   = "Bus.SetPaused"
)

// Errors returned by the simulated engine.
var (
	ErrInvalidHandle    = errors.New("invalid event handle")
	ErrInstanceReleased = errors.New("instance already released")
	ErrUnknownParameter = errors.New("unknown parameter")
	ErrUnknownLabel     = errors.New("unknown parameter label")
	ErrInvalidVolume    = errors.New("volume out of range")
	ErrInvalidBusPath   = errors.New("invalid bus path")
)

// CallRecord represents one engine call for test verification.
type CallRecord struct {
	Op         string
	Handle     events.EventHandle
	InstanceID int
	Detail     string
	Timestamp  int64
	Err        error
}

// OneShotRecord represents a fired one-shot.
type OneShotRecord struct {
	Handle   events.EventHandle
	Position interfaces.Vector3
}

// SimulatedEngine implements interfaces.AudioEngine entirely in memory.
//
// It validates handles, tracks instance state, checks declared parameter
// labels and keeps a call log. FailOn injects errors per operation.
type SimulatedEngine struct {
	mu        sync.Mutex
	config    *interfaces.EngineConfig
	buses     map[string]*SimulatedBus
	instances []*SimulatedInstance
	oneShots  []OneShotRecord
	calls     []CallRecord
	failures  map[string]error
	labels    map[string]map[string]bool
}

// NewSimulatedEngine creates a simulated engine. A nil config selects the
// simulation backend with non-strict parameters.
func NewSimulatedEngine(config *interfaces.EngineConfig) *SimulatedEngine {
	if config == nil {
		config = &interfaces.EngineConfig{Backend: interfaces.BackendSimulation}
	}

	logrus.WithFields(logrus.Fields{
		"function":          "NewSimulatedEngine",
		"strict_parameters": config.StrictParameters,
	}).Debug("Creating simulated audio engine")

	return &SimulatedEngine{
		config:   config,
		buses:    make(map[string]*SimulatedBus),
		failures: make(map[string]error),
		labels:   make(map[string]map[string]bool),
	}
}

// DeclareParameter registers the labels a parameter accepts. Once any label
// is declared for name, other labels are rejected. In strict mode undeclared
// parameter names are rejected too.
func (s *SimulatedEngine) DeclareParameter(name string, labels ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	set, ok := s.labels[name]
	if !ok {
		set = make(map[string]bool)
		s.labels[name] = set
	}
	for _, l := range labels {
		set[l] = true
	}
}

// FailOn makes every later call of op return err. A nil err clears it.
func (s *SimulatedEngine) FailOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.failures, op)
		return
	}
	s.failures[op] = err
}

// ClearFailures removes all injected failures.
func (s *SimulatedEngine) ClearFailures() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = make(map[string]error)
}

// GetBus implements interfaces.AudioEngine.GetBus.
func (s *SimulatedEngine) GetBus(path string) (interfaces.Bus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.injected(OpGetBus); err != nil {
		s.record(CallRecord{Op: OpGetBus, Detail: path, Err: err})
		return nil, err
	}
	if !strings.HasPrefix(path, "bus:/") {
		err := fmt.Errorf("%w: %q", ErrInvalidBusPath, path)
		s.record(CallRecord{Op: OpGetBus, Detail: path, Err: err})
		return nil, err
	}

	bus, ok := s.buses[path]
	if !ok {
		bus = &SimulatedBus{engine: s, path: path, volume: 1}
		s.buses[path] = bus
	}
	s.record(CallRecord{Op: OpGetBus, Detail: path})
	return bus, nil
}

// CreateInstance implements interfaces.AudioEngine.CreateInstance.
func (s *SimulatedEngine) CreateInstance(handle events.EventHandle) (interfaces.EventInstance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkHandle(OpCreateInstance, handle); err != nil {
		return nil, err
	}

	inst := &SimulatedInstance{
		engine: s,
		id:     len(s.instances) + 1,
		handle: handle,
		volume: 1,
		params: make(map[string]string),
	}
	s.instances = append(s.instances, inst)
	s.record(CallRecord{Op: OpCreateInstance, Handle: handle, InstanceID: inst.id})

	logrus.WithFields(logrus.Fields{
		"function":    "SimulatedEngine.CreateInstance",
		"event":       handle.String(),
		"instance_id": inst.id,
	}).Debug("Simulated instance created")

	return inst, nil
}

// PlayOneShot implements interfaces.AudioEngine.PlayOneShot.
func (s *SimulatedEngine) PlayOneShot(handle events.EventHandle, pos interfaces.Vector3) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkHandle(OpPlayOneShot, handle); err != nil {
		return err
	}
	s.oneShots = append(s.oneShots, OneShotRecord{Handle: handle, Position: pos})
	s.record(CallRecord{Op: OpPlayOneShot, Handle: handle, Detail: fmt.Sprintf("%v", pos)})
	return nil
}

// Calls returns a copy of the call log.
func (s *SimulatedEngine) Calls() []CallRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]CallRecord, len(s.calls))
	copy(out, s.calls)
	return out
}

// CallsOf returns the logged calls for op.
func (s *SimulatedEngine) CallsOf(op string) []CallRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []CallRecord
	for _, c := range s.calls {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

// ClearCalls empties the call log.
func (s *SimulatedEngine) ClearCalls() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = nil
}

// OneShots returns every one-shot fired so far.
func (s *SimulatedEngine) OneShots() []OneShotRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]OneShotRecord, len(s.oneShots))
	copy(out, s.oneShots)
	return out
}

// Instances returns every instance the engine created, in creation order.
func (s *SimulatedEngine) Instances() []*SimulatedInstance {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*SimulatedInstance, len(s.instances))
	copy(out, s.instances)
	return out
}

// LiveInstances returns how many created instances are not yet released.
func (s *SimulatedEngine) LiveInstances() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, inst := range s.instances {
		if !inst.released {
			n++
		}
	}
	return n
}

// Bus returns the simulated bus at path if it was ever requested.
func (s *SimulatedEngine) Bus(path string) (*SimulatedBus, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.buses[path]
	return b, ok
}

// checkHandle validates handle for op and records failures. Caller holds mu.
func (s *SimulatedEngine) checkHandle(op string, handle events.EventHandle) error {
	if err := s.injected(op); err != nil {
		s.record(CallRecord{Op: op, Handle: handle, Err: err})
		return err
	}
	if handle.IsZero() {
		err := fmt.Errorf("%w: zero handle", ErrInvalidHandle)
		s.record(CallRecord{Op: op, Handle: handle, Err: err})
		return err
	}
	return nil
}

// checkLabel validates a labeled parameter. Caller holds mu.
func (s *SimulatedEngine) checkLabel(name, label string) error {
	set, declared := s.labels[name]
	if !declared {
		if s.config.StrictParameters {
			return fmt.Errorf("%w: %q", ErrUnknownParameter, name)
		}
		return nil
	}
	if len(set) > 0 && !set[label] {
		return fmt.Errorf("%w: %q for parameter %q", ErrUnknownLabel, label, name)
	}
	return nil
}

// injected returns the failure registered for op. Caller holds mu.
func (s *SimulatedEngine) injected(op string) error {
	return s.failures[op]
}

// record appends to the call log. Caller holds mu.
func (s *SimulatedEngine) record(rec CallRecord) {
	rec.Timestamp = time.Now().UnixNano()
	s.calls = append(s.calls, rec)
}

// SimulatedInstance implements interfaces.EventInstance for SimulatedEngine.
type SimulatedInstance struct {
	engine     *SimulatedEngine
	id         int
	handle     events.EventHandle
	playing    bool
	released   bool
	startCount int
	stops      []interfaces.StopMode
	params     map[string]string
	volume     float32
}

// Start implements interfaces.EventInstance.Start.
func (i *SimulatedInstance) Start() error {
	return i.do(OpStart, "", func() error {
		i.playing = true
		i.startCount++
		return nil
	})
}

// Stop implements interfaces.EventInstance.Stop.
func (i *SimulatedInstance) Stop(mode interfaces.StopMode) error {
	return i.do(OpStop, mode.String(), func() error {
		i.playing = false
		i.stops = append(i.stops, mode)
		return nil
	})
}

// Release implements interfaces.EventInstance.Release.
func (i *SimulatedInstance) Release() error {
	return i.do(OpRelease, "", func() error {
		i.released = true
		i.playing = false
		return nil
	})
}

// SetParameterByLabel implements interfaces.EventInstance.SetParameterByLabel.
func (i *SimulatedInstance) SetParameterByLabel(name, label string) error {
	return i.do(OpSetParameter, name+"="+label, func() error {
		if err := i.engine.checkLabel(name, label); err != nil {
			return err
		}
		i.params[name] = label
		return nil
	})
}

// SetVolume implements interfaces.EventInstance.SetVolume.
func (i *SimulatedInstance) SetVolume(volume float32) error {
	return i.do(OpSetVolume, fmt.Sprintf("%.3f", volume), func() error {
		if err := limits.ValidateVolume(volume); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidVolume, err)
		}
		i.volume = volume
		return nil
	})
}

// do runs fn under the engine lock after the shared release and failure
// checks, and logs the call.
func (i *SimulatedInstance) do(op, detail string, fn func() error) error {
	e := i.engine
	e.mu.Lock()
	defer e.mu.Unlock()

	err := e.injected(op)
	if err == nil && i.released {
		err = fmt.Errorf("%w: instance %d", ErrInstanceReleased, i.id)
	}
	if err == nil {
		err = fn()
	}
	e.record(CallRecord{Op: op, Handle: i.handle, InstanceID: i.id, Detail: detail, Err: err})
	return err
}

// ID returns the engine-assigned instance number, starting at 1.
func (i *SimulatedInstance) ID() int { return i.id }

// Handle returns the event the instance was created from.
func (i *SimulatedInstance) Handle() events.EventHandle { return i.handle }

// IsPlaying reports whether the instance is started and not stopped.
func (i *SimulatedInstance) IsPlaying() bool {
	i.engine.mu.Lock()
	defer i.engine.mu.Unlock()
	return i.playing
}

// IsReleased reports whether Release succeeded.
func (i *SimulatedInstance) IsReleased() bool {
	i.engine.mu.Lock()
	defer i.engine.mu.Unlock()
	return i.released
}

// StartCount returns how many times Start succeeded.
func (i *SimulatedInstance) StartCount() int {
	i.engine.mu.Lock()
	defer i.engine.mu.Unlock()
	return i.startCount
}

// StopModes returns the modes of every successful Stop, in order.
func (i *SimulatedInstance) StopModes() []interfaces.StopMode {
	i.engine.mu.Lock()
	defer i.engine.mu.Unlock()
	out := make([]interfaces.StopMode, len(i.stops))
	copy(out, i.stops)
	return out
}

// Parameter returns the label last set for name.
func (i *SimulatedInstance) Parameter(name string) (string, bool) {
	i.engine.mu.Lock()
	defer i.engine.mu.Unlock()
	v, ok := i.params[name]
	return v, ok
}

// Volume returns the instance volume.
func (i *SimulatedInstance) Volume() float32 {
	i.engine.mu.Lock()
	defer i.engine.mu.Unlock()
	return i.volume
}

// SimulatedBus implements interfaces.Bus for SimulatedEngine.
type SimulatedBus struct {
	engine *SimulatedEngine
	path   string
	volume float32
	paused bool
}

// Path implements interfaces.Bus.Path.
func (b *SimulatedBus) Path() string { return b.path }

// SetVolume implements interfaces.Bus.SetVolume.
func (b *SimulatedBus) SetVolume(volume float32) error {
	e := b.engine
	e.mu.Lock()
	defer e.mu.Unlock()

	err := e.injected(OpSetBusVolume)
	if err == nil {
		if verr := limits.ValidateVolume(volume); verr != nil {
			err = fmt.Errorf("%w: %w", ErrInvalidVolume, verr)
		}
	}
	if err == nil {
		b.volume = volume
	}
	e.record(CallRecord{Op: OpSetBusVolume, Detail: fmt.Sprintf("%s=%.3f", b.path, volume), Err: err})
	return err
}

// Volume implements interfaces.Bus.Volume.
func (b *SimulatedBus) Volume() (float32, error) {
	b.engine.mu.Lock()
	defer b.engine.mu.Unlock()
	return b.volume, nil
}

// SetPaused implements interfaces.Bus.SetPaused.
func (b *SimulatedBus) SetPaused(paused bool) error {
	e := b.engine
	e.mu.Lock()
	defer e.mu.Unlock()

	err := e.injected(OpSetBusPaused)
	if err == nil {
		b.paused = paused
	}
	e.record(CallRecord{Op: OpSetBusPaused, Detail: fmt.Sprintf("%s=%t", b.path, paused), Err: err})
	return err
}

// Paused reports whether the bus is paused.
func (b *SimulatedBus) Paused() bool {
	b.engine.mu.Lock()
	defer b.engine.mu.Unlock()
	return b.paused
}
