// Package silent provides an audio engine that accepts every request and
// plays nothing.
//
// It is the engine for headless servers, CI runs and builds shipped without
// audio middleware. Handles are still validated so configuration mistakes
// surface the same way they would against a real engine.
package silent

import (
	"errors"
	"sync/atomic"

	"github.com/opd-ai/audioglue/events"
	"github.com/opd-ai/audioglue/interfaces"
	"github.com/sirupsen/logrus"
)

// ErrInvalidHandle indicates a zero event handle.
var ErrInvalidHandle = errors.New("invalid event handle")

// Engine implements interfaces.AudioEngine with no output.
type Engine struct {
	created  atomic.Int64
	oneShots atomic.Int64
}

// New creates a silent engine.
func New() *Engine {
	logrus.WithFields(logrus.Fields{
		"function": "silent.New",
	}).Info("Audio disabled, using silent engine")
	return &Engine{}
}

// GetBus implements interfaces.AudioEngine.GetBus.
func (e *Engine) GetBus(path string) (interfaces.Bus, error) {
	return &bus{path: path, volume: 1}, nil
}

// CreateInstance implements interfaces.AudioEngine.CreateInstance.
func (e *Engine) CreateInstance(handle events.EventHandle) (interfaces.EventInstance, error) {
	if handle.IsZero() {
		return nil, ErrInvalidHandle
	}
	e.created.Add(1)
	return instance{}, nil
}

// PlayOneShot implements interfaces.AudioEngine.PlayOneShot.
func (e *Engine) PlayOneShot(handle events.EventHandle, _ interfaces.Vector3) error {
	if handle.IsZero() {
		return ErrInvalidHandle
	}
	e.oneShots.Add(1)
	return nil
}

// Created returns how many instances were requested.
func (e *Engine) Created() int64 { return e.created.Load() }

// OneShots returns how many one-shots were requested.
func (e *Engine) OneShots() int64 { return e.oneShots.Load() }

type instance struct{}

func (instance) Start() error { return nil }
func (instance) Stop(interfaces.StopMode) error { return nil }
func (instance) Release() error { return nil }
func (instance) SetParameterByLabel(_, _ string) error { return nil }
func (instance) SetVolume(float32) error { return nil }

type bus struct {
	path   string
	volume float32
}

func (b *bus) Path() string { return b.path }

func (b *bus) SetVolume(v float32) error {
	b.volume = v
	return nil
}

func (b *bus) Volume() (float32, error) { return b.volume, nil }

func (b *bus) SetPaused(bool) error { return nil }
