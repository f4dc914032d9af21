package events

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/opd-ai/audioglue/limits"
	"github.com/opd-ai/audioglue/singleton"
	"github.com/sirupsen/logrus"
)

// Binding ties a symbolic name to an event in the engine's banks.
type Binding struct {
	Name string
	Path string
	GUID string
}

// Config enumerates the bindings a registry is built from.
type Config struct {
	Bindings []Binding
}

// Registry maps symbolic event names to engine handles.
//
// A Registry is populated once by Initialize and never mutated afterwards,
// so any number of goroutines may read from it concurrently.
type Registry struct {
	handles map[string]EventHandle
}

// Initialize validates cfg and builds a registry from it.
//
// Every binding must be well formed and names must be unique. Required
// catalog slots must be bound; optional catalog slots that are missing are
// only logged. Names outside the catalog are accepted as custom events.
// All problems are collected and returned together.
func Initialize(cfg Config) (*Registry, error) {
	logrus.WithFields(logrus.Fields{
		"function": "Initialize",
		"bindings": len(cfg.Bindings),
	}).Info("Initializing event registry")

	handles := make(map[string]EventHandle, len(cfg.Bindings))
	var errs []error

	for i, b := range cfg.Bindings {
		name := strings.TrimSpace(b.Name)
		if err := limits.ValidateEventName(name); err != nil {
			errs = append(errs, fmt.Errorf("%w: binding %d: %w", ErrConfiguration, i, err))
			continue
		}
		if _, dup := handles[name]; dup {
			errs = append(errs, fmt.Errorf("%w: binding %d: duplicate name %q", ErrConfiguration, i, name))
			continue
		}

		h, err := NewHandle(b.Path, b.GUID)
		if err != nil {
			errs = append(errs, fmt.Errorf("binding %d (%s): %w", i, name, err))
			continue
		}
		handles[name] = h

		if _, known := LookupSlot(name); !known {
			logrus.WithFields(logrus.Fields{
				"function": "Initialize",
				"name":     name,
				"path":     h.Path,
			}).Debug("Registered custom event outside the catalog")
		}
	}

	for _, slot := range catalog {
		if _, ok := handles[slot.Name]; ok {
			continue
		}
		if slot.Required {
			errs = append(errs, fmt.Errorf("%w: required slot %q is unbound", ErrConfiguration, slot.Name))
			continue
		}
		logrus.WithFields(logrus.Fields{
			"function": "Initialize",
			"slot":     slot.Name,
			"section":  slot.Section,
		}).Warn("Optional event slot is unbound")
	}

	if len(errs) > 0 {
		err := errors.Join(errs...)
		logrus.WithFields(logrus.Fields{
			"function":    "Initialize",
			"error_count": len(errs),
			"error":       err.Error(),
		}).Error("Event registry configuration rejected")
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"function": "Initialize",
		"events":   len(handles),
	}).Info("Event registry initialized")

	return &Registry{handles: handles}, nil
}

// Lookup returns the handle bound to name. A nil registry binds nothing, so
// Active().Lookup fails with ErrNotFound before any registry is installed.
func (r *Registry) Lookup(name string) (EventHandle, error) {
	if r == nil {
		return EventHandle{}, fmt.Errorf("%w: %q: no registry", ErrNotFound, name)
	}
	h, ok := r.handles[name]
	if !ok {
		return EventHandle{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return h, nil
}

// Len returns the number of bound events.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.handles)
}

// Names returns all bound names in sorted order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	names := make([]string, 0, len(r.handles))
	for name := range r.handles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Bindings returns the registry contents as bindings sorted by name, with
// derived GUIDs filled in.
func (r *Registry) Bindings() []Binding {
	out := make([]Binding, 0, len(r.handles))
	for _, name := range r.Names() {
		h := r.handles[name]
		out = append(out, Binding{Name: name, Path: h.Path, GUID: h.ID.String()})
	}
	return out
}

var active singleton.Slot[*Registry]

// Install makes r the process-wide registry.
//
// Installing while another registry is active logs a warning and returns
// ErrDuplicateInitialization; r still becomes the active registry.
func Install(r *Registry) error {
	if err := active.Install(r); err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "Install",
			"events":   r.Len(),
		}).Warn("Found more than one event registry, replacing the active one")
		return ErrDuplicateInitialization
	}
	return nil
}

// Active returns the process-wide registry, or nil if none is installed.
func Active() *Registry {
	r, _ := active.Get()
	return r
}

// Uninstall clears the process-wide registry.
func Uninstall() {
	active.Clear()
}
