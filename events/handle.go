package events

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/opd-ai/audioglue/limits"
)

// PathPrefix is the prefix every event path carries in an event bank.
const PathPrefix = "event:/"

// handleNamespace seeds deterministic IDs for bindings that only name a path.
var handleNamespace = uuid.MustParse("5d3c1f0e-8a4b-4c61-9f27-0a6e2b7d9c14")

// EventHandle is an opaque reference to an event in the audio engine.
// The registry only stores and names handles; the engine interprets them.
type EventHandle struct {
	ID   uuid.UUID
	Path string
}

// IsZero reports whether the handle refers to nothing.
func (h EventHandle) IsZero() bool {
	return h.ID == uuid.Nil && h.Path == ""
}

// String returns the path when known, otherwise the ID in braces.
func (h EventHandle) String() string {
	if h.Path != "" {
		return h.Path
	}
	return "{" + h.ID.String() + "}"
}

// HandleForPath derives the handle for an event path. The same path always
// yields the same ID.
func HandleForPath(path string) EventHandle {
	return EventHandle{
		ID:   uuid.NewSHA1(handleNamespace, []byte(path)),
		Path: path,
	}
}

// NewHandle builds a handle from a binding's path and GUID. Either may be
// empty but not both; a path must start with PathPrefix.
func NewHandle(path, guid string) (EventHandle, error) {
	path = strings.TrimSpace(path)
	guid = strings.TrimSpace(guid)

	if path == "" && guid == "" {
		return EventHandle{}, fmt.Errorf("%w: binding has neither path nor guid", ErrConfiguration)
	}
	if path != "" {
		if !strings.HasPrefix(path, PathPrefix) {
			return EventHandle{}, fmt.Errorf("%w: path %q must start with %q", ErrConfiguration, path, PathPrefix)
		}
		if err := limits.ValidateEventPath(path); err != nil {
			return EventHandle{}, fmt.Errorf("%w: %w", ErrConfiguration, err)
		}
	}

	if guid == "" {
		return HandleForPath(path), nil
	}

	id, err := uuid.Parse(strings.Trim(guid, "{}"))
	if err != nil {
		return EventHandle{}, fmt.Errorf("%w: guid %q: %v", ErrConfiguration, guid, err)
	}
	if id == uuid.Nil {
		return EventHandle{}, fmt.Errorf("%w: guid must not be nil", ErrConfiguration)
	}
	return EventHandle{ID: id, Path: path}, nil
}
