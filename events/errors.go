package events

import "errors"

// Sentinel errors for registry operations.
// These errors enable reliable error classification using errors.Is().
var (
	// ErrConfiguration indicates a missing or malformed event binding.
	ErrConfiguration = errors.New("invalid event configuration")

	// ErrNotFound indicates a lookup for a name the registry does not hold.
	ErrNotFound = errors.New("event not found")

	// ErrDuplicateInitialization indicates a registry was installed while
	// another one was already active. The new registry still takes over.
	ErrDuplicateInitialization = errors.New("event registry already initialized")
)
