// Package singleton provides a process-wide slot for a single active value
// with an explicit install/uninstall lifecycle.
//
// Installing over an occupied slot is reported, not refused: the new value
// replaces the old one and Install returns ErrOccupied so the caller can log
// or surface the condition. This mirrors scene-based engines where a second
// manager object may briefly coexist with the first during a scene load.
package singleton

import (
	"errors"
	"sync"
)

// ErrOccupied indicates Install replaced a value that was already active.
var ErrOccupied = errors.New("slot already occupied")

// Slot holds at most one active value of type T.
// The zero value is an empty slot ready for use.
type Slot[T any] struct {
	mu       sync.RWMutex
	value    T
	occupied bool
	replaced int
}

// Install makes v the active value. If another value was active it is
// replaced and ErrOccupied is returned.
func (s *Slot[T]) Install(v T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	wasOccupied := s.occupied
	s.value = v
	s.occupied = true
	if wasOccupied {
		s.replaced++
		return ErrOccupied
	}
	return nil
}

// Get returns the active value and whether one is installed.
func (s *Slot[T]) Get() (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value, s.occupied
}

// Clear empties the slot.
func (s *Slot[T]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	var zero T
	s.value = zero
	s.occupied = false
}

// ClearIf empties the slot only when match reports true for the active value.
// It returns whether the slot was cleared.
func (s *Slot[T]) ClearIf(match func(T) bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.occupied || !match(s.value) {
		return false
	}
	var zero T
	s.value = zero
	s.occupied = false
	return true
}

// Replacements returns how many times Install overwrote an active value.
func (s *Slot[T]) Replacements() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.replaced
}
