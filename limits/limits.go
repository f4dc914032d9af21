// Package limits provides centralized bounds and validation functions for
// values that cross into the audio engine. This keeps the manager, the
// engines and the configuration loader in agreement about what is accepted.
package limits

import (
	"errors"
	"fmt"
	"math"
)

const (
	// MinVolume is silence.
	MinVolume float32 = 0

	// MaxVolume is unity gain. Engines accept louder values but the
	// mixer presets never exceed it.
	MaxVolume float32 = 1

	// MaxEventName is the longest symbolic event name the registry accepts.
	MaxEventName = 128

	// MaxEventPath is the longest engine event path the registry accepts,
	// including the "event:/" prefix.
	MaxEventPath = 512
)

var (
	// ErrVolumeOutOfRange indicates a volume outside MinVolume..MaxVolume or NaN
	ErrVolumeOutOfRange = errors.New("volume out of range")

	// ErrEmpty indicates an empty name or path was provided
	ErrEmpty = errors.New("empty value")

	// ErrTooLong indicates a name or path exceeds its maximum length
	ErrTooLong = errors.New("value too long")
)

// ValidateVolume checks that volume lies within MinVolume..MaxVolume.
// Returns an error with the offending value on failure.
func ValidateVolume(volume float32) error {
	if math.IsNaN(float64(volume)) || volume < MinVolume || volume > MaxVolume {
		return fmt.Errorf("%w: %v not in [%v, %v]", ErrVolumeOutOfRange, volume, MinVolume, MaxVolume)
	}
	return nil
}

// ValidateLength checks that s is non-empty and at most maxLen bytes.
func ValidateLength(s string, maxLen int) error {
	if s == "" {
		return ErrEmpty
	}
	if len(s) > maxLen {
		return fmt.Errorf("%w: length %d exceeds limit %d", ErrTooLong, len(s), maxLen)
	}
	return nil
}

// ValidateEventName validates a symbolic event name against MaxEventName.
func ValidateEventName(name string) error {
	if err := ValidateLength(name, MaxEventName); err != nil {
		return fmt.Errorf("event name: %w", err)
	}
	return nil
}

// ValidateEventPath validates an engine event path against MaxEventPath.
func ValidateEventPath(path string) error {
	if err := ValidateLength(path, MaxEventPath); err != nil {
		return fmt.Errorf("event path: %w", err)
	}
	return nil
}
