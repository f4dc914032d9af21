// Package limits provides centralized bounds and validation functions for
// the audio glue layer.
//
// # Volumes
//
// Every volume handed to an engine, whether on an instance or a bus, must lie
// in [MinVolume, MaxVolume]:
//
//	if err := limits.ValidateVolume(v); err != nil {
//	    // errors.Is(err, limits.ErrVolumeOutOfRange)
//	}
//
// NaN is rejected as out of range.
//
// # Names and paths
//
// Symbolic event names and engine event paths are bounded so a malformed
// configuration file cannot produce unbounded registry keys:
//
//	err := limits.ValidateEventName(name) // ErrEmpty or ErrTooLong
//	err = limits.ValidateEventPath(path)
//
// For other strings use the generic ValidateLength.
package limits
