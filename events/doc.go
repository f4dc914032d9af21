// Package events holds the registry of named sound events.
//
// A Registry maps symbolic names such as "ambientSound" or "playerFootsteps"
// to EventHandle values understood by the audio engine. It is built once from
// configuration and is read-only afterwards.
//
// # Building a Registry
//
//	reg, err := events.Initialize(events.Config{
//	    Bindings: []events.Binding{
//	        {Name: events.AmbientSound, Path: "event:/Ambience/Forest"},
//	        {Name: events.AllMusic, Path: "event:/Music/Main"},
//	    },
//	})
//	if err != nil {
//	    // errors.Is(err, events.ErrConfiguration)
//	}
//
// A binding may give a path, a GUID, or both. When only a path is given the
// handle ID is derived from it, so the same path always maps to the same
// handle across runs.
//
// # Catalog
//
// The catalog lists the slots the game knows about, grouped by Section.
// Required slots (the ambient loop and the music track) must be bound;
// missing optional slots are logged as warnings. Names outside the catalog
// are accepted.
//
// # Process-wide Registry
//
// Install publishes a registry for code that cannot be handed one directly.
// A second Install is reported with ErrDuplicateInitialization but still
// replaces the active registry.
package events
