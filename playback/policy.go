package playback

import (
	"fmt"
	"strings"

	"github.com/opd-ai/audioglue/limits"
)

// Defaults for the music scene switch.
const (
	DefaultMusicParameter = "musicScene"
	DefaultMenuScene      = "Main Menu"
	DefaultMenuLabel      = "menuMusic"
	DefaultGameplayLabel  = "gameplayMusic"
)

// Default volumes, 0 to 1.
const (
	DefaultMusicVolume   float32 = 0.2
	DefaultAmbientVolume float32 = 0.05
	DefaultSFXVolume     float32 = 0.5
)

// Default bus paths.
const (
	DefaultMusicBus = "bus:/music"
	DefaultSFXBus   = "bus:/sfx"
)

// MusicPolicy maps the active scene to the music track's labeled parameter.
//
// The rule is binary: the menu scene selects MenuLabel and every other
// scene, including the empty string and scenes added later, selects
// GameplayLabel.
type MusicPolicy struct {
	Parameter     string
	MenuScene     string
	MenuLabel     string
	GameplayLabel string
}

// DefaultMusicPolicy returns the policy the game ships with.
func DefaultMusicPolicy() MusicPolicy {
	return MusicPolicy{
		Parameter:     DefaultMusicParameter,
		MenuScene:     DefaultMenuScene,
		MenuLabel:     DefaultMenuLabel,
		GameplayLabel: DefaultGameplayLabel,
	}
}

// LabelFor returns the parameter label for scene. Scene names compare
// exactly.
func (p MusicPolicy) LabelFor(scene string) string {
	if scene == p.MenuScene {
		return p.MenuLabel
	}
	return p.GameplayLabel
}

// Validate checks that every field is set.
func (p MusicPolicy) Validate() error {
	switch {
	case p.Parameter == "":
		return fmt.Errorf("music policy: parameter is required")
	case p.MenuScene == "":
		return fmt.Errorf("music policy: menu scene is required")
	case p.MenuLabel == "" || p.GameplayLabel == "":
		return fmt.Errorf("music policy: menu and gameplay labels are required")
	}
	return nil
}

// ReplacePolicy decides what PlayMusic does with the previous music track.
type ReplacePolicy uint8

const (
	// ReplaceFadeOut stops the previous track with a fade-out. It stays
	// tracked and is released at shutdown.
	ReplaceFadeOut ReplacePolicy = iota
	// ReplaceKeep leaves the previous track alone; the caller must stop it.
	ReplaceKeep
)

// String returns the policy name used in configuration.
func (r ReplacePolicy) String() string {
	switch r {
	case ReplaceFadeOut:
		return "fadeout"
	case ReplaceKeep:
		return "keep"
	default:
		return fmt.Sprintf("ReplacePolicy(%d)", uint8(r))
	}
}

// ParseReplacePolicy parses a configuration value. Empty means fadeout.
func ParseReplacePolicy(s string) (ReplacePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "fadeout":
		return ReplaceFadeOut, nil
	case "keep":
		return ReplaceKeep, nil
	default:
		return 0, fmt.Errorf("unknown music replace policy %q", s)
	}
}

// Options configures a Manager.
type Options struct {
	MusicBus      string
	SFXBus        string
	MusicVolume   float32
	AmbientVolume float32
	SFXVolume     float32
	Music         MusicPolicy
	OnReplace     ReplacePolicy
}

// DefaultOptions returns the options the game ships with.
func DefaultOptions() Options {
	return Options{
		MusicBus:      DefaultMusicBus,
		SFXBus:        DefaultSFXBus,
		MusicVolume:   DefaultMusicVolume,
		AmbientVolume: DefaultAmbientVolume,
		SFXVolume:     DefaultSFXVolume,
		Music:         DefaultMusicPolicy(),
		OnReplace:     ReplaceFadeOut,
	}
}

// Validate checks bus paths, volumes and the music policy.
func (o Options) Validate() error {
	if o.MusicBus == "" || o.SFXBus == "" {
		return fmt.Errorf("options: music and sfx bus paths are required")
	}
	for _, v := range []struct {
		name   string
		volume float32
	}{
		{"music", o.MusicVolume},
		{"ambient", o.AmbientVolume},
		{"sfx", o.SFXVolume},
	} {
		if err := checkVolume(v.name, v.volume); err != nil {
			return fmt.Errorf("options: %w", err)
		}
	}
	if o.OnReplace > ReplaceKeep {
		return fmt.Errorf("options: unknown replace policy %s", o.OnReplace)
	}
	return o.Music.Validate()
}

func checkVolume(what string, volume float32) error {
	if err := limits.ValidateVolume(volume); err != nil {
		return fmt.Errorf("%s volume: %w", what, err)
	}
	return nil
}
