// Package config loads the audio glue configuration file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/opd-ai/audioglue/events"
	"github.com/opd-ai/audioglue/interfaces"
	"github.com/opd-ai/audioglue/playback"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes environment overrides, e.g. AUDIOGLUE_LOG_LEVEL.
const EnvPrefix = "AUDIOGLUE"

// DefaultFileName is searched for in the working directory when no path is given.
const DefaultFileName = "audioglue.yaml"

// ErrInvalidConfig indicates the configuration failed validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds all configuration options.
type Config struct {
	Engine interfaces.EngineConfig `mapstructure:"engine" yaml:"engine"`
	Log    LogConfig               `mapstructure:"log" yaml:"log"`
	Buses  BusConfig               `mapstructure:"buses" yaml:"buses"`
	Music  MusicConfig             `mapstructure:"music" yaml:"music"`
	Events []EventConfig           `mapstructure:"events" yaml:"events"`
}

// LogConfig configures logrus.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`   // panic..trace
	Format string `mapstructure:"format" yaml:"format"` // text or json
}

// BusConfig names the mixer buses and their volumes.
type BusConfig struct {
	Music         string  `mapstructure:"music" yaml:"music"`
	SFX           string  `mapstructure:"sfx" yaml:"sfx"`
	MusicVolume   float32 `mapstructure:"music_volume" yaml:"music_volume"`
	AmbientVolume float32 `mapstructure:"ambient_volume" yaml:"ambient_volume"`
	SFXVolume     float32 `mapstructure:"sfx_volume" yaml:"sfx_volume"`
}

// MusicConfig configures the scene to music label policy.
type MusicConfig struct {
	Parameter     string `mapstructure:"parameter" yaml:"parameter"`
	MenuScene     string `mapstructure:"menu_scene" yaml:"menu_scene"`
	MenuLabel     string `mapstructure:"menu_label" yaml:"menu_label"`
	GameplayLabel string `mapstructure:"gameplay_label" yaml:"gameplay_label"`
	OnReplace     string `mapstructure:"on_replace" yaml:"on_replace"` // fadeout or keep
}

// EventConfig binds a symbolic name to an event path and optional GUID.
type EventConfig struct {
	Name string `mapstructure:"name" yaml:"name"`
	Path string `mapstructure:"path" yaml:"path,omitempty"`
	GUID string `mapstructure:"guid" yaml:"guid,omitempty"`
}

// Defaults returns a Config with the shipped defaults and no events.
func Defaults() Config {
	opts := playback.DefaultOptions()
	return Config{
		Engine: interfaces.EngineConfig{
			Backend: interfaces.BackendSimulation,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Buses: BusConfig{
			Music:         opts.MusicBus,
			SFX:           opts.SFXBus,
			MusicVolume:   opts.MusicVolume,
			AmbientVolume: opts.AmbientVolume,
			SFXVolume:     opts.SFXVolume,
		},
		Music: MusicConfig{
			Parameter:     opts.Music.Parameter,
			MenuScene:     opts.Music.MenuScene,
			MenuLabel:     opts.Music.MenuLabel,
			GameplayLabel: opts.Music.GameplayLabel,
			OnReplace:     opts.OnReplace.String(),
		},
	}
}

// CatalogEvents returns a placeholder binding for every catalog slot, with
// paths laid out as event:/<Section>/<name>.
func CatalogEvents() []EventConfig {
	catalog := events.Catalog()
	out := make([]EventConfig, 0, len(catalog))
	for _, slot := range catalog {
		out = append(out, EventConfig{
			Name: slot.Name,
			Path: events.PathPrefix + string(slot.Section) + "/" + slot.Name,
		})
	}
	return out
}

// Load reads the configuration from path with AUDIOGLUE_* environment
// overrides applied on top. With an empty path, DefaultFileName in the
// working directory is used if present and the defaults otherwise.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v, Defaults())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(strings.TrimSuffix(DefaultFileName, filepath.Ext(DefaultFileName)))
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"function": "Load",
		"file":     v.ConfigFileUsed(),
		"events":   len(cfg.Events),
		"backend":  cfg.Engine.Backend,
	}).Debug("Loaded configuration")

	return cfg, nil
}

// setDefaults registers every scalar key so environment overrides apply
// even when the file omits the key.
func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("engine.backend", d.Engine.Backend)
	v.SetDefault("engine.strict_parameters", d.Engine.StrictParameters)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("buses.music", d.Buses.Music)
	v.SetDefault("buses.sfx", d.Buses.SFX)
	v.SetDefault("buses.music_volume", d.Buses.MusicVolume)
	v.SetDefault("buses.ambient_volume", d.Buses.AmbientVolume)
	v.SetDefault("buses.sfx_volume", d.Buses.SFXVolume)
	v.SetDefault("music.parameter", d.Music.Parameter)
	v.SetDefault("music.menu_scene", d.Music.MenuScene)
	v.SetDefault("music.menu_label", d.Music.MenuLabel)
	v.SetDefault("music.gameplay_label", d.Music.GameplayLabel)
	v.SetDefault("music.on_replace", d.Music.OnReplace)
}

// Validate checks every section and returns all problems joined, each
// wrapped in ErrInvalidConfig. Event bindings are checked by
// events.Initialize, not here.
func (c Config) Validate() error {
	var errs []error
	add := func(section string, err error) {
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, section, err))
		}
	}

	engine := c.Engine
	add("engine", engine.Validate())

	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		add("log.level", err)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		add("log.format", fmt.Errorf("unknown format %q", c.Log.Format))
	}

	opts, err := c.ManagerOptions()
	if err != nil {
		add("music.on_replace", err)
	} else {
		add("buses/music", opts.Validate())
	}

	return errors.Join(errs...)
}

// RegistryConfig converts the event bindings for events.Initialize.
func (c Config) RegistryConfig() events.Config {
	bindings := make([]events.Binding, 0, len(c.Events))
	for _, e := range c.Events {
		bindings = append(bindings, events.Binding{Name: e.Name, Path: e.Path, GUID: e.GUID})
	}
	return events.Config{Bindings: bindings}
}

// ManagerOptions converts the bus and music sections to playback options.
func (c Config) ManagerOptions() (playback.Options, error) {
	replace, err := playback.ParseReplacePolicy(c.Music.OnReplace)
	if err != nil {
		return playback.Options{}, err
	}
	return playback.Options{
		MusicBus:      c.Buses.Music,
		SFXBus:        c.Buses.SFX,
		MusicVolume:   c.Buses.MusicVolume,
		AmbientVolume: c.Buses.AmbientVolume,
		SFXVolume:     c.Buses.SFXVolume,
		Music: playback.MusicPolicy{
			Parameter:     c.Music.Parameter,
			MenuScene:     c.Music.MenuScene,
			MenuLabel:     c.Music.MenuLabel,
			GameplayLabel: c.Music.GameplayLabel,
		},
		OnReplace: replace,
	}, nil
}

// EngineConfig returns a copy of the engine section.
func (c Config) EngineConfig() *interfaces.EngineConfig {
	engine := c.Engine
	return &engine
}

// ApplyLogging configures the standard logrus logger from c.Log.
func (c Config) ApplyLogging() error {
	level, err := logrus.ParseLevel(c.Log.Level)
	if err != nil {
		return fmt.Errorf("%w: log.level: %w", ErrInvalidConfig, err)
	}
	logrus.SetLevel(level)

	switch c.Log.Format {
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	case "text", "":
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	default:
		return fmt.Errorf("%w: log.format: unknown format %q", ErrInvalidConfig, c.Log.Format)
	}
	return nil
}

// Marshal renders c as YAML.
func Marshal(c Config) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	return buf.Bytes(), nil
}

var sectionComments = map[string]string{
	"engine": "Audio engine backend: simulation | silent",
	"log":    "Logging: level panic..trace, format text | json",
	"buses":  "Mixer buses and volumes (0 to 1)",
	"music":  "Music scene policy. Only menu_scene selects menu_label.\non_replace: fadeout | keep",
	"events": "Event bindings. Each needs a path, a guid, or both.\nambientSound and allMusic are required.",
}

// DefaultConfigTemplate returns the defaults plus a placeholder binding for
// every catalog slot, as commented YAML.
func DefaultConfigTemplate() (string, error) {
	cfg := Defaults()
	cfg.Events = CatalogEvents()

	var root yaml.Node
	if err := root.Encode(cfg); err != nil {
		return "", fmt.Errorf("encoding template: %w", err)
	}
	if root.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(root.Content); i += 2 {
			if c, ok := sectionComments[root.Content[i].Value]; ok {
				root.Content[i].HeadComment = c
			}
		}
	}
	root.HeadComment = "audioglue configuration"

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&root); err != nil {
		return "", fmt.Errorf("encoding template: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("encoding template: %w", err)
	}
	return buf.String(), nil
}

// WriteDefaultConfig writes DefaultConfigTemplate to path, creating the
// parent directory if needed.
func WriteDefaultConfig(path string) error {
	tmpl, err := DefaultConfigTemplate()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(tmpl), 0o600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
