package playback

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabelFor(t *testing.T) {
	p := DefaultMusicPolicy()

	tests := []struct {
		scene string
		want  string
	}{
		{"Main Menu", "menuMusic"},
		{"Forest", "gameplayMusic"},
		{"", "gameplayMusic"},
		{"Main Menu ", "gameplayMusic"},
		{"MAIN MENU", "gameplayMusic"},
		{"Boss Arena", "gameplayMusic"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, p.LabelFor(tt.scene), "scene %q", tt.scene)
	}
}

func TestMusicPolicyValidate(t *testing.T) {
	require.NoError(t, DefaultMusicPolicy().Validate())

	p := DefaultMusicPolicy()
	p.Parameter = ""
	assert.Error(t, p.Validate())

	p = DefaultMusicPolicy()
	p.GameplayLabel = ""
	assert.Error(t, p.Validate())
}

func TestParseReplacePolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    ReplacePolicy
		wantErr bool
	}{
		{"", ReplaceFadeOut, false},
		{"fadeout", ReplaceFadeOut, false},
		{" Keep ", ReplaceKeep, false},
		{"release", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseReplacePolicy(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.in)
			continue
		}
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got)
		assert.Equal(t, got, mustParse(t, got.String()))
	}
}

func mustParse(t *testing.T, s string) ReplacePolicy {
	t.Helper()
	p, err := ParseReplacePolicy(s)
	require.NoError(t, err)
	return p
}

func TestOptionsValidate(t *testing.T) {
	require.NoError(t, DefaultOptions().Validate())

	tests := []struct {
		name   string
		mutate func(*Options)
	}{
		{"no music bus", func(o *Options) { o.MusicBus = "" }},
		{"ambient too loud", func(o *Options) { o.AmbientVolume = 1.1 }},
		{"negative sfx", func(o *Options) { o.SFXVolume = -0.1 }},
		{"unknown replace policy", func(o *Options) { o.OnReplace = ReplacePolicy(7) }},
		{"no menu scene", func(o *Options) { o.Music.MenuScene = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := DefaultOptions()
			tt.mutate(&o)
			assert.Error(t, o.Validate())
		})
	}
}
