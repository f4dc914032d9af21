package audioglue

import (
	"path/filepath"
	"testing"

	"github.com/opd-ai/audioglue/config"
	"github.com/opd-ai/audioglue/events"
	"github.com/opd-ai/audioglue/interfaces"
	"github.com/opd-ai/audioglue/playback"
	"github.com/opd-ai/audioglue/silent"
	simtest "github.com/opd-ai/audioglue/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() config.Config {
	cfg := config.Defaults()
	cfg.Engine.StrictParameters = true
	cfg.Events = []config.EventConfig{
		{Name: events.AmbientSound, Path: "event:/Ambience/Forest"},
		{Name: events.AllMusic, Path: "event:/Music/Main"},
		{Name: events.UIGetCoin, Path: "event:/UI/Coin"},
	}
	return cfg
}

func TestSystemLifecycle(t *testing.T) {
	sys, err := New(testConfig())
	require.NoError(t, err)

	assert.Same(t, sys.Registry(), events.Active())
	assert.Same(t, sys.Manager(), playback.Active())

	require.NoError(t, sys.StartSession("Main Menu"))
	require.NoError(t, sys.PlayOneShot(events.UIGetCoin))
	assert.ErrorIs(t, sys.PlayOneShot("missing"), events.ErrNotFound)
	require.NoError(t, sys.SceneChanged("Cave"))

	sim, ok := sys.Engine().(*simtest.SimulatedEngine)
	require.True(t, ok)
	label, _ := sim.Instances()[1].Parameter(playback.DefaultMusicParameter)
	assert.Equal(t, playback.DefaultGameplayLabel, label, "strict engine accepts the declared music labels")
	assert.Len(t, sim.OneShots(), 1)

	require.NoError(t, sys.Kill())
	assert.Equal(t, 0, sim.LiveInstances())
	assert.Nil(t, events.Active())
	assert.Nil(t, playback.Active())
}

func TestSystemSilentBackend(t *testing.T) {
	cfg := testConfig()
	cfg.Engine = interfaces.EngineConfig{Backend: interfaces.BackendSilent}

	sys, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sys.Kill() })

	_, ok := sys.Engine().(*silent.Engine)
	assert.True(t, ok)
	require.NoError(t, sys.StartSession("Forest"))
	assert.Equal(t, 2, sys.Manager().InstanceCount())
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Engine.Backend = "wwise"
	_, err := New(cfg)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)

	cfg = testConfig()
	cfg.Events = cfg.Events[:1]
	_, err = New(cfg)
	assert.ErrorIs(t, err, events.ErrConfiguration)
}

func TestKillTwice(t *testing.T) {
	sys, err := New(testConfig())
	require.NoError(t, err)

	require.NoError(t, sys.Kill())
	assert.ErrorIs(t, sys.Kill(), playback.ErrLifecycleOrder)
}

func TestPlayOneShotRequiresRunningSession(t *testing.T) {
	sys, err := New(testConfig())
	require.NoError(t, err)
	sim, ok := sys.Engine().(*simtest.SimulatedEngine)
	require.True(t, ok)

	assert.ErrorIs(t, sys.PlayOneShot(events.UIGetCoin), playback.ErrLifecycleOrder, "before the session starts")

	require.NoError(t, sys.StartSession("Forest"))
	require.NoError(t, sys.PlayOneShot(events.UIGetCoin))
	require.NoError(t, sys.Kill())

	assert.ErrorIs(t, sys.PlayOneShot(events.UIGetCoin), playback.ErrLifecycleOrder, "after teardown")
	assert.Len(t, sim.OneShots(), 1, "no one-shot reaches the engine outside the session")
}

func TestEngineEnvironmentOverride(t *testing.T) {
	t.Setenv("AUDIOGLUE_ENGINE_BACKEND", "silent")

	path := filepath.Join(t.TempDir(), config.DefaultFileName)
	require.NoError(t, config.WriteDefaultConfig(path))
	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, interfaces.BackendSilent, cfg.Engine.Backend)

	sys, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sys.Kill() })
	_, ok := sys.Engine().(*silent.Engine)
	assert.True(t, ok, "loaded config selects the silent engine")

	// configurations built in code get the same override
	other, err := New(testConfig())
	require.NoError(t, err)
	t.Cleanup(func() { _ = other.Kill() })
	_, ok = other.Engine().(*silent.Engine)
	assert.True(t, ok)
	assert.Equal(t, interfaces.BackendSilent, other.Config().Engine.Backend)
}
