package playback

import (
	"errors"
	"testing"

	"github.com/opd-ai/audioglue/events"
	"github.com/opd-ai/audioglue/interfaces"
	simtest "github.com/opd-ai/audioglue/testing"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func propertyManager(t *rapid.T, reg *events.Registry) (*Manager, *simtest.SimulatedEngine) {
	sim := simtest.NewSimulatedEngine(&interfaces.EngineConfig{
		Backend:          interfaces.BackendSimulation,
		StrictParameters: true,
	})
	sim.DeclareParameter(DefaultMusicParameter, DefaultMenuLabel, DefaultGameplayLabel)
	m, err := NewManager(sim, reg, DefaultOptions())
	require.NoError(t, err)
	return m, sim
}

// N creations track N instances and shutdown releases exactly those N.
func TestPropertyShutdownReleasesExactlyCreated(t *testing.T) {
	reg := testRegistry(t)
	rapid.Check(t, func(t *rapid.T) {
		m, sim := propertyManager(t, reg)
		n := rapid.IntRange(0, 40).Draw(t, "n")

		for i := 0; i < n; i++ {
			inst, err := m.CreateInstance(events.HandleForPath(clickPath))
			require.NoError(t, err)
			if rapid.Bool().Draw(t, "start") {
				require.NoError(t, inst.Start())
			}
		}
		if m.InstanceCount() != n {
			t.Fatalf("tracked %d instances, want %d", m.InstanceCount(), n)
		}

		tracked := m.Instances()
		require.NoError(t, m.Shutdown())

		if m.InstanceCount() != 0 {
			t.Fatalf("instance set not empty after shutdown: %d", m.InstanceCount())
		}
		if got := len(sim.CallsOf(simtest.OpRelease)); got != n {
			t.Fatalf("released %d instances, want %d", got, n)
		}
		if sim.LiveInstances() != 0 {
			t.Fatalf("%d engine instances left live", sim.LiveInstances())
		}
		for _, inst := range tracked {
			if err := inst.SetVolume(0.5); !errors.Is(err, ErrUseAfterRelease) {
				t.Fatalf("expected ErrUseAfterRelease, got %v", err)
			}
		}
	})
}

// One-shots never enter the instance set, whether the engine accepts them or not.
func TestPropertyOneShotsNeverTracked(t *testing.T) {
	reg := testRegistry(t)
	rapid.Check(t, func(t *rapid.T) {
		m, sim := propertyManager(t, reg)
		created := rapid.IntRange(0, 5).Draw(t, "created")
		for i := 0; i < created; i++ {
			_, err := m.CreateInstance(events.HandleForPath(musicPath))
			require.NoError(t, err)
		}

		shots := rapid.IntRange(0, 30).Draw(t, "shots")
		for i := 0; i < shots; i++ {
			if rapid.Bool().Draw(t, "fail") {
				sim.FailOn(simtest.OpPlayOneShot, errors.New("voice limit"))
			} else {
				sim.FailOn(simtest.OpPlayOneShot, nil)
			}
			handle := events.HandleForPath(clickPath)
			if rapid.Bool().Draw(t, "zero") {
				handle = events.EventHandle{}
			}
			_ = m.PlayOneShot(handle, interfaces.Vector3{})
		}

		if m.InstanceCount() != created {
			t.Fatalf("instance set changed by one-shots: %d, want %d", m.InstanceCount(), created)
		}
	})
}

// Only the exact menu scene selects menu music.
func TestPropertyMusicContextIsBinary(t *testing.T) {
	reg := testRegistry(t)
	rapid.Check(t, func(t *rapid.T) {
		m, sim := propertyManager(t, reg)
		_, err := m.PlayMusic(events.HandleForPath(musicPath), DefaultMenuScene)
		require.NoError(t, err)

		scene := rapid.OneOf(
			rapid.Just(DefaultMenuScene),
			rapid.Just(""),
			rapid.String(),
		).Draw(t, "scene")
		require.NoError(t, m.SetMusicContext(scene))

		got, _ := sim.Instances()[0].Parameter(DefaultMusicParameter)
		want := DefaultGameplayLabel
		if scene == DefaultMenuScene {
			want = DefaultMenuLabel
		}
		if got != want {
			t.Fatalf("scene %q labeled %q, want %q", scene, got, want)
		}
	})
}
