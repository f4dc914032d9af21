package silent

import (
	"testing"

	"github.com/opd-ai/audioglue/events"
	"github.com/opd-ai/audioglue/interfaces"
	"github.com/stretchr/testify/require"
)

func TestEngineImplementsInterface(t *testing.T) {
	var _ interfaces.AudioEngine = New()
}

func TestEngineAcceptsEverything(t *testing.T) {
	e := New()
	h := events.HandleForPath("event:/UI/Click")

	inst, err := e.CreateInstance(h)
	require.NoError(t, err)

	require.NotPanics(t, func() {
		require.NoError(t, inst.Start())
		require.NoError(t, inst.SetParameterByLabel("musicScene", "anything"))
		require.NoError(t, inst.SetVolume(3))
		require.NoError(t, inst.Stop(interfaces.StopImmediate))
		require.NoError(t, inst.Release())
	})

	require.NoError(t, e.PlayOneShot(h, interfaces.Vector3{}))
	require.Equal(t, int64(1), e.Created())
	require.Equal(t, int64(1), e.OneShots())
}

func TestEngineRejectsZeroHandle(t *testing.T) {
	e := New()

	_, err := e.CreateInstance(events.EventHandle{})
	require.ErrorIs(t, err, ErrInvalidHandle)
	require.ErrorIs(t, e.PlayOneShot(events.EventHandle{}, interfaces.Vector3{}), ErrInvalidHandle)
	require.Zero(t, e.Created())
}

func TestBusKeepsVolume(t *testing.T) {
	e := New()
	b, err := e.GetBus("bus:/sfx")
	require.NoError(t, err)
	require.Equal(t, "bus:/sfx", b.Path())

	require.NoError(t, b.SetVolume(0.5))
	v, err := b.Volume()
	require.NoError(t, err)
	require.Equal(t, float32(0.5), v)
	require.NoError(t, b.SetPaused(true))
}
