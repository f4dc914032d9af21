package events

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func minimalConfig() Config {
	return Config{Bindings: []Binding{
		{Name: AmbientSound, Path: "event:/Ambience/Forest"},
		{Name: AllMusic, Path: "event:/Music/Main"},
	}}
}

func TestInitializeMinimal(t *testing.T) {
	reg, err := Initialize(minimalConfig())
	require.NoError(t, err)
	assert.Equal(t, 2, reg.Len())
	assert.Equal(t, []string{AllMusic, AmbientSound}, reg.Names())
}

func TestInitializeRequiredSlotMissing(t *testing.T) {
	_, err := Initialize(Config{Bindings: []Binding{
		{Name: AmbientSound, Path: "event:/Ambience/Forest"},
	}})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfiguration)
	assert.Contains(t, err.Error(), AllMusic)
}

func TestInitializeOptionalSlotMissingWarns(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()

	_, err := Initialize(minimalConfig())
	require.NoError(t, err)

	var warned bool
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel && e.Data["slot"] == DoorOpen {
			warned = true
		}
	}
	assert.True(t, warned, "expected a warning for unbound optional slot %s", DoorOpen)
}

func TestInitializeMalformedBindings(t *testing.T) {
	tests := []struct {
		name    string
		binding Binding
	}{
		{"empty name", Binding{Name: "", Path: "event:/X"}},
		{"no path or guid", Binding{Name: "x"}},
		{"bad prefix", Binding{Name: "x", Path: "snapshot:/X"}},
		{"bad guid", Binding{Name: "x", GUID: "not-a-guid"}},
		{"nil guid", Binding{Name: "x", GUID: uuid.Nil.String()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := minimalConfig()
			cfg.Bindings = append(cfg.Bindings, tt.binding)
			_, err := Initialize(cfg)
			assert.ErrorIs(t, err, ErrConfiguration)
		})
	}
}

func TestInitializeDuplicateName(t *testing.T) {
	cfg := minimalConfig()
	cfg.Bindings = append(cfg.Bindings, Binding{Name: AmbientSound, Path: "event:/Ambience/Cave"})

	_, err := Initialize(cfg)
	require.ErrorIs(t, err, ErrConfiguration)
	assert.Contains(t, err.Error(), "duplicate")
}

func TestInitializeCustomEventAccepted(t *testing.T) {
	cfg := minimalConfig()
	cfg.Bindings = append(cfg.Bindings, Binding{Name: "chestOpen", Path: "event:/Props/Chest"})

	reg, err := Initialize(cfg)
	require.NoError(t, err)

	h, err := reg.Lookup("chestOpen")
	require.NoError(t, err)
	assert.Equal(t, "event:/Props/Chest", h.Path)
}

func TestLookupUnknown(t *testing.T) {
	reg, err := Initialize(minimalConfig())
	require.NoError(t, err)

	_, err = reg.Lookup("doesNotExist")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLookupWithoutActiveRegistry(t *testing.T) {
	Uninstall()
	require.Nil(t, Active())

	var h EventHandle
	var err error
	assert.NotPanics(t, func() { h, err = Active().Lookup(UIButtonClick) })
	assert.ErrorIs(t, err, ErrNotFound)
	assert.True(t, h.IsZero())
	assert.Zero(t, Active().Len())
	assert.Empty(t, Active().Names())
}

func TestLookupExplicitGUID(t *testing.T) {
	id := uuid.New()
	cfg := minimalConfig()
	cfg.Bindings = append(cfg.Bindings, Binding{Name: BossMusic, GUID: "{" + id.String() + "}"})

	reg, err := Initialize(cfg)
	require.NoError(t, err)

	h, err := reg.Lookup(BossMusic)
	require.NoError(t, err)
	assert.Equal(t, id, h.ID)
	assert.Empty(t, h.Path)
}

func TestBindingsRoundTrip(t *testing.T) {
	reg, err := Initialize(minimalConfig())
	require.NoError(t, err)

	again, err := Initialize(Config{Bindings: reg.Bindings()})
	require.NoError(t, err)

	for _, name := range reg.Names() {
		a, _ := reg.Lookup(name)
		b, _ := again.Lookup(name)
		assert.Equal(t, a, b, name)
	}
}

// Every configured name resolves to a stable non-zero handle; every other
// name is NotFound.
func TestPropertyLookup(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		names := rapid.SliceOfDistinct(
			rapid.StringMatching(`[a-z][A-Za-z0-9]{0,15}`),
			func(s string) string { return s },
		).Draw(t, "names")

		cfg := minimalConfig()
		bound := map[string]bool{AmbientSound: true, AllMusic: true}
		for _, n := range names {
			if bound[n] {
				continue
			}
			bound[n] = true
			cfg.Bindings = append(cfg.Bindings, Binding{Name: n, Path: "event:/Custom/" + n})
		}

		reg, err := Initialize(cfg)
		if err != nil {
			t.Fatalf("Initialize: %v", err)
		}

		for n := range bound {
			h1, err := reg.Lookup(n)
			if err != nil {
				t.Fatalf("Lookup(%q): %v", n, err)
			}
			h2, _ := reg.Lookup(n)
			if h1.IsZero() || h1 != h2 {
				t.Fatalf("handle for %q not stable/non-zero: %v vs %v", n, h1, h2)
			}
		}

		probe := rapid.StringMatching(`[A-Za-z0-9]{1,16}`).Draw(t, "probe")
		if !bound[probe] {
			if _, err := reg.Lookup(probe); !errors.Is(err, ErrNotFound) {
				t.Fatalf("Lookup(%q) = %v, want ErrNotFound", probe, err)
			}
		}
	})
}

func TestInstallDuplicateIsSoft(t *testing.T) {
	t.Cleanup(Uninstall)
	hook := test.NewGlobal()
	defer hook.Reset()

	first, err := Initialize(minimalConfig())
	require.NoError(t, err)
	second, err := Initialize(minimalConfig())
	require.NoError(t, err)

	require.NoError(t, Install(first))
	assert.Same(t, first, Active())

	err = Install(second)
	assert.ErrorIs(t, err, ErrDuplicateInitialization)
	assert.Same(t, second, Active(), "second registry should take over")

	last := hook.LastEntry()
	require.NotNil(t, last)
	assert.Equal(t, logrus.WarnLevel, last.Level)

	Uninstall()
	assert.Nil(t, Active())
}
