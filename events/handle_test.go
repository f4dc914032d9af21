package events

import (
	"testing"

	"github.com/google/uuid"
)

func TestHandleForPathDeterministic(t *testing.T) {
	a := HandleForPath("event:/Music/Main")
	b := HandleForPath("event:/Music/Main")
	c := HandleForPath("event:/Music/Boss")

	if a != b {
		t.Errorf("same path produced different handles: %v vs %v", a, b)
	}
	if a.ID == c.ID {
		t.Error("different paths produced the same ID")
	}
	if a.IsZero() {
		t.Error("derived handle should not be zero")
	}
}

func TestNewHandlePathAndGUID(t *testing.T) {
	id := uuid.New()
	h, err := NewHandle(" event:/UI/Click ", id.String())
	if err != nil {
		t.Fatalf("NewHandle: %v", err)
	}
	if h.ID != id {
		t.Errorf("expected explicit GUID %v, got %v", id, h.ID)
	}
	if h.Path != "event:/UI/Click" {
		t.Errorf("expected trimmed path, got %q", h.Path)
	}
}

func TestEventHandleString(t *testing.T) {
	h := HandleForPath("event:/Props/DoorOpen")
	if h.String() != "event:/Props/DoorOpen" {
		t.Errorf("unexpected String(): %s", h.String())
	}

	id := uuid.New()
	g := EventHandle{ID: id}
	if g.String() != "{"+id.String()+"}" {
		t.Errorf("unexpected String() for GUID-only handle: %s", g.String())
	}

	if !(EventHandle{}).IsZero() {
		t.Error("zero handle should report IsZero")
	}
}

func TestCatalogRequiredSlots(t *testing.T) {
	req := RequiredSlots()
	if len(req) != 2 || req[0] != AmbientSound || req[1] != AllMusic {
		t.Errorf("unexpected required slots: %v", req)
	}

	s, ok := LookupSlot(UIGetCoin)
	if !ok || s.Section != SectionUI || s.Required {
		t.Errorf("unexpected slot for %s: %+v (ok=%v)", UIGetCoin, s, ok)
	}

	if _, ok := LookupSlot("nope"); ok {
		t.Error("unknown slot should not be found")
	}

	cat := Catalog()
	cat[0].Name = "mutated"
	if Catalog()[0].Name != AmbientSound {
		t.Error("Catalog should return a copy")
	}
}
