package singleton

import (
	"errors"
	"testing"
)

func TestSlotInstallEmpty(t *testing.T) {
	var s Slot[string]

	if _, ok := s.Get(); ok {
		t.Fatal("zero slot should be empty")
	}

	if err := s.Install("first"); err != nil {
		t.Fatalf("Install on empty slot returned %v", err)
	}

	v, ok := s.Get()
	if !ok || v != "first" {
		t.Errorf("expected first, got %q (ok=%v)", v, ok)
	}
}

func TestSlotInstallReplaces(t *testing.T) {
	var s Slot[int]
	_ = s.Install(1)

	err := s.Install(2)
	if !errors.Is(err, ErrOccupied) {
		t.Fatalf("expected ErrOccupied, got %v", err)
	}

	v, _ := s.Get()
	if v != 2 {
		t.Errorf("second install should take over, got %d", v)
	}
	if s.Replacements() != 1 {
		t.Errorf("expected 1 replacement, got %d", s.Replacements())
	}
}

func TestSlotClearIf(t *testing.T) {
	var s Slot[int]
	_ = s.Install(7)

	if s.ClearIf(func(v int) bool { return v == 8 }) {
		t.Error("ClearIf should not clear a non-matching value")
	}
	if !s.ClearIf(func(v int) bool { return v == 7 }) {
		t.Error("ClearIf should clear a matching value")
	}
	if _, ok := s.Get(); ok {
		t.Error("slot should be empty after ClearIf")
	}

	// Installing after a clear is not a replacement.
	if err := s.Install(9); err != nil {
		t.Errorf("Install after clear returned %v", err)
	}
}

func TestSlotClear(t *testing.T) {
	var s Slot[*int]
	n := 3
	_ = s.Install(&n)
	s.Clear()

	v, ok := s.Get()
	if ok || v != nil {
		t.Errorf("expected empty slot after Clear, got %v (ok=%v)", v, ok)
	}
}
