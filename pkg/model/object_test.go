package model

import (
	"testing"

	"github.com/terradyn/geomodel/pkg/errors"
)

func TestBaseIdentity(t *testing.T) {
	s := NewSoil()
	if s.HasID() {
		t.Error("fresh object reports an id")
	}
	s.SetID(5)
	if !s.HasID() || s.ID() != 5 {
		t.Errorf("ID() = %d, want 5", s.ID())
	}
	s.SetName("dense sand")
	if s.Name() != "dense sand" {
		t.Errorf("Name() = %q", s.Name())
	}
}

func TestExtras(t *testing.T) {
	s := NewSoil()
	if s.Extras() != nil {
		t.Error("fresh object has non-nil extras")
	}
	s.SetExtra("wave_speed", 180.0)
	if got := s.Extras()["wave_speed"]; got != 180.0 {
		t.Errorf("extras[wave_speed] = %v", got)
	}
}

func TestCustomDefaults(t *testing.T) {
	c := NewCustom("sensors", "")
	if c.Category() != "sensors" {
		t.Errorf("Category() = %q", c.Category())
	}
	if c.Type() != "custom_object" {
		t.Errorf("Type() = %q, want custom_object", c.Type())
	}
}

func TestCoordsRoundTrip(t *testing.T) {
	c := &Coords{X: 1, Y: 2, Z: 3}
	got, err := CoordsFromMap(c.AsMap())
	if err != nil {
		t.Fatalf("CoordsFromMap: %v", err)
	}
	if *got != *c {
		t.Errorf("round trip = %+v, want %+v", got, c)
	}
}

func TestCoordsFromMapDefaults(t *testing.T) {
	got, err := CoordsFromMap(map[string]any{"x": 4.0})
	if err != nil {
		t.Fatalf("CoordsFromMap: %v", err)
	}
	if got.X != 4 || got.Y != 0 || got.Z != 0 {
		t.Errorf("coords = %+v", got)
	}
}

func TestCoordsFromMapRejectsNonNumeric(t *testing.T) {
	_, err := CoordsFromMap(map[string]any{"x": "four"})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("CoordsFromMap = %v, want INVALID_INPUT", err)
	}
}
