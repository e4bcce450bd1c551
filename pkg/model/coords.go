package model

import "github.com/terradyn/geomodel/pkg/errors"

// Coords is a point in 3D space attached to a model object.
//
// Coords has no independent identity or category, so it is serialized
// inline as a nested {x, y, z} mapping rather than by reference.
type Coords struct {
	X float64
	Y float64
	Z float64
}

// AsMap returns the inline document representation of the point.
func (c *Coords) AsMap() map[string]any {
	return map[string]any{"x": c.X, "y": c.Y, "z": c.Z}
}

// CoordsFromMap rebuilds a point from its inline document representation.
// Missing axes default to 0; non-numeric axes are rejected.
func CoordsFromMap(m map[string]any) (*Coords, error) {
	c := &Coords{}
	axes := []struct {
		key string
		dst *float64
	}{
		{"x", &c.X},
		{"y", &c.Y},
		{"z", &c.Z},
	}
	for _, a := range axes {
		v, ok := m[a.key]
		if !ok || v == nil {
			continue
		}
		f, ok := v.(float64)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidInput, "coords %s must be a number, got %T", a.key, v)
		}
		*a.dst = f
	}
	return c, nil
}
