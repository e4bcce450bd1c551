package model

import (
	"slices"

	"github.com/terradyn/geomodel/pkg/errors"
)

// TypeSoilProfile is the type tag for soil profiles.
const TypeSoilProfile = "soil_profile"

// Layer pairs a depth from the surface with the soil found at that depth.
// The depth refers to the top of the layer.
type Layer struct {
	Depth float64
	Soil  *Soil
}

// SoilProfile models a column of soil layers ordered by depth.
//
// Layers are kept in strictly increasing depth order. When a total height
// is set, no layer may sit at or beyond it. The profile references its
// soils; it does not own them, so one soil may be shared by several layers
// or profiles.
type SoilProfile struct {
	Base

	GWL             *float64 // ground water level, depth from surface [m]
	UnitWeightWater float64  // [N/m3]

	height *float64
	layers []Layer
}

// NewSoilProfile creates an empty profile with the default unit weight of water.
func NewSoilProfile() *SoilProfile {
	return &SoilProfile{UnitWeightWater: WaterUnitWeight}
}

// Category returns the soil_profiles document partition.
func (p *SoilProfile) Category() string { return CategorySoilProfiles }

// Type returns the soil profile type tag.
func (p *SoilProfile) Type() string { return TypeSoilProfile }

// Height returns the total profile height [m], or nil when unset.
func (p *SoilProfile) Height() *float64 { return p.height }

// SetHeight assigns the total profile height.
// The height must exceed the depth of the deepest layer.
func (p *SoilProfile) SetHeight(v float64) error {
	if v <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "profile height must be positive, got %.4f", v)
	}
	if n := len(p.layers); n > 0 && p.layers[n-1].Depth >= v {
		return errors.New(errors.ErrCodeInvalidDepth, "profile height %.4f does not exceed deepest layer at %.4f", v, p.layers[n-1].Depth)
	}
	p.height = &v
	return nil
}

// checkDepth validates a candidate layer depth, ignoring the layer at
// skip (pass -1 to consider all layers).
func (p *SoilProfile) checkDepth(depth float64, skip int) error {
	if depth < 0 {
		return errors.New(errors.ErrCodeInvalidDepth, "layer depth must not be negative, got %.4f", depth)
	}
	if p.height != nil && depth >= *p.height {
		return errors.New(errors.ErrCodeInvalidDepth, "layer depth %.4f at or beyond profile height %.4f", depth, *p.height)
	}
	for i, l := range p.layers {
		if i != skip && l.Depth == depth {
			return errors.New(errors.ErrCodeInvalidDepth, "layer already exists at depth %.4f", depth)
		}
	}
	return nil
}

// AddLayer inserts a soil at the given depth, keeping layers sorted.
// Fails with INVALID_DEPTH when the depth is negative, collides with an
// existing layer, or sits at or beyond the profile height.
func (p *SoilProfile) AddLayer(depth float64, soil *Soil) error {
	if soil == nil {
		return errors.New(errors.ErrCodeInvalidInput, "layer soil must not be nil")
	}
	if err := p.checkDepth(depth, -1); err != nil {
		return err
	}
	p.layers = append(p.layers, Layer{Depth: depth, Soil: soil})
	p.sortLayers()
	return nil
}

// RemoveLayer removes the layer at the given depth.
// Fails with NOT_FOUND when no layer sits at that depth.
func (p *SoilProfile) RemoveLayer(depth float64) error {
	for i, l := range p.layers {
		if l.Depth == depth {
			p.layers = slices.Delete(p.layers, i, i+1)
			return nil
		}
	}
	return errors.New(errors.ErrCodeNotFound, "no layer at depth %.4f", depth)
}

// MoveLayer repositions the layer at index to a new depth.
//
// Moving a layer to its current depth is a no-op: the sequence is left
// unchanged and the layer is never removed. An invalid new depth is
// rejected before any mutation.
func (p *SoilProfile) MoveLayer(index int, newDepth float64) error {
	if index < 0 || index >= len(p.layers) {
		return errors.New(errors.ErrCodeInvalidInput, "layer index %d out of range (%d layers)", index, len(p.layers))
	}
	if p.layers[index].Depth == newDepth {
		return nil
	}
	if err := p.checkDepth(newDepth, index); err != nil {
		return err
	}
	p.layers[index].Depth = newDepth
	p.sortLayers()
	return nil
}

func (p *SoilProfile) sortLayers() {
	slices.SortStableFunc(p.layers, func(a, b Layer) int {
		switch {
		case a.Depth < b.Depth:
			return -1
		case a.Depth > b.Depth:
			return 1
		}
		return 0
	})
}

// Layers returns a copy of the layer sequence in depth order.
func (p *SoilProfile) Layers() []Layer { return slices.Clone(p.layers) }

// NLayers returns the number of layers.
func (p *SoilProfile) NLayers() int { return len(p.layers) }

// Layer returns the soil of the layer at index.
func (p *SoilProfile) Layer(index int) *Soil { return p.layers[index].Soil }

// LayerDepth returns the depth of the layer at index.
func (p *SoilProfile) LayerDepth(index int) float64 { return p.layers[index].Depth }

// Depths returns the ordered layer depths.
func (p *SoilProfile) Depths() []float64 {
	depths := make([]float64, len(p.layers))
	for i, l := range p.layers {
		depths[i] = l.Depth
	}
	return depths
}

// VerticalTotalStress returns the vertical total stress [Pa] at depth z.
// Fails with INVALID_INPUT when a contributing layer has no unit weight.
func (p *SoilProfile) VerticalTotalStress(z float64) (float64, error) {
	total := 0.0
	for i, l := range p.layers {
		if z <= l.Depth {
			break
		}
		bottom := z
		if i < len(p.layers)-1 && p.layers[i+1].Depth < z {
			bottom = p.layers[i+1].Depth
		}
		w := l.Soil.UnitWeight()
		if w == nil {
			return 0, errors.New(errors.ErrCodeInvalidInput, "unit weight unset for layer at depth %.4f", l.Depth)
		}
		total += (bottom - l.Depth) * *w
	}
	return total, nil
}

// VerticalEffectiveStress returns the vertical effective stress [Pa] at
// depth z, subtracting pore pressure below the ground water level. With no
// ground water level set, the effective stress equals the total stress.
func (p *SoilProfile) VerticalEffectiveStress(z float64) (float64, error) {
	total, err := p.VerticalTotalStress(z)
	if err != nil {
		return 0, err
	}
	if p.GWL == nil {
		return total, nil
	}
	head := z - *p.GWL
	if head < 0 {
		head = 0
	}
	return total - head*p.UnitWeightWater, nil
}
