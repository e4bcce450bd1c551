package model

// Building type tags recognized by the buildings category.
const (
	TypeBuilding  = "building"
	TypeStructure = "structure"
)

// Building models a building or an equivalent single-degree-of-freedom
// structure (TypeStructure).
//
// A building may be linked to its foundation; the link is kept
// bidirectional by construction (see SetFoundation).
type Building struct {
	Base
	typ string

	FloorLength        *float64  // [m]
	FloorWidth         *float64  // [m]
	InterstoreyHeights []float64 // [m], ground storey first

	// SDOF parameters, for TypeStructure only.
	HEff      *float64 // effective height [m]
	MassEff   *float64 // effective mass [kg]
	TFixed    *float64 // fixed-base period [s]
	MassRatio *float64

	foundation *Foundation
}

// NewBuilding creates a building.
func NewBuilding() *Building { return &Building{typ: TypeBuilding} }

// NewStructure creates an equivalent SDOF structure.
func NewStructure() *Building { return &Building{typ: TypeStructure} }

// Category returns the buildings document partition.
func (b *Building) Category() string { return CategoryBuildings }

// Type returns the building type tag.
func (b *Building) Type() string { return b.typ }

// NStoreys returns the number of storeys.
func (b *Building) NStoreys() int { return len(b.InterstoreyHeights) }

// FloorArea returns the floor plan area [m2], or nil when incomplete.
func (b *Building) FloorArea() *float64 {
	if b.FloorLength == nil || b.FloorWidth == nil {
		return nil
	}
	a := *b.FloorLength * *b.FloorWidth
	return &a
}

// MaxHeight returns the total height as the sum of interstorey heights.
func (b *Building) MaxHeight() float64 {
	total := 0.0
	for _, h := range b.InterstoreyHeights {
		total += h
	}
	return total
}

// Foundation returns the linked foundation, or nil.
func (b *Building) Foundation() *Foundation { return b.foundation }

// SetFoundation links the building to a foundation, keeping both sides of
// the association consistent: the foundation's building is updated in the
// same call. Passing nil clears both sides.
func (b *Building) SetFoundation(f *Foundation) {
	if b.foundation == f {
		return
	}
	if b.foundation != nil {
		old := b.foundation
		b.foundation = nil
		if old.building == b {
			old.building = nil
		}
	}
	b.foundation = f
	if f != nil && f.building != b {
		f.SetBuilding(b)
	}
}
