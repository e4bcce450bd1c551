package model

// Foundation type tags recognized by the foundations category.
const (
	TypeFoundation     = "foundation"
	TypeRaftFoundation = "raft"
	TypePadFoundation  = "pad"
)

// Foundation models a shallow foundation.
//
// The pad-specific fields are only meaningful for TypePadFoundation. A
// foundation may be linked to the building it supports; the link is kept
// bidirectional by construction (see SetBuilding).
type Foundation struct {
	Base
	typ string

	Width   *float64 // [m]
	Length  *float64 // [m]
	Depth   *float64 // embedment depth [m]
	Height  *float64 // [m]
	Density *float64 // [kg/m3]

	// Pad layout, for TypePadFoundation only.
	NPadsL    *int
	NPadsW    *int
	PadLength *float64
	PadWidth  *float64

	// Coords locates the foundation centroid, serialized inline.
	Coords *Coords

	building *Building
}

// NewFoundation creates a base foundation.
func NewFoundation() *Foundation { return &Foundation{typ: TypeFoundation} }

// NewRaftFoundation creates a raft foundation.
func NewRaftFoundation() *Foundation { return &Foundation{typ: TypeRaftFoundation} }

// NewPadFoundation creates a pad foundation.
func NewPadFoundation() *Foundation { return &Foundation{typ: TypePadFoundation} }

// Category returns the foundations document partition.
func (f *Foundation) Category() string { return CategoryFoundations }

// Type returns the foundation type tag.
func (f *Foundation) Type() string { return f.typ }

// Building returns the linked building, or nil.
func (f *Foundation) Building() *Building { return f.building }

// SetBuilding links the foundation to a building, keeping both sides of
// the association consistent: the building's foundation is updated in the
// same call. Passing nil clears both sides.
func (f *Foundation) SetBuilding(b *Building) {
	if f.building == b {
		return
	}
	if f.building != nil {
		old := f.building
		f.building = nil
		if old.foundation == f {
			old.foundation = nil
		}
	}
	f.building = b
	if b != nil && b.foundation != f {
		b.SetFoundation(f)
	}
}

// Area returns the plan area [m2], or nil when width or length is unset.
func (f *Foundation) Area() *float64 {
	if f.Width == nil || f.Length == nil {
		return nil
	}
	a := *f.Width * *f.Length
	return &a
}

// PadPositionL returns the distance to the center of the i-th pad along
// the length axis, with pads spaced evenly and half a spacing at each end.
// Returns nil when the pad layout is incomplete.
func (f *Foundation) PadPositionL(i int) *float64 {
	if f.typ != TypePadFoundation || f.NPadsL == nil || f.Length == nil || *f.NPadsL == 0 {
		return nil
	}
	spacing := *f.Length / float64(*f.NPadsL)
	pos := spacing * (float64(i) + 0.5)
	return &pos
}
