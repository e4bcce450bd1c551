package model

// Category names used as the partition keys of an ecp document.
// Each registered object belongs to exactly one category, and ids are
// unique within a category.
const (
	CategorySoils        = "soils"
	CategorySoilProfiles = "soil_profiles"
	CategoryFoundations  = "foundations"
	CategoryBuildings    = "buildings"
)

// Object is the contract every serializable model object satisfies.
//
// An object is identified by its category and an integer id. The id is
// assigned by the caller before export; the zero id means "not assigned".
// Extras hold attribute keys read from a document that the running schema
// does not declare, preserved opaquely for forward compatibility.
type Object interface {
	// Category returns the document partition the object belongs to
	// (e.g. "soils", "foundations").
	Category() string

	// Type returns the model type tag within the category
	// (e.g. "soil", "raft", "structure").
	Type() string

	// ID returns the object id, or 0 if no id has been assigned.
	ID() int

	// SetID assigns the object id.
	SetID(id int)

	// Name returns the optional display name.
	Name() string

	// SetName assigns the display name.
	SetName(name string)

	// Extras returns undeclared attributes carried through a round-trip.
	// The returned map may be nil when no extras exist.
	Extras() map[string]any

	// SetExtra stores an undeclared attribute.
	SetExtra(key string, value any)
}

// Base carries the identity and extras shared by all model objects.
// Concrete types embed Base and add their Category/Type methods.
type Base struct {
	id     int
	name   string
	extras map[string]any
}

// ID returns the assigned id, or 0 when unset.
func (b *Base) ID() int { return b.id }

// SetID assigns the object id.
func (b *Base) SetID(id int) { b.id = id }

// HasID reports whether an id has been assigned.
func (b *Base) HasID() bool { return b.id != 0 }

// Name returns the display name.
func (b *Base) Name() string { return b.name }

// SetName assigns the display name.
func (b *Base) SetName(name string) { b.name = name }

// Extras returns the undeclared attributes, or nil when none exist.
func (b *Base) Extras() map[string]any { return b.extras }

// SetExtra stores an undeclared attribute under key.
func (b *Base) SetExtra(key string, value any) {
	if b.extras == nil {
		b.extras = make(map[string]any)
	}
	b.extras[key] = value
}

// Custom is a generic object for categories the running schema does not
// recognize. All of its attributes live in Extras. Loaders build Custom
// objects when fallback is enabled, so newer-writer documents survive a
// round-trip through an older reader.
type Custom struct {
	Base
	category string
	typ      string
}

// NewCustom creates a generic object for the given category and type tag.
// An empty typ defaults to "custom_object".
func NewCustom(category, typ string) *Custom {
	if typ == "" {
		typ = "custom_object"
	}
	return &Custom{category: category, typ: typ}
}

// Category returns the document partition the object was read from.
func (c *Custom) Category() string { return c.category }

// Type returns the declared type tag.
func (c *Custom) Type() string { return c.typ }
