// Package schema declares, per object category, which attributes are
// serialized and how.
//
// A Descriptor is a static field table: each Field names an attribute and
// classifies it as a scalar, an inline nested value, a reference to an
// object in another category, or a layer list (depth plus soil reference).
// The exporter and importer in the ecp package stay generic over all
// domain types by walking these tables instead of special-casing models.
//
// References are serialized as {"type": category, "id": id} tags, never as
// inline copies, so shared objects deduplicate. Construction is two-pass:
// Construct builds an object and defers its reference fields as Pending
// values; Resolve completes them once every object exists, which also
// handles cross-category cycles such as the building/foundation link.
package schema

import (
	"slices"
	"strconv"

	"github.com/terradyn/geomodel/pkg/errors"
	"github.com/terradyn/geomodel/pkg/model"
)

// Kind classifies how a field is serialized.
type Kind int

const (
	// KindScalar is a by-value attribute (number, string, bool, or a
	// plain list of numbers).
	KindScalar Kind = iota
	// KindNested is a value object serialized inline (e.g. coords),
	// because it has no independent identity or category.
	KindNested
	// KindReference is a pointer to a registered object, serialized as
	// a {"type", "id"} tag.
	KindReference
	// KindLayers is the soil profile layer list: an ordered sequence of
	// depth plus soil reference entries.
	KindLayers
)

// Field declares one serializable attribute of a category.
type Field struct {
	Name     string
	Kind     Kind
	Required bool
	Ref      string // target category, for KindReference and KindLayers
	Default  any    // applied by Construct when the key is absent

	// Get reads the live value. It returns nil when the attribute is
	// unset. For KindReference it returns a model.Object; for KindLayers
	// a []model.Layer; for KindNested a map[string]any.
	Get func(model.Object) any

	// Set writes a decoded value. For KindReference it receives the
	// resolved model.Object; for KindLayers the resolved []model.Layer.
	Set func(model.Object, any) error
}

// Descriptor is the serialization contract of one category.
type Descriptor struct {
	// Category is the document partition this descriptor serves.
	Category string
	// BaseType is the type tag used when falling back to the minimal
	// base representation of the category.
	BaseType string
	// New builds an empty object for a type tag, reporting whether the
	// tag is recognized.
	New func(typ string) (model.Object, bool)
	// Fields is the attribute table, applied in order.
	Fields []Field
}

// Set is an ordered collection of descriptors. The registration order is
// the dependency order used by loaders when iterating categories.
type Set struct {
	byCategory map[string]*Descriptor
	order      []string
}

// NewSet creates a descriptor set with the given descriptors registered
// in order.
func NewSet(descs ...*Descriptor) *Set {
	s := &Set{byCategory: make(map[string]*Descriptor)}
	for _, d := range descs {
		if err := s.Register(d); err != nil {
			panic(err)
		}
	}
	return s
}

// Register adds a descriptor for a new category.
// Fails with INVALID_INPUT when the category is already registered.
func (s *Set) Register(d *Descriptor) error {
	if d.Category == "" {
		return errors.New(errors.ErrCodeInvalidInput, "descriptor category must not be empty")
	}
	if _, exists := s.byCategory[d.Category]; exists {
		return errors.New(errors.ErrCodeInvalidInput, "descriptor for category %s already registered", d.Category)
	}
	s.byCategory[d.Category] = d
	s.order = append(s.order, d.Category)
	return nil
}

// Lookup returns the descriptor for a category, reporting whether it exists.
func (s *Set) Lookup(category string) (*Descriptor, bool) {
	d, ok := s.byCategory[category]
	return d, ok
}

// Categories returns the category names in registration (dependency) order.
func (s *Set) Categories() []string { return slices.Clone(s.order) }

// Default is the descriptor set for the built-in categories, in dependency
// order: soils before soil profiles, foundations before buildings.
var Default = NewSet(
	soilDescriptor(),
	soilProfileDescriptor(),
	foundationDescriptor(),
	buildingDescriptor(),
)

// RefTag is the document encoding of a reference: the target category and id.
type RefTag struct {
	Category string
	ID       int
}

// AsMap returns the document representation of the tag.
func (t RefTag) AsMap() map[string]any {
	return map[string]any{"type": t.Category, "id": t.ID}
}

// ParseRefTag reads a {"type", "id"} tag from a decoded document value.
func ParseRefTag(v any) (RefTag, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return RefTag{}, errors.New(errors.ErrCodeInvalidDocument, "reference must be a {type, id} mapping, got %T", v)
	}
	cat, ok := m["type"].(string)
	if !ok || cat == "" {
		return RefTag{}, errors.New(errors.ErrCodeInvalidDocument, "reference missing category tag")
	}
	id, err := ParseID(m["id"])
	if err != nil {
		return RefTag{}, err
	}
	return RefTag{Category: cat, ID: id}, nil
}

// ParseID reads an object id from a decoded document value. Ids appear as
// JSON numbers or decimal strings depending on the writer.
func ParseID(v any) (int, error) {
	switch id := v.(type) {
	case float64:
		n := int(id)
		if float64(n) != id || n <= 0 {
			return 0, errors.New(errors.ErrCodeInvalidDocument, "id must be a positive integer, got %v", id)
		}
		return n, nil
	case int:
		if id <= 0 {
			return 0, errors.New(errors.ErrCodeInvalidDocument, "id must be a positive integer, got %d", id)
		}
		return id, nil
	case string:
		n, err := strconv.Atoi(id)
		if err != nil || n <= 0 {
			return 0, errors.New(errors.ErrCodeInvalidDocument, "id must be a positive decimal integer, got %q", id)
		}
		return n, nil
	default:
		return 0, errors.New(errors.ErrCodeInvalidDocument, "id must be an integer or decimal string, got %T", v)
	}
}
