package schema

import (
	"github.com/terradyn/geomodel/pkg/errors"
	"github.com/terradyn/geomodel/pkg/model"
)

// DescribeOptions control how unset attributes are emitted.
type DescribeOptions struct {
	// ExportNone emits unset attributes as explicit nulls. When false,
	// unset attributes are omitted entirely to keep documents compact.
	ExportNone bool
}

// Describe reads the declared attributes of a live object into a document
// attribute mapping. Reference attributes are rewritten as {"type", "id"}
// tags; every referenced object must already have an id assigned, else
// Describe fails with MISSING_ID. Extras are carried through unchanged.
func (d *Descriptor) Describe(obj model.Object, opts DescribeOptions) (map[string]any, error) {
	attrs := map[string]any{
		"id":   obj.ID(),
		"type": obj.Type(),
	}
	if name := obj.Name(); name != "" {
		attrs["name"] = name
	} else if opts.ExportNone {
		attrs["name"] = nil
	}

	for i := range d.Fields {
		f := &d.Fields[i]
		v := f.Get(obj)
		if v == nil {
			if opts.ExportNone {
				attrs[f.Name] = nil
			}
			continue
		}
		switch f.Kind {
		case KindScalar, KindNested:
			attrs[f.Name] = v
		case KindReference:
			target, ok := v.(model.Object)
			if !ok {
				return nil, errors.New(errors.ErrCodeInternal, "field %s.%s did not yield an object", d.Category, f.Name)
			}
			tag, err := refTagFor(target)
			if err != nil {
				return nil, err
			}
			attrs[f.Name] = tag.AsMap()
		case KindLayers:
			layers, ok := v.([]model.Layer)
			if !ok {
				return nil, errors.New(errors.ErrCodeInternal, "field %s.%s did not yield layers", d.Category, f.Name)
			}
			entries := make([]any, len(layers))
			for j, l := range layers {
				tag, err := refTagFor(l.Soil)
				if err != nil {
					return nil, err
				}
				entries[j] = map[string]any{"depth": l.Depth, "soil": tag.AsMap()}
			}
			attrs[f.Name] = entries
		}
	}

	for k, v := range obj.Extras() {
		if _, taken := attrs[k]; !taken {
			attrs[k] = v
		}
	}
	return attrs, nil
}

func refTagFor(target model.Object) (RefTag, error) {
	if target.ID() == 0 {
		return RefTag{}, errors.New(errors.ErrCodeMissingID, "referenced %s object has no id assigned", target.Category())
	}
	return RefTag{Category: target.Category(), ID: target.ID()}, nil
}

// References returns the objects a live object points at, including the
// soils of its layer list. Used by exporters to discover the transitive
// object graph.
func (d *Descriptor) References(obj model.Object) []model.Object {
	var refs []model.Object
	for i := range d.Fields {
		f := &d.Fields[i]
		switch f.Kind {
		case KindReference:
			if v := f.Get(obj); v != nil {
				refs = append(refs, v.(model.Object))
			}
		case KindLayers:
			if v := f.Get(obj); v != nil {
				for _, l := range v.([]model.Layer) {
					refs = append(refs, l.Soil)
				}
			}
		}
	}
	return refs
}

// Pending is a reference attribute recorded during construction, to be
// completed by Resolve once every object in the document exists.
type Pending struct {
	Obj   model.Object
	Field *Field
	Raw   any
}

// Resolver looks up an already constructed object by category and id.
type Resolver func(category string, id int) (model.Object, error)

// Construct builds a new object of the given type tag from a flat
// attribute mapping.
//
// Declared defaults fill in missing keys; a required attribute that is
// absent with no default fails with MISSING_REQUIRED_FIELD. Reference and
// layer attributes are not resolved here: they are returned as Pending
// values for a second pass. Unknown keys are stored as opaque extras so
// newer-writer documents survive older readers.
//
// When the type tag is unrecognized and fallback is true, the category's
// base type is constructed instead; with fallback false construction
// fails with UNKNOWN_TYPE.
func (d *Descriptor) Construct(typ string, attrs map[string]any, fallback bool) (model.Object, []Pending, error) {
	if typ == "" {
		typ = d.BaseType
	}
	obj, ok := d.New(typ)
	if !ok {
		if !fallback {
			return nil, nil, errors.New(errors.ErrCodeUnknownType, "unknown type %q in category %s", typ, d.Category)
		}
		obj, ok = d.New(d.BaseType)
		if !ok {
			return nil, nil, errors.New(errors.ErrCodeInternal, "category %s cannot construct its base type %q", d.Category, d.BaseType)
		}
	}

	if name, ok := attrs["name"].(string); ok && name != "" {
		obj.SetName(name)
	}

	known := map[string]bool{"id": true, "type": true, "name": true}
	var pending []Pending
	for i := range d.Fields {
		f := &d.Fields[i]
		known[f.Name] = true

		v, present := attrs[f.Name]
		if !present || v == nil {
			if f.Default != nil {
				if err := f.Set(obj, f.Default); err != nil {
					return nil, nil, errors.Wrap(errors.ErrCodeInternal, err, "apply default for %s.%s", d.Category, f.Name)
				}
				continue
			}
			if f.Required {
				return nil, nil, errors.New(errors.ErrCodeMissingRequiredField, "required field %s missing for category %s", f.Name, d.Category)
			}
			continue
		}

		switch f.Kind {
		case KindScalar, KindNested:
			if err := f.Set(obj, v); err != nil {
				return nil, nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "field %s.%s", d.Category, f.Name)
			}
		case KindReference, KindLayers:
			pending = append(pending, Pending{Obj: obj, Field: f, Raw: v})
		}
	}

	for k, v := range attrs {
		if !known[k] {
			obj.SetExtra(k, v)
		}
	}
	return obj, pending, nil
}

// Resolve completes a deferred reference attribute by looking up its
// targets and writing the live objects onto the owner.
func (p Pending) Resolve(resolve Resolver) error {
	switch p.Field.Kind {
	case KindReference:
		tag, err := ParseRefTag(p.Raw)
		if err != nil {
			return err
		}
		if p.Field.Ref != "" && tag.Category != p.Field.Ref {
			return errors.New(errors.ErrCodeInvalidDocument, "field %s references category %s, expected %s", p.Field.Name, tag.Category, p.Field.Ref)
		}
		target, err := resolve(tag.Category, tag.ID)
		if err != nil {
			return err
		}
		return p.Field.Set(p.Obj, target)
	case KindLayers:
		entries, ok := p.Raw.([]any)
		if !ok {
			return errors.New(errors.ErrCodeInvalidDocument, "field %s must be a list, got %T", p.Field.Name, p.Raw)
		}
		layers := make([]model.Layer, 0, len(entries))
		for _, e := range entries {
			m, ok := e.(map[string]any)
			if !ok {
				return errors.New(errors.ErrCodeInvalidDocument, "layer entry must be a mapping, got %T", e)
			}
			depth, ok := toFloat(m["depth"])
			if !ok {
				return errors.New(errors.ErrCodeInvalidDocument, "layer entry missing depth")
			}
			tag, err := layerSoilTag(m, p.Field.Ref)
			if err != nil {
				return err
			}
			target, err := resolve(tag.Category, tag.ID)
			if err != nil {
				return err
			}
			soil, ok := target.(*model.Soil)
			if !ok {
				return errors.New(errors.ErrCodeInvalidDocument, "layer reference resolved to %s, expected soil", target.Category())
			}
			layers = append(layers, model.Layer{Depth: depth, Soil: soil})
		}
		return p.Field.Set(p.Obj, layers)
	default:
		return errors.New(errors.ErrCodeInternal, "field %s is not a deferred kind", p.Field.Name)
	}
}

// layerSoilTag reads a layer's soil reference. The canonical form is a
// nested {"type", "id"} tag under "soil"; the legacy flat "soil_id" key is
// accepted for documents written by older tooling.
func layerSoilTag(m map[string]any, refCategory string) (RefTag, error) {
	if v, ok := m["soil"]; ok && v != nil {
		return ParseRefTag(v)
	}
	if v, ok := m["soil_id"]; ok && v != nil {
		id, err := ParseID(v)
		if err != nil {
			return RefTag{}, err
		}
		if refCategory == "" {
			refCategory = model.CategorySoils
		}
		return RefTag{Category: refCategory, ID: id}, nil
	}
	return RefTag{}, errors.New(errors.ErrCodeInvalidDocument, "layer entry missing soil reference")
}
