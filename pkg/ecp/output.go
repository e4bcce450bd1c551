package ecp

import (
	"strconv"

	"github.com/terradyn/geomodel/pkg/errors"
	"github.com/terradyn/geomodel/pkg/model"
	"github.com/terradyn/geomodel/pkg/registry"
	"github.com/terradyn/geomodel/pkg/schema"
)

// ExportOptions control document generation.
type ExportOptions struct {
	// ExportNone writes unset optional attributes as explicit nulls.
	// When false they are omitted, which keeps documents compact.
	ExportNone bool
}

// Output accumulates root objects and their transitively referenced
// objects, then produces a Document.
//
// Adding an object walks its references: every reachable object is
// registered exactly once, so a soil shared by several profiles appears
// once in the document and cycles (such as the building/foundation
// two-way link) terminate. Each Output owns a fresh registry; nothing is
// shared across exports.
type Output struct {
	Name     string
	Units    string
	Comments string
	DOI      string

	// Schemas defaults to schema.Default when nil.
	Schemas *schema.Set

	reg *registry.Registry
	raw map[string]map[string]Attrs
}

// NewOutput creates an empty output builder using the default schemas.
func NewOutput() *Output {
	return &Output{Schemas: schema.Default, reg: registry.New()}
}

func (o *Output) schemas() *schema.Set {
	if o.Schemas != nil {
		return o.Schemas
	}
	return schema.Default
}

// Add registers a root object and, transitively, every object it
// references. Fails with MISSING_ID when any discovered object has no id
// assigned, with DUPLICATE_ID when a different object already claims the
// same (category, id), and with UNKNOWN_CATEGORY when no descriptor
// serves the object's category. On failure the output may hold part of
// the walk; discard it rather than finalizing.
func (o *Output) Add(obj model.Object) error {
	if o.reg == nil {
		o.reg = registry.New()
	}
	work := []model.Object{obj}
	for len(work) > 0 {
		cur := work[len(work)-1]
		work = work[:len(work)-1]

		if cur.ID() == 0 {
			return errors.New(errors.ErrCodeMissingID, "id must be set on %s object before adding to output", cur.Category())
		}
		if existing, ok := o.reg.Get(cur.Category(), cur.ID()); ok {
			if existing == cur {
				continue
			}
			return errors.New(errors.ErrCodeDuplicateID, "id %d already used by another object in category %s", cur.ID(), cur.Category())
		}

		if custom, ok := cur.(*model.Custom); ok {
			if metaKeys[custom.Category()] {
				return errors.New(errors.ErrCodeInvalidInput, "category %q collides with a reserved document key", custom.Category())
			}
			if err := o.reg.Register(custom.Category(), custom.ID(), custom); err != nil {
				return err
			}
			continue
		}

		desc, ok := o.schemas().Lookup(cur.Category())
		if !ok {
			return errors.New(errors.ErrCodeUnknownCategory, "no descriptor for category %s", cur.Category())
		}
		if err := o.reg.Register(cur.Category(), cur.ID(), cur); err != nil {
			return err
		}
		work = append(work, desc.References(cur)...)
	}
	return nil
}

// AddRaw attaches an arbitrary serializable attribute block that does not
// conform to a registered category. The block is emitted verbatim under
// the given category and id.
func (o *Output) AddRaw(category string, id int, attrs Attrs) error {
	if category == "" || metaKeys[category] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid raw category %q", category)
	}
	if id <= 0 {
		return errors.New(errors.ErrCodeMissingID, "raw entry for category %s needs a positive id", category)
	}
	if o.raw == nil {
		o.raw = make(map[string]map[string]Attrs)
	}
	if o.raw[category] == nil {
		o.raw[category] = make(map[string]Attrs)
	}
	o.raw[category][strconv.Itoa(id)] = attrs
	return nil
}

// Document finalizes the output into a fresh Document. The builder is
// left untouched; calling Document again yields an equivalent result.
func (o *Output) Document(opts ExportOptions) (*Document, error) {
	doc := &Document{
		Name:     o.Name,
		Units:    o.Units,
		Comments: o.Comments,
		DOI:      o.DOI,
		Version:  FormatVersion,
		Models:   make(map[string]map[string]Attrs),
	}
	if o.reg != nil {
		for _, cat := range o.reg.Categories() {
			block := make(map[string]Attrs)
			for _, id := range o.reg.IDs(cat) {
				obj, _ := o.reg.Get(cat, id)
				attrs, err := o.describe(obj, opts)
				if err != nil {
					return nil, err
				}
				block[strconv.Itoa(id)] = attrs
			}
			doc.Models[cat] = block
		}
	}
	for cat, byID := range o.raw {
		block := doc.Models[cat]
		if block == nil {
			block = make(map[string]Attrs)
			doc.Models[cat] = block
		}
		for id, attrs := range byID {
			if _, taken := block[id]; taken {
				return nil, errors.New(errors.ErrCodeDuplicateID, "raw entry %s/%s collides with a registered object", cat, id)
			}
			block[id] = attrs
		}
	}
	return doc, nil
}

func (o *Output) describe(obj model.Object, opts ExportOptions) (Attrs, error) {
	if custom, ok := obj.(*model.Custom); ok {
		attrs := Attrs{"id": custom.ID(), "type": custom.Type()}
		if name := custom.Name(); name != "" {
			attrs["name"] = name
		}
		for k, v := range custom.Extras() {
			if _, taken := attrs[k]; !taken {
				attrs[k] = v
			}
		}
		return attrs, nil
	}
	desc, _ := o.schemas().Lookup(obj.Category())
	return desc.Describe(obj, schema.DescribeOptions{ExportNone: opts.ExportNone})
}
