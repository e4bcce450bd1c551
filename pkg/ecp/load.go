package ecp

import (
	"io"
	"os"
	"slices"

	charmlog "github.com/charmbracelet/log"

	"github.com/terradyn/geomodel/pkg/errors"
	"github.com/terradyn/geomodel/pkg/model"
	"github.com/terradyn/geomodel/pkg/registry"
	"github.com/terradyn/geomodel/pkg/schema"
)

// Objects is the result of an import: category name to id to live object.
type Objects map[string]map[int]model.Object

// LoadOptions control document import.
type LoadOptions struct {
	// Verbose raises diagnostic output volume. It only affects logging,
	// never the resulting object graph or error behavior.
	Verbose int

	// FallbackToBase builds a category's minimal base representation
	// when an entry's type tag is unrecognized, and generic objects for
	// whole categories the schema set does not know, instead of failing.
	FallbackToBase bool

	// Schemas defaults to schema.Default when nil.
	Schemas *schema.Set

	// Logger receives diagnostics. When nil, a stderr logger is created
	// for Verbose > 0 and a discard logger otherwise.
	Logger *charmlog.Logger
}

func (o LoadOptions) schemas() *schema.Set {
	if o.Schemas != nil {
		return o.Schemas
	}
	return schema.Default
}

func (o LoadOptions) logger() *charmlog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	if o.Verbose > 0 {
		return charmlog.NewWithOptions(os.Stderr, charmlog.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           charmlog.DebugLevel,
		})
	}
	return charmlog.New(io.Discard)
}

// Import reconstructs the full object graph of a document.
//
// Construction is two-pass: every object is built first with its
// reference attributes deferred, then all recorded references are
// resolved against the freshly populated registry. Cross-category cycles
// (a building and its foundation referencing each other) therefore
// resolve without recursion or ordering constraints.
//
// Import is all-or-nothing: on any error no partial graph is returned.
func Import(doc *Document, opts LoadOptions) (Objects, error) {
	logger := opts.logger()
	schemas := opts.schemas()
	reg := registry.New()
	var pending []schema.Pending

	for _, cat := range categoryOrder(doc, schemas) {
		block := doc.Models[cat]
		desc, known := schemas.Lookup(cat)
		if !known && !opts.FallbackToBase {
			return nil, errors.New(errors.ErrCodeUnknownCategory, "no descriptor for category %s", cat)
		}

		for _, key := range sortedKeys(block) {
			attrs := block[key]
			id, err := entryID(cat, key, attrs)
			if err != nil {
				return nil, err
			}
			typ, _ := attrs["type"].(string)

			var obj model.Object
			if known {
				var pend []schema.Pending
				obj, pend, err = desc.Construct(typ, attrs, opts.FallbackToBase)
				if err != nil {
					return nil, err
				}
				pending = append(pending, pend...)
			} else {
				obj = customFromAttrs(cat, typ, attrs)
			}
			obj.SetID(id)
			if err := reg.Register(cat, id, obj); err != nil {
				return nil, err
			}
			logger.Debug("constructed", "category", cat, "id", id, "type", obj.Type())
		}
	}

	resolver := schema.Resolver(reg.Lookup)
	for _, p := range pending {
		if err := p.Resolve(resolver); err != nil {
			return nil, err
		}
	}
	if len(pending) > 0 {
		logger.Debug("resolved references", "count", len(pending))
	}

	return reg.All(), nil
}

// categoryOrder yields the document's categories with schema-known ones
// first, in descriptor registration (dependency) order, then the rest
// sorted by name. The two-pass resolve makes correctness independent of
// this order; it only keeps construction deterministic.
func categoryOrder(doc *Document, schemas *schema.Set) []string {
	var order []string
	seen := make(map[string]bool)
	for _, cat := range schemas.Categories() {
		if _, ok := doc.Models[cat]; ok {
			order = append(order, cat)
			seen[cat] = true
		}
	}
	var rest []string
	for cat := range doc.Models {
		if !seen[cat] {
			rest = append(rest, cat)
		}
	}
	slices.Sort(rest)
	return append(order, rest...)
}

func sortedKeys(block map[string]Attrs) []string {
	keys := make([]string, 0, len(block))
	for k := range block {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// entryID derives the object id from the block key, cross-checked against
// an explicit id attribute when one is present.
func entryID(cat, key string, attrs Attrs) (int, error) {
	id, err := schema.ParseID(key)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidDocument, err, "category %s entry key", cat)
	}
	if v, ok := attrs["id"]; ok && v != nil {
		attrID, err := schema.ParseID(v)
		if err != nil {
			return 0, errors.Wrap(errors.ErrCodeInvalidDocument, err, "category %s entry %s", cat, key)
		}
		if attrID != id {
			return 0, errors.New(errors.ErrCodeInvalidDocument, "category %s entry %s declares mismatched id %d", cat, key, attrID)
		}
	}
	return id, nil
}

func customFromAttrs(cat, typ string, attrs Attrs) *model.Custom {
	obj := model.NewCustom(cat, typ)
	if name, ok := attrs["name"].(string); ok && name != "" {
		obj.SetName(name)
	}
	for k, v := range attrs {
		switch k {
		case "id", "type", "name":
		default:
			obj.SetExtra(k, v)
		}
	}
	return obj
}
