// Package registry maps (category, id) pairs to live model objects and
// guards against id collisions within a category.
//
// Exports and imports each build a fresh registry; no state is shared
// between calls. A Registry is not safe for concurrent use.
package registry

import (
	"slices"

	"github.com/terradyn/geomodel/pkg/errors"
	"github.com/terradyn/geomodel/pkg/model"
)

// Registry indexes objects by category and id.
// The zero value is not usable; use New.
type Registry struct {
	objs map[string]map[int]model.Object
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{objs: make(map[string]map[int]model.Object)}
}

// Register records obj under (category, id).
// Re-registering the identical object is a no-op. A different object under
// an occupied (category, id) fails with DUPLICATE_ID.
func (r *Registry) Register(category string, id int, obj model.Object) error {
	if id == 0 {
		return errors.New(errors.ErrCodeMissingID, "cannot register %s object without an id", category)
	}
	byID, ok := r.objs[category]
	if !ok {
		byID = make(map[int]model.Object)
		r.objs[category] = byID
	}
	if existing, ok := byID[id]; ok {
		if existing == obj {
			return nil
		}
		return errors.New(errors.ErrCodeDuplicateID, "id %d already registered in category %s", id, category)
	}
	byID[id] = obj
	return nil
}

// Lookup returns the object registered under (category, id).
// Fails with UNRESOLVED_REFERENCE when absent.
func (r *Registry) Lookup(category string, id int) (model.Object, error) {
	if obj, ok := r.objs[category][id]; ok {
		return obj, nil
	}
	return nil, errors.New(errors.ErrCodeUnresolvedReference, "no object with id %d in category %s", id, category)
}

// Get returns the object registered under (category, id), reporting
// whether it exists.
func (r *Registry) Get(category string, id int) (model.Object, bool) {
	obj, ok := r.objs[category][id]
	return obj, ok
}

// Categories returns the registered category names in sorted order.
func (r *Registry) Categories() []string {
	cats := make([]string, 0, len(r.objs))
	for c := range r.objs {
		cats = append(cats, c)
	}
	slices.Sort(cats)
	return cats
}

// IDs returns the registered ids of a category in ascending order.
func (r *Registry) IDs(category string) []int {
	ids := make([]int, 0, len(r.objs[category]))
	for id := range r.objs[category] {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Len returns the total number of registered objects.
func (r *Registry) Len() int {
	n := 0
	for _, byID := range r.objs {
		n += len(byID)
	}
	return n
}

// All returns a copy of the full (category, id) index.
func (r *Registry) All() map[string]map[int]model.Object {
	out := make(map[string]map[int]model.Object, len(r.objs))
	for cat, byID := range r.objs {
		m := make(map[int]model.Object, len(byID))
		for id, obj := range byID {
			m[id] = obj
		}
		out[cat] = m
	}
	return out
}
