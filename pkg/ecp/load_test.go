package ecp

import (
	"testing"

	"github.com/terradyn/geomodel/pkg/errors"
	"github.com/terradyn/geomodel/pkg/model"
)

func TestImportUnknownCategory(t *testing.T) {
	doc := &Document{Models: map[string]map[string]Attrs{
		"sensors": {"1": {"type": "piezometer", "depth": 4.5}},
	}}

	if _, err := Import(doc, LoadOptions{}); !errors.Is(err, errors.ErrCodeUnknownCategory) {
		t.Errorf("Import = %v, want UNKNOWN_CATEGORY", err)
	}

	objs, err := Import(doc, LoadOptions{FallbackToBase: true})
	if err != nil {
		t.Fatalf("Import with fallback: %v", err)
	}
	obj, ok := objs["sensors"][1]
	if !ok {
		t.Fatal("fallback object not returned")
	}
	c, ok := obj.(*model.Custom)
	if !ok {
		t.Fatalf("object is %T, want *model.Custom", obj)
	}
	if c.Type() != "piezometer" || c.Extras()["depth"] != 4.5 {
		t.Errorf("custom object = type %q, extras %v", c.Type(), c.Extras())
	}
}

func TestImportUnknownType(t *testing.T) {
	doc := &Document{Models: map[string]map[string]Attrs{
		model.CategorySoils: {"1": {"type": "quicksand", "phi": 30.0}},
	}}

	if _, err := Import(doc, LoadOptions{}); !errors.Is(err, errors.ErrCodeUnknownType) {
		t.Errorf("Import = %v, want UNKNOWN_TYPE", err)
	}

	objs, err := Import(doc, LoadOptions{FallbackToBase: true})
	if err != nil {
		t.Fatalf("Import with fallback: %v", err)
	}
	s, ok := objs[model.CategorySoils][1].(*model.Soil)
	if !ok {
		t.Fatal("fallback did not build a soil")
	}
	if s.Type() != model.TypeSoil {
		t.Errorf("Type() = %q, want base type %q", s.Type(), model.TypeSoil)
	}
	if s.Phi == nil || *s.Phi != 30 {
		t.Error("declared attributes dropped during fallback")
	}
}

func TestImportUnknownAttributeKeptAsExtra(t *testing.T) {
	doc := &Document{Models: map[string]map[string]Attrs{
		model.CategorySoils: {"1": {"type": "soil", "wave_speed": 180.0}},
	}}
	objs, err := Import(doc, LoadOptions{})
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	s := objs[model.CategorySoils][1]
	if got := s.Extras()["wave_speed"]; got != 180.0 {
		t.Errorf("extras[wave_speed] = %v, want 180", got)
	}
}

func TestImportIDMismatch(t *testing.T) {
	doc := &Document{Models: map[string]map[string]Attrs{
		model.CategorySoils: {"1": {"type": "soil", "id": float64(2)}},
	}}
	if _, err := Import(doc, LoadOptions{}); !errors.Is(err, errors.ErrCodeInvalidDocument) {
		t.Errorf("Import = %v, want INVALID_DOCUMENT", err)
	}
}

func TestImportBadEntryKey(t *testing.T) {
	doc := &Document{Models: map[string]map[string]Attrs{
		model.CategorySoils: {"first": {"type": "soil"}},
	}}
	if _, err := Import(doc, LoadOptions{}); !errors.Is(err, errors.ErrCodeInvalidDocument) {
		t.Errorf("Import = %v, want INVALID_DOCUMENT", err)
	}
}

func TestImportUnresolvedReference(t *testing.T) {
	doc := &Document{Models: map[string]map[string]Attrs{
		model.CategoryBuildings: {"1": {
			"type":       "building",
			"foundation": map[string]any{"type": "foundations", "id": float64(9)},
		}},
	}}
	if _, err := Import(doc, LoadOptions{}); !errors.Is(err, errors.ErrCodeUnresolvedReference) {
		t.Errorf("Import = %v, want UNRESOLVED_REFERENCE", err)
	}
}

func TestImportLinksAreBidirectional(t *testing.T) {
	doc := &Document{Models: map[string]map[string]Attrs{
		model.CategoryFoundations: {"1": {
			"type":     "raft",
			"building": map[string]any{"type": "buildings", "id": float64(1)},
		}},
		model.CategoryBuildings: {"1": {
			"type":       "building",
			"foundation": map[string]any{"type": "foundations", "id": float64(1)},
		}},
	}}
	objs, err := Import(doc, LoadOptions{})
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	b := objs[model.CategoryBuildings][1].(*model.Building)
	f := objs[model.CategoryFoundations][1].(*model.Foundation)
	if b.Foundation() != f {
		t.Error("building not linked to its foundation")
	}
	if f.Building() != b {
		t.Error("foundation not linked back to its building")
	}
}

func TestImportLegacyModelsWrapper(t *testing.T) {
	data := []byte(`{
		"name": "legacy",
		"units": "N, kg, m, s",
		"models": {
			"soils": {"1": {"type": "soil", "phi": 30.0}}
		}
	}`)
	objs, err := LoadsJSON(data, LoadOptions{})
	if err != nil {
		t.Fatalf("LoadsJSON: %v", err)
	}
	s, ok := objs[model.CategorySoils][1].(*model.Soil)
	if !ok {
		t.Fatal("soil not reconstructed from wrapped document")
	}
	if s.Phi == nil || *s.Phi != 30 {
		t.Error("soil attributes lost")
	}
}

func TestImportIgnoresForeignScalars(t *testing.T) {
	data := []byte(`{
		"name": "x",
		"units": "N, kg, m, s",
		"generator": "other-tool 2.1",
		"soils": {"1": {"type": "soil"}}
	}`)
	objs, err := LoadsJSON(data, LoadOptions{})
	if err != nil {
		t.Fatalf("LoadsJSON: %v", err)
	}
	if _, ok := objs[model.CategorySoils][1]; !ok {
		t.Error("soil block not imported alongside foreign scalar key")
	}
}

func TestImportAllOrNothing(t *testing.T) {
	doc := &Document{Models: map[string]map[string]Attrs{
		model.CategorySoils: {
			"1": {"type": "soil"},
			"2": {"type": "quicksand"},
		},
	}}
	objs, err := Import(doc, LoadOptions{})
	if err == nil {
		t.Fatal("Import succeeded with an invalid entry")
	}
	if objs != nil {
		t.Error("partial graph returned on failure")
	}
}
