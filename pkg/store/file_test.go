package store

import (
	"context"
	"slices"
	"testing"

	"github.com/terradyn/geomodel/pkg/ecp"
	"github.com/terradyn/geomodel/pkg/errors"
)

func testDoc(name string) *ecp.Document {
	return &ecp.Document{
		Name:  name,
		Units: "N, kg, m, s",
		Models: map[string]map[string]ecp.Attrs{
			"soils": {"1": {"type": "soil", "phi": 30.0}},
		},
	}
}

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	return s
}

func TestFileStoreSaveLoad(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	rec, err := s.Save(ctx, "site-a", testDoc("site a"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if rec.Revision == "" {
		t.Error("record has no revision")
	}
	if rec.SavedAt.IsZero() {
		t.Error("record has no timestamp")
	}

	doc, err := s.Load(ctx, "site-a")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if doc.Name != "site a" {
		t.Errorf("Name = %q", doc.Name)
	}
	if got := doc.Models["soils"]["1"]["phi"]; got != 30.0 {
		t.Errorf("soils block = %v", doc.Models["soils"])
	}
}

func TestFileStoreRevisionChanges(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	r1, err := s.Save(ctx, "site-a", testDoc("v1"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	r2, err := s.Save(ctx, "site-a", testDoc("v2"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if r1.Revision == r2.Revision {
		t.Error("revision unchanged across saves")
	}

	doc, err := s.Load(ctx, "site-a")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if doc.Name != "v2" {
		t.Errorf("Name = %q, want latest save", doc.Name)
	}
}

func TestFileStoreLoadMissing(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Load(context.Background(), "absent")
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Load(absent) = %v, want NOT_FOUND", err)
	}
}

func TestFileStoreDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.Save(ctx, "site-a", testDoc("a")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Delete(ctx, "site-a"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Load(ctx, "site-a"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Load after delete = %v, want NOT_FOUND", err)
	}
	// Deleting again is not an error.
	if err := s.Delete(ctx, "site-a"); err != nil {
		t.Errorf("Delete(absent) = %v", err)
	}
}

func TestFileStoreList(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"beta", "alpha"} {
		if _, err := s.Save(ctx, name, testDoc(name)); err != nil {
			t.Fatalf("Save(%s): %v", name, err)
		}
	}
	names, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	slices.Sort(names)
	if want := []string{"alpha", "beta"}; !slices.Equal(names, want) {
		t.Errorf("List() = %v, want %v", names, want)
	}
}

func TestFileStoreRejectsBadNames(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"", "a/b", `a\b`, "../escape"} {
		if _, err := s.Save(ctx, name, testDoc("x")); !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("Save(%q) = %v, want INVALID_INPUT", name, err)
		}
	}
}
