package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stangrad/wayfind/pkg/graph"
)

func sampleDoc() *graph.Document {
	return &graph.Document{
		Meta: &graph.Meta{Title: "Main Building"},
		Nodes: []graph.Node{
			{ID: "lobby", Title: "Lobby", Type: graph.TypeLounge, Connections: []string{"hall-1"}},
			{ID: "hall-1", Type: graph.TypeHallway, Connections: []string{"lobby"}},
		},
	}
}

func TestValidateName(t *testing.T) {
	valid := []string{"main", "floor-2", "bldg.east", "a"}
	for _, name := range valid {
		if err := ValidateName(name); err != nil {
			t.Errorf("ValidateName(%q) = %v, want nil", name, err)
		}
	}
	invalid := []string{"", ".", "..", "a/b", `a\b`, "a\x00b"}
	for _, name := range invalid {
		if err := ValidateName(name); !errors.Is(err, ErrInvalidName) {
			t.Errorf("ValidateName(%q) = %v, want ErrInvalidName", name, err)
		}
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	defer s.Close()

	if _, err := s.Load(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load(missing) = %v, want ErrNotFound", err)
	}

	if err := s.Save(ctx, "main", sampleDoc()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	doc, err := s.Load(ctx, "main")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if doc.Meta.Title != "Main Building" || len(doc.Nodes) != 2 {
		t.Errorf("loaded doc = %+v, want round-tripped sample", doc)
	}

	// Saving again replaces the previous version.
	doc.Meta.Title = "Annex"
	if err := s.Save(ctx, "main", doc); err != nil {
		t.Fatalf("re-Save: %v", err)
	}
	doc2, err := s.Load(ctx, "main")
	if err != nil {
		t.Fatalf("re-Load: %v", err)
	}
	if doc2.Meta.Title != "Annex" {
		t.Errorf("title after replace = %q, want Annex", doc2.Meta.Title)
	}
}

func TestFileStoreListSorted(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	defer s.Close()

	for _, name := range []string{"west", "east", "annex"} {
		if err := s.Save(ctx, name, sampleDoc()); err != nil {
			t.Fatalf("Save(%s): %v", name, err)
		}
	}
	names, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []string{"annex", "east", "west"}
	if len(names) != len(want) {
		t.Fatalf("List = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("List = %v, want %v", names, want)
		}
	}
}

func TestFileStoreDelete(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	defer s.Close()

	if err := s.Save(ctx, "gone", sampleDoc()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Delete(ctx, "gone"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Load(ctx, "gone"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load after Delete = %v, want ErrNotFound", err)
	}
	if err := s.Delete(ctx, "gone"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete = %v, want ErrNotFound", err)
	}
}

func TestFileStoreRejectsInvalidNames(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	defer s.Close()

	if err := s.Save(ctx, "../escape", sampleDoc()); !errors.Is(err, ErrInvalidName) {
		t.Errorf("Save with traversal name = %v, want ErrInvalidName", err)
	}
	if _, err := s.Load(ctx, ""); !errors.Is(err, ErrInvalidName) {
		t.Errorf("Load with empty name = %v, want ErrInvalidName", err)
	}
}
