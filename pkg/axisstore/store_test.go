package axisstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/isogrid/isogrid/pkg/pafv"
)

func sampleFacets() []pafv.FacetRow {
	return []pafv.FacetRow{
		{ID: "f-cat", Name: "Category", Axis: "category", SourceColumn: "category", Enabled: true, SortOrder: 0},
		{ID: "f-time", Name: "Created", Axis: "time", SourceColumn: "created_at", Enabled: true, SortOrder: 1},
	}
}

func sampleView() pafv.ViewState {
	return pafv.ViewState{
		CanvasID: "canvas-1",
		ViewName: "grid",
		Mapping: pafv.Mapping{
			X: &pafv.Assignment{LatchDimension: "category", Facet: "category", Label: "Category"},
		},
	}
}

func TestMemoryStoreFacets(t *testing.T) {
	store := NewMemoryStore(sampleFacets())

	facets, err := store.ListFacets(context.Background())
	if err != nil {
		t.Fatalf("ListFacets: %v", err)
	}
	if len(facets) != 2 {
		t.Fatalf("got %d facets, want 2", len(facets))
	}

	// Mutating the returned slice must not leak into the store.
	facets[0].ID = "mutated"
	again, _ := store.ListFacets(context.Background())
	if again[0].ID != "f-cat" {
		t.Errorf("store leaked internal slice: %q", again[0].ID)
	}
}

func TestMemoryStoreViewStateRoundTrip(t *testing.T) {
	store := NewMemoryStore(nil)
	ctx := context.Background()

	got, err := store.GetViewState(ctx, "canvas-1", "grid")
	if err != nil || got != nil {
		t.Fatalf("missing state = (%v, %v), want (nil, nil)", got, err)
	}

	if err := store.UpsertViewState(ctx, sampleView()); err != nil {
		t.Fatalf("UpsertViewState: %v", err)
	}

	got, err = store.GetViewState(ctx, "canvas-1", "grid")
	if err != nil {
		t.Fatalf("GetViewState: %v", err)
	}
	if got == nil || got.Mapping.X == nil || got.Mapping.X.Facet != "category" {
		t.Errorf("round trip lost mapping: %+v", got)
	}
	if got.UpdatedAt.IsZero() {
		t.Error("UpdatedAt not stamped on upsert")
	}

	// Second upsert replaces, not duplicates.
	v := sampleView()
	v.Mapping.X.Facet = "created_at"
	if err := store.UpsertViewState(ctx, v); err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	got, _ = store.GetViewState(ctx, "canvas-1", "grid")
	if got.Mapping.X.Facet != "created_at" {
		t.Errorf("upsert did not replace: %+v", got.Mapping.X)
	}
}

func TestMemoryStoreKeyIsolation(t *testing.T) {
	store := NewMemoryStore(nil)
	ctx := context.Background()

	a := sampleView()
	b := sampleView()
	b.ViewName = "timeline"
	b.Mapping.X.Facet = "created_at"

	store.UpsertViewState(ctx, a)
	store.UpsertViewState(ctx, b)

	got, _ := store.GetViewState(ctx, "canvas-1", "grid")
	if got.Mapping.X.Facet != "category" {
		t.Errorf("view key collision: %+v", got.Mapping.X)
	}
	if got, _ := store.GetViewState(ctx, "canvas-2", "grid"); got != nil {
		t.Errorf("unknown canvas returned state: %+v", got)
	}
}

func TestFileStoreFacets(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	ctx := context.Background()

	// No facets.json yet: empty table, no error.
	facets, err := store.ListFacets(ctx)
	if err != nil {
		t.Fatalf("ListFacets on empty store: %v", err)
	}
	if len(facets) != 0 {
		t.Fatalf("got %d facets, want 0", len(facets))
	}

	if err := store.SetFacets(sampleFacets()); err != nil {
		t.Fatalf("SetFacets: %v", err)
	}
	facets, err = store.ListFacets(ctx)
	if err != nil {
		t.Fatalf("ListFacets: %v", err)
	}
	if len(facets) != 2 || facets[1].SourceColumn != "created_at" {
		t.Errorf("facet table round trip failed: %+v", facets)
	}
}

func TestFileStoreViewState(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	ctx := context.Background()

	if err := store.UpsertViewState(ctx, sampleView()); err != nil {
		t.Fatalf("UpsertViewState: %v", err)
	}

	got, err := store.GetViewState(ctx, "canvas-1", "grid")
	if err != nil {
		t.Fatalf("GetViewState: %v", err)
	}
	if got == nil || got.Mapping.X == nil || got.Mapping.X.Label != "Category" {
		t.Errorf("round trip lost mapping: %+v", got)
	}

	if err := store.DeleteViewState("canvas-1", "grid"); err != nil {
		t.Fatalf("DeleteViewState: %v", err)
	}
	if got, _ := store.GetViewState(ctx, "canvas-1", "grid"); got != nil {
		t.Errorf("state survived delete: %+v", got)
	}
	// Deleting again is a no-op.
	if err := store.DeleteViewState("canvas-1", "grid"); err != nil {
		t.Errorf("second delete errored: %v", err)
	}
}

func TestFileStoreEscapesViewKeys(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	ctx := context.Background()

	v := sampleView()
	v.ViewName = "Q3 Planning/Board"
	if err := store.UpsertViewState(ctx, v); err != nil {
		t.Fatalf("UpsertViewState: %v", err)
	}

	// The slash must not escape the views directory.
	entries, err := os.ReadDir(filepath.Join(dir, "views"))
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d files in views/, want 1", len(entries))
	}

	got, err := store.GetViewState(ctx, "canvas-1", "Q3 Planning/Board")
	if err != nil || got == nil {
		t.Fatalf("GetViewState with escaped key = (%v, %v)", got, err)
	}
}

func TestFileStoreDefaultsUnderHome(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	store, err := NewFileStore("")
	if err != nil {
		t.Fatalf("NewFileStore(\"\"): %v", err)
	}
	if filepath.Base(store.Path()) != "isogrid" {
		t.Errorf("default path = %q", store.Path())
	}
}
