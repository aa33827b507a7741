package pafv

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// fakeFacetStore is an in-memory FacetStore for tests.
type fakeFacetStore struct {
	rows []FacetRow
	err  error
}

func (f *fakeFacetStore) ListFacets(context.Context) ([]FacetRow, error) {
	return f.rows, f.err
}

// fakeViewStore records upserts.
type fakeViewStore struct {
	mu      sync.Mutex
	upserts []ViewState
	stored  *ViewState
	err     error
}

func (f *fakeViewStore) UpsertViewState(_ context.Context, s ViewState) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.upserts = append(f.upserts, s)
	f.stored = &s
	return nil
}

func (f *fakeViewStore) GetViewState(_ context.Context, canvasID, viewName string) (*ViewState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if f.stored != nil && f.stored.CanvasID == canvasID && f.stored.ViewName == viewName {
		cp := *f.stored
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeViewStore) upsertCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.upserts)
}

func testFacets() *fakeFacetStore {
	return &fakeFacetStore{rows: []FacetRow{
		{ID: "f-cat", Name: "Category", Axis: "category", SourceColumn: "category", Enabled: true, SortOrder: 2},
		{ID: "f-time", Name: "Created", Axis: "time", SourceColumn: "created_at", Enabled: true, SortOrder: 1},
		{ID: "f-loc", Name: "Location", Axis: "location", SourceColumn: "place", Enabled: false, SortOrder: 0},
	}}
}

func newTestService(t *testing.T, views ViewStore, cfg ServiceConfig) *Service {
	t.Helper()
	svc := NewService(context.Background(), testFacets(), views, cfg, nil)
	t.Cleanup(svc.Destroy)
	return svc
}

func TestNewServiceNeverFailsOnStoreError(t *testing.T) {
	store := &fakeFacetStore{err: errors.New("table missing")}
	svc := NewService(context.Background(), store, nil, ServiceConfig{}, nil)
	defer svc.Destroy()

	if axes := svc.AvailableAxes(); len(axes) != 0 {
		t.Errorf("expected empty axis list, got %v", axes)
	}
	// The degraded service still accepts calls.
	if v := svc.ValidateMapping(); !v.IsValid {
		t.Errorf("empty mapping invalid: %+v", v)
	}
}

func TestAvailableAxesSortedAndFiltered(t *testing.T) {
	svc := newTestService(t, nil, ServiceConfig{})

	axes := svc.AvailableAxes()
	if len(axes) != 2 {
		t.Fatalf("expected 2 enabled axes, got %d", len(axes))
	}
	if axes[0].ID != "f-time" || axes[1].ID != "f-cat" {
		t.Errorf("axes not sorted by sort_order: %v", axes)
	}
	if axes[0].Facet != "created_at" || axes[0].LatchDimension != "time" {
		t.Errorf("row not reduced correctly: %+v", axes[0])
	}
}

func TestAssignNotifiesOnce(t *testing.T) {
	svc := newTestService(t, nil, ServiceConfig{})

	var calls []Mapping
	svc.AddChangeListener(func(m Mapping) { calls = append(calls, m) })

	if err := svc.AssignAxis(SlotX, "f-cat"); err != nil {
		t.Fatalf("AssignAxis: %v", err)
	}
	if len(calls) != 1 {
		t.Fatalf("listener called %d times, want 1", len(calls))
	}
	if got := calls[0].X; got == nil || got.Facet != "category" {
		t.Errorf("notified mapping = %+v", calls[0])
	}
}

func TestAssignUnknownAxis(t *testing.T) {
	svc := newTestService(t, nil, ServiceConfig{})

	n := 0
	svc.AddChangeListener(func(Mapping) { n++ })

	if err := svc.AssignAxis(SlotX, "nope"); err == nil {
		t.Error("expected error for unknown axis")
	}
	if err := svc.AssignAxis(SlotX, "f-loc"); err == nil {
		t.Error("expected error for disabled axis")
	}
	if n != 0 {
		t.Errorf("listener called %d times for invalid assigns", n)
	}
}

func TestAssignMovesFacetBetweenSlots(t *testing.T) {
	svc := newTestService(t, nil, ServiceConfig{})

	svc.AssignAxis(SlotX, "f-cat")
	svc.AssignAxis(SlotY, "f-cat")

	m := svc.Mapping()
	if m.X != nil {
		t.Errorf("facet left behind in x: %+v", m.X)
	}
	if m.Y == nil || m.Y.Facet != "category" {
		t.Errorf("facet not moved to y: %+v", m.Y)
	}
	if v := svc.ValidateMapping(); !v.IsValid {
		t.Errorf("mapping invalid after move: %+v", v)
	}
}

func TestSwapAxes(t *testing.T) {
	svc := newTestService(t, nil, ServiceConfig{})

	svc.AssignAxis(SlotX, "f-cat")
	svc.AssignAxis(SlotY, "f-time")

	n := 0
	svc.AddChangeListener(func(Mapping) { n++ })
	svc.SwapAxes(SlotX, SlotY)

	if n != 1 {
		t.Errorf("swap notified %d times, want 1", n)
	}
	m := svc.Mapping()
	if m.X.Facet != "created_at" || m.Y.Facet != "category" {
		t.Errorf("facets not exchanged: x=%+v y=%+v", m.X, m.Y)
	}
}

func TestClearAxis(t *testing.T) {
	svc := newTestService(t, nil, ServiceConfig{})
	svc.AssignAxis(SlotX, "f-cat")

	n := 0
	svc.AddChangeListener(func(Mapping) { n++ })

	svc.ClearAxis(SlotX)
	if svc.Mapping().X != nil {
		t.Error("slot not cleared")
	}
	svc.ClearAxis(SlotX) // clearing empty slot does not notify
	if n != 1 {
		t.Errorf("clear notified %d times, want 1", n)
	}
}

func TestRemoveChangeListener(t *testing.T) {
	svc := newTestService(t, nil, ServiceConfig{})

	n := 0
	id := svc.AddChangeListener(func(Mapping) { n++ })
	svc.RemoveChangeListener(id)
	svc.AssignAxis(SlotX, "f-cat")
	if n != 0 {
		t.Errorf("removed listener still called %d times", n)
	}
}

func TestMetrics(t *testing.T) {
	svc := newTestService(t, nil, ServiceConfig{})

	svc.AssignAxis(SlotX, "f-cat")
	svc.AssignAxis(SlotY, "f-time")
	svc.SwapAxes(SlotX, SlotY)
	svc.SwapAxes(SlotX, SlotY)
	svc.ClearAxis(SlotY)

	m := svc.Metrics()
	if m.TotalRepositions != 4 {
		t.Errorf("TotalRepositions = %d, want 4", m.TotalRepositions)
	}
	if m.Assigns != 2 || m.Swaps != 2 || m.Clears != 1 {
		t.Errorf("metrics = %+v", m)
	}
	if m.SwapRatio != 0.5 {
		t.Errorf("SwapRatio = %v, want 0.5", m.SwapRatio)
	}
	if m.SessionStarted.IsZero() {
		t.Error("SessionStarted unset")
	}
}

func TestSynchronousWriteThrough(t *testing.T) {
	views := &fakeViewStore{}
	svc := newTestService(t, views, ServiceConfig{CanvasID: "c1", ViewName: "grid"})

	svc.AssignAxis(SlotX, "f-cat")
	if views.upsertCount() != 1 {
		t.Fatalf("upserts = %d, want 1 (zero debounce is synchronous)", views.upsertCount())
	}
	got := views.stored
	if got.CanvasID != "c1" || got.ViewName != "grid" {
		t.Errorf("upsert key = %s/%s", got.CanvasID, got.ViewName)
	}
	if got.Mapping.X == nil || got.Mapping.X.Facet != "category" {
		t.Errorf("persisted mapping = %+v", got.Mapping)
	}
}

func TestDebouncedWriteThrough(t *testing.T) {
	views := &fakeViewStore{}
	svc := newTestService(t, views, ServiceConfig{
		CanvasID: "c1", ViewName: "grid", DebounceDelay: 20 * time.Millisecond,
	})

	svc.AssignAxis(SlotX, "f-cat")
	svc.AssignAxis(SlotY, "f-time")
	svc.SwapAxes(SlotX, SlotY)

	if n := views.upsertCount(); n != 0 {
		t.Fatalf("write-through not debounced: %d upserts", n)
	}

	deadline := time.Now().Add(2 * time.Second)
	for views.upsertCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if n := views.upsertCount(); n != 1 {
		t.Errorf("upserts = %d, want exactly 1 batched write", n)
	}
}

func TestDestroyFlushesPendingWrite(t *testing.T) {
	views := &fakeViewStore{}
	svc := NewService(context.Background(), testFacets(), views, ServiceConfig{
		CanvasID: "c1", ViewName: "grid", DebounceDelay: time.Hour,
	}, nil)

	svc.AssignAxis(SlotX, "f-cat")
	svc.Destroy()

	if n := views.upsertCount(); n != 1 {
		t.Errorf("Destroy did not flush: %d upserts", n)
	}

	// Destroyed service refuses mutations.
	n := 0
	svc.AddChangeListener(func(Mapping) { n++ })
	svc.AssignAxis(SlotY, "f-time")
	if n != 0 || svc.Mapping().Y != nil {
		t.Error("destroyed service accepted a mutation")
	}
	svc.Destroy() // idempotent
}

func TestMappingRestoredFromViewStore(t *testing.T) {
	views := &fakeViewStore{}
	first := newTestService(t, views, ServiceConfig{CanvasID: "c1", ViewName: "grid"})
	first.AssignAxis(SlotX, "f-time")
	first.Destroy()

	second := newTestService(t, views, ServiceConfig{CanvasID: "c1", ViewName: "grid"})
	m := second.Mapping()
	if m.X == nil || m.X.Facet != "created_at" {
		t.Errorf("mapping not restored: %+v", m.X)
	}
}
