package axisstore

import (
	"context"
	"sync"
	"time"

	"github.com/isogrid/isogrid/pkg/pafv"
)

// MemoryStore is an in-memory facet and view-state store for development
// and testing.
type MemoryStore struct {
	mu     sync.RWMutex
	facets []pafv.FacetRow
	views  map[string]pafv.ViewState
}

// NewMemoryStore creates a memory store seeded with the given facet table.
func NewMemoryStore(facets []pafv.FacetRow) *MemoryStore {
	return &MemoryStore{
		facets: append([]pafv.FacetRow(nil), facets...),
		views:  make(map[string]pafv.ViewState),
	}
}

func viewKey(canvasID, viewName string) string {
	return canvasID + "\x00" + viewName
}

// ListFacets returns a copy of the facet table.
func (s *MemoryStore) ListFacets(ctx context.Context) ([]pafv.FacetRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]pafv.FacetRow(nil), s.facets...), nil
}

// SetFacets replaces the facet table.
func (s *MemoryStore) SetFacets(facets []pafv.FacetRow) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.facets = append([]pafv.FacetRow(nil), facets...)
}

// UpsertViewState inserts or replaces the state for its key.
func (s *MemoryStore) UpsertViewState(ctx context.Context, state pafv.ViewState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if state.UpdatedAt.IsZero() {
		state.UpdatedAt = time.Now()
	}
	s.views[viewKey(state.CanvasID, state.ViewName)] = state
	return nil
}

// GetViewState returns the stored state, or nil if none exists.
func (s *MemoryStore) GetViewState(ctx context.Context, canvasID, viewName string) (*pafv.ViewState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.views[viewKey(canvasID, viewName)]
	if !ok {
		return nil, nil
	}
	return &state, nil
}

var (
	_ pafv.FacetStore = (*MemoryStore)(nil)
	_ pafv.ViewStore  = (*MemoryStore)(nil)
)
