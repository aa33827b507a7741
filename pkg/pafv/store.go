package pafv

import (
	"context"
	"time"
)

// FacetRow is one row of the external facet table.
type FacetRow struct {
	ID           string `json:"id" bson:"id"`
	Name         string `json:"name" bson:"name"`
	Axis         string `json:"axis" bson:"axis"` // LATCH dimension
	SourceColumn string `json:"source_column" bson:"source_column"`
	FacetType    string `json:"facet_type" bson:"facet_type"`
	Enabled      bool   `json:"enabled" bson:"enabled"`
	SortOrder    int    `json:"sort_order" bson:"sort_order"`
}

// FacetStore reads the external facet table. Implementations live in
// pkg/axisstore.
type FacetStore interface {
	ListFacets(ctx context.Context) ([]FacetRow, error)
}

// ViewState is the persisted navigation and axis configuration of one view,
// keyed by (CanvasID, ViewName).
type ViewState struct {
	CanvasID  string    `json:"canvas_id" bson:"canvas_id"`
	ViewName  string    `json:"view_name" bson:"view_name"`
	Mapping   Mapping   `json:"mapping" bson:"mapping"`
	Carto     []byte    `json:"carto,omitempty" bson:"carto,omitempty"` // serialized carto.State
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// ViewStore persists view state via an upsert keyed by (canvasID, viewName).
type ViewStore interface {
	// UpsertViewState inserts or replaces the state for its key.
	UpsertViewState(ctx context.Context, state ViewState) error

	// GetViewState returns the stored state, or nil if none exists.
	GetViewState(ctx context.Context, canvasID, viewName string) (*ViewState, error)
}
