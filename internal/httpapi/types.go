package httpapi

import (
	"github.com/isogrid/isogrid/pkg/axistree"
	"github.com/isogrid/isogrid/pkg/layout"
	"github.com/isogrid/isogrid/pkg/pafv"
)

// layoutRequest wraps layout.Options so trees can be inlined in the body
// instead of referencing files on the server.
type layoutRequest struct {
	layout.Options
	RowTree *axistree.Node `json:"row_tree,omitempty"`
	ColTree *axistree.Node `json:"col_tree,omitempty"`
}

type layoutResponse struct {
	TreeHash  string             `json:"tree_hash"`
	Grid      layout.Grid        `json:"grid"`
	Stats     layoutStats        `json:"stats"`
	Artifacts map[string]artifact `json:"artifacts,omitempty"`
}

type layoutStats struct {
	RowNodes int  `json:"row_nodes"`
	ColNodes int  `json:"col_nodes"`
	Cells    int  `json:"cells"`
	GridHit  bool `json:"grid_cache_hit"`
}

// artifact carries a rendered output. SVG and DOT are returned as text;
// anything else would need encoding, but all current formats are textual.
type artifact struct {
	Format string `json:"format"`
	Body   string `json:"body"`
}

func artifactsByFormat(raw map[string][]byte) map[string]artifact {
	if len(raw) == 0 {
		return nil
	}
	out := make(map[string]artifact, len(raw))
	for format, body := range raw {
		out[format] = artifact{Format: format, Body: string(body)}
	}
	return out
}

type axesResponse struct {
	Axes    []pafv.Axis  `json:"axes"`
	Mapping pafv.Mapping `json:"mapping"`
}

type assignRequest struct {
	Slot    string `json:"slot"`
	FacetID string `json:"facet_id"`
}

type swapRequest struct {
	SlotA string `json:"slot_a"`
	SlotB string `json:"slot_b"`
}

type clearRequest struct {
	Slot string `json:"slot"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
