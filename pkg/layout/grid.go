package layout

import (
	"encoding/json"

	"github.com/isogrid/isogrid/pkg/axistree"
	"github.com/isogrid/isogrid/pkg/placement"
)

// HeaderCell pairs a header node with its grid placement.
type HeaderCell struct {
	ID        string              `json:"id"`
	Label     string              `json:"label"`
	Depth     int                 `json:"depth"`
	Placement placement.Placement `json:"placement"`
}

// DataCell is one body cell at the intersection of a row leaf and a column
// leaf.
type DataCell struct {
	RowID     string              `json:"row_id"`
	ColID     string              `json:"col_id"`
	Placement placement.Placement `json:"placement"`
}

// Grid is the complete computed layout: track sizes plus a placement for
// every header and data cell.
type Grid struct {
	Template   placement.Template `json:"template"`
	RowHeaders []HeaderCell       `json:"row_headers"`
	ColHeaders []HeaderCell       `json:"col_headers"`
	Cells      []DataCell         `json:"cells"`

	// HeaderLeft and HeaderTop are the pixel extent of the header block,
	// for the cartographic controller's boundary math.
	HeaderLeft float64 `json:"header_left"`
	HeaderTop  float64 `json:"header_top"`
}

// BuildGrid computes the full grid for the given axis metrics. Every node
// of both trees gets a header placement; data cells are the cross product
// of the two leaf orders.
func BuildGrid(rowMetrics, colMetrics axistree.Metrics, opts placement.TemplateOptions) Grid {
	g := Grid{
		Template: placement.GridTemplate(rowMetrics, colMetrics, opts),
	}
	g.HeaderLeft, g.HeaderTop = placement.HeaderOffsets(rowMetrics, colMetrics, opts)

	g.RowHeaders = make([]HeaderCell, 0, len(rowMetrics.FlatNodes))
	for _, f := range rowMetrics.FlatNodes {
		g.RowHeaders = append(g.RowHeaders, HeaderCell{
			ID:        f.Node.ID,
			Label:     f.Node.DisplayLabel(),
			Depth:     f.Depth,
			Placement: placement.RowHeader(f, colMetrics.Depth),
		})
	}

	g.ColHeaders = make([]HeaderCell, 0, len(colMetrics.FlatNodes))
	for _, f := range colMetrics.FlatNodes {
		g.ColHeaders = append(g.ColHeaders, HeaderCell{
			ID:        f.Node.ID,
			Label:     f.Node.DisplayLabel(),
			Depth:     f.Depth,
			Placement: placement.ColHeader(f, rowMetrics.Depth),
		})
	}

	rowLeaves := axistree.LeafNodes(rowMetrics)
	colLeaves := axistree.LeafNodes(colMetrics)
	g.Cells = make([]DataCell, 0, len(rowLeaves)*len(colLeaves))
	for ri, rl := range rowLeaves {
		for ci, cl := range colLeaves {
			g.Cells = append(g.Cells, DataCell{
				RowID:     rl.Node.ID,
				ColID:     cl.Node.ID,
				Placement: placement.DataCell(ri, ci, colMetrics.Depth, rowMetrics.Depth),
			})
		}
	}

	return g
}

// MarshalGrid serializes a grid for caching and API responses.
func MarshalGrid(g Grid) ([]byte, error) {
	return json.Marshal(g)
}

// UnmarshalGrid deserializes a cached grid.
func UnmarshalGrid(data []byte) (Grid, error) {
	var g Grid
	err := json.Unmarshal(data, &g)
	return g, err
}
