// Package placement converts axis-tree metrics and cell indices into exact
// grid-track coordinates.
//
// All coordinates are 1-based and end-exclusive, mirroring CSS grid-track
// numbering: a placement of rows [3,4) occupies the single track 3. The grid
// is laid out as a fixed header block followed by data tracks:
//
//	          │ row-header cols │ data cols ...
//	──────────┼─────────────────┼───────────
//	col-header│    corner       │ col headers
//	rows      │                 │
//	──────────┼─────────────────┼───────────
//	data rows │  row headers    │ data cells
//
// Row-axis headers occupy one column per depth level and span as many rows as
// their subtree has leaves; column-axis headers are the transpose. The
// functions are pure arithmetic with no side effects.
package placement

import "github.com/isogrid/isogrid/pkg/axistree"

// Placement is a rectangle of grid tracks, 1-based and end-exclusive.
type Placement struct {
	RowStart int `json:"gridRowStart"`
	RowEnd   int `json:"gridRowEnd"`
	ColStart int `json:"gridColumnStart"`
	ColEnd   int `json:"gridColumnEnd"`
}

// RowSpan returns the number of row tracks covered.
func (p Placement) RowSpan() int { return p.RowEnd - p.RowStart }

// ColSpan returns the number of column tracks covered.
func (p Placement) ColSpan() int { return p.ColEnd - p.ColStart }

// RowHeader places a row-axis header node. Headers for the row axis occupy
// the column matching their depth and span the rows of their leaf range,
// offset below the colHeaderDepth rows reserved for column headers.
func RowHeader(f axistree.FlatNode, colHeaderDepth int) Placement {
	return Placement{
		RowStart: colHeaderDepth + 1 + f.LeafStart,
		RowEnd:   colHeaderDepth + 1 + f.LeafStart + f.LeafCount,
		ColStart: f.Depth + 1,
		ColEnd:   f.Depth + 2,
	}
}

// ColHeader places a column-axis header node, the transpose of [RowHeader]:
// the row matches the node's depth, the column span is its leaf range offset
// past the rowHeaderDepth columns reserved for row headers.
func ColHeader(f axistree.FlatNode, rowHeaderDepth int) Placement {
	return Placement{
		RowStart: f.Depth + 1,
		RowEnd:   f.Depth + 2,
		ColStart: rowHeaderDepth + 1 + f.LeafStart,
		ColEnd:   rowHeaderDepth + 1 + f.LeafStart + f.LeafCount,
	}
}

// DataCell places the data cell at the given 0-based leaf positions of the
// row and column axis trees.
func DataCell(rowIndex, colIndex, colHeaderDepth, rowHeaderDepth int) Placement {
	return Placement{
		RowStart: colHeaderDepth + 1 + rowIndex,
		RowEnd:   colHeaderDepth + 2 + rowIndex,
		ColStart: rowHeaderDepth + 1 + colIndex,
		ColEnd:   rowHeaderDepth + 2 + colIndex,
	}
}

// CornerCell places cell (r, c) of the top-left header-intersection block,
// which is itself a rowHeaderDepth × colHeaderDepth grid.
func CornerCell(r, c int) Placement {
	return Placement{
		RowStart: r + 1,
		RowEnd:   r + 2,
		ColStart: c + 1,
		ColEnd:   c + 2,
	}
}
