package placement

import "github.com/isogrid/isogrid/pkg/axistree"

// Default track sizes in pixels.
const (
	DefaultHeaderColWidth  = 100.0
	DefaultDataColWidth    = 70.0
	DefaultHeaderRowHeight = 40.0
	DefaultDataRowHeight   = 36.0
)

// TemplateOptions overrides the default track sizes. Zero fields keep the
// defaults; sizes are in pixels.
type TemplateOptions struct {
	HeaderColWidth  float64 `json:"header_col_width,omitempty"`
	DataColWidth    float64 `json:"data_col_width,omitempty"`
	HeaderRowHeight float64 `json:"header_row_height,omitempty"`
	DataRowHeight   float64 `json:"data_row_height,omitempty"`
}

func (o TemplateOptions) withDefaults() TemplateOptions {
	if o.HeaderColWidth <= 0 {
		o.HeaderColWidth = DefaultHeaderColWidth
	}
	if o.DataColWidth <= 0 {
		o.DataColWidth = DefaultDataColWidth
	}
	if o.HeaderRowHeight <= 0 {
		o.HeaderRowHeight = DefaultHeaderRowHeight
	}
	if o.DataRowHeight <= 0 {
		o.DataRowHeight = DefaultDataRowHeight
	}
	return o
}

// Template is the full track-size listing for a grid: header tracks first,
// then data tracks, in both directions.
type Template struct {
	Columns []float64 `json:"columns"`
	Rows    []float64 `json:"rows"`
}

// TotalWidth returns the summed width of all column tracks.
func (t Template) TotalWidth() float64 { return sum(t.Columns) }

// TotalHeight returns the summed height of all row tracks.
func (t Template) TotalHeight() float64 { return sum(t.Rows) }

// HeaderOffsets returns the pixel extent of the header block: the width of
// the row-header columns and the height of the column-header rows. These are
// the left/top offsets the cartographic controller needs for boundary math.
func HeaderOffsets(rowMetrics, colMetrics axistree.Metrics, opts TemplateOptions) (left, top float64) {
	opts = opts.withDefaults()
	return float64(rowMetrics.Depth) * opts.HeaderColWidth,
		float64(colMetrics.Depth) * opts.HeaderRowHeight
}

// GridTemplate produces the track sizes for a grid whose row axis flattens
// to rowMetrics and whose column axis flattens to colMetrics.
//
// Columns: rowMetrics.Depth header tracks followed by colMetrics.LeafCount
// data tracks. Rows: colMetrics.Depth header tracks followed by
// rowMetrics.LeafCount data tracks.
func GridTemplate(rowMetrics, colMetrics axistree.Metrics, opts TemplateOptions) Template {
	opts = opts.withDefaults()

	cols := make([]float64, 0, rowMetrics.Depth+colMetrics.LeafCount)
	for i := 0; i < rowMetrics.Depth; i++ {
		cols = append(cols, opts.HeaderColWidth)
	}
	for i := 0; i < colMetrics.LeafCount; i++ {
		cols = append(cols, opts.DataColWidth)
	}

	rows := make([]float64, 0, colMetrics.Depth+rowMetrics.LeafCount)
	for i := 0; i < colMetrics.Depth; i++ {
		rows = append(rows, opts.HeaderRowHeight)
	}
	for i := 0; i < rowMetrics.LeafCount; i++ {
		rows = append(rows, opts.DataRowHeight)
	}

	return Template{Columns: cols, Rows: rows}
}

func sum(xs []float64) float64 {
	var s float64
	for _, x := range xs {
		s += x
	}
	return s
}
