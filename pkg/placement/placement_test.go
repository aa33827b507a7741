package placement

import (
	"testing"

	"github.com/isogrid/isogrid/pkg/axistree"
)

func TestDataCell(t *testing.T) {
	tests := []struct {
		name                           string
		rowIdx, colIdx, colHD, rowHD   int
		wantRS, wantRE, wantCS, wantCE int
	}{
		{"origin cell", 0, 0, 2, 3, 3, 4, 4, 5},
		{"deep cell", 25, 3, 2, 3, 28, 29, 7, 8},
		{"no headers", 0, 0, 0, 0, 1, 2, 1, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DataCell(tt.rowIdx, tt.colIdx, tt.colHD, tt.rowHD)
			got := Placement{tt.wantRS, tt.wantRE, tt.wantCS, tt.wantCE}
			if p != got {
				t.Errorf("DataCell(%d,%d,%d,%d) = %+v, want %+v",
					tt.rowIdx, tt.colIdx, tt.colHD, tt.rowHD, p, got)
			}
		})
	}
}

func TestRowHeader(t *testing.T) {
	f := axistree.FlatNode{Depth: 1, LeafStart: 4, LeafCount: 4}
	p := RowHeader(f, 2)

	if p.ColStart != 2 || p.ColEnd != 3 {
		t.Errorf("columns = [%d,%d), want [2,3)", p.ColStart, p.ColEnd)
	}
	if p.RowStart != 7 || p.RowEnd != 11 {
		t.Errorf("rows = [%d,%d), want [7,11)", p.RowStart, p.RowEnd)
	}
	if p.RowSpan() != f.LeafCount {
		t.Errorf("RowSpan = %d, want %d", p.RowSpan(), f.LeafCount)
	}
}

func TestColHeader(t *testing.T) {
	f := axistree.FlatNode{Depth: 0, LeafStart: 2, LeafCount: 3}
	p := ColHeader(f, 1)

	if p.RowStart != 1 || p.RowEnd != 2 {
		t.Errorf("rows = [%d,%d), want [1,2)", p.RowStart, p.RowEnd)
	}
	if p.ColStart != 4 || p.ColEnd != 7 {
		t.Errorf("columns = [%d,%d), want [4,7)", p.ColStart, p.ColEnd)
	}
}

func TestCornerCell(t *testing.T) {
	p := CornerCell(0, 0)
	if p != (Placement{1, 2, 1, 2}) {
		t.Errorf("CornerCell(0,0) = %+v", p)
	}
	p = CornerCell(1, 2)
	if p != (Placement{2, 3, 3, 4}) {
		t.Errorf("CornerCell(1,2) = %+v", p)
	}
}

// Leaf-positioned headers and the data cell at their intersection must agree
// on the shared track starts.
func TestHeaderDataCrossConsistency(t *testing.T) {
	rowRoot := &axistree.Node{ID: "r", Children: []*axistree.Node{
		{ID: "r1", Children: []*axistree.Node{{ID: "r1a"}, {ID: "r1b"}}},
		{ID: "r2"},
	}}
	colRoot := &axistree.Node{ID: "c", Children: []*axistree.Node{
		{ID: "c1"}, {ID: "c2", Children: []*axistree.Node{{ID: "c2a"}}},
	}}

	rm := axistree.ComputeMetrics(rowRoot)
	cm := axistree.ComputeMetrics(colRoot)

	for _, rh := range axistree.LeafNodes(rm) {
		for _, ch := range axistree.LeafNodes(cm) {
			rp := RowHeader(rh, cm.Depth)
			cp := ColHeader(ch, rm.Depth)
			dp := DataCell(rh.LeafStart, ch.LeafStart, cm.Depth, rm.Depth)

			if dp.RowStart != rp.RowStart {
				t.Errorf("cell(%s,%s): RowStart %d != row header %d",
					rh.Node.ID, ch.Node.ID, dp.RowStart, rp.RowStart)
			}
			if dp.ColStart != cp.ColStart {
				t.Errorf("cell(%s,%s): ColStart %d != col header %d",
					rh.Node.ID, ch.Node.ID, dp.ColStart, cp.ColStart)
			}
		}
	}
}

func TestGridTemplate(t *testing.T) {
	rm := axistree.Metrics{Depth: 2, LeafCount: 5}
	cm := axistree.Metrics{Depth: 3, LeafCount: 4}

	tpl := GridTemplate(rm, cm, TemplateOptions{})

	if len(tpl.Columns) != rm.Depth+cm.LeafCount {
		t.Errorf("columns = %d tracks, want %d", len(tpl.Columns), rm.Depth+cm.LeafCount)
	}
	if len(tpl.Rows) != cm.Depth+rm.LeafCount {
		t.Errorf("rows = %d tracks, want %d", len(tpl.Rows), cm.Depth+rm.LeafCount)
	}
	if tpl.Columns[0] != DefaultHeaderColWidth || tpl.Columns[2] != DefaultDataColWidth {
		t.Errorf("column sizing wrong: %v", tpl.Columns)
	}
	if tpl.Rows[0] != DefaultHeaderRowHeight || tpl.Rows[3] != DefaultDataRowHeight {
		t.Errorf("row sizing wrong: %v", tpl.Rows)
	}

	custom := GridTemplate(rm, cm, TemplateOptions{DataColWidth: 55, HeaderRowHeight: 32})
	if custom.Columns[2] != 55 {
		t.Errorf("override DataColWidth not applied: %v", custom.Columns)
	}
	if custom.Rows[0] != 32 {
		t.Errorf("override HeaderRowHeight not applied: %v", custom.Rows)
	}
	// Unset fields keep defaults.
	if custom.Columns[0] != DefaultHeaderColWidth {
		t.Errorf("unset HeaderColWidth changed: %v", custom.Columns)
	}
}

func TestHeaderOffsets(t *testing.T) {
	rm := axistree.Metrics{Depth: 2, LeafCount: 5}
	cm := axistree.Metrics{Depth: 3, LeafCount: 4}

	left, top := HeaderOffsets(rm, cm, TemplateOptions{})
	if left != 2*DefaultHeaderColWidth {
		t.Errorf("left = %v, want %v", left, 2*DefaultHeaderColWidth)
	}
	if top != 3*DefaultHeaderRowHeight {
		t.Errorf("top = %v, want %v", top, 3*DefaultHeaderRowHeight)
	}
}

func TestStyleIdentity(t *testing.T) {
	p := Placement{3, 4, 7, 9}
	s := p.Style()
	if s.GridRowStart != 3 || s.GridRowEnd != 4 || s.GridColumnStart != 7 || s.GridColumnEnd != 9 {
		t.Errorf("Style() = %+v, want identity of %+v", s, p)
	}
}
