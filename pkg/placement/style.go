package placement

// Style carries a placement as the four named layout directives the
// rendering layer applies to a visual element. It is an identity mapping of
// [Placement]; the type exists purely as the seam between placement math and
// whatever paints the grid.
type Style struct {
	GridRowStart    int `json:"gridRowStart"`
	GridRowEnd      int `json:"gridRowEnd"`
	GridColumnStart int `json:"gridColumnStart"`
	GridColumnEnd   int `json:"gridColumnEnd"`
}

// Style converts the placement into rendering-layer directives.
func (p Placement) Style() Style {
	return Style{
		GridRowStart:    p.RowStart,
		GridRowEnd:      p.RowEnd,
		GridColumnStart: p.ColStart,
		GridColumnEnd:   p.ColEnd,
	}
}
