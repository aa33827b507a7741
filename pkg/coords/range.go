package coords

// Axis selects which coordinate of a point a range is computed over.
type Axis string

const (
	AxisX Axis = "x"
	AxisY Axis = "y"
)

// Range is the closed integer extent of cell positions along one axis.
// Count is max-min+1; an empty input yields the zero Range.
type Range struct {
	Min   int `json:"min"`
	Max   int `json:"max"`
	Count int `json:"count"`
}

// Cell is a positioned grid cell in logical space. Coordinates may be
// negative under the bipolar origin.
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// AxisRange computes the min/max extent of the given axis over a set of
// positioned cells. Negative coordinates are supported; an empty slice
// returns Range{0, 0, 0}.
func AxisRange(cells []Cell, axis Axis) Range {
	if len(cells) == 0 {
		return Range{}
	}

	pick := func(c Cell) int {
		if axis == AxisY {
			return c.Y
		}
		return c.X
	}

	min, max := pick(cells[0]), pick(cells[0])
	for _, c := range cells[1:] {
		v := pick(c)
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return Range{Min: min, Max: max, Count: max - min + 1}
}
