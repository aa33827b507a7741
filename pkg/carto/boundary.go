package carto

// BoundaryStatus flags which viewport edges the current transform is pinned
// against.
type BoundaryStatus struct {
	Left   bool `json:"left"`
	Right  bool `json:"right"`
	Top    bool `json:"top"`
	Bottom bool `json:"bottom"`
}

// Any reports whether at least one edge is hit.
func (b BoundaryStatus) Any() bool { return b.Left || b.Right || b.Top || b.Bottom }

// Limits are the hard pan bounds for the current scale, viewport and header
// geometry.
type Limits struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

// panLimits computes the pan bounds. The content may not pan right/down past
// its natural position (max 0) and may not pan left/up further than what
// keeps its far edge at the viewport edge, accounting for the sticky header
// block that shrinks the scrollable area.
func (c *Controller) panLimits() Limits {
	scaledW := c.cfg.ContentWidth * c.scale
	scaledH := c.cfg.ContentHeight * c.scale

	minX := c.cfg.ViewportWidth - c.header.LeftOffset - scaledW
	if minX > 0 {
		minX = 0
	}
	minY := c.cfg.ViewportHeight - c.header.TopOffset - scaledH
	if minY > 0 {
		minY = 0
	}
	return Limits{MinX: minX, MaxX: 0, MinY: minY, MaxY: 0}
}

// constrainAxis applies elastic resistance and hard clamping along one axis.
// Targets inside [min, max] pass through. Overshoot within the resistance
// zone is damped by the resistance factor; overshoot past the zone clamps
// exactly to the limit and reports a hit on that edge.
func constrainAxis(target, min, max, zone, resistance float64) (value float64, hitMin, hitMax bool) {
	switch {
	case target < min:
		over := min - target
		if over > zone {
			return min, true, false
		}
		return min - over*resistance, false, false
	case target > max:
		over := target - max
		if over > zone {
			return max, false, true
		}
		return max + over*resistance, false, false
	default:
		return target, false, false
	}
}

// constrainPan runs both axes through constrainAxis and returns the
// constrained position together with the edges that were hard-clamped.
func (c *Controller) constrainPan(x, y float64) (float64, float64, BoundaryStatus) {
	lim := c.panLimits()
	var status BoundaryStatus

	cx, hitMin, hitMax := constrainAxis(x, lim.MinX, lim.MaxX, c.cfg.ResistanceZone, c.cfg.Resistance)
	// Panning left of MinX means the right content edge is pinned; panning
	// right of MaxX pins the left edge.
	status.Right, status.Left = hitMin, hitMax

	cy, hitMin, hitMax := constrainAxis(y, lim.MinY, lim.MaxY, c.cfg.ResistanceZone, c.cfg.Resistance)
	status.Bottom, status.Top = hitMin, hitMax

	return cx, cy, status
}
