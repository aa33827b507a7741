// Package coords converts between pixel (screen) space and logical (grid)
// space under two different coordinate origins.
//
// Two origin patterns are supported:
//
//   - [PatternAnchor]: logical (0,0) sits at the top-left of the viewport,
//     matching traditional spreadsheets. The transform is a pure scale.
//   - [PatternBipolar]: logical (0,0) sits at the viewport center, used for
//     quadrant-style matrices (e.g. priority grids). The transform is a scale
//     plus a center-relative translation; the translation is divided by the
//     scale before being applied so that zooming never moves the logical
//     origin.
//
// Screen points and logical points are both expressed as [Point]; the two
// spaces are never intermixed without an explicit transform through
// [ScreenToLogical] or [LogicalToScreen], which are mutual inverses up to
// floating-point tolerance (see [VerifyRoundTrip]).
package coords

import "math"

// Pattern selects the coordinate origin convention.
type Pattern string

const (
	// PatternAnchor places logical (0,0) at the viewport top-left.
	PatternAnchor Pattern = "anchor"
	// PatternBipolar places logical (0,0) at the viewport center.
	PatternBipolar Pattern = "bipolar"
)

// Point is a position in either screen or logical space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// System is the pure configuration of a coordinate transform. It holds no
// mutable state and is safe to copy and share.
type System struct {
	Pattern        Pattern `json:"pattern"`
	Scale          float64 `json:"scale"`
	ViewportWidth  float64 `json:"viewport_width"`
	ViewportHeight float64 `json:"viewport_height"`
}

// effectiveScale guards against a zero-valued System; a scale of 0 would
// otherwise produce NaN/Inf coordinates.
func (s System) effectiveScale() float64 {
	if s.Scale == 0 {
		return 1
	}
	return s.Scale
}

// ScreenToLogical converts a screen-space point to logical space.
func ScreenToLogical(p Point, s System) Point {
	k := s.effectiveScale()
	out := Point{X: p.X / k, Y: p.Y / k}
	if s.Pattern == PatternBipolar {
		out.X -= s.ViewportWidth / 2 / k
		out.Y -= s.ViewportHeight / 2 / k
	}
	return out
}

// LogicalToScreen converts a logical-space point to screen space. It is the
// inverse of [ScreenToLogical].
func LogicalToScreen(p Point, s System) Point {
	k := s.effectiveScale()
	if s.Pattern == PatternBipolar {
		p = Point{X: p.X + s.ViewportWidth/2/k, Y: p.Y + s.ViewportHeight/2/k}
	}
	return Point{X: p.X * k, Y: p.Y * k}
}

// VerifyRoundTrip converts a screen point to logical space and back, and
// reports whether both axis deltas stay within tolerance. A tolerance of 0
// or below uses the default of 0.001. This is a correctness property used in
// testing, not a runtime guard.
func VerifyRoundTrip(screen Point, s System, tolerance float64) bool {
	if tolerance <= 0 {
		tolerance = 0.001
	}
	back := LogicalToScreen(ScreenToLogical(screen, s), s)
	return math.Abs(back.X-screen.X) <= tolerance && math.Abs(back.Y-screen.Y) <= tolerance
}

// Preset is a fixed default configuration for an origin pattern.
type Preset struct {
	Pattern     Pattern `json:"pattern"`
	Scale       float64 `json:"scale"`
	Description string  `json:"description"`
}

// OriginPreset returns the default scale and a human-readable description
// for the given pattern. Unknown patterns fall back to the anchor preset.
func OriginPreset(p Pattern) Preset {
	switch p {
	case PatternBipolar:
		return Preset{
			Pattern:     PatternBipolar,
			Scale:       1.0,
			Description: "origin at viewport center, quadrant-style matrices",
		}
	default:
		return Preset{
			Pattern:     PatternAnchor,
			Scale:       1.0,
			Description: "origin at top-left, traditional spreadsheet layout",
		}
	}
}
