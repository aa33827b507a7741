package carto

// Transform is the affine view transform applied to the content layer:
// translate by (X, Y), then scale by K.
type Transform struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	K float64 `json:"k"`
}

// Identity is the untransformed view.
var Identity = Transform{K: 1}

// lerp interpolates between two transforms at progress t in [0,1].
func lerp(from, to Transform, t float64) Transform {
	return Transform{
		X: from.X + (to.X-from.X)*t,
		Y: from.Y + (to.Y-from.Y)*t,
		K: from.K + (to.K-from.K)*t,
	}
}

// easeOutCubic is the default animation curve: fast start, gentle settle.
func easeOutCubic(t float64) float64 {
	u := 1 - t
	return 1 - u*u*u
}
