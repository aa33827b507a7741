// Package carto implements the cartographic navigation controller: a
// stateful pan/zoom engine that frames grid content within a viewport.
//
// The controller is a state machine over {scale, transform, isAnimating}
// with boundary constraints, elastic resistance near the edges, and animated
// transitions. It owns its state exclusively; all interaction goes through
// public methods, and the rendering layer observes transform values through
// a finite set of named callbacks (see [Callbacks]).
//
// # Zoom Semantics
//
// In anchor mode ("upper-left") zooming never translates: the transform's
// x/y stay pinned at (0,0) and only the scale factor changes, so the
// upper-left corner of content never moves regardless of zoom level. In
// traditional mode zooming scales around the viewport center, recomputing
// the translation to keep the focal point stationary.
//
// # Boundaries
//
// Pan targets are constrained against limits computed from the viewport
// size, the scaled content size, and the header offsets reported via
// [Controller.UpdateHeaderState]. Motion into the resistance zone beyond a
// limit is damped by the configured resistance factor; motion past the zone
// clamps exactly to the limit, raises the per-edge boundary flag, invokes
// the boundary-hit callback and increments the hit counter.
//
// # Animation
//
// All transform changes route through a single animation path. With
// smoothing disabled transforms apply immediately; otherwise a time-boxed
// ease-out-cubic transition runs on the injected [Clock]. A new transform
// request interrupts an in-flight animation (last writer wins). Animation
// completion recomputes the achieved frame rate; runs under 50fps count as
// dropped frames in the performance stats.
//
// # Lifecycle
//
// State is fully serializable via [Controller.State] and
// [Controller.RestoreState] so callers can persist navigation per dataset.
// [Controller.Destroy] cancels any scheduled frame and drops callback
// references; a destroyed controller ignores further calls.
package carto
