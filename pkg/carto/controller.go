package carto

import (
	"math"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/isogrid/isogrid/pkg/coords"
)

// Default configuration values.
const (
	DefaultZoomMin           = 0.25
	DefaultZoomMax           = 4.0
	DefaultZoomStep          = 0.2
	DefaultResistanceZone    = 50.0
	DefaultResistance        = 0.3
	DefaultWheelZoomFactor   = 0.002
	DefaultAnimationDuration = 300 * time.Millisecond

	// minAcceptableFPS is the frame-rate floor; animations that settle
	// below it count as dropped frames in the performance stats.
	minAcceptableFPS = 50.0
)

// Config holds the controller's tunables. Zero-valued numeric fields take
// the package defaults; booleans are explicit (smoothing is never inferred
// from the environment; the caller decides).
type Config struct {
	ViewportWidth  float64 `json:"viewport_width"`
	ViewportHeight float64 `json:"viewport_height"`

	// Unscaled content extent, typically the grid template totals.
	ContentWidth  float64 `json:"content_width"`
	ContentHeight float64 `json:"content_height"`

	// Data-cell track sizes used by PanToCell.
	CellWidth  float64 `json:"cell_width"`
	CellHeight float64 `json:"cell_height"`

	ZoomMin  float64 `json:"zoom_min"`
	ZoomMax  float64 `json:"zoom_max"`
	ZoomStep float64 `json:"zoom_step"`

	// AnchorMode pins the upper-left corner during zoom. When false, zoom
	// scales around the viewport center.
	AnchorMode bool `json:"anchor_mode"`

	EnableSmoothing   bool          `json:"enable_smoothing"`
	AnimationDuration time.Duration `json:"animation_duration"`

	ResistanceZone  float64 `json:"resistance_zone"`
	Resistance      float64 `json:"resistance"`
	WheelZoomFactor float64 `json:"wheel_zoom_factor"`
}

func (c Config) withDefaults() Config {
	if c.ZoomMin <= 0 {
		c.ZoomMin = DefaultZoomMin
	}
	if c.ZoomMax <= 0 {
		c.ZoomMax = DefaultZoomMax
	}
	if c.ZoomStep <= 0 {
		c.ZoomStep = DefaultZoomStep
	}
	if c.ResistanceZone <= 0 {
		c.ResistanceZone = DefaultResistanceZone
	}
	if c.Resistance <= 0 {
		c.Resistance = DefaultResistance
	}
	if c.WheelZoomFactor <= 0 {
		c.WheelZoomFactor = DefaultWheelZoomFactor
	}
	if c.AnimationDuration <= 0 {
		c.AnimationDuration = DefaultAnimationDuration
	}
	return c
}

// HeaderState is the geometry the header subsystem reports: the pixel extent
// of the sticky row-header columns and column-header rows.
type HeaderState struct {
	LeftOffset float64 `json:"left_offset"`
	TopOffset  float64 `json:"top_offset"`
}

// Callbacks is the finite set of named callback slots the controller
// exposes. Nil slots are skipped. Callbacks are invoked outside the
// controller's lock, so they may call back into the controller.
type Callbacks struct {
	// OnTransform receives every applied transform, including each frame
	// of an animated transition.
	OnTransform func(Transform)

	// OnBoundaryHit fires when a pan clamps against a hard limit.
	OnBoundaryHit func(BoundaryStatus)

	// OnAnimationComplete fires when a transition finishes, with the
	// achieved frame rate.
	OnAnimationComplete func(fps float64)
}

// Performance accumulates navigation statistics for the session.
type Performance struct {
	FrameRate     float64 `json:"frame_rate"`
	DroppedFrames int     `json:"dropped_frames"`
	Animations    int     `json:"animations"`
	Interrupted   int     `json:"interrupted"`
	BoundaryHits  int     `json:"boundary_hits"`
}

// State is the controller's full serializable state.
type State struct {
	Scale       float64        `json:"scale"`
	Transform   Transform      `json:"transform"`
	AnchorPoint coords.Point   `json:"anchor_point"`
	IsAnimating bool           `json:"is_animating"`
	Boundary    BoundaryStatus `json:"boundary"`
	Performance Performance    `json:"performance"`
	LastUpdated time.Time      `json:"last_updated"`
}

// Controller is the pan/zoom engine. Create one with [New]; the zero value
// is not usable. All methods are safe for concurrent use, though the
// expected call pattern is a single UI goroutine plus the clock.
type Controller struct {
	mu     sync.Mutex
	cfg    Config
	cb     Callbacks
	clock  Clock
	logger *log.Logger

	scale       float64
	transform   Transform
	header      HeaderState
	boundary    BoundaryStatus
	perf        Performance
	lastUpdated time.Time
	destroyed   bool

	anim *animation
}

type animation struct {
	id       FrameID
	from, to Transform
	start    time.Time
	duration time.Duration
	frames   int
}

// New creates a controller. A nil clock falls back to a real-time
// [TickerClock]; a nil logger falls back to [log.Default].
func New(clock Clock, cfg Config, cb Callbacks, logger *log.Logger) *Controller {
	if clock == nil {
		clock = NewTickerClock()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Controller{
		cfg:         cfg.withDefaults(),
		cb:          cb,
		clock:       clock,
		logger:      logger,
		scale:       1,
		transform:   Identity,
		lastUpdated: time.Now(),
	}
}

// =============================================================================
// Zoom
// =============================================================================

// ZoomTo animates to the given scale, clamped to the configured extent. In
// anchor mode the translation is untouched; otherwise the transform is
// recomputed so the viewport center stays stationary.
func (c *Controller) ZoomTo(scale float64) {
	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return
	}
	target := c.zoomTransform(scale)
	fire := c.animateToTransform(target)
	c.mu.Unlock()
	fire()
}

// ZoomIn zooms in by one multiplicative step.
func (c *Controller) ZoomIn() { c.ZoomTo(c.Scale() * (1 + c.zoomStep())) }

// ZoomOut zooms out by one multiplicative step.
func (c *Controller) ZoomOut() { c.ZoomTo(c.Scale() / (1 + c.zoomStep())) }

// ResetZoom returns to scale 1.0.
func (c *Controller) ResetZoom() { c.ZoomTo(1) }

// HandleWheel applies a continuous scroll-to-zoom gesture. The delta is
// converted to a multiplicative factor and applied immediately, bypassing
// the animation path, since wheel events arrive faster than any transition could
// finish. In anchor mode the translation never changes, which keeps the
// anchor invariant even for continuous gestures.
func (c *Controller) HandleWheel(deltaY float64) {
	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return
	}
	scale := c.scale * math.Exp(-deltaY*c.cfg.WheelZoomFactor)
	target := c.zoomTransform(scale)
	fire := c.applyTransform(target)
	c.mu.Unlock()
	fire()
}

// zoomTransform computes the target transform for a new scale. Caller holds
// the lock.
func (c *Controller) zoomTransform(scale float64) Transform {
	scale = clamp(scale, c.cfg.ZoomMin, c.cfg.ZoomMax)
	if c.cfg.AnchorMode {
		return Transform{X: c.transform.X, Y: c.transform.Y, K: scale}
	}
	// Keep the viewport center focal point stationary: the logical point
	// under the center before the zoom must map back to the center after.
	cx, cy := c.cfg.ViewportWidth/2, c.cfg.ViewportHeight/2
	lx := (cx - c.transform.X) / c.scale
	ly := (cy - c.transform.Y) / c.scale
	return Transform{X: cx - lx*scale, Y: cy - ly*scale, K: scale}
}

func (c *Controller) zoomStep() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cfg.ZoomStep
}

// =============================================================================
// Pan
// =============================================================================

// PanTo animates the translation to (x, y), constrained by the boundary
// logic: elastic damping inside the resistance zone, exact clamping beyond
// it with boundary flags, hit counter and callback.
func (c *Controller) PanTo(x, y float64) {
	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return
	}
	fire := c.panToLocked(x, y)
	c.mu.Unlock()
	fire()
}

func (c *Controller) panToLocked(x, y float64) func() {
	cx, cy, status := c.constrainPan(x, y)
	c.boundary = status

	var onHit func()
	if status.Any() {
		c.perf.BoundaryHits++
		c.logger.Debug("pan hit boundary",
			"left", status.Left, "right", status.Right,
			"top", status.Top, "bottom", status.Bottom)
		if cb := c.cb.OnBoundaryHit; cb != nil {
			s := status
			onHit = func() { cb(s) }
		}
	}

	fire := c.animateToTransform(Transform{X: cx, Y: cy, K: c.scale})
	return func() {
		fire()
		if onHit != nil {
			onHit()
		}
	}
}

// PanBy pans relative to the current translation.
func (c *Controller) PanBy(dx, dy float64) {
	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return
	}
	fire := c.panToLocked(c.transform.X+dx, c.transform.Y+dy)
	c.mu.Unlock()
	fire()
}

// PanToCell centers the data cell at the given 0-based leaf coordinates in
// the viewport, subject to boundary constraints.
func (c *Controller) PanToCell(cellX, cellY int) {
	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return
	}
	px := (float64(cellX) + 0.5) * c.cfg.CellWidth * c.scale
	py := (float64(cellY) + 0.5) * c.cfg.CellHeight * c.scale
	x := c.cfg.ViewportWidth/2 - c.header.LeftOffset - px
	y := c.cfg.ViewportHeight/2 - c.header.TopOffset - py
	fire := c.panToLocked(x, y)
	c.mu.Unlock()
	fire()
}

// CenterOnGrid frames the whole content centered in the viewport. This is an
// explicit framing call and bypasses boundary constraints: when the content
// is smaller than the viewport the centered position lies outside the pan
// limits on purpose.
func (c *Controller) CenterOnGrid() {
	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return
	}
	x := (c.cfg.ViewportWidth - c.header.LeftOffset - c.cfg.ContentWidth*c.scale) / 2
	y := (c.cfg.ViewportHeight - c.header.TopOffset - c.cfg.ContentHeight*c.scale) / 2
	fire := c.animateToTransform(Transform{X: x, Y: y, K: c.scale})
	c.mu.Unlock()
	fire()
}

// ResetPan returns the translation to the origin.
func (c *Controller) ResetPan() { c.PanTo(0, 0) }

// =============================================================================
// Animation
// =============================================================================

// animateToTransform is the single path every transform change routes
// through. Caller holds the lock; the returned func fires pending callbacks
// and must be invoked after unlocking.
func (c *Controller) animateToTransform(to Transform) func() {
	if !c.cfg.EnableSmoothing {
		return c.applyTransform(to)
	}

	if c.anim != nil {
		c.clock.Cancel(c.anim.id)
		c.anim = nil
		c.perf.Interrupted++
	}

	a := &animation{from: c.transform, to: to, duration: c.cfg.AnimationDuration}
	c.anim = a
	c.perf.Animations++
	a.id = c.clock.Schedule(c.stepFunc(a))
	return func() {}
}

// stepFunc returns the per-frame callback for one animation. Stale frames
// from an interrupted animation are ignored.
func (c *Controller) stepFunc(a *animation) FrameFunc {
	return func(now time.Time) {
		c.mu.Lock()
		if c.destroyed || c.anim != a {
			c.mu.Unlock()
			return
		}

		if a.start.IsZero() {
			a.start = now
		}
		a.frames++

		progress := 1.0
		if a.duration > 0 {
			progress = float64(now.Sub(a.start)) / float64(a.duration)
		}
		if progress >= 1 {
			c.anim = nil
			fps := achievedFPS(a.frames, now.Sub(a.start))
			c.perf.FrameRate = fps
			if fps < minAcceptableFPS {
				c.perf.DroppedFrames++
			}
			fire := c.applyTransform(a.to)
			done := c.cb.OnAnimationComplete
			c.mu.Unlock()
			fire()
			if done != nil {
				done(fps)
			}
			return
		}

		fire := c.applyTransform(lerp(a.from, a.to, easeOutCubic(progress)))
		a.id = c.clock.Schedule(c.stepFunc(a))
		c.mu.Unlock()
		fire()
	}
}

// achievedFPS derives the frame rate from frame-count samples and elapsed
// time. A zero elapsed time reports the full frame budget.
func achievedFPS(frames int, elapsed time.Duration) float64 {
	if elapsed <= 0 {
		return 60
	}
	return float64(frames) / elapsed.Seconds()
}

// applyTransform commits a transform. Caller holds the lock; the returned
// func fires the transform callback.
func (c *Controller) applyTransform(tr Transform) func() {
	c.transform = tr
	c.scale = tr.K
	c.lastUpdated = time.Now()
	if cb := c.cb.OnTransform; cb != nil {
		return func() { cb(tr) }
	}
	return func() {}
}

// =============================================================================
// State & Lifecycle
// =============================================================================

// Scale returns the current zoom scale.
func (c *Controller) Scale() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.scale
}

// Transform returns the current view transform.
func (c *Controller) Transform() Transform {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.transform
}

// IsAnimating reports whether a transition is in flight.
func (c *Controller) IsAnimating() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.anim != nil
}

// State returns a snapshot of the full controller state, suitable for
// JSON persistence per dataset.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	anchor := coords.Point{}
	if !c.cfg.AnchorMode {
		anchor = coords.Point{X: c.cfg.ViewportWidth / 2, Y: c.cfg.ViewportHeight / 2}
	}
	return State{
		Scale:       c.scale,
		Transform:   c.transform,
		AnchorPoint: anchor,
		IsAnimating: c.anim != nil,
		Boundary:    c.boundary,
		Performance: c.perf,
		LastUpdated: c.lastUpdated,
	}
}

// RestoreState reinstates a previously captured state without animating.
// In-flight animations are cancelled; IsAnimating is never restored.
func (c *Controller) RestoreState(s State) {
	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return
	}
	if c.anim != nil {
		c.clock.Cancel(c.anim.id)
		c.anim = nil
	}
	c.boundary = s.Boundary
	c.perf = s.Performance
	fire := c.applyTransform(Transform{X: s.Transform.X, Y: s.Transform.Y, K: clamp(s.Scale, c.cfg.ZoomMin, c.cfg.ZoomMax)})
	c.mu.Unlock()
	fire()
}

// UpdateHeaderState records the header geometry used by boundary math.
func (c *Controller) UpdateHeaderState(h HeaderState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.header = h
}

// UpdateConfig reconfigures the controller live without resetting state.
// The current scale is re-clamped against the new zoom extent.
func (c *Controller) UpdateConfig(cfg Config) {
	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return
	}
	c.cfg = cfg.withDefaults()
	clamped := clamp(c.scale, c.cfg.ZoomMin, c.cfg.ZoomMax)
	fire := func() {}
	if clamped != c.scale {
		fire = c.applyTransform(Transform{X: c.transform.X, Y: c.transform.Y, K: clamped})
	}
	c.mu.Unlock()
	fire()
}

// Config returns a copy of the active configuration.
func (c *Controller) Config() Config {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cfg
}

// Destroy cancels any scheduled frame and drops callback references. The
// controller ignores all calls afterwards. Destroy is idempotent.
func (c *Controller) Destroy() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.destroyed {
		return
	}
	if c.anim != nil {
		c.clock.Cancel(c.anim.id)
		c.anim = nil
	}
	c.cb = Callbacks{}
	c.destroyed = true
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
