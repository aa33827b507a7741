package pafv

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/isogrid/isogrid/pkg/carto"
	"github.com/isogrid/isogrid/pkg/coords"
)

// DefaultReflowDuration keeps reflow animations under the 500ms budget.
const DefaultReflowDuration = 400 * time.Millisecond

// DragState describes an in-flight drag gesture. It is created on drag
// start and destroyed on drop or cancel; it is never persisted.
type DragState struct {
	AxisID          string       `json:"axisId"`
	SourceSlot      Slot         `json:"sourceSlot"`
	GhostID         string       `json:"ghostId"` // visual handle owned by the renderer
	IsDragging      bool         `json:"isDragging"`
	StartPosition   coords.Point `json:"startPosition"`
	CurrentPosition coords.Point `json:"currentPosition"`
	StartedAt       time.Time    `json:"startedAt"`
}

// ReflowStats summarizes one reflow animation.
type ReflowStats struct {
	Duration time.Duration `json:"duration"`
	Frames   int           `json:"frames"`
	// Err is the first render-step failure, if any. A failed step never
	// prevents the reflow from completing.
	Err error `json:"-"`
}

// EngineCallbacks is the finite set of callback slots the engine exposes.
// Nil slots are skipped.
type EngineCallbacks struct {
	// OnReflowStart and OnReflowComplete bracket every reflow animation,
	// regardless of render errors.
	OnReflowStart    func()
	OnReflowComplete func(ReflowStats)

	// RenderStep is the rendering layer's per-frame hook during reflow,
	// called with progress in [0,1]. Errors and panics are captured into
	// the reflow stats and do not abort the animation.
	RenderStep func(progress float64) error
}

// Engine is the axis repositioning engine: the drag/drop state machine
// (Idle → Dragging → {Dropped | Cancelled} → Idle) and reflow orchestration.
// Mapping mutations are delegated to the [Service]; change notifications
// therefore flow through the service's listeners, exactly once per public
// mutating call.
type Engine struct {
	mu     sync.Mutex
	svc    *Service
	clock  carto.Clock
	cb     EngineCallbacks
	logger *log.Logger

	drag           *DragState
	reflowDuration time.Duration
	reflow         *reflowRun
	destroyed      bool
}

type reflowRun struct {
	id      carto.FrameID
	start   time.Time // clock time of the first frame
	elapsed time.Duration
	frames  int
	err     error
}

// NewEngine creates an engine over the given service. A nil clock falls
// back to a real-time ticker clock; a nil logger falls back to log.Default.
func NewEngine(svc *Service, clock carto.Clock, cb EngineCallbacks, logger *log.Logger) *Engine {
	if clock == nil {
		clock = carto.NewTickerClock()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Engine{
		svc:            svc,
		clock:          clock,
		cb:             cb,
		logger:         logger,
		reflowDuration: DefaultReflowDuration,
	}
}

// =============================================================================
// Drag State Machine
// =============================================================================

// StartDrag transitions Idle → Dragging, recording the pointer position and
// allocating a ghost handle ID for the rendering layer. Starting a drag
// while one is active cancels the previous gesture first.
func (e *Engine) StartDrag(axisID string, sourceSlot Slot, pos coords.Point) DragState {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.destroyed {
		return DragState{}
	}

	e.drag = &DragState{
		AxisID:          axisID,
		SourceSlot:      sourceSlot,
		GhostID:         uuid.NewString(),
		IsDragging:      true,
		StartPosition:   pos,
		CurrentPosition: pos,
		StartedAt:       time.Now(),
	}
	return *e.drag
}

// MoveDrag updates the pointer position of the active gesture. No state
// transition occurs; moves outside a gesture are ignored.
func (e *Engine) MoveDrag(pos coords.Point) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.drag != nil {
		e.drag.CurrentPosition = pos
	}
}

// CancelDrag transitions Dragging → Idle, discarding the ghost with no
// mapping mutation. This is the Escape-key path.
func (e *Engine) CancelDrag() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.drag = nil
}

// Drag returns a copy of the active drag state and whether one exists.
func (e *Engine) Drag() (DragState, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.drag == nil {
		return DragState{}, false
	}
	return *e.drag, true
}

// HandleDrop transitions Dragging → Idle and applies the drop semantics:
//
//   - Unknown or disabled axis: the drop resolves successfully as a no-op;
//     the change listeners are never invoked.
//   - The dragged axis already holds a slot: the assignments of that slot
//     and targetSlot are exchanged as one atomic update with exactly one
//     notification.
//   - Otherwise the axis is assigned into targetSlot, replacing any
//     previous occupant.
//
// The change notification always happens before HandleDrop returns;
// persistence is asynchronous.
func (e *Engine) HandleDrop(axisID string, targetSlot Slot) error {
	e.mu.Lock()
	if e.destroyed {
		e.mu.Unlock()
		return nil
	}
	e.drag = nil
	svc := e.svc
	e.mu.Unlock()

	if svc == nil {
		return nil
	}
	axis, ok := svc.AxisByID(axisID)
	if !ok || !axis.IsEnabled {
		e.logger.Debug("ignoring drop of unknown axis", "axis", axisID)
		return nil
	}

	if current := svc.Mapping().SlotOf(axis.Facet); current != "" {
		if current == targetSlot {
			return nil
		}
		return svc.SwapAxes(current, targetSlot)
	}
	return svc.AssignAxis(targetSlot, axisID)
}

// =============================================================================
// Reflow
// =============================================================================

// UpdateMapping replaces the full mapping (one synchronous change
// notification through the service) and runs the reflow animation. The
// start and complete callbacks bracket the animation even when a render
// step fails; step errors are captured into the stats.
func (e *Engine) UpdateMapping(m Mapping) {
	e.mu.Lock()
	if e.destroyed {
		e.mu.Unlock()
		return
	}
	svc := e.svc
	e.mu.Unlock()

	if svc != nil {
		svc.SetMapping(m)
	}
	e.startReflow()
}

// SetReflowDuration overrides the reflow animation budget.
func (e *Engine) SetReflowDuration(d time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if d > 0 {
		e.reflowDuration = d
	}
}

func (e *Engine) startReflow() {
	e.mu.Lock()
	if e.destroyed {
		e.mu.Unlock()
		return
	}
	if e.reflow != nil {
		// A superseding mapping change interrupts the animation but the
		// bracket still closes for the interrupted run.
		e.clock.Cancel(e.reflow.id)
		interrupted := e.reflow
		e.reflow = nil
		done := e.cb.OnReflowComplete
		e.mu.Unlock()
		if done != nil {
			done(ReflowStats{Duration: interrupted.elapsed, Frames: interrupted.frames, Err: interrupted.err})
		}
		e.mu.Lock()
	}

	run := &reflowRun{}
	e.reflow = run
	run.id = e.clock.Schedule(e.reflowStep(run))
	started := e.cb.OnReflowStart
	e.mu.Unlock()

	if started != nil {
		started()
	}
}

func (e *Engine) reflowStep(run *reflowRun) carto.FrameFunc {
	return func(now time.Time) {
		e.mu.Lock()
		if e.destroyed || e.reflow != run {
			e.mu.Unlock()
			return
		}
		if run.start.IsZero() {
			run.start = now
		}
		run.frames++
		run.elapsed = now.Sub(run.start)

		progress := 1.0
		if e.reflowDuration > 0 && run.elapsed < e.reflowDuration {
			progress = float64(run.elapsed) / float64(e.reflowDuration)
		}
		step := e.cb.RenderStep
		e.mu.Unlock()

		if step != nil {
			if err := safeRenderStep(step, progress); err != nil {
				e.mu.Lock()
				if run.err == nil {
					run.err = err
				}
				e.mu.Unlock()
				e.logger.Warn("reflow render step failed", "err", err)
			}
		}

		e.mu.Lock()
		if e.destroyed || e.reflow != run {
			e.mu.Unlock()
			return
		}
		if progress >= 1 {
			e.reflow = nil
			done := e.cb.OnReflowComplete
			stats := ReflowStats{Duration: run.elapsed, Frames: run.frames, Err: run.err}
			e.mu.Unlock()
			if done != nil {
				done(stats)
			}
			return
		}
		run.id = e.clock.Schedule(e.reflowStep(run))
		e.mu.Unlock()
	}
}

// safeRenderStep shields the animation from a panicking renderer.
func safeRenderStep(step func(float64) error, progress float64) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("render step panic: %v", r)
		}
	}()
	return step(progress)
}

// IsReflowing reports whether a reflow animation is in flight.
func (e *Engine) IsReflowing() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.reflow != nil
}

// Destroy cancels any in-flight reflow, discards the drag state and drops
// callback references. Destroy is idempotent.
func (e *Engine) Destroy() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.destroyed {
		return
	}
	if e.reflow != nil {
		e.clock.Cancel(e.reflow.id)
		e.reflow = nil
	}
	e.drag = nil
	e.cb = EngineCallbacks{}
	e.destroyed = true
}
