package pafv

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/isogrid/isogrid/pkg/errors"
)

// Axis is one assignable axis as exposed to callers: a facet-table row
// reduced to what the UI needs.
type Axis struct {
	ID             string `json:"id"`
	Facet          string `json:"facet"`
	Label          string `json:"label"`
	LatchDimension string `json:"latchDimension"`
	IsEnabled      bool   `json:"isEnabled"`
	SortOrder      int    `json:"sortOrder"`
}

// axisFromRow reduces a facet-table row to an Axis. The facet identifier is
// the source column, falling back to the row name.
func axisFromRow(r FacetRow) Axis {
	facet := r.SourceColumn
	if facet == "" {
		facet = r.Name
	}
	return Axis{
		ID:             r.ID,
		Facet:          facet,
		Label:          r.Name,
		LatchDimension: r.Axis,
		IsEnabled:      r.Enabled,
		SortOrder:      r.SortOrder,
	}
}

// ServiceConfig configures a [Service].
type ServiceConfig struct {
	// CanvasID and ViewName key the persisted view state.
	CanvasID string
	ViewName string

	// DebounceDelay batches write-through persistence. Zero writes
	// synchronously on every mutation.
	DebounceDelay time.Duration
}

// Metrics aggregates the service's interaction patterns for the session.
type Metrics struct {
	TotalRepositions int       `json:"total_repositions"` // assigns + swaps
	Assigns          int       `json:"assigns"`
	Swaps            int       `json:"swaps"`
	Clears           int       `json:"clears"`
	SwapRatio        float64   `json:"swap_ratio"` // swaps / repositions
	SessionStarted   time.Time `json:"session_started"`
}

// ListenerID identifies a registered change listener.
type ListenerID int

// Service is the axis metadata service: it wraps the external facet table,
// owns the current mapping, and persists view state with debounced
// write-through. All methods are safe for concurrent use.
type Service struct {
	mu       sync.Mutex
	axes     []Axis
	mapping  Mapping
	cfg      ServiceConfig
	views    ViewStore
	logger   *log.Logger
	listener map[ListenerID]func(Mapping)
	nextID   ListenerID

	assigns, swaps, clears int
	started                time.Time

	flushTimer *time.Timer
	dirty      bool
	destroyed  bool
}

// NewService builds a service over the given stores. Construction never
// fails: a facet-table read error degrades to an empty axis list with a
// logged warning, and a missing or unreadable view state starts from an
// empty mapping. Either store may be nil (no facets / no persistence).
func NewService(ctx context.Context, facets FacetStore, views ViewStore, cfg ServiceConfig, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.Default()
	}

	s := &Service{
		cfg:      cfg,
		views:    views,
		logger:   logger,
		listener: make(map[ListenerID]func(Mapping)),
		started:  time.Now(),
	}

	if facets != nil {
		rows, err := facets.ListFacets(ctx)
		if err != nil {
			logger.Warn("facet table unavailable, starting with empty axis list", "err", err)
		} else {
			for _, r := range rows {
				s.axes = append(s.axes, axisFromRow(r))
			}
		}
	}

	if views != nil && cfg.CanvasID != "" {
		state, err := views.GetViewState(ctx, cfg.CanvasID, cfg.ViewName)
		switch {
		case err != nil:
			logger.Warn("view state unavailable, starting from empty mapping", "err", err)
		case state != nil:
			s.mapping = state.Mapping.Clone()
		}
	}

	return s
}

// AvailableAxes returns the enabled axes sorted by sort order.
func (s *Service) AvailableAxes() []Axis {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []Axis
	for _, a := range s.axes {
		if a.IsEnabled {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out
}

// AxisByID returns the axis with the given ID, enabled or not, and whether
// it exists.
func (s *Service) AxisByID(id string) (Axis, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.axisByIDLocked(id)
}

func (s *Service) axisByIDLocked(id string) (Axis, bool) {
	for _, a := range s.axes {
		if a.ID == id {
			return a, true
		}
	}
	return Axis{}, false
}

// Mapping returns a copy of the current mapping.
func (s *Service) Mapping() Mapping {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mapping.Clone()
}

// AssignAxis writes the facet identified by facetID into slot, replacing
// whatever was there. If the facet already occupied another slot it is
// removed from it first, so a facet never ends up in two slots. The change
// listeners are notified exactly once, before AssignAxis returns.
func (s *Service) AssignAxis(slot Slot, facetID string) error {
	s.mu.Lock()
	if s.destroyed {
		s.mu.Unlock()
		return nil
	}
	axis, ok := s.axisByIDLocked(facetID)
	if !ok || !axis.IsEnabled {
		s.mu.Unlock()
		return errors.New(errors.ErrCodeAxisNotFound, "unknown or disabled axis: %s", facetID)
	}

	if prev := s.mapping.SlotOf(axis.Facet); prev != "" && prev != slot {
		s.mapping.Set(prev, nil)
	}
	s.mapping.Set(slot, &Assignment{
		LatchDimension: axis.LatchDimension,
		Facet:          axis.Facet,
		Label:          axis.Label,
	})
	s.assigns++
	notify := s.snapshotForNotifyLocked()
	s.mu.Unlock()

	notify()
	return nil
}

// SwapAxes exchanges the assignments of two slots as one atomic mapping
// update with a single notification. Either slot may be empty.
func (s *Service) SwapAxes(slotA, slotB Slot) error {
	s.mu.Lock()
	if s.destroyed || slotA == slotB {
		s.mu.Unlock()
		return nil
	}
	a, b := s.mapping.Get(slotA), s.mapping.Get(slotB)
	s.mapping.Set(slotA, b)
	s.mapping.Set(slotB, a)
	s.swaps++
	notify := s.snapshotForNotifyLocked()
	s.mu.Unlock()

	notify()
	return nil
}

// ClearAxis removes the assignment from a slot. Clearing an empty slot is a
// no-op and does not notify.
func (s *Service) ClearAxis(slot Slot) error {
	s.mu.Lock()
	if s.destroyed || s.mapping.Get(slot) == nil {
		s.mu.Unlock()
		return nil
	}
	s.mapping.Set(slot, nil)
	s.clears++
	notify := s.snapshotForNotifyLocked()
	s.mu.Unlock()

	notify()
	return nil
}

// SetMapping replaces the full mapping with a single notification.
func (s *Service) SetMapping(m Mapping) {
	s.mu.Lock()
	if s.destroyed {
		s.mu.Unlock()
		return
	}
	s.mapping = m.Clone()
	notify := s.snapshotForNotifyLocked()
	s.mu.Unlock()

	notify()
}

// ValidateMapping validates the current mapping. It never returns an error
// value; problems are reported inside the [Validation].
func (s *Service) ValidateMapping() Validation {
	s.mu.Lock()
	m := s.mapping.Clone()
	s.mu.Unlock()
	return m.Validate()
}

// Metrics returns the session's interaction aggregates.
func (s *Service) Metrics() Metrics {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := s.assigns + s.swaps
	ratio := 0.0
	if total > 0 {
		ratio = float64(s.swaps) / float64(total)
	}
	return Metrics{
		TotalRepositions: total,
		Assigns:          s.assigns,
		Swaps:            s.swaps,
		Clears:           s.clears,
		SwapRatio:        ratio,
		SessionStarted:   s.started,
	}
}

// AddChangeListener registers fn to be invoked synchronously, once per
// mutation, with the new mapping.
func (s *Service) AddChangeListener(fn func(Mapping)) ListenerID {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	s.listener[s.nextID] = fn
	return s.nextID
}

// RemoveChangeListener unregisters a listener. Unknown IDs are ignored.
func (s *Service) RemoveChangeListener(id ListenerID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.listener, id)
}

// snapshotForNotifyLocked captures the listeners and mapping under the lock
// and schedules persistence; the returned func runs the notifications
// outside the lock.
func (s *Service) snapshotForNotifyLocked() func() {
	s.dirty = true
	s.scheduleFlushLocked()

	m := s.mapping.Clone()
	fns := make([]func(Mapping), 0, len(s.listener))
	for _, fn := range s.listener {
		fns = append(fns, fn)
	}
	return func() {
		for _, fn := range fns {
			fn(m)
		}
	}
}

// scheduleFlushLocked arranges the debounced write-through. With a zero
// delay the write happens synchronously on the mutating call.
func (s *Service) scheduleFlushLocked() {
	if s.views == nil || s.cfg.CanvasID == "" {
		s.dirty = false
		return
	}
	if s.cfg.DebounceDelay <= 0 {
		s.flushLocked()
		return
	}
	if s.flushTimer != nil {
		s.flushTimer.Stop()
	}
	s.flushTimer = time.AfterFunc(s.cfg.DebounceDelay, s.Flush)
}

// Flush forces any pending write-through immediately.
func (s *Service) Flush() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dirty {
		s.flushLocked()
	}
}

func (s *Service) flushLocked() {
	state := ViewState{
		CanvasID:  s.cfg.CanvasID,
		ViewName:  s.cfg.ViewName,
		Mapping:   s.mapping.Clone(),
		UpdatedAt: time.Now(),
	}
	s.dirty = false
	if err := s.views.UpsertViewState(context.Background(), state); err != nil {
		s.logger.Error("persist view state", "canvas", state.CanvasID, "view", state.ViewName, "err", err)
	}
}

// Destroy flushes pending writes, stops the debounce timer and drops all
// listeners. The service refuses further mutations. Destroy is idempotent.
func (s *Service) Destroy() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.destroyed {
		return
	}
	if s.flushTimer != nil {
		s.flushTimer.Stop()
		s.flushTimer = nil
	}
	if s.dirty && s.views != nil && s.cfg.CanvasID != "" {
		s.flushLocked()
	}
	s.listener = make(map[ListenerID]func(Mapping))
	s.destroyed = true
}
