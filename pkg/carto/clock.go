package carto

import (
	"sync"
	"time"
)

// FrameFunc is a per-frame callback invoked with the current time.
type FrameFunc func(now time.Time)

// FrameID identifies a scheduled frame callback for cancellation.
type FrameID int

// Clock is the host animation clock: a per-frame callback scheduler that
// supports cancellation. Implementations must invoke each scheduled callback
// at most once.
type Clock interface {
	// Schedule registers fn to run on the next frame and returns an ID
	// usable with Cancel.
	Schedule(fn FrameFunc) FrameID

	// Cancel drops a scheduled callback. Cancelling an unknown or already
	// fired ID is a no-op.
	Cancel(id FrameID)
}

// framePeriod approximates a 60fps frame budget.
const framePeriod = 16 * time.Millisecond

// TickerClock is a real-time Clock that fires callbacks roughly every 16ms
// using timers. It is the production clock for terminal and headless hosts.
type TickerClock struct {
	mu     sync.Mutex
	nextID FrameID
	timers map[FrameID]*time.Timer
}

// NewTickerClock creates a TickerClock.
func NewTickerClock() *TickerClock {
	return &TickerClock{timers: make(map[FrameID]*time.Timer)}
}

// Schedule runs fn after one frame period.
func (c *TickerClock) Schedule(fn FrameFunc) FrameID {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextID++
	id := c.nextID
	c.timers[id] = time.AfterFunc(framePeriod, func() {
		c.mu.Lock()
		delete(c.timers, id)
		c.mu.Unlock()
		fn(time.Now())
	})
	return id
}

// Cancel stops a pending frame callback.
func (c *TickerClock) Cancel(id FrameID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if t, ok := c.timers[id]; ok {
		t.Stop()
		delete(c.timers, id)
	}
}

// Stop cancels every pending callback. The clock remains usable afterwards.
func (c *TickerClock) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for id, t := range c.timers {
		t.Stop()
		delete(c.timers, id)
	}
}

// ManualClock is a deterministic Clock for tests: frames fire only when
// Tick is called, advancing a synthetic time.
type ManualClock struct {
	mu      sync.Mutex
	now     time.Time
	nextID  FrameID
	pending map[FrameID]FrameFunc
}

// NewManualClock creates a ManualClock starting at the given time.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start, pending: make(map[FrameID]FrameFunc)}
}

// Schedule registers fn for the next Tick.
func (c *ManualClock) Schedule(fn FrameFunc) FrameID {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextID++
	c.pending[c.nextID] = fn
	return c.nextID
}

// Cancel drops a pending callback.
func (c *ManualClock) Cancel(id FrameID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.pending, id)
}

// Tick advances the synthetic time by d and fires all callbacks that were
// pending before the tick. Callbacks scheduled during the tick wait for the
// next one.
func (c *ManualClock) Tick(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	now := c.now
	fns := make([]FrameFunc, 0, len(c.pending))
	for id, fn := range c.pending {
		fns = append(fns, fn)
		delete(c.pending, id)
	}
	c.mu.Unlock()

	for _, fn := range fns {
		fn(now)
	}
}

// Now returns the clock's synthetic time.
func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Pending reports how many callbacks are waiting for the next tick.
func (c *ManualClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}
