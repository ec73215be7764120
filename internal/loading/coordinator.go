package loading

import (
	"context"
	"sync"
	"time"

	"github.com/Iron-Ham/loadcoord/internal/logging"
)

// Phase is the coordinator's position in its show/hide state machine.
type Phase int

const (
	// PhaseIdle: no show timer pending and the signal is off.
	PhaseIdle Phase = iota
	// PhasePendingShow: operations are in flight and the show timer is running.
	PhasePendingShow
	// PhaseVisible: the signal is on. Operations may have already finished
	// while the minimum display time runs out.
	PhaseVisible
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePendingShow:
		return "pending-show"
	case PhaseVisible:
		return "visible"
	default:
		return "unknown"
	}
}

// Coordinator decides when a busy signal should be visible for a set of
// concurrent operations. Fast operations never turn it on, and once on it
// stays on for at least the minimum display time.
//
// A Coordinator is safe for concurrent use. Its lifetime is bound to the
// context passed to [New].
type Coordinator struct {
	name   string
	logger *logging.Logger

	mu           sync.Mutex
	timing       Timing // defaults for the next cycle
	cycle        Timing // timing owned by the cycle in progress
	active       int
	visible      bool
	visibleSince time.Time
	showTimer    *time.Timer
	showSeq      uint64
	hideTimer    *time.Timer
	hideSeq      uint64
	subs         map[uint64]*subscriber
	nextSubID    uint64
	closed       bool
}

// New creates a Coordinator owned by ctx. When ctx is done, pending timers
// are stopped, the signal is turned off, and every subscription channel is
// closed. Operations that are still running keep being counted but the
// signal never turns on again.
func New(ctx context.Context, opts ...Option) *Coordinator {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logging.NopLogger()
	}

	c := &Coordinator{
		name:   o.name,
		logger: o.logger.WithCoordinator(o.name),
		timing: o.timing,
		subs:   make(map[uint64]*subscriber),
	}
	if o.bus != nil {
		c.bridge(o.bus)
	}
	context.AfterFunc(ctx, c.shutdown)
	return c
}

// Name returns the coordinator's name.
func (c *Coordinator) Name() string {
	return c.name
}

// Visible reports whether the busy signal is currently on.
func (c *Coordinator) Visible() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.visible
}

// Active returns the number of operations in flight.
func (c *Coordinator) Active() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// Phase returns the current state machine phase.
func (c *Coordinator) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case c.visible:
		return PhaseVisible
	case c.showTimer != nil:
		return PhasePendingShow
	default:
		return PhaseIdle
	}
}

// Timing returns the defaults applied to the next show cycle.
func (c *Coordinator) Timing() Timing {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.timing
}

// SetTiming replaces the defaults for future show cycles. A cycle already
// in progress keeps the timing it started with. It panics if either
// duration is negative.
func (c *Coordinator) SetTiming(t Timing) {
	t.mustValidate()

	c.mu.Lock()
	c.timing = t
	c.mu.Unlock()

	c.logger.Info("timing updated",
		"show_after_ms", t.ShowAfter.Milliseconds(),
		"min_display_ms", t.MinDisplayTime.Milliseconds())
}

// begin registers one operation and returns the active count after it.
func (c *Coordinator) begin(opts []CallOption) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.active++
	if c.active == 1 {
		t := c.timing
		for _, opt := range opts {
			opt(&t)
		}
		c.startCycleLocked(t)
	}
	return c.active
}

// end unregisters one operation and returns the active count after it.
func (c *Coordinator) end() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active == 0 {
		panic("loading: operation ended more times than it started")
	}
	c.active--
	if c.active == 0 {
		c.finishCycleLocked()
	}
	return c.active
}

// startCycleLocked handles the 0 -> 1 transition.
func (c *Coordinator) startCycleLocked(t Timing) {
	if c.closed {
		return
	}
	if c.hideTimer != nil {
		// Work resumed during the minimum display time: the signal stays on
		// and the cycle keeps its original timing.
		c.cancelHideLocked()
		return
	}
	if c.visible {
		return
	}

	c.cycle = t
	if t.ShowAfter <= 0 {
		c.setVisibleLocked(true)
		return
	}

	c.showSeq++
	seq := c.showSeq
	c.showTimer = time.AfterFunc(t.ShowAfter, func() { c.fireShow(seq) })
}

// finishCycleLocked handles the 1 -> 0 transition.
func (c *Coordinator) finishCycleLocked() {
	c.cancelShowLocked()
	if !c.visible {
		return
	}

	remaining := c.cycle.MinDisplayTime - time.Since(c.visibleSince)
	if remaining <= 0 || c.closed {
		c.setVisibleLocked(false)
		return
	}

	c.hideSeq++
	seq := c.hideSeq
	c.hideTimer = time.AfterFunc(remaining, func() { c.fireHide(seq) })
}

func (c *Coordinator) fireShow(seq uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// A stale callback lost the race with cancelShowLocked.
	if seq != c.showSeq || c.showTimer == nil {
		return
	}
	c.showTimer = nil
	if c.active > 0 && !c.visible && !c.closed {
		c.setVisibleLocked(true)
	}
}

func (c *Coordinator) fireHide(seq uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if seq != c.hideSeq || c.hideTimer == nil {
		return
	}
	c.hideTimer = nil
	if c.active == 0 && c.visible {
		c.setVisibleLocked(false)
	}
}

func (c *Coordinator) cancelShowLocked() {
	if c.showTimer == nil {
		return
	}
	c.showTimer.Stop()
	c.showTimer = nil
	c.showSeq++
}

func (c *Coordinator) cancelHideLocked() {
	if c.hideTimer == nil {
		return
	}
	c.hideTimer.Stop()
	c.hideTimer = nil
	c.hideSeq++
}

func (c *Coordinator) setVisibleLocked(v bool) {
	now := time.Now()
	tr := transition{visible: v, at: now, active: c.active}
	if v {
		c.visibleSince = now
		c.logger.Debug("loading shown", "active", c.active)
	} else {
		tr.shown = now.Sub(c.visibleSince)
		c.visibleSince = time.Time{}
		c.logger.Debug("loading hidden", "shown_ms", tr.shown.Milliseconds())
	}
	c.visible = v

	for _, s := range c.subs {
		s.deliver(tr)
	}
}

// shutdown runs once the owning context is done.
func (c *Coordinator) shutdown() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	c.cancelShowLocked()
	c.cancelHideLocked()
	if c.visible {
		c.setVisibleLocked(false)
	}
	for id, s := range c.subs {
		s.close()
		delete(c.subs, id)
	}
	c.logger.Debug("coordinator closed", "active", c.active)
}
