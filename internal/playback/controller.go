// Package playback owns the auto-advance timing state machine for one
// accordion container: the current item index, the pause state, the
// remaining time, and the single pending auto-advance timer.
package playback

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/serge22/media-accordion/internal/media"
)

// Sink receives the controller's output. Callbacks are delivered
// synchronously from whichever event is being handled (a tap, the timer
// firing, a visibility change); implementations must not call back into
// the Controller from inside a callback.
type Sink interface {
	// ItemActivated fires on every item transition. prev is -1 for the
	// very first activation.
	ItemActivated(prev, next int)
	// StateChanged fires whenever the playback state moves.
	StateChanged(old, next State)
}

// Controller reconciles clicks, timer fires, and visibility changes
// into one consistent auto-advance schedule. At most one timer is ever
// armed; every transition out of StateRunning cancels it first.
type Controller struct {
	mu sync.Mutex

	items    []media.Item
	autoplay bool
	clock    clockwork.Clock
	sink     Sink

	state   State
	current int
	visible bool
	started bool // a full-duration run has happened at least once

	// Timing snapshot. remaining is only meaningful while paused; while
	// running it is derived from itemStart and itemDuration on demand.
	remaining    time.Duration
	itemStart    time.Time
	itemDuration time.Duration

	timer    clockwork.Timer
	timerSeq uint64 // invalidates in-flight fires after a cancel
}

// New creates a controller for the given items. The clock is injected
// so tests can drive the schedule with a fake one.
func New(items []media.Item, autoplay bool, clock clockwork.Clock, sink Sink) *Controller {
	return &Controller{
		items:    items,
		autoplay: autoplay,
		clock:    clock,
		sink:     sink,
		state:    StateIdle,
	}
}

// State returns the current playback state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// CurrentIndex returns the index of the active item.
func (c *Controller) CurrentIndex() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Remaining returns the time left on the current item's schedule: the
// snapshot while paused, or the derived value while running.
func (c *Controller) Remaining() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateRunning {
		left := c.itemDuration - c.clock.Since(c.itemStart)
		if left < 0 {
			left = 0
		}
		return left
	}
	return c.remaining
}

// Start begins the presentation. It is called once, after the owning
// instance becomes visible for the first time; later calls are no-ops.
// With autoplay disabled it activates item 0 and parks in PausedUser
// without arming anything.
func (c *Controller) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.items) == 0 || c.state != StateIdle || c.started {
		return
	}
	c.activateLocked(-1, 0)
	if !c.autoplay {
		c.remaining = c.itemDuration
		c.setStateLocked(StatePausedUser)
		return
	}
	c.beginRunLocked()
}

// AdvanceToNext moves to (current+1) mod len(items). This is the same
// transition the armed timer performs when it fires.
func (c *Controller) AdvanceToNext() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.items) == 0 {
		return
	}
	c.advanceLocked((c.current + 1) % len(c.items))
}

// JumpTo is explicit navigation (header click or carousel drag). It is
// a no-op for the current index or an out-of-range one.
func (c *Controller) JumpTo(index int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if index < 0 || index >= len(c.items) || index == c.current {
		return
	}
	c.advanceLocked(index)
}

// UserPause enters the explicit pause state, snapshotting the remaining
// time. Idempotent; a user pause outranks a visibility pause.
func (c *Controller) UserPause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch c.state {
	case StatePausedUser:
		return
	case StateRunning:
		c.cancelTimerLocked()
		c.snapshotRemainingLocked()
	}
	c.setStateLocked(StatePausedUser)
}

// UserResume leaves the explicit pause state. If the controller never
// ran (autoplay was off), the first resume is a full-duration start;
// otherwise the schedule continues from the snapshotted remainder. When
// the container is not visible the controller parks in PausedHidden and
// picks the remainder up when visibility returns.
func (c *Controller) UserResume() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StatePausedUser {
		return
	}
	if !c.started {
		c.beginRunLocked()
		return
	}
	if !c.visible {
		c.setStateLocked(StatePausedHidden)
		return
	}
	c.resumeRemainderLocked()
}

// TogglePause flips between user-paused and running, the way a single
// pause/resume control does.
func (c *Controller) TogglePause() {
	if c.State() == StatePausedUser {
		c.UserResume()
		return
	}
	c.UserPause()
}

// SetVisible feeds visibility transitions into the schedule. Becoming
// hidden while running snapshots the remainder; becoming visible
// resumes a hidden pause (never a user pause).
func (c *Controller) SetVisible(visible bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.visible == visible {
		return
	}
	c.visible = visible
	if !visible {
		if c.state == StateRunning {
			c.cancelTimerLocked()
			c.snapshotRemainingLocked()
			c.setStateLocked(StatePausedHidden)
		}
		return
	}
	if c.state != StatePausedHidden {
		return
	}
	if !c.started {
		c.beginRunLocked()
		return
	}
	c.resumeRemainderLocked()
}

// Stop cancels any pending timer and returns to Idle. Safe to call in
// any state, any number of times.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelTimerLocked()
	if c.state != StateIdle {
		c.setStateLocked(StateIdle)
	}
}

// --- internals (all require c.mu held) ---

// activateLocked performs the sole item transition: prev deactivates,
// next activates, and the new item's duration is re-read.
func (c *Controller) activateLocked(prev, next int) {
	c.current = next
	c.itemDuration = c.items[next].Duration
	c.itemStart = c.clock.Now()
	if c.sink != nil {
		c.sink.ItemActivated(prev, next)
	}
}

// advanceLocked is shared by timer fires and direct navigation. It
// cancels any pre-existing timer before arming a new one, so no event
// ordering can leave two timers alive.
func (c *Controller) advanceLocked(next int) {
	c.cancelTimerLocked()
	prev := c.current
	c.activateLocked(prev, next)
	if c.state == StateRunning && c.visible {
		c.armLocked(c.itemDuration)
		return
	}
	// Paused or hidden: the new item waits with its full duration.
	c.remaining = c.itemDuration
}

// beginRunLocked starts a full-duration run of the current item.
func (c *Controller) beginRunLocked() {
	c.started = true
	c.itemStart = c.clock.Now()
	c.itemDuration = c.items[c.current].Duration
	if !c.visible {
		c.remaining = c.itemDuration
		c.setStateLocked(StatePausedHidden)
		return
	}
	c.setStateLocked(StateRunning)
	c.armLocked(c.itemDuration)
}

// resumeRemainderLocked continues the interrupted schedule: the timer
// is re-armed for the snapshotted remainder, not the full duration.
func (c *Controller) resumeRemainderLocked() {
	c.itemStart = c.clock.Now().Add(c.remaining - c.itemDuration)
	c.setStateLocked(StateRunning)
	c.armLocked(c.remaining)
}

func (c *Controller) snapshotRemainingLocked() {
	left := c.itemDuration - c.clock.Since(c.itemStart)
	if left < 0 {
		left = 0
	}
	c.remaining = left
}

func (c *Controller) setStateLocked(next State) {
	if c.state == next {
		return
	}
	old := c.state
	c.state = next
	if c.sink != nil {
		c.sink.StateChanged(old, next)
	}
}

func (c *Controller) armLocked(d time.Duration) {
	c.cancelTimerLocked()
	c.timerSeq++
	seq := c.timerSeq
	c.timer = c.clock.AfterFunc(d, func() { c.fire(seq) })
}

func (c *Controller) cancelTimerLocked() {
	c.timerSeq++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

// fire runs on the timer goroutine. A stale sequence means the timer
// was cancelled after the fire was already in flight; drop it.
func (c *Controller) fire(seq uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.timerSeq || c.state != StateRunning || !c.visible {
		return
	}
	c.advanceLocked((c.current + 1) % len(c.items))
}
