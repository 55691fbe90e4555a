package playback_test

import (
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/serge22/media-accordion/internal/media"
	"github.com/serge22/media-accordion/internal/playback"
)

// recordingSink captures controller output. The timer fires on its own
// goroutine, so the recorder is mutexed and the tests poll with
// require.Eventually after advancing the fake clock.
type recordingSink struct {
	mu          sync.Mutex
	activations [][2]int
	states      []playback.State
}

func (s *recordingSink) ItemActivated(prev, next int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activations = append(s.activations, [2]int{prev, next})
}

func (s *recordingSink) StateChanged(_, next playback.State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states = append(s.states, next)
}

func (s *recordingSink) activationCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.activations)
}

func (s *recordingSink) lastActivation() [2]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.activations) == 0 {
		return [2]int{-2, -2}
	}
	return s.activations[len(s.activations)-1]
}

func testItems(durationsMS ...int) []media.Item {
	items := make([]media.Item, len(durationsMS))
	for i, ms := range durationsMS {
		items[i] = media.NewItem("item", time.Duration(ms)*time.Millisecond, media.Source{URL: "a.png", MIME: "image/png"})
	}
	return items
}

func waitForIndex(t *testing.T, c *playback.Controller, want int) {
	t.Helper()
	require.Eventually(t, func() bool {
		return c.CurrentIndex() == want
	}, time.Second, time.Millisecond, "expected controller to reach index %d", want)
}

// assertNoAdvance gives any stray timer goroutine a moment to run, then
// checks the index did not move.
func assertNoAdvance(t *testing.T, c *playback.Controller, want int) {
	t.Helper()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, want, c.CurrentIndex())
}

func TestStartActivatesFirstItem(t *testing.T) {
	clk := clockwork.NewFakeClock()
	sink := &recordingSink{}
	c := playback.New(testItems(3000, 5000, 2000), true, clk, sink)

	c.SetVisible(true)
	c.Start()

	assert.Equal(t, playback.StateRunning, c.State())
	assert.Equal(t, 0, c.CurrentIndex())
	assert.Equal(t, [2]int{-1, 0}, sink.lastActivation())
}

func TestStartIsIdempotent(t *testing.T) {
	clk := clockwork.NewFakeClock()
	sink := &recordingSink{}
	c := playback.New(testItems(3000, 5000), true, clk, sink)

	c.SetVisible(true)
	c.Start()
	c.Start()
	c.Start()

	assert.Equal(t, 1, sink.activationCount())
}

func TestStartWithNoItemsStaysIdle(t *testing.T) {
	clk := clockwork.NewFakeClock()
	sink := &recordingSink{}
	c := playback.New(nil, true, clk, sink)

	c.SetVisible(true)
	c.Start()

	assert.Equal(t, playback.StateIdle, c.State())
	assert.Zero(t, sink.activationCount())
}

// The example scenario from the design discussion: durations
// [3000, 5000, 2000] ms advance at t=3000, t=8000, t=10000, wrapping
// back to item 0.
func TestAutoAdvanceSchedule(t *testing.T) {
	clk := clockwork.NewFakeClock()
	sink := &recordingSink{}
	c := playback.New(testItems(3000, 5000, 2000), true, clk, sink)

	c.SetVisible(true)
	c.Start()

	clk.Advance(2999 * time.Millisecond)
	assertNoAdvance(t, c, 0)
	clk.Advance(1 * time.Millisecond)
	waitForIndex(t, c, 1)

	clk.Advance(5000 * time.Millisecond)
	waitForIndex(t, c, 2)

	clk.Advance(2000 * time.Millisecond)
	waitForIndex(t, c, 0) // wrap-around
	assert.Equal(t, [2]int{2, 0}, sink.lastActivation())
}

func TestAdvanceToNextWrapsFromLastIndex(t *testing.T) {
	clk := clockwork.NewFakeClock()
	c := playback.New(testItems(1000, 1000, 1000), true, clk, &recordingSink{})

	c.SetVisible(true)
	c.Start()
	c.JumpTo(2)
	c.AdvanceToNext()

	assert.Equal(t, 0, c.CurrentIndex())
}

// Pausing after elapsed time E leaves exactly D-E on the schedule:
// resuming and advancing the clock by exactly that much triggers the
// advance, advancing by less does not.
func TestRemainingTimeConservation(t *testing.T) {
	clk := clockwork.NewFakeClock()
	c := playback.New(testItems(3000, 5000, 2000), true, clk, &recordingSink{})

	c.SetVisible(true)
	c.Start()

	clk.Advance(3000 * time.Millisecond)
	waitForIndex(t, c, 1)

	// 1500ms into item 1 (duration 5000ms).
	clk.Advance(1500 * time.Millisecond)
	c.UserPause()
	assert.Equal(t, playback.StatePausedUser, c.State())
	assert.Equal(t, 3500*time.Millisecond, c.Remaining())

	// Time passing while paused changes nothing.
	clk.Advance(10 * time.Second)
	assert.Equal(t, 3500*time.Millisecond, c.Remaining())

	c.UserResume()
	assert.Equal(t, playback.StateRunning, c.State())

	clk.Advance(3499 * time.Millisecond)
	assertNoAdvance(t, c, 1)
	clk.Advance(1 * time.Millisecond)
	waitForIndex(t, c, 2)
}

func TestUserPauseOutranksVisibility(t *testing.T) {
	clk := clockwork.NewFakeClock()
	c := playback.New(testItems(3000, 5000), true, clk, &recordingSink{})

	c.SetVisible(true)
	c.Start()
	c.UserPause()

	// Scrolling out of view and back must not resume a user pause.
	c.SetVisible(false)
	c.SetVisible(true)
	assert.Equal(t, playback.StatePausedUser, c.State())

	clk.Advance(time.Minute)
	assertNoAdvance(t, c, 0)

	c.UserResume()
	assert.Equal(t, playback.StateRunning, c.State())
}

func TestVisibilityPausePreservesRemainder(t *testing.T) {
	clk := clockwork.NewFakeClock()
	c := playback.New(testItems(3000, 5000), true, clk, &recordingSink{})

	c.SetVisible(true)
	c.Start()

	clk.Advance(1000 * time.Millisecond)
	c.SetVisible(false)
	assert.Equal(t, playback.StatePausedHidden, c.State())
	assert.Equal(t, 2000*time.Millisecond, c.Remaining())

	// No advance fires while hidden, no matter how long.
	clk.Advance(time.Minute)
	assertNoAdvance(t, c, 0)

	c.SetVisible(true)
	assert.Equal(t, playback.StateRunning, c.State())
	clk.Advance(2000 * time.Millisecond)
	waitForIndex(t, c, 1)
}

func TestVisibilityChangeIsIdempotent(t *testing.T) {
	clk := clockwork.NewFakeClock()
	sink := &recordingSink{}
	c := playback.New(testItems(3000), true, clk, sink)

	c.SetVisible(true)
	c.Start()
	c.SetVisible(false)
	c.SetVisible(false)
	assert.Equal(t, playback.StatePausedHidden, c.State())

	c.SetVisible(true)
	c.SetVisible(true)
	assert.Equal(t, playback.StateRunning, c.State())
}

// Churning through navigation, pause/resume, and visibility flips must
// leave at most one live timer: exactly one advance fires when the
// current item's schedule elapses, and none after it is consumed.
func TestNoDuplicateTimers(t *testing.T) {
	clk := clockwork.NewFakeClock()
	sink := &recordingSink{}
	c := playback.New(testItems(3000, 3000, 3000), true, clk, sink)

	c.SetVisible(true)
	c.Start()

	c.JumpTo(1)
	c.UserPause()
	c.UserResume()
	c.SetVisible(false)
	c.SetVisible(true)
	c.JumpTo(2)

	base := sink.activationCount()
	clk.Advance(3000 * time.Millisecond)
	waitForIndex(t, c, 0)
	require.Eventually(t, func() bool {
		return sink.activationCount() == base+1
	}, time.Second, time.Millisecond)

	// Nothing else is pending inside the next window.
	clk.Advance(2999 * time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, base+1, sink.activationCount())
}

func TestAutoplayDisabledStartsPaused(t *testing.T) {
	clk := clockwork.NewFakeClock()
	sink := &recordingSink{}
	c := playback.New(testItems(3000, 5000), false, clk, sink)

	c.SetVisible(true)
	c.Start()

	// Item 0 is active but nothing is scheduled.
	assert.Equal(t, playback.StatePausedUser, c.State())
	assert.Equal(t, [2]int{-1, 0}, sink.lastActivation())
	clk.Advance(time.Minute)
	assertNoAdvance(t, c, 0)

	// The very first resume is a full-duration start, not a zero-length
	// continuation.
	c.UserResume()
	assert.Equal(t, playback.StateRunning, c.State())
	clk.Advance(2999 * time.Millisecond)
	assertNoAdvance(t, c, 0)
	clk.Advance(1 * time.Millisecond)
	waitForIndex(t, c, 1)
}

func TestJumpToIgnoresBadTargets(t *testing.T) {
	clk := clockwork.NewFakeClock()
	sink := &recordingSink{}
	c := playback.New(testItems(3000, 5000), true, clk, sink)

	c.SetVisible(true)
	c.Start()
	before := sink.activationCount()

	c.JumpTo(0)  // current index
	c.JumpTo(-1) // out of range
	c.JumpTo(2)  // out of range

	assert.Equal(t, before, sink.activationCount())
	assert.Equal(t, 0, c.CurrentIndex())
}

func TestJumpToWhilePausedResetsRemainder(t *testing.T) {
	clk := clockwork.NewFakeClock()
	c := playback.New(testItems(3000, 5000, 2000), true, clk, &recordingSink{})

	c.SetVisible(true)
	c.Start()
	clk.Advance(1000 * time.Millisecond)
	c.UserPause()

	c.JumpTo(2)
	assert.Equal(t, 2, c.CurrentIndex())
	assert.Equal(t, 2000*time.Millisecond, c.Remaining())

	c.UserResume()
	clk.Advance(1999 * time.Millisecond)
	assertNoAdvance(t, c, 2)
	clk.Advance(1 * time.Millisecond)
	waitForIndex(t, c, 0)
}

func TestUserResumeWhileHiddenWaitsForVisibility(t *testing.T) {
	clk := clockwork.NewFakeClock()
	c := playback.New(testItems(3000, 5000), true, clk, &recordingSink{})

	c.SetVisible(true)
	c.Start()
	clk.Advance(1000 * time.Millisecond)
	c.UserPause()
	c.SetVisible(false)

	// Un-pausing while off screen hands the remainder to the hidden
	// pause; it is picked up when visibility returns.
	c.UserResume()
	assert.Equal(t, playback.StatePausedHidden, c.State())
	clk.Advance(time.Minute)
	assertNoAdvance(t, c, 0)

	c.SetVisible(true)
	assert.Equal(t, playback.StateRunning, c.State())
	clk.Advance(2000 * time.Millisecond)
	waitForIndex(t, c, 1)
}

func TestStopCancelsScheduleAndIsIdempotent(t *testing.T) {
	clk := clockwork.NewFakeClock()
	sink := &recordingSink{}
	c := playback.New(testItems(3000), true, clk, sink)

	c.SetVisible(true)
	c.Start()
	c.Stop()
	c.Stop()

	assert.Equal(t, playback.StateIdle, c.State())
	before := sink.activationCount()
	clk.Advance(time.Minute)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, before, sink.activationCount())
}

func TestPauseIsIdempotent(t *testing.T) {
	clk := clockwork.NewFakeClock()
	c := playback.New(testItems(3000, 5000), true, clk, &recordingSink{})

	c.SetVisible(true)
	c.Start()
	clk.Advance(500 * time.Millisecond)
	c.UserPause()
	remaining := c.Remaining()
	clk.Advance(500 * time.Millisecond)
	c.UserPause()

	assert.Equal(t, remaining, c.Remaining())
	assert.Equal(t, playback.StatePausedUser, c.State())
}
