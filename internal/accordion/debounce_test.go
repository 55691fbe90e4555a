package accordion_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/serge22/media-accordion/internal/accordion"
)

func TestDebounceCollapsesBursts(t *testing.T) {
	clk := clockwork.NewFakeClock()
	var calls atomic.Int32
	debounced := accordion.Debounce(clk, 100*time.Millisecond, func() { calls.Add(1) })

	debounced()
	clk.Advance(60 * time.Millisecond)
	debounced()
	clk.Advance(60 * time.Millisecond)
	debounced()

	// Never quiet for the full delay yet.
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())

	clk.Advance(100 * time.Millisecond)
	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, time.Millisecond)
}

func TestDebounceRunsAgainAfterSettling(t *testing.T) {
	clk := clockwork.NewFakeClock()
	var calls atomic.Int32
	debounced := accordion.Debounce(clk, 100*time.Millisecond, func() { calls.Add(1) })

	debounced()
	clk.Advance(100 * time.Millisecond)
	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, time.Millisecond)

	debounced()
	clk.Advance(100 * time.Millisecond)
	require.Eventually(t, func() bool { return calls.Load() == 2 }, time.Second, time.Millisecond)
}

func TestDebounceZeroDelayIsSynchronous(t *testing.T) {
	clk := clockwork.NewFakeClock()
	var calls atomic.Int32
	debounced := accordion.Debounce(clk, 0, func() { calls.Add(1) })

	debounced()
	debounced()
	assert.Equal(t, int32(2), calls.Load())
}
