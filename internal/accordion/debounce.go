package accordion

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// DefaultResizeDebounce is the settle time for resize and orientation
// bursts before the presentation mode is re-evaluated.
const DefaultResizeDebounce = 150 * time.Millisecond

// Debounce wraps fn so that it only runs once delay has elapsed since
// the most recent call. It is a plain higher-order wrapper over an
// injected clock, so a fake clock can drive it in tests. fn runs on the
// timer goroutine.
func Debounce(clock clockwork.Clock, delay time.Duration, fn func()) func() {
	if delay <= 0 {
		return fn
	}
	var mu sync.Mutex
	var timer clockwork.Timer
	return func() {
		mu.Lock()
		defer mu.Unlock()
		if timer == nil {
			timer = clock.AfterFunc(delay, fn)
			return
		}
		timer.Reset(delay)
	}
}
