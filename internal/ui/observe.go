package ui

import (
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"

	"github.com/serge22/media-accordion/internal/viewport"
	"github.com/serge22/media-accordion/internal/visibility"
)

// visibilityPollInterval is how often observed containers are measured
// against the scroll viewport.
const visibilityPollInterval = 250 * time.Millisecond

// scrollObserver measures observed containers against the visible
// window of a scroll container on a ticker. It stands in for a native
// intersection callback, which fyne does not offer, and reports through
// the registry's deliver function only when a target's intersection
// state actually changes.
type scrollObserver struct {
	mu      sync.Mutex
	scroll  *container.Scroll
	deliver func([]visibility.Entry)
	targets map[*canvasElement]bool // last reported intersection state
	stop    chan struct{}
	stopped bool
}

// newScrollObserverFactory returns the visibility.ObserverFactory for a
// page hosted inside the given scroll container.
func newScrollObserverFactory(scroll *container.Scroll) visibility.ObserverFactory {
	return func(deliver func([]visibility.Entry)) visibility.Observer {
		o := &scrollObserver{
			scroll:  scroll,
			deliver: deliver,
			targets: make(map[*canvasElement]bool),
			stop:    make(chan struct{}),
		}
		go o.run()
		return o
	}
}

func (o *scrollObserver) Observe(el viewport.Element) {
	ce, ok := el.(*canvasElement)
	if !ok {
		return
	}
	o.mu.Lock()
	if _, exists := o.targets[ce]; !exists {
		// Force a report on the first measurement.
		o.targets[ce] = false
	}
	o.mu.Unlock()
	o.measure()
}

func (o *scrollObserver) Unobserve(el viewport.Element) {
	ce, ok := el.(*canvasElement)
	if !ok {
		return
	}
	o.mu.Lock()
	delete(o.targets, ce)
	o.mu.Unlock()
}

func (o *scrollObserver) Disconnect() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.stopped {
		return
	}
	o.stopped = true
	close(o.stop)
}

func (o *scrollObserver) run() {
	ticker := time.NewTicker(visibilityPollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			o.measure()
		case <-o.stop:
			return
		}
	}
}

// measure computes each target's intersection with the scroll viewport
// and delivers the ones whose state flipped.
func (o *scrollObserver) measure() {
	o.mu.Lock()
	if o.stopped {
		o.mu.Unlock()
		return
	}
	var changed []visibility.Entry
	for ce, last := range o.targets {
		now := o.intersects(ce)
		if now != last {
			o.targets[ce] = now
			changed = append(changed, visibility.Entry{Target: ce, Intersecting: now})
		}
	}
	deliver := o.deliver
	o.mu.Unlock()

	if len(changed) > 0 && deliver != nil {
		deliver(changed)
	}
}

// intersects reports whether at least IntersectionThreshold of the
// target's area lies inside the scroll viewport.
func (o *scrollObserver) intersects(ce *canvasElement) bool {
	obj := ce.obj
	size := obj.Size()
	if size.Width <= 0 || size.Height <= 0 {
		return false
	}
	view := o.scroll.Size()
	if view.Width <= 0 || view.Height <= 0 {
		return false
	}

	// Position of the target relative to the scroll viewport.
	pos := relativeTo(obj, o.scroll)
	visW := overlap(pos.X, size.Width, view.Width)
	visH := overlap(pos.Y, size.Height, view.Height)
	ratio := (visW * visH) / (size.Width * size.Height)
	return float64(ratio) >= visibility.IntersectionThreshold
}

func overlap(offset, length, window float32) float32 {
	start := max32(offset, 0)
	end := min32(offset+length, window)
	if end <= start {
		return 0
	}
	return end - start
}

func relativeTo(obj fyne.CanvasObject, anchor fyne.CanvasObject) fyne.Position {
	driver := fyne.CurrentApp().Driver()
	op := driver.AbsolutePositionForObject(obj)
	ap := driver.AbsolutePositionForObject(anchor)
	return fyne.NewPos(op.X-ap.X, op.Y-ap.Y)
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}
