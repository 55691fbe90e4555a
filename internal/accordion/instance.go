package accordion

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/serge22/media-accordion/internal/carousel"
	"github.com/serge22/media-accordion/internal/media"
	"github.com/serge22/media-accordion/internal/playback"
	"github.com/serge22/media-accordion/internal/viewport"
	"github.com/serge22/media-accordion/internal/visibility"
)

// InstanceOptions carries the collaborators an instance composes. All
// of them are injected so tests can run against fakes.
type InstanceOptions struct {
	Clock    clockwork.Clock
	Registry *visibility.Registry
	Surface  Surface
	// Carousel may be nil when the embedding layer offers no swipeable
	// widget; the instance then stays in accordion presentation in
	// every mode.
	Carousel *carousel.Adapter
	// Dispatch marshals render work onto the UI goroutine (fyne.Do in
	// production). Nil means call inline, which tests rely on.
	Dispatch func(func())
	// InitialSize seeds the presentation mode before the first resize
	// event arrives.
	InitialSize viewport.Size
	// ResizeDebounce overrides DefaultResizeDebounce when positive.
	ResizeDebounce time.Duration
}

// Instance wires one accordion container: it owns the controller,
// registers with the visibility registry, drives the carousel
// mode-switch policy, and is the single writer of presentation state.
//
// Event handlers (taps, hover, resize) must be called from the dispatch
// goroutine; visibility and timer callbacks marshal themselves there.
type Instance struct {
	id       string
	items    []media.Item
	layout   Layout
	clock    clockwork.Clock
	registry *visibility.Registry
	surface  Surface
	adapter  *carousel.Adapter
	dispatch func(func())

	controller *playback.Controller

	mode      viewport.Mode
	visible   bool
	started   bool
	dormant   bool
	destroyed bool

	resizeMu    sync.Mutex
	pendingSize viewport.Size
	resize      func()
}

// NewInstance builds and wires an instance for one container. A
// container with zero items performs no wiring at all and stays
// permanently dormant.
func NewInstance(c Container, opts InstanceOptions) *Instance {
	dispatch := opts.Dispatch
	if dispatch == nil {
		dispatch = func(fn func()) { fn() }
	}
	inst := &Instance{
		id:       c.ID,
		items:    c.Items,
		layout:   c.Layout,
		clock:    opts.Clock,
		registry: opts.Registry,
		surface:  opts.Surface,
		adapter:  opts.Carousel,
		dispatch: dispatch,
		mode:     viewport.Classify(opts.InitialSize),
	}
	if len(c.Items) == 0 {
		inst.dormant = true
		return inst
	}
	inst.controller = playback.New(c.Items, c.Autoplay, opts.Clock, &instanceSink{inst: inst})
	debounce := opts.ResizeDebounce
	if debounce <= 0 {
		debounce = DefaultResizeDebounce
	}
	inst.resize = Debounce(opts.Clock, debounce, func() {
		inst.dispatch(inst.applyResize)
	})
	if inst.registry != nil {
		inst.registry.Register(opts.Surface.Element(), inst)
	}
	return inst
}

// ID returns the container id.
func (i *Instance) ID() string { return i.id }

// Mode returns the current presentation mode.
func (i *Instance) Mode() viewport.Mode { return i.mode }

// Controller exposes the playback controller, mainly for status
// display and tests.
func (i *Instance) Controller() *playback.Controller { return i.controller }

// HandleHeaderTap is the delegated click path for item headers. In
// carousel mode header navigation is disabled; the drag gesture owns
// navigation there.
func (i *Instance) HandleHeaderTap(index int) {
	if i.dormant || i.destroyed {
		return
	}
	if i.mode == viewport.ModeNarrow {
		return
	}
	i.controller.JumpTo(index)
}

// HandleHover activates an item on pointer hover. Only the hover layout
// variant wires this, and it stays active in every mode.
func (i *Instance) HandleHover(index int) {
	if i.dormant || i.destroyed || i.layout != LayoutHover {
		return
	}
	i.controller.JumpTo(index)
}

// HandlePauseTap is the pause/resume control path.
func (i *Instance) HandlePauseTap() {
	if i.dormant || i.destroyed {
		return
	}
	i.controller.TogglePause()
}

// OnVisibilityChange implements visibility.Handler. It arrives on the
// observer goroutine and marshals itself onto the dispatch goroutine.
func (i *Instance) OnVisibilityChange(visible bool) {
	i.dispatch(func() { i.applyVisibility(visible) })
}

func (i *Instance) applyVisibility(visible bool) {
	if i.dormant || i.destroyed {
		return
	}
	i.visible = visible
	if visible && !i.started {
		i.started = true
		i.controller.Start()
	}
	i.controller.SetVisible(visible)
	i.updateCarouselAttachment()
}

// HandleResize feeds container size changes (including orientation
// flips) through the debouncer.
func (i *Instance) HandleResize(size viewport.Size) {
	if i.dormant || i.destroyed {
		return
	}
	i.resizeMu.Lock()
	i.pendingSize = size
	i.resizeMu.Unlock()
	i.resize()
}

func (i *Instance) applyResize() {
	if i.dormant || i.destroyed {
		return
	}
	i.resizeMu.Lock()
	size := i.pendingSize
	i.resizeMu.Unlock()

	next := viewport.Classify(size)
	if next == i.mode {
		// Same mode: the carousel, if up, only needs to re-measure.
		if i.mode == viewport.ModeNarrow && i.adapter != nil {
			i.adapter.Refresh()
		}
		return
	}
	i.mode = next
	i.updateCarouselAttachment()
}

// updateCarouselAttachment applies the mode-switch policy: attach when
// narrow and visible, detach when wide.
func (i *Instance) updateCarouselAttachment() {
	if i.adapter == nil {
		return
	}
	switch {
	case i.mode == viewport.ModeNarrow && i.visible && !i.adapter.Attached():
		host, _ := i.surface.(carousel.Host)
		_ = i.adapter.Attach(host, len(i.items), i.controller.CurrentIndex(), i.onSlideChanged)
	case i.mode == viewport.ModeWide && i.adapter.Attached():
		i.adapter.Detach()
	}
}

// onSlideChanged is the carousel's user-drag navigation path.
// Controller-originated moves are filtered by the adapter, so this
// never loops back on itself.
func (i *Instance) onSlideChanged(index int) {
	if i.destroyed {
		return
	}
	i.controller.JumpTo(index)
}

// Destroy cancels any pending timer, disconnects from the registry,
// detaches the carousel, and goes inert. Safe to call at any state,
// any number of times.
func (i *Instance) Destroy() {
	if i.destroyed {
		return
	}
	i.destroyed = true
	if i.dormant {
		return
	}
	i.controller.Stop()
	if i.registry != nil {
		i.registry.Unregister(i.surface.Element())
	}
	if i.adapter != nil {
		i.adapter.Detach()
	}
}

// instanceSink translates controller output into surface effects. The
// callbacks can arrive on the timer goroutine, so everything is
// marshaled through dispatch.
type instanceSink struct {
	inst *Instance
}

func (s *instanceSink) ItemActivated(prev, next int) {
	i := s.inst
	i.dispatch(func() {
		if i.destroyed {
			return
		}
		item := i.items[next]
		i.surface.SetActiveItem(prev, next)
		i.surface.ShowMedia(next, item)
		i.surface.SetItemDuration(next, item.Duration)
		if i.adapter != nil && i.adapter.Attached() {
			i.adapter.SyncToIndex(next)
		}
	})
}

func (s *instanceSink) StateChanged(_, next playback.State) {
	i := s.inst
	i.dispatch(func() {
		if i.destroyed {
			return
		}
		i.surface.SetPauseControl(next == playback.StatePausedUser)
		i.surface.SetMediaPlaying(next == playback.StateRunning)
	})
}
