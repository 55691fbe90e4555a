// Package carousel wraps the external swipeable-carousel widget behind
// the five operations the core needs: construct, move-to-index,
// destroy, slide-changed notification, and a plugin hook.
package carousel

import "sync"

// Config is the construction-time configuration handed to the widget
// and replayed to plugins.
type Config struct {
	SlideCount int
	StartIndex int
}

// Widget is the external swipeable widget's surface as the adapter
// sees it.
type Widget interface {
	// MoveTo slides to the given index. The widget reports the change
	// back through the slide-changed callback it was built with.
	MoveTo(index int)
	// Refresh recomputes the widget's internal layout after a resize
	// that did not change the presentation mode.
	Refresh()
	// Destroy tears the widget down.
	Destroy()
}

// Host is the container the widget mounts into. Entering and leaving
// carousel mode toggles the carousel styling hooks on the container and
// its items.
type Host interface {
	EnterCarouselMode()
	LeaveCarouselMode()
}

// Plugin is the extension hook for custom on-slide-change behavior.
type Plugin interface {
	Mounted(cfg Config)
	SlideChanged(index int)
	ConfigChanged(cfg Config)
	Destroyed()
}

// Builder constructs the external widget inside a host. onChange is the
// widget's slide-changed notification and fires for every slide
// transition, whether it came from a user drag or from MoveTo.
type Builder func(host Host, cfg Config, onChange func(int)) (Widget, error)

// Adapter owns the creation and teardown of one carousel widget plus
// its plugins. The mode-switch policy (when to attach or detach) is the
// accordion instance's business, not the adapter's.
type Adapter struct {
	mu      sync.Mutex
	build   Builder
	plugins []Plugin

	host     Host
	widget   Widget
	cfg      Config
	onChange func(int)
	suppress bool
}

// NewAdapter creates a detached adapter. Plugins are installed on every
// attach and dismissed on detach.
func NewAdapter(build Builder, plugins ...Plugin) *Adapter {
	return &Adapter{build: build, plugins: plugins}
}

// Attached reports whether a widget currently exists.
func (a *Adapter) Attached() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.widget != nil
}

// Attach constructs the widget with one slide per item. No-op if
// already attached or the host is missing. onSlideChanged reports
// user-driven slide changes back to the caller; changes originating
// from SyncToIndex are not re-notified.
func (a *Adapter) Attach(host Host, slideCount, initialIndex int, onSlideChanged func(int)) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.widget != nil || host == nil {
		return nil
	}
	cfg := Config{SlideCount: slideCount, StartIndex: initialIndex}
	host.EnterCarouselMode()
	w, err := a.build(host, cfg, a.slideChanged)
	if err != nil {
		host.LeaveCarouselMode()
		return err
	}
	a.host = host
	a.widget = w
	a.cfg = cfg
	a.onChange = onSlideChanged
	for _, p := range a.plugins {
		p.Mounted(cfg)
	}
	return nil
}

// Detach destroys the widget and strips the carousel styling hooks.
// Safe to call when not attached.
func (a *Adapter) Detach() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.widget == nil {
		return
	}
	a.widget.Destroy()
	a.widget = nil
	for _, p := range a.plugins {
		p.Destroyed()
	}
	if a.host != nil {
		a.host.LeaveCarouselMode()
		a.host = nil
	}
	a.onChange = nil
}

// SyncToIndex moves the widget without notifying the caller; used when
// navigation originated in the controller, so the widget catching up
// does not feed the same navigation back.
func (a *Adapter) SyncToIndex(index int) {
	a.mu.Lock()
	w := a.widget
	if w == nil {
		a.mu.Unlock()
		return
	}
	a.suppress = true
	a.mu.Unlock()

	w.MoveTo(index)

	a.mu.Lock()
	a.suppress = false
	a.mu.Unlock()
}

// Refresh asks the widget to recompute its layout and replays the
// configuration to plugins. No-op when detached.
func (a *Adapter) Refresh() {
	a.mu.Lock()
	w, cfg := a.widget, a.cfg
	a.mu.Unlock()
	if w == nil {
		return
	}
	w.Refresh()
	for _, p := range a.plugins {
		p.ConfigChanged(cfg)
	}
}

// slideChanged is the widget's notification path. Plugins always see
// the change; the caller only sees it when it was not a SyncToIndex
// echo.
func (a *Adapter) slideChanged(index int) {
	a.mu.Lock()
	suppressed := a.suppress
	notify := a.onChange
	a.mu.Unlock()

	for _, p := range a.plugins {
		p.SlideChanged(index)
	}
	if !suppressed && notify != nil {
		notify(index)
	}
}
