// Package visibility multiplexes one shared viewport observer across
// every accordion container on a page, dispatching visible/not-visible
// transitions to each registered instance.
package visibility

import (
	"sync"

	"github.com/serge22/media-accordion/internal/viewport"
)

// IntersectionThreshold is the fraction of a container that must be
// inside the viewport for the observer to report it as intersecting.
const IntersectionThreshold = 0.1

// Handler receives visibility transitions for one registered container.
type Handler interface {
	OnVisibilityChange(visible bool)
}

// Entry is one changed target in an observer callback.
type Entry struct {
	Target       viewport.Element
	Intersecting bool
}

// Observer watches a set of elements for viewport intersection and
// reports changes through the deliver callback its factory was given.
// The production observer samples a Fyne scroll viewport; tests use a
// hand-driven fake.
type Observer interface {
	Observe(viewport.Element)
	Unobserve(viewport.Element)
	Disconnect()
}

// ObserverFactory builds the shared observer on first registration.
type ObserverFactory func(deliver func([]Entry)) Observer

// Registry maps container elements to their owning instances and fans
// observer callbacks out to them. It is injected into instances rather
// than referenced as ambient global state, so tests can construct
// isolated registries. Lifecycle: the observer is created lazily on
// first Register and torn down by Destroy.
type Registry struct {
	mu          sync.Mutex
	newObserver ObserverFactory
	observer    Observer
	handlers    map[viewport.Element]Handler
}

// NewRegistry creates an empty registry using the given factory.
func NewRegistry(factory ObserverFactory) *Registry {
	return &Registry{
		newObserver: factory,
		handlers:    make(map[viewport.Element]Handler),
	}
}

// Register adds a container to the shared observer. Registering the
// same element twice is a no-op.
func (r *Registry) Register(el viewport.Element, h Handler) {
	if el == nil || h == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.handlers[el]; ok {
		return
	}
	if r.observer == nil {
		r.observer = r.newObserver(r.deliver)
	}
	r.handlers[el] = h
	r.observer.Observe(el)
}

// Unregister stops observing the element. No-op if not registered.
func (r *Registry) Unregister(el viewport.Element) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.handlers[el]; !ok {
		return
	}
	delete(r.handlers, el)
	if r.observer != nil {
		r.observer.Unobserve(el)
	}
}

// Destroy disconnects the observer and clears the map; used once at
// page teardown. Safe to call repeatedly.
func (r *Registry) Destroy() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.observer != nil {
		r.observer.Disconnect()
		r.observer = nil
	}
	r.handlers = make(map[viewport.Element]Handler)
}

// Size returns the number of registered containers.
func (r *Registry) Size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.handlers)
}

// deliver is the observer callback. Entries whose target is no longer
// registered are ignored; that guards against callbacks already in
// flight when Unregister ran. "Truly visible" requires both the
// observer's intersection verdict and a rendered element.
func (r *Registry) deliver(entries []Entry) {
	type dispatch struct {
		handler Handler
		visible bool
	}
	r.mu.Lock()
	pending := make([]dispatch, 0, len(entries))
	for _, e := range entries {
		h, ok := r.handlers[e.Target]
		if !ok {
			continue
		}
		pending = append(pending, dispatch{
			handler: h,
			visible: e.Intersecting && viewport.IsRendered(e.Target),
		})
	}
	r.mu.Unlock()

	// Handlers run outside the lock; they are free to Unregister.
	for _, d := range pending {
		d.handler.OnVisibilityChange(d.visible)
	}
}
