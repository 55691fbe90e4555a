package accordion

import (
	"fmt"

	"github.com/jonboulle/clockwork"

	"github.com/serge22/media-accordion/internal/carousel"
	"github.com/serge22/media-accordion/internal/viewport"
	"github.com/serge22/media-accordion/internal/visibility"
)

// Binder builds the presentation-layer collaborators for one container:
// its render surface and, when the layer offers one, a carousel
// adapter. The Fyne layer is the production binder; tests bind fakes.
type Binder interface {
	Bind(c Container) (Surface, *carousel.Adapter, error)
}

// PageOptions configures Boot.
type PageOptions struct {
	Clock    clockwork.Clock
	Registry *visibility.Registry
	Dispatch func(func())
	// InitialSize seeds every instance's presentation mode.
	InitialSize viewport.Size
	Logger      LoggerFunc
}

// Page is the result of bootstrapping one presentation document: one
// instance per container, all sharing one visibility registry.
type Page struct {
	registry  *visibility.Registry
	instances []*Instance
	logger    LoggerFunc
	closed    bool
}

// Boot scans the presentation's containers and builds one instance per
// container. A container whose binder fails is skipped with a log line;
// one broken container never stops the others from functioning.
func Boot(containers []Container, binder Binder, opts PageOptions) *Page {
	logger := opts.Logger
	if logger == nil {
		logger = func(string) {}
	}
	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	page := &Page{
		registry: opts.Registry,
		logger:   logger,
	}
	for _, c := range containers {
		surface, adapter, err := binder.Bind(c)
		if err != nil {
			logger(fmt.Sprintf("container %q disabled: %v", c.ID, err))
			continue
		}
		inst := NewInstance(c, InstanceOptions{
			Clock:       clock,
			Registry:    opts.Registry,
			Surface:     surface,
			Carousel:    adapter,
			Dispatch:    opts.Dispatch,
			InitialSize: opts.InitialSize,
		})
		page.instances = append(page.instances, inst)
	}
	logger(fmt.Sprintf("bootstrapped %d accordion container(s)", len(page.instances)))
	return page
}

// Instances returns the live instances in document order.
func (p *Page) Instances() []*Instance {
	return p.instances
}

// HandleResize fans a window size change out to every instance.
func (p *Page) HandleResize(size viewport.Size) {
	for _, inst := range p.instances {
		inst.HandleResize(size)
	}
}

// Close destroys every instance and tears the shared registry down.
// Idempotent; used once at page teardown.
func (p *Page) Close() {
	if p.closed {
		return
	}
	p.closed = true
	for _, inst := range p.instances {
		inst.Destroy()
	}
	if p.registry != nil {
		p.registry.Destroy()
	}
	p.logger("accordion page closed")
}
