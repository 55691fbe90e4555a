package carousel

// DotRenderer draws the dot indicator row. The Fyne layer implements
// it; tests record the calls.
type DotRenderer interface {
	// RenderDots draws count indicators with the active one
	// highlighted.
	RenderDots(count, active int)
	// ClearDots removes the indicator row.
	ClearDots()
}

// NavDots is the navigation-dots plugin: one indicator per slide,
// re-rendered on configuration change, highlighted on each slide
// change, removed on destroy.
type NavDots struct {
	renderer DotRenderer
	count    int
	active   int
}

// NewNavDots creates the plugin around a renderer.
func NewNavDots(renderer DotRenderer) *NavDots {
	return &NavDots{renderer: renderer}
}

// Mounted renders the initial indicator row.
func (d *NavDots) Mounted(cfg Config) {
	d.count = cfg.SlideCount
	d.active = cfg.StartIndex
	d.renderer.RenderDots(d.count, d.active)
}

// SlideChanged moves the highlight.
func (d *NavDots) SlideChanged(index int) {
	if index < 0 || index >= d.count {
		return
	}
	d.active = index
	d.renderer.RenderDots(d.count, d.active)
}

// ConfigChanged re-renders the row for a new configuration.
func (d *NavDots) ConfigChanged(cfg Config) {
	d.count = cfg.SlideCount
	if d.active >= d.count {
		d.active = 0
	}
	d.renderer.RenderDots(d.count, d.active)
}

// Destroyed removes the indicator row.
func (d *NavDots) Destroyed() {
	d.renderer.ClearDots()
}
