// Package accordion composes the playback controller, the visibility
// registry, and the carousel adapter into per-container instances, and
// bootstraps one instance per container in a presentation.
package accordion

import (
	"time"

	"github.com/serge22/media-accordion/internal/media"
	"github.com/serge22/media-accordion/internal/viewport"
)

// LoggerFunc is the logging hook injected by the embedding layer.
type LoggerFunc func(message string)

// Layout selects the activation wiring variant for a container.
type Layout int

const (
	// LayoutStandard activates items by header tap.
	LayoutStandard Layout = iota
	// LayoutHover additionally activates items on pointer hover; hover
	// activation stays live even in carousel mode.
	LayoutHover
)

// String returns the layout name.
func (l Layout) String() string {
	switch l {
	case LayoutStandard:
		return "standard"
	case LayoutHover:
		return "hover"
	default:
		return "unknown"
	}
}

// Container is the authored configuration of one accordion container,
// read once at construction and never written back.
type Container struct {
	ID       string
	Items    []media.Item
	Autoplay bool
	Layout   Layout
}

// Surface is the instance's render target. The instance is the only
// component that writes presentation state, always derived from
// controller changes; nothing is ever read back. All calls arrive on
// the dispatch goroutine.
type Surface interface {
	// SetActiveItem toggles the active flag from prev to next. prev is
	// -1 on the first activation.
	SetActiveItem(prev, next int)
	// ShowMedia swaps the rendered media payload for the newly active
	// item.
	ShowMedia(index int, item media.Item)
	// SetItemDuration feeds the per-item duration the progress
	// animation reads; the animation itself is the surface's business.
	SetItemDuration(index int, d time.Duration)
	// SetPauseControl toggles the pause/resume control between its two
	// icons/labels. true means user-paused.
	SetPauseControl(paused bool)
	// SetMediaPlaying starts or stops the active item's video playback
	// in lockstep with the running state. Image items ignore it.
	SetMediaPlaying(playing bool)
	// Element is the container element registered for visibility
	// observation.
	Element() viewport.Element
}
