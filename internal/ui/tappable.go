package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// --- Tappable Header Custom Widget ---

// itemHeader is a custom widget for one accordion item's header row. It
// reports taps always and pointer entry when a hover callback is set.
type itemHeader struct {
	widget.BaseWidget
	label     *widget.Label
	onTapped  func()
	onHovered func()
}

// newItemHeader creates a new itemHeader widget.
func newItemHeader(title string, onTapped, onHovered func()) *itemHeader {
	h := &itemHeader{
		label:     widget.NewLabel(title),
		onTapped:  onTapped,
		onHovered: onHovered,
	}
	h.label.Truncation = fyne.TextTruncateEllipsis
	h.ExtendBaseWidget(h) // Important: call this to register the widget
	return h
}

// CreateRenderer is a mandatory method for a Fyne widget.
func (h *itemHeader) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(h.label)
}

// Tapped is called when the widget is tapped.
func (h *itemHeader) Tapped(_ *fyne.PointEvent) {
	if h.onTapped != nil {
		h.onTapped()
	}
}

// MouseIn activates the item in the hover layout.
func (h *itemHeader) MouseIn(_ *desktop.MouseEvent) {
	if h.onHovered != nil {
		h.onHovered()
	}
}

func (h *itemHeader) MouseMoved(_ *desktop.MouseEvent) {}

func (h *itemHeader) MouseOut() {}

// SetActive switches the header's emphasis.
func (h *itemHeader) SetActive(active bool) {
	h.label.TextStyle.Bold = active
	h.label.Refresh()
}
