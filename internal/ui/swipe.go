package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// swipeThreshold is how far a horizontal drag must travel before it
// counts as a slide gesture.
const swipeThreshold float32 = 40

// --- Swipeable Deck Custom Widget ---

// swipeDeck presents one slide at a time and changes slides on
// horizontal drags. Every slide change, drag or programmatic, is
// reported through onChange.
type swipeDeck struct {
	widget.BaseWidget
	slides   []fyne.CanvasObject
	stack    *fyne.Container
	current  int
	onChange func(int)
	dragX    float32
}

// newSwipeDeck creates a deck over the given slides, showing start
// first.
func newSwipeDeck(slides []fyne.CanvasObject, start int, onChange func(int)) *swipeDeck {
	d := &swipeDeck{
		slides:   slides,
		stack:    container.NewStack(slides...),
		current:  start,
		onChange: onChange,
	}
	for i, s := range slides {
		if i == start {
			s.Show()
		} else {
			s.Hide()
		}
	}
	d.ExtendBaseWidget(d)
	return d
}

// CreateRenderer is a mandatory method for a Fyne widget.
func (d *swipeDeck) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(d.stack)
}

// MoveTo slides to the given index and reports the change.
func (d *swipeDeck) MoveTo(index int) {
	d.setCurrent(index)
}

// Destroy drops the change callback so late gestures go nowhere.
func (d *swipeDeck) Destroy() {
	d.onChange = nil
	d.Hide()
}

func (d *swipeDeck) setCurrent(index int) {
	if index < 0 || index >= len(d.slides) || index == d.current {
		return
	}
	d.slides[d.current].Hide()
	d.slides[index].Show()
	d.current = index
	d.stack.Refresh()
	if d.onChange != nil {
		d.onChange(index)
	}
}

// Dragged accumulates horizontal drag distance.
func (d *swipeDeck) Dragged(e *fyne.DragEvent) {
	d.dragX += e.Dragged.DX
}

// DragEnd turns an accumulated drag into a slide change: left swipe
// advances, right swipe goes back, short drags do nothing.
func (d *swipeDeck) DragEnd() {
	delta := d.dragX
	d.dragX = 0
	switch {
	case delta <= -swipeThreshold:
		d.setCurrent(d.current + 1)
	case delta >= swipeThreshold:
		d.setCurrent(d.current - 1)
	}
}

// --- Navigation Dots ---

// dotRow renders the carousel position dots into a container owned by
// the surface.
type dotRow struct {
	box *fyne.Container
}

func newDotRow(box *fyne.Container) *dotRow {
	return &dotRow{box: box}
}

// RenderDots draws count dots with the active one highlighted.
func (r *dotRow) RenderDots(count, active int) {
	r.box.RemoveAll()
	for i := 0; i < count; i++ {
		r.box.Add(newDot(i == active))
	}
	r.box.Refresh()
}

// ClearDots removes the dots.
func (r *dotRow) ClearDots() {
	r.box.RemoveAll()
	r.box.Refresh()
}

func newDot(active bool) fyne.CanvasObject {
	var fill color.Color = theme.Color(theme.ColorNameDisabled)
	if active {
		fill = theme.Color(theme.ColorNamePrimary)
	}
	dot := canvas.NewCircle(fill)
	dot.Resize(fyne.NewSize(8, 8))
	return container.NewGridWrap(fyne.NewSize(12, 12), dot)
}
