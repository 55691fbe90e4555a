package ui

import (
	"fyne.io/fyne/v2"

	"github.com/serge22/media-accordion/internal/viewport"
)

// canvasElement adapts a fyne.CanvasObject to the viewport.Element the
// core packages measure. One stable instance per surface; the registry
// uses it as an identity key.
type canvasElement struct {
	obj fyne.CanvasObject
}

func newCanvasElement(obj fyne.CanvasObject) *canvasElement {
	return &canvasElement{obj: obj}
}

func (e *canvasElement) Size() viewport.Size {
	s := e.obj.Size()
	return viewport.Size{Width: s.Width, Height: s.Height}
}

func (e *canvasElement) Hidden() bool {
	return !e.obj.Visible()
}
