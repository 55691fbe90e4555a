package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// denseTheme wraps an existing theme and reduces padding so the header
// lists and dot rows pack tighter.
type denseTheme struct {
	fyne.Theme
}

var _ fyne.Theme = (*denseTheme)(nil)

// Size overrides the default theme size for padding.
func (t *denseTheme) Size(name fyne.ThemeSizeName) float32 {
	if name == theme.SizeNamePadding {
		return 2.0
	}
	return t.Theme.Size(name)
}

func (t *denseTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	return t.Theme.Color(name, variant)
}

func (t *denseTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.Theme.Font(style)
}

func (t *denseTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.Theme.Icon(name)
}

// NewDenseTheme creates a theme wrapper with reduced padding, based on
// the currently set theme.
func NewDenseTheme(baseTheme fyne.Theme) fyne.Theme {
	return &denseTheme{Theme: baseTheme}
}
