// Package viewport classifies viewport geometry and element renderability.
package viewport

// Mode selects between the two presentation modes of a container.
type Mode int

const (
	// ModeWide is the inline accordion presentation (landscape or square
	// viewport).
	ModeWide Mode = iota
	// ModeNarrow is the swipeable carousel presentation (portrait
	// viewport).
	ModeNarrow
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeWide:
		return "wide"
	case ModeNarrow:
		return "narrow"
	default:
		return "unknown"
	}
}

// Size is a width/height pair in device-independent units.
type Size struct {
	Width  float32
	Height float32
}

// Classify maps a viewport size to a presentation mode. A portrait
// viewport (taller than wide) is Narrow; landscape and square are Wide.
func Classify(s Size) Mode {
	if s.Height > s.Width {
		return ModeNarrow
	}
	return ModeWide
}

// Element is the minimal view of an on-screen container the classifier
// and the visibility machinery need: its size and whether it is hidden.
type Element interface {
	Size() Size
	Hidden() bool
}

// IsRendered reports whether an element currently occupies screen space:
// non-nil, not hidden, and with a non-zero box. An intersecting but
// zero-sized or hidden element does not count as visible.
func IsRendered(el Element) bool {
	if el == nil || el.Hidden() {
		return false
	}
	s := el.Size()
	return s.Width > 0 && s.Height > 0
}
