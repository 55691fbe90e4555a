// Package media defines the read-only item model the accordion presents.
package media

import (
	"strings"
	"time"
)

const (
	// DefaultItemDuration is used when an item declares no duration,
	// or a non-positive one.
	DefaultItemDuration = 5 * time.Second
)

// Kind classifies a media source by payload type.
type Kind int

const (
	KindImage Kind = iota
	KindVideo
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindImage:
		return "image"
	case KindVideo:
		return "video"
	default:
		return "unknown"
	}
}

// Source is a media payload reference: a URL plus its declared mime type.
type Source struct {
	URL  string
	MIME string
}

// Kind derives the payload kind from the declared mime type.
// Anything that is not a video is treated as an image.
func (s Source) Kind() Kind {
	if strings.HasPrefix(strings.ToLower(s.MIME), "video/") {
		return KindVideo
	}
	return KindImage
}

// Item is one title+duration+media unit inside an accordion container.
// Items are immutable once constructed; only their presentation state
// (active or not) changes over time, and that lives elsewhere.
type Item struct {
	Title    string
	Duration time.Duration
	Source   Source
}

// NewItem builds an Item, applying DefaultItemDuration when the declared
// duration is not usable.
func NewItem(title string, duration time.Duration, src Source) Item {
	if duration <= 0 {
		duration = DefaultItemDuration
	}
	return Item{
		Title:    title,
		Duration: duration,
		Source:   src,
	}
}

// Durations extracts the per-item durations in order.
func Durations(items []Item) []time.Duration {
	out := make([]time.Duration, len(items))
	for i, it := range items {
		out[i] = it.Duration
	}
	return out
}
