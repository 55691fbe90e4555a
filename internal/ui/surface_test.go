package ui

import (
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/theme"
	"github.com/stretchr/testify/assert"

	"github.com/serge22/media-accordion/internal/accordion"
	"github.com/serge22/media-accordion/internal/media"
)

func surfaceFixture(t *testing.T, items ...media.Item) *accordionSurface {
	t.Helper()
	test.NewApp()
	spec := accordion.Container{ID: "hero", Items: items, Autoplay: true}
	return newAccordionSurface(spec, NewMediaCache(nil))
}

func imageItem(title, url string) media.Item {
	return media.NewItem(title, 3*time.Second, media.Source{URL: url, MIME: "image/jpeg"})
}

// Two items may share a title; a background decode finishing after the
// pane moved on must be dropped, keyed on the source URL.
func TestApplyDecodedDropsStaleSource(t *testing.T) {
	sunrise := imageItem("Beach", "/img/sunrise.jpg")
	sunset := imageItem("Beach", "/img/sunset.jpg")
	s := surfaceFixture(t, sunrise, sunset)

	s.ShowMedia(0, sunrise)
	s.ShowMedia(1, sunset)

	stale := fyne.NewStaticResource("sunrise", []byte{1})
	s.applyDecoded(sunrise.Source.URL, stale)
	assert.NotEqual(t, fyne.Resource(stale), s.mediaImage.Resource)

	fresh := fyne.NewStaticResource("sunset", []byte{2})
	s.applyDecoded(sunset.Source.URL, fresh)
	assert.Equal(t, fyne.Resource(fresh), s.mediaImage.Resource)
}

func TestApplyDecodedDroppedAfterVideoSwitch(t *testing.T) {
	photo := imageItem("Intro", "/img/intro.jpg")
	clip := media.NewItem("Tour", 3*time.Second, media.Source{URL: "/vid/tour.mp4", MIME: "video/mp4"})
	s := surfaceFixture(t, photo, clip)

	s.ShowMedia(0, photo)
	s.ShowMedia(1, clip)

	late := fyne.NewStaticResource("intro", []byte{1})
	s.applyDecoded(photo.Source.URL, late)
	assert.Equal(t, theme.MediaVideoIcon(), s.mediaImage.Resource)
}
