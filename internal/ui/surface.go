package ui

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/serge22/media-accordion/internal/accordion"
	"github.com/serge22/media-accordion/internal/carousel"
	"github.com/serge22/media-accordion/internal/media"
	"github.com/serge22/media-accordion/internal/viewport"
)

// events is the slice of the accordion instance the surface talks back
// to. It is connected after bootstrap, so every handler nil-checks.
type events interface {
	HandleHeaderTap(index int)
	HandleHover(index int)
	HandlePauseTap()
}

// accordionSurface renders one accordion container. It implements both
// the render-surface side (active item, media pane, pause control) and
// the carousel host side (swapping the header list for a swipe deck).
// All methods run on the fyne goroutine.
type accordionSurface struct {
	spec   accordion.Container
	cache  *MediaCache
	events events

	headers      []*itemHeader
	headerBox    *fyne.Container
	mediaImage   *canvas.Image
	mediaTitle   *widget.Label
	statusLabel  *widget.Label
	pauseBtn     *widget.Button
	dotsBox      *fyne.Container
	carouselSlot *fyne.Container
	accordionBox *fyne.Container
	root         *fyne.Container
	element      *canvasElement

	// activeMedia is the source URL of the item owning the media pane;
	// decode completions for anything else are stale and get dropped.
	activeMedia string
	playing     bool
}

// newAccordionSurface builds the widget tree for one container.
func newAccordionSurface(spec accordion.Container, cache *MediaCache) *accordionSurface {
	s := &accordionSurface{spec: spec, cache: cache}

	s.headerBox = container.NewVBox()
	for i, item := range spec.Items {
		index := i
		var onHover func()
		if spec.Layout == accordion.LayoutHover {
			onHover = func() { s.hover(index) }
		}
		h := newItemHeader(item.Title, func() { s.tap(index) }, onHover)
		s.headers = append(s.headers, h)
		s.headerBox.Add(h)
	}

	s.mediaImage = &canvas.Image{}
	s.mediaImage.FillMode = canvas.ImageFillContain
	s.mediaImage.SetMinSize(fyne.NewSize(320, 180))
	s.mediaTitle = widget.NewLabel("")
	s.statusLabel = widget.NewLabel("")
	s.pauseBtn = widget.NewButtonWithIcon("", theme.MediaPauseIcon(), func() { s.pauseTap() })

	mediaPane := container.NewBorder(nil,
		container.NewHBox(s.mediaTitle, s.statusLabel, s.pauseBtn), nil, nil,
		s.mediaImage,
	)
	s.accordionBox = container.NewBorder(nil, nil, s.headerBox, nil, mediaPane)

	s.dotsBox = container.NewHBox()
	s.carouselSlot = container.NewVBox()
	s.carouselSlot.Hide()

	s.root = container.NewVBox(
		widget.NewCard(spec.ID, "", nil),
		container.NewStack(s.accordionBox, s.carouselSlot),
		container.NewCenter(s.dotsBox),
		widget.NewSeparator(),
	)
	s.element = newCanvasElement(s.root)
	return s
}

// connect wires the surface's input events to the accordion instance.
func (s *accordionSurface) connect(ev events) {
	s.events = ev
}

// Root is the canvas object the page lays out.
func (s *accordionSurface) Root() fyne.CanvasObject { return s.root }

func (s *accordionSurface) tap(index int) {
	if s.events != nil {
		s.events.HandleHeaderTap(index)
	}
}

func (s *accordionSurface) hover(index int) {
	if s.events != nil {
		s.events.HandleHover(index)
	}
}

func (s *accordionSurface) pauseTap() {
	if s.events != nil {
		s.events.HandlePauseTap()
	}
}

// --- accordion.Surface ---

func (s *accordionSurface) SetActiveItem(prev, next int) {
	if prev >= 0 && prev < len(s.headers) {
		s.headers[prev].SetActive(false)
	}
	if next >= 0 && next < len(s.headers) {
		s.headers[next].SetActive(true)
	}
}

func (s *accordionSurface) ShowMedia(index int, item media.Item) {
	s.mediaTitle.SetText(item.Title)
	s.activeMedia = item.Source.URL
	switch item.Source.Kind() {
	case media.KindVideo:
		s.mediaImage.Resource = theme.MediaVideoIcon()
		s.mediaImage.Refresh()
		s.updateStatus()
	default:
		path := item.Source.URL
		s.mediaImage.Resource = s.cache.Get(path, func(res fyne.Resource) {
			s.applyDecoded(path, res)
		})
		s.mediaImage.Refresh()
		s.updateStatus()
	}
}

// applyDecoded installs a finished background decode, unless the pane
// has moved on to another source in the meantime.
func (s *accordionSurface) applyDecoded(source string, res fyne.Resource) {
	if s.activeMedia != source {
		return
	}
	s.mediaImage.Resource = res
	s.mediaImage.Refresh()
}

func (s *accordionSurface) SetItemDuration(index int, d time.Duration) {
	s.statusLabel.SetText(d.Round(time.Millisecond).String())
}

func (s *accordionSurface) SetPauseControl(paused bool) {
	if paused {
		s.pauseBtn.SetIcon(theme.MediaPlayIcon())
	} else {
		s.pauseBtn.SetIcon(theme.MediaPauseIcon())
	}
}

func (s *accordionSurface) SetMediaPlaying(playing bool) {
	s.playing = playing
	s.updateStatus()
}

func (s *accordionSurface) Element() viewport.Element { return s.element }

func (s *accordionSurface) updateStatus() {
	// The schedule countdown is only live while running.
	s.statusLabel.TextStyle.Italic = !s.playing
	s.statusLabel.Refresh()
}

// --- carousel.Host ---

func (s *accordionSurface) EnterCarouselMode() {
	s.accordionBox.Hide()
	s.carouselSlot.Show()
}

func (s *accordionSurface) LeaveCarouselMode() {
	s.carouselSlot.RemoveAll()
	s.carouselSlot.Hide()
	s.accordionBox.Show()
}

// buildDeck constructs the swipe deck for carousel mode, one slide per
// item.
func (s *accordionSurface) buildDeck(cfg carousel.Config, onChange func(int)) *swipeDeck {
	slides := make([]fyne.CanvasObject, 0, len(s.spec.Items))
	for _, item := range s.spec.Items {
		img := &canvas.Image{}
		img.FillMode = canvas.ImageFillContain
		img.SetMinSize(fyne.NewSize(280, 160))
		if item.Source.Kind() == media.KindVideo {
			img.Resource = theme.MediaVideoIcon()
		} else {
			target := img
			img.Resource = s.cache.Get(item.Source.URL, func(res fyne.Resource) {
				target.Resource = res
				target.Refresh()
			})
		}
		title := widget.NewLabel(item.Title)
		title.Alignment = fyne.TextAlignCenter
		slides = append(slides, container.NewBorder(nil, title, nil, nil, img))
	}
	deck := newSwipeDeck(slides, cfg.StartIndex, onChange)
	s.carouselSlot.RemoveAll()
	s.carouselSlot.Add(deck)
	return deck
}

// newAdapter builds the carousel adapter bound to this surface, dots
// included.
func (s *accordionSurface) newAdapter() *carousel.Adapter {
	build := func(host carousel.Host, cfg carousel.Config, onChange func(int)) (carousel.Widget, error) {
		hs, ok := host.(*accordionSurface)
		if !ok {
			return nil, fmt.Errorf("carousel host is not an accordion surface")
		}
		return hs.buildDeck(cfg, onChange), nil
	}
	return carousel.NewAdapter(build, carousel.NewNavDots(newDotRow(s.dotsBox)))
}
