// Package ui  Setup for the Media Accordion viewer application
package ui

import (
	"flag"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/jonboulle/clockwork"

	"github.com/serge22/media-accordion/internal/accordion"
	"github.com/serge22/media-accordion/internal/carousel"
	"github.com/serge22/media-accordion/internal/document"
	"github.com/serge22/media-accordion/internal/viewport"
	"github.com/serge22/media-accordion/internal/visibility"
)

// UI holds the top-level window chrome.
type UI struct {
	MainWin fyne.Window

	statusPathLabel  *widget.Label
	statusLogLabel   *widget.Label
	statusLogUpBtn   *widget.Button
	statusLogDownBtn *widget.Button
}

// App represents the whole viewer application with all its windows,
// widgets and functions.
type App struct {
	app fyne.App
	UI  UI

	docPath string
	doc     *document.Document

	scroll   *container.Scroll
	pageBox  *fyne.Container
	page     *accordion.Page
	registry *visibility.Registry
	surfaces map[string]*accordionSurface
	cache    *MediaCache

	logUIManager *LogUIManager
	lastSize     viewport.Size
	closed       chan struct{}
}

// fyneBinder builds the fyne collaborators for each container during
// bootstrap.
type fyneBinder struct {
	app *App
}

func (b *fyneBinder) Bind(c accordion.Container) (accordion.Surface, *carousel.Adapter, error) {
	if c.ID == "" {
		return nil, nil, fmt.Errorf("container without id")
	}
	surface := newAccordionSurface(c, b.app.cache)
	b.app.surfaces[c.ID] = surface
	b.app.pageBox.Add(surface.Root())
	return surface, surface.newAdapter(), nil
}

// addLogMessage adds a message to the UI log display.
func (a *App) addLogMessage(message string) {
	if a.logUIManager != nil {
		a.logUIManager.AddLogMessage(message)
	} else {
		log.Printf("EarlyLog: %s", message)
	}
}

// contentSize is the size the presentation containers get classified
// against.
func (a *App) contentSize() viewport.Size {
	sz := a.scroll.Size()
	if sz.Width <= 0 || sz.Height <= 0 {
		c := a.UI.MainWin.Canvas()
		if c != nil {
			cs := c.Size()
			return viewport.Size{Width: cs.Width, Height: cs.Height}
		}
	}
	return viewport.Size{Width: sz.Width, Height: sz.Height}
}

// bootPage tears down the current page, if any, and boots the given
// document into the window.
func (a *App) bootPage(doc *document.Document) {
	if a.page != nil {
		a.page.Close()
	}
	a.pageBox.RemoveAll()
	a.surfaces = make(map[string]*accordionSurface)
	a.registry = visibility.NewRegistry(newScrollObserverFactory(a.scroll))
	a.doc = doc

	a.lastSize = a.contentSize()
	a.page = accordion.Boot(doc.Runtime(), &fyneBinder{app: a}, accordion.PageOptions{
		Clock:       clockwork.NewRealClock(),
		Registry:    a.registry,
		Dispatch:    fyne.Do,
		InitialSize: a.lastSize,
		Logger:      a.addLogMessage,
	})
	// Surfaces exist before their instances do; connect the input paths
	// now that both sides are alive.
	for _, inst := range a.page.Instances() {
		if s, ok := a.surfaces[inst.ID()]; ok {
			s.connect(inst)
		}
	}
	a.pageBox.Refresh()
	a.updateStatusBar()
}

// updateStatusBar updates the text of the status bar.
func (a *App) updateStatusBar() {
	if a.UI.statusPathLabel == nil {
		return
	}
	title := a.doc.Title
	if title == "" {
		title = filepath.Base(a.docPath)
	}
	a.UI.statusPathLabel.SetText(fmt.Sprintf("%s  |  %d container(s)", title, len(a.page.Instances())))
}

// reload re-reads the presentation file and reboots the page, keeping
// the old page when the new document does not parse.
func (a *App) reload() {
	doc, err := document.Load(a.docPath)
	if err != nil {
		a.addLogMessage(fmt.Sprintf("Reload rejected: %v", err))
		return
	}
	a.bootPage(doc)
	a.addLogMessage(fmt.Sprintf("Reloaded %s", a.docPath))
}

// watchPresentation reloads the page whenever the presentation file
// changes on disk.
func (a *App) watchPresentation() *document.Watcher {
	w, err := document.NewWatcher(a.docPath)
	if err != nil {
		a.addLogMessage(fmt.Sprintf("Watch disabled: %v", err))
		return nil
	}
	target := a.docPath
	go func() {
		for name := range w.Events {
			if filepath.Clean(name) != filepath.Clean(target) {
				continue
			}
			fyne.Do(a.reload)
		}
	}()
	go func() {
		for err := range w.Errors {
			fyne.Do(func() { a.addLogMessage(fmt.Sprintf("Watch error: %v", err)) })
		}
	}()
	return w
}

// watchResize feeds window size changes into the page. Fyne has no
// resize callback, so the size is polled and only changes are fanned
// out; the per-instance debounce does the rest.
func (a *App) watchResize() {
	ticker := time.NewTicker(300 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-a.closed:
			return
		case <-ticker.C:
		}
		fyne.Do(func() {
			size := a.contentSize()
			if size == a.lastSize || a.page == nil {
				return
			}
			a.lastSize = size
			a.page.HandleResize(size)
		})
	}
}

func (a *App) buildKeyboardShortcuts() {
	a.UI.MainWin.Canvas().SetOnTypedKey(func(key *fyne.KeyEvent) {
		switch key.Name {
		case fyne.KeyQ:
			a.app.Quit()
		case fyne.KeyP, fyne.KeySpace:
			for _, inst := range a.page.Instances() {
				inst.HandlePauseTap()
			}
		case fyne.KeyRight:
			for _, inst := range a.page.Instances() {
				if c := inst.Controller(); c != nil {
					c.AdvanceToNext()
				}
			}
		case fyne.KeyR:
			a.reload()
		case fyne.KeyEscape:
			if len(a.UI.MainWin.Canvas().Overlays().List()) > 0 {
				a.UI.MainWin.Canvas().Overlays().Top().Hide()
			}
		}
	})
}

func (a *App) buildMainUI() fyne.CanvasObject {
	a.UI.MainWin.SetMaster()

	a.pageBox = container.NewVBox()
	a.scroll = container.NewVScroll(a.pageBox)

	a.UI.statusPathLabel = widget.NewLabel("Ready")
	a.UI.statusLogLabel = widget.NewLabel("")
	a.UI.statusLogUpBtn = widget.NewButton("^", nil)
	a.UI.statusLogDownBtn = widget.NewButton("v", nil)
	a.logUIManager = NewLogUIManager(a.UI.statusLogLabel, a.UI.statusLogUpBtn, a.UI.statusLogDownBtn, 0)
	a.UI.statusLogUpBtn.OnTapped = a.logUIManager.ShowPreviousLogMessage
	a.UI.statusLogDownBtn.OnTapped = a.logUIManager.ShowNextLogMessage

	statusBar := container.NewVBox(
		widget.NewSeparator(),
		container.NewHBox(a.UI.statusPathLabel),
		container.NewHBox(a.UI.statusLogUpBtn, a.UI.statusLogDownBtn, a.UI.statusLogLabel),
	)

	a.buildKeyboardShortcuts()
	return container.NewBorder(nil, statusBar, nil, nil, a.scroll)
}

// Command-line flags
var watchFlag = flag.Bool("watch", true, "Reload the presentation when the file changes on disk.")

// CreateApplication is the GUI entrypoint
func CreateApplication() {
	flag.Parse()
	docPath := flag.Arg(0)
	if docPath == "" {
		docPath = "presentation.yaml"
	}
	docPath, err := filepath.Abs(docPath)
	if err != nil {
		log.Fatalf("Error getting absolute path: %v", err)
	}

	doc, err := document.Load(docPath)
	if err != nil {
		log.Fatalf("Failed to load presentation: %v", err)
	}

	fa := app.NewWithID("com.github.serge22.media-accordion")
	currentTheme := fa.Settings().Theme()
	fa.Settings().SetTheme(NewDenseTheme(currentTheme))

	ui := &App{
		app:      fa,
		docPath:  docPath,
		surfaces: make(map[string]*accordionSurface),
		closed:   make(chan struct{}),
	}
	ui.cache = NewMediaCache(func(msg string) {
		fyne.Do(func() { ui.addLogMessage(msg) })
	})

	ui.UI.MainWin = fa.NewWindow("Media Accordion")
	ui.UI.MainWin.SetContent(ui.buildMainUI())
	ui.UI.MainWin.Resize(fyne.NewSize(960, 640))
	ui.UI.MainWin.CenterOnScreen()

	ui.bootPage(doc)

	var watcher *document.Watcher
	if *watchFlag {
		watcher = ui.watchPresentation()
	}
	go ui.watchResize()

	ui.UI.MainWin.SetCloseIntercept(func() {
		close(ui.closed)
		if watcher != nil {
			if err := watcher.Close(); err != nil {
				log.Printf("Error closing watcher: %v", err)
			}
		}
		if ui.page != nil {
			ui.page.Close()
		}
		ui.UI.MainWin.Close()
	})

	ui.UI.MainWin.ShowAndRun()
}
