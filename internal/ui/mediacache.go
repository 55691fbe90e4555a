package ui

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"

	"github.com/nfnt/resize"
)

const (
	// PaneMaxWidth bounds the decoded size of media pane images.
	PaneMaxWidth = 1280
	// PaneMaxHeight bounds the decoded size of media pane images.
	PaneMaxHeight = 720
)

// MediaCache handles loading and caching of the item images shown in
// the media pane. Images are decoded and downscaled off the UI
// goroutine; callers get a placeholder immediately and the real
// resource through onComplete.
type MediaCache struct {
	cache      map[string]fyne.Resource
	cacheMutex sync.RWMutex
	logger     func(string)
}

// NewMediaCache creates a new media cache.
func NewMediaCache(logger func(string)) *MediaCache {
	if logger == nil {
		logger = func(string) {}
	}
	return &MediaCache{
		cache:  make(map[string]fyne.Resource),
		logger: logger,
	}
}

// imageToBytes is a helper to convert image.Image to []byte for Fyne resources.
func imageToBytes(img image.Image) []byte {
	buf := new(bytes.Buffer)
	if err := png.Encode(buf, img); err != nil {
		return nil
	}
	return buf.Bytes()
}

// Get returns a cached resource for an image path, or a placeholder
// while the image is decoded in the background.
func (mc *MediaCache) Get(path string, onComplete func(fyne.Resource)) fyne.Resource {
	mc.cacheMutex.RLock()
	if res, ok := mc.cache[path]; ok {
		mc.cacheMutex.RUnlock()
		return res
	}
	mc.cacheMutex.RUnlock()

	go func() {
		f, err := os.Open(path)
		if err != nil {
			mc.logger("Media load error for " + filepath.Base(path) + ": " + err.Error())
			return
		}
		imgDecoded, _, err := image.Decode(f)
		f.Close()
		if err != nil {
			mc.logger("Media decode error for " + filepath.Base(path) + ": " + err.Error())
			return
		}

		scaled := resize.Thumbnail(PaneMaxWidth, PaneMaxHeight, imgDecoded, resize.Lanczos3)
		scaledBytes := imageToBytes(scaled)
		if scaledBytes == nil {
			return
		}
		imgResource := fyne.NewStaticResource(path, scaledBytes)

		mc.cacheMutex.Lock()
		mc.cache[path] = imgResource
		mc.cacheMutex.Unlock()

		fyne.Do(func() {
			onComplete(imgResource)
		})
	}()

	return theme.FileImageIcon()
}
