// Package scan operates on media files in a directory and its
// subdirectories. It feeds the presentation generator: every image or
// video it finds becomes a candidate accordion item.
package scan

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FileItem is one discovered media file.
type FileItem struct {
	Path string
	MIME string
}

// FileItems is a slice of FileItem
type FileItems []FileItem

// NewFileItem creates a new FileItem, deriving the MIME type from the
// extension.
func NewFileItem(p string) FileItem {
	return FileItem{
		Path: p,
		MIME: MIMEFor(p),
	}
}

var mimeByExt = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
	".mp4":  "video/mp4",
	".webm": "video/webm",
	".mov":  "video/quicktime",
}

// MIMEFor returns the MIME type for a media file name, or "" when the
// extension is not a supported media type.
func MIMEFor(n string) string {
	return mimeByExt[strings.ToLower(filepath.Ext(n))]
}

// IsMedia checks if a file is a supported image or video.
func IsMedia(n string) bool {
	return MIMEFor(n) != ""
}

// Run walks dir and appends every non-empty media file to m, sorted by
// path so generated presentations are stable across runs.
func Run(dir string, m *FileItems) error {
	visit := func(p string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if info.Mode().IsRegular() && info.Size() > 0 && IsMedia(p) {
			*m = append(*m, NewFileItem(p))
		}
		return nil
	}
	if err := filepath.Walk(dir, visit); err != nil {
		return err
	}
	sort.Slice(*m, func(i, j int) bool { return (*m)[i].Path < (*m)[j].Path })
	return nil
}
