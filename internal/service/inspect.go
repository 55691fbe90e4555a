package service

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rwcarlsen/goexif/exif"
)

// MediaInfo holds metadata about a media file.
type MediaInfo struct {
	Width    int
	Height   int
	Size     int64
	ModTime  time.Time
	EXIFData map[string]string
}

// GetEXIF extracts a few common EXIF fields from an image file.
func GetEXIF(r io.Reader) (map[string]string, error) {
	x, err := exif.Decode(r)
	if err != nil {
		return nil, nil // Not all images have EXIF; not an error for non-JPEGs
	}
	result := make(map[string]string)
	for _, field := range []string{
		"DateTime", "Model", "Make", "ImageDescription",
	} {
		tag, err := x.Get(exif.FieldName(field))
		if err == nil && tag != nil {
			result[field] = tag.String()
		}
	}
	return result, nil
}

// Inspect returns dimensions, file size, mod time, and EXIF data for
// an image file. Video files only get the stat fields.
func Inspect(path string) (*MediaInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open media for info: %w", err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat media file: %w", err)
	}
	info := &MediaInfo{Size: fi.Size(), ModTime: fi.ModTime()}

	exifData, _ := GetEXIF(f) // EXIF is optional
	info.EXIFData = exifData

	if _, err = f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to seek in media file: %w", err)
	}
	if cfg, _, err := image.DecodeConfig(f); err == nil {
		info.Width = cfg.Width
		info.Height = cfg.Height
	}
	return info, nil
}

// TitleFor derives an item title for a media file: the EXIF image
// description when one exists, otherwise the file name with the
// extension stripped and separators spaced out.
func TitleFor(path string) string {
	if f, err := os.Open(path); err == nil {
		exifData, _ := GetEXIF(f)
		f.Close()
		if desc, ok := exifData["ImageDescription"]; ok {
			if desc = strings.Trim(desc, `" `); desc != "" {
				return desc
			}
		}
	}
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.NewReplacer("_", " ", "-", " ").Replace(base)
	return strings.TrimSpace(base)
}
