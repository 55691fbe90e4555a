// Package document loads and validates the YAML presentation documents
// that declare which accordion containers exist on a page, which media
// items they cycle through, and how they behave.
package document

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/serge22/media-accordion/internal/accordion"
	"github.com/serge22/media-accordion/internal/media"
)

// Document is the root of a presentation file.
type Document struct {
	Title      string      `yaml:"title"`
	Containers []Container `yaml:"containers"`
}

// Container declares one accordion container.
type Container struct {
	ID string `yaml:"id"`
	// Autoplay defaults to true; only an explicit "autoplay: false"
	// disables it.
	Autoplay *bool  `yaml:"autoplay"`
	Layout   string `yaml:"layout"`
	Items    []Item `yaml:"items"`
}

// Item declares one media item of a container.
type Item struct {
	Title      string `yaml:"title"`
	DurationMS int    `yaml:"duration_ms"`
	Media      Media  `yaml:"media"`
}

// Media is the item's source descriptor.
type Media struct {
	URL  string `yaml:"url"`
	MIME string `yaml:"mime"`
}

// Parse decodes and validates a presentation document.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse presentation: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Load reads and parses a presentation file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read presentation %s: %w", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Validate checks the declaration-level rules: container ids are
// present and unique, layouts are known, and every item names a source
// URL. Containers with zero items are legal; they render dormant.
func (d *Document) Validate() error {
	seen := make(map[string]struct{}, len(d.Containers))
	for ci, c := range d.Containers {
		if c.ID == "" {
			return fmt.Errorf("container %d: missing id", ci)
		}
		if _, dup := seen[c.ID]; dup {
			return fmt.Errorf("container %q: duplicate id", c.ID)
		}
		seen[c.ID] = struct{}{}
		if _, err := parseLayout(c.Layout); err != nil {
			return fmt.Errorf("container %q: %w", c.ID, err)
		}
		for ii, item := range c.Items {
			if item.Media.URL == "" {
				return fmt.Errorf("container %q item %d: missing media url", c.ID, ii)
			}
			if item.DurationMS < 0 {
				return fmt.Errorf("container %q item %d: negative duration", c.ID, ii)
			}
		}
	}
	return nil
}

func parseLayout(s string) (accordion.Layout, error) {
	switch s {
	case "", "standard":
		return accordion.LayoutStandard, nil
	case "hover":
		return accordion.LayoutHover, nil
	default:
		return 0, fmt.Errorf("unknown layout %q", s)
	}
}

// Runtime converts the declarations into the runtime container
// descriptions the bootstrap consumes. Validate must have passed;
// layouts that still fail to parse fall back to standard.
func (d *Document) Runtime() []accordion.Container {
	out := make([]accordion.Container, 0, len(d.Containers))
	for _, c := range d.Containers {
		layout, _ := parseLayout(c.Layout)
		items := make([]media.Item, 0, len(c.Items))
		for _, it := range c.Items {
			items = append(items, media.NewItem(
				it.Title,
				time.Duration(it.DurationMS)*time.Millisecond,
				media.Source{URL: it.Media.URL, MIME: it.Media.MIME},
			))
		}
		out = append(out, accordion.Container{
			ID:       c.ID,
			Items:    items,
			Autoplay: c.Autoplay == nil || *c.Autoplay,
			Layout:   layout,
		})
	}
	return out
}
