// Package service is the business-logic layer behind the CLI: it
// validates, imports, exports, lists, and generates presentation
// documents, keeping the storage and scanning details out of the
// command definitions.
package service

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/serge22/media-accordion/internal/catalog"
	"github.com/serge22/media-accordion/internal/document"
	"github.com/serge22/media-accordion/internal/scan"
)

// Store abstracts the presentation catalog for easier testing and
// decoupling.
type Store interface {
	Save(name string, doc *document.Document) error
	Get(name string) (*catalog.Record, error)
	List() ([]catalog.Entry, error)
	Delete(name string) error
	Close() error
}

// Service is the main entry point for business logic.
type Service struct {
	Catalog Store
	Logger  func(string)
}

// NewService constructs a new Service.
func NewService(store Store, logger func(string)) *Service {
	if logger == nil {
		logger = func(string) {}
	}
	return &Service{Catalog: store, Logger: logger}
}

// ValidateFile parses a presentation file and reports its shape.
func (s *Service) ValidateFile(path string) (*document.Document, error) {
	return document.Load(path)
}

// Import parses a presentation file and stores it under the given
// name. An empty name defaults to the file's base name without
// extension.
func (s *Service) Import(name, path string) (string, error) {
	doc, err := document.Load(path)
	if err != nil {
		return "", err
	}
	if name == "" {
		base := filepath.Base(path)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	if err := s.Catalog.Save(name, doc); err != nil {
		return "", err
	}
	s.Logger(fmt.Sprintf("imported presentation %q from %s", name, path))
	return name, nil
}

// Export writes a stored presentation back out as YAML. An empty path
// writes <name>.yaml in the working directory.
func (s *Service) Export(name, path string) (string, error) {
	if name == "" {
		return "", errors.New("presentation name required")
	}
	rec, err := s.Catalog.Get(name)
	if err != nil {
		return "", err
	}
	if path == "" {
		path = name + ".yaml"
	}
	data, err := yaml.Marshal(&rec.Document)
	if err != nil {
		return "", fmt.Errorf("encode presentation %q: %w", name, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	s.Logger(fmt.Sprintf("exported presentation %q to %s", name, path))
	return path, nil
}

// List returns the stored presentations.
func (s *Service) List() ([]catalog.Entry, error) {
	return s.Catalog.List()
}

// Delete removes a stored presentation.
func (s *Service) Delete(name string) error {
	if name == "" {
		return errors.New("presentation name required")
	}
	if err := s.Catalog.Delete(name); err != nil {
		return err
	}
	s.Logger(fmt.Sprintf("deleted presentation %q", name))
	return nil
}

// GenerateOptions shapes a generated presentation.
type GenerateOptions struct {
	ContainerID string
	Layout      string
	// DurationMS applies to every generated item; zero keeps the
	// runtime default.
	DurationMS int
}

// Generate scans a directory for media files and builds a one-container
// presentation from what it finds. Item titles come from the media
// metadata when available, the file name otherwise.
func (s *Service) Generate(dir string, opts GenerateOptions) (*document.Document, error) {
	if dir == "" {
		return nil, errors.New("directory required")
	}
	var found scan.FileItems
	if err := scan.Run(dir, &found); err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}
	if len(found) == 0 {
		return nil, fmt.Errorf("no media files under %s", dir)
	}

	id := opts.ContainerID
	if id == "" {
		id = filepath.Base(dir)
	}
	c := document.Container{ID: id, Layout: opts.Layout}
	for _, fi := range found {
		c.Items = append(c.Items, document.Item{
			Title:      TitleFor(fi.Path),
			DurationMS: opts.DurationMS,
			Media:      document.Media{URL: fi.Path, MIME: fi.MIME},
		})
	}
	doc := &document.Document{Title: id, Containers: []document.Container{c}}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	s.Logger(fmt.Sprintf("generated presentation with %d item(s) from %s", len(c.Items), dir))
	return doc, nil
}
