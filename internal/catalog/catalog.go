// Package catalog stores named presentation documents in a BoltDB
// database, so the CLI can import, list, export, and delete
// presentations without shuffling loose YAML files around.
package catalog

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/serge22/media-accordion/internal/document"
)

const (
	dbFileName          = "accordion_catalog.db"
	PresentationsBucket = "Presentations" // Bucket name for presentation records keyed by name.
)

// LoggerFunc defines a function signature for logging messages.
// This allows the caller to provide its logging mechanism.
type LoggerFunc func(message string)

// Catalog manages the presentation database.
type Catalog struct {
	db     *bolt.DB
	logger LoggerFunc
}

// Record is the stored form of one presentation.
type Record struct {
	Name     string            `json:"name"`
	SavedAt  time.Time         `json:"saved_at"`
	Document document.Document `json:"document"`
}

// Entry is a listing row: the record's name plus its shape.
type Entry struct {
	Name       string
	SavedAt    time.Time
	Containers int
	Items      int
}

// NewCatalog creates or opens the catalog database file.
// dbDir specifies the directory where the db file should be stored; an
// empty dbDir means the per-user config directory.
func NewCatalog(dbDir string, logger LoggerFunc) (*Catalog, error) {
	if dbDir == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			log.Printf("Warning: Could not get user config dir: %v. Using current dir.", err)
			dbDir = "."
		} else {
			appConfigDir := filepath.Join(configDir, "media-accordion")
			if err := os.MkdirAll(appConfigDir, 0750); err != nil {
				return nil, fmt.Errorf("failed to create config directory %s: %w", appConfigDir, err)
			}
			dbDir = appConfigDir
		}
	}

	dbPath := filepath.Join(dbDir, dbFileName)
	if logger != nil {
		logger(fmt.Sprintf("Using presentation catalog at: %s", dbPath))
	}

	db, err := bolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog database %s: %w", dbPath, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(PresentationsBucket))
		if err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", PresentationsBucket, err)
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Catalog{db: db, logger: logger}, nil
}

func (c *Catalog) logMessage(format string, args ...interface{}) {
	if c.logger != nil {
		c.logger(fmt.Sprintf(format, args...))
	} else {
		log.Printf(format, args...)
	}
}

// Close closes the database connection.
func (c *Catalog) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// Save stores a presentation under the given name, replacing any
// previous record. The document must already validate.
func (c *Catalog) Save(name string, doc *document.Document) error {
	if name == "" {
		return fmt.Errorf("presentation name cannot be empty")
	}
	if doc == nil {
		return fmt.Errorf("presentation document cannot be nil")
	}
	if err := doc.Validate(); err != nil {
		return fmt.Errorf("refusing to store invalid presentation %q: %w", name, err)
	}
	rec := Record{Name: name, SavedAt: time.Now().UTC(), Document: *doc}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode presentation %q: %w", name, err)
	}
	return c.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(PresentationsBucket))
		if err := bucket.Put([]byte(name), data); err != nil {
			return fmt.Errorf("failed to put presentation %q: %w", name, err)
		}
		return nil
	})
}

// Get retrieves a stored presentation by name. A missing name is an
// error, not an empty record.
func (c *Catalog) Get(name string) (*Record, error) {
	var rec Record
	err := c.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(PresentationsBucket))
		data := bucket.Get([]byte(name))
		if data == nil {
			return fmt.Errorf("presentation %q not found", name)
		}
		if err := json.Unmarshal(data, &rec); err != nil {
			return fmt.Errorf("failed to decode presentation %q: %w", name, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// List returns all stored presentations, sorted by name.
func (c *Catalog) List() ([]Entry, error) {
	var entries []Entry
	err := c.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(PresentationsBucket))
		return bucket.ForEach(func(k, v []byte) error {
			var rec Record
			if err := json.Unmarshal(v, &rec); err != nil {
				c.logMessage("Error decoding presentation %q, skipping: %v", string(k), err)
				return nil
			}
			items := 0
			for _, cont := range rec.Document.Containers {
				items += len(cont.Items)
			}
			entries = append(entries, Entry{
				Name:       string(k),
				SavedAt:    rec.SavedAt,
				Containers: len(rec.Document.Containers),
				Items:      items,
			})
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

// Delete removes a stored presentation. Deleting a missing name is an
// error so typos surface instead of silently succeeding.
func (c *Catalog) Delete(name string) error {
	if name == "" {
		return fmt.Errorf("presentation name cannot be empty")
	}
	return c.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(PresentationsBucket))
		if bucket.Get([]byte(name)) == nil {
			return fmt.Errorf("presentation %q not found", name)
		}
		if err := bucket.Delete([]byte(name)); err != nil {
			return fmt.Errorf("failed to delete presentation %q: %w", name, err)
		}
		return nil
	})
}
