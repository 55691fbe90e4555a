package catalog

import (
	"testing"

	"github.com/serge22/media-accordion/internal/document"
)

func testDoc() *document.Document {
	return &document.Document{
		Title: "Landing page",
		Containers: []document.Container{
			{
				ID: "hero",
				Items: []document.Item{
					{Title: "Welcome", DurationMS: 3000, Media: document.Media{URL: "welcome.jpg", MIME: "image/jpeg"}},
					{Title: "Tour", DurationMS: 8000, Media: document.Media{URL: "tour.mp4", MIME: "video/mp4"}},
				},
			},
			{ID: "gallery", Layout: "hover"},
		},
	}
}

func openTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := NewCatalog(t.TempDir(), func(string) {})
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestSaveAndGet(t *testing.T) {
	c := openTestCatalog(t)

	if err := c.Save("landing", testDoc()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	rec, err := c.Get("landing")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if rec.Name != "landing" {
		t.Errorf("expected name landing, got %s", rec.Name)
	}
	if rec.SavedAt.IsZero() {
		t.Errorf("expected SavedAt to be set")
	}
	if len(rec.Document.Containers) != 2 {
		t.Fatalf("expected 2 containers, got %d", len(rec.Document.Containers))
	}
	if rec.Document.Containers[0].Items[1].Media.URL != "tour.mp4" {
		t.Errorf("unexpected round-trip: %+v", rec.Document.Containers[0].Items[1])
	}
}

func TestSaveReplacesExisting(t *testing.T) {
	c := openTestCatalog(t)

	if err := c.Save("landing", testDoc()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	updated := testDoc()
	updated.Title = "Landing v2"
	if err := c.Save("landing", updated); err != nil {
		t.Fatalf("Save (replace): %v", err)
	}

	rec, err := c.Get("landing")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if rec.Document.Title != "Landing v2" {
		t.Errorf("expected replaced title, got %s", rec.Document.Title)
	}
}

func TestSaveRejectsInvalid(t *testing.T) {
	c := openTestCatalog(t)

	if err := c.Save("", testDoc()); err == nil {
		t.Errorf("expected error for empty name")
	}
	if err := c.Save("x", nil); err == nil {
		t.Errorf("expected error for nil document")
	}
	bad := testDoc()
	bad.Containers[1].ID = "hero" // duplicate
	if err := c.Save("dup", bad); err == nil {
		t.Errorf("expected error for invalid document")
	}
}

func TestGetMissing(t *testing.T) {
	c := openTestCatalog(t)
	if _, err := c.Get("nope"); err == nil {
		t.Errorf("expected error for missing presentation")
	}
}

func TestListSortedWithCounts(t *testing.T) {
	c := openTestCatalog(t)

	if err := c.Save("zeta", testDoc()); err != nil {
		t.Fatalf("Save zeta: %v", err)
	}
	if err := c.Save("alpha", testDoc()); err != nil {
		t.Fatalf("Save alpha: %v", err)
	}

	entries, err := c.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Name != "alpha" || entries[1].Name != "zeta" {
		t.Errorf("expected sorted names, got %v then %v", entries[0].Name, entries[1].Name)
	}
	if entries[0].Containers != 2 || entries[0].Items != 2 {
		t.Errorf("unexpected counts: %+v", entries[0])
	}
}

func TestDelete(t *testing.T) {
	c := openTestCatalog(t)

	if err := c.Save("landing", testDoc()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := c.Delete("landing"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := c.Get("landing"); err == nil {
		t.Errorf("expected Get to fail after delete")
	}
	if err := c.Delete("landing"); err == nil {
		t.Errorf("expected error deleting a missing presentation")
	}
}
