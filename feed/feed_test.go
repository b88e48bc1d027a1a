package feed

import (
	"os"
	"path/filepath"
	"testing"

	"smart-shopper/utils"
)

func writeFeed(t *testing.T, dir, name, contents string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(contents), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoaderReadsFeedsInOrder(t *testing.T) {
	dir := t.TempDir()
	writeFeed(t, dir, "flipkart.json", `[
		{"title": "Earbuds C", "price_text": "₹2,799", "rating": "4.1"}
	]`)
	writeFeed(t, dir, "amazon.json", `[
		{"title": "Earbuds A", "price_text": "₹2,999", "rating": "4.3"},
		{"title": "Earbuds B", "price_text": "₹1,999", "rating": "3.9", "sponsored": true}
	]`)

	loader := NewLoader(dir, 3, utils.NewLoggerAt(utils.LevelError))
	records, err := loader.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}

	// Files sorted by name: amazon before flipkart, records in file order.
	wantTitles := []string{"Earbuds A", "Earbuds B", "Earbuds C"}
	for i, want := range wantTitles {
		if records[i].Title != want {
			t.Errorf("record %d: got %q, want %q", i, records[i].Title, want)
		}
	}

	if records[0].Platform != "amazon" {
		t.Errorf("platform from file name: got %q, want %q", records[0].Platform, "amazon")
	}
	if !records[1].Sponsored {
		t.Error("sponsored flag should survive ingestion")
	}
	if records[2].Platform != "flipkart" {
		t.Errorf("platform from file name: got %q, want %q", records[2].Platform, "flipkart")
	}
	if records[0].CollectedAt.IsZero() {
		t.Error("missing collected_at should be filled in")
	}
}

func TestLoaderExplicitPlatformWins(t *testing.T) {
	dir := t.TempDir()
	writeFeed(t, dir, "export.json", `[
		{"platform": "myntra", "title": "Shoes", "price_text": "₹999"}
	]`)

	loader := NewLoader(dir, 1, utils.NewLoggerAt(utils.LevelError))
	records, err := loader.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if records[0].Platform != "myntra" {
		t.Errorf("platform: got %q, want %q", records[0].Platform, "myntra")
	}
}

func TestLoaderEmptyDir(t *testing.T) {
	loader := NewLoader(t.TempDir(), 2, utils.NewLoggerAt(utils.LevelError))
	records, err := loader.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected no records, got %d", len(records))
	}
}

func TestLoaderMissingDir(t *testing.T) {
	loader := NewLoader("/does/not/exist", 2, utils.NewLoggerAt(utils.LevelError))
	if _, err := loader.Load(); err == nil {
		t.Error("expected an error for a missing feed directory")
	}
}

func TestLoaderBadJSON(t *testing.T) {
	dir := t.TempDir()
	writeFeed(t, dir, "amazon.json", `{"not": "an array"}`)

	loader := NewLoader(dir, 1, utils.NewLoggerAt(utils.LevelError))
	if _, err := loader.Load(); err == nil {
		t.Fatal("expected a parse error")
	}
}
