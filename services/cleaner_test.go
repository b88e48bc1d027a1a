package services

import (
	"testing"
	"time"

	"smart-shopper/models"
	"smart-shopper/utils"
)

func newTestLogger() *utils.Logger { return utils.NewLoggerAt(utils.LevelError) }

func TestCleanerParsePrice(t *testing.T) {
	c := NewCleaner(newTestLogger())

	tests := []struct {
		raw  string
		want float64
	}{
		{"₹14,999", 14999},
		{"$120", 120},
		{"", 0},
		{"free", 0},
		{"$1,200.50", 1200.50},
		{"USD 99", 99},
	}

	for _, tt := range tests {
		got := c.parsePrice(tt.raw)
		if got != tt.want {
			t.Errorf("parsePrice(%q) = %.2f; want %.2f", tt.raw, got, tt.want)
		}
	}
}

func TestCleanerParseRating(t *testing.T) {
	c := NewCleaner(newTestLogger())

	tests := []struct {
		raw  string
		want float64
	}{
		{"4.3", 4.3},
		{"5.0", 5.0},
		{"3.5 (120 reviews)", 3.5},
		{"", 0},
		{"New", 0},
		{"6.0", 0},
	}

	for _, tt := range tests {
		got := c.parseRating(tt.raw)
		if got != tt.want {
			t.Errorf("parseRating(%q) = %.2f; want %.2f", tt.raw, got, tt.want)
		}
	}
}

func TestCleanerDropsEmptyTitle(t *testing.T) {
	c := NewCleaner(newTestLogger())
	raw := []*models.RawListing{
		{Title: "", RawPrice: "$100", Platform: "amazon", CollectedAt: time.Now()},
		{Title: "Has Title", RawPrice: "$200", Platform: "amazon", CollectedAt: time.Now()},
	}

	cleaned := c.Clean(raw)
	if len(cleaned) != 1 {
		t.Errorf("expected 1 listing after dropping empty title, got %d", len(cleaned))
	}
}

func TestCleanerDeduplicatesPerPlatform(t *testing.T) {
	c := NewCleaner(newTestLogger())
	raw := []*models.RawListing{
		{Title: "Earbuds Pro", RawPrice: "$40", Platform: "amazon"},
		{Title: "earbuds  pro", RawPrice: "$42", Platform: "amazon"},
		{Title: "Earbuds Pro", RawPrice: "$39", Platform: "flipkart"},
	}

	cleaned := c.Clean(raw)
	if len(cleaned) != 2 {
		t.Errorf("expected 2 listings (dup on same platform dropped), got %d", len(cleaned))
	}
}

func TestCleanerDetectsSponsored(t *testing.T) {
	c := NewCleaner(newTestLogger())
	raw := []*models.RawListing{
		{Title: "Sponsored Earbuds", RawPrice: "$40", Platform: "amazon"},
		{Title: "Earbuds", RawPrice: "$40 Ad", Platform: "amazon"},
		{Title: "Flagged", RawPrice: "$40", Platform: "amazon", Sponsored: true},
		{Title: "Adapter Cable", RawPrice: "$10", Platform: "amazon"},
	}

	cleaned := c.Clean(raw)
	if len(cleaned) != 4 {
		t.Fatalf("expected 4 listings, got %d", len(cleaned))
	}

	wantSponsored := []bool{true, true, true, false}
	for i, want := range wantSponsored {
		if cleaned[i].Sponsored != want {
			t.Errorf("listing %d (%s): sponsored = %t, want %t",
				i, cleaned[i].Title, cleaned[i].Sponsored, want)
		}
	}
}

func TestCleanerSanitizesTitles(t *testing.T) {
	c := NewCleaner(newTestLogger())
	raw := []*models.RawListing{
		{Title: "<b>Deal</b> & more", RawPrice: "$40", Platform: "amazon"},
	}

	cleaned := c.Clean(raw)
	want := "&lt;b&gt;Deal&lt;/b&gt; &amp; more"
	if cleaned[0].Title != want {
		t.Errorf("title: got %q, want %q", cleaned[0].Title, want)
	}
}
