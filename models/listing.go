package models

import "time"

// RawListing is one product record exactly as exported by the automation
// agent, before any parsing. This is written to CSV as an audit trail.
type RawListing struct {
	Platform    string    `json:"platform"`
	Title       string    `json:"title"`
	RawPrice    string    `json:"price_text"`
	RawRating   string    `json:"rating"`
	Sponsored   bool      `json:"sponsored"`
	CollectedAt time.Time `json:"collected_at"`
}

// Listing is the cleaned, validated candidate considered for selection.
// A Price or Rating of 0 means the value was missing or unparsable.
type Listing struct {
	Platform  string
	Title     string
	Price     float64
	Rating    float64
	Sponsored bool
	RawPrice  string
	CreatedAt time.Time
}

// Selection is the outcome of a decision run: the winning listing and its
// combined score. Callers represent "no eligible listing" as a nil
// *Selection, never as an error.
type Selection struct {
	Listing *Listing
	Score   float64
	Reason  string
}

// DecisionReport holds the computed analytics over a completed run.
type DecisionReport struct {
	TotalListings      int
	SponsoredExcluded  int
	ListingsByPlatform map[string]int
	AveragePrice       float64
	MinPrice           float64
	MaxPrice           float64
	TopRated           []*Listing
	Chosen             *Selection
}
