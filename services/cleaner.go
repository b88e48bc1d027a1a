package services

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"smart-shopper/models"
	"smart-shopper/utils"
)

var (
	// priceRegexp captures numeric price values
	priceRegexp = regexp.MustCompile(`[\d,]+(?:\.\d+)?`)
	// ratingRegexp captures a numeric rating in the 0.0–5.0 range
	ratingRegexp = regexp.MustCompile(`\b([0-5](?:\.\d{1,2})?)\b`)
	// sponsoredRegexp flags paid placements the agent failed to mark
	sponsoredRegexp = regexp.MustCompile(`(?i)\b(sponsored|ad|advert(isement)?|promoted)\b`)
)

// Cleaner transforms RawListings into clean, validated Listings.
type Cleaner struct {
	logger *utils.Logger
}

// NewCleaner creates a Cleaner with the given logger.
func NewCleaner(logger *utils.Logger) *Cleaner {
	return &Cleaner{logger: logger}
}

// Clean processes raw agent records and returns cleaned candidates.
// Records without a title are dropped; duplicate titles on the same
// platform are skipped; titles are sanitized since they carry untrusted
// text extracted from app screens.
func (c *Cleaner) Clean(raw []*models.RawListing) []*models.Listing {
	seen := make(map[string]struct{})
	result := make([]*models.Listing, 0, len(raw))

	for _, r := range raw {
		title := normalizeText(r.Title)
		if title == "" {
			c.logger.Warn("[cleaner] Dropping record with empty title on %s (price %q)",
				r.Platform, r.RawPrice)
			continue
		}

		platform := normalizePlatform(r.Platform)
		key := platform + "|" + strings.ToLower(title)
		if _, dup := seen[key]; dup {
			c.logger.Debug("[cleaner] Duplicate title skipped on %s: %s", platform, title)
			continue
		}
		seen[key] = struct{}{}

		listing := &models.Listing{
			Platform:  platform,
			Title:     Sanitize(title),
			Price:     c.parsePrice(r.RawPrice),
			Rating:    c.parseRating(r.RawRating),
			Sponsored: r.Sponsored || c.detectSponsored(title, r.RawPrice),
			RawPrice:  strings.TrimSpace(r.RawPrice),
			CreatedAt: time.Now(),
		}

		result = append(result, listing)
	}

	c.logger.Info("[cleaner] Cleaned %d → %d listings (dropped %d)",
		len(raw), len(result), len(raw)-len(result))
	return result
}

// parsePrice extracts the first numeric value from raw price text.
// Examples:
//
//	"₹14,999"  → 14999
//	"$1,200.50" → 1200.50
//	"free"      → 0 (missing)
func (c *Cleaner) parsePrice(raw string) float64 {
	cleaned := strings.ReplaceAll(strings.ToLower(raw), ",", "")
	match := priceRegexp.FindString(cleaned)
	if match == "" {
		return 0
	}

	price, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0
	}
	return price
}

// parseRating extracts a 0.0–5.0 numeric rating from a raw string.
func (c *Cleaner) parseRating(raw string) float64 {
	match := ratingRegexp.FindStringSubmatch(raw)
	if len(match) < 2 {
		return 0
	}
	val, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 0
	}
	if val < 0 || val > MaxRating {
		return 0
	}
	return val
}

// detectSponsored catches paid placements whose flag the agent missed by
// scanning title and price text for ad markers.
func (c *Cleaner) detectSponsored(title, rawPrice string) bool {
	return sponsoredRegexp.MatchString(title + " " + rawPrice)
}

// normalizeText strips leading/trailing whitespace and collapses internal whitespace.
func normalizeText(s string) string {
	s = strings.TrimSpace(s)
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r)
	})
	return strings.Join(fields, " ")
}

func normalizePlatform(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
