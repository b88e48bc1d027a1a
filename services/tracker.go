package services

import (
	"sort"
	"sync"

	"smart-shopper/models"
	"smart-shopper/utils"
)

// Tracker records cleaned listings per shopping platform as the agent
// reports them, and drives the final deal decision. It is safe for
// concurrent callers: agent callbacks for different platforms may overlap.
type Tracker struct {
	mu     sync.Mutex
	logger *utils.Logger
	items  map[string][]*models.Listing
	best   map[string]float64
	failed *utils.TitleSet
}

// NewTracker creates an empty Tracker.
func NewTracker(logger *utils.Logger) *Tracker {
	return &Tracker{
		logger: logger,
		items:  make(map[string][]*models.Listing),
		best:   make(map[string]float64),
		failed: utils.NewTitleSet(),
	}
}

// Log records a cleaned listing under its platform and maintains the
// per-platform best observed price.
func (t *Tracker) Log(l *models.Listing) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.items[l.Platform] = append(t.items[l.Platform], l)

	if l.Price > 0 && !l.Sponsored {
		if prev, ok := t.best[l.Platform]; !ok || l.Price < prev {
			t.best[l.Platform] = l.Price
		}
	}

	t.logger.Debug("[tracker] Logged %s: title=%s price=%.2f rating=%.2f sponsored=%t",
		l.Platform, l.Title, l.Price, l.Rating, l.Sponsored)
}

// Items returns a copy of the per-platform collection log.
func (t *Tracker) Items() map[string][]*models.Listing {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make(map[string][]*models.Listing, len(t.items))
	for platform, listings := range t.items {
		out[platform] = append([]*models.Listing(nil), listings...)
	}
	return out
}

// BestPrice returns the lowest non-sponsored price observed on a platform.
func (t *Tracker) BestPrice(platform string) (float64, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	price, ok := t.best[platform]
	return price, ok
}

// CompareAndDecide runs the deal selection over the first perPlatformCap
// listings of each platform, excluding products already marked as failed
// to open. Platforms are visited in sorted order so the selector's
// input-order tie-break stays deterministic.
func (t *Tracker) CompareAndDecide(budget, weightPrice, weightRating float64, perPlatformCap int) (*models.Selection, error) {
	return SelectBest(t.candidates(perPlatformCap), budget, weightPrice, weightRating)
}

// MarkFailedOpen records a product the actuation side could not open, so
// later decisions skip it.
func (t *Tracker) MarkFailedOpen(title string) {
	if title == "" {
		return
	}
	t.failed.Add(title)
	t.logger.Warn("[tracker] Marked failed to open: %s", title)
}

// ShouldTry reports whether a product has not yet failed to open.
func (t *Tracker) ShouldTry(title string) bool {
	if title == "" {
		return true
	}
	return !t.failed.Contains(title)
}

// NextAfterFailed marks the given product as failed and re-runs the
// decision over the remaining candidates.
func (t *Tracker) NextAfterFailed(title string, budget, weightPrice, weightRating float64, perPlatformCap int) (*models.Selection, error) {
	t.MarkFailedOpen(title)
	return t.CompareAndDecide(budget, weightPrice, weightRating, perPlatformCap)
}

func (t *Tracker) candidates(perPlatformCap int) []*models.Listing {
	t.mu.Lock()
	defer t.mu.Unlock()

	platforms := make([]string, 0, len(t.items))
	for platform := range t.items {
		platforms = append(platforms, platform)
	}
	sort.Strings(platforms)

	var flat []*models.Listing
	for _, platform := range platforms {
		listings := t.items[platform]
		if perPlatformCap > 0 && len(listings) > perPlatformCap {
			listings = listings[:perPlatformCap]
		}
		for _, l := range listings {
			if t.failed.Contains(l.Title) {
				continue
			}
			flat = append(flat, l)
		}
	}
	return flat
}
