package services

import (
	"errors"
	"fmt"

	"smart-shopper/models"
)

// MaxRating is the top of the rating scale used for normalization.
const MaxRating = 5.0

var (
	// ErrInvalidBudget is returned when the budget ceiling is negative.
	ErrInvalidBudget = errors.New("budget must be non-negative")
	// ErrInvalidWeights is returned when either score weight is negative.
	ErrInvalidWeights = errors.New("score weights must be non-negative")
)

// SelectBest picks the listing with the best weighted combination of
// cheapness and rating among non-sponsored listings priced within budget.
//
// Cheapness is normalized linearly: the cheapest candidate scores 1.0, a
// candidate priced exactly at the budget scores 0.0, and a candidate set
// sharing a single price scores 1.0 throughout. Ratings are normalized by
// MaxRating with a missing rating counting as 0. Ties on the combined score
// go to the lower price, then to input order, so identical inputs always
// produce an identical result.
//
// A nil Selection with a nil error means no listing was eligible — an
// expected outcome, not a failure. The winner's title is sanitized in the
// returned copy; the input listings are never mutated.
func SelectBest(listings []*models.Listing, budget, weightPrice, weightRating float64) (*models.Selection, error) {
	if budget < 0 {
		return nil, fmt.Errorf("select best of %d listings: %w", len(listings), ErrInvalidBudget)
	}
	if weightPrice < 0 || weightRating < 0 {
		return nil, fmt.Errorf("select best of %d listings: %w", len(listings), ErrInvalidWeights)
	}

	var candidates []*models.Listing
	var minPrice float64
	for _, l := range listings {
		if l.Sponsored || l.Price <= 0 || l.Price > budget {
			continue
		}
		if len(candidates) == 0 || l.Price < minPrice {
			minPrice = l.Price
		}
		candidates = append(candidates, l)
	}

	if len(candidates) == 0 {
		return nil, nil
	}

	span := budget - minPrice

	var best *models.Listing
	var bestScore float64
	for _, l := range candidates {
		cheapness := 1.0
		if span > 0 {
			cheapness = (budget - l.Price) / span
		}

		rating := l.Rating / MaxRating
		score := weightPrice*cheapness + weightRating*rating

		if best == nil || score > bestScore || (score == bestScore && l.Price < best.Price) {
			best = l
			bestScore = score
		}
	}

	winner := *best
	winner.Title = Sanitize(winner.Title)

	return &models.Selection{
		Listing: &winner,
		Score:   bestScore,
		Reason: fmt.Sprintf("best weighted score %.4f at price %.2f among %d candidates",
			bestScore, winner.Price, len(candidates)),
	}, nil
}
