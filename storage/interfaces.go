package storage

import (
	"github.com/google/uuid"

	"smart-shopper/models"
)

// HistoryWriter is the interface any decision-history backend must satisfy.
type HistoryWriter interface {
	WriteListings(runID uuid.UUID, listings []*models.Listing) error
	WriteSelection(runID uuid.UUID, sel *models.Selection) error
	Close() error
}

// RawListingWriter is the interface for persisting unprocessed agent records.
type RawListingWriter interface {
	WriteRaw(listings []*models.RawListing) error
	Close() error
}
