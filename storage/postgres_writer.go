package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"smart-shopper/models"
	"smart-shopper/utils"
)

// PostgresWriter persists each run's cleaned listings and the final
// selection, building up a decision history across runs.
type PostgresWriter struct {
	db *sql.DB
}

// PastSelection is one historical decision row.
type PastSelection struct {
	RunID    uuid.UUID
	Platform string
	Title    string
	Price    float64
	Score    float64
	DecidedAt time.Time
}

// NewPostgresWriter opens a connection to PostgreSQL, runs schema
// migrations, and returns a ready-to-use PostgresWriter. The initial ping
// goes through the retry helper since the database container may still be
// starting.
func NewPostgresWriter(dsn string, retry *utils.RetryConfig) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	if err := retry.Do("postgres ping", db.Ping); err != nil {
		return nil, fmt.Errorf("postgres: %w", err)
	}

	pw := &PostgresWriter{db: db}
	if err := pw.migrate(); err != nil {
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return pw, nil
}

func (pw *PostgresWriter) migrate() error {
	_, err := pw.db.Exec(`
		CREATE TABLE IF NOT EXISTS shopper_listings (
			id         SERIAL PRIMARY KEY,
			run_id     UUID          NOT NULL,
			platform   VARCHAR(50)   NOT NULL,
			title      TEXT          NOT NULL,
			price      NUMERIC(12,2) NOT NULL DEFAULT 0,
			rating     NUMERIC(4,2)  NOT NULL DEFAULT 0,
			sponsored  BOOLEAN       NOT NULL DEFAULT FALSE,
			raw_price  TEXT          NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ   NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS shopper_selections (
			id         SERIAL PRIMARY KEY,
			run_id     UUID          UNIQUE NOT NULL,
			platform   VARCHAR(50)   NOT NULL,
			title      TEXT          NOT NULL,
			price      NUMERIC(12,2) NOT NULL,
			rating     NUMERIC(4,2)  NOT NULL DEFAULT 0,
			score      NUMERIC(8,4)  NOT NULL,
			reason     TEXT          NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ   NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_shopper_listings_run      ON shopper_listings(run_id);
		CREATE INDEX IF NOT EXISTS idx_shopper_listings_platform ON shopper_listings(platform);
		CREATE INDEX IF NOT EXISTS idx_shopper_selections_time   ON shopper_selections(created_at);
	`)
	return err
}

// WriteListings batch-inserts the run's cleaned listings.
func (pw *PostgresWriter) WriteListings(runID uuid.UUID, listings []*models.Listing) error {
	if len(listings) == 0 {
		return nil
	}

	const batchSize = 50
	for i := 0; i < len(listings); i += batchSize {
		end := i + batchSize
		if end > len(listings) {
			end = len(listings)
		}
		if err := pw.insertBatch(runID, listings[i:end]); err != nil {
			return err
		}
	}
	return nil
}

func (pw *PostgresWriter) insertBatch(runID uuid.UUID, batch []*models.Listing) error {
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*7)

	for idx, l := range batch {
		base := idx * 7
		valueStrings = append(valueStrings,
			fmt.Sprintf("($%d,$%d,$%d,$%d,$%d,$%d,$%d)",
				base+1, base+2, base+3, base+4, base+5, base+6, base+7))
		valueArgs = append(valueArgs,
			runID, l.Platform, l.Title, l.Price, l.Rating, l.Sponsored, l.RawPrice)
	}

	query := fmt.Sprintf(`
		INSERT INTO shopper_listings (run_id, platform, title, price, rating, sponsored, raw_price)
		VALUES %s
	`, strings.Join(valueStrings, ","))

	_, err := pw.db.Exec(query, valueArgs...)
	if err != nil {
		return fmt.Errorf("postgres: insert listings: %w", err)
	}
	return nil
}

// WriteSelection stores the run's winning deal.
func (pw *PostgresWriter) WriteSelection(runID uuid.UUID, sel *models.Selection) error {
	if sel == nil || sel.Listing == nil {
		return nil
	}

	_, err := pw.db.Exec(`
		INSERT INTO shopper_selections (run_id, platform, title, price, rating, score, reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (run_id) DO NOTHING
	`, runID, sel.Listing.Platform, sel.Listing.Title, sel.Listing.Price,
		sel.Listing.Rating, sel.Score, sel.Reason)
	if err != nil {
		return fmt.Errorf("postgres: insert selection: %w", err)
	}
	return nil
}

// RecentSelections retrieves the most recent decisions, newest first.
func (pw *PostgresWriter) RecentSelections(limit int) ([]*PastSelection, error) {
	rows, err := pw.db.Query(`
		SELECT run_id, platform, title, price, score, created_at
		FROM shopper_selections
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("postgres: fetch selections: %w", err)
	}
	defer rows.Close()

	var history []*PastSelection
	for rows.Next() {
		p := &PastSelection{}
		if err := rows.Scan(&p.RunID, &p.Platform, &p.Title, &p.Price, &p.Score, &p.DecidedAt); err != nil {
			return nil, fmt.Errorf("postgres: scan selection row: %w", err)
		}
		history = append(history, p)
	}
	return history, rows.Err()
}

// Close releases the database connection.
func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}
