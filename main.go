package main

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"smart-shopper/config"
	"smart-shopper/feed"
	"smart-shopper/services"
	"smart-shopper/storage"
	"smart-shopper/utils"
)

func main() {
	logger := utils.NewLogger()
	cfg := config.Load()

	logger.Info("=== Smart Shopper starting ===")
	logger.Info("Config — weights: price %.2f / rating %.2f | results/platform: %d | feeds: %s",
		cfg.WeightPrice, cfg.WeightRating, cfg.ResultsPerPlatform, cfg.FeedDir)

	// Validate the budget before any other work so bad input fails fast.
	budget, err := services.ParseBudget(cfg.Budget)
	if err != nil {
		logger.Error("Invalid budget %q: %v", cfg.Budget, err)
		logger.Error("Set BUDGET to something like \"under $50\" or \"15k\"")
		os.Exit(1)
	}
	logger.Info("Budget ceiling: %.2f (from %q)", budget, cfg.Budget)

	csvWriter, err := storage.NewCSVWriter(cfg.CSVOutputPath)
	if err != nil {
		logger.Error("Failed to create CSV writer: %v", err)
		os.Exit(1)
	}
	defer csvWriter.Close()

	retry := &utils.RetryConfig{
		MaxAttempts: cfg.MaxRetries,
		BaseDelay:   2 * time.Second,
		Logger:      logger,
	}
	pgWriter, err := storage.NewPostgresWriter(cfg.DSN(), retry)
	if err != nil {
		logger.Error("Failed to connect to PostgreSQL: %v", err)
		logger.Error("Make sure Docker is running: docker compose up -d")
		os.Exit(1)
	}
	defer pgWriter.Close()

	loader := feed.NewLoader(cfg.FeedDir, cfg.MaxConcurrency, logger)
	rawListings, err := loader.Load()
	if err != nil {
		logger.Error("Feed ingestion failed: %v", err)
		os.Exit(1)
	}

	if len(rawListings) == 0 {
		logger.Error("No listing records found in %s. Exiting.", cfg.FeedDir)
		os.Exit(1)
	}

	logger.Info("Ingested %d raw records — writing to CSV...", len(rawListings))

	if err := csvWriter.WriteRaw(rawListings); err != nil {
		logger.Error("CSV write failed: %v", err)
	} else {
		logger.Info("Raw records saved to %s", cfg.CSVOutputPath)
	}

	cleaner := services.NewCleaner(logger)
	cleanListings := cleaner.Clean(rawListings)

	if len(cleanListings) == 0 {
		logger.Error("All records were dropped during cleaning. Exiting.")
		os.Exit(1)
	}

	tracker := services.NewTracker(logger)
	for _, l := range cleanListings {
		tracker.Log(l)
	}

	runID := uuid.New()
	if err := pgWriter.WriteListings(runID, cleanListings); err != nil {
		logger.Error("PostgreSQL listing write failed: %v", err)
	} else {
		logger.Info("Run %s: %d listings stored", runID, len(cleanListings))
	}

	selection, err := tracker.CompareAndDecide(budget, cfg.WeightPrice, cfg.WeightRating, cfg.ResultsPerPlatform)
	if err != nil {
		logger.Error("Deal selection failed: %v", err)
		os.Exit(1)
	}

	if selection != nil {
		if err := pgWriter.WriteSelection(runID, selection); err != nil {
			logger.Error("PostgreSQL selection write failed: %v", err)
		}
	}

	reportSvc := services.NewReportService(logger)
	items := tracker.Items()
	report := reportSvc.Generate(items, selection)
	reportSvc.Print(report, items)

	printHistory(logger, pgWriter)

	if selection != nil {
		fmt.Printf("  MISSION ACCOMPLISHED — buy %q at %.2f on %s\n\n",
			selection.Listing.Title, selection.Listing.Price, selection.Listing.Platform)
	} else {
		fmt.Printf("  MISSION FAILED — no eligible listing within budget %.2f\n\n", budget)
	}
}

func printHistory(logger *utils.Logger, pg *storage.PostgresWriter) {
	history, err := pg.RecentSelections(5)
	if err != nil {
		logger.Warn("Could not fetch selection history: %v", err)
		return
	}
	if len(history) == 0 {
		return
	}

	fmt.Printf("  Recent selections:\n")
	for _, h := range history {
		printPastSelection(h)
	}
	fmt.Println()
}

func printPastSelection(h *storage.PastSelection) {
	fmt.Printf("   - [%s] %s on %s at %.2f (score %.4f)\n",
		h.DecidedAt.Format("2006-01-02 15:04"), shorten(h.Title), h.Platform, h.Price, h.Score)
}

func shorten(s string) string {
	const max = 40
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
