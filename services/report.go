package services

import (
	"fmt"
	"sort"
	"strings"

	"smart-shopper/models"
	"smart-shopper/utils"
)

// ReportService computes and renders the post-run decision report.
type ReportService struct {
	logger *utils.Logger
}

// NewReportService creates a ReportService with the given logger.
func NewReportService(logger *utils.Logger) *ReportService {
	return &ReportService{logger: logger}
}

// Generate computes analytics over the collected listings and the chosen
// deal. Price statistics cover non-sponsored listings with a parsed price.
func (s *ReportService) Generate(items map[string][]*models.Listing, chosen *models.Selection) *models.DecisionReport {
	report := &models.DecisionReport{
		ListingsByPlatform: make(map[string]int),
		Chosen:             chosen,
	}

	var priced []*models.Listing
	var rated []*models.Listing

	for platform, listings := range items {
		report.ListingsByPlatform[platform] = len(listings)
		for _, l := range listings {
			report.TotalListings++
			if l.Sponsored {
				report.SponsoredExcluded++
				continue
			}
			if l.Price > 0 {
				priced = append(priced, l)
			}
			if l.Rating > 0 {
				rated = append(rated, l)
			}
		}
	}

	if len(priced) > 0 {
		report.MinPrice = priced[0].Price
		report.MaxPrice = priced[0].Price
		var total float64
		for _, l := range priced {
			total += l.Price
			if l.Price < report.MinPrice {
				report.MinPrice = l.Price
			}
			if l.Price > report.MaxPrice {
				report.MaxPrice = l.Price
			}
		}
		report.AveragePrice = round2(total / float64(len(priced)))
		report.MinPrice = round2(report.MinPrice)
		report.MaxPrice = round2(report.MaxPrice)
	}

	// Top 5 by rating, stable across runs
	sort.SliceStable(rated, func(i, j int) bool {
		return rated[i].Rating > rated[j].Rating
	})
	if len(rated) > 5 {
		report.TopRated = rated[:5]
	} else {
		report.TopRated = rated
	}

	return report
}

// Print renders the collected-items tables and the decision summary.
func (s *ReportService) Print(r *models.DecisionReport, items map[string][]*models.Listing) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  🛒 SMART SHOPPER DECISION REPORT\033[0m\n")
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	// Collected items per platform
	platforms := make([]string, 0, len(items))
	for platform := range items {
		platforms = append(platforms, platform)
	}
	sort.Strings(platforms)

	for _, platform := range platforms {
		listings := items[platform]
		fmt.Printf("\033[1;33m  Platform: %s — %d items\033[0m\n", platform, len(listings))
		fmt.Printf("  %s\n", thin)
		fmt.Printf("  %-3s %-34s %10s %7s  %s\n", "#", "Title", "Price", "Rating", "Raw")
		for i, l := range listings {
			marker := " "
			if l.Sponsored {
				marker = "S"
			}
			fmt.Printf("  %-3d %-34s %10.2f %7.2f  %s %s\n",
				i+1, truncate(l.Title, 34), l.Price, l.Rating, l.RawPrice, marker)
		}
		fmt.Println()
	}

	// Overview
	fmt.Printf("\033[1;33m  Overview\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Total listings collected : \033[1m%d\033[0m\n", r.TotalListings)
	fmt.Printf("  Sponsored excluded       : \033[1m%d\033[0m\n", r.SponsoredExcluded)
	fmt.Println()

	// Price stats
	fmt.Printf("\033[1;33m  Price Statistics (non-sponsored)\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if r.AveragePrice > 0 {
		fmt.Printf("  Average price : \033[1;32m%.2f\033[0m\n", r.AveragePrice)
		fmt.Printf("  Minimum price : \033[1;32m%.2f\033[0m\n", r.MinPrice)
		fmt.Printf("  Maximum price : \033[1;32m%.2f\033[0m\n", r.MaxPrice)
	} else {
		fmt.Printf("  No price data available\n")
	}
	fmt.Println()

	// Top rated
	fmt.Printf("\033[1;33m  Top Rated Candidates\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if len(r.TopRated) == 0 {
		fmt.Printf("  No rated listings found\n")
	} else {
		for i, l := range r.TopRated {
			fmt.Printf("  \033[1m%d.\033[0m %-40s \033[1;32m%.2f ★\033[0m\n",
				i+1, truncate(l.Title, 38), l.Rating)
		}
	}
	fmt.Println()

	// Decision
	fmt.Printf("\033[1;33m  Selected Deal\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if r.Chosen == nil {
		fmt.Printf("  \033[1;31mNo eligible listing within budget.\033[0m\n")
	} else {
		fmt.Printf("  Platform : %s\n", r.Chosen.Listing.Platform)
		fmt.Printf("  Title    : %s\n", r.Chosen.Listing.Title)
		fmt.Printf("  Price    : \033[1;32m%.2f\033[0m\n", r.Chosen.Listing.Price)
		fmt.Printf("  Rating   : %.2f\n", r.Chosen.Listing.Rating)
		fmt.Printf("  Score    : %.4f\n", r.Chosen.Score)
		fmt.Printf("  Reason   : %s\n", r.Chosen.Reason)
	}

	fmt.Printf("\n\033[1;35m%s\033[0m\n\n", sep)
}

func round2(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
