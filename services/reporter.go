package services

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"yelp-scraper/models"
)

// PrintRunSummary formats the run summary for the terminal
func PrintRunSummary(w io.Writer, summary *models.RunSummary) {
	border := strings.Repeat("═", 55)
	thin := strings.Repeat("─", 55)

	fmt.Fprintf(w, "\n╔%s╗\n", border)
	fmt.Fprintf(w, "║%s║\n", center("BUSINESS LISTING SCRAPE SUMMARY", 55))
	fmt.Fprintf(w, "╚%s╝\n", border)

	fmt.Fprintf(w, "\n OVERVIEW\n%s\n", thin)
	fmt.Fprintf(w, "  Businesses Extracted    : %d\n", summary.TotalRecords)
	fmt.Fprintf(w, "  Skipped (visited)       : %d\n", summary.SkippedVisited)
	fmt.Fprintf(w, "  Rated Businesses        : %d\n", summary.RatedRecords)
	if summary.RatedRecords > 0 {
		fmt.Fprintf(w, "  Average Rating          : %.2f\n", summary.AverageRating)
	}

	if len(summary.FieldCoverage) > 0 {
		fmt.Fprintf(w, "\n FIELD COVERAGE\n%s\n", thin)
		for _, fc := range summary.FieldCoverage {
			fmt.Fprintf(w, "  %-25s %3d/%d\n", fc.Field+":", fc.Count, summary.TotalRecords)
		}
	}

	if len(summary.ByCategory) > 0 {
		fmt.Fprintf(w, "\n BUSINESSES PER CATEGORY\n%s\n", thin)
		type catCount struct {
			cat   string
			count int
		}
		var cats []catCount
		for cat, cnt := range summary.ByCategory {
			cats = append(cats, catCount{cat, cnt})
		}
		sort.Slice(cats, func(i, j int) bool {
			if cats[i].count != cats[j].count {
				return cats[i].count > cats[j].count
			}
			return cats[i].cat < cats[j].cat
		})
		for _, cc := range cats {
			bar := strings.Repeat("▓", cc.count)
			fmt.Fprintf(w, "  %-25s %3d  %s\n", truncate(cc.cat, 24)+":", cc.count, bar)
		}
	}

	if len(summary.TopRated) > 0 {
		fmt.Fprintf(w, "\n TOP %d HIGHEST RATED BUSINESSES\n%s\n", len(summary.TopRated), thin)
		for i, r := range summary.TopRated {
			fmt.Fprintf(w, "  %d. %-35s %.1f\n", i+1, truncate(r.DisplayName(), 35), *r.Reviews)
		}
	}

	fmt.Fprintf(w, "\n%s\n\n", border)
}

func center(s string, width int) string {
	runes := []rune(s)
	if len(runes) >= width {
		return s
	}
	pad := (width - len(runes)) / 2
	return strings.Repeat(" ", pad) + s + strings.Repeat(" ", width-len(runes)-pad)
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
