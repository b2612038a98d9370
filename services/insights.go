package services

import (
	"sort"

	"yelp-scraper/models"
	"yelp-scraper/utils"
)

// InsightService computes run statistics from the extracted records
type InsightService struct {
	logger *utils.Logger
}

// NewInsightService creates a new InsightService
func NewInsightService(logger *utils.Logger) *InsightService {
	return &InsightService{logger: logger}
}

type fieldCheck struct {
	name    string
	present func(*models.BusinessRecord) bool
}

var coverageFields = []fieldCheck{
	{"Name", func(r *models.BusinessRecord) bool { return r.Name != nil }},
	{"Category", func(r *models.BusinessRecord) bool { return r.Category != nil }},
	{"Claimed", func(r *models.BusinessRecord) bool { return r.Claimed != nil }},
	{"Closed", func(r *models.BusinessRecord) bool { return r.Closed != nil }},
	{"Hours", func(r *models.BusinessRecord) bool { return r.Hours != nil }},
	{"Photos", func(r *models.BusinessRecord) bool { return r.Photos != nil }},
	{"Services Offered", func(r *models.BusinessRecord) bool { return r.ServicesOffered != nil }},
	{"Description", func(r *models.BusinessRecord) bool { return r.Description != nil }},
	{"Address", func(r *models.BusinessRecord) bool { return r.Street != nil }},
	{"Website", func(r *models.BusinessRecord) bool { return r.Website != nil }},
	{"Phone Number", func(r *models.BusinessRecord) bool { return r.Phone != nil }},
	{"Reviews", func(r *models.BusinessRecord) bool { return r.Reviews != nil }},
}

// Generate computes the run summary for records. skipped is the number of
// links dropped as already visited.
func (s *InsightService) Generate(records []*models.BusinessRecord, skipped int) *models.RunSummary {
	summary := &models.RunSummary{
		TotalRecords:   len(records),
		ByCategory:     make(map[string]int),
		SkippedVisited: skipped,
	}

	if len(records) == 0 {
		s.logger.Warn("No records to generate insights from")
		return summary
	}

	for _, f := range coverageFields {
		fc := models.FieldCount{Field: f.name}
		for _, r := range records {
			if f.present(r) {
				fc.Count++
			}
		}
		summary.FieldCoverage = append(summary.FieldCoverage, fc)
	}

	var totalRating float64
	rated := make([]*models.BusinessRecord, 0, len(records))
	for _, r := range records {
		if r.Category != nil && *r.Category != "" {
			summary.ByCategory[*r.Category]++
		}
		if r.Reviews != nil {
			totalRating += *r.Reviews
			rated = append(rated, r)
		}
	}

	summary.RatedRecords = len(rated)
	if len(rated) > 0 {
		summary.AverageRating = totalRating / float64(len(rated))
	}

	// Top 5 highest-rated, stable so ties keep scrape order
	sort.SliceStable(rated, func(i, j int) bool {
		return *rated[i].Reviews > *rated[j].Reviews
	})
	maxTop := 5
	if len(rated) < maxTop {
		maxTop = len(rated)
	}
	summary.TopRated = rated[:maxTop]

	return summary
}
