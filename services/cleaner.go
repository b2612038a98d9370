package services

import (
	"strings"

	"yelp-scraper/models"
	"yelp-scraper/utils"
)

// RecordCleaner normalizes the text of scraped records. Rendered DOM text
// keeps the source indentation and line breaks; a browser's innerText does not.
type RecordCleaner struct {
	logger *utils.Logger
}

// NewRecordCleaner creates a new RecordCleaner
func NewRecordCleaner(logger *utils.Logger) *RecordCleaner {
	return &RecordCleaner{logger: logger}
}

// Clean collapses whitespace in every text field of rec in place.
// It never changes which fields are present.
func (c *RecordCleaner) Clean(rec *models.BusinessRecord) {
	for _, f := range []**string{
		&rec.Name, &rec.Category, &rec.Claimed, &rec.Closed, &rec.Description,
		&rec.Street, &rec.Unit, &rec.CityStatePostal, &rec.Country, &rec.Website, &rec.Phone,
	} {
		if *f != nil {
			*f = models.String(collapse(**f))
		}
	}

	if rec.Hours != nil {
		hours := make(map[string]string, len(rec.Hours))
		for day, span := range rec.Hours {
			hours[collapse(day)] = collapse(span)
		}
		rec.Hours = hours
	}
	for i, s := range rec.ServicesOffered {
		rec.ServicesOffered[i] = collapse(s)
	}
	for i, p := range rec.Photos {
		rec.Photos[i] = strings.TrimSpace(p)
	}

	c.logger.Debug("Cleaned record for %s", rec.DisplayName())
}

// collapse trims s and squeezes internal whitespace runs to one space
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
