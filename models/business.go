package models

import (
	"fmt"
	"net/url"
)

// SearchQuery is one (category, location) pair to search for
type SearchQuery struct {
	Category string
	Location string
}

// SearchURL substitutes the query-escaped category and location into template,
// e.g. "Toronto, ON" becomes "Toronto%2C+ON".
func (q SearchQuery) SearchURL(template string) string {
	return fmt.Sprintf(template, url.QueryEscape(q.Category), url.QueryEscape(q.Location))
}

func (q SearchQuery) String() string {
	return q.Category + " @ " + q.Location
}

// BusinessRecord is the data scraped from one business detail page.
// URL is always set; every other field is nil when it could not be extracted.
type BusinessRecord struct {
	URL             string
	Name            *string
	Category        *string
	Claimed         *string
	Closed          *string
	Hours           map[string]string
	Photos          []string
	ServicesOffered []string
	Description     *string
	Reviews         *float64
	Street          *string
	Unit            *string
	CityStatePostal *string
	Country         *string
	Website         *string
	Phone           *string
}

// DisplayName returns the business name, or the URL when no name was found
func (r *BusinessRecord) DisplayName() string {
	if r.Name != nil && *r.Name != "" {
		return *r.Name
	}
	return r.URL
}

// RunSummary holds statistics computed over the records of one run
type RunSummary struct {
	TotalRecords   int
	FieldCoverage  []FieldCount
	RatedRecords   int
	AverageRating  float64
	ByCategory     map[string]int
	TopRated       []*BusinessRecord
	SkippedVisited int
}

// FieldCount is how many records had a given field present
type FieldCount struct {
	Field string
	Count int
}

// String returns a pointer to s, for populating optional fields
func String(s string) *string {
	return &s
}

// Float returns a pointer to f
func Float(f float64) *float64 {
	return &f
}
