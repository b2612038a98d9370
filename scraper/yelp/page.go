package yelp

import (
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Page is the slice of browser automation the collector and extractor need.
// A Page is bound to the context it was opened with.
type Page interface {
	// Load navigates to url and returns once the navigation has committed.
	Load(url string) error
	// WaitUntil polls the JS expression until it is truthy or timeout elapses.
	WaitUntil(expr string, timeout time.Duration) error
	// Document snapshots the rendered DOM for querying.
	Document() (*goquery.Document, error)
	// Click clicks the element the JS expression evaluates to. Hidden or
	// disabled elements are refused.
	Click(expr string) error
}
