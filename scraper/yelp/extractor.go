package yelp

import (
	"strings"
	"time"

	"yelp-scraper/config"
	"yelp-scraper/models"
	"yelp-scraper/utils"
)

// Extractor scrapes the fixed field set from a business detail page
type Extractor struct {
	cfg    *config.Config
	logger *utils.Logger
}

// NewExtractor creates a new Extractor
func NewExtractor(cfg *config.Config, logger *utils.Logger) *Extractor {
	return &Extractor{cfg: cfg, logger: logger}
}

// Extract loads url in page and returns whatever fields could be read.
// The returned record always carries the URL; a page that fails to load
// yields a record with nothing else set.
func (e *Extractor) Extract(page Page, url string) *models.BusinessRecord {
	rec := &models.BusinessRecord{URL: url}

	if err := page.Load(url); err != nil {
		e.logger.Error("Error loading detail page %s: %v", url, err)
		return rec
	}
	if err := page.WaitUntil(BodyReadyJS, e.cfg.BodyTimeout); err != nil {
		e.logger.Warn("Body of %s not ready after %v: %v", url, e.cfg.BodyTimeout, err)
	}
	// client-side rendering keeps filling the page after the body exists
	time.Sleep(e.cfg.RenderSettle)

	doc, err := page.Document()
	if err != nil {
		e.logger.Error("Snapshot of %s failed: %v", url, err)
		return rec
	}

	if failed := ParseDetail(doc, rec); len(failed) > 0 {
		e.logger.Warn("Fields failed on %s: %s", url, strings.Join(failed, ", "))
	}
	if rec.Website == nil {
		e.logger.Debug("No website link found on %s", url)
	}
	return rec
}
