package storage

import "yelp-scraper/models"

// RecordSink receives business records one at a time as they are extracted
type RecordSink interface {
	Write(rec *models.BusinessRecord) error
	Close() error
}

// Rewriter is a sink that can replace its whole contents with a final record set
type Rewriter interface {
	Rewrite(records []*models.BusinessRecord) error
}
