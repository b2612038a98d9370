package storage

import (
	"errors"

	"yelp-scraper/models"
)

// MultiSink fans every record out to several sinks
type MultiSink struct {
	sinks []RecordSink
}

// NewMultiSink combines sinks; nil entries are skipped
func NewMultiSink(sinks ...RecordSink) *MultiSink {
	m := &MultiSink{}
	for _, s := range sinks {
		if s != nil {
			m.sinks = append(m.sinks, s)
		}
	}
	return m
}

// Write writes rec to every sink, even after one of them fails
func (m *MultiSink) Write(rec *models.BusinessRecord) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.Write(rec); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Rewrite rewrites every sink that supports it
func (m *MultiSink) Rewrite(records []*models.BusinessRecord) error {
	var errs []error
	for _, s := range m.sinks {
		if r, ok := s.(Rewriter); ok {
			if err := r.Rewrite(records); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// Close closes every sink
func (m *MultiSink) Close() error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
