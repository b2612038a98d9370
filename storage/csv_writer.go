package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"yelp-scraper/models"
	"yelp-scraper/utils"
)

// CSVWriter appends business records to a CSV file
type CSVWriter struct {
	filePath string
	logger   *utils.Logger
	rows     int
}

// NewCSVWriter creates a new CSVWriter and makes sure the output directory exists
func NewCSVWriter(filePath string, logger *utils.Logger) (*CSVWriter, error) {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	return &CSVWriter{filePath: filePath, logger: logger}, nil
}

// Write appends one row, writing the header first if the file is new.
// The file is reopened per record so every completed row is on disk.
func (w *CSVWriter) Write(rec *models.BusinessRecord) error {
	_, err := os.Stat(w.filePath)
	fresh := errors.Is(err, fs.ErrNotExist)

	file, err := os.OpenFile(w.filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if fresh {
		if err := writer.Write(Header); err != nil {
			return fmt.Errorf("failed to write CSV header: %w", err)
		}
	}
	if err := writer.Write(Row(rec)); err != nil {
		return fmt.Errorf("failed to write CSV row for '%s': %w", rec.DisplayName(), err)
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV file: %w", err)
	}
	w.rows++
	return nil
}

// Rewrite replaces the file with the header plus records. Rows appended by
// earlier runs are dropped. The new content is written to a sibling file and
// renamed over the old one, so a failed rewrite leaves the previous file intact.
func (w *CSVWriter) Rewrite(records []*models.BusinessRecord) error {
	file, err := os.CreateTemp(filepath.Dir(w.filePath), filepath.Base(w.filePath)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	tmpPath := file.Name()
	defer os.Remove(tmpPath)
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(Header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, rec := range records {
		if err := writer.Write(Row(rec)); err != nil {
			w.logger.Error("Failed to write CSV row for '%s': %v", rec.DisplayName(), err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV file: %w", err)
	}
	if err := file.Chmod(0644); err != nil {
		return fmt.Errorf("failed to set CSV file mode: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close CSV file: %w", err)
	}
	if err := os.Rename(tmpPath, w.filePath); err != nil {
		return fmt.Errorf("failed to replace CSV file: %w", err)
	}

	w.rows = len(records)
	w.logger.Info("Records rewritten to: %s (%d rows)", w.filePath, len(records))
	return nil
}

// Close reports how many rows this run wrote
func (w *CSVWriter) Close() error {
	w.logger.Info("Records written to: %s (%d rows)", w.filePath, w.rows)
	return nil
}
