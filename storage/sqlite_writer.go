package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"yelp-scraper/models"
	"yelp-scraper/utils"

	_ "modernc.org/sqlite"
)

// SQLiteWriter keeps a local SQLite copy of every scraped business
type SQLiteWriter struct {
	db     *sql.DB
	logger *utils.Logger
}

// NewSQLiteWriter opens (or creates) the database at dbPath and prepares the schema
func NewSQLiteWriter(dbPath string, logger *utils.Logger) (*SQLiteWriter, error) {
	dir := filepath.Dir(dbPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set %q: %w", p, err)
		}
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS businesses (
		url TEXT PRIMARY KEY,
		name TEXT,
		category TEXT,
		claimed TEXT,
		closed TEXT,
		hours TEXT,
		photos TEXT,
		services_offered TEXT,
		description TEXT,
		street TEXT,
		unit TEXT,
		city_state_postal TEXT,
		country TEXT,
		website TEXT,
		phone TEXT,
		reviews REAL,
		scraped_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize tables: %w", err)
	}

	logger.Info("SQLite database ready: %s", dbPath)
	return &SQLiteWriter{db: db, logger: logger}, nil
}

// Write upserts one record keyed by its URL
func (w *SQLiteWriter) Write(rec *models.BusinessRecord) error {
	_, err := w.db.Exec(`
		INSERT INTO businesses (url, name, category, claimed, closed, hours, photos, services_offered,
			description, street, unit, city_state_postal, country, website, phone, reviews, scraped_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(url) DO UPDATE SET
			name = excluded.name, category = excluded.category, claimed = excluded.claimed,
			closed = excluded.closed, hours = excluded.hours, photos = excluded.photos,
			services_offered = excluded.services_offered, description = excluded.description,
			street = excluded.street, unit = excluded.unit, city_state_postal = excluded.city_state_postal,
			country = excluded.country, website = excluded.website, phone = excluded.phone,
			reviews = excluded.reviews, scraped_at = excluded.scraped_at`,
		sqlArgs(rec)...,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert '%s': %w", rec.DisplayName(), err)
	}
	return nil
}

// Count returns how many businesses are stored
func (w *SQLiteWriter) Count() (int, error) {
	var n int
	if err := w.db.QueryRow("SELECT COUNT(*) FROM businesses").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count businesses: %w", err)
	}
	return n, nil
}

// Close logs the stored total and closes the database connection
func (w *SQLiteWriter) Close() error {
	if w.db == nil {
		return nil
	}
	if n, err := w.Count(); err != nil {
		w.logger.Warn("%v", err)
	} else {
		w.logger.Info("SQLite database holds %d businesses", n)
	}
	return w.db.Close()
}
