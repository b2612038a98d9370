package storage

import (
	"database/sql"
	"fmt"
	"time"

	"yelp-scraper/models"
	"yelp-scraper/utils"

	_ "github.com/lib/pq"
)

// PostgresWriter stores business records in PostgreSQL
type PostgresWriter struct {
	db     *sql.DB
	logger *utils.Logger
	saved  int
}

// NewPostgresWriter creates a new PostgresWriter and pings the DB
func NewPostgresWriter(connStr string, logger *utils.Logger) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open DB: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Minute * 5)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping DB: %w", err)
	}

	logger.Info("Connected to PostgreSQL successfully")
	return &PostgresWriter{db: db, logger: logger}, nil
}

// CreateTable creates the businesses table if it doesn't exist, with indexes
func (w *PostgresWriter) CreateTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS businesses (
		id                SERIAL PRIMARY KEY,
		url               TEXT UNIQUE NOT NULL,
		name              TEXT,
		category          TEXT,
		claimed           TEXT,
		closed            TEXT,
		hours             TEXT,
		photos            TEXT,
		services_offered  TEXT,
		description       TEXT,
		street            TEXT,
		unit              TEXT,
		city_state_postal TEXT,
		country           TEXT,
		website           TEXT,
		phone             TEXT,
		reviews           NUMERIC(3,1),
		scraped_at        TIMESTAMP NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_businesses_category ON businesses (category);
	CREATE INDEX IF NOT EXISTS idx_businesses_reviews  ON businesses (reviews);
	`
	_, err := w.db.Exec(query)
	if err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}
	w.logger.Info("Table 'businesses' is ready")
	return nil
}

// Write upserts one record keyed by its URL
func (w *PostgresWriter) Write(rec *models.BusinessRecord) error {
	_, err := w.db.Exec(`
		INSERT INTO businesses (url, name, category, claimed, closed, hours, photos, services_offered,
			description, street, unit, city_state_postal, country, website, phone, reviews, scraped_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, NOW())
		ON CONFLICT (url) DO UPDATE SET
			name = EXCLUDED.name, category = EXCLUDED.category, claimed = EXCLUDED.claimed,
			closed = EXCLUDED.closed, hours = EXCLUDED.hours, photos = EXCLUDED.photos,
			services_offered = EXCLUDED.services_offered, description = EXCLUDED.description,
			street = EXCLUDED.street, unit = EXCLUDED.unit, city_state_postal = EXCLUDED.city_state_postal,
			country = EXCLUDED.country, website = EXCLUDED.website, phone = EXCLUDED.phone,
			reviews = EXCLUDED.reviews, scraped_at = EXCLUDED.scraped_at
	`,
		sqlArgs(rec)...,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert '%s': %w", rec.DisplayName(), err)
	}
	w.saved++
	return nil
}

// Close closes the database connection
func (w *PostgresWriter) Close() error {
	w.logger.Info("Saved %d records into PostgreSQL", w.saved)
	if w.db != nil {
		return w.db.Close()
	}
	return nil
}
