package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Batch modes for the orchestrator.
const (
	ModeIncremental = "incremental"
	ModeEager       = "eager"
)

// Config holds all application-level configuration
type Config struct {
	// Search
	SearchURLTemplate string
	Categories        []string
	Locations         []string
	URLFile           string // when set, bypasses link collection entirely

	// Output
	CSVFilePath  string
	LogFilePath  string
	DatabaseURL  string // empty disables the Postgres sink
	SQLitePath   string // empty disables the SQLite sink
	RewriteAtEnd bool

	// Browser
	Headless          bool
	DisableImages     bool
	SessionPerRequest bool
	UserAgent         string

	// Batching
	BatchMode string

	// Timing
	LoadTimeout     time.Duration // bounds each navigation and DOM snapshot
	NextPageTimeout time.Duration
	PageSettle      time.Duration
	BodyTimeout     time.Duration
	RenderSettle    time.Duration
	RateLimitDelay  int // milliseconds between detail fetches, 0 = off
	RunTimeout      time.Duration
}

// Load reads configuration from environment variables or falls back to defaults
func Load() *Config {
	return &Config{
		SearchURLTemplate: getEnv("SEARCH_URL_TEMPLATE", "https://www.yelp.com/search?find_desc=%s&find_loc=%s"),
		Categories:        getEnvList("CATEGORIES", DefaultCategories),
		Locations:         getEnvList("LOCATIONS", DefaultLocations),
		URLFile:           getEnv("URL_FILE", ""),

		CSVFilePath:  getEnv("CSV_FILE_PATH", "business_info.csv"),
		LogFilePath:  getEnv("LOG_FILE", "download_log.log"),
		DatabaseURL:  getEnv("DATABASE_URL", ""),
		SQLitePath:   getEnv("SQLITE_PATH", ""),
		RewriteAtEnd: getEnvBool("REWRITE_AT_END", false),

		Headless:          getEnvBool("HEADLESS", true),
		DisableImages:     getEnvBool("DISABLE_IMAGES", true),
		SessionPerRequest: getEnvBool("SESSION_PER_REQUEST", false),
		UserAgent:         getEnv("USER_AGENT", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),

		BatchMode: getEnv("BATCH_MODE", ModeIncremental),

		LoadTimeout:     getEnvMillis("LOAD_TIMEOUT_MS", 30000),
		NextPageTimeout: getEnvMillis("NEXT_PAGE_TIMEOUT_MS", 10000),
		PageSettle:      getEnvMillis("PAGE_SETTLE_MS", 2000),
		BodyTimeout:     getEnvMillis("BODY_TIMEOUT_MS", 2000),
		RenderSettle:    getEnvMillis("RENDER_SETTLE_MS", 1000),
		RateLimitDelay:  getEnvInt("RATE_LIMIT_DELAY_MS", 0),
		RunTimeout:      time.Duration(getEnvInt("RUN_TIMEOUT_MIN", 0)) * time.Minute,
	}
}

// DefaultCategories is the category list searched when CATEGORIES is unset.
var DefaultCategories = []string{"Community Service/Non-Profit"}

// DefaultLocations is the location list searched when LOCATIONS is unset.
var DefaultLocations = []string{
	"Toronto, ON", "Montreal, QC", "Calgary, AB", "Ottawa, ON", "Edmonton, AB",
	"Mississauga, ON", "Winnipeg, MB", "Vancouver, BC", "Brampton, ON", "Hamilton, ON",
	"Quebec City, QC", "Surrey, BC", "Laval, QC", "Halifax, NS", "London, ON",
	"Markham, ON", "Vaughan, ON", "Gatineau, QC", "Saskatoon, SK", "Longueuil, QC",
	"Kitchener, ON", "Burnaby, BC", "Windsor, ON", "Regina, SK", "Richmond, BC",
	"Richmond Hill, ON", "Oakville, ON", "Burlington, ON", "Greater Sudbury, ON", "Sherbrooke, QC",
	"Oshawa, ON", "Saguenay, QC", "Levis, QC", "Barrie, ON", "Abbotsford, BC",
	"Coquitlam, BC", "Trois-Rivieres, QC", "St. Catharines, ON", "Guelph, ON", "Cambridge, ON",
	"Whitby, ON", "Kelowna, BC", "Kingston, ON",
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(strings.TrimSpace(val)); err == nil {
			return b
		}
	}
	return defaultVal
}

func getEnvMillis(key string, defaultMs int) time.Duration {
	return time.Duration(getEnvInt(key, defaultMs)) * time.Millisecond
}

// getEnvList splits on ";" because locations themselves contain commas ("Toronto, ON").
func getEnvList(key string, defaultVal []string) []string {
	val := os.Getenv(key)
	if strings.TrimSpace(val) == "" {
		return append([]string(nil), defaultVal...)
	}
	var out []string
	for _, part := range strings.Split(val, ";") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
