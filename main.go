package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"yelp-scraper/browser"
	"yelp-scraper/config"
	"yelp-scraper/scraper/yelp"
	"yelp-scraper/services"
	"yelp-scraper/storage"
	"yelp-scraper/utils"
)

func main() {
	os.Exit(run())
}

func run() int {
	// ================== Bootstrap ====================
	envErr := godotenv.Load()
	cfg := config.Load()

	flag.BoolVar(&cfg.Headless, "headless", cfg.Headless, "run Chrome without a window")
	flag.StringVar(&cfg.CSVFilePath, "out", cfg.CSVFilePath, "CSV output file")
	flag.StringVar(&cfg.URLFile, "urls", cfg.URLFile, "file of business URLs to extract, skipping search")
	flag.StringVar(&cfg.BatchMode, "mode", cfg.BatchMode, "batch mode: incremental or eager")
	flag.BoolVar(&cfg.SessionPerRequest, "per-request", cfg.SessionPerRequest, "start a fresh browser for every page")
	flag.BoolVar(&cfg.RewriteAtEnd, "rewrite", cfg.RewriteAtEnd, "when done, replace the CSV with this run's records (rows from earlier runs are removed)")
	flag.Parse()

	logger, err := utils.NewFileLogger(cfg.LogFilePath)
	if err != nil {
		logger = utils.NewLogger()
		logger.Warn("Logging to terminal only: %v", err)
	}
	defer logger.Close()

	if envErr != nil {
		logger.Debug("No .env file loaded: %v", envErr)
	}
	if cfg.BatchMode != config.ModeIncremental && cfg.BatchMode != config.ModeEager {
		logger.Error("Unknown batch mode %q (want %s or %s)", cfg.BatchMode, config.ModeIncremental, config.ModeEager)
		return 2
	}

	logger.Info("Business Listing Scraping System")
	logger.Info("Searches: %d categories x %d locations | Mode: %s", len(cfg.Categories), len(cfg.Locations), cfg.BatchMode)
	logger.Info("Headless: %v | Session per request: %v | Rate delay: %dms",
		cfg.Headless, cfg.SessionPerRequest, cfg.RateLimitDelay)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if cfg.RunTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.RunTimeout)
		defer cancel()
	}

	// =================== Output sinks ========================================
	csvWriter, err := storage.NewCSVWriter(cfg.CSVFilePath, logger)
	if err != nil {
		logger.Error("Cannot prepare CSV output: %v", err)
		return 1
	}
	sinks := []storage.RecordSink{csvWriter}

	if cfg.DatabaseURL != "" {
		pgWriter, err := storage.NewPostgresWriter(cfg.DatabaseURL, logger)
		if err != nil {
			logger.Error("Cannot connect to PostgreSQL: %v", err)
			return 1
		}
		if err := pgWriter.CreateTable(); err != nil {
			logger.Error("Failed to create DB table: %v", err)
			pgWriter.Close()
			return 1
		}
		sinks = append(sinks, pgWriter)
	}

	if cfg.SQLitePath != "" {
		sqliteWriter, err := storage.NewSQLiteWriter(cfg.SQLitePath, logger)
		if err != nil {
			logger.Error("Cannot open SQLite database: %v", err)
			storage.NewMultiSink(sinks...).Close()
			return 1
		}
		sinks = append(sinks, sqliteWriter)
	}

	sink := storage.NewMultiSink(sinks...)
	defer func() {
		if err := sink.Close(); err != nil {
			logger.Error("Closing outputs: %v", err)
		}
	}()

	// =============== Browser ===================================
	var pages services.PageSource
	if cfg.SessionPerRequest {
		pages = browser.NewPerRequest(ctx, cfg, logger)
	} else {
		shared, err := browser.NewShared(ctx, cfg, logger)
		if err != nil {
			logger.Error("Cannot start browser: %v", err)
			return 1
		}
		pages = shared
	}
	defer pages.Close()

	// =============== Scraping ===================================
	runner := services.NewRunner(cfg, logger,
		yelp.NewCollector(cfg, logger),
		yelp.NewExtractor(cfg, logger),
		pages, sink, utils.NewVisitedSet())

	records, err := runner.Run(ctx)
	exit := 0
	switch {
	case err == nil:
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		logger.Warn("Run stopped early: %v", err)
	default:
		logger.Error("Scraping failed: %v", err)
		exit = 1
	}

	// ==== Insights ============================
	insightSvc := services.NewInsightService(logger)
	services.PrintRunSummary(os.Stdout, insightSvc.Generate(records, runner.Skipped()))

	fmt.Println(" Done! Records →", cfg.CSVFilePath)
	return exit
}
