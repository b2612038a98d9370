package services

import (
	"context"
	"fmt"

	"yelp-scraper/config"
	"yelp-scraper/models"
	"yelp-scraper/scraper/yelp"
	"yelp-scraper/storage"
	"yelp-scraper/utils"
)

// LinkCollector gathers listing links for one search query
type LinkCollector interface {
	Collect(page yelp.Page, q models.SearchQuery) []string
}

// DetailExtractor scrapes one business detail page
type DetailExtractor interface {
	Extract(page yelp.Page, url string) *models.BusinessRecord
}

// PageSource hands out browser pages. The returned func releases the page.
type PageSource interface {
	Page() (yelp.Page, func(), error)
	Close()
}

// Runner drives a whole scrape: search queries, link collection,
// detail extraction and output, one page at a time
type Runner struct {
	cfg       *config.Config
	logger    *utils.Logger
	collector LinkCollector
	extractor DetailExtractor
	pages     PageSource
	sink      storage.RecordSink
	visited   *utils.VisitedSet
	limiter   *utils.RateLimiter
	cleaner   *RecordCleaner

	records []*models.BusinessRecord
	skipped int
}

// NewRunner wires a Runner. visited may be pre-seeded to skip known businesses.
func NewRunner(cfg *config.Config, logger *utils.Logger, collector LinkCollector, extractor DetailExtractor,
	pages PageSource, sink storage.RecordSink, visited *utils.VisitedSet) *Runner {
	if visited == nil {
		visited = utils.NewVisitedSet()
	}
	return &Runner{
		cfg:       cfg,
		logger:    logger,
		collector: collector,
		extractor: extractor,
		pages:     pages,
		sink:      sink,
		visited:   visited,
		limiter:   utils.NewRateLimiter(cfg.RateLimitDelay),
		cleaner:   NewRecordCleaner(logger),
	}
}

// Queries expands categories x locations, category-major
func Queries(categories, locations []string) []models.SearchQuery {
	queries := make([]models.SearchQuery, 0, len(categories)*len(locations))
	for _, c := range categories {
		for _, l := range locations {
			queries = append(queries, models.SearchQuery{Category: c, Location: l})
		}
	}
	return queries
}

// Run executes the configured mode and returns the records extracted in this
// run. On cancellation the records gathered so far are returned with the error.
func (r *Runner) Run(ctx context.Context) ([]*models.BusinessRecord, error) {
	var err error
	switch {
	case r.cfg.URLFile != "":
		err = r.runURLFile(ctx)
	case r.cfg.BatchMode == config.ModeEager:
		err = r.runEager(ctx)
	default:
		err = r.runIncremental(ctx)
	}

	if err == nil && r.cfg.RewriteAtEnd {
		if rw, ok := r.sink.(storage.Rewriter); ok {
			if rerr := rw.Rewrite(r.records); rerr != nil {
				r.logger.Error("Final rewrite failed: %v", rerr)
			}
		}
	}

	r.logger.Info("Run finished: %d extracted, %d skipped as already visited, %d URLs visited",
		len(r.records), r.skipped, r.visited.Count())
	return r.records, err
}

// Skipped is how many candidate links were dropped because they were visited
func (r *Runner) Skipped() int {
	return r.skipped
}

func (r *Runner) runURLFile(ctx context.Context) error {
	urls, err := storage.ReadURLList(r.cfg.URLFile)
	if err != nil {
		return err
	}
	r.logger.Info("Loaded %d URLs from %s", len(urls), r.cfg.URLFile)
	return r.extractAll(ctx, urls)
}

// runEager collects links for every query before extracting any of them
func (r *Runner) runEager(ctx context.Context) error {
	var all []string
	for _, q := range Queries(r.cfg.Categories, r.cfg.Locations) {
		links, err := r.collect(ctx, q)
		if err != nil {
			return err
		}
		all = append(all, links...)
	}
	r.logger.Info("Collected %d links across all searches", len(all))
	return r.extractAll(ctx, all)
}

// runIncremental extracts each query's links before moving to the next query
func (r *Runner) runIncremental(ctx context.Context) error {
	for _, q := range Queries(r.cfg.Categories, r.cfg.Locations) {
		links, err := r.collect(ctx, q)
		if err != nil {
			return err
		}
		if err := r.extractAll(ctx, links); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) collect(ctx context.Context, q models.SearchQuery) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	page, release, err := r.pages.Page()
	if err != nil {
		return nil, fmt.Errorf("acquire page for %s: %w", q, err)
	}
	defer release()

	r.logger.Info("Searching %s", q)
	return r.collector.Collect(page, q), nil
}

func (r *Runner) extractAll(ctx context.Context, urls []string) error {
	for _, url := range urls {
		if err := ctx.Err(); err != nil {
			return err
		}
		if r.visited.Has(url) {
			r.logger.Debug("Skipping visited %s", url)
			r.skipped++
			continue
		}
		if err := r.limiter.Wait(ctx); err != nil {
			return err
		}
		if err := r.extractOne(url); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) extractOne(url string) error {
	page, release, err := r.pages.Page()
	if err != nil {
		return fmt.Errorf("acquire page for %s: %w", url, err)
	}
	rec := r.extractor.Extract(page, url)
	release()

	r.cleaner.Clean(rec)
	if err := r.sink.Write(rec); err != nil {
		r.logger.Error("Failed to save %s: %v", url, err)
	}
	r.visited.Add(url)
	r.records = append(r.records, rec)
	r.logger.Info("Extracted and saved info for %s", url)
	return nil
}
