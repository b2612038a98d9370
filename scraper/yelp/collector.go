package yelp

import (
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"yelp-scraper/config"
	"yelp-scraper/models"
	"yelp-scraper/utils"
)

// Collector walks paginated search results and gathers listing links
type Collector struct {
	cfg    *config.Config
	logger *utils.Logger
}

// NewCollector creates a new Collector
func NewCollector(cfg *config.Config, logger *utils.Logger) *Collector {
	return &Collector{cfg: cfg, logger: logger}
}

// Collect loads the search page for q and returns every listing link across
// all result pages. It never fails: load errors are logged and yield nothing,
// and any trouble with the next-page control ends pagination.
func (c *Collector) Collect(page Page, q models.SearchQuery) []string {
	searchURL := q.SearchURL(c.cfg.SearchURLTemplate)
	base, _ := url.Parse(searchURL)

	if err := page.Load(searchURL); err != nil {
		c.logger.Error("Error loading search page %s: %v", searchURL, err)
		return nil
	}
	c.logger.Info("Navigated to %s", searchURL)

	var links []string
	for pageNum := 1; ; pageNum++ {
		doc, err := page.Document()
		if err != nil {
			c.logger.Error("Snapshot of results page %d failed: %v", pageNum, err)
			break
		}

		found := ListingLinks(doc, base)
		for _, link := range found {
			c.logger.Info("Business Link: %s", link)
		}
		links = append(links, found...)

		if !c.advance(page, pageNum) {
			break
		}
	}

	c.logger.Info("[%s] collected %d links", q, len(links))
	return links
}

// advance clicks through to the next results page, reporting whether it did.
func (c *Collector) advance(page Page, pageNum int) bool {
	if err := page.WaitUntil(NextPageSpanJS, c.cfg.NextPageTimeout); err != nil {
		c.logger.Info("No more pages to navigate")
		return false
	}
	c.logger.Info("Next Page span found")

	doc, err := page.Document()
	if err != nil {
		c.logger.Info("No more pages to navigate")
		return false
	}
	btn := NextPageButton(doc)
	if btn.Length() == 0 || !Interactable(btn) {
		c.logger.Info("Next Page button is not clickable")
		return false
	}

	if err := page.Click(NextPageButtonJS); err != nil {
		c.logger.Info("Next Page button is not clickable: %v", err)
		return false
	}
	c.logger.Info("Next Page button clicked, moving to page %d", pageNum+1)

	time.Sleep(c.cfg.PageSettle)
	return true
}

// ListingLinks returns the detail-page link of every listing on a results
// page, resolved against base.
func ListingLinks(doc *goquery.Document, base *url.URL) []string {
	var links []string
	doc.Find(ListingSelector).Each(func(_ int, listing *goquery.Selection) {
		href, ok := listing.Find(ListingLinkSelector).First().Attr("href")
		if !ok || strings.TrimSpace(href) == "" {
			return
		}
		links = append(links, resolve(base, strings.TrimSpace(href)))
	})
	return links
}

// NextPageButton finds the button wrapping the "Next Page" label, if any.
func NextPageButton(doc *goquery.Document) *goquery.Selection {
	return withOwnText(doc.Selection, "span", NextPageLabel).First().Closest("button")
}

// Interactable reports whether the markup leaves btn displayed and enabled.
func Interactable(btn *goquery.Selection) bool {
	if _, disabled := btn.Attr("disabled"); disabled {
		return false
	}
	if _, hidden := btn.Attr("hidden"); hidden {
		return false
	}
	if strings.EqualFold(btn.AttrOr("aria-disabled", ""), "true") {
		return false
	}
	style := strings.ReplaceAll(strings.ToLower(btn.AttrOr("style", "")), " ", "")
	return !strings.Contains(style, "display:none") && !strings.Contains(style, "visibility:hidden")
}

func resolve(base *url.URL, href string) string {
	if base == nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
