package yelp

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"

	"yelp-scraper/config"
	"yelp-scraper/utils"
)

var errWaitTimeout = errors.New("waiting for condition: timeout")

// fakePage serves fixture HTML in place of a browser. Each Click moves to the
// next document in docs.
type fakePage struct {
	docs    []string
	current int
	loadErr error
	snapErr error
	waitErr error // returned for every condition other than the next-page poll

	loads  []string
	waits  []string
	clicks int
}

func (p *fakePage) Load(url string) error {
	p.loads = append(p.loads, url)
	if p.loadErr != nil {
		return p.loadErr
	}
	p.current = 0
	return nil
}

func (p *fakePage) WaitUntil(expr string, _ time.Duration) error {
	p.waits = append(p.waits, expr)
	if expr == NextPageSpanJS && !strings.Contains(p.docs[p.current], "Next Page") {
		return errWaitTimeout
	}
	if expr != NextPageSpanJS {
		return p.waitErr
	}
	return nil
}

func (p *fakePage) Document() (*goquery.Document, error) {
	if p.snapErr != nil {
		return nil, p.snapErr
	}
	return goquery.NewDocumentFromReader(strings.NewReader(p.docs[p.current]))
}

func (p *fakePage) Click(expr string) error {
	p.clicks++
	if p.current+1 >= len(p.docs) {
		return errors.New("no further document")
	}
	p.current++
	return nil
}

func fixture(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func fixtureDoc(t *testing.T, name string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fixture(t, name)))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func testConfig() *config.Config {
	return &config.Config{
		SearchURLTemplate: "https://www.yelp.com/search?find_desc=%s&find_loc=%s",
		NextPageTimeout:   10 * time.Millisecond,
		BodyTimeout:       10 * time.Millisecond,
	}
}

func testLogger() *utils.Logger {
	return utils.NewLogger()
}
