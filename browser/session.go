package browser

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"

	"yelp-scraper/config"
	"yelp-scraper/utils"
)

// ErrNotInteractable is returned by Tab.Click for a hidden or disabled element.
var ErrNotInteractable = errors.New("element is not displayed and enabled")

// ErrNotFound is returned by Tab.Click when the expression yields no element.
var ErrNotFound = errors.New("element not found")

// Session is one Chrome process
type Session struct {
	allocCtx    context.Context
	browserCtx  context.Context
	cancelAlloc context.CancelFunc
	cancelCtx   context.CancelFunc
	loadTimeout time.Duration
	logger      *utils.Logger
}

// AllocatorOptions builds the Chrome flags for cfg
func AllocatorOptions(cfg *config.Config) []chromedp.ExecAllocatorOption {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.Headless),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("log-level", "3"),
		chromedp.UserAgent(cfg.UserAgent),
		chromedp.WindowSize(1280, 900),
	)
	if cfg.DisableImages {
		opts = append(opts, chromedp.Flag("blink-settings", "imagesEnabled=false"))
	}
	return opts
}

// Open starts Chrome and waits for it to come up. Everything the session
// does is cancelled together with ctx.
func Open(ctx context.Context, cfg *config.Config, logger *utils.Logger) (*Session, error) {
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, AllocatorOptions(cfg)...)
	browserCtx, cancelCtx := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))

	// the browser is launched lazily on the first Run
	if err := chromedp.Run(browserCtx); err != nil {
		cancelCtx()
		cancelAlloc()
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}

	logger.Debug("Browser session started (headless=%v)", cfg.Headless)
	return &Session{
		allocCtx:    allocCtx,
		browserCtx:  browserCtx,
		cancelAlloc: cancelAlloc,
		cancelCtx:   cancelCtx,
		loadTimeout: cfg.LoadTimeout,
		logger:      logger,
	}, nil
}

// Tab returns the session's first tab
func (s *Session) Tab() *Tab {
	return &Tab{ctx: s.browserCtx, loadTimeout: s.loadTimeout}
}

// Close shuts the browser down
func (s *Session) Close() {
	if err := chromedp.Cancel(s.browserCtx); err != nil && !errors.Is(err, context.Canceled) {
		s.logger.Warn("Browser did not shut down cleanly: %v", err)
	}
	s.cancelCtx()
	s.cancelAlloc()
	s.logger.Debug("Browser session closed")
}

// Tab drives one browser tab
type Tab struct {
	ctx         context.Context
	loadTimeout time.Duration
}

// bounded derives a context that expires after the load timeout. Cancelling
// it abandons the pending action but leaves the tab open.
func (t *Tab) bounded() (context.Context, context.CancelFunc) {
	if t.loadTimeout <= 0 {
		return context.WithCancel(t.ctx)
	}
	return context.WithTimeout(t.ctx, t.loadTimeout)
}

// Load navigates to url, giving up after the load timeout
func (t *Tab) Load(url string) error {
	ctx, cancel := t.bounded()
	defer cancel()
	if err := chromedp.Run(ctx, chromedp.Navigate(url)); err != nil {
		return fmt.Errorf("navigate %s: %w", url, err)
	}
	return nil
}

// WaitUntil polls expr in the page until it is truthy or timeout elapses
func (t *Tab) WaitUntil(expr string, timeout time.Duration) error {
	var ok bool
	return chromedp.Run(t.ctx, chromedp.Poll("!!("+expr+")", &ok, chromedp.WithPollingTimeout(timeout)))
}

// Document snapshots the rendered DOM
func (t *Tab) Document() (*goquery.Document, error) {
	ctx, cancel := t.bounded()
	defer cancel()

	var html string
	if err := chromedp.Run(ctx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return nil, fmt.Errorf("read page html: %w", err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse page html: %w", err)
	}
	return doc, nil
}

const clickScript = `(() => {
	const el = (%s);
	if (!el) return 'missing';
	const style = window.getComputedStyle(el);
	const shown = el.offsetParent !== null && style.visibility !== 'hidden' && style.display !== 'none';
	if (!shown || el.disabled || el.getAttribute('aria-disabled') === 'true') return 'inert';
	el.click();
	return 'clicked';
})()`

// Click clicks the element expr evaluates to, through JS so overlays can't
// intercept it
func (t *Tab) Click(expr string) error {
	ctx, cancel := t.bounded()
	defer cancel()

	var outcome string
	if err := chromedp.Run(ctx, chromedp.Evaluate(fmt.Sprintf(clickScript, expr), &outcome)); err != nil {
		return fmt.Errorf("click: %w", err)
	}
	switch outcome {
	case "clicked":
		return nil
	case "missing":
		return ErrNotFound
	default:
		return ErrNotInteractable
	}
}
