package browser

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/chromedp/chromedp"

	"yelp-scraper/config"
	"yelp-scraper/scraper/yelp"
)

var _ yelp.Page = (*Tab)(nil)

func TestAllocatorOptionsImages(t *testing.T) {
	cfg := &config.Config{Headless: true, UserAgent: "test-agent"}
	base := len(AllocatorOptions(cfg))

	cfg.DisableImages = true
	if got := len(AllocatorOptions(cfg)); got != base+1 {
		t.Errorf("DisableImages should add one flag, got %d -> %d", base, got)
	}
	if base <= len(chromedp.DefaultExecAllocatorOptions) {
		t.Errorf("expected custom flags on top of the %d defaults", len(chromedp.DefaultExecAllocatorOptions))
	}
}

func TestClickScriptEmbedsExpression(t *testing.T) {
	script := strings.Replace(clickScript, "%s", yelp.NextPageButtonJS, 1)
	if !strings.Contains(script, "closest('button')") {
		t.Error("click script should wrap the next-page button expression")
	}
	if strings.Count(clickScript, "%s") != 1 {
		t.Error("click script must have exactly one placeholder")
	}
}

func TestTabBoundedDeadline(t *testing.T) {
	tab := &Tab{ctx: context.Background(), loadTimeout: 50 * time.Millisecond}
	ctx, cancel := tab.bounded()
	defer cancel()

	deadline, ok := ctx.Deadline()
	if !ok {
		t.Fatal("load context has no deadline")
	}
	if d := time.Until(deadline); d <= 0 || d > 50*time.Millisecond {
		t.Errorf("deadline in %v, want within 50ms", d)
	}

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("load context never expired")
	}
	if tab.ctx.Err() != nil {
		t.Error("expiring a load must not cancel the tab context")
	}
}

func TestTabBoundedWithoutTimeout(t *testing.T) {
	tab := &Tab{ctx: context.Background()}
	ctx, cancel := tab.bounded()
	if _, ok := ctx.Deadline(); ok {
		t.Error("zero timeout should not set a deadline")
	}
	cancel()
	if ctx.Err() == nil {
		t.Error("cancel should release the derived context")
	}
}

func TestSessionTabCarriesLoadTimeout(t *testing.T) {
	s := &Session{browserCtx: context.Background(), loadTimeout: 3 * time.Second}
	if got := s.Tab().loadTimeout; got != 3*time.Second {
		t.Errorf("tab load timeout = %v", got)
	}
}
