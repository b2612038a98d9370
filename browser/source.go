package browser

import (
	"context"

	"yelp-scraper/config"
	"yelp-scraper/scraper/yelp"
	"yelp-scraper/utils"
)

// Shared keeps one browser and one tab for the whole run
type Shared struct {
	session *Session
	tab     *Tab
}

// NewShared starts the browser used for every request of the run
func NewShared(ctx context.Context, cfg *config.Config, logger *utils.Logger) (*Shared, error) {
	s, err := Open(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	return &Shared{session: s, tab: s.Tab()}, nil
}

// Page returns the shared tab; release is a no-op
func (s *Shared) Page() (yelp.Page, func(), error) {
	return s.tab, func() {}, nil
}

// Close shuts the browser down
func (s *Shared) Close() {
	s.session.Close()
}

// PerRequest starts a fresh browser for every page acquisition
type PerRequest struct {
	ctx    context.Context
	cfg    *config.Config
	logger *utils.Logger
}

// NewPerRequest creates a PerRequest source bound to ctx
func NewPerRequest(ctx context.Context, cfg *config.Config, logger *utils.Logger) *PerRequest {
	return &PerRequest{ctx: ctx, cfg: cfg, logger: logger}
}

// Page starts a browser; release shuts it down again
func (p *PerRequest) Page() (yelp.Page, func(), error) {
	s, err := Open(p.ctx, p.cfg, p.logger)
	if err != nil {
		return nil, nil, err
	}
	return s.Tab(), s.Close, nil
}

// Close is a no-op: every browser is closed by its release func
func (p *PerRequest) Close() {}
