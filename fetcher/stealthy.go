package fetcher

import (
	"context"

	"github.com/use-agent/scrapeboard/models"
)

// StealthyFetcher renders pages in the shared headless browser with the
// stealth JS bundle injected (navigator.webdriver masking and friends) and a
// Google-search Referer. Use it for pages behind anti-bot screening.
type StealthyFetcher struct {
	browser *Browser
}

// NewStealthyFetcher creates a StealthyFetcher backed by the shared browser.
func NewStealthyFetcher(b *Browser) *StealthyFetcher {
	return &StealthyFetcher{browser: b}
}

func (f *StealthyFetcher) Name() string { return models.FetcherStealthy }

func (f *StealthyFetcher) Available() bool { return f.browser.Available() }

func (f *StealthyFetcher) Fetch(ctx context.Context, targetURL string) (*Result, error) {
	return f.browser.render(ctx, targetURL, renderOptions{stealth: true})
}
