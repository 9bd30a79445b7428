package fetcher

import (
	"context"

	"github.com/use-agent/scrapeboard/models"
)

// PlaywrightFetcher renders pages in the shared headless browser with full
// page loading: it waits for the load event and then for the DOM to settle,
// so JS-heavy pages come back fully rendered. No stealth evasions.
type PlaywrightFetcher struct {
	browser *Browser
}

// NewPlaywrightFetcher creates a PlaywrightFetcher backed by the shared browser.
func NewPlaywrightFetcher(b *Browser) *PlaywrightFetcher {
	return &PlaywrightFetcher{browser: b}
}

func (f *PlaywrightFetcher) Name() string { return models.FetcherPlaywright }

func (f *PlaywrightFetcher) Available() bool { return f.browser.Available() }

func (f *PlaywrightFetcher) Fetch(ctx context.Context, targetURL string) (*Result, error) {
	return f.browser.render(ctx, targetURL, renderOptions{waitLoad: true})
}
