// Package panel orchestrates scrape operations: it dispatches to the
// requested fetcher, shapes the page through an extraction mode, and records
// every attempt in the history log.
package panel

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/use-agent/scrapeboard/extract"
	"github.com/use-agent/scrapeboard/fetcher"
	"github.com/use-agent/scrapeboard/history"
	"github.com/use-agent/scrapeboard/models"
)

// maxBatchURLs caps how many URLs one batch operation will process.
const maxBatchURLs = 10

// Panel wires the fetcher registry, extraction, and history together.
type Panel struct {
	fetchers *fetcher.Registry
	log      *history.Log
	timeout  time.Duration
}

// New creates a Panel. timeout is the hard deadline applied to each fetch.
func New(fetchers *fetcher.Registry, log *history.Log, timeout time.Duration) *Panel {
	return &Panel{fetchers: fetchers, log: log, timeout: timeout}
}

// History exposes the scrape history log.
func (p *Panel) History() *history.Log { return p.log }

// Fetchers exposes the fetcher registry.
func (p *Panel) Fetchers() *fetcher.Registry { return p.fetchers }

// Run executes one scrape and returns its result. It never returns a Go
// error: every failure is folded into the result's error field.
//
// An unknown fetcher name fails fast: no timing, and the attempt is not
// recorded in history. Every attempt that actually dispatched a fetch is
// recorded, successful or not.
func (p *Panel) Run(ctx context.Context, req *models.ScrapeRequest) *models.ScrapeResult {
	req.Defaults()

	result := &models.ScrapeResult{
		URL:       req.URL,
		Fetcher:   req.Fetcher,
		Timestamp: time.Now().Format(time.RFC3339),
	}

	f, ok := p.fetchers.Get(req.Fetcher)
	if !ok {
		result.Fail(fmt.Sprintf("unknown fetcher type: %s", req.Fetcher))
		return result
	}

	start := time.Now()

	fetchCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	fres, err := f.Fetch(fetchCtx, req.URL)
	switch {
	case err != nil:
		result.Fail(err.Error())
	case fres.HTML == "":
		result.Fail("page returned empty response")
	default:
		data, extractErr := extract.Apply(fres.HTML, req.URL, req.ExtractType, req.Selectors)
		if extractErr != nil {
			result.Fail(extractErr.Error())
		} else {
			// The full overview also reports what the fetch itself saw:
			// HTTP status, post-redirect URL, and the rendered title when
			// the markup carries none.
			if fd, ok := data.(models.FullData); ok {
				fd.StatusCode = fres.StatusCode
				fd.FinalURL = fres.FinalURL
				if fd.Title == "" {
					fd.Title = fres.Title
				}
				data = fd
			}
			result.Success = true
			result.Data = data
		}
	}

	result.TimingMs = round2(time.Since(start).Seconds() * 1000)
	p.log.Append(result)

	if result.Success {
		slog.Info("scrape completed",
			"url", req.URL,
			"fetcher", req.Fetcher,
			"extract", req.ExtractType,
			"timingMs", result.TimingMs,
		)
	} else {
		slog.Warn("scrape failed",
			"url", req.URL,
			"fetcher", req.Fetcher,
			"error", *result.Error,
			"timingMs", result.TimingMs,
		)
	}

	return result
}

// RunBatch applies Run sequentially to at most maxBatchURLs URLs and returns
// the individual results in input order. URLs are whitespace-trimmed and the
// css selector input does not apply to batches.
func (p *Panel) RunBatch(ctx context.Context, req *models.BatchRequest) []*models.ScrapeResult {
	urls := req.URLs
	if len(urls) > maxBatchURLs {
		urls = urls[:maxBatchURLs]
	}

	results := make([]*models.ScrapeResult, 0, len(urls))
	for _, u := range urls {
		results = append(results, p.Run(ctx, &models.ScrapeRequest{
			URL:         strings.TrimSpace(u),
			Fetcher:     req.Fetcher,
			ExtractType: req.ExtractType,
		}))
	}
	return results
}

// round2 rounds to 2 decimal places for the timing_ms field.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
