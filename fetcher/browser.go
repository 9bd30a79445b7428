package fetcher

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"github.com/ysmood/gson"

	"github.com/use-agent/scrapeboard/config"
)

// Browser manages the single Chromium instance shared by the stealthy and
// playwright fetchers. The browser is launched lazily on the first fetch so
// the panel starts (and reports honest availability) on hosts without
// Chromium installed. Safe for concurrent use.
type Browser struct {
	cfg config.BrowserConfig

	// launched is true while a connected browser exists. Kept separate from
	// the mutex so Available never blocks behind an in-flight launch.
	launched atomic.Bool

	mu       sync.Mutex
	browser  *rod.Browser
	pagePool rod.Pool[rod.Page]
}

// NewBrowser creates the manager without launching anything.
func NewBrowser(cfg config.BrowserConfig) *Browser {
	return &Browser{cfg: cfg}
}

// Available reports whether a Chromium binary can be found. Once the browser
// has launched this is trivially true.
func (b *Browser) Available() bool {
	if b.launched.Load() {
		return true
	}
	if b.cfg.BrowserBin != "" {
		return true
	}
	_, ok := launcher.LookPath()
	return ok
}

// session returns the shared browser and page pool, launching Chromium on
// first use. A failed launch is not cached: the next call retries, so a
// Chromium installed after startup becomes usable without a restart.
func (b *Browser) session() (*rod.Browser, rod.Pool[rod.Page], error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.browser != nil {
		return b.browser, b.pagePool, nil
	}

	l := launcher.New().
		Headless(b.cfg.Headless).
		NoSandbox(b.cfg.NoSandbox)

	if b.cfg.BrowserBin != "" {
		l = l.Bin(b.cfg.BrowserBin)
	}
	if b.cfg.DefaultProxy != "" {
		l = l.Proxy(b.cfg.DefaultProxy)
	}

	// ── Stealth flags ────────────────────────────────────────────
	l.Set(flags.Flag("disable-blink-features"), "AutomationControlled")
	l.Delete(flags.Flag("enable-automation"))
	l.Set(flags.Flag("disable-features"), "AudioServiceOutOfProcess,TranslateUI")
	l.Set(flags.Flag("disable-ipc-flooding-protection"))
	l.Set(flags.Flag("disable-popup-blocking"))
	l.Set(flags.Flag("disable-prompt-on-repost"))
	l.Set(flags.Flag("disable-renderer-backgrounding"))
	l.Set(flags.Flag("disable-background-timer-throttling"))
	l.Set(flags.Flag("disable-backgrounding-occluded-windows"))
	l.Set(flags.Flag("disable-component-update"))
	l.Set(flags.Flag("disable-default-apps"))
	l.Set(flags.Flag("disable-dev-shm-usage"))
	l.Set(flags.Flag("disable-extensions"))
	l.Set(flags.Flag("no-first-run"))

	controlURL, err := l.Launch()
	if err != nil {
		return nil, nil, fmt.Errorf("launch browser: %w", err)
	}
	slog.Info("browser launched", "controlURL", controlURL)

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, nil, fmt.Errorf("connect to browser: %w", err)
	}

	b.browser = browser
	b.pagePool = rod.NewPagePool(b.cfg.MaxPages)
	b.launched.Store(true)
	slog.Info("page pool created", "maxPages", b.cfg.MaxPages)

	return b.browser, b.pagePool, nil
}

// Close drains the page pool and kills the browser process. Call on graceful
// shutdown to prevent zombie Chromium processes. No-op if never launched.
func (b *Browser) Close() {
	b.mu.Lock()
	browser, pool := b.browser, b.pagePool
	b.browser = nil
	b.launched.Store(false)
	b.mu.Unlock()

	if browser == nil {
		return
	}
	slog.Info("browser shutting down: draining page pool")
	pool.Cleanup(func(p *rod.Page) {
		_ = p.Close()
	})
	browser.MustClose()
	slog.Info("browser shutdown complete")
}

// renderOptions select the per-strategy behavior of render.
type renderOptions struct {
	// stealth injects the stealth JS bundle and a Google-search Referer
	// before navigation.
	stealth bool

	// waitLoad waits for the load event before waiting for DOM stability
	// (full rendering; slower but complete).
	waitLoad bool
}

// render fetches targetURL in a pooled browser tab.
//
// Lifecycle:
//  1. Lazy launch             – first call pays the Chromium startup cost
//  2. Acquire page            – borrow a tab from the pool (or create one)
//  3. DEFER: cleanup          – about:blank + return to pool (leak prevention)
//  4. Stealth injection       – before navigation, or it has no effect
//  5. Hijack mount            – block configured resource types, before navigation
//  6. Context binding         – propagate the caller's deadline to all Rod ops
//  7. Navigate + wait         – load event (optional) then DOM stability
//  8. Extract                 – rendered HTML, title, final URL, status code
func (b *Browser) render(ctx context.Context, targetURL string, opts renderOptions) (*Result, error) {
	browser, pool, err := b.session()
	if err != nil {
		return nil, err
	}

	page, err := pool.Get(func() (*rod.Page, error) {
		return browser.Page(proto.TargetCreateTarget{})
	})
	if err != nil {
		return nil, fmt.Errorf("acquire page from pool: %w", err)
	}

	// Cleanup uses the original page reference (no request context) so it
	// still succeeds after the request deadline has expired.
	defer func() {
		if navErr := page.Navigate("about:blank"); navErr != nil {
			slog.Warn("cleanup: failed to navigate to about:blank", "error", navErr)
		}
		pool.Put(page)
	}()

	if opts.stealth {
		if _, evalErr := page.EvalOnNewDocument(stealth.JS); evalErr != nil {
			slog.Warn("stealth injection failed, proceeding without stealth", "error", evalErr)
		}
		// A Google search Referer looks more organic than a direct hit.
		if u, parseErr := url.Parse(targetURL); parseErr == nil {
			_ = proto.NetworkSetExtraHTTPHeaders{
				Headers: proto.NetworkHeaders{
					"Referer": gson.New("https://www.google.com/search?q=" + url.QueryEscape(u.Hostname())),
				},
			}.Call(page)
		}
	}

	router := setupHijack(page, b.cfg.BlockedResourceTypes)
	if router != nil {
		defer func() { _ = router.Stop() }()
	}

	p := page.Context(ctx)

	if err := p.Navigate(targetURL); err != nil {
		return nil, fmt.Errorf("navigation failed: %w", err)
	}

	if opts.waitLoad {
		if loadErr := p.WaitLoad(); loadErr != nil {
			slog.Debug("load event wait failed, proceeding", "error", loadErr)
		}
	}
	if stableErr := p.WaitDOMStable(300*time.Millisecond, 0.1); stableErr != nil {
		slog.Debug("WaitDOMStable did not converge, proceeding with current DOM", "error", stableErr)
	}

	rawHTML, err := p.HTML()
	if err != nil {
		return nil, fmt.Errorf("extract page HTML: %w", err)
	}

	finalURL := evalStringOrEmpty(p, `() => window.location.href`)
	if finalURL == "" {
		finalURL = targetURL
	}

	return &Result{
		HTML:       rawHTML,
		Title:      evalStringOrEmpty(p, `() => document.title`),
		StatusCode: navigationStatus(p),
		FinalURL:   finalURL,
	}, nil
}

// navigationStatus reads the HTTP status of the navigation from the
// Performance API, which needs no CDP event listeners.
func navigationStatus(p *rod.Page) int {
	res, err := p.Eval(`() => {
		try {
			const entries = performance.getEntriesByType("navigation");
			if (entries.length > 0) return entries[0].responseStatus || 0;
		} catch(e) {}
		return 0;
	}`)
	if err != nil {
		return 0
	}
	return res.Value.Int()
}

// evalStringOrEmpty evaluates a JS expression and returns the string result,
// swallowing any errors (useful for optional metadata extraction).
func evalStringOrEmpty(page *rod.Page, js string) string {
	res, err := page.Eval(js)
	if err != nil {
		return ""
	}
	return res.Value.Str()
}
