// Package fetcher provides the page-retrieval strategies the control panel
// dispatches to: plain HTTP with a Chrome TLS fingerprint ("basic"), a
// headless browser with anti-bot evasions ("stealthy"), and full browser
// rendering ("playwright").
package fetcher

import "context"

// Fetcher is one strategy for retrieving a web page.
type Fetcher interface {
	// Name returns the fetcher identifier used in requests and results.
	Name() string

	// Available reports whether this strategy can run on this host
	// (e.g. a Chromium binary exists for the browser-backed fetchers).
	Available() bool

	// Fetch retrieves the page at targetURL.
	Fetch(ctx context.Context, targetURL string) (*Result, error)
}

// Result is the output of a successful fetch.
type Result struct {
	// HTML is the page markup: the raw body for the basic fetcher, the
	// rendered DOM for the browser-backed ones.
	HTML string

	// Title is the page title, best-effort.
	Title string

	// StatusCode is the HTTP status of the final response (0 if unknown).
	StatusCode int

	// FinalURL is the URL after redirects (the request URL if unknown).
	FinalURL string
}

// Registry holds the configured fetchers keyed by name.
type Registry struct {
	order  []string
	byName map[string]Fetcher
}

// NewRegistry builds a registry preserving the given order.
func NewRegistry(fetchers ...Fetcher) *Registry {
	r := &Registry{byName: make(map[string]Fetcher, len(fetchers))}
	for _, f := range fetchers {
		r.order = append(r.order, f.Name())
		r.byName[f.Name()] = f
	}
	return r
}

// Get returns the fetcher registered under name.
func (r *Registry) Get(name string) (Fetcher, bool) {
	f, ok := r.byName[name]
	return f, ok
}

// Available reports whether a fetcher with the given name is registered and
// usable on this host.
func (r *Registry) Available(name string) bool {
	f, ok := r.byName[name]
	return ok && f.Available()
}

// Names returns the registered fetcher names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}
