package models

// Fetcher names accepted by the scrape endpoints.
const (
	FetcherBasic      = "basic"
	FetcherStealthy   = "stealthy"
	FetcherPlaywright = "playwright"
)

// Extraction modes accepted by the scrape endpoints.
const (
	ExtractFull     = "full"
	ExtractText     = "text"
	ExtractLinks    = "links"
	ExtractImages   = "images"
	ExtractCSS      = "css"
	ExtractMarkdown = "markdown"
	ExtractArticle  = "article"
)

// ScrapeRequest is the payload for POST /api/scrape.
type ScrapeRequest struct {
	// URL is the target page to scrape. Required.
	URL string `json:"url"`

	// Fetcher selects the fetch strategy: "basic" (plain HTTP with a
	// Chrome TLS fingerprint), "stealthy" (headless browser with anti-bot
	// evasions), or "playwright" (full browser rendering).
	// Default: "basic".
	Fetcher string `json:"fetcher,omitempty"`

	// Selectors is a CSS selector group used by the "css" extraction mode.
	Selectors string `json:"selectors,omitempty"`

	// ExtractType controls which subset of page data the scrape returns:
	// "full", "text", "links", "images", "css", "markdown", or "article".
	// Default: "full".
	ExtractType string `json:"extract_type,omitempty"`
}

// Defaults applies default values to unset fields.
func (r *ScrapeRequest) Defaults() {
	if r.Fetcher == "" {
		r.Fetcher = FetcherBasic
	}
	if r.ExtractType == "" {
		r.ExtractType = ExtractFull
	}
}

// BatchRequest is the payload for POST /api/batch-scrape.
type BatchRequest struct {
	// URLs is the list of target pages to scrape.
	URLs []string `json:"urls"`

	// Fetcher is the fetch strategy applied to every URL. Default: "basic".
	Fetcher string `json:"fetcher,omitempty"`

	// ExtractType is the extraction mode applied to every URL.
	// Default: "full".
	ExtractType string `json:"extract_type,omitempty"`
}

// BatchResponse is the response for POST /api/batch-scrape.
type BatchResponse struct {
	Results []*ScrapeResult `json:"results"`
}
