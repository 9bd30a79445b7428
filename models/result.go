package models

// ScrapeResult records one scrape attempt. It is both the response body for
// POST /api/scrape and the unit stored in the in-memory history.
//
// A failed attempt carries Error and no Data; a successful one carries Data
// and no Error. The scrape operation itself never surfaces a Go error; any
// failure ends up in the Error field.
type ScrapeResult struct {
	// Success indicates whether the scrape completed without errors.
	Success bool `json:"success"`

	// URL is the requested target.
	URL string `json:"url"`

	// Fetcher is the fetch strategy that was requested.
	Fetcher string `json:"fetcher"`

	// Timestamp is when the attempt started, RFC 3339.
	Timestamp string `json:"timestamp"`

	// Data is the typed per-mode payload (FullData, LinksData, ...).
	// Nil when the scrape failed.
	Data any `json:"data"`

	// Error is the failure description. Nil when the scrape succeeded.
	Error *string `json:"error"`

	// TimingMs is the wall-clock duration in milliseconds, 2-decimal.
	TimingMs float64 `json:"timing_ms"`
}

// Fail marks the result as failed with the given message.
func (r *ScrapeResult) Fail(msg string) {
	r.Success = false
	r.Data = nil
	r.Error = &msg
}

// FullData is the payload for the "full" extraction mode: a page overview
// without the page content itself. StatusCode and FinalURL come from the
// fetch, not the markup, and are omitted when the fetcher could not
// determine them.
type FullData struct {
	Status     string `json:"status"`
	Title      string `json:"title"`
	TextLength int    `json:"text_length"`
	HTMLLength int    `json:"html_length"`
	LinkCount  int    `json:"link_count"`
	ImageCount int    `json:"image_count"`
	StatusCode int    `json:"status_code,omitempty"`
	FinalURL   string `json:"final_url,omitempty"`
}

// TextData is the payload for the "text" extraction mode.
type TextData struct {
	Status string `json:"status"`
	Text   string `json:"text"`
}

// LinksData is the payload for the "links" extraction mode.
type LinksData struct {
	Status string `json:"status"`
	Links  []Link `json:"links"`
}

// Link is one hyperlink extracted from the page. Href is the raw attribute
// value, not resolved against the page URL.
type Link struct {
	Href string `json:"href"`
	Text string `json:"text"`
}

// ImagesData is the payload for the "images" extraction mode.
type ImagesData struct {
	Status string  `json:"status"`
	Images []Image `json:"images"`
}

// Image is one image element extracted from the page.
type Image struct {
	Src string `json:"src"`
	Alt string `json:"alt"`
}

// CSSData is the payload for the "css" extraction mode: the text content of
// elements matching the requested selector group.
type CSSData struct {
	Status   string   `json:"status"`
	Elements []string `json:"elements"`
}

// MarkdownData is the payload for the "markdown" extraction mode.
type MarkdownData struct {
	Status   string `json:"status"`
	Markdown string `json:"markdown"`
	Length   int    `json:"length"`
}

// ArticleData is the payload for the "article" extraction mode (readability
// main-content extraction).
type ArticleData struct {
	Status   string `json:"status"`
	Title    string `json:"title"`
	Byline   string `json:"byline,omitempty"`
	Excerpt  string `json:"excerpt,omitempty"`
	SiteName string `json:"site_name,omitempty"`
	Text     string `json:"text"`
	Length   int    `json:"length"`
}

// StatusOnlyData is the payload when an extraction mode has nothing to add
// (mode "css" without a selector, or an unrecognized mode).
type StatusOnlyData struct {
	Status string `json:"status"`
}
