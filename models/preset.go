package models

// Preset is a named, pre-filled scrape configuration for a recurring task.
type Preset struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Selectors   string `json:"selectors"`
	ExtractType string `json:"extract_type"`
}

// BuiltinPresets returns the static preset catalogue. Pure configuration
// data, hardcoded for the life of the binary.
func BuiltinPresets() []Preset {
	return []Preset{
		{
			Name:        "Wedding Venue Search",
			Description: "Scrape Bali wedding venue listings",
			URL:         "https://www.thebridestory.com/wedding-venues/in/bali",
			Selectors:   ".vendor-card",
			ExtractType: ExtractCSS,
		},
		{
			Name:        "Vendor Pricing Check",
			Description: "Check vendor pricing pages",
			URL:         "https://www.weddingku.com/vendor",
			Selectors:   ".price, .cost, .rate",
			ExtractType: ExtractCSS,
		},
		{
			Name:        "Review Monitor",
			Description: "Monitor reviews on Google Maps",
			URL:         "https://www.google.com/maps",
			Selectors:   ".review-text",
			ExtractType: ExtractCSS,
		},
		{
			Name:        "Competitor Analysis",
			Description: "Analyze competitor wedding sites",
			URL:         "",
			Selectors:   "h1, h2, .service, .package",
			ExtractType: ExtractCSS,
		},
		{
			Name:        "Instagram Hashtag",
			Description: "Track Bali wedding hashtags",
			URL:         "https://www.instagram.com/explore/tags/baliwedding/",
			Selectors:   "article img",
			ExtractType: ExtractImages,
		},
	}
}
