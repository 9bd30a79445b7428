package models

// Version is the panel version reported by /api/status and the MCP server.
const Version = "0.2.0"

// StatusResponse is the response for GET /api/status. It is recomputed on
// every request, never cached.
type StatusResponse struct {
	Server        string       `json:"server"`
	Port          int          `json:"port"`
	UptimeSeconds float64      `json:"uptime_seconds"`
	Engines       EngineStatus `json:"engines"`
	HistoryCount  int          `json:"history_count"`
	GoVersion     string       `json:"go_version"`
}

// EngineStatus reports which fetch strategies are usable on this host.
// The basic fetcher is compiled in and always available; the browser-backed
// fetchers require a Chromium binary; the MCP flag reports whether the
// companion scrapeboard-mcp binary is on PATH.
type EngineStatus struct {
	Fetcher           bool   `json:"fetcher"`
	StealthyFetcher   bool   `json:"stealthy_fetcher"`
	PlaywrightFetcher bool   `json:"playwright_fetcher"`
	MCPServer         bool   `json:"mcp_server"`
	Version           string `json:"version"`
}

// HistoryResponse is the response for GET /api/history.
type HistoryResponse struct {
	History []*ScrapeResult `json:"history"`
	Total   int             `json:"total"`
}

// PresetsResponse is the response for GET /api/presets.
type PresetsResponse struct {
	Presets []Preset `json:"presets"`
}
