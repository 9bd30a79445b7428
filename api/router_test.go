package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/use-agent/scrapeboard/config"
	"github.com/use-agent/scrapeboard/fetcher"
	"github.com/use-agent/scrapeboard/history"
	"github.com/use-agent/scrapeboard/models"
	"github.com/use-agent/scrapeboard/panel"
)

// stubFetcher serves a canned page so router tests never touch the network.
type stubFetcher struct {
	name string
	html string
}

func (s *stubFetcher) Name() string    { return s.name }
func (s *stubFetcher) Available() bool { return true }

func (s *stubFetcher) Fetch(ctx context.Context, targetURL string) (*fetcher.Result, error) {
	return &fetcher.Result{HTML: s.html, StatusCode: 200, FinalURL: targetURL}, nil
}

const stubPage = `<html><head><title>Stub</title></head><body><p>content</p><a href="/x">x</a></body></html>`

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Host: "127.0.0.1",
			Port: 8888,
			Mode: "test",
		},
		History: config.HistoryConfig{DefaultTail: 50},
		RateLimit: config.RateLimitConfig{
			RequestsPerSecond: 1000,
			Burst:             1000,
		},
	}
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	reg := fetcher.NewRegistry(&stubFetcher{name: models.FetcherBasic, html: stubPage})
	p := panel.New(reg, history.New(), 30*time.Second)
	return NewRouter(p, testConfig(), time.Now())
}

func doJSON(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestScrape_Success(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/scrape", `{"url":"https://example.com"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", w.Code, w.Body.String())
	}

	var res models.ScrapeResult
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if !res.Success {
		t.Errorf("success = false, error: %v", res.Error)
	}
	if res.Fetcher != models.FetcherBasic {
		t.Errorf("fetcher = %q, want basic (default)", res.Fetcher)
	}
	if res.Data == nil {
		t.Error("data should be present")
	}
}

func TestScrape_ResponseAlwaysHasDataAndErrorKeys(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/scrape", `{"url":"https://example.com","fetcher":"bogus"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(w.Body.Bytes(), &raw); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	for _, key := range []string{"success", "url", "fetcher", "timestamp", "data", "error", "timing_ms"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("response missing key %q", key)
		}
	}
	if string(raw["data"]) != "null" {
		t.Errorf("data = %s, want null on failure", raw["data"])
	}
	if string(raw["error"]) == "null" {
		t.Error("error should be set on failure")
	}
}

func TestScrape_MissingURL(t *testing.T) {
	router := newTestRouter(t)

	for _, body := range []string{`{}`, `{"url":"   "}`} {
		w := doJSON(t, router, http.MethodPost, "/api/scrape", body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("body %s: status = %d, want 400", body, w.Code)
		}
		var resp map[string]string
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid JSON error response: %v", err)
		}
		if resp["error"] != "url is required" {
			t.Errorf("error = %q, want %q", resp["error"], "url is required")
		}
	}
}

func TestScrape_InvalidJSON(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/scrape", `{not json`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON error response: %v", err)
	}
	if !strings.HasPrefix(resp["error"], "invalid JSON") {
		t.Errorf("error = %q, want invalid JSON prefix", resp["error"])
	}
}

func TestBatchScrape(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/batch-scrape",
		`{"urls":["https://a.example","https://b.example"],"extract_type":"text"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp models.BatchResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if len(resp.Results) != 2 {
		t.Fatalf("got %d results, want 2", len(resp.Results))
	}
	for i, r := range resp.Results {
		if !r.Success {
			t.Errorf("result %d failed: %v", i, r.Error)
		}
	}
}

func TestBatchScrape_EmptyList(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/batch-scrape", `{"urls":[]}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"results":[]`) {
		t.Errorf("body = %s, want empty results array", w.Body.String())
	}
}

func TestStatus(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/status", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp models.StatusResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if resp.Server != "running" {
		t.Errorf("server = %q, want running", resp.Server)
	}
	if resp.Port != 8888 {
		t.Errorf("port = %d, want 8888", resp.Port)
	}
	if !resp.Engines.Fetcher {
		t.Error("basic fetcher should be available")
	}
	if resp.Engines.StealthyFetcher || resp.Engines.PlaywrightFetcher {
		t.Error("unregistered fetchers should report unavailable")
	}
	if resp.Engines.Version != models.Version {
		t.Errorf("version = %q, want %q", resp.Engines.Version, models.Version)
	}
	if resp.GoVersion == "" || strings.HasPrefix(resp.GoVersion, "go") {
		t.Errorf("go_version = %q, want bare version number", resp.GoVersion)
	}
}

func TestStatus_HistoryCountTracksScrapes(t *testing.T) {
	router := newTestRouter(t)

	doJSON(t, router, http.MethodPost, "/api/scrape", `{"url":"https://example.com"}`)
	doJSON(t, router, http.MethodPost, "/api/scrape", `{"url":"https://example.com"}`)

	w := doJSON(t, router, http.MethodGet, "/api/status", "")
	var resp models.StatusResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if resp.HistoryCount != 2 {
		t.Errorf("history_count = %d, want 2", resp.HistoryCount)
	}
}

func TestHistory_LimitAndClear(t *testing.T) {
	router := newTestRouter(t)

	for i := 0; i < 5; i++ {
		doJSON(t, router, http.MethodPost, "/api/scrape", `{"url":"https://example.com"}`)
	}

	w := doJSON(t, router, http.MethodGet, "/api/history?limit=2", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp models.HistoryResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if len(resp.History) != 2 {
		t.Errorf("got %d history entries, want 2", len(resp.History))
	}
	if resp.Total != 5 {
		t.Errorf("total = %d, want 5", resp.Total)
	}

	w = doJSON(t, router, http.MethodGet, "/api/clear-history", "")
	if w.Code != http.StatusOK {
		t.Fatalf("clear status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "history cleared") {
		t.Errorf("clear body = %s", w.Body.String())
	}

	w = doJSON(t, router, http.MethodGet, "/api/history", "")
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if len(resp.History) != 0 || resp.Total != 0 {
		t.Errorf("history after clear: %d entries, total %d", len(resp.History), resp.Total)
	}
}

func TestHistory_ZeroLimitReturnsAll(t *testing.T) {
	router := newTestRouter(t)

	for i := 0; i < 3; i++ {
		doJSON(t, router, http.MethodPost, "/api/scrape", `{"url":"https://example.com"}`)
	}

	w := doJSON(t, router, http.MethodGet, "/api/history?limit=0", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp models.HistoryResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if len(resp.History) != 3 {
		t.Errorf("got %d entries for limit=0, want the whole history", len(resp.History))
	}
}

func TestHistory_UnparseableLimitFallsBack(t *testing.T) {
	router := newTestRouter(t)

	doJSON(t, router, http.MethodPost, "/api/scrape", `{"url":"https://example.com"}`)

	w := doJSON(t, router, http.MethodGet, "/api/history?limit=banana", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp models.HistoryResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if len(resp.History) != 1 {
		t.Errorf("got %d entries, want 1 (default tail)", len(resp.History))
	}
}

func TestPresets(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/presets", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp models.PresetsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if len(resp.Presets) != 5 {
		t.Fatalf("got %d presets, want 5", len(resp.Presets))
	}
	if resp.Presets[0].Name != "Wedding Venue Search" {
		t.Errorf("first preset = %q", resp.Presets[0].Name)
	}
	for i, p := range resp.Presets {
		if p.ExtractType == "" {
			t.Errorf("preset %d has empty extract_type", i)
		}
	}
}

func TestUI_ServedAtRoot(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{"/", "/index.html"} {
		w := doJSON(t, router, http.MethodGet, path, "")
		if w.Code != http.StatusOK {
			t.Errorf("%s: status = %d, want 200", path, w.Code)
		}
		if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "text/html") {
			t.Errorf("%s: content-type = %q, want text/html", path, ct)
		}
		if !strings.Contains(w.Body.String(), "<html") {
			t.Errorf("%s: body does not look like HTML", path)
		}
	}
}

func TestCORS_Preflight(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodOptions, "/api/scrape", "")
	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Allow-Origin = %q, want *", got)
	}
	if got := w.Header().Get("Access-Control-Allow-Methods"); !strings.Contains(got, "POST") {
		t.Errorf("Allow-Methods = %q, want POST included", got)
	}
	if got := w.Header().Get("Access-Control-Allow-Headers"); !strings.Contains(got, "Content-Type") {
		t.Errorf("Allow-Headers = %q, want Content-Type included", got)
	}
}

func TestCORS_HeaderOnRegularResponses(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/status", "")
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Allow-Origin = %q, want *", got)
	}
}

func TestNoRoute(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/nonexistent", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if resp["error"] != "not found" {
		t.Errorf("error = %q, want %q", resp["error"], "not found")
	}
}

func TestRateLimit_Exceeded(t *testing.T) {
	reg := fetcher.NewRegistry(&stubFetcher{name: models.FetcherBasic, html: stubPage})
	p := panel.New(reg, history.New(), 30*time.Second)

	cfg := testConfig()
	cfg.RateLimit.RequestsPerSecond = 1
	cfg.RateLimit.Burst = 2
	router := NewRouter(p, cfg, time.Now())

	var last *httptest.ResponseRecorder
	for i := 0; i < 5; i++ {
		last = doJSON(t, router, http.MethodGet, "/api/presets", "")
	}
	if last.Code != http.StatusTooManyRequests {
		t.Fatalf("status after burst = %d, want 429", last.Code)
	}
	if !strings.Contains(last.Body.String(), "rate limit exceeded") {
		t.Errorf("body = %s", last.Body.String())
	}
}
