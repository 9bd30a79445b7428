package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/use-agent/scrapeboard/models"
)

func TestBasicFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") == "" || !strings.Contains(r.Header.Get("User-Agent"), "Chrome") {
			t.Errorf("missing Chrome user agent, got %q", r.Header.Get("User-Agent"))
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(`<html><head><title>Landing</title></head><body>hi</body></html>`))
	}))
	defer srv.Close()

	f := NewBasicFetcher("")
	res, err := f.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if res.StatusCode != http.StatusOK {
		t.Errorf("StatusCode = %d, want 200", res.StatusCode)
	}
	if res.Title != "Landing" {
		t.Errorf("Title = %q, want Landing", res.Title)
	}
	if !strings.Contains(res.HTML, "<body>hi</body>") {
		t.Errorf("HTML = %q", res.HTML)
	}
	if res.FinalURL == "" {
		t.Error("FinalURL should be set")
	}
}

func TestBasicFetch_ErrorPageBodyReturned(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`<html><head><title>Not Found</title></head><body><p>gone</p></body></html>`))
	}))
	defer srv.Close()

	f := NewBasicFetcher("")
	res, err := f.Fetch(context.Background(), srv.URL+"/missing")
	if err != nil {
		t.Fatalf("a 404 page should fetch without error, got: %v", err)
	}
	if res.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want 404", res.StatusCode)
	}
	if !strings.Contains(res.HTML, "gone") {
		t.Errorf("HTML = %q, want the error page body", res.HTML)
	}
	if res.Title != "Not Found" {
		t.Errorf("Title = %q, want Not Found", res.Title)
	}
}

func TestBasicFetch_NonHTMLContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"not":"html"}`))
	}))
	defer srv.Close()

	f := NewBasicFetcher("")
	_, err := f.Fetch(context.Background(), srv.URL)
	if err == nil {
		t.Fatal("expected error for non-HTML content type")
	}
	if !strings.Contains(err.Error(), "non-HTML") {
		t.Errorf("error = %v", err)
	}
}

func TestBasicFetch_FollowsRedirect(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/start" {
			http.Redirect(w, r, "/end", http.StatusFound)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<html><head><title>End</title></head><body></body></html>`))
	}))
	defer srv.Close()

	f := NewBasicFetcher("")
	res, err := f.Fetch(context.Background(), srv.URL+"/start")
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if !strings.HasSuffix(res.FinalURL, "/end") {
		t.Errorf("FinalURL = %q, want redirect target", res.FinalURL)
	}
}

func TestIsHTMLContentType(t *testing.T) {
	tests := []struct {
		ct   string
		want bool
	}{
		{"text/html", true},
		{"text/html; charset=utf-8", true},
		{"TEXT/HTML", true},
		{"application/xhtml+xml", true},
		{"", true},
		{"application/json", false},
		{"image/png", false},
		{"text/plain", false},
	}

	for _, tt := range tests {
		if got := isHTMLContentType(tt.ct); got != tt.want {
			t.Errorf("isHTMLContentType(%q) = %v, want %v", tt.ct, got, tt.want)
		}
	}
}

func TestExtractTitle(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{"simple", `<html><head><title>Hello</title></head></html>`, "Hello"},
		{"whitespace trimmed", `<title>  Spaced  </title>`, "Spaced"},
		{"no title", `<html><body><p>text</p></body></html>`, ""},
		{"empty title", `<title></title>`, ""},
		{"empty input", ``, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractTitle(tt.html); got != tt.want {
				t.Errorf("extractTitle(...) = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBasicAvailable(t *testing.T) {
	f := NewBasicFetcher("")
	if !f.Available() {
		t.Error("basic fetcher should always be available")
	}
	if f.Name() != models.FetcherBasic {
		t.Errorf("Name() = %q", f.Name())
	}
}

func TestRegistry(t *testing.T) {
	basic := NewBasicFetcher("")
	reg := NewRegistry(basic)

	if f, ok := reg.Get(models.FetcherBasic); !ok || f != Fetcher(basic) {
		t.Error("Get should return the registered fetcher")
	}
	if _, ok := reg.Get("missing"); ok {
		t.Error("Get should miss for unregistered names")
	}
	if !reg.Available(models.FetcherBasic) {
		t.Error("basic should be available")
	}
	if reg.Available("missing") {
		t.Error("unregistered name should not be available")
	}

	names := reg.Names()
	if len(names) != 1 || names[0] != models.FetcherBasic {
		t.Errorf("Names() = %v", names)
	}
}
