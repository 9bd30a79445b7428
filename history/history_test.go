package history

import (
	"fmt"
	"sync"
	"testing"

	"github.com/use-agent/scrapeboard/models"
)

func entry(url string) *models.ScrapeResult {
	return &models.ScrapeResult{Success: true, URL: url, Fetcher: models.FetcherBasic}
}

func TestAppendAndLen(t *testing.T) {
	l := New()
	if l.Len() != 0 {
		t.Fatalf("new log should be empty, got %d", l.Len())
	}

	l.Append(entry("https://a.example"))
	l.Append(entry("https://b.example"))

	if l.Len() != 2 {
		t.Errorf("Len() = %d, want 2", l.Len())
	}
}

func TestTail_ReturnsLastEntriesInOrder(t *testing.T) {
	l := New()
	for i := 0; i < 5; i++ {
		l.Append(entry(fmt.Sprintf("https://example.com/%d", i)))
	}

	tail := l.Tail(3)
	if len(tail) != 3 {
		t.Fatalf("Tail(3) returned %d entries", len(tail))
	}
	for i, want := range []string{"https://example.com/2", "https://example.com/3", "https://example.com/4"} {
		if tail[i].URL != want {
			t.Errorf("tail[%d].URL = %q, want %q", i, tail[i].URL, want)
		}
	}
}

func TestTail_LimitLargerThanLog(t *testing.T) {
	l := New()
	l.Append(entry("https://only.example"))

	tail := l.Tail(50)
	if len(tail) != 1 {
		t.Fatalf("Tail(50) on 1-entry log returned %d entries", len(tail))
	}
}

func TestTail_NonPositiveLimitReturnsAll(t *testing.T) {
	l := New()
	l.Append(entry("https://a.example"))
	l.Append(entry("https://b.example"))
	l.Append(entry("https://c.example"))

	for _, limit := range []int{0, -1} {
		tail := l.Tail(limit)
		if len(tail) != 3 {
			t.Errorf("Tail(%d) returned %d entries, want the whole history", limit, len(tail))
		}
	}
}

func TestTail_EmptyLog(t *testing.T) {
	l := New()
	if got := l.Tail(0); len(got) != 0 {
		t.Errorf("Tail(0) on empty log returned %d entries", len(got))
	}
	if got := l.Tail(5); len(got) != 0 {
		t.Errorf("Tail(5) on empty log returned %d entries", len(got))
	}
}

func TestTail_ReturnsCopy(t *testing.T) {
	l := New()
	l.Append(entry("https://a.example"))
	l.Append(entry("https://b.example"))

	tail := l.Tail(2)
	tail[0] = entry("https://mutated.example")

	if l.Tail(2)[0].URL != "https://a.example" {
		t.Error("mutating the returned slice should not affect the log")
	}
}

func TestClear(t *testing.T) {
	l := New()
	l.Append(entry("https://a.example"))
	l.Append(entry("https://b.example"))

	l.Clear()

	if l.Len() != 0 {
		t.Errorf("Len() after Clear() = %d, want 0", l.Len())
	}
	if len(l.Tail(10)) != 0 {
		t.Error("Tail() after Clear() should be empty")
	}
}

func TestConcurrentAppend(t *testing.T) {
	l := New()
	const n = 100

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			l.Append(entry(fmt.Sprintf("https://example.com/%d", i)))
		}(i)
	}
	wg.Wait()

	if l.Len() != n {
		t.Errorf("Len() = %d after %d concurrent appends", l.Len(), n)
	}
}
