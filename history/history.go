// Package history keeps the in-memory record of scrape attempts.
//
// The log is append-only and unbounded for the life of the process; there is
// no persistence and no eviction. All methods are safe for concurrent use.
package history

import (
	"sync"

	"github.com/use-agent/scrapeboard/models"
)

// Log is an ordered, append-only sequence of scrape results.
type Log struct {
	mu      sync.RWMutex
	entries []*models.ScrapeResult
}

// New creates an empty Log.
func New() *Log {
	return &Log{}
}

// Append records a completed scrape attempt.
func (l *Log) Append(r *models.ScrapeResult) {
	l.mu.Lock()
	l.entries = append(l.entries, r)
	l.mu.Unlock()
}

// Tail returns the last limit entries in chronological order. A limit <= 0
// returns the entire history. The returned slice is a copy; the results it
// points to are shared and treated as immutable after Append.
func (l *Log) Tail(limit int) []*models.ScrapeResult {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if limit <= 0 {
		limit = len(l.entries)
	}
	start := len(l.entries) - limit
	if start < 0 {
		start = 0
	}
	out := make([]*models.ScrapeResult, len(l.entries)-start)
	copy(out, l.entries[start:])
	return out
}

// Len returns the total number of recorded attempts.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Clear discards all recorded attempts.
func (l *Log) Clear() {
	l.mu.Lock()
	l.entries = nil
	l.mu.Unlock()
}
