package moodlog

import (
	"sync"
	"time"
)

// DefaultCap is the retained-window size used when none is configured.
// The pages kept between 10 and 50 entries depending on the surface; the
// home page used 10.
const DefaultCap = 10

// Entry is one self-reported mood record.
type Entry struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	Level     int       `json:"level"`
	Note      string    `json:"note,omitempty"`
}

// Trend is the two-point direction of the retained window.
type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

// Stats summarizes the retained window.
type Stats struct {
	Average float64 `json:"average"`
	Last    int     `json:"last"`
	Trend   Trend   `json:"trend"`
}

// Window is a bounded, most-recent-first mood list. Appends prepend and
// evict the oldest entries past the cap. A mutex keeps it safe if access
// ever leaves the single request goroutine, preserving the single-writer
// behavior the stores rely on.
type Window struct {
	mu      sync.Mutex
	cap     int
	entries []Entry
}

// NewWindow builds a window with the given cap; non-positive caps use
// DefaultCap.
func NewWindow(capacity int) *Window {
	if capacity <= 0 {
		capacity = DefaultCap
	}
	return &Window{cap: capacity}
}

// Append prepends the entry and trims past the cap.
func (w *Window) Append(e Entry) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.entries = append([]Entry{e}, w.entries...)
	if len(w.entries) > w.cap {
		w.entries = w.entries[:w.cap]
	}
}

// MergeInsert folds a remotely inserted entry into the front of the
// window, skipping ids already present, then re-trims. Used when a push
// notification reports a row created by another session of the same user.
func (w *Window) MergeInsert(e Entry) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, have := range w.entries {
		if have.ID == e.ID {
			return false
		}
	}
	w.entries = append([]Entry{e}, w.entries...)
	if len(w.entries) > w.cap {
		w.entries = w.entries[:w.cap]
	}
	return true
}

// List returns the retained entries, most recent first.
func (w *Window) List() []Entry {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]Entry, len(w.entries))
	copy(out, w.entries)
	return out
}

// Len returns the number of retained entries.
func (w *Window) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.entries)
}

// Replace swaps the retained entries wholesale (most recent first),
// trimming to the cap. Used when hydrating from the remote store.
func (w *Window) Replace(entries []Entry) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(entries) > w.cap {
		entries = entries[:w.cap]
	}
	w.entries = make([]Entry, len(entries))
	copy(w.entries, entries)
}

// ComputeStats returns window statistics. The average is the arithmetic
// mean of the levels; the trend compares the chronologically last entry
// (front) against the chronologically first (back) of the retained
// window. An empty window yields the zero stats with a stable trend.
func (w *Window) ComputeStats() Stats {
	w.mu.Lock()
	defer w.mu.Unlock()
	return computeStats(w.entries)
}

// ComputeStats is the pure form over a most-recent-first slice.
func ComputeStats(entries []Entry) Stats {
	return computeStats(entries)
}

func computeStats(entries []Entry) Stats {
	if len(entries) == 0 {
		return Stats{Trend: TrendStable}
	}
	sum := 0
	for _, e := range entries {
		sum += e.Level
	}
	newest := entries[0]
	oldest := entries[len(entries)-1]

	trend := TrendStable
	switch {
	case newest.Level > oldest.Level:
		trend = TrendUp
	case newest.Level < oldest.Level:
		trend = TrendDown
	}

	return Stats{
		Average: float64(sum) / float64(len(entries)),
		Last:    newest.Level,
		Trend:   trend,
	}
}

// ClampLevel forces a mood level into the valid 1..5 range.
func ClampLevel(level int) int {
	if level < 1 {
		return 1
	}
	if level > 5 {
		return 5
	}
	return level
}
