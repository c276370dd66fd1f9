// Package reveal implements the hidden admin-link easter egg as an explicit
// trigger predicate: a fixed number of clicks inside a bounded time window
// flips a cosmetic flag. This is a UI affordance only and must never guard
// anything that needs real authorization.
package reveal

import (
	"sync"
	"time"
)

const (
	DefaultClicks = 5
	DefaultWindow = 3 * time.Second
)

// Tracker counts clicks per key (typically a session or client id) and
// reports when the reveal threshold is crossed.
type Tracker struct {
	clicks int
	window time.Duration

	mu      sync.Mutex
	history map[string][]time.Time
}

func NewTracker(clicks int, window time.Duration) *Tracker {
	if clicks <= 0 {
		clicks = DefaultClicks
	}
	if window <= 0 {
		window = DefaultWindow
	}
	return &Tracker{
		clicks:  clicks,
		window:  window,
		history: make(map[string][]time.Time),
	}
}

// Click records a click for key at time now and reports whether the last
// N clicks all landed inside the window. Clicks older than the window are
// discarded, so slow clicking never accumulates toward the threshold.
func (t *Tracker) Click(key string, now time.Time) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	cutoff := now.Add(-t.window)
	t.sweep(cutoff)

	recent := t.history[key][:0]
	for _, ts := range t.history[key] {
		if ts.After(cutoff) {
			recent = append(recent, ts)
		}
	}
	recent = append(recent, now)
	t.history[key] = recent

	if len(recent) >= t.clicks {
		delete(t.history, key)
		return true
	}
	return false
}

// sweep drops keys whose clicks have all aged past the cutoff, so one-off
// visitors do not pin map entries forever. Clicks are appended in order, so
// the newest timestamp is last.
func (t *Tracker) sweep(cutoff time.Time) {
	for key, clicks := range t.history {
		if len(clicks) == 0 || !clicks[len(clicks)-1].After(cutoff) {
			delete(t.history, key)
		}
	}
}
