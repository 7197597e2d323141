package reminder

import (
	"fmt"
	"sync"
	"time"
)

// dedupeLog prevents sending more than one reminder to the same member on the
// same calendar day, across scheduled and manual runs. Entries older than 24h
// are evicted on every prune so the map stays bounded by one day of traffic.
type dedupeLog struct {
	mu      sync.Mutex
	entries map[string]time.Time
}

func newDedupeLog() *dedupeLog {
	return &dedupeLog{entries: make(map[string]time.Time)}
}

func dedupeKey(memberID uint, day time.Time) string {
	return fmt.Sprintf("%d-%s", memberID, day.Format("2006-01-02"))
}

// Seen reports whether a send is already recorded for (member, day).
func (d *dedupeLog) Seen(memberID uint, now time.Time) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	_, seen := d.entries[dedupeKey(memberID, now)]
	return seen
}

// Mark records a delivered (member, day) send. Only successful dispatches are
// marked, so a failed send stays eligible for a later run the same day.
func (d *dedupeLog) Mark(memberID uint, now time.Time) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.entries[dedupeKey(memberID, now)] = now
}

// Prune drops entries older than 24 hours.
func (d *dedupeLog) Prune(now time.Time) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for key, at := range d.entries {
		if now.Sub(at) > 24*time.Hour {
			delete(d.entries, key)
		}
	}
}

func (d *dedupeLog) len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.entries)
}
