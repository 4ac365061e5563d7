package analytics

import (
	"sync"
	"time"
)

// viewLimiter caps how many section-view events a single visitor hash can
// submit per window. Timestamps older than the window are pruned on each
// check and by a background sweep.
type viewLimiter struct {
	mu     sync.Mutex
	seen   map[string][]time.Time
	max    int
	window time.Duration
}

func newViewLimiter(max int, window time.Duration) *viewLimiter {
	vl := &viewLimiter{
		seen:   make(map[string][]time.Time),
		max:    max,
		window: window,
	}
	go vl.sweep()
	return vl
}

// allow records one event for key if it is still under the cap.
func (vl *viewLimiter) allow(key string) bool {
	now := time.Now()
	cutoff := now.Add(-vl.window)

	vl.mu.Lock()
	defer vl.mu.Unlock()

	kept := prune(vl.seen[key], cutoff)
	if len(kept) >= vl.max {
		vl.seen[key] = kept
		return false
	}
	vl.seen[key] = append(kept, now)
	return true
}

func prune(stamps []time.Time, cutoff time.Time) []time.Time {
	kept := stamps[:0]
	for _, t := range stamps {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	return kept
}

func (vl *viewLimiter) sweep() {
	ticker := time.NewTicker(vl.window)
	for range ticker.C {
		cutoff := time.Now().Add(-vl.window)
		vl.mu.Lock()
		for key, stamps := range vl.seen {
			kept := prune(stamps, cutoff)
			if len(kept) == 0 {
				delete(vl.seen, key)
			} else {
				vl.seen[key] = kept
			}
		}
		vl.mu.Unlock()
	}
}
