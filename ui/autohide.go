package ui

import (
	"sync"
	"time"
)

// autoHide sequences the overlay's hide timer. Each arm invalidates
// every earlier schedule, including fires already queued but not yet
// run, so a volume event landing between the timer firing and the UI
// callback executing cannot hide a freshly revealed overlay.
type autoHide struct {
	mu    sync.Mutex
	gen   int
	timer *time.Timer
}

// arm schedules fire after d, cancelling any previous schedule. fire
// receives a generation token; act only if valid still accepts it.
func (h *autoHide) arm(d time.Duration, fire func(gen int)) {
	h.mu.Lock()
	h.gen++
	gen := h.gen
	if h.timer != nil {
		h.timer.Stop()
	}
	h.timer = time.AfterFunc(d, func() { fire(gen) })
	h.mu.Unlock()
}

// valid reports whether gen belongs to the most recent arm.
func (h *autoHide) valid(gen int) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return gen == h.gen
}
