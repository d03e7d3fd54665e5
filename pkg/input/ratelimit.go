package input

import (
	"sync"
	"time"
)

// Default minimum gaps between emitted actions. Key repeat on most
// keyboards fires every ~30ms, which would hammer pactl without this.
const (
	defaultVolumeGap = 80 * time.Millisecond
	defaultMuteGap   = 200 * time.Millisecond
)

// RateLimiter throttles action emission. Modifier state changes are
// never rate limited; only decoded actions pass through here.
type RateLimiter struct {
	mu   sync.Mutex
	last map[Action]time.Time
	gaps map[Action]time.Duration
	now  func() time.Time
}

// NewRateLimiter creates a limiter with the given gaps. Zero values
// select the defaults (80ms for volume steps, 200ms for mute).
func NewRateLimiter(volumeGap, muteGap time.Duration) *RateLimiter {
	if volumeGap <= 0 {
		volumeGap = defaultVolumeGap
	}
	if muteGap <= 0 {
		muteGap = defaultMuteGap
	}
	return &RateLimiter{
		last: make(map[Action]time.Time),
		gaps: map[Action]time.Duration{
			ActionVolumeUp:   volumeGap,
			ActionVolumeDown: volumeGap,
			ActionMuteToggle: muteGap,
		},
		now: time.Now,
	}
}

// Allow reports whether the action may fire now, and if so records the
// emission time.
func (r *RateLimiter) Allow(a Action) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	if last, ok := r.last[a]; ok && now.Sub(last) < r.gaps[a] {
		return false
	}
	r.last[a] = now
	return true
}
