package input

import "sync"

// ModifierState tracks ALT across all devices. The count-based scheme
// handles a press on one keyboard released on another.
type ModifierState struct {
	mu       sync.Mutex
	altCount int
}

// NewModifierState creates an empty modifier tracker.
func NewModifierState() *ModifierState {
	return &ModifierState{}
}

// PressAlt records an ALT key press.
func (m *ModifierState) PressAlt() {
	m.mu.Lock()
	m.altCount++
	m.mu.Unlock()
}

// ReleaseAlt records an ALT key release. The count never goes negative,
// so a release without a matching press (e.g. the applet started while
// ALT was held) is harmless.
func (m *ModifierState) ReleaseAlt() {
	m.mu.Lock()
	if m.altCount > 0 {
		m.altCount--
	}
	m.mu.Unlock()
}

// AltActive reports whether any ALT key is currently held.
func (m *ModifierState) AltActive() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.altCount > 0
}
