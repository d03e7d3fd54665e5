// Package osd holds the applet's core: it turns key actions into mixer
// calls and tells the UI what to display.
package osd

import (
	"log/slog"
	"sync"

	"github.com/techtimejourney/vosd/pkg/input"
)

// Volumer is the slice of the mixer the engine needs. *mixer.Mixer
// satisfies it; tests use a fake.
type Volumer interface {
	State() (volume int, muted bool)
	ChangeVolume(delta int) (int, error)
	ToggleMute() error
}

// Engine tracks volume state and drives the mixer. UI layers subscribe
// through the On* callbacks; every callback fires after the state under
// the mutex is already updated.
type Engine struct {
	mu     sync.RWMutex
	step   int
	volume int
	muted  bool
	mixer  Volumer

	// Callbacks for UI updates.
	OnVolume func(volume int)
	OnMuted  func()
	OnError  func(err error)
}

// DefaultStep is the volume change per key press, in percent.
const DefaultStep = 5

// NewEngine creates an engine. A step outside 1..50 falls back to
// DefaultStep.
func NewEngine(m Volumer, step int) *Engine {
	if step < 1 || step > 50 {
		step = DefaultStep
	}
	return &Engine{step: step, mixer: m}
}

// Refresh re-reads mixer state and notifies the UI.
func (e *Engine) Refresh() {
	volume, muted := e.mixer.State()

	e.mu.Lock()
	e.volume = volume
	e.muted = muted
	e.mu.Unlock()

	if muted {
		e.notifyMuted()
	} else {
		e.notifyVolume(volume)
	}
}

// VolumeUp raises volume on all sinks by one step.
func (e *Engine) VolumeUp() {
	e.change(e.Step())
}

// VolumeDown lowers volume on all sinks by one step.
func (e *Engine) VolumeDown() {
	e.change(-e.Step())
}

func (e *Engine) change(delta int) {
	volume, err := e.mixer.ChangeVolume(delta)
	if err != nil {
		slog.Warn("volume change failed", "delta", delta, "err", err)
		e.notifyError(err)
		return
	}

	e.mu.Lock()
	e.volume = volume
	e.muted = false
	e.mu.Unlock()

	e.notifyVolume(volume)
}

// ToggleMute toggles mute on all sinks and re-reads the resulting
// state, since other sinks may disagree with the one we flipped.
func (e *Engine) ToggleMute() {
	if err := e.mixer.ToggleMute(); err != nil {
		slog.Warn("mute toggle failed", "err", err)
		e.notifyError(err)
		return
	}
	e.Refresh()
}

// HandleAction dispatches a decoded key action. Safe to call from any
// goroutine.
func (e *Engine) HandleAction(a input.Action) {
	switch a {
	case input.ActionVolumeUp:
		e.VolumeUp()
	case input.ActionVolumeDown:
		e.VolumeDown()
	case input.ActionMuteToggle:
		e.ToggleMute()
	}
}

// Volume returns the last known overall volume.
func (e *Engine) Volume() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.volume
}

// Muted returns whether all sinks were muted at last read.
func (e *Engine) Muted() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.muted
}

// Step returns the configured volume step.
func (e *Engine) Step() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.step
}

func (e *Engine) notifyVolume(v int) {
	if e.OnVolume != nil {
		e.OnVolume(v)
	}
}

func (e *Engine) notifyMuted() {
	if e.OnMuted != nil {
		e.OnMuted()
	}
}

func (e *Engine) notifyError(err error) {
	if e.OnError != nil {
		e.OnError(err)
	}
}
