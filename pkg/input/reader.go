package input

import "log/slog"

// Event is a decoded evdev event. Only EV_KEY events reach the
// dispatcher; everything else is dropped at the read loop.
type Event struct {
	Type  uint16
	Code  uint16
	Value int32
}

// Handler receives decoded, rate-limited volume actions.
type Handler func(Action)

// Dispatcher turns raw key events into volume actions. One dispatcher
// is shared by all device readers so that modifier state and rate
// limits span devices.
type Dispatcher struct {
	mods    *ModifierState
	rate    *RateLimiter
	handler Handler
}

// NewDispatcher creates a dispatcher. Nil mods or rate select fresh
// defaults.
func NewDispatcher(mods *ModifierState, rate *RateLimiter, handler Handler) *Dispatcher {
	if mods == nil {
		mods = NewModifierState()
	}
	if rate == nil {
		rate = NewRateLimiter(0, 0)
	}
	return &Dispatcher{mods: mods, rate: rate, handler: handler}
}

// Handle processes one event. ALT state updates bypass the rate
// limiter; actions fire on press and hold, never on release.
func (d *Dispatcher) Handle(ev Event) {
	if ev.Type != evKey {
		return
	}

	if ev.Code == keyLeftAlt || ev.Code == keyRightAlt {
		switch ev.Value {
		case valuePress:
			d.mods.PressAlt()
		case valueRelease:
			d.mods.ReleaseAlt()
		}
		return
	}

	if ev.Value != valuePress && ev.Value != valueHold {
		return
	}

	switch ev.Code {
	case keyVolumeUp:
		d.emit(ActionVolumeUp)
	case keyVolumeDown:
		d.emit(ActionVolumeDown)
	case keyMute:
		d.emit(ActionMuteToggle)
	case keyUp:
		if d.mods.AltActive() {
			d.emit(ActionVolumeUp)
		}
	case keyDown:
		if d.mods.AltActive() {
			d.emit(ActionVolumeDown)
		}
	case keyM:
		if d.mods.AltActive() {
			d.emit(ActionMuteToggle)
		}
	}
}

func (d *Dispatcher) emit(a Action) {
	if !d.rate.Allow(a) {
		return
	}
	slog.Debug("key action", "action", a)
	if d.handler != nil {
		d.handler(a)
	}
}
