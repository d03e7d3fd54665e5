// Package input listens for volume keys on raw Linux input devices.
//
// It reads evdev key events straight from /dev/input/event* so the
// applet works on X11, Wayland, and bare consoles alike. Hardware
// volume keys always trigger; Up/Down/M trigger only while ALT is held
// on any device. Reading event devices requires membership in the
// "input" group (see pkg/service for the udev rule that grants it).
package input

// Linux evdev event types and key codes (input-event-codes.h).
const (
	evKey = 0x01

	keyM          = 50
	keyLeftAlt    = 56
	keyRightAlt   = 100
	keyUp         = 103
	keyDown       = 108
	keyMute       = 113
	keyVolumeDown = 114
	keyVolumeUp   = 115

	keyA = 30
	keyZ = 44
)

// Key event values as reported by the kernel.
const (
	valueRelease = 0
	valuePress   = 1
	valueHold    = 2
)

// Action is a volume command decoded from key events.
type Action int

const (
	ActionVolumeUp Action = iota
	ActionVolumeDown
	ActionMuteToggle
)

// String returns the action name for logging.
func (a Action) String() string {
	switch a {
	case ActionVolumeUp:
		return "volume-up"
	case ActionVolumeDown:
		return "volume-down"
	case ActionMuteToggle:
		return "mute-toggle"
	default:
		return "unknown"
	}
}
