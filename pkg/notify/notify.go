// Package notify reports volume changes as desktop notifications over
// D-Bus (org.freedesktop.Notifications). It is the fallback surface
// when the applet runs without a GUI: each update replaces the
// previous notification, so key repeat does not stack popups.
package notify

import (
	"fmt"
	"sync"

	"github.com/godbus/dbus/v5"
)

const (
	notifyInterface = "org.freedesktop.Notifications"
	notifyPath      = "/org/freedesktop/Notifications"
	notifyMethod    = notifyInterface + ".Notify"

	appName = "vosd"
)

// Notifier sends volume notifications on the session bus.
type Notifier struct {
	conn *dbus.Conn

	mu     sync.Mutex
	lastID uint32
}

// New connects to the session bus. An error here usually means the
// applet runs outside a desktop session; callers should degrade to
// logging only.
func New() (*Notifier, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, fmt.Errorf("session bus: %w", err)
	}
	return &Notifier{conn: conn}, nil
}

// Volume shows (or replaces) a volume-level notification. The "value"
// hint renders as a progress gauge on servers that support it.
func (n *Notifier) Volume(v int) error {
	return n.send(fmt.Sprintf("Volume: %d%%", v), "audio-volume-high", v)
}

// Muted shows (or replaces) a muted notification.
func (n *Notifier) Muted() error {
	return n.send("Muted", "audio-volume-muted", 0)
}

func (n *Notifier) send(summary, icon string, value int) error {
	n.mu.Lock()
	replaces := n.lastID
	n.mu.Unlock()

	hints := map[string]dbus.Variant{
		"value": dbus.MakeVariant(int32(value)), //nolint:gosec // value is 0..100
	}

	obj := n.conn.Object(notifyInterface, dbus.ObjectPath(notifyPath))
	call := obj.Call(notifyMethod, 0,
		appName,
		replaces,
		icon,
		summary,
		"", // body
		[]string{},
		hints,
		int32(2000), // expire timeout ms
	)
	if call.Err != nil {
		return fmt.Errorf("notify: %w", call.Err)
	}

	var id uint32
	if err := call.Store(&id); err != nil {
		return fmt.Errorf("notify reply: %w", err)
	}
	n.mu.Lock()
	n.lastID = id
	n.mu.Unlock()
	return nil
}

// Close releases the bus connection.
func (n *Notifier) Close() error {
	return n.conn.Close()
}
