//go:build linux && cgo

package hotplug

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jochenvg/go-udev"
)

// debounce window: plugging a keyboard in fires a burst of udev events
// for the same physical device.
const settleDelay = 500 * time.Millisecond

// Watcher monitors udev for input devices coming and going, so the
// applet can pick up a keyboard plugged in after startup.
type Watcher struct {
	// OnChange fires (debounced) after an input event device was added
	// or removed.
	OnChange func()
}

// NewWatcher creates a hotplug watcher.
func NewWatcher(onChange func()) *Watcher {
	return &Watcher{OnChange: onChange}
}

// Run blocks monitoring udev events until the context is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	u := udev.Udev{}
	m := u.NewMonitorFromNetlink("udev")
	if err := m.FilterAddMatchSubsystem("input"); err != nil {
		return err
	}

	done := make(chan struct{})
	ch, err := m.DeviceChan(done)
	if err != nil {
		return err
	}
	go func() {
		<-ctx.Done()
		close(done)
	}()

	var settle *time.Timer
	for d := range ch {
		if d == nil {
			continue
		}
		action := d.Action()
		if action != "add" && action != "remove" {
			continue
		}
		// Only event nodes matter; ignore js*, mouse*, and the parent
		// input device entries.
		if !strings.Contains(d.Syspath(), "/event") {
			continue
		}
		slog.Info("input device change", "action", action, "syspath", d.Syspath())
		if settle != nil {
			settle.Stop()
		}
		settle = time.AfterFunc(settleDelay, func() {
			if w.OnChange != nil {
				w.OnChange()
			}
		})
	}
	if settle != nil {
		settle.Stop()
	}
	return nil
}
