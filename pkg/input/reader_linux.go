//go:build linux

package input

import (
	"context"
	"encoding/binary"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/sys/unix"
)

// rawEvent mirrors struct input_event. Timeval is arch-sized, so the
// encoded layout matches what the kernel writes on this platform.
type rawEvent struct {
	Time  unix.Timeval
	Type  uint16
	Code  uint16
	Value int32
}

// Reader consumes key events from one input device and feeds them to a
// shared dispatcher.
type Reader struct {
	dev  Device
	disp *Dispatcher
}

// NewReader creates a reader for one device.
func NewReader(dev Device, disp *Dispatcher) *Reader {
	return &Reader{dev: dev, disp: disp}
}

// Run opens the device and blocks reading events until the context is
// cancelled or the device goes away (unplugged, revoked). The returned
// error is nil on cancellation.
func (r *Reader) Run(ctx context.Context) error {
	f, err := os.OpenFile(r.dev.Path, os.O_RDONLY, 0)
	if err != nil {
		return fmt.Errorf("open %s: %w", r.dev.Path, err)
	}
	slog.Info("listening for keys", "device", r.dev.Path, "name", r.dev.Name)

	// Reads block; closing the file from here unblocks them.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = f.Close()
		case <-done:
			_ = f.Close()
		}
	}()

	for {
		var raw rawEvent
		if err := binary.Read(f, binary.NativeEndian, &raw); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("read %s: %w", r.dev.Path, err)
		}
		r.disp.Handle(Event{Type: raw.Type, Code: raw.Code, Value: raw.Value})
	}
}
