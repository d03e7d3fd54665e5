//go:build !linux

package input

import (
	"context"
	"fmt"
)

// Reader is a no-op on non-Linux platforms; raw evdev access is a
// Linux facility.
type Reader struct {
	dev Device
}

// NewReader creates a stub reader.
func NewReader(dev Device, disp *Dispatcher) *Reader {
	return &Reader{dev: dev}
}

// Run always fails on non-Linux platforms.
func (r *Reader) Run(ctx context.Context) error {
	return fmt.Errorf("input device reading is only supported on linux")
}
