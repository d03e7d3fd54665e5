//go:build !linux || !cgo

package hotplug

import "context"

// Watcher is a no-op without udev support.
type Watcher struct {
	OnChange func()
}

// NewWatcher creates a no-op watcher.
func NewWatcher(onChange func()) *Watcher {
	return &Watcher{OnChange: onChange}
}

// Run blocks until the context is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	<-ctx.Done()
	return nil
}
