// Package hotplug watches udev for input devices appearing or
// disappearing, letting the applet attach to keyboards plugged in
// after startup. Without libudev (non-Linux or CGO disabled) the
// watcher is a no-op and devices are discovered once at startup only.
package hotplug
