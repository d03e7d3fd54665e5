package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/techtimejourney/vosd/pkg/hotplug"
	"github.com/techtimejourney/vosd/pkg/input"
	"github.com/techtimejourney/vosd/pkg/logging"
	"github.com/techtimejourney/vosd/pkg/mixer"
	"github.com/techtimejourney/vosd/pkg/notify"
	"github.com/techtimejourney/vosd/pkg/osd"
	"github.com/techtimejourney/vosd/pkg/theme"
	"github.com/techtimejourney/vosd/pkg/version"
	"github.com/techtimejourney/vosd/ui"
)

// stringList collects repeated -device flags.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func main() {
	var devices stringList
	themeFlag := flag.String("theme", "", "OSD theme: "+strings.Join(theme.Names(), ", "))
	step := flag.Int("step", 0, "volume change per key press in percent (default from settings)")
	autohide := flag.Int("autohide", 0, "OSD auto-hide delay in milliseconds (default from settings)")
	noGUI := flag.Bool("no-gui", false, "no overlay window; report volume via desktop notifications")
	listDevices := flag.Bool("list-devices", false, "list detected keyboard devices and exit")
	flag.Var(&devices, "device", "input device path to listen on (repeatable; default: auto-discover)")
	logLevel := flag.String("log-level", "", "log level: "+logging.LevelNames())
	logFormat := flag.String("log-format", "", "log format: text or json")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.Full())
		return
	}

	settings := osd.LoadSettings()

	level := firstNonEmpty(*logLevel, settings.LogLevel, "info")
	format := firstNonEmpty(*logFormat, settings.LogFormat, "text")
	if err := logging.Setup(logging.Options{Level: level, Format: format, Output: os.Stdout}); err != nil {
		fmt.Fprintf(os.Stderr, "invalid logging config: %v\n", err)
		os.Exit(1)
	}

	if *listDevices {
		found, err := input.FindKeyboards()
		if err != nil {
			slog.Error("device discovery failed", "err", err)
			os.Exit(1)
		}
		for _, d := range found {
			fmt.Printf("%s\t%s\n", d.Path, d.Name)
		}
		return
	}

	if *step > 0 {
		settings.Step = *step
	}
	if *autohide > 0 {
		settings.AutohideMs = *autohide
	}
	if len(devices) > 0 {
		settings.Devices = devices
	}

	th := theme.Resolve(*themeFlag, os.Getenv(theme.EnvVar), settings.Theme)

	engine := osd.NewEngine(mixer.New(nil), settings.Step)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	listener := newListener(ctx, engine, settings.Devices)
	listener.rescan()

	watcher := hotplug.NewWatcher(listener.rescan)
	go func() {
		if err := watcher.Run(ctx); err != nil {
			slog.Warn("hotplug watcher stopped", "err", err)
		}
	}()

	if *noGUI {
		runHeadless(ctx, engine)
		return
	}

	app := ui.New(engine, th, time.Duration(settings.AutohideMs)*time.Millisecond)
	app.OnThemeChange = func(name string) {
		settings.Theme = name
		if err := settings.Save(); err != nil {
			slog.Error("save settings", "err", err)
		}
	}
	app.Run()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// listener owns the per-device reader goroutines. rescan is safe to
// call repeatedly; already-running devices are left alone.
type listener struct {
	ctx      context.Context
	disp     *input.Dispatcher
	explicit []string

	mu      sync.Mutex
	running map[string]bool
}

func newListener(ctx context.Context, engine *osd.Engine, explicit []string) *listener {
	l := &listener{
		ctx:      ctx,
		explicit: explicit,
		running:  make(map[string]bool),
	}
	l.disp = input.NewDispatcher(nil, nil, func(a input.Action) {
		engine.HandleAction(a)
	})
	return l
}

func (l *listener) rescan() {
	devices := l.discover()
	if len(devices) == 0 {
		slog.Warn("no keyboard devices available; volume keys will not work")
		return
	}
	for _, dev := range devices {
		l.attach(dev)
	}
}

func (l *listener) discover() []input.Device {
	if len(l.explicit) > 0 {
		devices := make([]input.Device, 0, len(l.explicit))
		for _, path := range l.explicit {
			devices = append(devices, input.Device{Path: path})
		}
		return devices
	}
	devices, err := input.FindKeyboards()
	if err != nil {
		slog.Warn("device discovery failed", "err", err)
		return nil
	}
	return devices
}

func (l *listener) attach(dev input.Device) {
	l.mu.Lock()
	if l.running[dev.Path] {
		l.mu.Unlock()
		return
	}
	l.running[dev.Path] = true
	l.mu.Unlock()

	go func() {
		if err := input.NewReader(dev, l.disp).Run(l.ctx); err != nil {
			slog.Warn("device reader stopped", "device", dev.Path, "err", err)
		}
		l.mu.Lock()
		delete(l.running, dev.Path)
		l.mu.Unlock()
	}()
}

// runHeadless reports volume through desktop notifications until
// interrupted.
func runHeadless(ctx context.Context, engine *osd.Engine) {
	notifier, err := notify.New()
	if err != nil {
		slog.Warn("notifications unavailable; logging volume changes only", "err", err)
	} else {
		defer notifier.Close() //nolint:errcheck // best-effort close
		engine.OnVolume = func(v int) {
			if err := notifier.Volume(v); err != nil {
				slog.Debug("notify failed", "err", err)
			}
		}
		engine.OnMuted = func() {
			if err := notifier.Muted(); err != nil {
				slog.Debug("notify failed", "err", err)
			}
		}
	}
	engine.Refresh()

	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, os.Interrupt, syscall.SIGTERM)
	select {
	case <-interrupts:
	case <-ctx.Done():
	}
	slog.Info("shutting down")
}
