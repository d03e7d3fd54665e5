// Package ui provides the Fyne-based OSD overlay for vosd.
package ui

import (
	"fmt"
	"log/slog"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"

	"github.com/techtimejourney/vosd/pkg/osd"
	"github.com/techtimejourney/vosd/pkg/theme"
)

const (
	fadeDuration = 260 * time.Millisecond

	osdWidth  = 380
	osdHeight = 130
)

// App is the OSD overlay application. It owns the Fyne lifecycle; the
// engine pushes volume updates in through callbacks and the overlay
// fades in, shows the state, and fades back out after the auto-hide
// delay.
type App struct {
	fyneApp  fyne.App
	window   fyne.Window
	engine   *osd.Engine
	th       theme.Theme
	autohide time.Duration

	// UI components
	chrome *panelChrome
	label  *canvas.Text
	bar    *GlossBar

	trayMenu   *fyne.Menu
	trayStatus *fyne.MenuItem

	// Fade/auto-hide state; touched only on the UI goroutine.
	hide    autoHide
	anim    *fyne.Animation
	opacity float32
	shown   bool

	// OnThemeChange fires when the user picks a theme from the tray
	// menu, so the caller can persist it.
	OnThemeChange func(name string)
}

// New creates the OSD application.
func New(engine *osd.Engine, th theme.Theme, autohide time.Duration) *App {
	a := &App{
		fyneApp:  app.NewWithID("net.techtimejourney.vosd"),
		engine:   engine,
		th:       th,
		autohide: autohide,
	}

	// A splash window is frameless and stays on top, which is exactly
	// what an OSD wants. Fall back to a plain window elsewhere.
	if drv, ok := a.fyneApp.Driver().(desktop.Driver); ok {
		a.window = drv.CreateSplashWindow()
	} else {
		a.window = a.fyneApp.NewWindow("Volume OSD")
	}

	a.buildUI()
	a.bindEvents()
	a.setupTray()
	return a
}

// Run starts the overlay and blocks until quit. The initial state is
// shown once, as a "the applet is alive" cue.
func (a *App) Run() {
	a.window.SetCloseIntercept(func() {
		a.window.Hide()
	})

	go func() {
		// Give the event loop a moment to come up before the first
		// refresh triggers a show.
		time.Sleep(200 * time.Millisecond)
		a.engine.Refresh()
	}()

	a.fyneApp.Run()
}

// Quit stops the Fyne event loop.
func (a *App) Quit() {
	a.fyneApp.Quit()
}

func (a *App) buildUI() {
	a.chrome = newPanelChrome(a.th)

	a.label = canvas.NewText("Volume: ?", a.th.Label)
	a.label.TextSize = 26
	a.label.TextStyle = fyne.TextStyle{Bold: true}
	a.label.Alignment = fyne.TextAlignCenter

	a.bar = NewGlossBar(a.th)

	inner := container.NewPadded(container.NewVBox(
		a.label,
		a.bar,
	))

	a.window.SetContent(a.chrome.wrap(inner))
	a.window.Resize(fyne.NewSize(osdWidth, osdHeight))
	a.window.CenterOnScreen()
}

// statusLabel is the text shown both on the overlay and in the tray
// readout.
func statusLabel(volume int, muted bool) string {
	if muted {
		return "Muted"
	}
	return fmt.Sprintf("Volume: %d%%", volume)
}

func (a *App) bindEvents() {
	a.engine.OnVolume = func(volume int) {
		fyne.Do(func() {
			a.label.Text = statusLabel(volume, false)
			a.label.Refresh()
			a.bar.SetValue(volume)
			a.updateTray(a.label.Text)
			a.reveal()
		})
	}

	a.engine.OnMuted = func() {
		fyne.Do(func() {
			a.label.Text = statusLabel(0, true)
			a.label.Refresh()
			a.bar.SetValue(0)
			a.updateTray(a.label.Text)
			a.reveal()
		})
	}

	a.engine.OnError = func(err error) {
		// The OSD has no business popping dialogs; the log is enough.
		slog.Warn("mixer error", "err", err)
	}
}

func (a *App) setupTray() {
	desk, ok := a.fyneApp.(desktop.App)
	if !ok {
		return
	}

	muteItem := fyne.NewMenuItem("Toggle Mute", func() {
		go a.engine.ToggleMute()
	})

	var themeItems []*fyne.MenuItem
	for _, name := range theme.Names() {
		name := name
		themeItems = append(themeItems, fyne.NewMenuItem(name, func() {
			th, _ := theme.Lookup(name)
			fyne.Do(func() { a.applyTheme(th) })
			if a.OnThemeChange != nil {
				a.OnThemeChange(name)
			}
		}))
	}
	themeMenu := fyne.NewMenuItem("Theme", nil)
	themeMenu.ChildMenu = fyne.NewMenu("", themeItems...)

	showItem := fyne.NewMenuItem("Show Volume", func() {
		go a.engine.Refresh()
	})

	a.trayStatus = fyne.NewMenuItem(statusLabel(a.engine.Volume(), a.engine.Muted()), nil)
	a.trayStatus.Disabled = true

	a.trayMenu = fyne.NewMenu("vosd", a.trayStatus, showItem, muteItem, themeMenu)
	desk.SetSystemTrayMenu(a.trayMenu)
}

// updateTray keeps the disabled readout item in sync with the overlay.
func (a *App) updateTray(text string) {
	if a.trayStatus == nil {
		return
	}
	a.trayStatus.Label = text
	a.trayMenu.Refresh()
}

// applyTheme recolors the whole overlay. Runs on the UI goroutine.
func (a *App) applyTheme(th theme.Theme) {
	a.th = th
	a.chrome.apply(th, a.opacity)
	a.label.Color = scaleAlpha(th.Label, a.opacity)
	a.label.Refresh()
	a.bar.SetTheme(th)
	slog.Info("theme applied", "theme", th.Name)
}

// reveal shows the overlay with a fade-in and (re)arms the auto-hide
// timer. Called on every volume event, so mid-fade events restart the
// cycle from the current opacity.
func (a *App) reveal() {
	if !a.shown {
		a.window.Show()
		a.shown = true
	}
	a.fade(a.opacity, 1, nil)

	// Generation-tokened so a conceal queued before a re-arm is
	// dropped instead of hiding the fresh reveal.
	a.hide.arm(a.autohide, func(gen int) {
		fyne.Do(func() {
			if a.hide.valid(gen) {
				a.conceal()
			}
		})
	})
}

// conceal fades the overlay out and hides the window when done.
func (a *App) conceal() {
	a.fade(a.opacity, 0, func() {
		a.window.Hide()
		a.shown = false
	})
}

// fade animates overlay opacity between two values. Equal endpoints
// skip the animation but still invoke done, so hide semantics hold
// when there is nothing to animate.
func (a *App) fade(from, to float32, done func()) {
	if a.anim != nil {
		a.anim.Stop()
	}
	if from == to {
		a.setOpacity(to)
		if done != nil {
			done()
		}
		return
	}
	a.anim = fyne.NewAnimation(fadeDuration, func(p float32) {
		a.setOpacity(from + (to-from)*p)
		if p >= 1 && done != nil {
			done()
		}
	})
	a.anim.Curve = fyne.AnimationEaseOut
	a.anim.Start()
}

func (a *App) setOpacity(p float32) {
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	a.opacity = p

	a.chrome.apply(a.th, p)

	a.label.Color = scaleAlpha(a.th.Label, p)
	a.label.Refresh()

	a.bar.SetOpacity(p)
}
