// Package theme defines the built-in OSD color themes.
//
// A theme carries every color the overlay draws: the panel gradient
// and border, the label, and the gloss bar's frame, fill, and
// highlight. Themes are selected by name; resolution order is CLI
// flag, then the OSD_THEME environment variable, then the settings
// file, then the default.
package theme

import (
	"image/color"
	"log/slog"
	"sort"
	"strings"
)

// Default is the theme used when nothing else is configured.
const Default = "dark"

// EnvVar overrides the settings file but not the CLI flag.
const EnvVar = "OSD_THEME"

// Theme is a complete OSD palette.
type Theme struct {
	Name string

	// Panel background gradient (top to bottom) and chrome.
	PanelTop    color.NRGBA
	PanelMid    color.NRGBA
	PanelBottom color.NRGBA
	PanelBorder color.NRGBA
	Label       color.NRGBA

	// Gloss bar colors.
	FrameTop    color.NRGBA
	FrameMid    color.NRGBA
	FrameBottom color.NRGBA
	Outline     color.NRGBA
	Fill        color.NRGBA
	GlossStart  color.NRGBA
	GlossEnd    color.NRGBA

	Radius float32
	Shadow color.NRGBA
}

func rgb(r, g, b uint8) color.NRGBA     { return color.NRGBA{R: r, G: g, B: b, A: 0xff} }
func rgba(r, g, b, a uint8) color.NRGBA { return color.NRGBA{R: r, G: g, B: b, A: a} }

var themes = map[string]Theme{
	// Sleek dark theme (default).
	"dark": {
		Name:        "dark",
		PanelTop:    rgb(0x14, 0x14, 0x14),
		PanelMid:    rgb(0x0f, 0x0f, 0x0f),
		PanelBottom: rgb(0x0a, 0x0a, 0x0a),
		PanelBorder: rgb(0x26, 0x26, 0x26),
		Label:       rgb(0xf2, 0xf2, 0xf2),
		FrameTop:    rgb(0x14, 0x14, 0x14),
		FrameMid:    rgb(0x0f, 0x0f, 0x0f),
		FrameBottom: rgb(0x0b, 0x0b, 0x0b),
		Outline:     rgb(0x20, 0x20, 0x20),
		Fill:        rgb(0x00, 0x00, 0x00),
		GlossStart:  rgba(255, 255, 255, 30),
		GlossEnd:    rgba(255, 255, 255, 0),
		Radius:      14,
		Shadow:      rgba(0, 0, 0, 200),
	},

	// Futuristic blue / cyber look.
	"blue": {
		Name:        "blue",
		PanelTop:    rgb(0x0a, 0x16, 0x25),
		PanelMid:    rgb(0x08, 0x15, 0x29),
		PanelBottom: rgb(0x06, 0x10, 0x21),
		PanelBorder: rgb(0x1b, 0x6b, 0xff),
		Label:       rgb(0x9b, 0xd6, 0xff),
		FrameTop:    rgb(0x0b, 0x22, 0x3a),
		FrameMid:    rgb(0x0a, 0x1a, 0x31),
		FrameBottom: rgb(0x08, 0x15, 0x29),
		Outline:     rgb(0x1f, 0x3d, 0x66),
		Fill:        rgb(0x00, 0xb7, 0xff),
		GlossStart:  rgba(160, 220, 255, 70),
		GlossEnd:    rgba(160, 220, 255, 0),
		Radius:      14,
		Shadow:      rgba(0, 96, 196, 170),
	},

	// Grey, worn-out, industrial.
	"grey": {
		Name:        "grey",
		PanelTop:    rgb(0x33, 0x33, 0x33),
		PanelMid:    rgb(0x2a, 0x2a, 0x2a),
		PanelBottom: rgb(0x1f, 0x1f, 0x1f),
		PanelBorder: rgb(0x3a, 0x3a, 0x3a),
		Label:       rgb(0xde, 0xde, 0xde),
		FrameTop:    rgb(0x3a, 0x3a, 0x3a),
		FrameMid:    rgb(0x2b, 0x2b, 0x2b),
		FrameBottom: rgb(0x24, 0x24, 0x24),
		Outline:     rgb(0x4a, 0x4a, 0x4a),
		Fill:        rgb(0x2a, 0x2a, 0x2a),
		GlossStart:  rgba(255, 255, 255, 25),
		GlossEnd:    rgba(255, 255, 255, 0),
		Radius:      14,
		Shadow:      rgba(0, 0, 0, 180),
	},

	// Warm wood-like feel.
	"wood": {
		Name:        "wood",
		PanelTop:    rgb(0x8b, 0x5a, 0x2b),
		PanelMid:    rgb(0x7a, 0x4a, 0x21),
		PanelBottom: rgb(0x52, 0x33, 0x11),
		PanelBorder: rgb(0x3b, 0x22, 0x10),
		Label:       rgb(0xf9, 0xec, 0xda),
		FrameTop:    rgb(0x6b, 0x3f, 0x1c),
		FrameMid:    rgb(0x5a, 0x34, 0x17),
		FrameBottom: rgb(0x4a, 0x2b, 0x12),
		Outline:     rgb(0x3b, 0x22, 0x10),
		Fill:        rgb(0x3b, 0x23, 0x0a),
		GlossStart:  rgba(255, 230, 180, 60),
		GlossEnd:    rgba(255, 230, 180, 0),
		Radius:      14,
		Shadow:      rgba(70, 40, 10, 190),
	},
}

// Lookup returns the theme with the given name (case-insensitive).
func Lookup(name string) (Theme, bool) {
	t, ok := themes[strings.ToLower(strings.TrimSpace(name))]
	return t, ok
}

// Names returns all theme names, sorted, for help and error text.
func Names() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve picks a theme using the documented precedence: cli flag,
// then environment, then settings file, then Default. A bad flag value
// warns and selects Default outright; bad env or settings values warn
// and fall through to the next source.
func Resolve(cli, env, cfg string) Theme {
	if cli != "" {
		if t, ok := Lookup(cli); ok {
			slog.Info("theme selected", "theme", t.Name, "source", "flag")
			return t
		}
		slog.Warn("unknown theme", "theme", cli, "source", "flag",
			"available", strings.Join(Names(), ", "))
		t, _ := Lookup(Default)
		return t
	}
	for _, candidate := range []struct {
		value  string
		source string
	}{
		{env, "env " + EnvVar},
		{cfg, "settings"},
	} {
		if candidate.value == "" {
			continue
		}
		if t, ok := Lookup(candidate.value); ok {
			slog.Info("theme selected", "theme", t.Name, "source", candidate.source)
			return t
		}
		slog.Warn("unknown theme", "theme", candidate.value, "source", candidate.source,
			"available", strings.Join(Names(), ", "))
	}
	t, _ := Lookup(Default)
	return t
}
