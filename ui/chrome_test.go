package ui

import (
	"image/color"
	"testing"

	"fyne.io/fyne/v2/test"

	"github.com/techtimejourney/vosd/pkg/theme"
)

func TestPanelChromeUsesFullPalette(t *testing.T) {
	test.NewApp()
	th, _ := theme.Lookup("wood")
	c := newPanelChrome(th)

	if c.top.StartColor != th.PanelTop || c.top.EndColor != th.PanelMid {
		t.Errorf("top gradient = %v -> %v, want %v -> %v",
			c.top.StartColor, c.top.EndColor, th.PanelTop, th.PanelMid)
	}
	if c.bottom.StartColor != th.PanelMid || c.bottom.EndColor != th.PanelBottom {
		t.Errorf("bottom gradient = %v -> %v, want %v -> %v",
			c.bottom.StartColor, c.bottom.EndColor, th.PanelMid, th.PanelBottom)
	}
	if c.shadow.FillColor != th.Shadow {
		t.Errorf("shadow = %v, want %v", c.shadow.FillColor, th.Shadow)
	}
	if c.border.StrokeColor != th.PanelBorder {
		t.Errorf("border stroke = %v, want %v", c.border.StrokeColor, th.PanelBorder)
	}
}

func TestPanelChromeOpacity(t *testing.T) {
	test.NewApp()
	th, _ := theme.Lookup("dark")
	c := newPanelChrome(th)

	c.apply(th, 0)
	for name, col := range map[string]color.Color{
		"shadow":        c.shadow.FillColor,
		"top start":     c.top.StartColor,
		"bottom end":    c.bottom.EndColor,
		"border stroke": c.border.StrokeColor,
	} {
		if _, _, _, a := col.RGBA(); a != 0 {
			t.Errorf("%s alpha = %d at opacity 0, want 0", name, a)
		}
	}

	c.apply(th, 1)
	if _, _, _, a := c.top.StartColor.RGBA(); a == 0 {
		t.Error("top gradient fully transparent at opacity 1")
	}
}
