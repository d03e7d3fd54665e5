package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"

	"github.com/techtimejourney/vosd/pkg/theme"
)

// panelChrome draws the OSD backdrop: a shadow halo behind the panel,
// the vertical background gradient split at the theme's mid color, and
// the rounded border on top. Fyne gradients are two-stop, so the
// three-stop palette becomes two gradients stacked top/bottom.
type panelChrome struct {
	shadow *canvas.Rectangle
	top    *canvas.LinearGradient
	bottom *canvas.LinearGradient
	border *canvas.Rectangle
}

func newPanelChrome(th theme.Theme) *panelChrome {
	c := &panelChrome{
		shadow: canvas.NewRectangle(th.Shadow),
		top:    canvas.NewVerticalGradient(th.PanelTop, th.PanelMid),
		bottom: canvas.NewVerticalGradient(th.PanelMid, th.PanelBottom),
		border: canvas.NewRectangle(color.Transparent),
	}
	c.shadow.CornerRadius = 18
	c.border.CornerRadius = 16
	c.border.StrokeWidth = 1
	c.apply(th, 1)
	return c
}

// wrap layers the chrome around the overlay content: shadow at full
// size, gradient and border inset by the standard padding so the
// shadow peeks out as a halo.
func (c *panelChrome) wrap(content fyne.CanvasObject) fyne.CanvasObject {
	backdrop := container.NewStack(
		container.NewGridWithRows(2, c.top, c.bottom),
		c.border,
	)
	return container.NewStack(
		c.shadow,
		container.NewPadded(container.NewStack(backdrop, content)),
	)
}

// apply recolors the chrome for th at the given opacity.
func (c *panelChrome) apply(th theme.Theme, opacity float32) {
	c.shadow.FillColor = scaleAlpha(th.Shadow, opacity)
	c.top.StartColor = scaleAlpha(th.PanelTop, opacity)
	c.top.EndColor = scaleAlpha(th.PanelMid, opacity)
	c.bottom.StartColor = scaleAlpha(th.PanelMid, opacity)
	c.bottom.EndColor = scaleAlpha(th.PanelBottom, opacity)
	c.border.StrokeColor = scaleAlpha(th.PanelBorder, opacity)

	c.shadow.Refresh()
	c.top.Refresh()
	c.bottom.Refresh()
	c.border.Refresh()
}
