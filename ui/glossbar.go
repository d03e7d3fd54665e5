package ui

import (
	"image/color"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/techtimejourney/vosd/pkg/theme"
)

// GlossBar is a rounded progress bar with a themed frame, fill, and a
// gloss highlight across the upper half.
type GlossBar struct {
	widget.BaseWidget

	mu      sync.Mutex
	value   int // 0..100
	th      theme.Theme
	opacity float32
}

// NewGlossBar creates a bar using the given theme colors.
func NewGlossBar(th theme.Theme) *GlossBar {
	g := &GlossBar{th: th, opacity: 1}
	g.ExtendBaseWidget(g)
	return g
}

// SetValue clamps v to 0..100 and redraws.
func (g *GlossBar) SetValue(v int) {
	if v < 0 {
		v = 0
	}
	if v > 100 {
		v = 100
	}
	g.mu.Lock()
	g.value = v
	g.mu.Unlock()
	g.Refresh()
}

// Value returns the current bar value.
func (g *GlossBar) Value() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.value
}

// SetTheme swaps the palette and redraws.
func (g *GlossBar) SetTheme(th theme.Theme) {
	g.mu.Lock()
	g.th = th
	g.mu.Unlock()
	g.Refresh()
}

// SetOpacity scales all bar colors by p (0..1), used by the fade
// animation.
func (g *GlossBar) SetOpacity(p float32) {
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	g.mu.Lock()
	g.opacity = p
	g.mu.Unlock()
	g.Refresh()
}

func (g *GlossBar) snapshot() (int, theme.Theme, float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.value, g.th, g.opacity
}

// CreateRenderer implements fyne.Widget.
func (g *GlossBar) CreateRenderer() fyne.WidgetRenderer {
	r := &glossBarRenderer{
		bar:         g,
		frameTop:    canvas.NewVerticalGradient(color.Transparent, color.Transparent),
		frameBottom: canvas.NewVerticalGradient(color.Transparent, color.Transparent),
		frame:       canvas.NewRectangle(color.Transparent),
		fill:        canvas.NewRectangle(color.Transparent),
		gloss:       canvas.NewVerticalGradient(color.Transparent, color.Transparent),
	}
	r.Refresh()
	return r
}

type glossBarRenderer struct {
	bar *GlossBar

	// frame gradient (two stacked two-stop gradients around FrameMid)
	// under the rounded outline rectangle.
	frameTop    *canvas.LinearGradient
	frameBottom *canvas.LinearGradient
	frame       *canvas.Rectangle
	fill        *canvas.Rectangle
	gloss       *canvas.LinearGradient

	size fyne.Size
}

func (r *glossBarRenderer) MinSize() fyne.Size {
	return fyne.NewSize(120, 28)
}

func (r *glossBarRenderer) Layout(size fyne.Size) {
	r.size = size
	value, _, _ := r.bar.snapshot()

	half := size.Height / 2
	r.frameTop.Resize(fyne.NewSize(size.Width, half))
	r.frameTop.Move(fyne.NewPos(0, 0))
	r.frameBottom.Resize(fyne.NewSize(size.Width, size.Height-half))
	r.frameBottom.Move(fyne.NewPos(0, half))

	r.frame.Resize(size)
	r.frame.Move(fyne.NewPos(0, 0))

	fillWidth := (size.Width - 4) * float32(value) / 100
	if fillWidth < 0 {
		fillWidth = 0
	}
	r.fill.Resize(fyne.NewSize(fillWidth, size.Height-4))
	r.fill.Move(fyne.NewPos(2, 2))

	glossHeight := size.Height/2 - 4
	if glossHeight < 0 {
		glossHeight = 0
	}
	r.gloss.Resize(fyne.NewSize(size.Width-8, glossHeight))
	r.gloss.Move(fyne.NewPos(4, 4))
}

func (r *glossBarRenderer) Refresh() {
	_, th, opacity := r.bar.snapshot()

	r.frameTop.StartColor = scaleAlpha(th.FrameTop, opacity)
	r.frameTop.EndColor = scaleAlpha(th.FrameMid, opacity)
	r.frameBottom.StartColor = scaleAlpha(th.FrameMid, opacity)
	r.frameBottom.EndColor = scaleAlpha(th.FrameBottom, opacity)

	r.frame.FillColor = color.Transparent
	r.frame.StrokeColor = scaleAlpha(th.Outline, opacity)
	r.frame.StrokeWidth = 1
	r.frame.CornerRadius = th.Radius

	r.fill.FillColor = scaleAlpha(th.Fill, opacity)
	r.fill.CornerRadius = th.Radius - 2

	r.gloss.StartColor = scaleAlpha(th.GlossStart, opacity)
	r.gloss.EndColor = scaleAlpha(th.GlossEnd, opacity)

	r.Layout(r.size)
	canvas.Refresh(r.bar)
}

func (r *glossBarRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.frameTop, r.frameBottom, r.fill, r.gloss, r.frame}
}

func (r *glossBarRenderer) Destroy() {}

// scaleAlpha multiplies a color's alpha by p, leaving RGB untouched.
func scaleAlpha(c color.NRGBA, p float32) color.NRGBA {
	c.A = uint8(float32(c.A) * p)
	return c
}
