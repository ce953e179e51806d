//go:build ebiten

package ui

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"watercolor/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

type parameterProvider interface {
	Parameters() core.ParameterSnapshot
}

var (
	panelBackground = color.RGBA{R: 244, G: 240, B: 230, A: 255}
	labelColor      = color.RGBA{R: 48, G: 44, B: 40, A: 255}
	mutedColor      = color.RGBA{R: 140, G: 134, B: 126, A: 255}
)

// HUD renders the parameter panel to the right of the canvas.
type HUD struct {
	canvas core.Canvas
	width  int
	title  string
	status string

	panel    *ebiten.Image
	pixel    *ebiten.Image
	controls *controlPanel
}

// NewHUD constructs a HUD for the canvas and panel width.
func NewHUD(canvas core.Canvas, width int) *HUD {
	width = max(width, 0)
	h := &HUD{canvas: canvas, width: width, title: "Controls"}
	if name := canvas.Name(); name != "" {
		h.title = fmt.Sprintf("%s%s Controls", strings.ToUpper(name[:1]), name[1:])
	}
	if width > 0 {
		h.pixel = ebiten.NewImage(1, 1)
		h.pixel.Fill(color.White)
	}
	h.controls = newControlPanel(canvas, width)
	return h
}

// Width reports the panel width in screen pixels.
func (h *HUD) Width() int {
	if h == nil {
		return 0
	}
	return h.width
}

// SetStatus sets the line drawn under the title, typically the brush state.
func (h *HUD) SetStatus(s string) {
	if h != nil {
		h.status = s
	}
}

// Update refreshes values from the canvas and handles clicks. panelOffsetX
// is the screen x of the panel's left edge.
func (h *HUD) Update(panelOffsetX int) {
	if h == nil {
		return
	}
	if provider, ok := h.canvas.(parameterProvider); ok {
		h.controls.refresh(provider.Parameters())
	}
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	if mx < panelOffsetX {
		return
	}
	h.controls.click(mx-panelOffsetX, my)
}

// Draw paints the panel at offsetX, matching the scaled canvas height.
func (h *HUD) Draw(screen *ebiten.Image, offsetX int, scale int) {
	if h == nil || h.width <= 0 {
		return
	}
	height := h.canvas.Size().H * max(scale, 1)
	if height <= 0 {
		return
	}
	if h.panel == nil || h.panel.Bounds().Dy() != height {
		h.panel = ebiten.NewImage(h.width, height)
	}
	h.panel.Fill(panelBackground)
	h.drawControls()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func (h *HUD) drawControls() {
	face := basicfont.Face7x13
	y := panelPadding + headerBaseline
	text.Draw(h.panel, h.title, face, panelPadding, y, labelColor)
	if h.status != "" {
		text.Draw(h.panel, h.status, face, panelPadding, y+14, mutedColor)
	}
	if len(h.controls.states) == 0 {
		text.Draw(h.panel, "No adjustable parameters", face, panelPadding, y+infoSpacing, mutedColor)
		return
	}
	for i := range h.controls.states {
		s := &h.controls.states[i]
		baseline := s.top + labelBaseline
		text.Draw(h.panel, s.control.Label, face, panelPadding, baseline, labelColor)

		valueColor := labelColor
		if !s.ok {
			valueColor = mutedColor
		}
		w := text.BoundString(face, s.text).Dx()
		text.Draw(h.panel, s.text, face, s.minus.Min.X-buttonGap-w, baseline, valueColor)

		_, canDec := h.controls.next(i, -1)
		_, canInc := h.controls.next(i, 1)
		h.drawButton(s.minus, "-", canDec)
		h.drawButton(s.plus, "+", canInc)
	}
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled bool) {
	bg := color.RGBA{R: 214, G: 206, B: 192, A: 255}
	fg := labelColor
	if !enabled {
		bg = color.RGBA{R: 232, G: 228, B: 220, A: 255}
		fg = mutedColor
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorScale.ScaleWithColor(bg)
	h.panel.DrawImage(h.pixel, op)

	face := basicfont.Face7x13
	b := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-b.Dx())/2
	y := rect.Min.Y + (rect.Dy()-b.Dy())/2 + b.Dy()
	text.Draw(h.panel, label, face, x, y, fg)
}
