//go:build ebiten

package render

import (
	"github.com/hajimehoshi/ebiten/v2"

	"watercolor/internal/core"
)

// CanvasPainter uploads a canvas render into a single ebiten image.
type CanvasPainter struct {
	w, h int
	img  *ebiten.Image
	buf  []byte
}

// NewCanvasPainter allocates a painter for a w*h canvas.
func NewCanvasPainter(w, h int) *CanvasPainter {
	return &CanvasPainter{w: w, h: h, img: ebiten.NewImage(w, h), buf: make([]byte, 4*w*h)}
}

// Blit composites the canvas and draws it scaled onto dst.
func (cp *CanvasPainter) Blit(dst *ebiten.Image, canvas core.Canvas, scale int) {
	if s := canvas.Size(); s.W != cp.w || s.H != cp.h {
		return
	}
	cp.buf = canvas.RenderTo(cp.buf)
	cp.img.WritePixels(cp.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(cp.img, op)
}

// Size returns the dimensions of the underlying image.
func (cp *CanvasPainter) Size() (int, int) { return cp.w, cp.h }
