//go:build ebiten

package ui

import (
	"image/color"
	"math"

	"watercolor/internal/core"
	"watercolor/internal/render"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type waterFieldProvider interface {
	WaterField() []float64
}

type velocityProvider interface {
	Velocity(x, y int) (float64, float64)
}

type paperFieldProvider interface {
	PaperHeightField() []float64
}

// waterOverlayDepth is the depth drawn at full tint.
const waterOverlayDepth = 0.5

// Overlay draws optional diagnostic layers over the canvas: F1 water depth,
// F2 velocity arrows, F3 paper height.
type Overlay struct {
	canvas core.Canvas
	scale  int

	showWater    bool
	showVelocity bool
	showPaper    bool

	layer *ebiten.Image
	buf   []byte
	pixel *ebiten.Image

	samples    []arrowSample
	sampleSpan float64
	sampleSize core.Size
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(canvas core.Canvas, scale int) *Overlay {
	o := &Overlay{canvas: canvas, scale: max(scale, 1)}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update toggles layers from the function keys.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		o.showWater = !o.showWater
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF2) {
		o.showVelocity = !o.showVelocity
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		o.showPaper = !o.showPaper
	}
}

// Draw renders the enabled layers onto screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	size := o.canvas.Size()
	if size.Cells() == 0 {
		return
	}
	if o.showPaper {
		if p, ok := o.canvas.(paperFieldProvider); ok && o.prepareLayer(size) {
			render.FillGrayRGBA(o.buf, p.PaperHeightField())
			o.blitLayer(screen)
		}
	}
	if o.showWater {
		if p, ok := o.canvas.(waterFieldProvider); ok && o.prepareLayer(size) {
			render.FillFieldRGBA(o.buf, p.WaterField(), 0, waterOverlayDepth, color.RGBA{R: 40, G: 110, B: 220, A: 170})
			o.blitLayer(screen)
		}
	}
	if o.showVelocity {
		if p, ok := o.canvas.(velocityProvider); ok {
			o.drawVelocity(screen, p, size)
		}
	}
}

func (o *Overlay) prepareLayer(size core.Size) bool {
	if o.layer == nil || o.layer.Bounds().Dx() != size.W || o.layer.Bounds().Dy() != size.H {
		o.layer = ebiten.NewImage(size.W, size.H)
	}
	if len(o.buf) != 4*size.Cells() {
		o.buf = make([]byte, 4*size.Cells())
	}
	return true
}

func (o *Overlay) blitLayer(screen *ebiten.Image) {
	o.layer.WritePixels(o.buf)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(o.scale), float64(o.scale))
	screen.DrawImage(o.layer, op)
}

func (o *Overlay) drawVelocity(screen *ebiten.Image, provider velocityProvider, size core.Size) {
	if o.sampleSize != size || len(o.samples) == 0 {
		o.samples, o.sampleSpan = arrowGrid(size, o.scale)
		o.sampleSize = size
	}

	const (
		calmThreshold = 0.02
		maxSpeed      = 2.0
		headAngle     = math.Pi / 6
	)
	scale := float64(o.scale)
	minLength := o.sampleSpan * 0.35
	maxLength := o.sampleSpan * 0.7

	for _, s := range o.samples {
		vx, vy := provider.Velocity(s.x, s.y)
		speed := math.Hypot(vx, vy)
		if speed < calmThreshold {
			continue
		}
		nx, ny := vx/speed, vy/speed
		t := clamp01(speed / maxSpeed)
		length := minLength + (maxLength-minLength)*math.Sqrt(t)
		head := math.Min(length*0.3, scale*4.5)
		tail := length * 0.4
		tipX, tipY := s.sx+nx*(length-tail), s.sy+ny*(length-tail)
		thickness := math.Max(scale*(0.65+0.4*t), 1)

		col := speedColor(t)
		o.drawLine(screen, s.sx-nx*tail, s.sy-ny*tail, tipX-nx*head, tipY-ny*head, thickness, col)
		angle := math.Atan2(ny, nx)
		o.drawLine(screen, tipX, tipY, tipX-math.Cos(angle+headAngle)*head, tipY-math.Sin(angle+headAngle)*head, thickness*0.85, col)
		o.drawLine(screen, tipX, tipY, tipX-math.Cos(angle-headAngle)*head, tipY-math.Sin(angle-headAngle)*head, thickness*0.85, col)
	}
}

func (o *Overlay) drawLine(screen *ebiten.Image, x1, y1, x2, y2, thickness float64, col color.RGBA) {
	dx, dy := x2-x1, y2-y1
	length := math.Hypot(dx, dy)
	if length <= 1e-4 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(length, thickness)
	op.GeoM.Translate(0, -thickness/2)
	op.GeoM.Rotate(math.Atan2(dy, dx))
	op.GeoM.Translate(x1, y1)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}
