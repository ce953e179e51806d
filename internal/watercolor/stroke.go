package watercolor

import (
	"fmt"
	"math"
)

// Stroke interpolation.
const (
	stampSpacing    = 0.3
	minStampSpacing = 0.5
	strokeFalloff   = 0.2

	velocityDamping = 0.08
	minStrokeForce  = 0.2
)

// Segment is a stroke from (X0, Y0) to (X1, Y1) in grid cells. A segment
// whose ends coincide stamps once.
type Segment struct {
	X0, Y0 int
	X1, Y1 int
}

// Point returns the degenerate segment at (x, y).
func Point(x, y int) Segment { return Segment{X0: x, Y0: y, X1: x, Y1: y} }

// Mode selects which brush a BrushStroke applies.
type Mode int

const (
	ModePaint Mode = iota
	ModeFade
	ModeBlend
	ModeWater
)

func (m Mode) String() string {
	switch m {
	case ModePaint:
		return "paint"
	case ModeFade:
		return "fade"
	case ModeBlend:
		return "blend"
	case ModeWater:
		return "water"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// BrushStroke bundles the arguments of any brush mode. Fields a mode does
// not use are ignored.
type BrushStroke struct {
	Mode Mode
	Segment

	Size     float64
	Water    float64
	Pigment  float64
	Color    RGB
	Strength float64
	Flow     float64
	Velocity float64
}

// Apply dispatches the stroke to the brush selected by its Mode.
func (e *Engine) Apply(s BrushStroke) {
	switch s.Mode {
	case ModePaint:
		e.ApplyBrushStroke(s.Segment, s.Size, s.Water, s.Pigment, s.Color, s.Velocity)
	case ModeFade:
		e.ApplyFadeBrushStroke(s.Segment, s.Size, s.Strength, s.Velocity)
	case ModeBlend:
		e.ApplyBlendBrushStroke(s.Segment, s.Size, s.Strength, s.Velocity)
	case ModeWater:
		e.ApplyWaterBrushStroke(s.Segment, s.Size, s.Water, s.Flow, s.Velocity)
	}
}

// strokePressure maps pointer speed to stamp pressure: fast strokes leave
// less behind.
func strokePressure(velocity float64) float64 {
	if math.IsNaN(velocity) || velocity < 0 {
		velocity = 0
	}
	return clamp(1/(1+velocityDamping*velocity), minStrokeForce, 1)
}

// walk stamps along seg every max(0.3·size, 0.5) cells. The stamp callback
// receives the attenuation at that point, the segment angle and the
// velocity-derived pressure.
func (e *Engine) walk(seg Segment, size, velocity float64, stamp func(x, y int, atten, angle, pressure float64)) {
	x0, y0 := e.grid.water.Clamp(seg.X0, seg.Y0)
	x1, y1 := e.grid.water.Clamp(seg.X1, seg.Y1)
	pressure := strokePressure(velocity)
	dx, dy := float64(x1-x0), float64(y1-y0)
	length := math.Hypot(dx, dy)
	if length == 0 {
		stamp(x0, y0, 1, 0, pressure)
		return
	}
	angle := math.Atan2(dy, dx)
	spacing := math.Max(size*stampSpacing, minStampSpacing)
	steps := int(math.Ceil(length / spacing))
	for s := 0; s <= steps; s++ {
		t := float64(s) / float64(steps)
		x := x0 + int(math.Round(dx*t))
		y := y0 + int(math.Round(dy*t))
		stamp(x, y, 1-strokeFalloff*t, angle, pressure)
	}
}

// ApplyBrushStroke paints a segment. Velocity is the pointer speed in cells
// per frame; faster strokes deposit less per unit length.
func (e *Engine) ApplyBrushStroke(seg Segment, size, water, pigment float64, col RGB, velocity float64) {
	if !(size > 0) {
		return
	}
	water, pigment = brushAmount(water), brushAmount(pigment)
	if water == 0 && pigment == 0 {
		return
	}
	col = col.clamped()
	e.walk(seg, size, velocity, func(x, y int, atten, angle, pressure float64) {
		e.stampPaint(e.footprint(x, y, size, angle), water*atten, pigment*atten, col, pressure)
	})
}

// ApplyFadeBrushStroke lifts pigment and some water along a segment.
func (e *Engine) ApplyFadeBrushStroke(seg Segment, size, strength, velocity float64) {
	if !(size > 0) {
		return
	}
	strength = clampFinite(strength, 0, 1, 0)
	if strength == 0 {
		return
	}
	e.walk(seg, size, velocity, func(x, y int, atten, angle, pressure float64) {
		e.stampFade(e.footprint(x, y, size, angle), strength*atten, pressure)
	})
}

// ApplyBlendBrushStroke smooths pigment along a segment without adding any.
func (e *Engine) ApplyBlendBrushStroke(seg Segment, size, strength, velocity float64) {
	if !(size > 0) {
		return
	}
	strength = clampFinite(strength, 0, 1, 0)
	if strength == 0 {
		return
	}
	e.walk(seg, size, velocity, func(x, y int, atten, angle, pressure float64) {
		e.stampBlend(e.footprint(x, y, size, angle), strength*atten, pressure)
	})
}

// ApplyWaterBrushStroke rewets paper along a segment. Flow, clamped to
// [0, 2], scales the water added, how hard it pushes outward and how much
// dried pigment it lifts.
func (e *Engine) ApplyWaterBrushStroke(seg Segment, size, water, flow, velocity float64) {
	if !(size > 0) {
		return
	}
	water, flow = brushAmount(water), clampFinite(flow, 0, maxWaterFlow, 0)
	if water == 0 || flow == 0 {
		return
	}
	e.walk(seg, size, velocity, func(x, y int, atten, angle, pressure float64) {
		e.stampWater(e.footprint(x, y, size, angle), water*atten, flow, pressure)
	})
}
