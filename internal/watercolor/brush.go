package watercolor

import (
	"math"
)

// RGB is a pigment color with channels in [0, 1].
type RGB struct {
	R, G, B float64
}

func (c RGB) clamped() RGB {
	return RGB{
		R: clampFinite(c.R, 0, 1, 0),
		G: clampFinite(c.G, 0, 1, 0),
		B: clampFinite(c.B, 0, 1, 0),
	}
}

// Stamp geometry and input limits.
const (
	stampAspect    = 0.7
	stampSigma     = 0.45
	minStampRadius = 0.5
	maxStampRadius = 128

	maxBrushAmount   = 10
	maxBrushPressure = 2

	maxFade          = 0.75
	depositFadeShare = 0.8
	waterFadeShare   = 0.25

	maxBlend   = 0.85
	blendFloor = 1e-3

	waterBrushGain = 0.45
	waterPushGain  = 0.04
	liftGain       = 0.06
	maxLift        = 0.2
	maxWaterFlow   = 2.0
)

// footprint is a rotated elliptical stamp clipped to the grid.
type footprint struct {
	cx, cy   int
	radius   float64
	cos, sin float64
	inv2Sig2 float64

	x0, y0, x1, y1 int
}

// stampCell is one cell visited by footprint.each.
type stampCell struct {
	i      int
	x, y   int
	dx, dy int
	dist   float64
	gauss  float64
}

func (e *Engine) footprint(cx, cy int, size, angle float64) footprint {
	cx, cy = e.grid.water.Clamp(cx, cy)
	r := clamp(size, minStampRadius, maxStampRadius)
	if math.IsNaN(angle) || math.IsInf(angle, 0) {
		angle = 0
	}
	sigma := stampSigma * r
	reach := int(math.Ceil(r))
	return footprint{
		cx:       cx,
		cy:       cy,
		radius:   r,
		cos:      math.Cos(angle),
		sin:      math.Sin(angle),
		inv2Sig2: 1 / (2 * sigma * sigma),
		x0:       max(cx-reach, 0),
		y0:       max(cy-reach, 0),
		x1:       min(cx+reach, e.grid.w-1),
		y1:       min(cy+reach, e.grid.h-1),
	}
}

// each visits every in-grid cell whose stretched distance from the center
// is within the radius. Stretching only grows distances, so every visited
// cell is also within the radius in plain Euclidean terms.
func (fp footprint) each(w int, fn func(c stampCell)) {
	for y := fp.y0; y <= fp.y1; y++ {
		dy := y - fp.cy
		for x := fp.x0; x <= fp.x1; x++ {
			dx := x - fp.cx
			rx := float64(dx)*fp.cos + float64(dy)*fp.sin
			ry := (-float64(dx)*fp.sin + float64(dy)*fp.cos) / stampAspect
			dist := math.Hypot(rx, ry)
			if dist > fp.radius {
				continue
			}
			fn(stampCell{
				i:     y*w + x,
				x:     x,
				y:     y,
				dx:    dx,
				dy:    dy,
				dist:  dist,
				gauss: math.Exp(-dist * dist * fp.inv2Sig2),
			})
		}
	}
}

// bristleNoise is a stable per-cell hash in [0, 1].
func bristleNoise(x, y int) float64 {
	h := uint32(x)*73856093 ^ uint32(y)*19349663
	return float64(h) / math.MaxUint32
}

func brushAmount(v float64) float64 {
	return clampFinite(v, 0, maxBrushAmount, 0)
}

// ApplyBrush stamps water and pigment of the given color at (cx, cy). The
// angle orients the elliptical footprint and pressure scales the load.
// Non-positive size or pressure, or no water and no pigment, is a no-op.
func (e *Engine) ApplyBrush(cx, cy int, size, water, pigment float64, col RGB, angle, pressure float64) {
	if !(size > 0) || !(pressure > 0) {
		return
	}
	water, pigment = brushAmount(water), brushAmount(pigment)
	if water == 0 && pigment == 0 {
		return
	}
	pressure = math.Min(pressure, maxBrushPressure)
	e.stampPaint(e.footprint(cx, cy, size, angle), water, pigment, col.clamped(), pressure)
}

func (e *Engine) stampPaint(fp footprint, amount, pigment float64, col RGB, pressure float64) {
	g := e.grid
	water := g.water.Cells()
	height := e.paper.height.Cells()
	susp := [numLayers][]float64{
		g.suspended[ChanR].Cells(),
		g.suspended[ChanG].Cells(),
		g.suspended[ChanB].Cells(),
		g.suspended[ChanLoad].Cells(),
	}
	fp.each(g.w, func(c stampCell) {
		bristle := 0.6 + 0.4*bristleNoise(c.x, c.y)
		response := 0.6 + 0.4*(1-height[c.i])
		rim := 1 + smoothstep(0.5, 0.95, c.dist/fp.radius)*0.6
		spread := 1 + math.Min(water[c.i], 1)*0.4
		bf := c.gauss * response * bristle * pressure

		water[c.i] += amount * bf * spread * 0.7
		if pigment > 0 {
			m := pigment * bf * rim * 0.5
			susp[ChanR][c.i] += col.R * m
			susp[ChanG][c.i] += col.G * m
			susp[ChanB][c.i] += col.B * m
			susp[ChanLoad][c.i] += m
		}
	})
}

// stampFade lifts pigment out of the paper like a damp tissue. Wet cells
// and low paper give up more.
func (e *Engine) stampFade(fp footprint, strength, pressure float64) {
	g := e.grid
	water := g.water.Cells()
	height := e.paper.height.Cells()
	var susp, dep [numLayers][]float64
	for c := 0; c < numLayers; c++ {
		susp[c] = g.suspended[c].Cells()
		dep[c] = g.deposited[c].Cells()
	}
	fp.each(g.w, func(c stampCell) {
		wet := math.Min(water[c.i], 1)
		response := 0.7 + 0.3*(1-height[c.i])
		f := clamp(strength*c.gauss*response*pressure*(1+wet*0.6)*0.5, 0, maxFade)
		if f == 0 {
			return
		}
		for k := 0; k < numLayers; k++ {
			susp[k][c.i] *= 1 - f
			dep[k][c.i] *= 1 - depositFadeShare*f
		}
		water[c.i] *= 1 - waterFadeShare*f
	})
}

// blendOffsets lists half of the 8-neighborhood so each pair is visited once.
var blendOffsets = [4][2]int{{1, 0}, {0, 1}, {1, 1}, {-1, 1}}

// stampBlend smooths suspended and deposited pigment between neighboring
// cells of the footprint. Every exchange is pairwise, so totals hold.
func (e *Engine) stampBlend(fp footprint, strength, pressure float64) {
	g := e.grid
	bw := fp.x1 - fp.x0 + 1
	bh := fp.y1 - fp.y0 + 1
	weight := make([]float64, bw*bh)
	touched := false
	fp.each(g.w, func(c stampCell) {
		b := clamp(strength*c.gauss*pressure, 0, maxBlend)
		if b > blendFloor {
			weight[(c.y-fp.y0)*bw+(c.x-fp.x0)] = b
			touched = true
		}
	})
	if !touched {
		return
	}

	layers := make([][]float64, 0, 2*numLayers)
	for c := 0; c < numLayers; c++ {
		layers = append(layers, g.suspended[c].Cells(), g.deposited[c].Cells())
	}
	deltas := make([][]float64, len(layers))
	for k := range deltas {
		deltas[k] = make([]float64, bw*bh)
	}

	for ly := 0; ly < bh; ly++ {
		for lx := 0; lx < bw; lx++ {
			li := ly*bw + lx
			bi := weight[li]
			if bi == 0 {
				continue
			}
			gi := (fp.y0+ly)*g.w + fp.x0 + lx
			for _, off := range blendOffsets {
				nx, ny := lx+off[0], ly+off[1]
				if nx < 0 || nx >= bw || ny >= bh {
					continue
				}
				nl := ny*bw + nx
				bj := weight[nl]
				if bj == 0 {
					continue
				}
				gj := (fp.y0+ny)*g.w + fp.x0 + nx
				wgt := math.Min(bi, bj) / 8
				for k, f := range layers {
					d := wgt * (f[gi] - f[gj])
					deltas[k][li] -= d
					deltas[k][nl] += d
				}
			}
		}
	}

	for k, f := range layers {
		for ly := 0; ly < bh; ly++ {
			row := (fp.y0+ly)*g.w + fp.x0
			for lx := 0; lx < bw; lx++ {
				f[row+lx] += deltas[k][ly*bw+lx]
			}
		}
	}
}

// stampWater rewets the paper, pushes water outward from the center and
// lifts some deposited pigment back into suspension.
func (e *Engine) stampWater(fp footprint, amount, flow, pressure float64) {
	g := e.grid
	water := g.water.Cells()
	vx, vy := g.vx.Cells(), g.vy.Cells()
	var susp, dep [numLayers][]float64
	for c := 0; c < numLayers; c++ {
		susp[c] = g.suspended[c].Cells()
		dep[c] = g.deposited[c].Cells()
	}
	fp.each(g.w, func(c stampCell) {
		water[c.i] += amount * flow * c.gauss * pressure * waterBrushGain

		push := flow * smoothstep(0.2, 1, c.dist/fp.radius) * waterPushGain
		vx[c.i] += float64(c.dx) / (fp.radius + 0.001) * push
		vy[c.i] += float64(c.dy) / (fp.radius + 0.001) * push

		lift := math.Min(c.gauss*flow*liftGain, maxLift)
		for k := 0; k < numLayers; k++ {
			m := dep[k][c.i] * lift
			dep[k][c.i] -= m
			susp[k][c.i] += m
		}
	})
}
