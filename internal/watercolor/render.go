package watercolor

import "math"

const (
	// opticalDensity converts absorbance into Beer–Lambert attenuation.
	opticalDensity = 1.6
	// suspendedVisibility weights pigment still floating in water.
	suspendedVisibility = 0.4

	wetShineThreshold = 0.05
	wetShineGain      = 0.08

	textureBase      = 0.03
	textureGranGain  = 0.08
	textureGain      = 1.8
	texturePaintFade = 0.85
	textureMinFade   = 0.12
)

// Render composites the grid into a new w*h*4 RGBA buffer, row-major from the
// top-left, alpha always 255.
func (e *Engine) Render() []byte {
	return e.RenderTo(nil)
}

// RenderTo composites into dst, reallocating only when its capacity is too
// small, and returns the filled slice.
func (e *Engine) RenderTo(dst []byte) []byte {
	g := e.grid
	n := g.w * g.h * 4
	if cap(dst) < n {
		dst = make([]byte, n)
	}
	dst = dst[:n]

	water := g.water.Cells()
	tex := e.paper.render.Cells()
	var susp, dep [numLayers][]float64
	for c := 0; c < numLayers; c++ {
		susp[c] = g.suspended[c].Cells()
		dep[c] = g.deposited[c].Cells()
	}
	texStrength := textureBase + e.pigment.Granularity*textureGranGain

	for i := range water {
		var out [3]float64
		paint := 0.0
		for c := 0; c < 3; c++ {
			a := math.Max(dep[ChanLoad][i]-dep[c][i], 0) +
				suspendedVisibility*math.Max(susp[ChanLoad][i]-susp[c][i], 0)
			paint += a
			out[c] = math.Exp(-opticalDensity * a)
		}

		if wet := math.Min(water[i], 1); wet > wetShineThreshold {
			shine := 1 + wet*wetShineGain
			for c := range out {
				out[c] *= shine
			}
		}

		if e.showTexture {
			fade := math.Max(1-math.Min(paint, 1)*texturePaintFade, textureMinFade)
			t := 1 + (tex[i]-0.5)*texStrength*fade*textureGain
			for c := range out {
				out[c] *= t
			}
		}

		px := dst[i*4 : i*4+4]
		px[0] = toByte(out[0])
		px[1] = toByte(out[1])
		px[2] = toByte(out[2])
		px[3] = 0xff
	}
	return dst
}

func toByte(v float64) uint8 {
	return uint8(clamp01(v)*255 + 0.5)
}
