package watercolor

import (
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"

	"watercolor/internal/core"
	pcore "watercolor/pkg/core"
)

const (
	// Absorption falls as the surface rises: fiber peaks shed water, valleys
	// soak it up.
	absorptionBase  = 1.0
	absorptionSlope = 0.6

	// renderContrast compresses the smoothed height field around mid-gray so
	// the texture overlay stays subtle.
	renderContrast = 0.35

	// Luminance weights for RGBA textures.
	lumaR = 0.30
	lumaG = 0.59
	lumaB = 0.11
)

// paper holds the static surface fields. height and absorption drive the
// physics; render only feeds the compositor texture overlay.
type paper struct {
	height     *core.Field
	absorption *core.Field
	render     *core.Field
	textured   bool
}

func newPaper(w, h int, seed int64) *paper {
	p := &paper{
		height:     core.NewField(w, h),
		absorption: core.NewField(w, h),
		render:     core.NewField(w, h),
	}
	p.generate(seed)
	return p
}

// generate fills the height field with seeded noise layered over three
// low-frequency fiber undulations.
func (p *paper) generate(seed int64) {
	rng := pcore.NewRNG(seed)
	w := p.height.W
	height := p.height.Cells()
	pcore.FillUniform(rng, height, 0.45, 0.70)
	for y := 0; y < p.height.H; y++ {
		fy := float64(y)
		for x := 0; x < w; x++ {
			fx := float64(x)
			v := height[y*w+x]
			v += math.Sin(fy*0.05) * math.Cos(fx*0.07) * 0.08
			v += math.Cos(fy*0.15) * math.Sin(fx*0.11) * 0.04
			v += (math.Sin(fy*0.3) + math.Cos(fx*0.25)) * 0.02
			height[y*w+x] = clamp01(v)
		}
	}
	p.textured = false
	p.derive()
}

// derive recomputes absorption and the render map from the height field.
func (p *paper) derive() {
	height := p.height.Cells()
	absorption := p.absorption.Cells()
	for i, v := range height {
		absorption[i] = absorptionFor(v)
	}
	p.rebuildRenderMap()
}

func absorptionFor(height float64) float64 {
	return clamp01(absorptionBase - absorptionSlope*height)
}

// rebuildRenderMap box-blurs the height field and compresses its contrast.
func (p *paper) rebuildRenderMap() {
	w, h := p.height.W, p.height.H
	gray := image.NewGray(image.Rect(0, 0, w, h))
	for i, v := range p.height.Cells() {
		gray.Pix[i] = uint8(clamp01(v)*255 + 0.5)
	}
	box := [9]float64{1, 1, 1, 1, 1, 1, 1, 1, 1}
	blurred := imaging.Convolve3x3(gray, box, &imaging.ConvolveOptions{Normalize: true})
	render := p.render.Cells()
	for y := 0; y < h; y++ {
		row := y * blurred.Stride
		for x := 0; x < w; x++ {
			avg := float64(blurred.Pix[row+x*4]) / 255
			render[y*w+x] = clamp01(0.5 + (avg-0.5)*renderContrast)
		}
	}
}

// load resamples an RGBA or single-channel luminance bitmap onto the grid.
func (p *paper) load(data []byte, w, h int) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidTextureDimensions, w, h)
	}
	var src image.Image
	switch len(data) {
	case w * h * 4:
		rgba := image.NewRGBA(image.Rect(0, 0, w, h))
		copy(rgba.Pix, data)
		// alpha carries no paper information
		for i := 3; i < len(rgba.Pix); i += 4 {
			rgba.Pix[i] = 0xff
		}
		src = rgba
	case w * h:
		src = &image.Gray{Pix: data, Stride: w, Rect: image.Rect(0, 0, w, h)}
	default:
		return fmt.Errorf("%w: %d bytes for %dx%d", ErrInvalidTextureDimensions, len(data), w, h)
	}

	gw, gh := p.height.W, p.height.H
	dst := image.NewRGBA(image.Rect(0, 0, gw, gh))
	draw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	height := p.height.Cells()
	for y := 0; y < gh; y++ {
		row := dst.Pix[y*dst.Stride:]
		for x := 0; x < gw; x++ {
			px := row[x*4 : x*4+4]
			luma := lumaR*float64(px[0]) + lumaG*float64(px[1]) + lumaB*float64(px[2])
			height[y*gw+x] = clamp01(luma / 255)
		}
	}
	p.textured = true
	p.derive()
	return nil
}
