package ui

import (
	"image/color"
	"math"

	"watercolor/internal/core"
)

// arrowSample is a grid cell the velocity overlay samples, with its centre in
// screen pixels.
type arrowSample struct {
	x, y   int
	sx, sy float64
}

const (
	targetArrowSamples = 360.0
	minArrowSpacing    = 6
	maxArrowSpacing    = 20
)

// arrowGrid spreads roughly targetArrowSamples points over the canvas,
// centred, and returns them with the pixel distance between neighbours.
func arrowGrid(size core.Size, scale int) ([]arrowSample, float64) {
	if size.W <= 0 || size.H <= 0 {
		return nil, 0
	}
	if scale <= 0 {
		scale = 1
	}
	spacing := int(math.Sqrt(float64(size.Cells()) / targetArrowSamples))
	spacing = min(max(spacing, minArrowSpacing), maxArrowSpacing)

	countX := (size.W + spacing - 1) / spacing
	countY := (size.H + spacing - 1) / spacing
	startX := max((size.W-1-(countX-1)*spacing)/2, 0)
	startY := max((size.H-1-(countY-1)*spacing)/2, 0)

	samples := make([]arrowSample, 0, countX*countY)
	for yi := 0; yi < countY; yi++ {
		y := min(startY+yi*spacing, size.H-1)
		for xi := 0; xi < countX; xi++ {
			x := min(startX+xi*spacing, size.W-1)
			samples = append(samples, arrowSample{
				x:  x,
				y:  y,
				sx: (float64(x) + 0.5) * float64(scale),
				sy: (float64(y) + 0.5) * float64(scale),
			})
		}
	}
	return samples, float64(spacing * scale)
}

// speedColor fades from a pale blue at rest to a saturated one at t=1.
func speedColor(t float64) color.RGBA {
	t = clamp01(t)
	return color.RGBA{
		R: uint8(math.Round(80 - 50*t)),
		G: uint8(math.Round(150 + 40*t)),
		B: uint8(math.Round(220 + 35*t)),
		A: uint8(math.Round(150 + 90*t)),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
