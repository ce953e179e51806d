package app

import (
	"fmt"

	"watercolor/internal/watercolor"
)

// Palette is the set of colours the C key cycles through.
var Palette = []watercolor.RGB{
	{R: 0.80, G: 0.12, B: 0.10}, // cadmium red
	{R: 0.10, G: 0.20, B: 0.65}, // ultramarine
	{R: 0.95, G: 0.78, B: 0.10}, // hansa yellow
	{R: 0.15, G: 0.45, B: 0.25}, // sap green
	{R: 0.45, G: 0.25, B: 0.12}, // burnt umber
	{R: 0.12, G: 0.12, B: 0.14}, // payne's grey
}

// Brush is the interactive brush state: mode, colour and loading.
type Brush struct {
	Mode     watercolor.Mode
	ColorIdx int
	Size     float64
	Water    float64
	Pigment  float64
	Strength float64
	Flow     float64
}

// DefaultBrush returns the brush the painter starts with.
func DefaultBrush() Brush {
	return Brush{
		Mode:     watercolor.ModePaint,
		Size:     6,
		Water:    0.6,
		Pigment:  0.5,
		Strength: 0.5,
		Flow:     0.6,
	}
}

// Color returns the selected palette colour.
func (b Brush) Color() watercolor.RGB {
	if len(Palette) == 0 {
		return watercolor.RGB{}
	}
	return Palette[((b.ColorIdx%len(Palette))+len(Palette))%len(Palette)]
}

// NextColor advances to the next palette entry, wrapping around.
func (b *Brush) NextColor() {
	if len(Palette) == 0 {
		return
	}
	b.ColorIdx = (b.ColorIdx + 1) % len(Palette)
}

// Stroke builds the engine stroke for one session step.
func (b Brush) Stroke(step watercolor.StrokeStep) watercolor.BrushStroke {
	return watercolor.BrushStroke{
		Mode:     b.Mode,
		Segment:  step.Segment,
		Size:     step.Size,
		Water:    b.Water,
		Pigment:  b.Pigment,
		Color:    b.Color(),
		Strength: b.Strength,
		Flow:     b.Flow,
		Velocity: step.Velocity,
	}
}

func (b Brush) String() string {
	return fmt.Sprintf("%s  size %.0f  colour %d/%d", b.Mode, b.Size, b.ColorIdx+1, len(Palette))
}
