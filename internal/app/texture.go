package app

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"watercolor/internal/watercolor"
)

// LoadTexture decodes the image at path and installs it as the engine's
// paper. Grayscale files go through the luminance path untouched; everything
// else is normalized to RGBA first.
func LoadTexture(e *watercolor.Engine, path string) error {
	img, err := imaging.Open(path)
	if err != nil {
		return fmt.Errorf("open texture: %w", err)
	}
	if g, ok := img.(*image.Gray); ok {
		b := g.Bounds()
		if b.Min == (image.Point{}) && g.Stride == b.Dx() {
			return e.LoadPaperTexture(g.Pix, b.Dx(), b.Dy())
		}
	}
	nrgba := imaging.Clone(img)
	b := nrgba.Bounds()
	return e.LoadPaperTexture(nrgba.Pix, b.Dx(), b.Dy())
}
