package render

import (
	"fmt"
	"image"
	"image/color"
)

// FillFieldRGBA maps scalar values onto tint, with alpha rising linearly from
// 0 at lo to tint.A at hi. Values outside [lo, hi] are clamped.
func FillFieldRGBA(buf []byte, values []float64, lo, hi float64, tint color.RGBA) {
	span := hi - lo
	for i, v := range values {
		base := i * 4
		t := 0.0
		if span > 0 {
			t = (v - lo) / span
		}
		if t < 0 {
			t = 0
		} else if t > 1 {
			t = 1
		}
		buf[base+0] = tint.R
		buf[base+1] = tint.G
		buf[base+2] = tint.B
		buf[base+3] = uint8(t*float64(tint.A) + 0.5)
	}
}

// FillGrayRGBA writes values in [0, 1] as opaque grayscale pixels.
func FillGrayRGBA(buf []byte, values []float64) {
	for i, v := range values {
		if v < 0 {
			v = 0
		} else if v > 1 {
			v = 1
		}
		g := uint8(v*255 + 0.5)
		base := i * 4
		buf[base+0] = g
		buf[base+1] = g
		buf[base+2] = g
		buf[base+3] = 0xff
	}
}

// ToNRGBA copies a row-major RGBA buffer into an image. Engine buffers are
// opaque, so straight and premultiplied alpha coincide.
func ToNRGBA(buf []byte, w, h int) (*image.NRGBA, error) {
	if w <= 0 || h <= 0 || len(buf) != w*h*4 {
		return nil, fmt.Errorf("render: %d bytes do not form a %dx%d RGBA image", len(buf), w, h)
	}
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	copy(img.Pix, buf)
	return img, nil
}
