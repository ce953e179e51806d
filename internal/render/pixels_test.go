package render

import (
	"image/color"
	"slices"
	"testing"
)

func TestFillFieldRGBA(t *testing.T) {
	buf := make([]byte, 3*4)
	FillFieldRGBA(buf, []float64{-1, 0.5, 9}, 0, 1, color.RGBA{R: 10, G: 20, B: 30, A: 200})
	want := []byte{
		10, 20, 30, 0,
		10, 20, 30, 100,
		10, 20, 30, 200,
	}
	if !slices.Equal(buf, want) {
		t.Fatalf("got %v, want %v", buf, want)
	}
}

func TestFillGrayRGBA(t *testing.T) {
	buf := make([]byte, 2*4)
	FillGrayRGBA(buf, []float64{0, 2})
	if !slices.Equal(buf, []byte{0, 0, 0, 255, 255, 255, 255, 255}) {
		t.Fatalf("unexpected gray pixels %v", buf)
	}
}

func TestToNRGBA(t *testing.T) {
	buf := []byte{1, 2, 3, 255, 4, 5, 6, 255}
	img, err := ToNRGBA(buf, 2, 1)
	if err != nil {
		t.Fatalf("ToNRGBA: %v", err)
	}
	if got := img.NRGBAAt(1, 0); got != (color.NRGBA{R: 4, G: 5, B: 6, A: 255}) {
		t.Fatalf("pixel (1,0) = %v", got)
	}
	buf[0] = 99
	if img.Pix[0] == 99 {
		t.Fatalf("image aliases the source buffer")
	}
	if _, err := ToNRGBA(buf, 3, 1); err == nil {
		t.Fatalf("expected a size mismatch error")
	}
}
