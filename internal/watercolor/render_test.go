package watercolor

import "testing"

func pixel(buf []byte, w, x, y int) [4]byte {
	i := (y*w + x) * 4
	return [4]byte{buf[i], buf[i+1], buf[i+2], buf[i+3]}
}

func TestBlankPaperWithoutTextureIsWhite(t *testing.T) {
	e := New(6, 4)
	e.SetShowTexture(false)
	buf := e.Render()
	for i, v := range buf {
		if v != 0xff {
			t.Fatalf("byte %d = %d, want 255", i, v)
		}
	}
}

func TestTextureOverlayStaysSubtle(t *testing.T) {
	e := New(24, 24)
	buf := e.Render()
	for y := 0; y < 24; y++ {
		for x := 0; x < 24; x++ {
			p := pixel(buf, 24, x, y)
			if p[0] != p[1] || p[1] != p[2] {
				t.Fatalf("blank paper pixel (%d,%d) is tinted: %v", x, y, p)
			}
			if p[0] < 235 {
				t.Fatalf("blank paper pixel (%d,%d) too dark: %v", x, y, p)
			}
		}
	}
}

func TestRenderToReusesBuffer(t *testing.T) {
	e := New(5, 5)
	buf := make([]byte, 0, 5*5*4)
	out := e.RenderTo(buf)
	if len(out) != 100 || &out[0] != &buf[:1][0] {
		t.Fatalf("RenderTo reallocated a buffer that was large enough")
	}
	small := make([]byte, 3)
	if out := e.RenderTo(small); len(out) != 100 {
		t.Fatalf("RenderTo returned %d bytes for a short buffer", len(out))
	}
}

func TestMorePigmentRendersDarker(t *testing.T) {
	light := New(9, 9)
	dark := New(9, 9)
	light.SetShowTexture(false)
	dark.SetShowTexture(false)
	col := RGB{R: 0.1, G: 0.3, B: 0.7}
	light.ApplyBrush(4, 4, 2, 0.5, 0.2, col, 0, 1)
	dark.ApplyBrush(4, 4, 2, 0.5, 0.9, col, 0, 1)
	lp := pixel(light.Render(), 9, 4, 4)
	dp := pixel(dark.Render(), 9, 4, 4)
	for c := 0; c < 3; c++ {
		if dp[c] > lp[c] {
			t.Fatalf("channel %d: heavier wash %d brighter than lighter wash %d", c, dp[c], lp[c])
		}
	}
	if dp[0] >= lp[0] {
		t.Fatalf("red channel did not darken: %d vs %d", dp[0], lp[0])
	}
}

func TestOverlappingWashesMixSubtractively(t *testing.T) {
	yellow := RGB{R: 1, G: 0.9}
	blue := RGB{G: 0.3, B: 1}
	paint := func(cols ...RGB) [4]byte {
		e := New(9, 9)
		e.SetShowTexture(false)
		// dry pigment only, so wet shine does not differ between runs
		for _, c := range cols {
			e.ApplyBrush(4, 4, 2, 0, 0.8, c, 0, 1)
		}
		return pixel(e.Render(), 9, 4, 4)
	}
	y := paint(yellow)
	b := paint(blue)
	mix := paint(yellow, blue)
	for c := 0; c < 3; c++ {
		if mix[c] > y[c] || mix[c] > b[c] {
			t.Fatalf("channel %d: mix %d brighter than a component (%d, %d)", c, mix[c], y[c], b[c])
		}
	}
	if mix[1] <= mix[0] || mix[1] <= mix[2] {
		t.Fatalf("yellow over blue should lean green, got %v", mix)
	}
}

func TestDepositedPigmentRendersStrongerThanSuspended(t *testing.T) {
	e := New(2, 1)
	e.SetShowTexture(false)
	g := e.grid
	g.suspended[ChanLoad].Cells()[0] = 0.5
	g.deposited[ChanLoad].Cells()[1] = 0.5
	buf := e.Render()
	if buf[0] <= buf[4] {
		t.Fatalf("suspended pigment %d should render lighter than deposited %d", buf[0], buf[4])
	}
}
