package watercolor

import (
	"bytes"
	"math"
	"testing"

	pcore "watercolor/pkg/core"
)

var red = RGB{R: 1}

func TestNewDimensions(t *testing.T) {
	e := New(7, 5)
	if e.Width() != 7 || e.Height() != 5 {
		t.Fatalf("got %dx%d, want 7x5", e.Width(), e.Height())
	}
	if size := e.Size(); size.W != 7 || size.H != 5 {
		t.Fatalf("Size() = %+v", size)
	}
	buf := e.Render()
	if len(buf) != 7*5*4 {
		t.Fatalf("render length %d, want %d", len(buf), 7*5*4)
	}
	for i := 3; i < len(buf); i += 4 {
		if buf[i] != 0xff {
			t.Fatalf("alpha at pixel %d = %d", i/4, buf[i])
		}
	}

	tiny := New(0, -4)
	if tiny.Width() != 1 || tiny.Height() != 1 {
		t.Fatalf("degenerate dimensions not raised to 1x1: %dx%d", tiny.Width(), tiny.Height())
	}
}

func TestRedDabScenario(t *testing.T) {
	e := New(10, 10)
	blank := New(10, 10).Render()
	e.ApplyBrush(5, 5, 2, 1, 1, red, 0, 1)

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			d := math.Hypot(float64(x-5), float64(y-5))
			c := e.Cell(x, y)
			if d <= 1.5 {
				if c.Suspended[ChanR]+c.Deposited[ChanR] <= 0 {
					t.Fatalf("cell (%d,%d) at distance %.2f has no red pigment", x, y, d)
				}
				if c.Suspended[ChanG] != 0 || c.Suspended[ChanB] != 0 {
					t.Fatalf("cell (%d,%d) picked up non-red pigment: %+v", x, y, c.Suspended)
				}
			}
		}
	}

	img := e.Render()
	center := (5*10 + 5) * 4
	r, g, b := img[center], img[center+1], img[center+2]
	if int(r) <= int(g)+5 || g != b {
		t.Fatalf("center pixel not reddened: rgb(%d,%d,%d)", r, g, b)
	}

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if math.Hypot(float64(x-5), float64(y-5)) < 4 {
				continue
			}
			i := (y*10 + x) * 4
			if !bytes.Equal(img[i:i+4], blank[i:i+4]) {
				t.Fatalf("pixel (%d,%d) changed: %v vs %v", x, y, img[i:i+4], blank[i:i+4])
			}
		}
	}
}

func TestApplyBrushIsLocal(t *testing.T) {
	e := New(20, 20)
	e.ApplyBrush(4, 4, 2, 1, 1, red, 0, 1)
	e.Step()
	before := snapshot(e)

	const size = 3.0
	e.ApplyBrush(12, 11, size, 0.8, 0.6, RGB{B: 1}, 0.7, 1.5)
	after := snapshot(e)

	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			if math.Hypot(float64(x-12), float64(y-11)) <= size {
				continue
			}
			i := y*20 + x
			if before[i] != after[i] {
				t.Fatalf("cell (%d,%d) outside the brush changed", x, y)
			}
		}
	}
}

func TestResetMatchesFreshEngine(t *testing.T) {
	e := New(16, 12)
	e.ApplyBrushStroke(Segment{X0: 2, Y0: 2, X1: 13, Y1: 9}, 2, 1, 0.7, RGB{R: 0.2, G: 0.4, B: 0.9}, 3)
	for i := 0; i < 5; i++ {
		e.Step()
	}
	e.Reset()
	if got := e.WaterTotal(); got != 0 {
		t.Fatalf("water after reset = %v", got)
	}
	if !bytes.Equal(e.Render(), New(16, 12).Render()) {
		t.Fatalf("render after reset differs from a fresh engine")
	}
	e.Reset()
	if !bytes.Equal(e.Render(), New(16, 12).Render()) {
		t.Fatalf("second reset changed the render")
	}
}

func TestResetKeepsParametersAndPaper(t *testing.T) {
	e := New(8, 8)
	e.SetPhysics(PhysicsParams{DT: 0.2, Evaporation: 0.005, Viscosity: 0.1, Pressure: 3, Iterations: 4})
	e.SetShowTexture(false)
	tex := make([]byte, 4*4)
	for i := range tex {
		tex[i] = uint8(i * 16)
	}
	if err := e.LoadPaperTexture(tex, 4, 4); err != nil {
		t.Fatalf("LoadPaperTexture: %v", err)
	}
	heights := append([]float64(nil), e.PaperHeightField()...)

	e.Reset()
	if e.Physics().Iterations != 4 || e.ShowTexture() {
		t.Fatalf("reset changed parameters: %+v texture=%v", e.Physics(), e.ShowTexture())
	}
	if !e.TextureLoaded() {
		t.Fatalf("reset dropped the loaded texture")
	}
	for i, v := range e.PaperHeightField() {
		if v != heights[i] {
			t.Fatalf("paper height %d changed across reset", i)
		}
	}
}

func TestEvaporationStrictlyDecreasesWater(t *testing.T) {
	e := New(1, 1)
	e.ApplyBrush(0, 0, 1, 1, 0, RGB{}, 0, 1)
	prev := e.Cell(0, 0).Water
	if prev <= 0 {
		t.Fatalf("brush left no water")
	}
	for i := 0; i < 50; i++ {
		e.Step()
		cur := e.Cell(0, 0).Water
		if cur >= prev {
			t.Fatalf("step %d: water %v did not drop below %v", i, cur, prev)
		}
		prev = cur
	}
}

func TestEvaporationFollowsClosedForm(t *testing.T) {
	e := New(1, 1)
	e.SetPhysics(PhysicsParams{DT: 0.2, Evaporation: 0.005, Viscosity: 0.05, Pressure: 5, Iterations: 10})
	e.ApplyBrush(0, 0, 1, 1, 0, RGB{}, 0, 1)
	w0 := e.Cell(0, 0).Water
	keep := 1 - 0.005*0.2
	for k := 1; k <= 100; k++ {
		e.Step()
		want := w0 * math.Pow(keep, float64(k))
		if got := e.Cell(0, 0).Water; !closeTo(got, want, 1e-9) {
			t.Fatalf("step %d: water %v, want %v", k, got, want)
		}
	}
}

func TestEvaporationScalesTotalWater(t *testing.T) {
	e := New(16, 16)
	e.SetPhysics(PhysicsParams{DT: 0.15, Evaporation: 0.01, Viscosity: 0.05, Pressure: 5, Iterations: 10})
	pool(e, 8, 8, 4, 1, 0.3, red)
	keep := 1 - 0.01*0.15
	for i := 0; i < 20; i++ {
		before := e.WaterTotal()
		e.Step()
		if got, want := e.WaterTotal(), before*keep; !closeTo(got, want, 1e-9) {
			t.Fatalf("step %d: total water %v, want %v", i, got, want)
		}
	}
}

func TestStepNeverCreatesPigment(t *testing.T) {
	e := New(24, 24)
	e.ApplyBrushStroke(Segment{X0: 3, Y0: 4, X1: 20, Y1: 18}, 3, 1, 0.8, RGB{R: 0.9, G: 0.3, B: 0.1}, 2)
	e.ApplyBrush(12, 6, 4, 1.5, 0.5, RGB{B: 1}, 0.3, 1)
	e.ApplyWaterBrushStroke(Segment{X0: 5, Y0: 20, X1: 19, Y1: 3}, 2, 1, 0.8, 0)

	prev := e.PigmentTotals()
	for i := 0; i < 200; i++ {
		e.Step()
		cur := e.PigmentTotals()
		for c := range cur {
			if cur[c] > prev[c]+1e-9 {
				t.Fatalf("step %d: layer %d grew from %v to %v", i, c, prev[c], cur[c])
			}
		}
		prev = cur
	}
}

func TestConservationWithoutEvaporation(t *testing.T) {
	e := New(24, 24)
	e.SetPhysics(PhysicsParams{DT: 0.15, Evaporation: 0, Viscosity: 0, Pressure: 5, Iterations: 10})
	e.ApplyBrush(12, 12, 5, 1, 0.8, RGB{R: 0.3, G: 0.6, B: 0.9}, 0, 1)

	pig := e.PigmentTotals()
	water := e.WaterTotal()
	for i := 0; i < 1000; i++ {
		e.Step()
	}
	got := e.PigmentTotals()
	for c := range got {
		if !closeTo(got[c], pig[c], 1e-6) {
			t.Fatalf("layer %d drifted from %v to %v", c, pig[c], got[c])
		}
	}
	if w := e.WaterTotal(); !closeTo(w, water, 1e-6) {
		t.Fatalf("water drifted from %v to %v", water, w)
	}
}

func TestFieldsStayNonNegative(t *testing.T) {
	e := New(20, 16)
	rng := pcore.NewRNG(99)
	for i := 0; i < 120; i++ {
		seg := Segment{
			X0: rng.IntN(30) - 5, Y0: rng.IntN(26) - 5,
			X1: rng.IntN(30) - 5, Y1: rng.IntN(26) - 5,
		}
		stroke := BrushStroke{
			Mode:     Mode(rng.IntN(4)),
			Segment:  seg,
			Size:     rng.Range(0.2, 6),
			Water:    rng.Range(0, 2),
			Pigment:  rng.Range(0, 1),
			Color:    RGB{R: rng.Float64(), G: rng.Float64(), B: rng.Float64()},
			Strength: rng.Range(0, 1),
			Flow:     rng.Range(0, 1),
			Velocity: rng.Range(0, 30),
		}
		e.Apply(stroke)
		e.Step()
		requireNonNegative(t, e)
	}
}

func TestSetPhysicsSanitizes(t *testing.T) {
	e := New(6, 6)
	e.SetPhysics(PhysicsParams{DT: -1, Evaporation: math.NaN(), Viscosity: 7, Pressure: math.Inf(1), Iterations: 0})
	p := e.Physics()
	if p.DT != 0 || p.Evaporation != DefaultPhysics().Evaporation || p.Viscosity != maxViscosity ||
		p.Pressure != DefaultPhysics().Pressure || p.Iterations != 1 {
		t.Fatalf("unexpected sanitized physics: %+v", p)
	}
	e.SetPigmentProps(PigmentProps{Adhesion: -3, Granularity: 99})
	if pp := e.PigmentProps(); pp.Adhesion != 0 || pp.Granularity != maxGranularity {
		t.Fatalf("unexpected sanitized pigment props: %+v", pp)
	}

	e.ApplyBrush(3, 3, 2, 1, 1, red, 0, 1)
	for i := 0; i < 10; i++ {
		e.Step()
	}
	requireNonNegative(t, e)
	for _, c := range snapshot(e) {
		if math.IsNaN(c.Water) || math.IsNaN(c.VX) || math.IsNaN(c.VY) {
			t.Fatalf("non-finite state after stepping with clamped params: %+v", c)
		}
	}
}

func TestCellClampsCoordinates(t *testing.T) {
	e := New(4, 4)
	e.ApplyBrush(3, 0, 0.4, 1, 0, RGB{}, 0, 1)
	if got, want := e.Cell(99, -7), e.Cell(3, 0); got != want {
		t.Fatalf("Cell did not clamp: %+v vs %+v", got, want)
	}
}
