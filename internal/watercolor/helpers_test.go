package watercolor

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"
)

// flatPaper replaces the paper with a uniform surface of the given height.
func flatPaper(e *Engine, height float64) {
	e.paper.height.Fill(height)
	e.paper.derive()
}

// pool fills a disk with water and suspended pigment of one color.
func pool(e *Engine, cx, cy int, radius, water, load float64, col RGB) {
	e.wash(cx, cy, radius, water, load, col)
}

func snapshot(e *Engine) []CellState {
	out := make([]CellState, 0, e.Width()*e.Height())
	for y := 0; y < e.Height(); y++ {
		for x := 0; x < e.Width(); x++ {
			out = append(out, e.Cell(x, y))
		}
	}
	return out
}

func requireNonNegative(t *testing.T, e *Engine) {
	t.Helper()
	g := e.grid
	if m := floats.Min(g.water.Cells()); m < 0 {
		t.Fatalf("water went negative: %v", m)
	}
	for c := 0; c < numLayers; c++ {
		if m := floats.Min(g.suspended[c].Cells()); m < 0 {
			t.Fatalf("suspended layer %d went negative: %v", c, m)
		}
		if m := floats.Min(g.deposited[c].Cells()); m < 0 {
			t.Fatalf("deposited layer %d went negative: %v", c, m)
		}
	}
}

func closeTo(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}
