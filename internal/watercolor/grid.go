package watercolor

import (
	"watercolor/internal/core"
)

// Pigment layer indices. Color layers store amount × color; the load layer
// stores the amount itself, so absorbance in channel c is load − c.
const (
	ChanR = iota
	ChanG
	ChanB
	ChanLoad
	numLayers
)

// Pigment holds one value per pigment layer, indexed by the Chan constants.
type Pigment [numLayers]float64

// Water depth thresholds. Below dryEpsilon a cell counts as dry paper and its
// suspended pigment locks. At or above flowDepth a cell belongs to the wet
// area that carries bulk flow; cells in between are damp.
const (
	dryEpsilon = 1e-3
	flowDepth  = 0.05
)

// Outflow directions used by the donor-cell flux arrays.
const (
	dirEast = iota
	dirWest
	dirSouth
	dirNorth
	numDirs
)

var dirOffsets = [numDirs][2]int{
	dirEast:  {1, 0},
	dirWest:  {-1, 0},
	dirSouth: {0, 1},
	dirNorth: {0, -1},
}

// grid owns every dynamic per-cell field plus the scratch buffers the passes
// reuse between steps.
type grid struct {
	w, h int

	water    *core.Field
	vx, vy   *core.Field
	pressure *core.Field

	suspended [numLayers]*core.Field
	deposited [numLayers]*core.Field

	// flux holds the outflow fraction per direction computed by the fluid
	// solver and reused by pigment advection in the same step.
	flux [numDirs]*core.Field

	// scratch buffers, contents undefined between passes
	tmpA  *core.Field
	tmpB  *core.Field
	delta [numLayers + 1]*core.Field
}

func newGrid(w, h int) *grid {
	g := &grid{
		w:        w,
		h:        h,
		water:    core.NewField(w, h),
		vx:       core.NewField(w, h),
		vy:       core.NewField(w, h),
		pressure: core.NewField(w, h),
		tmpA:     core.NewField(w, h),
		tmpB:     core.NewField(w, h),
	}
	for c := 0; c < numLayers; c++ {
		g.suspended[c] = core.NewField(w, h)
		g.deposited[c] = core.NewField(w, h)
	}
	for d := 0; d < numDirs; d++ {
		g.flux[d] = core.NewField(w, h)
	}
	for i := range g.delta {
		g.delta[i] = core.NewField(w, h)
	}
	return g
}

// clear zeroes every dynamic field.
func (g *grid) clear() {
	g.water.Clear()
	g.vx.Clear()
	g.vy.Clear()
	g.pressure.Clear()
	for c := 0; c < numLayers; c++ {
		g.suspended[c].Clear()
		g.deposited[c].Clear()
	}
	for d := 0; d < numDirs; d++ {
		g.flux[d].Clear()
	}
}

// neighbor returns the linear index of the neighbor of (x, y) in direction
// d, or -1 when it falls outside the grid.
func (g *grid) neighbor(x, y, d int) int {
	nx := x + dirOffsets[d][0]
	ny := y + dirOffsets[d][1]
	if !g.water.In(nx, ny) {
		return -1
	}
	return g.water.Index(nx, ny)
}

// flowing reports whether cell i belongs to the bulk wet area.
func (g *grid) flowing(i int) bool {
	return g.water.Cells()[i] >= flowDepth
}

// rimness is the share of in-bounds 4-neighbors of a flowing cell that sit
// outside the wet area. Interior cells score 0.
func (g *grid) rimness(x, y int) float64 {
	water := g.water.Cells()
	in, out := 0, 0
	for d := 0; d < numDirs; d++ {
		n := g.neighbor(x, y, d)
		if n < 0 {
			continue
		}
		in++
		if water[n] < flowDepth {
			out++
		}
	}
	if in == 0 {
		return 0
	}
	return float64(out) / float64(in)
}

// clampNonNegative removes round-off negatives from every conserved field.
func (g *grid) clampNonNegative() {
	clampField(g.water)
	for c := 0; c < numLayers; c++ {
		clampField(g.suspended[c])
		clampField(g.deposited[c])
	}
}

func clampField(f *core.Field) {
	cells := f.Cells()
	for i, v := range cells {
		if v < 0 {
			cells[i] = 0
		}
	}
}
