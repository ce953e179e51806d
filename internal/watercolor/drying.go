package watercolor

import "gonum.org/v1/gonum/floats"

// evaporate removes water uniformly and locks pigment in cells that have
// dried out. This is the only place water leaves the grid.
func (e *Engine) evaporate() {
	g := e.grid
	water := g.water.Cells()
	keep := clamp01(1 - e.physics.Evaporation*e.physics.DT)
	if keep < 1 {
		floats.Scale(keep, water)
	}
	vx, vy := g.vx.Cells(), g.vy.Cells()
	var susp, dep [numLayers][]float64
	for c := 0; c < numLayers; c++ {
		susp[c] = g.suspended[c].Cells()
		dep[c] = g.deposited[c].Cells()
	}
	for i, h := range water {
		if h >= dryEpsilon {
			continue
		}
		vx[i], vy[i] = 0, 0
		if susp[ChanLoad][i] == 0 {
			continue
		}
		for c := 0; c < numLayers; c++ {
			dep[c][i] += susp[c][i]
			susp[c][i] = 0
		}
	}
}
