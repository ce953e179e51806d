package watercolor

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"watercolor/internal/core"
)

const (
	// paperSlope lets surface height raise the pressure proxy so water
	// drains from fiber peaks into valleys.
	paperSlope = 0.25

	// Rim pressure drop, proportional to evaporation and capped.
	edgePullGain = 50.0
	maxEdgePull  = 0.5

	relaxFactor      = 0.2
	velocityDrag     = 0.02
	maxCourant       = 0.5
	dryVelocityDecay = 0.5
	velocityFloor    = 1e-6
)

// solveFluid advances velocity and moves water for one step. It leaves the
// per-direction outflow fractions in grid.flux for pigment advection.
func (e *Engine) solveFluid() {
	e.updatePressure()
	e.applyPressureGradient()
	for i := 0; i < e.physics.Iterations; i++ {
		e.relaxDivergence()
	}
	e.diffuseVelocity()
	e.limitVelocity()
	e.computeFluxes()
	e.advect(e.grid.water)
}

// updatePressure fills the pressure proxy. Rim cells of the wet area get a
// pressure drop while water evaporates, which pulls flow toward the edges.
func (e *Engine) updatePressure() {
	g := e.grid
	water := g.water.Cells()
	height := e.paper.height.Cells()
	p := g.pressure.Cells()
	k := e.physics.Pressure
	pull := k * math.Min(e.physics.Evaporation*edgePullGain, maxEdgePull)
	for y := 0; y < g.h; y++ {
		for x := 0; x < g.w; x++ {
			i := y*g.w + x
			v := k * (water[i] + paperSlope*height[i])
			if pull > 0 && water[i] >= flowDepth {
				v -= pull * g.rimness(x, y)
			}
			p[i] = v
		}
	}
}

// applyPressureGradient accelerates wet cells down the pressure gradient.
// Neighbors outside the wet area mirror the center value, so the rim acts as
// a wall. Cells outside the wet area lose their velocity.
func (e *Engine) applyPressureGradient() {
	g := e.grid
	dt := e.physics.DT
	p := g.pressure.Cells()
	vx, vy := g.vx.Cells(), g.vy.Cells()
	for y := 0; y < g.h; y++ {
		for x := 0; x < g.w; x++ {
			i := y*g.w + x
			if !g.flowing(i) {
				vx[i] = decayVelocity(vx[i])
				vy[i] = decayVelocity(vy[i])
				continue
			}
			pe := g.sample(p, x, y, dirEast, p[i])
			pw := g.sample(p, x, y, dirWest, p[i])
			ps := g.sample(p, x, y, dirSouth, p[i])
			pn := g.sample(p, x, y, dirNorth, p[i])
			vx[i] -= dt * 0.5 * (pe - pw)
			vy[i] -= dt * 0.5 * (ps - pn)
		}
	}
}

func decayVelocity(v float64) float64 {
	v *= dryVelocityDecay
	if math.Abs(v) < velocityFloor {
		return 0
	}
	return v
}

// relaxDivergence runs one grad-div damping pass over the wet area.
func (e *Engine) relaxDivergence() {
	g := e.grid
	vx, vy := g.vx.Cells(), g.vy.Cells()
	div := g.tmpA.Cells()
	for y := 0; y < g.h; y++ {
		for x := 0; x < g.w; x++ {
			i := y*g.w + x
			if !g.flowing(i) {
				div[i] = 0
				continue
			}
			ve := g.sample(vx, x, y, dirEast, vx[i])
			vw := g.sample(vx, x, y, dirWest, vx[i])
			vs := g.sample(vy, x, y, dirSouth, vy[i])
			vn := g.sample(vy, x, y, dirNorth, vy[i])
			div[i] = 0.5 * ((ve - vw) + (vs - vn))
		}
	}
	for y := 0; y < g.h; y++ {
		for x := 0; x < g.w; x++ {
			i := y*g.w + x
			if !g.flowing(i) {
				continue
			}
			de := g.sample(div, x, y, dirEast, div[i])
			dw := g.sample(div, x, y, dirWest, div[i])
			ds := g.sample(div, x, y, dirSouth, div[i])
			dn := g.sample(div, x, y, dirNorth, div[i])
			vx[i] += relaxFactor * 0.5 * (de - dw)
			vy[i] += relaxFactor * 0.5 * (ds - dn)
		}
	}
}

// diffuseVelocity blends each wet cell's velocity toward its wet neighbors
// and applies drag everywhere.
func (e *Engine) diffuseVelocity() {
	g := e.grid
	vx, vy := g.vx.Cells(), g.vy.Cells()
	if visc := e.physics.Viscosity; visc > 0 {
		ax, ay := g.tmpA.Cells(), g.tmpB.Cells()
		copy(ax, vx)
		copy(ay, vy)
		for y := 0; y < g.h; y++ {
			for x := 0; x < g.w; x++ {
				i := y*g.w + x
				if !g.flowing(i) {
					continue
				}
				var sx, sy float64
				n := 0
				for d := 0; d < numDirs; d++ {
					nb := g.neighbor(x, y, d)
					if nb < 0 || !g.flowing(nb) {
						continue
					}
					sx += ax[nb]
					sy += ay[nb]
					n++
				}
				if n == 0 {
					continue
				}
				vx[i] = (1-visc)*ax[i] + visc*sx/float64(n)
				vy[i] = (1-visc)*ay[i] + visc*sy/float64(n)
			}
		}
	}
	floats.Scale(1-velocityDrag, vx)
	floats.Scale(1-velocityDrag, vy)
}

// limitVelocity keeps (|vx|+|vy|)·dt within maxCourant so no cell can send
// out more than half its content in one step.
func (e *Engine) limitVelocity() {
	dt := e.physics.DT
	if dt <= 0 {
		return
	}
	limit := maxCourant / dt
	vx, vy := e.grid.vx.Cells(), e.grid.vy.Cells()
	for i := range vx {
		s := math.Abs(vx[i]) + math.Abs(vy[i])
		if s > limit {
			f := limit / s
			vx[i] *= f
			vy[i] *= f
		}
	}
}

// computeFluxes derives donor-cell outflow fractions. Only wet-area cells
// send, and only into wet-area neighbors.
func (e *Engine) computeFluxes() {
	g := e.grid
	dt := e.physics.DT
	vx, vy := g.vx.Cells(), g.vy.Cells()
	fe := g.flux[dirEast].Cells()
	fw := g.flux[dirWest].Cells()
	fs := g.flux[dirSouth].Cells()
	fn := g.flux[dirNorth].Cells()
	for y := 0; y < g.h; y++ {
		for x := 0; x < g.w; x++ {
			i := y*g.w + x
			fe[i], fw[i], fs[i], fn[i] = 0, 0, 0, 0
			if dt <= 0 || !g.flowing(i) {
				continue
			}
			if vx[i] > 0 && g.flowingNeighbor(x, y, dirEast) {
				fe[i] = vx[i] * dt
			} else if vx[i] < 0 && g.flowingNeighbor(x, y, dirWest) {
				fw[i] = -vx[i] * dt
			}
			if vy[i] > 0 && g.flowingNeighbor(x, y, dirSouth) {
				fs[i] = vy[i] * dt
			} else if vy[i] < 0 && g.flowingNeighbor(x, y, dirNorth) {
				fn[i] = -vy[i] * dt
			}
		}
	}
}

// advect moves the contents of f along the outflow fractions from the last
// computeFluxes call. It conserves the field total.
func (e *Engine) advect(f *core.Field) {
	g := e.grid
	src := f.Cells()
	next := g.tmpA.Cells()
	copy(next, src)
	var flux [numDirs][]float64
	for d := 0; d < numDirs; d++ {
		flux[d] = g.flux[d].Cells()
	}
	for y := 0; y < g.h; y++ {
		for x := 0; x < g.w; x++ {
			i := y*g.w + x
			v := src[i]
			if v == 0 {
				continue
			}
			for d := 0; d < numDirs; d++ {
				frac := flux[d][i]
				if frac == 0 {
					continue
				}
				out := v * frac
				next[i] -= out
				next[g.neighbor(x, y, d)] += out
			}
		}
	}
	copy(src, next)
}

// sample returns values at the neighbor in direction d when that neighbor is
// part of the wet area, and fallback otherwise.
func (g *grid) sample(values []float64, x, y, d int, fallback float64) float64 {
	n := g.neighbor(x, y, d)
	if n < 0 || !g.flowing(n) {
		return fallback
	}
	return values[n]
}

func (g *grid) flowingNeighbor(x, y, d int) bool {
	n := g.neighbor(x, y, d)
	return n >= 0 && g.flowing(n)
}
