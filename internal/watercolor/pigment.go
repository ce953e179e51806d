package watercolor

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

const (
	// Wet-in-wet mixing rate per unit time, capped per step.
	wetInWetRate = 0.6
	maxDiffusion = 0.2

	// Capillary creep from the wet area into the surrounding paper. The
	// halo it builds stays below flowDepth.
	capillaryRate  = 0.02
	capillaryCap   = 0.04
	capillaryCarry = 0.3

	// Exchange shaping.
	granulationGain  = 1.5
	edgeDepositBoost = 2.0
	thinWaterDepth   = 0.1
	thinWaterBoost   = 1.5
	maxExchange      = 0.5

	// Back-runs: damp cells bordering wetter ones leave a line of pigment
	// on the wet side.
	backRunMin  = 0.005
	backRunMax  = flowDepth
	backRunPush = 0.05
)

// transportPigment moves suspended pigment with the water and settles part
// of it into the paper.
func (e *Engine) transportPigment() {
	for c := 0; c < numLayers; c++ {
		e.advect(e.grid.suspended[c])
	}
	e.diffusePigment()
	e.capillaryFlow()
	e.exchangePigment()
	e.backRun()
}

// diffusePigment evens out suspended concentration between touching wet
// cells. The exchange is pairwise and symmetric, so totals are conserved.
func (e *Engine) diffusePigment() {
	k := math.Min(wetInWetRate*e.physics.DT, maxDiffusion)
	if k <= 0 {
		return
	}
	g := e.grid
	water := g.water.Cells()
	var susp, delta [numLayers][]float64
	for c := 0; c < numLayers; c++ {
		susp[c] = g.suspended[c].Cells()
		delta[c] = g.delta[c].Cells()
		clear(delta[c])
	}
	for y := 0; y < g.h; y++ {
		for x := 0; x < g.w; x++ {
			i := y*g.w + x
			hi := water[i]
			if hi < dryEpsilon {
				continue
			}
			for _, d := range [...]int{dirEast, dirSouth} {
				n := g.neighbor(x, y, d)
				if n < 0 {
					continue
				}
				hj := water[n]
				if hj < dryEpsilon {
					continue
				}
				wgt := k * math.Min(hi, hj)
				for c := 0; c < numLayers; c++ {
					flow := wgt * (susp[c][i]/hi - susp[c][n]/hj)
					delta[c][i] -= flow
					delta[c][n] += flow
				}
			}
		}
	}
	for c := 0; c < numLayers; c++ {
		floats.Add(susp[c], delta[c])
	}
}

// capillaryFlow wicks water from the wet area into adjacent damp or dry
// paper, faster where the receiving paper absorbs more. Only part of the
// proportional pigment travels with it.
func (e *Engine) capillaryFlow() {
	g := e.grid
	water := g.water.Cells()
	absorb := e.paper.absorption.Cells()
	dw := g.delta[numLayers].Cells()
	clear(dw)
	var susp, delta [numLayers][]float64
	for c := 0; c < numLayers; c++ {
		susp[c] = g.suspended[c].Cells()
		delta[c] = g.delta[c].Cells()
		clear(delta[c])
	}
	moved := false
	for y := 0; y < g.h; y++ {
		for x := 0; x < g.w; x++ {
			i := y*g.w + x
			hi := water[i]
			if hi < flowDepth {
				continue
			}
			for d := 0; d < numDirs; d++ {
				n := g.neighbor(x, y, d)
				if n < 0 {
					continue
				}
				hj := water[n]
				if hj >= capillaryCap {
					continue
				}
				t := capillaryRate * absorb[n] * (hi - hj)
				// split the headroom so several feeders cannot overfill it
				if room := (capillaryCap - hj) / numDirs; t > room {
					t = room
				}
				if t <= 0 {
					continue
				}
				dw[i] -= t
				dw[n] += t
				share := capillaryCarry * t / hi
				for c := 0; c < numLayers; c++ {
					m := susp[c][i] * share
					delta[c][i] -= m
					delta[c][n] += m
				}
				moved = true
			}
		}
	}
	if !moved {
		return
	}
	floats.Add(water, dw)
	for c := 0; c < numLayers; c++ {
		floats.Add(susp[c], delta[c])
	}
}

// exchangePigment settles suspended pigment into the deposited layer.
// Low, absorbent paper takes more under a granulating pigment; slow water,
// thin water and the rim of the wet area all deposit faster.
func (e *Engine) exchangePigment() {
	dt := e.physics.DT
	adhesion := e.pigment.Adhesion
	if adhesion <= 0 || dt <= 0 {
		return
	}
	gran := e.pigment.Granularity
	g := e.grid
	water := g.water.Cells()
	vx, vy := g.vx.Cells(), g.vy.Cells()
	height := e.paper.height.Cells()
	absorb := e.paper.absorption.Cells()
	var susp, dep [numLayers][]float64
	for c := 0; c < numLayers; c++ {
		susp[c] = g.suspended[c].Cells()
		dep[c] = g.deposited[c].Cells()
	}
	for y := 0; y < g.h; y++ {
		for x := 0; x < g.w; x++ {
			i := y*g.w + x
			h := water[i]
			if h < dryEpsilon || susp[ChanLoad][i] == 0 {
				continue
			}
			rate := e.exchangeRate(x, y, i, h, math.Hypot(vx[i], vy[i]), height[i], absorb[i], adhesion, gran, dt)
			for c := 0; c < numLayers; c++ {
				m := susp[c][i] * rate
				susp[c][i] -= m
				dep[c][i] += m
			}
		}
	}
}

func (e *Engine) exchangeRate(x, y, i int, h, speed, height, absorb, adhesion, gran, dt float64) float64 {
	eff := absorb * (1 + gran*(1-height)*granulationGain)
	rate := adhesion * eff * dt / (1 + speed)
	if h >= flowDepth {
		rate *= 1 + edgeDepositBoost*e.grid.rimness(x, y)
	}
	if h < thinWaterDepth {
		rate *= 1 + thinWaterBoost*(1-h/thinWaterDepth)
	}
	return min(rate, maxExchange)
}

// backRun moves a little suspended pigment out of damp cells into the
// deposited layer of their wettest neighbor.
func (e *Engine) backRun() {
	g := e.grid
	water := g.water.Cells()
	var susp, dep [numLayers][]float64
	for c := 0; c < numLayers; c++ {
		susp[c] = g.suspended[c].Cells()
		dep[c] = g.deposited[c].Cells()
	}
	for y := 0; y < g.h; y++ {
		for x := 0; x < g.w; x++ {
			i := y*g.w + x
			h := water[i]
			if h < backRunMin || h >= backRunMax || susp[ChanLoad][i] == 0 {
				continue
			}
			best, bestH := -1, h
			for d := 0; d < numDirs; d++ {
				n := g.neighbor(x, y, d)
				if n >= 0 && water[n] > bestH {
					best, bestH = n, water[n]
				}
			}
			if best < 0 {
				continue
			}
			for c := 0; c < numLayers; c++ {
				m := susp[c][i] * backRunPush
				susp[c][i] -= m
				dep[c][best] += m
			}
		}
	}
}
