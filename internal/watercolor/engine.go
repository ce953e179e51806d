// Package watercolor simulates water and pigment on a paper grid and
// composites the result into an RGBA image.
//
// An Engine is single-threaded: it has no internal locking and must be owned
// by one goroutine. Independent engines share nothing and can run in
// parallel.
package watercolor

import (
	"log/slog"

	"gonum.org/v1/gonum/floats"

	"watercolor/internal/core"
)

// Engine owns one paper grid and every field simulated on it.
type Engine struct {
	w, h int
	seed int64

	grid  *grid
	paper *paper

	physics     PhysicsParams
	pigment     PigmentProps
	showTexture bool
}

// CellState is a read-only copy of one cell.
type CellState struct {
	Water     float64
	VX, VY    float64
	Suspended Pigment
	Deposited Pigment

	PaperHeight     float64
	PaperAbsorption float64
}

// New creates a w×h engine with default parameters and procedural paper.
// Non-positive dimensions are raised to 1.
func New(w, h int) *Engine {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = w, h
	return NewWithConfig(cfg)
}

// NewWithConfig creates an engine from cfg. Parameters are sanitized the same
// way SetPhysics and SetPigmentProps sanitize them.
func NewWithConfig(cfg Config) *Engine {
	w, h := max(cfg.Width, 1), max(cfg.Height, 1)
	e := &Engine{
		w:           w,
		h:           h,
		seed:        cfg.Seed,
		grid:        newGrid(w, h),
		paper:       newPaper(w, h, cfg.Seed),
		showTexture: cfg.ShowTexture,
	}
	e.SetPhysics(cfg.Physics)
	e.SetPigmentProps(cfg.Pigment)
	Logger().Debug("watercolor: engine created", slog.Int("w", w), slog.Int("h", h), slog.Int64("seed", cfg.Seed))
	return e
}

// Name identifies the simulation to front ends.
func (e *Engine) Name() string { return "watercolor" }

// Width returns the grid width in cells.
func (e *Engine) Width() int { return e.w }

// Height returns the grid height in cells.
func (e *Engine) Height() int { return e.h }

// Size returns the grid dimensions.
func (e *Engine) Size() core.Size { return core.Size{W: e.w, H: e.h} }

// SetPhysics replaces the solver parameters. Out-of-range values are clamped
// and non-finite ones fall back to the defaults.
func (e *Engine) SetPhysics(p PhysicsParams) {
	clean, changed := p.sanitize()
	if changed {
		Logger().Warn("watercolor: physics parameters clamped",
			slog.Float64("dt", clean.DT),
			slog.Float64("evaporation", clean.Evaporation),
			slog.Float64("viscosity", clean.Viscosity),
			slog.Float64("pressure", clean.Pressure),
			slog.Int("iterations", clean.Iterations))
	}
	e.physics = clean
}

// Physics returns the active solver parameters.
func (e *Engine) Physics() PhysicsParams { return e.physics }

// SetPigmentProps replaces the pigment parameters, clamping as SetPhysics.
func (e *Engine) SetPigmentProps(p PigmentProps) {
	clean, changed := p.sanitize()
	if changed {
		Logger().Warn("watercolor: pigment properties clamped",
			slog.Float64("adhesion", clean.Adhesion),
			slog.Float64("granularity", clean.Granularity))
	}
	e.pigment = clean
}

// PigmentProps returns the active pigment parameters.
func (e *Engine) PigmentProps() PigmentProps { return e.pigment }

// SetShowTexture toggles the paper texture overlay in Render.
func (e *Engine) SetShowTexture(show bool) { e.showTexture = show }

// ShowTexture reports whether the texture overlay is on.
func (e *Engine) ShowTexture() bool { return e.showTexture }

// TextureLoaded reports whether the paper came from LoadPaperTexture rather
// than the procedural generator.
func (e *Engine) TextureLoaded() bool { return e.paper.textured }

// LoadPaperTexture replaces the paper with a w×h bitmap, resampled to the
// grid. Exactly two lengths are accepted: w*h*4 bytes are read as RGBA
// (alpha ignored) and w*h bytes as 8-bit luminance. Any other length fails. On error the engine is unchanged and the error wraps
// ErrInvalidTextureDimensions.
func (e *Engine) LoadPaperTexture(data []byte, w, h int) error {
	if err := e.paper.load(data, w, h); err != nil {
		Logger().Warn("watercolor: paper texture rejected", slog.String("err", err.Error()))
		return err
	}
	Logger().Debug("watercolor: paper texture loaded", slog.Int("w", w), slog.Int("h", h))
	return nil
}

// Step advances the simulation by one tick of DT.
func (e *Engine) Step() {
	e.solveFluid()
	e.transportPigment()
	e.evaporate()
	e.grid.clampNonNegative()
}

// Reset clears water, velocity and pigment. The paper and every parameter
// are kept.
func (e *Engine) Reset() {
	e.grid.clear()
	Logger().Debug("watercolor: reset")
}

// Cell returns the state at (x, y), clamped into the grid.
func (e *Engine) Cell(x, y int) CellState {
	x, y = e.grid.water.Clamp(x, y)
	i := e.grid.water.Index(x, y)
	g := e.grid
	s := CellState{
		Water:           g.water.Cells()[i],
		VX:              g.vx.Cells()[i],
		VY:              g.vy.Cells()[i],
		PaperHeight:     e.paper.height.Cells()[i],
		PaperAbsorption: e.paper.absorption.Cells()[i],
	}
	for c := 0; c < numLayers; c++ {
		s.Suspended[c] = g.suspended[c].Cells()[i]
		s.Deposited[c] = g.deposited[c].Cells()[i]
	}
	return s
}

// PigmentTotals returns suspended plus deposited pigment summed over the
// grid, per layer.
func (e *Engine) PigmentTotals() Pigment {
	var t Pigment
	for c := 0; c < numLayers; c++ {
		t[c] = floats.Sum(e.grid.suspended[c].Cells()) + floats.Sum(e.grid.deposited[c].Cells())
	}
	return t
}

// WaterTotal returns the water summed over the grid.
func (e *Engine) WaterTotal() float64 {
	return floats.Sum(e.grid.water.Cells())
}

// WaterField exposes the water depth layer for overlays. Callers must not
// modify it.
func (e *Engine) WaterField() []float64 { return e.grid.water.Cells() }

// Velocity returns the velocity at (x, y), clamped into the grid.
func (e *Engine) Velocity(x, y int) (float64, float64) {
	return e.grid.vx.At(x, y), e.grid.vy.At(x, y)
}

// PaperHeightField exposes the paper surface for overlays. Callers must not
// modify it.
func (e *Engine) PaperHeightField() []float64 { return e.paper.height.Cells() }
