package watercolor

import (
	"math"
	"strconv"
)

// PhysicsParams controls the fluid solver and the drying model.
type PhysicsParams struct {
	DT          float64
	Evaporation float64
	Viscosity   float64
	Pressure    float64
	Iterations  int
}

// PigmentProps controls how suspended pigment settles into the paper.
type PigmentProps struct {
	Adhesion    float64
	Granularity float64
}

// Config controls the engine dimensions and its initial parameters.
type Config struct {
	Width  int
	Height int

	// Seed drives the procedural paper.
	Seed int64

	Physics     PhysicsParams
	Pigment     PigmentProps
	ShowTexture bool
}

// Hard limits applied on top of the HUD ranges. Values outside these would
// not break the solver, but they stop being meaningful.
const (
	maxDT          = 1.0
	maxEvaporation = 1.0
	maxViscosity   = 1.0
	maxPressure    = 50.0
	maxIterations  = 200
	maxAdhesion    = 1.0
	maxGranularity = 5.0
)

// DefaultPhysics returns the solver settings the painter starts with.
func DefaultPhysics() PhysicsParams {
	return PhysicsParams{
		DT:          0.15,
		Evaporation: 0.002,
		Viscosity:   0.05,
		Pressure:    5.0,
		Iterations:  10,
	}
}

// DefaultPigmentProps returns the default pigment behaviour.
func DefaultPigmentProps() PigmentProps {
	return PigmentProps{
		Adhesion:    0.05,
		Granularity: 0.8,
	}
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:       300,
		Height:      300,
		Seed:        42,
		Physics:     DefaultPhysics(),
		Pigment:     DefaultPigmentProps(),
		ShowTexture: true,
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
// Unparseable values keep their defaults.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["dt"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Physics.DT = parsed
		}
	}
	if v, ok := cfg["evaporation"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Physics.Evaporation = parsed
		}
	}
	if v, ok := cfg["viscosity"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Physics.Viscosity = parsed
		}
	}
	if v, ok := cfg["pressure"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Physics.Pressure = parsed
		}
	}
	if v, ok := cfg["iterations"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Physics.Iterations = parsed
		}
	}
	if v, ok := cfg["adhesion"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Pigment.Adhesion = parsed
		}
	}
	if v, ok := cfg["granularity"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Pigment.Granularity = parsed
		}
	}
	if v, ok := cfg["texture"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.ShowTexture = parsed
		}
	}
	return c
}

// sanitize pins every field to a usable range. Non-finite values fall back
// to the defaults. The second result reports whether anything changed.
func (p PhysicsParams) sanitize() (PhysicsParams, bool) {
	def := DefaultPhysics()
	out := PhysicsParams{
		DT:          clampFinite(p.DT, 0, maxDT, def.DT),
		Evaporation: clampFinite(p.Evaporation, 0, maxEvaporation, def.Evaporation),
		Viscosity:   clampFinite(p.Viscosity, 0, maxViscosity, def.Viscosity),
		Pressure:    clampFinite(p.Pressure, 0, maxPressure, def.Pressure),
		Iterations:  p.Iterations,
	}
	if out.Iterations < 1 {
		out.Iterations = 1
	} else if out.Iterations > maxIterations {
		out.Iterations = maxIterations
	}
	return out, out != p
}

func (p PigmentProps) sanitize() (PigmentProps, bool) {
	def := DefaultPigmentProps()
	out := PigmentProps{
		Adhesion:    clampFinite(p.Adhesion, 0, maxAdhesion, def.Adhesion),
		Granularity: clampFinite(p.Granularity, 0, maxGranularity, def.Granularity),
	}
	return out, out != p
}

func clampFinite(v, lo, hi, fallback float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return clamp(v, lo, hi)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clamp01(v float64) float64 { return clamp(v, 0, 1) }

func smoothstep(edge0, edge1, x float64) float64 {
	t := clamp01((x - edge0) / (edge1 - edge0))
	return t * t * (3 - 2*t)
}
