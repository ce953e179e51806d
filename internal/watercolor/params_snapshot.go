package watercolor

import (
	"strconv"

	"watercolor/internal/core"
)

// Parameters reports the current tunables for the HUD and headless tools.
func (e *Engine) Parameters() core.ParameterSnapshot {
	phys := e.physics
	pig := e.pigment
	groups := []core.ParameterGroup{
		{
			Name: "Paper",
			Params: []core.Parameter{
				intParam("w", "Width", e.w),
				intParam("h", "Height", e.h),
				int64Param("seed", "Seed", e.seed),
				boolParam("texture", "Show texture", e.showTexture),
			},
		},
		{
			Name: "Physics",
			Params: []core.Parameter{
				floatParam("dt", "Time step", phys.DT),
				floatParam("evaporation", "Evaporation", phys.Evaporation),
				floatParam("viscosity", "Viscosity", phys.Viscosity),
				floatParam("pressure", "Pressure", phys.Pressure),
				intParam("iterations", "Relax iterations", phys.Iterations),
			},
		},
		{
			Name: "Pigment",
			Params: []core.Parameter{
				floatParam("adhesion", "Adhesion", pig.Adhesion),
				floatParam("granularity", "Granularity", pig.Granularity),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls lists the HUD-adjustable tunables with the ranges the
// painter exposes.
func (e *Engine) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		floatControl("dt", "Time step", 0.01, 0.01, 0.5),
		floatControl("evaporation", "Evaporation", 0.0001, 0.0001, 0.01),
		floatControl("viscosity", "Viscosity", 0.01, 0, 0.5),
		floatControl("pressure", "Pressure", 0.5, 0.5, 15),
		{
			Key:    "iterations",
			Label:  "Relax iterations",
			Type:   core.ParamTypeInt,
			Step:   1,
			Min:    1,
			Max:    50,
			HasMin: true,
			HasMax: true,
		},
		floatControl("adhesion", "Adhesion", 0.001, 0.001, 0.3),
		floatControl("granularity", "Granularity", 0.1, 0, 2),
	}
}

// SetFloatParameter updates a float tunable, clamped to its control range.
// It reports false for unknown keys.
func (e *Engine) SetFloatParameter(key string, value float64) bool {
	ctrl, ok := e.control(key, core.ParamTypeFloat)
	if !ok {
		return false
	}
	value = ctrl.Clamp(value)
	phys := e.physics
	pig := e.pigment
	switch key {
	case "dt":
		phys.DT = value
	case "evaporation":
		phys.Evaporation = value
	case "viscosity":
		phys.Viscosity = value
	case "pressure":
		phys.Pressure = value
	case "adhesion":
		pig.Adhesion = value
	case "granularity":
		pig.Granularity = value
	default:
		return false
	}
	e.SetPhysics(phys)
	e.SetPigmentProps(pig)
	return true
}

// SetIntParameter updates an integer tunable, clamped to its control range.
func (e *Engine) SetIntParameter(key string, value int) bool {
	ctrl, ok := e.control(key, core.ParamTypeInt)
	if !ok {
		return false
	}
	switch key {
	case "iterations":
		phys := e.physics
		phys.Iterations = int(ctrl.Clamp(float64(value)))
		e.SetPhysics(phys)
		return true
	}
	return false
}

func (e *Engine) control(key string, typ core.ParamType) (core.ParameterControl, bool) {
	for _, c := range e.ParameterControls() {
		if c.Key == key && c.Type == typ {
			return c, true
		}
	}
	return core.ParameterControl{}, false
}

func floatControl(key, label string, step, lo, hi float64) core.ParameterControl {
	return core.ParameterControl{
		Key:    key,
		Label:  label,
		Type:   core.ParamTypeFloat,
		Step:   step,
		Min:    lo,
		Max:    hi,
		HasMin: true,
		HasMax: true,
	}
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatInt(value, 10),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}

func boolParam(key, label string, value bool) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeBool,
		Value: strconv.FormatBool(value),
	}
}
