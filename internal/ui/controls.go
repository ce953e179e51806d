package ui

import (
	"image"
	"math"
	"strconv"

	"watercolor/internal/core"
)

const (
	panelPadding   = 12
	lineHeight     = 36
	buttonSize     = 24
	buttonGap      = 6
	headerBaseline = 18
	labelBaseline  = 24
	infoSpacing    = 36
	controlsTop    = panelPadding + headerBaseline + 14

	defaultFloatStep = 0.05
)

// controlState is one HUD row: the control, its last known value, and where
// its buttons sit inside the panel.
type controlState struct {
	control core.ParameterControl
	value   float64
	text    string
	ok      bool

	top   int
	minus image.Rectangle
	plus  image.Rectangle
}

// controlPanel holds the input side of the HUD. It knows nothing about
// drawing so the same logic backs every build.
type controlPanel struct {
	states      []controlState
	intSetter   core.IntParameterSetter
	floatSetter core.FloatParameterSetter
}

func newControlPanel(target any, width int) *controlPanel {
	p := &controlPanel{}
	if provider, ok := target.(core.ParameterControlsProvider); ok {
		for _, ctrl := range provider.ParameterControls() {
			p.states = append(p.states, controlState{control: ctrl, text: "--"})
		}
	}
	p.intSetter, _ = target.(core.IntParameterSetter)
	p.floatSetter, _ = target.(core.FloatParameterSetter)
	p.layout(width)
	return p
}

func (p *controlPanel) layout(width int) {
	if width <= 0 {
		return
	}
	for i := range p.states {
		top := controlsTop + i*lineHeight
		y := top + (lineHeight-buttonSize)/2
		plus := image.Rect(width-panelPadding-buttonSize, y, width-panelPadding, y+buttonSize)
		minus := image.Rect(plus.Min.X-buttonGap-buttonSize, y, plus.Min.X-buttonGap, y+buttonSize)
		p.states[i].top = top
		p.states[i].minus = minus
		p.states[i].plus = plus
	}
}

// refresh pulls current values out of a parameter snapshot.
func (p *controlPanel) refresh(snap core.ParameterSnapshot) {
	for i := range p.states {
		s := &p.states[i]
		s.ok = false
		s.text = "--"
		param, found := snap.Lookup(s.control.Key)
		if !found {
			continue
		}
		v, err := strconv.ParseFloat(param.Value, 64)
		if err != nil {
			continue
		}
		switch s.control.Type {
		case core.ParamTypeInt:
			s.value = math.Round(v)
			s.text = strconv.Itoa(int(s.value))
		case core.ParamTypeFloat:
			s.value = v
			s.text = formatValue(s.control, v)
		default:
			continue
		}
		s.ok = true
	}
}

// click applies a press at panel-local (x, y). It reports whether a button
// was hit and the value changed.
func (p *controlPanel) click(x, y int) bool {
	pt := image.Pt(x, y)
	for i := range p.states {
		s := &p.states[i]
		if !s.ok {
			continue
		}
		switch {
		case pt.In(s.minus):
			return p.adjust(i, -1)
		case pt.In(s.plus):
			return p.adjust(i, 1)
		}
	}
	return false
}

// next returns the value one step in direction dir, and false when the
// control is already pinned at that bound or cannot be set.
func (p *controlPanel) next(i, dir int) (float64, bool) {
	s := &p.states[i]
	if !s.ok || dir == 0 {
		return 0, false
	}
	step := s.control.Step
	switch s.control.Type {
	case core.ParamTypeInt:
		if p.intSetter == nil {
			return 0, false
		}
		step = math.Max(math.Round(step), 1)
	case core.ParamTypeFloat:
		if p.floatSetter == nil {
			return 0, false
		}
		if step <= 0 {
			step = defaultFloatStep
		}
	default:
		return 0, false
	}
	target := s.control.Clamp(s.value + float64(dir)*step)
	if math.Abs(target-s.value) < 1e-9 {
		return 0, false
	}
	return target, true
}

func (p *controlPanel) adjust(i, dir int) bool {
	target, ok := p.next(i, dir)
	if !ok {
		return false
	}
	s := &p.states[i]
	switch s.control.Type {
	case core.ParamTypeInt:
		if !p.intSetter.SetIntParameter(s.control.Key, int(target)) {
			return false
		}
		s.text = strconv.Itoa(int(target))
	default:
		if !p.floatSetter.SetFloatParameter(s.control.Key, target) {
			return false
		}
		s.text = formatValue(s.control, target)
	}
	s.value = target
	return true
}

func formatValue(ctrl core.ParameterControl, value float64) string {
	step := ctrl.Step
	if step <= 0 {
		step = defaultFloatStep
	}
	precision := 1
	switch {
	case step < 0.001:
		precision = 4
	case step < 0.01:
		precision = 3
	case step < 0.1:
		precision = 2
	}
	return strconv.FormatFloat(value, 'f', precision, 64)
}
