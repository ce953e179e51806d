package ui

import (
	"testing"

	"watercolor/internal/core"
	"watercolor/internal/watercolor"
)

const testPanelWidth = 220

func stateIndex(t *testing.T, p *controlPanel, key string) int {
	t.Helper()
	for i, s := range p.states {
		if s.control.Key == key {
			return i
		}
	}
	t.Fatalf("no control %q", key)
	return -1
}

func TestControlPanelRefreshReadsSnapshot(t *testing.T) {
	e := watercolor.New(8, 8)
	p := newControlPanel(e, testPanelWidth)
	if len(p.states) != len(e.ParameterControls()) {
		t.Fatalf("got %d rows, want %d", len(p.states), len(e.ParameterControls()))
	}
	p.refresh(e.Parameters())

	evap := p.states[stateIndex(t, p, "evaporation")]
	if !evap.ok || evap.text != "0.0020" {
		t.Fatalf("evaporation row = %+v", evap)
	}
	iter := p.states[stateIndex(t, p, "iterations")]
	if !iter.ok || iter.text != "10" || iter.value != 10 {
		t.Fatalf("iterations row = %+v", iter)
	}

	p.refresh(core.ParameterSnapshot{})
	if p.states[0].ok || p.states[0].text != "--" {
		t.Fatalf("missing parameter should reset the row: %+v", p.states[0])
	}
}

func TestControlPanelClickAdjustsEngine(t *testing.T) {
	e := watercolor.New(8, 8)
	p := newControlPanel(e, testPanelWidth)
	p.refresh(e.Parameters())

	i := stateIndex(t, p, "pressure")
	plus := p.states[i].plus
	if !p.click(plus.Min.X+1, plus.Min.Y+1) {
		t.Fatalf("click on + did not register")
	}
	if got := e.Physics().Pressure; got != 5.5 {
		t.Fatalf("pressure = %v, want 5.5", got)
	}

	i = stateIndex(t, p, "iterations")
	minus := p.states[i].minus
	if !p.click(minus.Min.X+1, minus.Min.Y+1) {
		t.Fatalf("click on - did not register")
	}
	if got := e.Physics().Iterations; got != 9 {
		t.Fatalf("iterations = %v, want 9", got)
	}

	if p.click(0, 0) {
		t.Fatalf("click outside any button should be ignored")
	}
}

func TestControlPanelStopsAtBounds(t *testing.T) {
	e := watercolor.New(8, 8)
	e.SetFloatParameter("granularity", 0)
	p := newControlPanel(e, testPanelWidth)
	p.refresh(e.Parameters())

	i := stateIndex(t, p, "granularity")
	if _, ok := p.next(i, -1); ok {
		t.Fatalf("granularity at its minimum should not step down")
	}
	if v, ok := p.next(i, 1); !ok || v != 0.1 {
		t.Fatalf("step up = %v (ok=%v)", v, ok)
	}
}

func TestControlPanelWithoutSetters(t *testing.T) {
	p := newControlPanel(struct{}{}, testPanelWidth)
	if len(p.states) != 0 || p.click(10, 10) {
		t.Fatalf("plain values should yield an empty panel")
	}
}

func TestArrowGridCoversCanvas(t *testing.T) {
	size := core.Size{W: 300, H: 200}
	samples, span := arrowGrid(size, 2)
	if len(samples) == 0 {
		t.Fatalf("no samples")
	}
	spacing := span / 2
	if spacing < minArrowSpacing || spacing > maxArrowSpacing {
		t.Fatalf("spacing %v out of range", spacing)
	}
	for _, s := range samples {
		if s.x < 0 || s.x >= size.W || s.y < 0 || s.y >= size.H {
			t.Fatalf("sample outside the canvas: %+v", s)
		}
		if s.sx != (float64(s.x)+0.5)*2 {
			t.Fatalf("screen x %v does not match cell %d", s.sx, s.x)
		}
	}
	if got, _ := arrowGrid(core.Size{}, 1); got != nil {
		t.Fatalf("empty canvas should have no samples")
	}
}
