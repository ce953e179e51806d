package watercolor

import (
	"math"
	"testing"
	"time"
)

func TestStrokeSessionLifecycle(t *testing.T) {
	s := NewStrokeSession(4)
	if s.Active() {
		t.Fatalf("new session should be idle")
	}
	start := time.Unix(100, 0)
	step := s.Begin(3, 4, start)
	if !s.Active() || step.Segment != Point(3, 4) || step.Velocity != 0 || step.Size != 4 {
		t.Fatalf("unexpected begin step: %+v", step)
	}

	step = s.Move(7, 4, start.Add(time.Second/60))
	want := Segment{X0: 3, Y0: 4, X1: 7, Y1: 4}
	if step.Segment != want {
		t.Fatalf("segment %+v, want %+v", step.Segment, want)
	}
	if !closeTo(step.Velocity, velocitySmoothing*4, 1e-6) {
		t.Fatalf("velocity %v, want %v", step.Velocity, velocitySmoothing*4)
	}
	if step.Size > 4 || step.Size <= 0 {
		t.Fatalf("moving brush size %v out of range", step.Size)
	}

	s.End()
	if s.Active() || s.Velocity() != 0 {
		t.Fatalf("End did not reset the session")
	}
	if step := s.Move(1, 1, start.Add(time.Second)); step.Segment != Point(1, 1) || !s.Active() {
		t.Fatalf("Move on an idle session should begin a new stroke: %+v", step)
	}
}

func TestStrokeSessionVelocityConverges(t *testing.T) {
	s := NewStrokeSession(3)
	now := time.Unix(0, 0)
	s.Begin(0, 0, now)
	prev := 0.0
	for i := 1; i <= 40; i++ {
		now = now.Add(time.Second / 60)
		step := s.Move(i*2, 0, now)
		if step.Velocity < prev {
			t.Fatalf("sample %d: smoothed velocity fell from %v to %v at constant speed", i, prev, step.Velocity)
		}
		prev = step.Velocity
	}
	if !closeTo(prev, 2, 1e-3) {
		t.Fatalf("velocity converged to %v, want 2", prev)
	}
}

func TestStrokeSessionTaperIsMonotone(t *testing.T) {
	s := NewStrokeSession(10)
	if got := s.radiusAt(0); got != 10 {
		t.Fatalf("radius at rest = %v", got)
	}
	prev := math.Inf(1)
	for v := 0.0; v <= 2*taperVelocity; v += 0.5 {
		r := s.radiusAt(v)
		if r > prev {
			t.Fatalf("radius grew from %v to %v at velocity %v", prev, r, v)
		}
		prev = r
	}
	if !closeTo(prev, 10*minTaperScale, 1e-6) {
		t.Fatalf("fastest radius %v, want %v", prev, 10*minTaperScale)
	}

	s.Taper = nil
	if got := s.radiusAt(taperVelocity); !closeTo(got, 10*minTaperScale, 1e-6) {
		t.Fatalf("nil taper should fall back to the default curve, got %v", got)
	}
}

func TestStrokeSessionHandlesSameTimestamp(t *testing.T) {
	s := NewStrokeSession(2)
	now := time.Unix(5, 0)
	s.Begin(0, 0, now)
	step := s.Move(1, 0, now)
	if math.IsInf(step.Velocity, 0) || math.IsNaN(step.Velocity) {
		t.Fatalf("zero elapsed time produced velocity %v", step.Velocity)
	}
}
