package watercolor

import (
	"math"
	"time"

	"github.com/tanema/gween/ease"
)

const (
	// velocitySmoothing is the weight of the newest speed sample.
	velocitySmoothing = 0.35
	frameSeconds      = 1.0 / 60
	minSampleSeconds  = 1.0 / 240

	// taperVelocity is the speed, in cells per frame, at which the brush
	// reaches its narrowest size.
	taperVelocity = 40.0
	minTaperScale = 0.6
)

// StrokeSession follows one pointer drag and turns raw samples into stroke
// segments with a smoothed speed and a speed-tapered brush size. The caller
// owns the session; the engine never stores it.
type StrokeSession struct {
	BaseSize float64
	// Taper shapes how the size shrinks with speed. Nil means ease.OutQuad.
	Taper ease.TweenFunc

	active       bool
	lastX, lastY int
	lastTime     time.Time
	velocity     float64
}

// StrokeStep is what one pointer sample should paint.
type StrokeStep struct {
	Segment  Segment
	Velocity float64
	Size     float64
}

// NewStrokeSession returns an idle session for a brush of the given size.
func NewStrokeSession(size float64) StrokeSession {
	return StrokeSession{BaseSize: size, Taper: ease.OutQuad}
}

// Active reports whether a drag is in progress.
func (s *StrokeSession) Active() bool { return s.active }

// Velocity returns the smoothed pointer speed in cells per frame.
func (s *StrokeSession) Velocity() float64 { return s.velocity }

// Begin starts a drag at (x, y) and returns a single-point step.
func (s *StrokeSession) Begin(x, y int, now time.Time) StrokeStep {
	s.active = true
	s.lastX, s.lastY = x, y
	s.lastTime = now
	s.velocity = 0
	return StrokeStep{Segment: Point(x, y), Size: s.Radius()}
}

// Move extends the drag to (x, y). Without a prior Begin it starts one.
func (s *StrokeSession) Move(x, y int, now time.Time) StrokeStep {
	if !s.active {
		return s.Begin(x, y, now)
	}
	elapsed := math.Max(now.Sub(s.lastTime).Seconds(), minSampleSeconds)
	dist := math.Hypot(float64(x-s.lastX), float64(y-s.lastY))
	raw := dist / elapsed * frameSeconds
	s.velocity += velocitySmoothing * (raw - s.velocity)

	seg := Segment{X0: s.lastX, Y0: s.lastY, X1: x, Y1: y}
	s.lastX, s.lastY = x, y
	s.lastTime = now
	return StrokeStep{Segment: seg, Velocity: s.velocity, Size: s.Radius()}
}

// End finishes the drag.
func (s *StrokeSession) End() {
	s.active = false
	s.velocity = 0
}

// Radius returns the brush size for the current smoothed speed.
func (s *StrokeSession) Radius() float64 { return s.radiusAt(s.velocity) }

func (s *StrokeSession) radiusAt(velocity float64) float64 {
	fn := s.Taper
	if fn == nil {
		fn = ease.OutQuad
	}
	t := float32(clamp01(velocity / taperVelocity))
	scale := fn(t, 1, float32(minTaperScale-1), 1)
	return s.BaseSize * float64(scale)
}
