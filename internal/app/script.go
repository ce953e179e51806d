package app

import (
	"math"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"watercolor/internal/watercolor"
)

// ScriptFPS is the pointer sample rate a Script is replayed at.
const ScriptFPS = 60

// ScriptedStroke is one pointer drag: the brush moves from From to To over
// Duration seconds, following Ease.
type ScriptedStroke struct {
	Brush    Brush
	From, To [2]float64
	Duration float64
	Ease     ease.TweenFunc
	// Settle is how many simulation ticks to run after the drag ends.
	Settle int
}

// Script is an ordered list of drags replayed headlessly.
type Script []ScriptedStroke

// DemoScript lays a wash, drops two colours into it and lifts a highlight,
// scaled to a w*h canvas.
func DemoScript(w, h int) Script {
	fw, fh := float64(w), float64(h)
	at := func(x, y float64) [2]float64 { return [2]float64{x * fw, y * fh} }

	wash := DefaultBrush()
	wash.ColorIdx = 1
	wash.Size = math.Max(fw/10, 3)
	wash.Water = 1
	wash.Pigment = 0.35

	red := DefaultBrush()
	red.Size = math.Max(fw/16, 2)

	yellow := red
	yellow.ColorIdx = 2

	lift := DefaultBrush()
	lift.Mode = watercolor.ModeWater
	lift.Size = math.Max(fw/20, 2)

	return Script{
		{Brush: wash, From: at(0.15, 0.3), To: at(0.85, 0.3), Duration: 1.2, Ease: ease.InOutSine, Settle: 20},
		{Brush: wash, From: at(0.85, 0.45), To: at(0.15, 0.45), Duration: 1.2, Ease: ease.InOutSine, Settle: 60},
		{Brush: red, From: at(0.25, 0.7), To: at(0.75, 0.6), Duration: 0.6, Ease: ease.OutCubic, Settle: 10},
		{Brush: yellow, From: at(0.3, 0.8), To: at(0.7, 0.75), Duration: 0.4, Ease: ease.InQuad, Settle: 120},
		{Brush: lift, From: at(0.4, 0.35), To: at(0.6, 0.4), Duration: 0.3, Ease: ease.Linear, Settle: 30},
	}
}

// Play replays the script on e, stepping the simulation once per pointer
// sample, and reports the ticks it ran.
func (s Script) Play(e *watercolor.Engine) int {
	ticks := 0
	now := time.Unix(0, 0)
	frame := time.Second / ScriptFPS
	dt := float32(1.0 / ScriptFPS)

	for _, st := range s {
		fn := st.Ease
		if fn == nil {
			fn = ease.Linear
		}
		dur := float32(math.Max(st.Duration, 1.0/ScriptFPS))
		tx := gween.New(float32(st.From[0]), float32(st.To[0]), dur, fn)
		ty := gween.New(float32(st.From[1]), float32(st.To[1]), dur, fn)

		session := watercolor.NewStrokeSession(st.Brush.Size)
		step := session.Begin(int(st.From[0]), int(st.From[1]), now)
		e.Apply(st.Brush.Stroke(step))
		for {
			now = now.Add(frame)
			x, done := tx.Update(dt)
			y, _ := ty.Update(dt)
			step = session.Move(int(math.Round(float64(x))), int(math.Round(float64(y))), now)
			e.Apply(st.Brush.Stroke(step))
			e.Step()
			ticks++
			if done {
				break
			}
		}
		session.End()
		for i := 0; i < st.Settle; i++ {
			e.Step()
			ticks++
		}
	}
	return ticks
}
