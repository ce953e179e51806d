//go:build ebiten

package app

import (
	"fmt"
	"image/color"
	"time"

	"watercolor/internal/core"
	"watercolor/internal/render"
	"watercolor/internal/ui"
	"watercolor/internal/watercolor"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	hudWidth     = 220
	minBrushSize = 1.0
	maxBrushSize = 64.0
)

// Game adapts the watercolor engine to the ebiten.Game interface.
type Game struct {
	engine  *watercolor.Engine
	painter *render.CanvasPainter
	hud     *ui.HUD
	overlay *ui.Overlay
	stepper *core.FixedStep
	session watercolor.StrokeSession
	brush   Brush

	scale    int
	paused   bool
	tickOnce bool
}

// New constructs a Game driving engine at tps ticks per second.
func New(engine *watercolor.Engine, scale, tps int) *Game {
	scale = max(scale, 1)
	size := engine.Size()
	g := &Game{
		engine:  engine,
		painter: render.NewCanvasPainter(size.W, size.H),
		hud:     ui.NewHUD(engine, hudWidth),
		overlay: ui.NewOverlay(engine, scale),
		stepper: core.NewFixedStep(tps),
		brush:   DefaultBrush(),
		scale:   scale,
	}
	g.session = watercolor.NewStrokeSession(g.brush.Size)
	return g
}

// Reset clears the canvas and ends any stroke in progress.
func (g *Game) Reset() {
	g.engine.Reset()
	g.session.End()
	g.tickOnce = false
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.paused = false
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		g.engine.SetShowTexture(!g.engine.ShowTexture())
	}
	g.handleBrushKeys()

	g.hud.SetStatus(g.brush.String())
	g.hud.Update(g.canvasWidth())
	g.overlay.Update()
	g.handlePointer(time.Now())

	switch {
	case g.paused:
		if g.tickOnce {
			g.engine.Step()
		}
	default:
		for n := g.stepper.Due(time.Now()); n > 0; n-- {
			g.engine.Step()
		}
	}
	g.tickOnce = false
	return nil
}

func (g *Game) handleBrushKeys() {
	modes := []ebiten.Key{ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3, ebiten.KeyDigit4}
	for i, key := range modes {
		if inpututil.IsKeyJustPressed(key) {
			g.brush.Mode = watercolor.Mode(i)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.brush.NextColor()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft) {
		g.brush.Size = max(g.brush.Size-1, minBrushSize)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketRight) {
		g.brush.Size = min(g.brush.Size+1, maxBrushSize)
	}
	g.session.BaseSize = g.brush.Size
}

// handlePointer feeds left-button drags over the canvas into the session.
func (g *Game) handlePointer(now time.Time) {
	mx, my := ebiten.CursorPosition()
	inside := mx >= 0 && my >= 0 && mx < g.canvasWidth() && my < g.engine.Height()*g.scale
	if !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) || !inside {
		g.session.End()
		return
	}
	x, y := mx/g.scale, my/g.scale
	var step watercolor.StrokeStep
	if g.session.Active() {
		step = g.session.Move(x, y, now)
	} else {
		step = g.session.Begin(x, y, now)
	}
	g.engine.Apply(g.brush.Stroke(step))
}

// Draw renders the current canvas, overlays and the parameter panel.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.White)
	g.painter.Blit(screen, g.engine, g.scale)
	g.overlay.Draw(screen)
	g.hud.Draw(screen, g.canvasWidth(), g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.canvasWidth() + g.hud.Width(), g.engine.Height() * g.scale
}

// Title is the window title.
func (g *Game) Title() string {
	return fmt.Sprintf("watercolor (%dx%d)", g.engine.Width(), g.engine.Height())
}

func (g *Game) canvasWidth() int { return g.engine.Width() * g.scale }
