package object

import (
	"math/rand"

	"github.com/tomz197/vocabshooter/internal/draw"
	"github.com/tomz197/vocabshooter/internal/loop/config"
	"github.com/tomz197/vocabshooter/internal/physics"
	"github.com/tomz197/vocabshooter/internal/vocab"
)

// Target is a live on-screen instance of one quiz item.
type Target struct {
	ID     uint64 // Instance id, distinct from Item.ID
	Item   vocab.QuizItem
	X, Y   float64
	Z      float64
	Active bool
	Locked bool // Nearest live target
}

// NewTarget creates a target for item at the spawn depth and a random offset.
func NewTarget(id uint64, item vocab.QuizItem, rng *rand.Rand) *Target {
	return &Target{
		ID:     id,
		Item:   item,
		X:      (rng.Float64() - 0.5) * config.SpawnSpreadX,
		Y:      (rng.Float64() - 0.5) * config.SpawnSpreadY,
		Z:      config.SpawnZ,
		Active: true,
	}
}

// Screen returns the projected centre of the target.
func (t *Target) Screen() physics.Point {
	return physics.Project(t.X, t.Y, t.Z)
}

// Crossed reports whether the target has reached the viewer.
func (t *Target) Crossed() bool {
	return t.Z <= config.ScreenZ
}

// Update moves the target toward the viewer. It returns true once the
// target crossed the viewer threshold.
func (t *Target) Update(ctx UpdateContext) bool {
	t.Z -= ctx.Advance()
	return t.Crossed()
}

// Draw renders the box, the lock line for the nearest target and the text.
func (t *Target) Draw(ctx DrawContext) {
	p := t.Screen()
	if t.Z < config.ScreenZ || !ctx.View.WithinLateral(p, 2) {
		return
	}
	scale := physics.Scale(t.Z)
	boxW := config.TargetBoxWidth * scale
	boxH := config.TargetBoxHeight * scale
	c := ctx.Point(p)

	ctx.Canvas.SetPen(draw.ColorNone)
	ctx.Canvas.DrawRect(c.X, c.Y, boxW, boxH, true)
	if t.Locked {
		ctx.Canvas.SetPen(draw.ColorRose)
	} else {
		ctx.Canvas.SetPen(draw.ColorDimCyan)
	}
	ctx.Canvas.DrawRect(c.X, c.Y, boxW, boxH, false)

	if t.Locked {
		_, cy := ctx.View.Center()
		ctx.Canvas.SetPen(draw.ColorDimRose)
		ctx.Canvas.DrawLine(
			ctx.Point(physics.Point{X: 0, Y: cy}),
			ctx.Point(physics.Point{X: p.X, Y: p.Y + boxH/2}),
		)
	}

	lift := config.TargetTextLift * scale
	ctx.Text(physics.Point{X: p.X, Y: p.Y - lift}, draw.ColorWhite, true, t.Item.Question)
	if ctx.ShowAnswers {
		ctx.Text(physics.Point{X: p.X, Y: p.Y + lift}, draw.ColorGreen, false, t.Item.Answer)
	}
}
