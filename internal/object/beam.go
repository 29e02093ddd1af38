package object

import (
	"github.com/tomz197/vocabshooter/internal/draw"
	"github.com/tomz197/vocabshooter/internal/loop/config"
	"github.com/tomz197/vocabshooter/internal/physics"
)

// Beam is the laser drawn from the bottom centre to a hit target.
type Beam struct {
	To   physics.Point
	Life float64
}

// NewBeam creates a full-strength beam toward p.
func NewBeam(p physics.Point) *Beam {
	return &Beam{To: p, Life: 1}
}

// Update fades the beam. Returns true when it is spent.
func (b *Beam) Update(ctx UpdateContext) bool {
	b.Life -= config.BeamDecay * ctx.Frames
	return b.Life <= 0
}

// Draw renders the beam, dimming as it fades.
func (b *Beam) Draw(ctx DrawContext) {
	if b.Life <= 0 {
		return
	}
	_, cy := ctx.View.Center()
	if b.Life > 0.5 {
		ctx.Canvas.SetPen(draw.ColorCyan)
	} else {
		ctx.Canvas.SetPen(draw.ColorDimCyan)
	}
	ctx.Canvas.DrawLine(ctx.Point(physics.Point{X: 0, Y: cy}), ctx.Point(b.To))
}
