package object

import (
	"math"
	"math/rand"

	"github.com/tomz197/vocabshooter/internal/draw"
	"github.com/tomz197/vocabshooter/internal/loop/config"
	"github.com/tomz197/vocabshooter/internal/physics"
)

// farStarDepth is where stars switch to their dim color.
const farStarDepth = config.MaxDepth * 2 / 3

// Star is a background depth particle. Stars are recycled in place.
type Star struct {
	X, Y, Z float64
	Size    float64
	Color   draw.Color
}

// NewStar creates a star at a random depth.
func NewStar(rng *rand.Rand) *Star {
	s := &Star{
		Z:     rng.Float64() * config.MaxDepth,
		Size:  rng.Float64() * config.StarMaxSize,
		Color: draw.ColorWhite,
	}
	s.scatter(rng)
	if rng.Float64() < config.StarAccentRate {
		s.Color = draw.ColorCyan
	}
	return s
}

// NewStarField creates n stars.
func NewStarField(n int, rng *rand.Rand) []*Star {
	stars := make([]*Star, n)
	for i := range stars {
		stars[i] = NewStar(rng)
	}
	return stars
}

func (s *Star) scatter(rng *rand.Rand) {
	s.X = (rng.Float64() - 0.5) * config.StarSpread
	s.Y = (rng.Float64() - 0.5) * config.StarSpread
}

// Recycle moves the star back to the far plane at a new offset.
func (s *Star) Recycle(rng *rand.Rand) {
	s.Z = config.MaxDepth
	s.scatter(rng)
}

// Update moves the star toward the viewer and wraps it at the near plane.
// Stars are never removed.
func (s *Star) Update(ctx UpdateContext) bool {
	s.Z -= ctx.Advance()
	if s.Z <= 0 {
		s.Recycle(ctx.Rand)
	}
	return false
}

// Draw renders the star when it projects inside the viewport.
func (s *Star) Draw(ctx DrawContext) {
	p := physics.Project(s.X, s.Y, s.Z)
	if !ctx.View.Contains(p) {
		return
	}
	r := math.Max(0.5, s.Size*physics.Scale(s.Z)*0.05)

	color := s.Color
	if s.Z > farStarDepth {
		color = dimmed(color)
	}
	ctx.Canvas.SetPen(color)
	pt := ctx.Point(p)
	ctx.Canvas.FillCircle(pt.X, pt.Y, r)
}

func dimmed(c draw.Color) draw.Color {
	switch c {
	case draw.ColorCyan:
		return draw.ColorDimCyan
	case draw.ColorRose:
		return draw.ColorDimRose
	default:
		return draw.ColorDim
	}
}
