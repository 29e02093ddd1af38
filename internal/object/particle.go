package object

import (
	"math/rand"
	"sync"

	"github.com/tomz197/vocabshooter/internal/draw"
	"github.com/tomz197/vocabshooter/internal/loop/config"
	"github.com/tomz197/vocabshooter/internal/physics"
)

// particlePool is a sync.Pool for reusing Particle objects to reduce allocations.
var particlePool = sync.Pool{
	New: func() any {
		return &Particle{}
	},
}

// Spawner receives particles created during a hit.
type Spawner interface {
	SpawnParticle(p *Particle)
}

// Particle is a short-lived visual effect in centre-relative screen space.
type Particle struct {
	X, Y   float64    // Position
	VX, VY float64    // Velocity per reference frame
	Life   float64    // 1 when spawned, removed at 0
	Color  draw.Color // Color at full life
}

// NewParticle creates a single particle from the pool.
func NewParticle(x, y, vx, vy float64, color draw.Color) *Particle {
	p := particlePool.Get().(*Particle)
	p.X = x
	p.Y = y
	p.VX = vx
	p.VY = vy
	p.Life = 1
	p.Color = color
	return p
}

// Release returns the particle to the pool for reuse.
// Should be called when the particle is removed from the game.
func (p *Particle) Release() {
	particlePool.Put(p)
}

var burstColors = [2]draw.Color{draw.ColorCyan, draw.ColorRose}

// SpawnBurst creates the hit explosion at a centre-relative screen point.
// Velocities are uniform in a square of side config.BurstSpeed; colors alternate.
func SpawnBurst(at physics.Point, rng *rand.Rand, spawner Spawner) {
	if spawner == nil {
		return
	}
	for i := 0; i < config.BurstParticles; i++ {
		vx := (rng.Float64() - 0.5) * config.BurstSpeed
		vy := (rng.Float64() - 0.5) * config.BurstSpeed
		spawner.SpawnParticle(NewParticle(at.X, at.Y, vx, vy, burstColors[i%2]))
	}
}

// Update moves the particle and decays its life.
func (p *Particle) Update(ctx UpdateContext) bool {
	p.X += p.VX * ctx.Frames
	p.Y += p.VY * ctx.Frames
	p.Life -= config.ParticleDecay * ctx.Frames
	return p.Life <= 0
}

// Draw renders the particle as a disc that shrinks and dims with its life.
func (p *Particle) Draw(ctx DrawContext) {
	if p.Life <= 0 {
		return
	}
	color := p.Color
	if p.Life < 0.4 {
		color = dimmed(color)
	}
	ctx.Canvas.SetPen(color)
	pt := ctx.Point(physics.Point{X: p.X, Y: p.Y})
	ctx.Canvas.FillCircle(pt.X, pt.Y, 1+4*p.Life)
}
