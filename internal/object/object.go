package object

import (
	"math/rand"
	"time"

	"github.com/tomz197/vocabshooter/internal/draw"
	"github.com/tomz197/vocabshooter/internal/loop/config"
	"github.com/tomz197/vocabshooter/internal/physics"
)

// UpdateContext provides all the information an object needs during update.
type UpdateContext struct {
	Delta  time.Duration
	Frames float64 // Delta expressed in 60 Hz reference frames
	Rand   *rand.Rand
}

// NewUpdateContext derives the frame count from dt.
func NewUpdateContext(dt time.Duration, rng *rand.Rand) UpdateContext {
	return UpdateContext{
		Delta:  dt,
		Frames: dt.Seconds() * config.ReferenceFPS,
		Rand:   rng,
	}
}

// Advance returns how far an object moves toward the viewer this update.
func (ctx UpdateContext) Advance() float64 {
	return config.Speed * ctx.Delta.Seconds()
}

// DrawContext provides drawing resources for objects.
// Positions handed to objects are relative to the viewport centre; Point
// applies the centre and the camera shake.
type DrawContext struct {
	Canvas  *draw.Canvas  // High-resolution canvas (2x vertical)
	Overlay *draw.Overlay // Text drawn after the canvas
	View    physics.Viewport
	Shake   physics.Point // Camera offset for this frame

	ShowAnswers bool // Guided rounds print the answer under each question
}

// Point converts a centre-relative position into canvas coordinates.
func (ctx DrawContext) Point(p physics.Point) draw.Point {
	cx, cy := ctx.View.Center()
	return draw.Point{X: cx + p.X + ctx.Shake.X, Y: cy + p.Y + ctx.Shake.Y}
}

// Text queues s centred on the centre-relative position p.
func (ctx DrawContext) Text(p physics.Point, color draw.Color, bold bool, s string) {
	if ctx.Overlay == nil || ctx.Canvas == nil {
		return
	}
	cp := ctx.Point(p)
	col, row := ctx.Canvas.LogicalToTerminal(cp.X, cp.Y)
	ctx.Overlay.AddCentered(col, row, color, bold, s)
}

// Object is a drawable and updatable game entity.
type Object interface {
	// Update updates the object state. Returns true if the object should be removed.
	Update(ctx UpdateContext) (remove bool)

	// Draw draws the object.
	Draw(ctx DrawContext)
}

// Releasable is implemented by pooled objects that can be returned to a pool.
type Releasable interface {
	// Release returns the object to its pool for reuse.
	Release()
}

// ReleaseObject releases an object back to its pool if it implements Releasable.
func ReleaseObject(obj Object) {
	if r, ok := obj.(Releasable); ok {
		r.Release()
	}
}

// UpdatePool updates every object in objs and drops the ones that ask to be
// removed, releasing them. objs is compacted in place; the result keeps the
// original order.
func UpdatePool[T Object](objs []T, ctx UpdateContext) []T {
	kept := objs[:0]
	for _, obj := range objs {
		if obj.Update(ctx) {
			ReleaseObject(obj)
			continue
		}
		kept = append(kept, obj)
	}
	var zero T
	for i := len(kept); i < len(objs); i++ {
		objs[i] = zero
	}
	return kept
}

// ReleaseAll releases every object in objs.
func ReleaseAll[T Object](objs []T) {
	for _, obj := range objs {
		ReleaseObject(obj)
	}
}
