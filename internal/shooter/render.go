package shooter

import (
	"sort"

	"github.com/tomz197/vocabshooter/internal/draw"
	"github.com/tomz197/vocabshooter/internal/object"
	"github.com/tomz197/vocabshooter/internal/physics"
)

// Draw paints the current frame: stars, beam, targets far to near, then
// particles. Text is queued on overlay. Draw does not change simulation state.
func (r *Round) Draw(canvas *draw.Canvas, overlay *draw.Overlay) {
	ctx := object.DrawContext{
		Canvas:      canvas,
		Overlay:     overlay,
		View:        r.view,
		ShowAnswers: r.mode == ModeGuided,
	}
	if r.shake > 0 {
		ctx.Shake = physics.Point{
			X: (r.shakeRng.Float64() - 0.5) * r.shake,
			Y: (r.shakeRng.Float64() - 0.5) * r.shake,
		}
	}

	for _, s := range r.stars {
		s.Draw(ctx)
	}
	if r.beam != nil {
		r.beam.Draw(ctx)
	}

	order := make([]*object.Target, len(r.targets))
	copy(order, r.targets)
	sort.SliceStable(order, func(i, j int) bool { return order[i].Z > order[j].Z })
	for _, t := range order {
		t.Draw(ctx)
	}

	for _, p := range r.particles {
		p.Draw(ctx)
	}

	if r.state == StateInitializing && r.label != "" {
		color := draw.ColorCyan
		if r.infinite {
			color = draw.ColorPurple
		}
		ctx.Shake = physics.Point{}
		ctx.Text(physics.Point{}, color, true, r.label)
	}
}
