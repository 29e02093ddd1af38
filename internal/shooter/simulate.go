package shooter

import (
	"math"
	"time"

	"github.com/tomz197/vocabshooter/internal/loop/config"
	"github.com/tomz197/vocabshooter/internal/object"
)

// Step advances the round by dt of game time. dt is clamped to
// config.MaxFrameDelta. Step does nothing once the round has ended, was
// abandoned or torn down.
func (r *Round) Step(dt time.Duration) {
	if r.tornDown || (r.state != StateInitializing && r.state != StateRunning) {
		return
	}
	if dt < 0 {
		dt = 0
	}
	if dt > config.MaxFrameDelta {
		dt = config.MaxFrameDelta
	}
	ctx := object.NewUpdateContext(dt, r.rng)
	r.clock += dt

	r.decayShake(ctx.Frames)

	// Stars wrap at the near plane and are never removed.
	for _, s := range r.stars {
		s.Update(ctx)
	}

	if r.state == StateInitializing {
		r.overlayLeft -= dt
		if r.overlayLeft > 0 {
			return
		}
		r.state = StateRunning
		r.lastSpawn = r.clock - config.SpawnCooldown
		r.logger.Debug("round running", "label", r.label)
	}

	recycled := r.advanceTargets(ctx)
	r.spawn(recycled)
	r.relock()
	r.updateEffects(ctx)

	if r.queue.Len() == 0 && len(r.targets) == 0 && len(r.particles) == 0 {
		r.end()
	}
}

func (r *Round) decayShake(frames float64) {
	if r.shake <= 0 {
		return
	}
	r.shake *= math.Pow(config.ShakeDamping, frames)
	if r.shake < config.ShakeCutoff {
		r.shake = 0
	}
}

// advanceTargets moves targets and recycles the ones that reached the
// viewer. It returns how many items were pushed back.
func (r *Round) advanceTargets(ctx object.UpdateContext) int {
	recycled := 0
	kept := r.targets[:0]
	for _, t := range r.targets {
		if !t.Update(ctx) {
			kept = append(kept, t)
			continue
		}
		r.crash(t)
		recycled++
	}
	for i := len(kept); i < len(r.targets); i++ {
		r.targets[i] = nil
	}
	r.targets = kept
	return recycled
}

func (r *Round) crash(t *object.Target) {
	t.Active = false
	r.queue.PushBack(t.Item)
	r.shake = config.CrashShake

	if r.mode != ModeQuiz {
		return
	}
	r.stats.crash()
	if _, seen := r.missedSeen[t.Item.ID]; !seen {
		r.missedSeen[t.Item.ID] = struct{}{}
		r.missed = append(r.missed, t.Item)
	}
	r.logger.Debug("target reached viewer", "item", t.Item.ID, "incorrect", r.stats.Incorrect)
}

// spawn pops the queue head into a new target. Items recycled during this
// step sit at the tail and only become eligible on the next step.
func (r *Round) spawn(recycled int) {
	if r.queue.Len()-recycled <= 0 || len(r.targets) >= config.MaxTargets {
		return
	}
	if r.clock-r.lastSpawn < config.SpawnCooldown {
		return
	}
	item, _ := r.queue.PopFront()
	r.lastSpawn = r.clock
	r.nextID++
	r.targets = append(r.targets, object.NewTarget(r.nextID, item, r.rng))

	r.safely("voice", func() {
		r.voice.Speak(item.Question, item.Direction.QuestionLang())
		r.voice.Speak(item.Answer, item.Direction.AnswerLang())
	})
}

// relock marks the nearest target. Equal depths go to the lowest id.
func (r *Round) relock() {
	var nearest *object.Target
	for _, t := range r.targets {
		if nearest == nil || t.Z < nearest.Z || (t.Z == nearest.Z && t.ID < nearest.ID) {
			nearest = t
		}
	}
	for _, t := range r.targets {
		t.Locked = t == nearest
	}
}

func (r *Round) updateEffects(ctx object.UpdateContext) {
	r.particles = object.UpdatePool(r.particles, ctx)

	if r.beam != nil && r.beam.Update(ctx) {
		r.beam = nil
	}
}

func (r *Round) end() {
	r.state = StateEnded
	r.logger.Debug("round complete", "label", r.label,
		"correct", r.stats.Correct, "incorrect", r.stats.Incorrect, "streak", r.stats.Streak)
	if r.onComplete != nil {
		r.onComplete(r.Missed(), r.stats)
	}
}
