package shooter

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/width"

	"github.com/tomz197/vocabshooter/internal/loop/config"
	"github.com/tomz197/vocabshooter/internal/object"
)

// Outcome is the result of a submit.
type Outcome int

const (
	OutcomeIgnored Outcome = iota // Empty input or round not running
	OutcomeHit
	OutcomeMiss
)

func (o Outcome) String() string {
	switch o {
	case OutcomeHit:
		return "hit"
	case OutcomeMiss:
		return "miss"
	default:
		return "ignored"
	}
}

// Normalize trims s, folds full-width forms and lowercases it.
// Typing "ＨＥＬＬＯ" through an IME matches "hello".
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	s = width.Fold.String(s)
	return cases.Lower(language.Und).String(s)
}

// Submit resolves a committed line against the live targets.
func (r *Round) Submit(text string) Outcome {
	if r.state != StateRunning || r.tornDown {
		return OutcomeIgnored
	}
	want := Normalize(text)
	if want == "" {
		return OutcomeIgnored
	}

	for i, t := range r.targets {
		if Normalize(t.Item.Answer) != want {
			continue
		}
		r.targets = append(r.targets[:i], r.targets[i+1:]...)
		r.hit(t)
		return OutcomeHit
	}

	if r.shake < config.WrongShake {
		r.shake = config.WrongShake
	}
	r.logger.Debug("submit matched no target", "round", r.label)
	return OutcomeMiss
}

func (r *Round) hit(t *object.Target) {
	t.Active = false
	at := t.Screen()
	object.SpawnBurst(at, r.rng, r)
	r.beam = object.NewBeam(at)
	r.safely("tone", r.tone.PlayHit)

	if r.infinite {
		r.queue.PushBack(t.Item)
	}
	r.stats.hit()
	r.relock()
}

// SpawnParticle implements object.Spawner.
func (r *Round) SpawnParticle(p *object.Particle) {
	r.particles = append(r.particles, p)
}
