// Package shooter runs one round of the typing shooter: targets carrying
// quiz items fly toward the viewer and are destroyed by typing their answer.
//
// A Round is not safe for concurrent use. The host calls Step, Submit and
// Draw from its frame loop goroutine.
package shooter

import (
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/vocabshooter/internal/loop/config"
	"github.com/tomz197/vocabshooter/internal/object"
	"github.com/tomz197/vocabshooter/internal/physics"
	"github.com/tomz197/vocabshooter/internal/vocab"
)

// State is the lifecycle state of a round.
type State int

const (
	StateInitializing State = iota // Label overlay, stars only
	StateRunning
	StateEnded   // Completed normally, stats reported
	StateAborted // Abandoned by the player, no stats
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateRunning:
		return "running"
	case StateEnded:
		return "ended"
	case StateAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Mode re-exports the stage modes.
type Mode = vocab.Mode

const (
	ModeGuided = vocab.ModeGuided
	ModeQuiz   = vocab.ModeQuiz
)

// Options configures a round.
type Options struct {
	Label    string
	Mode     Mode
	Infinite bool // Hits are recycled to the queue tail
	Streak   int  // Carried in from the previous round

	// OnComplete fires once when the round ends normally. missed holds the
	// distinct items that reached the viewer in a quiz round.
	OnComplete func(missed []vocab.QuizItem, stats Stats)
	// OnExit fires once when the player abandons the round.
	OnExit func()

	Tone     Tone
	Voice    Voice
	Logger   *log.Logger
	Rand     *rand.Rand
	Viewport physics.Viewport
}

// Round is one shooter round. All mutation goes through Step, Submit,
// Resize, Exit and Teardown.
type Round struct {
	label    string
	mode     Mode
	infinite bool

	onComplete func([]vocab.QuizItem, Stats)
	onExit     func()
	tone       Tone
	voice      Voice
	logger     *log.Logger
	rng        *rand.Rand
	shakeRng   *rand.Rand

	state       State
	clock       time.Duration // Game time since New
	overlayLeft time.Duration
	lastSpawn   time.Duration
	nextID      uint64

	view      physics.Viewport
	queue     *Queue
	stars     []*object.Star
	targets   []*object.Target // Spawn order, ascending ID
	particles []*object.Particle
	beam      *object.Beam
	shake     float64

	stats      Stats
	missed     []vocab.QuizItem
	missedSeen map[string]struct{}

	tornDown bool
}

// New seeds a round with a copy of items. The round starts in
// StateInitializing showing its label.
func New(items []vocab.QuizItem, opts Options) *Round {
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	mode := opts.Mode
	if mode == "" {
		mode = ModeGuided
	}
	view := opts.Viewport
	if view.Width <= 0 || view.Height <= 0 {
		view = physics.NewViewport(config.VirtualWidth, config.MinVirtualHeight)
	}

	r := &Round{
		label:       opts.Label,
		mode:        mode,
		infinite:    opts.Infinite,
		onComplete:  opts.OnComplete,
		onExit:      opts.OnExit,
		tone:        opts.Tone,
		voice:       opts.Voice,
		logger:      logger.WithPrefix("round"),
		rng:         rng,
		shakeRng:    rand.New(rand.NewSource(rng.Int63())),
		state:       StateInitializing,
		overlayLeft: config.OverlayDuration,
		view:        view,
		queue:       NewQueue(items),
		stars:       object.NewStarField(config.StarCount, rng),
		stats:       newStats(opts.Streak),
		missedSeen:  make(map[string]struct{}),
	}
	if r.tone == nil {
		r.tone = silent{}
	}
	if r.voice == nil {
		r.voice = silent{}
	}
	r.logger.Debug("round created", "label", r.label, "mode", r.mode, "infinite", r.infinite, "items", len(items))
	return r
}

// State returns the lifecycle state.
func (r *Round) State() State {
	return r.state
}

// Stats returns the current counters.
func (r *Round) Stats() Stats {
	return r.stats
}

// Label returns the stage label.
func (r *Round) Label() string {
	return r.label
}

// Mode returns the round mode.
func (r *Round) Mode() Mode {
	return r.mode
}

// Infinite reports whether hits are recycled.
func (r *Round) Infinite() bool {
	return r.infinite
}

// ShowingLabel reports whether the label overlay is visible.
func (r *Round) ShowingLabel() bool {
	return r.state == StateInitializing
}

// Queue returns a snapshot of the spawn queue.
func (r *Round) Queue() []vocab.QuizItem {
	return r.queue.Items()
}

// QueueLen returns the number of items waiting to spawn.
func (r *Round) QueueLen() int {
	return r.queue.Len()
}

// Targets returns copies of the live targets in spawn order.
func (r *Round) Targets() []object.Target {
	out := make([]object.Target, len(r.targets))
	for i, t := range r.targets {
		out[i] = *t
	}
	return out
}

// LiveTargets returns the number of live targets.
func (r *Round) LiveTargets() int {
	return len(r.targets)
}

// Particles returns the number of live feedback particles.
func (r *Round) Particles() int {
	return len(r.particles)
}

// Shake returns the current camera shake magnitude.
func (r *Round) Shake() float64 {
	return r.shake
}

// Missed returns the distinct items that crossed the viewer so far in a quiz round.
func (r *Round) Missed() []vocab.QuizItem {
	out := make([]vocab.QuizItem, len(r.missed))
	copy(out, r.missed)
	return out
}

// Resize updates the viewport in virtual pixels.
func (r *Round) Resize(width, height float64) {
	r.view = physics.NewViewport(width, height)
}

// Viewport returns the current viewport.
func (r *Round) Viewport() physics.Viewport {
	return r.view
}

// Exit abandons the round. OnExit fires on the first call from
// StateInitializing or StateRunning; later calls and calls after the round
// ended do nothing.
func (r *Round) Exit() {
	if r.state != StateInitializing && r.state != StateRunning {
		return
	}
	r.state = StateAborted
	r.logger.Debug("round abandoned", "label", r.label)
	if r.onExit != nil {
		r.onExit()
	}
}

// Teardown releases the round's resources: pending speech is cancelled and
// the tone output closed. It may be called any number of times and never
// fires a callback.
func (r *Round) Teardown() {
	if r.tornDown {
		return
	}
	r.tornDown = true

	r.safely("voice", r.voice.Cancel)
	r.safely("tone", func() {
		if err := r.tone.Close(); err != nil {
			r.logger.Warn("failed to close tone output", "err", err)
		}
	})
	object.ReleaseAll(r.particles)
	r.particles = nil
}
