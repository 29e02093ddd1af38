package shooter

import (
	"fmt"
	"io"
	"math/rand"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/vocabshooter/internal/draw"
	"github.com/tomz197/vocabshooter/internal/loop/config"
	mock_shooter "github.com/tomz197/vocabshooter/internal/shooter/mock"
	"github.com/tomz197/vocabshooter/internal/vocab"
)

const tick = 100 * time.Millisecond

// warmup is the number of ticks until the label overlay is gone and the
// first target spawns.
var warmup = int(config.OverlayDuration / tick)

// crossTicks is enough ticks for a freshly spawned target to reach the viewer.
var crossTicks = int((config.SpawnZ-config.ScreenZ)/(config.Speed*tick.Seconds())) + 1

func quizItems(answers ...string) []vocab.QuizItem {
	out := make([]vocab.QuizItem, len(answers))
	for i, a := range answers {
		p := &vocab.Pair{ID: fmt.Sprint(i + 1), Chinese: "字" + a, English: a}
		out[i] = vocab.NewQuizItem(p, vocab.ZhToEn)
	}
	return out
}

func newTestRound(items []vocab.QuizItem, opts Options) *Round {
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(42))
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return New(items, opts)
}

func stepN(r *Round, n int) {
	for i := 0; i < n; i++ {
		r.Step(tick)
	}
}

func liveIDs(r *Round) map[string]int {
	ids := map[string]int{}
	for _, t := range r.targets {
		ids[t.Item.ID]++
	}
	return ids
}

func TestRound_InitializingShowsLabelThenSpawns(t *testing.T) {
	r := newTestRound(quizItems("hello"), Options{Label: "PRACTICE MODE"})
	assert.Equal(t, StateInitializing, r.State())
	assert.True(t, r.ShowingLabel())

	stepN(r, warmup-1)
	assert.Equal(t, StateInitializing, r.State())
	assert.Zero(t, r.LiveTargets(), "nothing spawns under the overlay")
	assert.Equal(t, OutcomeIgnored, r.Submit("hello"))

	r.Step(tick)
	assert.Equal(t, StateRunning, r.State())
	assert.Equal(t, 1, r.LiveTargets(), "first target spawns as the overlay closes")
	assert.Zero(t, r.QueueLen())
}

func TestRound_SpawnCooldownAndCap(t *testing.T) {
	r := newTestRound(quizItems("a", "b", "c", "d", "e"), Options{})
	stepN(r, warmup)
	require.Equal(t, 1, r.LiveTargets())

	stepN(r, int(config.SpawnCooldown/tick)-1)
	assert.Equal(t, 1, r.LiveTargets(), "cooldown not yet elapsed")
	r.Step(tick)
	assert.Equal(t, 2, r.LiveTargets())

	stepN(r, int(config.SpawnCooldown/tick)*3)
	assert.Equal(t, config.MaxTargets, r.LiveTargets())
	assert.Equal(t, 2, r.QueueLen())
}

func TestRound_SpawnSpeaksQuestionThenAnswer(t *testing.T) {
	ctrl := gomock.NewController(t)
	voice := mock_shooter.NewMockVoice(ctrl)
	gomock.InOrder(
		voice.EXPECT().Speak("字hello", vocab.LangChinese),
		voice.EXPECT().Speak("hello", vocab.LangEnglish),
	)

	r := newTestRound(quizItems("hello"), Options{Voice: voice})
	stepN(r, warmup)
	require.Equal(t, 1, r.LiveTargets())
}

func TestRound_QueueTargetDisjoint(t *testing.T) {
	items := quizItems("a", "b", "c", "d", "e")
	r := newTestRound(items, Options{Mode: ModeQuiz})

	for step := 0; step < 800; step++ {
		r.Step(tick)
		live := liveIDs(r)
		for _, it := range items {
			inQueue := r.queue.Count(it.ID)
			assert.Equal(t, 1, inQueue+live[it.ID], "step %d item %s", step, it.ID)
		}
		if step%37 == 0 && r.LiveTargets() > 0 {
			r.Submit("wrong")
		}
	}
}

func TestRound_MissRecyclesItem(t *testing.T) {
	for _, mode := range []Mode{ModeGuided, ModeQuiz} {
		for _, infinite := range []bool{false, true} {
			t.Run(fmt.Sprintf("%s infinite=%v", mode, infinite), func(t *testing.T) {
				items := quizItems("hello")
				r := newTestRound(items, Options{Mode: mode, Infinite: infinite})
				stepN(r, warmup)
				require.Equal(t, 1, r.LiveTargets())

				for i := 0; i < crossTicks && r.LiveTargets() > 0; i++ {
					r.Step(tick)
				}

				assert.Zero(t, r.LiveTargets())
				assert.Equal(t, items, r.Queue())
				assert.Equal(t, config.CrashShake, r.Shake())

				r.Step(tick)
				assert.Equal(t, 1, r.LiveTargets(), "recycled item is available on the next step")
			})
		}
	}
}

func TestRound_CrashAccounting(t *testing.T) {
	tests := []struct {
		name          string
		mode          Mode
		wantIncorrect int
		wantStreak    int
		wantMissed    int
	}{
		{"quiz counts the miss", ModeQuiz, 1, 0, 1},
		{"guided ignores the miss", ModeGuided, 0, 3, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRound(quizItems("hello"), Options{Mode: tt.mode, Streak: 3})
			stepN(r, warmup)
			for i := 0; i < crossTicks && r.LiveTargets() > 0; i++ {
				r.Step(tick)
			}

			s := r.Stats()
			assert.Equal(t, tt.wantIncorrect, s.Incorrect)
			assert.Equal(t, tt.wantStreak, s.Streak)
			assert.Zero(t, s.Correct)
			assert.Equal(t, 3, s.MaxStreak)
			assert.Len(t, r.Missed(), tt.wantMissed)
		})
	}
}

func TestRound_MissedItemsAreDistinct(t *testing.T) {
	items := quizItems("hello")
	r := newTestRound(items, Options{Mode: ModeQuiz})
	stepN(r, warmup+crossTicks*3)

	assert.GreaterOrEqual(t, r.Stats().Incorrect, 2)
	assert.Equal(t, items, r.Missed())
}

func TestRound_HitRemovesOnlyMatchedTarget(t *testing.T) {
	ctrl := gomock.NewController(t)
	tone := mock_shooter.NewMockTone(ctrl)
	tone.EXPECT().PlayHit().Times(1)

	r := newTestRound(quizItems("alpha", "bravo", "charlie"), Options{Tone: tone, Streak: 1})
	stepN(r, warmup+int(config.SpawnCooldown/tick)*2)
	require.Equal(t, 3, r.LiveTargets())

	before := r.Targets()
	victim := before[1]

	assert.Equal(t, OutcomeHit, r.Submit(victim.Item.Answer))

	after := r.Targets()
	require.Len(t, after, 2)
	assert.Equal(t, before[0].ID, after[0].ID)
	assert.Equal(t, before[2].ID, after[1].ID)
	assert.Equal(t, 1, r.Stats().Correct)
	assert.Equal(t, 2, r.Stats().Streak)
	assert.Equal(t, config.BurstParticles, r.Particles())
	assert.NotNil(t, r.beam)
	assert.Zero(t, r.QueueLen(), "non-infinite hits are discarded")
}

func TestRound_SubmitNormalizes(t *testing.T) {
	inputs := []string{"Hello", " hello ", "HELLO", "ＨＥＬＬＯ", "hello\t"}
	for _, in := range inputs {
		t.Run(fmt.Sprintf("%q", in), func(t *testing.T) {
			r := newTestRound(quizItems("hello"), Options{})
			stepN(r, warmup)
			assert.Equal(t, OutcomeHit, r.Submit(in))
		})
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "hello", Normalize("  HeLLo "))
	assert.Equal(t, "ice cream", Normalize("Ice Cream"))
	assert.Equal(t, "你好", Normalize(" 你好"))
	assert.Empty(t, Normalize(" \t "))
}

func TestRound_EmptySubmitIsNoop(t *testing.T) {
	ctrl := gomock.NewController(t)
	tone := mock_shooter.NewMockTone(ctrl) // Any PlayHit fails the test

	r := newTestRound(quizItems("hello"), Options{Tone: tone})
	stepN(r, warmup)
	before := r.Targets()
	stats := r.Stats()

	for _, in := range []string{"", "   ", "\t\n"} {
		assert.Equal(t, OutcomeIgnored, r.Submit(in))
	}
	assert.Equal(t, before, r.Targets())
	assert.Equal(t, stats, r.Stats())
	assert.Zero(t, r.Shake())
	assert.Zero(t, r.Particles())
}

func TestRound_WrongSubmitShakesOnly(t *testing.T) {
	r := newTestRound(quizItems("hello"), Options{Mode: ModeQuiz, Streak: 2})
	stepN(r, warmup)

	assert.Equal(t, OutcomeMiss, r.Submit("goodbye"))
	assert.Equal(t, config.WrongShake, r.Shake())
	assert.Equal(t, 1, r.LiveTargets())
	assert.Equal(t, Stats{Streak: 2, MaxStreak: 2}, r.Stats(), "typos do not count as incorrect")

	for i := 0; i < 40 && r.Shake() > 0; i++ {
		r.Step(tick)
	}
	assert.Zero(t, r.Shake(), "shake decays to zero")
}

func TestRound_InfiniteNeverTerminates(t *testing.T) {
	completed := false
	r := newTestRound(quizItems("one", "two"), Options{
		Infinite:   true,
		OnComplete: func([]vocab.QuizItem, Stats) { completed = true },
	})

	for step := 0; step < 3000; step++ {
		r.Step(tick)
		for _, tg := range r.Targets() {
			require.Equal(t, OutcomeHit, r.Submit(tg.Item.Answer))
		}
		require.NotEqual(t, StateEnded, r.State(), "step %d", step)
	}

	assert.False(t, completed)
	assert.Greater(t, r.Stats().Correct, 50)
	assert.Equal(t, 2, r.QueueLen()+r.LiveTargets())
}

func TestRound_TerminatesAfterAllHit(t *testing.T) {
	calls := 0
	var got Stats
	var missed []vocab.QuizItem
	r := newTestRound(quizItems("alpha", "bravo"), Options{
		Mode: ModeQuiz,
		OnComplete: func(m []vocab.QuizItem, s Stats) {
			calls++
			got = s
			missed = m
		},
	})

	for step := 0; step < 400 && r.State() != StateEnded; step++ {
		r.Step(tick)
		for _, tg := range r.Targets() {
			r.Submit(tg.Item.Answer)
		}
	}

	require.Equal(t, StateEnded, r.State())
	assert.Equal(t, 1, calls)
	assert.Equal(t, 2, got.Correct)
	assert.Zero(t, got.Incorrect)
	assert.Equal(t, 2, got.Streak)
	assert.Empty(t, missed)

	stepN(r, 50)
	r.Exit()
	assert.Equal(t, 1, calls, "completion fires exactly once")
	assert.Equal(t, OutcomeIgnored, r.Submit("alpha"))
}

func TestRound_EndWaitsForParticles(t *testing.T) {
	r := newTestRound(quizItems("hello"), Options{})
	stepN(r, warmup)
	require.Equal(t, OutcomeHit, r.Submit("hello"))

	r.Step(tick)
	assert.Equal(t, StateRunning, r.State(), "burst still alive")
	assert.Positive(t, r.Particles())

	stepN(r, 20)
	assert.Equal(t, StateEnded, r.State())
	assert.Zero(t, r.Particles())
}

func TestRound_ExitIsIdempotent(t *testing.T) {
	exits, completes := 0, 0
	r := newTestRound(quizItems("hello"), Options{
		OnExit:     func() { exits++ },
		OnComplete: func([]vocab.QuizItem, Stats) { completes++ },
	})
	stepN(r, warmup)

	r.Exit()
	r.Exit()
	stepN(r, 10)

	assert.Equal(t, StateAborted, r.State())
	assert.Equal(t, 1, exits)
	assert.Zero(t, completes, "abandonment reports no stats")
}

func TestRound_ExitDuringOverlay(t *testing.T) {
	exits := 0
	r := newTestRound(quizItems("hello"), Options{OnExit: func() { exits++ }})
	r.Step(tick)
	r.Exit()
	assert.Equal(t, 1, exits)
	assert.Equal(t, StateAborted, r.State())
}

func TestRound_TeardownIsIdempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	tone := mock_shooter.NewMockTone(ctrl)
	voice := mock_shooter.NewMockVoice(ctrl)
	voice.EXPECT().Speak(gomock.Any(), gomock.Any()).AnyTimes()
	voice.EXPECT().Cancel().Times(1)
	tone.EXPECT().Close().Return(assert.AnError).Times(1)

	completes := 0
	r := newTestRound(quizItems("hello"), Options{
		Tone:       tone,
		Voice:      voice,
		OnComplete: func([]vocab.QuizItem, Stats) { completes++ },
	})
	stepN(r, warmup)

	assert.NotPanics(t, func() {
		r.Teardown()
		r.Teardown()
		r.Exit()
		r.Teardown()
	})
	stepN(r, 10)
	assert.Zero(t, completes)
	assert.Equal(t, OutcomeIgnored, r.Submit("hello"))
}

type panickyVoice struct{}

func (panickyVoice) Speak(_, _ string) { panic("no voices") }
func (panickyVoice) Cancel()           { panic("no voices") }

func TestRound_SideEffectFailuresAreSwallowed(t *testing.T) {
	r := newTestRound(quizItems("hello"), Options{Voice: panickyVoice{}})
	assert.NotPanics(t, func() {
		stepN(r, warmup)
		r.Teardown()
	})
	assert.Equal(t, 1, r.LiveTargets())
}

func TestRound_LockNearestLowestIDOnTie(t *testing.T) {
	r := newTestRound(quizItems("a", "b", "c"), Options{})
	stepN(r, warmup+int(config.SpawnCooldown/tick)*2)
	require.Len(t, r.targets, 3)

	r.targets[0].Z = 900
	r.targets[1].Z = 400
	r.targets[2].Z = 400
	r.relock()

	assert.False(t, r.targets[0].Locked)
	assert.True(t, r.targets[1].Locked)
	assert.False(t, r.targets[2].Locked)

	r.Step(tick)
	locked := 0
	for _, tg := range r.targets {
		if tg.Locked {
			locked++
		}
	}
	assert.Equal(t, 1, locked)
}

func TestRound_StepClampsDelta(t *testing.T) {
	r := newTestRound(quizItems("hello"), Options{})
	stepN(r, warmup)
	z := r.targets[0].Z

	r.Step(10 * time.Second)
	assert.InDelta(t, z-config.Speed*config.MaxFrameDelta.Seconds(), r.targets[0].Z, 1e-6)

	r.Step(-time.Second)
	assert.Equal(t, 1, r.LiveTargets())
}

func TestRound_DrawDoesNotMutate(t *testing.T) {
	r := newTestRound(quizItems("hello", "world"), Options{Mode: ModeGuided, Label: "ZEN TRAINING", Infinite: true})
	canvas := draw.NewScaledCanvas(80, 24, config.VirtualWidth, 768)
	var overlay draw.Overlay
	r.Resize(config.VirtualWidth, 768)

	r.Draw(canvas, &overlay)
	assert.Equal(t, 1, overlay.Len(), "label overlay while initializing")

	stepN(r, warmup)
	r.Submit("wrong")
	before := r.Targets()
	shake := r.Shake()

	overlay = draw.Overlay{}
	r.Draw(canvas, &overlay)
	assert.Equal(t, before, r.Targets())
	assert.Equal(t, shake, r.Shake())
	assert.Equal(t, 2, overlay.Len(), "question and answer of the live target")
}

func TestQueue(t *testing.T) {
	items := quizItems("a", "b")
	q := NewQueue(items)
	items[0].Answer = "changed"

	head, ok := q.PopFront()
	require.True(t, ok)
	assert.Equal(t, "a", head.Answer, "queue holds a copy")

	q.PushBack(head)
	assert.Equal(t, []string{"2-zh2en", "1-zh2en"}, []string{q.Items()[0].ID, q.Items()[1].ID})
	assert.Equal(t, 1, q.Count("1-zh2en"))

	q.PopFront()
	q.PopFront()
	_, ok = q.PopFront()
	assert.False(t, ok)
	assert.Zero(t, q.Len())
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "hit", OutcomeHit.String())
	assert.Equal(t, "miss", OutcomeMiss.String())
	assert.Equal(t, "ignored", OutcomeIgnored.String())
	assert.Equal(t, "aborted", StateAborted.String())
}
