package loop

import (
	"fmt"
	"time"

	"github.com/tomz197/vocabshooter/internal/draw"
	"github.com/tomz197/vocabshooter/internal/input"
	"github.com/tomz197/vocabshooter/internal/shooter"
	"github.com/tomz197/vocabshooter/internal/vocab"
)

// startSession builds the stages for mode and starts the first one.
func (a *App) startSession(mode vocab.PlayMode) {
	a.stages = vocab.BuildStages(a.pairs, mode, a.rng)
	a.stageIndex = 0
	a.session = NewSession(a.pairs, a.now)
	a.logger.Info("session started", "user", a.opts.Username, "topic", a.topic.ID, "stages", len(a.stages))
	a.startStage()
}

// startStage creates the round for the current stage.
func (a *App) startStage() {
	stage := a.stages[a.stageIndex]
	var tone shooter.Tone
	if a.opts.NewTone != nil {
		tone = a.opts.NewTone()
	}

	a.line.Clear()
	a.round = shooter.New(stage.Items, shooter.Options{
		Label:    stage.Label,
		Mode:     stage.Mode,
		Infinite: stage.Infinite,
		Streak:   a.session.Streak,
		OnComplete: func(missed []vocab.QuizItem, stats shooter.Stats) {
			a.session.Record(missed, stats)
		},
		OnExit: func() {
			a.logger.Info("round abandoned", "user", a.opts.Username, "stage", stage.ID)
		},
		Tone:     tone,
		Voice:    a.opts.Voice,
		Logger:   a.logger,
		Rand:     a.rng,
		Viewport: a.viewport(),
	})
	a.forceClear = true
	a.setState(GameStatePlaying)
}

// updatePlaying feeds keys to the round and advances it. ESC abandons the
// round; an ended round moves on to the next stage or the summary.
func (a *App) updatePlaying(in input.Input, delta time.Duration) {
	if a.round == nil {
		a.setState(GameStateMenu)
		return
	}

	if in.Pressed(input.KeyEscape) {
		a.round.Exit()
	} else if line, ok := a.line.Apply(in); ok {
		outcome := a.round.Submit(line)
		a.logger.Debug("answer submitted", "outcome", outcome)
	}

	a.round.Step(delta)

	switch a.round.State() {
	case shooter.StateEnded:
		a.teardownRound()
		a.stageIndex++
		if a.stageIndex < len(a.stages) {
			a.startStage()
			return
		}
		a.logger.Info("session complete", "user", a.opts.Username,
			"correct", a.session.Correct, "incorrect", a.session.Incorrect, "wpm", a.session.WPM())
		a.setState(GameStateSummary)
	case shooter.StateAborted:
		a.teardownRound()
		a.session = nil
		a.setState(GameStateMenu)
	}
}

// teardownRound releases the current round, if any.
func (a *App) teardownRound() {
	if a.round == nil {
		return
	}
	a.round.Teardown()
	a.round = nil
	a.line.Clear()
}

// drawPlayingHUD queues the in-game HUD on the overlay.
// Text fields use fixed-width formatting so shrinking values don't leave
// residual characters on screen.
func (a *App) drawPlayingHUD() {
	r := a.round
	width := a.canvas.TerminalWidth()
	height := a.canvas.TerminalHeight()

	labelColor := draw.ColorCyan
	hint := "ESC: GIVE UP"
	if r.Infinite() {
		labelColor = draw.ColorPurple
		hint = "ESC: EXIT ZEN MODE"
	}

	a.overlay.Add(2, 1, labelColor, true, fmt.Sprintf("%-16s", r.Label()))
	if r.Infinite() {
		a.overlay.Add(2, 2, draw.ColorDim, false, fmt.Sprintf("SCORE: %-6d", r.Stats().Correct))
	} else {
		a.overlay.Add(2, 2, draw.ColorDim, false, fmt.Sprintf("TARGETS: %-4d", r.QueueLen()+r.LiveTargets()))
	}
	a.overlay.Add(2, 3, draw.ColorDim, false, fmt.Sprintf("STREAK: %-5d", r.Stats().Streak))
	a.overlay.Add(width-draw.TextWidth(hint), 1, draw.ColorRose, true, hint)

	field, placeholder := a.inputField()
	fieldColor := labelColor
	if placeholder {
		fieldColor = draw.ColorDim
	}
	a.overlay.AddCentered(width/2+1, height-1, fieldColor, true, field)
}

// inputField renders the answer line padded to a fixed width. placeholder
// is set when the line is empty.
func (a *App) inputField() (field string, placeholder bool) {
	const fieldWidth = 40
	text := a.line.Value()
	if text == "" {
		placeholder = true
		if a.round.LiveTargets() > 0 {
			text = "TYPE ANY ANSWER"
		} else {
			text = "SCANNING..."
		}
	}
	text = draw.Truncate(text, fieldWidth-4)
	pad := fieldWidth - 4 - draw.TextWidth(text)
	left := pad / 2
	return fmt.Sprintf("[ %*s%s%*s ]", left, "", text, pad-left, ""), placeholder
}
