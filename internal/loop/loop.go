// Package loop hosts a vocabulary session in a terminal: topic menu,
// deck loading, study screen, shooter rounds and the summary.
package loop

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/vocabshooter/internal/draw"
	"github.com/tomz197/vocabshooter/internal/input"
	"github.com/tomz197/vocabshooter/internal/loop/config"
	"github.com/tomz197/vocabshooter/internal/physics"
	"github.com/tomz197/vocabshooter/internal/shooter"
	"github.com/tomz197/vocabshooter/internal/vocab"
)

// Options configures an App.
type Options struct {
	TermSizeFunc draw.TermSizeFunc
	Source       vocab.Source        // Defaults to vocab.MockSource
	NewTone      func() shooter.Tone // Called once per round
	Voice        shooter.Voice       // Shared by all rounds of the session
	Logger       *log.Logger
	Rand         *rand.Rand
	Username     string
	IdleTimeout  bool // Warn and then disconnect idle players
}

// App runs one player's session. It owns the terminal writer and the
// current round; everything happens on the Run goroutine.
type App struct {
	opts     Options
	source   vocab.Source
	logger   *log.Logger
	rng      *rand.Rand
	ctx      context.Context
	now      func() time.Time
	termSize draw.TermSizeFunc

	screen      *draw.Screen
	stream      *input.Stream
	canvas      *draw.Canvas
	chunkWriter *draw.ChunkWriter
	overlay     draw.Overlay
	styles      styles

	state       GameState
	prevState   GameState
	forceClear  bool
	running     bool
	lastInput   time.Time
	inactive    bool
	wasInactive bool

	menuIndex  int
	topic      vocab.Topic
	loadCh     chan loadResult
	loadCancel context.CancelFunc
	banner     string // Error shown on the menu
	uiCache    string // Card block currently on screen

	pairs      []*vocab.Pair
	session    *Session
	stages     []vocab.Stage
	stageIndex int
	round      *shooter.Round
	line       *input.LineEditor
}

type loadResult struct {
	pairs []*vocab.Pair
	err   error
}

// NewApp creates a session reading keys from r and drawing to w.
func NewApp(r *bufio.Reader, w io.Writer, opts Options) *App {
	termSize := opts.TermSizeFunc
	if termSize == nil {
		termSize = draw.DefaultTermSizeFunc
	}
	source := opts.Source
	if source == nil {
		source = vocab.MockSource{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	termWidth, termHeight, _ := draw.TerminalSizeRawWith(termSize)
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	vw, vh := virtualSize(renderWidth, renderHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, vw, vh)
	canvas.SetOffset(offsetCol, offsetRow)

	a := &App{
		opts:        opts,
		source:      source,
		logger:      logger,
		rng:         rng,
		ctx:         context.Background(),
		now:         time.Now,
		termSize:    termSize,
		screen:      draw.NewScreen(w),
		canvas:      canvas,
		chunkWriter: draw.NewChunkWriter(w, offsetCol, offsetRow),
		styles:      newStyles(w),
		state:       GameStateMenu,
		prevState:   GameStateMenu,
		running:     true,
		line:        input.NewLineEditor(config.MaxInputLength),
	}
	if r != nil {
		a.stream = input.StartStream(r)
	}
	a.lastInput = a.now()
	return a
}

// State returns the current screen.
func (a *App) State() GameState {
	return a.state
}

// Run drives the frame loop until the player quits, the input closes or
// ctx is cancelled. The current round is torn down on every exit path.
func (a *App) Run(ctx context.Context) error {
	a.ctx = ctx
	a.screen.Enter()
	defer a.screen.Leave()
	defer a.shutdown()

	ticker := time.NewTicker(config.ClientTargetFrameTime)
	defer ticker.Stop()

	lastTime := a.now()
	for a.running {
		select {
		case <-ctx.Done():
			a.logger.Debug("session cancelled", "user", a.opts.Username)
			a.running = false
			continue
		case <-ticker.C:
		}

		frameStart := a.now()
		delta := frameStart.Sub(lastTime)
		lastTime = frameStart

		a.updateScreen()
		a.step(a.readInput(), delta)

		if err := a.drawFrame(); err != nil {
			return fmt.Errorf("failed to draw frame: %w", err)
		}
	}
	return nil
}

func (a *App) readInput() input.Input {
	if a.stream == nil {
		return input.Input{}
	}
	return input.ReadInput(a.stream)
}

// step applies one frame of input and advances the current screen by delta.
func (a *App) step(in input.Input, delta time.Duration) {
	a.trackActivity(in)
	if in.Quit() || in.Closed {
		a.running = false
		return
	}

	switch a.state {
	case GameStateMenu:
		a.updateMenu(in)
	case GameStateLoading:
		a.updateLoading(in)
	case GameStateStudy:
		a.updateStudy(in)
	case GameStatePlaying:
		a.updatePlaying(in, delta)
	case GameStateSummary:
		a.updateSummary(in)
	}
}

func (a *App) trackActivity(in input.Input) {
	if len(in.Keys) > 0 {
		a.lastInput = a.now()
		a.inactive = false
		return
	}
	if !a.opts.IdleTimeout {
		return
	}
	idle := a.idleFor().Seconds()
	if idle > config.InactivityDisconnectUser {
		a.logger.Info("disconnecting idle player", "user", a.opts.Username)
		a.running = false
	} else if idle > config.InactivityWarnUser {
		a.inactive = true
	}
}

func (a *App) setState(s GameState) {
	a.logger.Debug("state change", "from", a.state, "to", s)
	a.state = s
}

// shutdown releases the round and any pending deck load.
func (a *App) shutdown() {
	a.teardownRound()
	if a.loadCancel != nil {
		a.loadCancel()
		a.loadCancel = nil
	}
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area.
func (a *App) updateScreen() {
	termWidth, termHeight, err := draw.TerminalSizeRawWith(a.termSize)
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	if renderWidth != a.canvas.TerminalWidth() || renderHeight != a.canvas.TerminalHeight() ||
		offsetCol != a.canvas.OffsetCol() || offsetRow != a.canvas.OffsetRow() {
		a.screen.Clear()
		a.canvas.ForceRedraw()
		a.uiCache = ""
	}

	vw, vh := virtualSize(renderWidth, renderHeight)
	a.canvas.Resize(renderWidth, renderHeight)
	a.canvas.SetLogicalSize(vw, vh)
	a.canvas.SetOffset(offsetCol, offsetRow)
	a.chunkWriter.SetOffset(offsetCol, offsetRow)
	if a.round != nil {
		if v := a.round.Viewport(); v.Width != vw || v.Height != vh {
			a.round.Resize(vw, vh)
		}
	}
}

// clampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = termWidth
	renderHeight = termHeight
	if renderWidth > config.MaxTermWidth {
		renderWidth = config.MaxTermWidth
	}
	if renderHeight > config.MaxTermHeight {
		renderHeight = config.MaxTermHeight
	}
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}

// virtualSize returns the viewport in virtual pixels for a render area of
// cols x rows cells. Sub-pixels are square in virtual units.
func virtualSize(cols, rows int) (width, height float64) {
	width = config.VirtualWidth
	if cols <= 0 || rows <= 0 {
		return width, config.MinVirtualHeight
	}
	height = width * float64(rows*2) / float64(cols)
	if height < config.MinVirtualHeight {
		height = config.MinVirtualHeight
	}
	return width, height
}

func (a *App) viewport() physics.Viewport {
	return physics.NewViewport(a.canvas.LogicalWidth(), a.canvas.LogicalHeight())
}

// drawFrame draws the current frame.
func (a *App) drawFrame() error {
	// On screen or inactivity transitions, do a full terminal clear so text
	// from the previous screen doesn't persist.
	stateChanged := a.state != a.prevState
	inactiveChanged := a.inactive != a.wasInactive
	if stateChanged || inactiveChanged || a.forceClear {
		a.chunkWriter.ClearScreen()
		a.canvas.ForceRedraw()
		a.uiCache = ""
		a.prevState = a.state
		a.wasInactive = a.inactive
		a.forceClear = false
	}

	a.canvas.Clear()
	if a.state == GameStatePlaying && a.round != nil && !a.inactive {
		a.round.Draw(a.canvas, &a.overlay)
		a.drawPlayingHUD()
	}

	a.canvas.Render(a.chunkWriter)
	a.canvas.RenderBorder(a.chunkWriter)
	a.overlay.Flush(a.chunkWriter, a.canvas)

	a.drawUI()

	return a.chunkWriter.Flush()
}
