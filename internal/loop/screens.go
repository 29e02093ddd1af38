package loop

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/tomz197/vocabshooter/internal/input"
	"github.com/tomz197/vocabshooter/internal/loop/config"
	"github.com/tomz197/vocabshooter/internal/vocab"
)

// updateMenu moves the topic selection and starts loading on Enter.
func (a *App) updateMenu(in input.Input) {
	n := len(vocab.Topics)
	switch {
	case in.Pressed(input.KeyUp), in.Pressed(input.KeyLeft):
		a.menuIndex = (a.menuIndex + n - 1) % n
	case in.Pressed(input.KeyDown), in.Pressed(input.KeyRight), in.Pressed(input.KeyTab):
		a.menuIndex = (a.menuIndex + 1) % n
	}
	if d := in.Digit(); d >= 1 && d <= n {
		a.menuIndex = d - 1
	}
	if in.Pressed(input.KeyEnter) {
		a.startLoading(vocab.Topics[a.menuIndex])
	}
}

// startLoading fetches the deck for topic in the background.
func (a *App) startLoading(topic vocab.Topic) {
	a.topic = topic
	a.banner = ""
	ctx, cancel := context.WithCancel(a.ctx)
	ch := make(chan loadResult, 1)
	a.loadCh = ch
	a.loadCancel = cancel

	go func() {
		pairs, err := a.source.Load(ctx, topic)
		ch <- loadResult{pairs: pairs, err: err}
	}()
	a.setState(GameStateLoading)
}

// updateLoading polls the pending load. ESC cancels it.
func (a *App) updateLoading(in input.Input) {
	if in.Pressed(input.KeyEscape) {
		a.cancelLoading()
		a.setState(GameStateMenu)
		return
	}

	select {
	case res := <-a.loadCh:
		a.cancelLoading()
		if res.err == nil && len(res.pairs) == 0 {
			res.err = vocab.ErrEmptyDeck
		}
		if res.err != nil {
			a.logger.Warn("failed to load deck", "topic", a.topic.ID, "err", res.err)
			a.banner = fmt.Sprintf("Could not load %s vocabulary. Please try again.", a.topic.Label)
			if errors.Is(res.err, vocab.ErrEmptyDeck) {
				a.banner = fmt.Sprintf("No %s vocabulary available.", a.topic.Label)
			}
			a.setState(GameStateMenu)
			return
		}
		a.pairs = res.pairs
		a.logger.Debug("deck loaded", "topic", a.topic.ID, "pairs", len(res.pairs))
		a.setState(GameStateStudy)
	default:
	}
}

func (a *App) cancelLoading() {
	if a.loadCancel != nil {
		a.loadCancel()
	}
	a.loadCancel = nil
	a.loadCh = nil
}

// updateStudy picks the play mode: 1 guided, 2 zen, 3 survival.
func (a *App) updateStudy(in input.Input) {
	if in.Pressed(input.KeyEscape) {
		a.setState(GameStateMenu)
		return
	}
	switch in.Digit() {
	case 1:
		a.startSession(vocab.PlayGuided)
	case 2:
		a.startSession(vocab.PlayInfinite)
	case 3:
		a.startSession(vocab.PlaySurvival)
	}
}

// updateSummary returns to the menu on Enter.
func (a *App) updateSummary(in input.Input) {
	if in.Pressed(input.KeyEnter) || in.Pressed(input.KeyEscape) {
		a.session = nil
		a.setState(GameStateMenu)
	}
}

// drawUI draws the card screens. A block is only written when it differs
// from what is on screen.
func (a *App) drawUI() {
	var block string
	switch {
	case a.inactive:
		block = a.inactivityScreen()
	case a.state == GameStateMenu:
		block = a.menuScreen()
	case a.state == GameStateLoading:
		block = a.loadingScreen()
	case a.state == GameStateStudy:
		block = a.studyScreen()
	case a.state == GameStateSummary:
		block = a.summaryScreen()
	default:
		a.uiCache = ""
		return
	}

	if block == a.uiCache {
		return
	}
	if a.uiCache != "" {
		a.chunkWriter.WriteString("\033[H\033[2J")
		a.canvas.ForceRedraw()
	}
	a.uiCache = block
	a.writeCentered(block)
}

// writeCentered writes a styled block centred on the render area, clipped
// to it.
func (a *App) writeCentered(block string) {
	width := a.canvas.TerminalWidth()
	height := a.canvas.TerminalHeight()
	block = a.styles.r.NewStyle().MaxWidth(width).MaxHeight(height).Render(block)

	lines := strings.Split(block, "\n")
	col := (width-lipgloss.Width(block))/2 + 1
	row := (height-len(lines))/2 + 1
	if col < 1 {
		col = 1
	}
	if row < 1 {
		row = 1
	}
	for i, line := range lines {
		a.chunkWriter.WriteAt(col, row+i, line)
	}
}

func (a *App) menuScreen() string {
	s := a.styles
	var b strings.Builder
	b.WriteString(s.title.Render("V O C A B   S H O O T E R"))
	b.WriteString("\n\n")
	b.WriteString(s.subtitle.Render("Master Chinese-English vocabulary through typing practice."))
	b.WriteString("\n")
	b.WriteString(s.muted.Render("Mistakes are repeated until you master them."))
	b.WriteString("\n\n")

	items := make([]string, len(vocab.Topics))
	for i, t := range vocab.Topics {
		label := fmt.Sprintf("%d  %s  %-18s", i+1, t.Icon, t.Label)
		if i == a.menuIndex {
			items[i] = s.selected.Render(label)
		} else {
			items[i] = s.item.Render(label)
		}
	}
	b.WriteString(lipgloss.JoinVertical(lipgloss.Left, items...))
	b.WriteString("\n\n")
	b.WriteString(s.muted.Render(vocab.Topics[a.menuIndex].Context))

	if a.banner != "" {
		b.WriteString("\n\n")
		b.WriteString(s.banner.Render(a.banner))
	}

	b.WriteString("\n\n")
	b.WriteString(s.muted.Render("↑/↓ or 1-6 select  ·  ENTER start  ·  CTRL-C quit"))
	return s.panel.Render(lipgloss.JoinVertical(lipgloss.Center, b.String()))
}

func (a *App) loadingScreen() string {
	s := a.styles
	frames := []string{"◐", "◓", "◑", "◒"}
	frame := frames[a.now().UnixMilli()/150%int64(len(frames))]
	body := lipgloss.JoinVertical(lipgloss.Center,
		s.title.Render(frame),
		"",
		s.english.Render(fmt.Sprintf("Preparing %s lesson...", a.topic.Label)),
		"",
		s.muted.Render("ESC cancel"),
	)
	return s.panel.Render(body)
}

func (a *App) studyScreen() string {
	s := a.styles
	width := a.canvas.TerminalWidth()

	cards := make([]string, len(a.pairs))
	cardWidth := 0
	for i, p := range a.pairs {
		head := s.chinese.Render(p.Chinese)
		if p.PartOfSpeech != "" {
			head = lipgloss.JoinHorizontal(lipgloss.Top, head, " ", s.tag.Render(p.PartOfSpeech))
		}
		cards[i] = s.card.Render(lipgloss.JoinVertical(lipgloss.Left, head, s.english.Render(p.English)))
		if w := lipgloss.Width(cards[i]); w > cardWidth {
			cardWidth = w
		}
	}

	perRow := 3
	for perRow > 1 && perRow*(cardWidth+1) > width {
		perRow--
	}
	var rows []string
	for i := 0; i < len(cards); i += perRow {
		end := i + perRow
		if end > len(cards) {
			end = len(cards)
		}
		row := make([]string, 0, end-i)
		for _, c := range cards[i:end] {
			row = append(row, s.r.NewStyle().Width(cardWidth+1).Render(c))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}

	buttons := lipgloss.JoinHorizontal(lipgloss.Top,
		s.button(colorCyan).Render("1 GUIDED · SHOW ANSWERS FIRST"), "  ",
		s.button(colorPurple).Render("2 ZEN · INFINITE PRACTICE"), "  ",
		s.button(colorRose).Render("3 SURVIVAL · QUIZ ONLY"),
	)
	if lipgloss.Width(buttons) > width {
		buttons = lipgloss.JoinVertical(lipgloss.Center,
			s.button(colorCyan).Render("1 GUIDED"),
			s.button(colorPurple).Render("2 ZEN"),
			s.button(colorRose).Render("3 SURVIVAL"),
		)
	}

	return lipgloss.JoinVertical(lipgloss.Center,
		s.title.Render("STUDY PHASE · "+strings.ToUpper(a.topic.Label)),
		s.muted.Render("Review the vocabulary below. Choose a mode to begin your training."),
		"",
		lipgloss.JoinVertical(lipgloss.Left, rows...),
		"",
		buttons,
		"",
		s.muted.Render("ESC back to topics"),
	)
}

func (a *App) summaryScreen() string {
	s := a.styles
	sess := a.session
	if sess == nil {
		sess = NewSession(nil, a.now)
	}

	accuracyColor := colorYellow
	if sess.Accuracy() >= 90 {
		accuracyColor = colorGreen
	}
	stat := func(label, value string, color lipgloss.Color) string {
		return s.card.Width(16).Align(lipgloss.Center).Render(
			lipgloss.JoinVertical(lipgloss.Center, s.muted.Render(label), s.accent(color).Render(value)),
		)
	}
	stats := lipgloss.JoinHorizontal(lipgloss.Top,
		stat("WPM", fmt.Sprint(sess.WPM()), colorCyan), " ",
		stat("ACCURACY", fmt.Sprintf("%d%%", sess.Accuracy()), accuracyColor), " ",
		stat("BEST STREAK", fmt.Sprint(sess.MaxStreak), colorPurple),
	)

	parts := []string{
		s.accent(colorText).Render("SESSION COMPLETE"),
		"",
		stats,
	}

	if review := sess.Review(); len(review) > 0 {
		const maxReview = 8
		parts = append(parts, "", s.banner.Render("● WORDS TO REVIEW"))
		for i, p := range review {
			if i == maxReview {
				parts = append(parts, s.muted.Render(fmt.Sprintf("and %d more", len(review)-maxReview)))
				break
			}
			parts = append(parts, fmt.Sprintf("%s  %s  %s",
				s.chinese.Render(p.Chinese),
				s.muted.Render(p.English),
				s.banner.Render(fmt.Sprintf("%d misses", p.ErrorCount)),
			))
		}
	}

	parts = append(parts, "", s.button(colorCyan).Render("ENTER  PLAY AGAIN"))
	return s.panel.Render(lipgloss.JoinVertical(lipgloss.Center, parts...))
}

func (a *App) inactivityScreen() string {
	s := a.styles
	left := int(config.InactivityDisconnectUser - a.idleFor().Seconds())
	if left < 0 {
		left = 0
	}
	return s.panel.Render(lipgloss.JoinVertical(lipgloss.Center,
		s.banner.Render("INACTIVITY WARNING"),
		"",
		s.text.Render(fmt.Sprintf("You have been inactive for too long. You will be disconnected in %d seconds.", left)),
		"",
		s.muted.Render("Press any key to continue"),
	))
}

// idleFor is the time since the last key press.
func (a *App) idleFor() time.Duration {
	return a.now().Sub(a.lastInput)
}
