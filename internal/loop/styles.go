package loop

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Palette for the card screens, close to the HUD colors in draw.
const (
	colorCyan   = lipgloss.Color("#22D3EE")
	colorPurple = lipgloss.Color("#C084FC")
	colorRose   = lipgloss.Color("#FB7185")
	colorGreen  = lipgloss.Color("#4ADE80")
	colorYellow = lipgloss.Color("#FACC15")
	colorText   = lipgloss.Color("#E2E8F0")
	colorMuted  = lipgloss.Color("#94A3B8")
	colorBorder = lipgloss.Color("#334155")
	colorPanel  = lipgloss.Color("#1E293B")
)

// styles holds the lipgloss styles bound to one session's renderer.
type styles struct {
	r *lipgloss.Renderer

	title    lipgloss.Style
	subtitle lipgloss.Style
	muted    lipgloss.Style
	text     lipgloss.Style
	banner   lipgloss.Style
	item     lipgloss.Style
	selected lipgloss.Style
	card     lipgloss.Style
	panel    lipgloss.Style
	chinese  lipgloss.Style
	english  lipgloss.Style
	tag      lipgloss.Style
}

// newStyles binds a renderer to w. The profile is fixed to 256 colors so
// no terminal queries are sent over the session.
func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w, termenv.WithProfile(termenv.ANSI256))
	r.SetHasDarkBackground(true)

	return styles{
		r:        r,
		title:    r.NewStyle().Foreground(colorCyan).Bold(true),
		subtitle: r.NewStyle().Foreground(colorMuted),
		muted:    r.NewStyle().Foreground(colorMuted),
		text:     r.NewStyle().Foreground(colorText),
		banner:   r.NewStyle().Foreground(colorRose).Bold(true),
		item: r.NewStyle().
			Foreground(colorText).
			Padding(0, 2),
		selected: r.NewStyle().
			Foreground(lipgloss.Color("#000000")).
			Background(colorCyan).
			Bold(true).
			Padding(0, 2),
		card: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1),
		panel: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(1, 3),
		chinese: r.NewStyle().Foreground(colorText).Bold(true),
		english: r.NewStyle().Foreground(colorCyan),
		tag:     r.NewStyle().Foreground(colorMuted).Background(colorPanel).Padding(0, 1),
	}
}

// accent returns a bold style in color.
func (s styles) accent(color lipgloss.Color) lipgloss.Style {
	return s.r.NewStyle().Foreground(color).Bold(true)
}

// button returns a filled call-to-action style in color.
func (s styles) button(color lipgloss.Color) lipgloss.Style {
	return s.r.NewStyle().
		Foreground(lipgloss.Color("#000000")).
		Background(color).
		Bold(true).
		Padding(0, 2)
}
