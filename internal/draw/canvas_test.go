package draw

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pixelAt returns the color at sub-pixel coordinates.
func pixelAt(c *Canvas, x, y int) Color {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		return c.pixels[y*c.termWidth+x]
	}
	return ColorNone
}

func TestCanvas_ScaledSet(t *testing.T) {
	c := NewScaledCanvas(10, 5, 100, 100)

	c.SetPen(ColorCyan)
	c.Set(50, 50)

	assert.Equal(t, ColorCyan, pixelAt(c, 5, 5))
	assert.Equal(t, ColorNone, pixelAt(c, 0, 0))
}

func TestCanvas_SetOutOfBoundsIgnored(t *testing.T) {
	c := NewCanvas(4, 2)
	assert.NotPanics(t, func() {
		c.Set(-1, -1)
		c.Set(100, 100)
	})
	assert.Equal(t, ColorNone, pixelAt(c, 100, 100))
}

func TestCompose(t *testing.T) {
	tests := []struct {
		name        string
		top, bottom Color
		want        cell
	}{
		{"empty", ColorNone, ColorNone, cell{glyph: ' '}},
		{"same color", ColorRose, ColorRose, cell{glyph: BlockFull, fg: ColorRose}},
		{"two colors", ColorCyan, ColorRose, cell{glyph: BlockUpperHalf, fg: ColorCyan, bg: ColorRose}},
		{"top only", ColorWhite, ColorNone, cell{glyph: BlockUpperHalf, fg: ColorWhite}},
		{"bottom only", ColorNone, ColorGreen, cell{glyph: BlockLowerHalf, fg: ColorGreen}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, compose(tt.top, tt.bottom))
		})
	}
}

func TestCanvas_RenderDiffs(t *testing.T) {
	c := NewCanvas(3, 1)
	c.SetPen(ColorCyan)
	c.setPixel(1, 0)

	var first bytes.Buffer
	c.Render(&first)
	assert.Contains(t, first.String(), string(BlockUpperHalf))
	assert.Equal(t, 1, strings.Count(first.String(), "H"), "adjacent cells share one cursor move")
	assert.Equal(t, 2, strings.Count(first.String(), " "))

	var second bytes.Buffer
	c.Render(&second)
	assert.Empty(t, second.String(), "unchanged frame emits nothing")

	c.Clear()
	var third bytes.Buffer
	c.Render(&third)
	assert.Contains(t, third.String(), "\033[1;2H")
	assert.NotContains(t, third.String(), string(BlockUpperHalf))
}

func TestCanvas_MarkTextDirty(t *testing.T) {
	c := NewCanvas(4, 2)
	var buf bytes.Buffer
	c.Render(&buf)

	c.MarkTextDirty(2, 2, 2)
	buf.Reset()
	c.Render(&buf)

	out := buf.String()
	assert.Contains(t, out, "\033[2;2H")
	assert.Equal(t, 2, strings.Count(out, " "))
}

func TestCanvas_ResizeForcesRedraw(t *testing.T) {
	c := NewScaledCanvas(4, 2, 40, 40)
	var buf bytes.Buffer
	c.Render(&buf)

	c.Resize(6, 3)
	require.Equal(t, 6, c.TerminalWidth())
	require.Equal(t, 3, c.TerminalHeight())

	buf.Reset()
	c.Render(&buf)
	assert.Equal(t, 18, strings.Count(buf.String(), " "))
}

func TestCanvas_DrawRectFilled(t *testing.T) {
	c := NewCanvas(10, 5)
	c.SetPen(ColorGreen)
	c.DrawRect(5, 5, 4, 4, true)

	assert.Equal(t, ColorGreen, pixelAt(c, 5, 5))
	assert.Equal(t, ColorGreen, pixelAt(c, 3, 3))
	assert.Equal(t, ColorNone, pixelAt(c, 0, 0))
}

func TestCanvas_FillCircleSmallRadius(t *testing.T) {
	c := NewCanvas(10, 5)
	c.FillCircle(4, 4, 0.1)
	assert.Equal(t, ColorWhite, pixelAt(c, 4, 4))
	assert.Equal(t, ColorNone, pixelAt(c, 5, 4))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "hello", Truncate("hello", 10))
	assert.Equal(t, 4, TextWidth("你好"))
	assert.LessOrEqual(t, TextWidth(Truncate("你好世界", 5)), 5)
	assert.Empty(t, Truncate("x", 0))
}

func TestOverlay_FlushClipsAndMarksDirty(t *testing.T) {
	c := NewCanvas(8, 2)
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 0, 0)
	c.Render(cw)
	require.NoError(t, cw.Flush())
	out.Reset()

	var o Overlay
	o.Add(-1, 1, ColorGreen, false, "abcd")
	o.AddCentered(5, 2, ColorWhite, true, "xy")
	o.Add(1, 9, ColorWhite, false, "off screen")
	o.Flush(cw, c)
	require.NoError(t, cw.Flush())

	s := out.String()
	assert.Contains(t, s, "\033[1;1H"+Fg(ColorGreen)+"cd")
	assert.Contains(t, s, "\033[2;4H"+Bold)
	assert.NotContains(t, s, "off screen")
	assert.Zero(t, o.Len())

	out.Reset()
	c.Render(cw)
	require.NoError(t, cw.Flush())
	assert.Equal(t, 4, strings.Count(out.String(), " "), "text cells are repainted")
}

func TestChunkWriter_OffsetAndClear(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 3, 1)
	cw.ClearScreen()
	cw.WriteAt(1, 1, "hi")
	assert.Zero(t, out.Len(), "nothing is written before Flush")

	require.NoError(t, cw.Flush())
	assert.Equal(t, "\033[H\033[2J\033[2;4Hhi", out.String())
}

func TestScreen_EnterLeave(t *testing.T) {
	var out bytes.Buffer
	s := NewScreen(&out)

	s.Enter()
	assert.Contains(t, out.String(), "\033[?25l")
	assert.Contains(t, out.String(), "\033[?2004h")
	assert.Contains(t, out.String(), "\033[2J")

	out.Reset()
	s.Leave()
	assert.Contains(t, out.String(), "\033[?2004l")
	assert.True(t, strings.HasSuffix(out.String(), "\033[?25h"), "cursor shown last")
}
