package draw

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// ChunkWriter collects one frame of terminal output and writes it in
// MTU-sized chunks on Flush, so a frame leaves an SSH session in few packets.
type ChunkWriter struct {
	buf    strings.Builder
	bufw   *bufio.Writer // Buffers writes to underlying writer for fewer syscalls
	numBuf [20]byte      // Scratch buffer for allocation-free integer formatting
	offCol int
	offRow int
}

// NewChunkWriter creates a ChunkWriter that writes to w. The offsets are
// added to every cursor position to centre the play area.
func NewChunkWriter(w io.Writer, offsetCol, offsetRow int) *ChunkWriter {
	return &ChunkWriter{
		bufw:   bufio.NewWriterSize(w, 8192),
		offCol: offsetCol,
		offRow: offsetRow,
	}
}

// SetOffset updates the cursor offset after a resize.
func (cw *ChunkWriter) SetOffset(offsetCol, offsetRow int) {
	cw.offCol = offsetCol
	cw.offRow = offsetRow
}

// MoveCursor appends a cursor position sequence. col and row are 1-based
// canvas coordinates.
func (cw *ChunkWriter) MoveCursor(col, row int) {
	cw.buf.WriteString("\033[")
	cw.buf.Write(strconv.AppendInt(cw.numBuf[:0], int64(row+cw.offRow), 10))
	cw.buf.WriteByte(';')
	cw.buf.Write(strconv.AppendInt(cw.numBuf[:0], int64(col+cw.offCol), 10))
	cw.buf.WriteByte('H')
}

// Write implements io.Writer for Canvas.Render.
func (cw *ChunkWriter) Write(p []byte) (n int, err error) {
	return cw.buf.Write(p)
}

// WriteString appends s at the current cursor.
func (cw *ChunkWriter) WriteString(s string) {
	cw.buf.WriteString(s)
}

// WriteAt writes s at (col, row), 1-based canvas coordinates.
func (cw *ChunkWriter) WriteAt(col, row int, s string) {
	cw.MoveCursor(col, row)
	cw.buf.WriteString(s)
}

// WriteColoredAt writes s at (col, row) in color and resets attributes after it.
func (cw *ChunkWriter) WriteColoredAt(col, row int, color Color, s string) {
	cw.MoveCursor(col, row)
	cw.buf.WriteString(Fg(color))
	cw.buf.WriteString(s)
	cw.buf.WriteString(ColorReset)
}

// ClearScreen queues a full clear ahead of the rest of the frame.
func (cw *ChunkWriter) ClearScreen() {
	cw.buf.WriteString(clearSeq)
}

var _ io.Writer = (*ChunkWriter)(nil)

// Flush writes the frame and resets the buffer.
func (cw *ChunkWriter) Flush() error {
	data := cw.buf.String()
	cw.buf.Reset()
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		if _, err := cw.bufw.WriteString(chunk); err != nil {
			return err
		}
		data = data[len(chunk):]
	}
	return cw.bufw.Flush()
}

// TermSizeFunc is a function that returns the terminal dimensions.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc returns terminal size from os.Stdout.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// TerminalSizeRawWith returns the terminal dimensions reported by sizeFunc,
// falling back to DefaultTermSizeFunc when it is nil.
func TerminalSizeRawWith(sizeFunc TermSizeFunc) (width, height int, err error) {
	if sizeFunc == nil {
		sizeFunc = DefaultTermSizeFunc
	}
	return sizeFunc()
}

const clearSeq = "\033[H\033[2J"

// Screen switches a terminal in and out of game mode.
type Screen struct {
	out *termenv.Output
}

// NewScreen returns a Screen writing control sequences to w.
func NewScreen(w io.Writer) *Screen {
	return &Screen{out: termenv.NewOutput(w)}
}

// Enter hides the cursor and turns on bracketed paste, so pasted text
// arrives wrapped in ESC[200~ ... ESC[201~.
func (s *Screen) Enter() {
	s.out.HideCursor()
	s.out.EnableBracketedPaste()
	s.Clear()
}

// Leave clears the screen and restores the cursor and paste mode.
func (s *Screen) Leave() {
	s.Clear()
	s.out.DisableBracketedPaste()
	s.out.ShowCursor()
}

// Clear clears the terminal and moves the cursor home.
func (s *Screen) Clear() {
	s.out.ClearScreen()
}
