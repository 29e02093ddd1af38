package draw

// overlayText is one queued text run in 1-based canvas cells.
type overlayText struct {
	col, row int
	color    Color
	bold     bool
	text     string
}

// Overlay collects text drawn on top of the canvas. Text is queued while
// objects draw and written after Canvas.Render, so the pixel pass cannot
// overwrite it.
type Overlay struct {
	items []overlayText
}

// Add queues s with its first column at col.
func (o *Overlay) Add(col, row int, color Color, bold bool, s string) {
	if s == "" {
		return
	}
	o.items = append(o.items, overlayText{col: col, row: row, color: color, bold: bold, text: s})
}

// AddCentered queues s centred on col.
func (o *Overlay) AddCentered(col, row int, color Color, bold bool, s string) {
	o.Add(CenterCol(col, s), row, color, bold, s)
}

// Len returns the number of queued runs.
func (o *Overlay) Len() int {
	return len(o.items)
}

// Flush writes queued text clipped to the canvas, marks the covered cells
// dirty on c and empties the queue.
func (o *Overlay) Flush(cw *ChunkWriter, c *Canvas) {
	width := c.TerminalWidth()
	height := c.TerminalHeight()
	for _, it := range o.items {
		if it.row < 1 || it.row > height {
			continue
		}
		col, text := it.col, it.text
		if col < 1 {
			text = dropColumns(text, 1-col)
			col = 1
		}
		text = Truncate(text, width-col+1)
		if text == "" {
			continue
		}
		if it.bold {
			cw.MoveCursor(col, it.row)
			cw.WriteString(Bold)
			cw.WriteString(Fg(it.color))
			cw.WriteString(text)
			cw.WriteString(ColorReset)
		} else {
			cw.WriteColoredAt(col, it.row, it.color, text)
		}
		c.MarkTextDirty(col, it.row, TextWidth(text))
	}
	o.items = o.items[:0]
}

// dropColumns removes the leading n columns of s.
func dropColumns(s string, n int) string {
	for i, r := range s {
		if n <= 0 {
			return s[i:]
		}
		n -= TextWidth(string(r))
	}
	return ""
}
