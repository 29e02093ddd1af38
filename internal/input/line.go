package input

// LineEditor is the answer line. It accumulates typed runes and commits the
// line on Enter, except while a composition is in progress.
type LineEditor struct {
	runes     []rune
	max       int
	composing bool
}

// NewLineEditor creates an editor accepting at most max runes.
func NewLineEditor(max int) *LineEditor {
	return &LineEditor{max: max}
}

// Apply feeds one frame of input to the editor. It returns the committed
// line and true when Enter was pressed outside a composition. The line is
// cleared on commit.
func (e *LineEditor) Apply(in Input) (line string, submitted bool) {
	for _, k := range in.Keys {
		switch k.Kind {
		case KeyRune:
			e.insert(k.Rune)
		case KeyTab:
			if k.Composing {
				e.insert(' ')
			}
		case KeyBackspace:
			if !k.Composing && len(e.runes) > 0 {
				e.runes = e.runes[:len(e.runes)-1]
			}
		case KeyEnter:
			if k.Composing {
				e.insert(' ')
				continue
			}
			if submitted {
				continue
			}
			line, submitted = string(e.runes), true
			e.runes = e.runes[:0]
		}
	}
	e.composing = in.Composing
	return line, submitted
}

func (e *LineEditor) insert(r rune) {
	if e.max > 0 && len(e.runes) >= e.max {
		return
	}
	e.runes = append(e.runes, r)
}

// Value returns the current line.
func (e *LineEditor) Value() string {
	return string(e.runes)
}

// Composing reports whether the last frame ended inside a composition.
func (e *LineEditor) Composing() bool {
	return e.composing
}

// Clear empties the line.
func (e *LineEditor) Clear() {
	e.runes = e.runes[:0]
}
