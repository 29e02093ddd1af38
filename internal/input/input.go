package input

import (
	"bufio"
	"bytes"
	"unicode"
	"unicode/utf8"
)

// KeyKind identifies a decoded key.
type KeyKind int

const (
	KeyRune KeyKind = iota
	KeyEnter
	KeyBackspace
	KeyEscape
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyTab
	KeyInterrupt // Ctrl-C
)

// Key is one decoded key press. Composing is set for keys that arrived
// inside an open bracketed paste.
type Key struct {
	Kind      KeyKind
	Rune      rune
	Composing bool
}

// Input represents the current frame's input.
type Input struct {
	Keys      []Key
	Composing bool // A multi-byte character or a paste is still incomplete
	Closed    bool // The underlying reader is gone
}

// Quit reports whether the frame contains Ctrl-C.
func (in Input) Quit() bool {
	for _, k := range in.Keys {
		if k.Kind == KeyInterrupt {
			return true
		}
	}
	return false
}

// Pressed reports whether a key of kind was pressed outside a paste.
func (in Input) Pressed(kind KeyKind) bool {
	for _, k := range in.Keys {
		if k.Kind == kind && !k.Composing {
			return true
		}
	}
	return false
}

// Digit returns the first digit rune pressed this frame, or -1.
func (in Input) Digit() int {
	for _, k := range in.Keys {
		if k.Kind == KeyRune && k.Rune >= '0' && k.Rune <= '9' {
			return int(k.Rune - '0')
		}
	}
	return -1
}

var (
	pasteStart = []byte("\x1b[200~")
	pasteEnd   = []byte("\x1b[201~")
)

// Stream delivers input bytes via a channel and decodes them into keys.
// Incomplete UTF-8 sequences, unfinished escape sequences and open pastes
// carry over between frames.
type Stream struct {
	ch      chan byte
	closed  bool
	pending []byte // Bytes of an incomplete character or escape sequence
	escHeld bool   // pending starts with an unfinished escape sequence
	flush   bool   // No bytes followed a held escape; decode it as typed
	pasting bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch: make(chan byte, 128),
	}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// ReadInput drains all available bytes from the stream (non-blocking).
func ReadInput(s *Stream) Input {
	buf := s.pending
	held := len(buf)
	s.pending = nil

drain:
	for !s.closed {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	// A held ESC is a real key press once a read brings nothing after it.
	s.flush = s.closed || (s.escHeld && len(buf) == held)
	in := s.decode(buf)
	s.flush = false
	in.Closed = s.closed
	return in
}

// decode turns raw bytes into keys, keeping an incomplete trailing
// character or escape sequence in s.pending.
func (s *Stream) decode(buf []byte) Input {
	var in Input
	s.escHeld = false
	for i := 0; i < len(buf); {
		rest := buf[i:]

		if rest[0] == '\x1b' {
			if bytes.HasPrefix(rest, pasteStart) {
				s.pasting = true
				i += len(pasteStart)
				continue
			}
			if bytes.HasPrefix(rest, pasteEnd) {
				s.pasting = false
				i += len(pasteEnd)
				continue
			}
			if !s.flush && unfinishedEscape(rest) {
				s.pending = append(s.pending[:0], rest...)
				s.escHeld = true
				break
			}
			if len(rest) >= 3 && rest[1] == '[' {
				if kind, ok := arrowKeys[rest[2]]; ok {
					in.Keys = append(in.Keys, Key{Kind: kind})
					i += 3
					continue
				}
				// Skip other CSI sequences (function keys, focus events).
				if n := csiLen(rest); n > 0 {
					i += n
					continue
				}
			}
			in.Keys = append(in.Keys, Key{Kind: KeyEscape, Composing: s.pasting})
			i++
			continue
		}

		if rest[0] < utf8.RuneSelf {
			if k, ok := controlKey(rest[0]); ok {
				k.Composing = s.pasting
				in.Keys = append(in.Keys, k)
			}
			i++
			continue
		}

		if !utf8.FullRune(rest) {
			s.pending = append(s.pending[:0], rest...)
			break
		}
		r, size := utf8.DecodeRune(rest)
		i += size
		if r == utf8.RuneError || !unicode.IsPrint(r) {
			continue
		}
		in.Keys = append(in.Keys, Key{Kind: KeyRune, Rune: r, Composing: s.pasting})
	}
	in.Composing = s.pasting || len(s.pending) > 0
	return in
}

var arrowKeys = map[byte]KeyKind{
	'A': KeyUp,
	'B': KeyDown,
	'C': KeyRight,
	'D': KeyLeft,
}

// unfinishedEscape reports whether b, which starts with ESC and runs to the
// end of the read, may be the head of a longer sequence.
func unfinishedEscape(b []byte) bool {
	if len(b) == 1 || bytes.HasPrefix(pasteStart, b) || bytes.HasPrefix(pasteEnd, b) {
		return true
	}
	return b[1] == '[' && csiLen(b) == 0
}

// csiLen returns the length of the CSI sequence at the start of b, or 0
// when it is not terminated within b.
func csiLen(b []byte) int {
	for i := 2; i < len(b); i++ {
		if b[i] >= 0x40 && b[i] <= 0x7e {
			return i + 1
		}
	}
	return 0
}

func controlKey(b byte) (Key, bool) {
	switch b {
	case '\r', '\n':
		return Key{Kind: KeyEnter}, true
	case '\b', '\x7f':
		return Key{Kind: KeyBackspace}, true
	case '\t':
		return Key{Kind: KeyTab}, true
	case '\x03':
		return Key{Kind: KeyInterrupt}, true
	}
	if b >= ' ' && b < '\x7f' {
		return Key{Kind: KeyRune, Rune: rune(b)}, true
	}
	return Key{}, false
}
