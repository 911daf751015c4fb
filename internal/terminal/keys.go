package terminal

import (
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"
)

// Arrow identifies a cursor key.
type Arrow int

const (
	ArrowNone Arrow = iota
	ArrowUp
	ArrowDown
	ArrowRight
	ArrowLeft
)

// Key is one decoded key press: either a rune (control characters included)
// or an arrow.
type Key struct {
	Rune  rune
	Arrow Arrow
}

const esc = ansi.ESC

// decodeKey decodes the first key in b and reports how many bytes it used.
// It returns 0 when b holds only the start of a key.
func decodeKey(b []byte) (Key, int) {
	if len(b) == 0 {
		return Key{}, 0
	}
	if b[0] == esc {
		return decodeEscape(b)
	}
	if !utf8.FullRune(b) {
		return Key{}, 0
	}
	r, size := utf8.DecodeRune(b)
	return Key{Rune: r}, size
}

// decodeEscape splits off one escape sequence. Cursor keys arrive as CSI
// ("ESC [ A") or, in application mode, SS3 ("ESC O A"); every other sequence,
// Alt+key included, decodes as the escape key.
func decodeEscape(b []byte) (Key, int) {
	p := ansi.GetParser()
	defer ansi.PutParser(p)

	seq, _, n, state := ansi.DecodeSequence(b, ansi.NormalState, p)
	if state != ansi.NormalState {
		return Key{}, 0
	}
	switch {
	case ansi.HasCsiPrefix(seq):
		return Key{Rune: esc, Arrow: arrowFor(ansi.Cmd(p.Command()).Final())}, n
	case len(seq) == 2 && seq[1] == 'O':
		// SS3 carries its final byte after the introducer
		if len(b) < 3 {
			return Key{}, 0
		}
		return Key{Rune: esc, Arrow: arrowFor(b[2])}, 3
	}
	return Key{Rune: esc}, n
}

func arrowFor(final byte) Arrow {
	switch final {
	case 'A':
		return ArrowUp
	case 'B':
		return ArrowDown
	case 'C':
		return ArrowRight
	case 'D':
		return ArrowLeft
	}
	return ArrowNone
}
