package tui

import "github.com/vovakirdan/gridloop/internal/core"

// RawKey is one key report decoded from raw terminal input.
type RawKey struct {
	Key  core.Key
	Quit bool
}

const (
	ctrlC     = 0x03
	backspace = 0x08
	esc       = 0x1b
	del       = 0x7f
)

// ParseInput decodes a chunk of raw-mode terminal input. Arrow keys arrive as
// CSI or SS3 sequences; an escape byte that starts no sequence is the Escape
// key. Bytes that map to no key are dropped.
func ParseInput(b []byte) []RawKey {
	var keys []RawKey
	for i := 0; i < len(b); i++ {
		c := b[i]
		switch {
		case c == ctrlC:
			keys = append(keys, RawKey{Quit: true})
		case c == esc:
			n, k := parseEscape(b[i:])
			if k != core.KeyNone {
				keys = append(keys, RawKey{Key: k})
			}
			i += n - 1
		case c == '\r' || c == '\n':
			keys = append(keys, RawKey{Key: core.KeyEnter})
		case c == ' ':
			keys = append(keys, RawKey{Key: core.KeySpace})
		case c == '\t':
			keys = append(keys, RawKey{Key: core.KeyTab})
		case c == del || c == backspace:
			keys = append(keys, RawKey{Key: core.KeyBackspace})
		default:
			if k := core.LetterKey(rune(c)); k != core.KeyNone {
				keys = append(keys, RawKey{Key: k})
			}
		}
	}
	return keys
}

// parseEscape decodes the sequence at the start of b, which begins with ESC.
// It returns the number of bytes consumed and the key, if any.
func parseEscape(b []byte) (int, core.Key) {
	if len(b) < 2 || (b[1] != '[' && b[1] != 'O') {
		return 1, core.KeyEscape
	}

	// Skip parameter bytes up to the final byte.
	j := 2
	for j < len(b) && (b[j] < 0x40 || b[j] > 0x7e) {
		j++
	}
	if j == len(b) {
		return len(b), core.KeyNone
	}

	switch b[j] {
	case 'A':
		return j + 1, core.KeyUp
	case 'B':
		return j + 1, core.KeyDown
	case 'C':
		return j + 1, core.KeyRight
	case 'D':
		return j + 1, core.KeyLeft
	}
	return j + 1, core.KeyNone
}
