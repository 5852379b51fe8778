package tui

import (
	"testing"

	"github.com/vovakirdan/gridloop/internal/core"
)

func TestParseInput(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected []RawKey
	}{
		{"letters", "wA", []RawKey{{Key: core.KeyW}, {Key: core.KeyA}}},
		{"arrows csi", "\x1b[A\x1b[B\x1b[C\x1b[D", []RawKey{{Key: core.KeyUp}, {Key: core.KeyDown}, {Key: core.KeyRight}, {Key: core.KeyLeft}}},
		{"arrows ss3", "\x1bOA", []RawKey{{Key: core.KeyUp}}},
		{"modified arrow", "\x1b[1;5C", []RawKey{{Key: core.KeyRight}}},
		{"lone escape", "\x1b", []RawKey{{Key: core.KeyEscape}}},
		{"double escape", "\x1b\x1b", []RawKey{{Key: core.KeyEscape}, {Key: core.KeyEscape}}},
		{"ctrl+c", "\x03", []RawKey{{Quit: true}}},
		{"controls", "\r \t\x7f", []RawKey{{Key: core.KeyEnter}, {Key: core.KeySpace}, {Key: core.KeyTab}, {Key: core.KeyBackspace}}},
		{"unknown sequence", "\x1b[5~x", []RawKey{{Key: core.KeyX}}},
		{"truncated sequence", "\x1b[1;", nil},
		{"digits dropped", "123", nil},
	}

	for _, tc := range tests {
		got := ParseInput([]byte(tc.in))
		if len(got) != len(tc.expected) {
			t.Errorf("%s: ParseInput() = %v, expected %v", tc.name, got, tc.expected)
			continue
		}
		for i := range got {
			if got[i] != tc.expected[i] {
				t.Errorf("%s: ParseInput()[%d] = %v, expected %v", tc.name, i, got[i], tc.expected[i])
			}
		}
	}
}
