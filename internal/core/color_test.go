package core

import "testing"

func TestParseHex(t *testing.T) {
	tests := []struct {
		in       string
		expected Color
		ok       bool
	}{
		{"#000000", Black, true},
		{"ffffff", White, true},
		{"#404040", RGB(64, 64, 64), true},
		{"#0f0", Green, true},
		{"#12", Color{}, false},
		{"#gggggg", Color{}, false},
	}

	for _, tc := range tests {
		got, err := ParseHex(tc.in)
		if tc.ok && err != nil {
			t.Errorf("ParseHex(%q) failed: %v", tc.in, err)
			continue
		}
		if !tc.ok {
			if err == nil {
				t.Errorf("ParseHex(%q) should fail", tc.in)
			}
			continue
		}
		if got != tc.expected {
			t.Errorf("ParseHex(%q) = %v, expected %v", tc.in, got, tc.expected)
		}
	}
}

func TestColorHexRoundTrip(t *testing.T) {
	c := RGB(18, 52, 86)
	if c.Hex() != "#123456" {
		t.Errorf("Hex() = %q, expected #123456", c.Hex())
	}
}
