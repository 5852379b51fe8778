package tui

import (
	"testing"
	"time"

	"github.com/vovakirdan/gridloop/internal/core"
)

func TestKeyLatchPress(t *testing.T) {
	l := NewKeyLatch(100 * time.Millisecond)

	ev, ok := l.Press(core.KeyUp, 0)
	if !ok || ev != core.KeyDownEvent(core.KeyUp) {
		t.Errorf("Press() = %v, %v, expected Up down", ev, ok)
	}

	// Auto-repeat keeps the key held without new events.
	if _, ok := l.Press(core.KeyUp, 50*time.Millisecond); ok {
		t.Error("repeated Press() should not emit")
	}
	if _, ok := l.Press(core.KeyNone, 0); ok {
		t.Error("Press(KeyNone) should not emit")
	}
	if l.Held() != 1 {
		t.Errorf("Held() = %d, expected 1", l.Held())
	}
}

func TestKeyLatchExpire(t *testing.T) {
	l := NewKeyLatch(100 * time.Millisecond)
	l.Press(core.KeyW, 0)
	l.Press(core.KeyUp, 0)
	l.Press(core.KeyUp, 80*time.Millisecond)

	released := l.Expire(120 * time.Millisecond)
	if len(released) != 1 || released[0] != core.KeyUpEvent(core.KeyW) {
		t.Errorf("Expire(120ms) = %v, expected [W up]", released)
	}

	released = l.Expire(180 * time.Millisecond)
	if len(released) != 1 || released[0] != core.KeyUpEvent(core.KeyUp) {
		t.Errorf("Expire(180ms) = %v, expected [Up up]", released)
	}
	if l.Held() != 0 {
		t.Errorf("Held() = %d, expected 0", l.Held())
	}

	// A released key goes down again on its next report.
	if _, ok := l.Press(core.KeyUp, 200*time.Millisecond); !ok {
		t.Error("Press() after release should emit key down")
	}
}

func TestKeyLatchDefaultHold(t *testing.T) {
	l := NewKeyLatch(0)
	l.Press(core.KeyA, 0)
	if got := l.Expire(DefaultHoldWindow - time.Millisecond); len(got) != 0 {
		t.Errorf("Expire() before the window = %v, expected none", got)
	}
	if got := l.Expire(DefaultHoldWindow); len(got) != 1 {
		t.Errorf("Expire() at the window = %v, expected one release", got)
	}
}
