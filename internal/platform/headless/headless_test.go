package headless

import (
	"errors"
	"testing"

	"github.com/vovakirdan/gridloop/internal/core"
)

func TestBounds(t *testing.T) {
	w, h, err := New(320, 200).Bounds()
	if err != nil || w != 320 || h != 200 {
		t.Errorf("Bounds() = %d, %d, %v, expected 320, 200, nil", w, h, err)
	}

	if _, _, err := New(0, 0).Bounds(); !errors.Is(err, ErrNoDisplay) {
		t.Errorf("Bounds() error = %v, expected %v", err, ErrNoDisplay)
	}
}

func TestOpen(t *testing.T) {
	h := New(100, 100)
	surface, input, err := h.Open("demo", 40, 30)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if surface == nil || input == nil {
		t.Fatal("Open() returned nil surface or input")
	}
	if !h.Opened() || h.Title() != "demo" {
		t.Errorf("Opened() = %v, Title() = %q", h.Opened(), h.Title())
	}
	if h.Canvas().Width() != 40 || h.Canvas().Height() != 30 {
		t.Errorf("canvas = %dx%d, expected 40x30", h.Canvas().Width(), h.Canvas().Height())
	}
}

func TestFailOpen(t *testing.T) {
	boom := errors.New("boom")
	h := New(10, 10).FailOpen(boom)
	if _, _, err := h.Open("x", 1, 1); !errors.Is(err, boom) {
		t.Errorf("Open() error = %v, expected %v", err, boom)
	}
	if h.Opened() {
		t.Error("Opened() = true after failed open")
	}
}

func TestPollOrder(t *testing.T) {
	h := New(10, 10)
	h.At(1, core.KeyDownEvent(core.KeyA))
	h.Push(core.KeyDownEvent(core.KeyB))

	first := h.Poll()
	if len(first) != 1 || first[0].Key != core.KeyB {
		t.Errorf("Poll() #0 = %v, expected [B down]", first)
	}

	h.Push(core.KeyUpEvent(core.KeyB))
	second := h.Poll()
	if len(second) != 2 || second[0].Kind != core.EventKeyUp || second[1].Key != core.KeyA {
		t.Errorf("Poll() #1 = %v, expected [B up, A down]", second)
	}

	if third := h.Poll(); len(third) != 0 {
		t.Errorf("Poll() #2 = %v, expected empty", third)
	}
}

func TestQuitAfter(t *testing.T) {
	h := New(10, 10)
	h.QuitAfter(3)
	for i := 0; i < 2; i++ {
		if evs := h.Poll(); len(evs) != 0 {
			t.Fatalf("Poll() #%d = %v, expected empty", i, evs)
		}
	}
	evs := h.Poll()
	if len(evs) != 1 || !evs[0].IsQuit() {
		t.Errorf("Poll() #2 = %v, expected quit", evs)
	}
}

func TestPresent(t *testing.T) {
	h := New(10, 10)
	if _, _, err := h.Open("x", 4, 4); err != nil {
		t.Fatalf("Open() failed: %v", err)
	}

	var seen core.Color
	h.OnPresent = func(frame *core.Canvas) { seen = frame.At(1, 1) }

	h.Clear(core.Blue)
	h.FillRect(core.Rect{X: 1, Y: 1, W: 2, H: 2}, core.Red)
	if err := h.Present(); err != nil {
		t.Fatalf("Present() failed: %v", err)
	}

	if h.Frames() != 1 {
		t.Errorf("Frames() = %d, expected 1", h.Frames())
	}
	if seen != core.Red {
		t.Errorf("presented (1,1) = %v, expected red", seen)
	}
	if h.Canvas().At(0, 0) != core.Blue {
		t.Errorf("At(0,0) = %v, expected blue", h.Canvas().At(0, 0))
	}

	if err := h.Close(); err != nil || !h.Closed() {
		t.Errorf("Close() = %v, Closed() = %v", err, h.Closed())
	}
}
