package clock

import (
	"errors"
	"testing"
	"time"
)

func TestMonotonicNeverDecreases(t *testing.T) {
	c := NewMonotonic()
	prev := c.Now()
	for i := 0; i < 1000; i++ {
		now := c.Now()
		if now < prev {
			t.Fatalf("Now() went backwards: %v after %v", now, prev)
		}
		prev = now
	}
}

func TestHostTimerClampsBackwardsReads(t *testing.T) {
	readings := []float64{10, 25.5, 20, 40}
	i := 0
	h, err := NewHostTimer(func() float64 {
		v := readings[i]
		i++
		return v
	})
	if err != nil {
		t.Fatalf("NewHostTimer() failed: %v", err)
	}

	expected := []time.Duration{
		10 * time.Millisecond,
		25500 * time.Microsecond,
		25500 * time.Microsecond, // host went backwards
		40 * time.Millisecond,
	}
	for n, want := range expected {
		if got := h.Now(); got != want {
			t.Errorf("read %d: Now() = %v, expected %v", n, got, want)
		}
	}
}

func TestHostTimerRequiresTimer(t *testing.T) {
	if _, err := NewHostTimer(nil); !errors.Is(err, ErrNoHostTimer) {
		t.Errorf("NewHostTimer(nil) error = %v, expected ErrNoHostTimer", err)
	}
}

func TestPerformanceUnavailableOutsideBrowser(t *testing.T) {
	if _, err := Performance(); !errors.Is(err, ErrNoHostTimer) {
		t.Errorf("Performance() error = %v, expected ErrNoHostTimer", err)
	}
}

func TestManual(t *testing.T) {
	m := NewManual()
	if m.Now() != 0 {
		t.Errorf("Now() = %v, expected 0", m.Now())
	}
	m.Advance(16 * time.Millisecond)
	m.Advance(-time.Second)
	if m.Now() != 16*time.Millisecond {
		t.Errorf("Now() = %v, expected 16ms", m.Now())
	}

	var c Clock = Func(m.Now)
	if c.Now() != m.Now() {
		t.Error("Func should delegate to the wrapped function")
	}
}
