// Package clock provides the monotonic time sources the engine measures frame
// deltas with. Every implementation returns a duration since its own epoch
// and successive reads never decrease.
package clock

import (
	"errors"
	"sync"
	"time"
)

// ErrNoHostTimer is returned when a host timer is requested but the host does
// not provide one. Without a timer frame deltas are meaningless, so callers
// treat it as a fatal setup error.
var ErrNoHostTimer = errors.New("clock: host monotonic timer unavailable")

// Clock reports elapsed time since an implementation-defined epoch.
type Clock interface {
	Now() time.Duration
}

// Monotonic measures time with the runtime's monotonic clock reading.
type Monotonic struct {
	epoch time.Time
}

// NewMonotonic creates a clock whose epoch is the moment of the call.
func NewMonotonic() *Monotonic {
	return &Monotonic{epoch: time.Now()}
}

// Now returns the time elapsed since the clock was created.
func (m *Monotonic) Now() time.Duration {
	return time.Since(m.epoch)
}

// HostTimer adapts a host-provided millisecond timer, such as a browser's
// performance.now or a UI framework's tick timestamps. A host that reports a
// value lower than the previous read is clamped to the previous read.
type HostTimer struct {
	now  func() float64
	last time.Duration
}

// NewHostTimer wraps a millisecond timer.
func NewHostTimer(now func() float64) (*HostTimer, error) {
	if now == nil {
		return nil, ErrNoHostTimer
	}
	return &HostTimer{now: now}, nil
}

// Now reads the host timer.
func (h *HostTimer) Now() time.Duration {
	d := time.Duration(h.now() * float64(time.Millisecond))
	if d < h.last {
		return h.last
	}
	h.last = d
	return d
}

// Func adapts a function to the Clock interface.
type Func func() time.Duration

// Now calls f.
func (f Func) Now() time.Duration {
	return f()
}

// Manual is a clock that only moves when told to. Used by tests and by
// headless runs that need reproducible deltas.
type Manual struct {
	mu  sync.Mutex
	now time.Duration
}

// NewManual creates a manual clock at zero.
func NewManual() *Manual {
	return &Manual{}
}

// Now returns the current manual time.
func (m *Manual) Now() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Advance moves the clock forward. Negative durations are ignored.
func (m *Manual) Advance(d time.Duration) {
	if d < 0 {
		return
	}
	m.mu.Lock()
	m.now += d
	m.mu.Unlock()
}
