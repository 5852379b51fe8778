package engine

import (
	"github.com/vovakirdan/gridloop/internal/clock"
	"github.com/vovakirdan/gridloop/internal/core"
)

// Surface is the display the engine draws each frame onto, in pixels.
// Implementations clip silently.
type Surface interface {
	Clear(c core.Color)
	FillRect(r core.Rect, c core.Color)
	Present() error
}

// Input is the host's event queue.
type Input interface {
	// Poll drains every event queued since the previous call, in arrival order.
	Poll() []core.Event
}

// Host creates the surface and input the engine runs against: a terminal, an
// SSH session, a window or an in-memory buffer.
type Host interface {
	// Bounds reports the display size in pixels, used by the fit and stretch
	// dimension policies.
	Bounds() (width, height int, err error)

	// Open creates a surface of the given pixel size and the matching input.
	Open(title string, width, height int) (Surface, Input, error)
}

// Scheduler is implemented by hosts that own the loop and call back into the
// engine once per frame. frame reports whether the host should keep calling.
// SetMainLoop may block for the life of the loop or return right after
// registering frame, depending on the host.
type Scheduler interface {
	SetMainLoop(frame func() bool) error
}

// ClockSource is implemented by hosts that provide their own monotonic timer.
// The engine prefers it over the process clock.
type ClockSource interface {
	Clock() clock.Clock
}
