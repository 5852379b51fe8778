// Package headless provides an in-memory engine host: a pixel canvas for a
// surface and a scripted event queue for input. It backs the engine tests
// and the CLI's headless mode.
package headless

import (
	"errors"

	"github.com/vovakirdan/gridloop/internal/core"
	"github.com/vovakirdan/gridloop/internal/engine"
)

// ErrNoDisplay is returned by Bounds when the host was created without a
// display size.
var ErrNoDisplay = errors.New("headless: no display bounds")

// Host is an engine.Host, engine.Surface and engine.Input backed by memory.
type Host struct {
	displayW int
	displayH int

	title   string
	canvas  *core.Canvas
	opened  bool
	closed  bool
	openErr error

	queue  []core.Event
	script map[uint64][]core.Event
	polls  uint64
	frames uint64

	// OnPresent is called with the finished frame on every Present.
	OnPresent func(frame *core.Canvas)
}

// New creates a host that reports a displayW x displayH pixel display.
func New(displayW, displayH int) *Host {
	return &Host{
		displayW: displayW,
		displayH: displayH,
		script:   make(map[uint64][]core.Event),
	}
}

// FailOpen makes the next Open return err, simulating a display that
// cannot be initialized.
func (h *Host) FailOpen(err error) *Host {
	h.openErr = err
	return h
}

// Bounds implements engine.Host.
func (h *Host) Bounds() (int, int, error) {
	if h.displayW <= 0 || h.displayH <= 0 {
		return 0, 0, ErrNoDisplay
	}
	return h.displayW, h.displayH, nil
}

// Open implements engine.Host.
func (h *Host) Open(title string, width, height int) (engine.Surface, engine.Input, error) {
	if h.openErr != nil {
		return nil, nil, h.openErr
	}
	h.title = title
	h.canvas = core.NewCanvas(width, height)
	h.opened = true
	return h, h, nil
}

// Close implements io.Closer.
func (h *Host) Close() error {
	h.closed = true
	return nil
}

// Clear implements engine.Surface.
func (h *Host) Clear(c core.Color) {
	h.canvas.Clear(c)
}

// FillRect implements engine.Surface.
func (h *Host) FillRect(r core.Rect, c core.Color) {
	h.canvas.FillRect(r, c)
}

// Present implements engine.Surface.
func (h *Host) Present() error {
	h.frames++
	if h.OnPresent != nil {
		h.OnPresent(h.canvas)
	}
	return nil
}

// Poll implements engine.Input. Pushed events come first, then events
// scripted for this poll.
func (h *Host) Poll() []core.Event {
	events := h.queue
	h.queue = nil
	if scripted, ok := h.script[h.polls]; ok {
		events = append(events, scripted...)
		delete(h.script, h.polls)
	}
	h.polls++
	return events
}

// Push queues events for the next Poll.
func (h *Host) Push(events ...core.Event) {
	h.queue = append(h.queue, events...)
}

// At schedules events to be returned by the poll with the given zero-based
// index, which is the tick with that index for an engine polling once a tick.
func (h *Host) At(poll uint64, events ...core.Event) {
	h.script[poll] = append(h.script[poll], events...)
}

// QuitAfter schedules a quit event so the engine runs exactly ticks ticks.
func (h *Host) QuitAfter(ticks uint64) {
	if ticks == 0 {
		ticks = 1
	}
	h.At(ticks-1, core.QuitEvent())
}

// Canvas returns the surface opened by the engine, or nil before Open.
func (h *Host) Canvas() *core.Canvas {
	return h.canvas
}

// Title returns the title passed to Open.
func (h *Host) Title() string {
	return h.title
}

// Frames returns the number of presented frames.
func (h *Host) Frames() uint64 {
	return h.frames
}

// Opened reports whether Open succeeded.
func (h *Host) Opened() bool {
	return h.opened
}

// Closed reports whether Close was called.
func (h *Host) Closed() bool {
	return h.closed
}
