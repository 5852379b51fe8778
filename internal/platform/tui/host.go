package tui

import (
	"errors"
	"time"

	"github.com/vovakirdan/gridloop/internal/core"
)

// ErrNoTerminal is returned by Bounds when the terminal size is unknown.
var ErrNoTerminal = errors.New("tui: terminal size unknown")

// Screen is the terminal surface and input queue shared by the terminal
// hosts. Pixels are drawn as half blocks, so a terminal of cols x rows cells
// is a display of cols x 2*rows pixels.
type Screen struct {
	cols, rows int
	title      string

	canvas   *core.Canvas
	renderer *Renderer
	view     string

	keys  KeyMap
	latch *KeyLatch
	queue []core.Event
	now   func() time.Duration
}

// NewScreen creates a screen for a terminal of cols x rows cells.
func NewScreen(cols, rows int, renderer *Renderer, now func() time.Duration) *Screen {
	if renderer == nil {
		renderer = NewRenderer(nil)
	}
	return &Screen{
		cols:     cols,
		rows:     rows,
		renderer: renderer,
		keys:     DefaultKeyMap(),
		latch:    NewKeyLatch(DefaultHoldWindow),
		now:      now,
	}
}

// SetHoldWindow replaces the key latch.
func (s *Screen) SetHoldWindow(hold time.Duration) {
	s.latch = NewKeyLatch(hold)
}

// Bounds implements engine.Host.
func (s *Screen) Bounds() (int, int, error) {
	if s.cols <= 0 || s.rows <= 0 {
		return 0, 0, ErrNoTerminal
	}
	return s.cols, s.rows * 2, nil
}

// open allocates the canvas at the full grid size. Whatever does not fit
// the terminal is clipped when the frame is presented.
func (s *Screen) open(title string, width, height int) *core.Canvas {
	s.title = title
	s.canvas = core.NewCanvas(width, height)
	return s.canvas
}

// Title returns the title the engine opened the screen with.
func (s *Screen) Title() string {
	return s.title
}

// Clear implements engine.Surface.
func (s *Screen) Clear(c core.Color) {
	s.canvas.Clear(c)
}

// FillRect implements engine.Surface.
func (s *Screen) FillRect(r core.Rect, c core.Color) {
	s.canvas.FillRect(r, c)
}

// Present implements engine.Surface. The frame is kept as text until the
// host writes it out.
func (s *Screen) Present() error {
	if s.cols > 0 && s.rows > 0 {
		s.view = s.renderer.RenderRegion(s.canvas, s.cols, s.rows)
	} else {
		s.view = s.renderer.Render(s.canvas)
	}
	return nil
}

// View returns the last presented frame.
func (s *Screen) View() string {
	return s.view
}

// Poll implements engine.Input. Released keys come before newly queued
// events.
func (s *Screen) Poll() []core.Event {
	events := s.latch.Expire(s.now())
	events = append(events, s.queue...)
	s.queue = s.queue[:0]
	return events
}

// Press feeds a terminal key report.
func (s *Screen) Press(k core.Key) {
	if ev, ok := s.latch.Press(k, s.now()); ok {
		s.queue = append(s.queue, ev)
	}
}

// Push queues an event as is.
func (s *Screen) Push(ev core.Event) {
	s.queue = append(s.queue, ev)
}

// Resize records a new terminal size and queues a resize event. The grid
// keeps its size.
func (s *Screen) Resize(cols, rows int) {
	s.cols, s.rows = cols, rows
	s.Push(core.Event{Kind: core.EventResize, Width: cols, Height: rows * 2})
}
