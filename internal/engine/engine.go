package engine

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gridloop/internal/clock"
	"github.com/vovakirdan/gridloop/internal/core"
)

// State is the engine lifecycle state.
type State int

const (
	StateConstructed State = iota
	StateRunning
	StateStopped
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateConstructed:
		return "constructed"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Engine owns the surface, the input queue, the key snapshot, the clock and
// the simulation. It is single-threaded: Tick, and every callback it makes,
// run on the caller's goroutine.
type Engine struct {
	title      string
	state      State
	running    bool
	ticking    bool
	rendering  bool
	host       Host
	surface    Surface
	input      Input
	game       Game
	clock      clock.Clock
	first      time.Duration
	last       time.Duration
	dims       core.Dimensions
	background core.Color
	keys       core.KeyState
	ticks      uint64
	driver     Driver
	debug      bool
	logger     *log.Logger
}

// Title returns the title the host surface was opened with.
func (e *Engine) Title() string {
	return e.title
}

// Dimensions returns the point grid.
func (e *Engine) Dimensions() core.Dimensions {
	return e.dims
}

// Background returns the color each frame is cleared to.
func (e *Engine) Background() core.Color {
	return e.background
}

// State returns the lifecycle state.
func (e *Engine) State() State {
	return e.state
}

// Running reports whether the run-flag is set.
func (e *Engine) Running() bool {
	return e.running
}

// Stop clears the run-flag. A tick in progress completes; no further tick
// does any work.
func (e *Engine) Stop() {
	e.running = false
	if !e.ticking && e.state != StateStopped {
		e.state = StateStopped
		e.logger.Info("engine stopped", "ticks", e.ticks, "elapsed", e.Elapsed())
	}
}

// Ticks returns the number of completed ticks.
func (e *Engine) Ticks() uint64 {
	return e.ticks
}

// Elapsed returns clock time between the first and the latest tick.
func (e *Engine) Elapsed() time.Duration {
	return e.last - e.first
}

// Tick runs one frame: drain input, update, clear, render, present.
// It is a no-op once the run-flag is clear. Calling Tick from inside a
// simulation callback panics.
func (e *Engine) Tick() {
	if !e.running {
		return
	}
	if e.ticking {
		panic("engine: Tick called from inside a simulation callback")
	}
	e.ticking = true
	defer func() { e.ticking = false }()
	e.state = StateRunning

	for _, ev := range e.input.Poll() {
		e.keys.Apply(ev)
		out, ok := e.dispatch(ev)
		if ok && out.IsQuit() {
			e.running = false
		}
	}

	now := e.clock.Now()
	var dt time.Duration
	if e.ticks == 0 {
		e.first = now
	} else {
		dt = now - e.last
	}
	if dt < 0 {
		dt = 0
	}
	e.last = now

	e.game.Update(dt.Seconds(), readView{e: e})

	e.surface.Clear(e.background)
	e.rendering = true
	e.game.Render(drawView{readView{e: e}})
	e.rendering = false

	if err := e.surface.Present(); err != nil {
		e.fault("present failed", err)
	}
	e.ticks++

	if !e.running {
		e.state = StateStopped
		e.logger.Info("engine stopped", "ticks", e.ticks, "elapsed", e.Elapsed())
	}
}

// Start hands the engine to its driver and returns when the driver does.
// For hosts that only register a callback this returns immediately while
// the host keeps ticking.
func (e *Engine) Start() error {
	e.logger.Info("engine started",
		"title", e.title,
		"grid", fmt.Sprintf("%dx%d", e.dims.Width(), e.dims.Height()),
		"point_size", e.dims.PointSize(),
	)
	if err := e.driver.Run(e); err != nil {
		return fmt.Errorf("engine: driver: %w", err)
	}
	return nil
}

// Close releases whatever the host opened. The engine must not tick after.
func (e *Engine) Close() error {
	e.Stop()
	e.state = StateStopped

	var first error
	var closed []io.Closer
	for _, c := range []any{e.input, e.surface, e.host} {
		closer, ok := c.(io.Closer)
		if !ok || containsCloser(closed, closer) {
			continue
		}
		closed = append(closed, closer)
		if err := closer.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// containsCloser reports whether c was already closed. Hosts often serve as
// their own surface or input.
func containsCloser(closed []io.Closer, c io.Closer) bool {
	for _, prev := range closed {
		if prev == c {
			return true
		}
	}
	return false
}

func (e *Engine) dispatch(ev core.Event) (core.Event, bool) {
	if h, ok := e.game.(EventHandler); ok {
		return h.HandleEvent(ev)
	}
	return PassThrough(ev)
}

// fault handles programmer errors inside a tick. Debug builds of a
// simulation want them loud; otherwise the frame carries on.
func (e *Engine) fault(msg string, err error) {
	if e.debug {
		panic(fmt.Sprintf("engine: %s: %v", msg, err))
	}
	e.logger.Debug(msg, "error", err)
}

type readView struct {
	e *Engine
}

func (v readView) IsKeyDown(k core.Key) bool {
	return v.e.keys.IsDown(k)
}

func (v readView) Dimensions() core.Dimensions {
	return v.e.dims
}

type drawView struct {
	readView
}

func (v drawView) DrawPoint(x, y int, c core.Color) {
	if !v.e.rendering {
		v.e.fault("draw outside render", fmt.Errorf("point (%d, %d)", x, y))
		return
	}
	v.e.surface.FillRect(v.e.dims.PointAt(x, y), c)
}

func (v drawView) DrawRect(x, y, w, h int, c core.Color) {
	if !v.e.rendering {
		v.e.fault("draw outside render", fmt.Errorf("rect (%d, %d, %d, %d)", x, y, w, h))
		return
	}
	if w < 0 || h < 0 {
		v.e.fault("invalid rect", fmt.Errorf("negative size %dx%d", w, h))
		return
	}
	v.e.surface.FillRect(v.e.dims.RectAt(x, y, w, h), c)
}
