//go:build ebiten

// Package window hosts the engine in a desktop window. Ebiten owns the frame
// loop, so the host is a scheduler and the engine uses its callback driver.
package window

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/vovakirdan/gridloop/internal/clock"
	"github.com/vovakirdan/gridloop/internal/core"
	"github.com/vovakirdan/gridloop/internal/engine"
)

// ErrUnavailable is returned by builds without the ebiten tag.
var ErrUnavailable = errors.New("window: built without the ebiten tag")

// Host is an ebiten window.
type Host struct {
	tps    int
	clock  clock.Clock
	canvas *core.Canvas
	pixels []byte
	queue  []core.Event
	frame  func() bool
}

// New creates a window host running at tps ticks per second. In js/wasm
// builds it fails when the page has no performance timer.
func New(tps int) (*Host, error) {
	if tps <= 0 {
		tps = ebiten.DefaultTPS
	}
	c, err := hostClock(runtime.GOOS == "js", clock.Performance)
	if err != nil {
		return nil, err
	}
	return &Host{tps: tps, clock: c}, nil
}

// Clock implements engine.ClockSource. Native windows return nil and the
// engine uses its monotonic clock.
func (h *Host) Clock() clock.Clock {
	return h.clock
}

// Bounds implements engine.Host with the size of the primary monitor.
func (h *Host) Bounds() (int, int, error) {
	w, hh := ebiten.ScreenSizeInFullscreen()
	if w <= 0 || hh <= 0 {
		return 0, 0, errors.New("window: no display")
	}
	return w, hh, nil
}

// Open implements engine.Host.
func (h *Host) Open(title string, width, height int) (engine.Surface, engine.Input, error) {
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetTPS(h.tps)

	h.canvas = core.NewCanvas(width, height)
	h.pixels = make([]byte, width*height*4)
	return h, h, nil
}

// Clear implements engine.Surface.
func (h *Host) Clear(c core.Color) {
	h.canvas.Clear(c)
}

// FillRect implements engine.Surface.
func (h *Host) FillRect(r core.Rect, c core.Color) {
	h.canvas.FillRect(r, c)
}

// Present implements engine.Surface. Pixels are uploaded on ebiten's next
// Draw.
func (h *Host) Present() error {
	for i, c := range h.canvas.Pixels() {
		h.pixels[i*4] = c.R
		h.pixels[i*4+1] = c.G
		h.pixels[i*4+2] = c.B
		h.pixels[i*4+3] = 0xff
	}
	return nil
}

// Poll implements engine.Input.
func (h *Host) Poll() []core.Event {
	events := h.queue
	h.queue = nil
	return events
}

// SetMainLoop implements engine.Scheduler. It blocks until the window
// closes or the callback reports the engine stopped.
func (h *Host) SetMainLoop(frame func() bool) error {
	h.frame = frame
	if err := ebiten.RunGame(game{h}); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("window: %w", err)
	}
	return nil
}

// game adapts the host to the ebiten.Game interface.
type game struct {
	h *Host
}

// Update collects input and runs one engine frame.
func (g game) Update() error {
	h := g.h
	for _, k := range inpututil.AppendJustPressedKeys(nil) {
		if ck := translateKey(k); ck != core.KeyNone {
			h.queue = append(h.queue, core.KeyDownEvent(ck))
		}
	}
	for _, k := range inpututil.AppendJustReleasedKeys(nil) {
		if ck := translateKey(k); ck != core.KeyNone {
			h.queue = append(h.queue, core.KeyUpEvent(ck))
		}
	}
	if ebiten.IsWindowBeingClosed() {
		h.queue = append(h.queue, core.QuitEvent())
	}

	if !h.frame() {
		return ebiten.Termination
	}
	return nil
}

// Draw uploads the last presented frame.
func (g game) Draw(screen *ebiten.Image) {
	if g.h.pixels != nil {
		screen.WritePixels(g.h.pixels)
	}
}

// Layout returns the logical screen size.
func (g game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.h.canvas.Width(), g.h.canvas.Height()
}

func translateKey(k ebiten.Key) core.Key {
	switch k {
	case ebiten.KeyArrowUp:
		return core.KeyUp
	case ebiten.KeyArrowDown:
		return core.KeyDown
	case ebiten.KeyArrowLeft:
		return core.KeyLeft
	case ebiten.KeyArrowRight:
		return core.KeyRight
	case ebiten.KeyEscape:
		return core.KeyEscape
	case ebiten.KeyEnter:
		return core.KeyEnter
	case ebiten.KeySpace:
		return core.KeySpace
	case ebiten.KeyBackspace:
		return core.KeyBackspace
	case ebiten.KeyTab:
		return core.KeyTab
	}

	// Letter keys are the only single-character names.
	if name := k.String(); len(name) == 1 {
		return core.LetterKey(rune(name[0]))
	}
	return core.KeyNone
}
