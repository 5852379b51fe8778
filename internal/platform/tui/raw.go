package tui

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/tebeka/atexit"
	"golang.org/x/term"

	"github.com/vovakirdan/gridloop/internal/clock"
	"github.com/vovakirdan/gridloop/internal/core"
	"github.com/vovakirdan/gridloop/internal/engine"
)

// Raw puts the terminal in raw mode and lets the engine own the loop with a
// native driver. Stdin is read on a separate goroutine; Poll drains what it
// collected without blocking.
type Raw struct {
	*Screen
	in    *os.File
	out   *termenv.Output
	clock *clock.Monotonic

	state   *term.State
	input   chan []byte
	once    sync.Once
	started bool
}

// NewRaw creates a raw host over the given terminal files.
func NewRaw(in, out *os.File) (*Raw, error) {
	cols, rows, err := term.GetSize(int(out.Fd()))
	if err != nil {
		return nil, fmt.Errorf("tui: terminal size: %w", err)
	}

	r := &Raw{
		in:    in,
		out:   termenv.NewOutput(out),
		clock: clock.NewMonotonic(),
		input: make(chan []byte, 64),
	}
	r.Screen = NewScreen(cols, rows, NewRenderer(lipgloss.NewRenderer(out)), r.clock.Now)
	return r, nil
}

// Open implements engine.Host. It switches the terminal to raw mode and the
// alternate screen; both are undone by Close or by atexit.Exit.
func (r *Raw) Open(title string, width, height int) (engine.Surface, engine.Input, error) {
	r.open(title, width, height)

	state, err := term.MakeRaw(int(r.in.Fd()))
	if err != nil {
		return nil, nil, fmt.Errorf("tui: raw mode: %w", err)
	}
	r.state = state
	atexit.Register(r.restore)

	r.out.AltScreen()
	r.out.HideCursor()
	r.out.ClearScreen()
	r.out.SetWindowTitle(title)

	if !r.started {
		r.started = true
		go r.read(r.input)
	}
	return r, r, nil
}

// Clock implements engine.ClockSource. Key releases are timed on the same
// clock as frames.
func (r *Raw) Clock() clock.Clock {
	return r.clock
}

// Present implements engine.Surface.
func (r *Raw) Present() error {
	if err := r.Screen.Present(); err != nil {
		return err
	}
	r.out.MoveCursor(1, 1)
	// Raw mode does not translate newlines.
	if _, err := r.out.WriteString(strings.ReplaceAll(r.View(), "\n", "\r\n")); err != nil {
		return fmt.Errorf("tui: write frame: %w", err)
	}
	return nil
}

// Poll implements engine.Input.
func (r *Raw) Poll() []core.Event {
	for {
		select {
		case b, ok := <-r.input:
			if !ok {
				r.Push(core.QuitEvent())
				r.input = nil
				continue
			}
			for _, k := range ParseInput(b) {
				if k.Quit {
					r.Push(core.QuitEvent())
					continue
				}
				r.Press(k.Key)
			}
		default:
			return r.Screen.Poll()
		}
	}
}

// Close restores the terminal.
func (r *Raw) Close() error {
	r.restore()
	return nil
}

func (r *Raw) restore() {
	r.once.Do(func() {
		r.out.ShowCursor()
		r.out.ExitAltScreen()
		if r.state != nil {
			//nolint:errcheck // Best-effort restore on the way out
			term.Restore(int(r.in.Fd()), r.state)
		}
	})
}

// read forwards stdin until it fails. The goroutine stays blocked in Read
// after Close; it ends with the process.
func (r *Raw) read(ch chan<- []byte) {
	buf := make([]byte, 64)
	for {
		n, err := r.in.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			ch <- chunk
		}
		if err != nil {
			close(ch)
			return
		}
	}
}
