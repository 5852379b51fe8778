package tui

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/vovakirdan/gridloop/internal/clock"
	"github.com/vovakirdan/gridloop/internal/engine"
)

// teaHost is the part shared by the Bubble Tea hosts: the screen plus a
// clock that reads tick message timestamps.
type teaHost struct {
	*Screen
	timer    tickTimer
	clock    *clock.HostTimer
	tickRate int
}

func newTeaHost(cols, rows int, renderer *Renderer, tickRate int) *teaHost {
	h := &teaHost{tickRate: tickRate}
	// A non-nil timer function never fails.
	h.clock, _ = clock.NewHostTimer(h.timer.millis)
	h.Screen = NewScreen(cols, rows, renderer, h.clock.Now)
	return h
}

// Open implements engine.Host.
func (h *teaHost) Open(title string, width, height int) (engine.Surface, engine.Input, error) {
	h.open(title, width, height)
	return h.Screen, h.Screen, nil
}

// Clock implements engine.ClockSource.
func (h *teaHost) Clock() clock.Clock {
	return h.clock
}

// Program runs the engine as a local Bubble Tea program. SetMainLoop blocks
// until the program exits, so the engine's Start returns when the terminal
// is released.
type Program struct {
	*teaHost
	options []tea.ProgramOption
}

// NewProgram creates a host for the terminal attached to stdout.
func NewProgram(tickRate int, opts ...tea.ProgramOption) (*Program, error) {
	cols, rows, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return nil, fmt.Errorf("tui: terminal size: %w", err)
	}
	return &Program{
		teaHost: newTeaHost(cols, rows, nil, tickRate),
		options: opts,
	}, nil
}

// SetMainLoop implements engine.Scheduler.
func (p *Program) SetMainLoop(frame func() bool) error {
	model := newModel(p.Screen, &p.timer, frame, p.tickRate)
	opts := append([]tea.ProgramOption{tea.WithAltScreen()}, p.options...)

	if _, err := tea.NewProgram(model, opts...).Run(); err != nil {
		return fmt.Errorf("tui: program: %w", err)
	}
	return nil
}

// Session hosts the engine inside a Bubble Tea program someone else runs,
// such as an SSH session. SetMainLoop only registers the frame callback;
// the program built from Model drives it.
type Session struct {
	*teaHost
	model *Model
}

// NewSession creates a host for a cols x rows terminal.
func NewSession(cols, rows int, renderer *Renderer, tickRate int) *Session {
	return &Session{teaHost: newTeaHost(cols, rows, renderer, tickRate)}
}

// SetMainLoop implements engine.Scheduler.
func (s *Session) SetMainLoop(frame func() bool) error {
	s.model = newModel(s.Screen, &s.timer, frame, s.tickRate)
	return nil
}

// Model returns the model driving the registered callback, or nil before
// SetMainLoop.
func (s *Session) Model() *Model {
	return s.model
}
