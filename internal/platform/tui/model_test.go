package tui

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/gridloop/internal/config"
	"github.com/vovakirdan/gridloop/internal/core"
	"github.com/vovakirdan/gridloop/internal/engine"
	"github.com/vovakirdan/gridloop/internal/registry"
)

// watcher records what the engine showed it.
type watcher struct {
	updates int
	lastDT  float64
	upHeld  bool
}

func (w *watcher) Update(dt float64, v engine.ReadView) {
	w.updates++
	w.lastDT = dt
	w.upHeld = v.IsKeyDown(core.KeyUp)
}

func (w *watcher) Render(v engine.DrawView) {
	v.DrawRect(0, 0, 2, 2, core.White)
}

func newSessionEngine(t *testing.T, g engine.Game, cols, rows, w, h int) (*Session, *engine.Engine) {
	t.Helper()
	host := NewSession(cols, rows, plainRenderer(), 60)
	e, err := engine.New(g, "session").WithHost(host).WithDimensions(1, w, h).Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
	if err := e.Start(); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	return host, e
}

func TestSessionRegistersOnly(t *testing.T) {
	g := &watcher{}
	host, e := newSessionEngine(t, g, 20, 10, 20, 20)

	if host.Model() == nil {
		t.Fatal("Model() = nil after Start")
	}
	if g.updates != 0 || e.Ticks() != 0 {
		t.Errorf("Start() ran %d updates, expected none", g.updates)
	}
	if !e.Running() {
		t.Error("engine should still be running after Start")
	}
}

func TestSessionBounds(t *testing.T) {
	host := NewSession(80, 24, plainRenderer(), 60)
	w, h, err := host.Bounds()
	if err != nil || w != 80 || h != 48 {
		t.Errorf("Bounds() = %d, %d, %v, expected 80, 48, nil", w, h, err)
	}

	if _, _, err := NewSession(0, 0, nil, 60).Bounds(); !errors.Is(err, ErrNoTerminal) {
		t.Errorf("Bounds() error = %v, expected %v", err, ErrNoTerminal)
	}
}

func TestSessionClipsOversizedGrid(t *testing.T) {
	host, e := newSessionEngine(t, &watcher{}, 20, 10, 30, 30)
	host.Model().Update(TickMsg(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)))

	if e.Ticks() != 1 {
		t.Fatalf("Ticks() = %d, expected 1", e.Ticks())
	}
	lines := strings.Split(host.View(), "\n")
	if len(lines) != 10 {
		t.Errorf("View() has %d lines, expected 10", len(lines))
	}
	for i, line := range lines {
		if n := strings.Count(line, halfBlock); n != 20 {
			t.Errorf("line %d has %d cells, expected 20", i, n)
		}
	}
}

func TestSimsBuildOnSmallTerminal(t *testing.T) {
	settings := config.DefaultSettings()

	for _, info := range registry.List() {
		t.Run(info.ID, func(t *testing.T) {
			sim, err := registry.Create(info.ID, settings.SimOptions(info.ID, 1))
			if err != nil {
				t.Fatalf("Create() failed: %v", err)
			}
			host := NewSession(80, 24, plainRenderer(), 60)
			b := engine.New(sim, sim.Title()).WithHost(host)
			sim.Configure(b)
			if err := settings.Apply(b); err != nil {
				t.Fatalf("Apply() failed: %v", err)
			}
			e, err := b.Build()
			if err != nil {
				t.Fatalf("Build() on 80x24 failed: %v", err)
			}
			if err := e.Start(); err != nil {
				t.Fatalf("Start() failed: %v", err)
			}

			host.Model().Update(TickMsg(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)))
			if e.Ticks() != 1 {
				t.Errorf("Ticks() = %d, expected 1", e.Ticks())
			}
			if lines := strings.Count(host.View(), "\n") + 1; lines > 24 {
				t.Errorf("View() has %d lines, expected at most 24", lines)
			}
		})
	}
}

func TestModelTicksAndKeys(t *testing.T) {
	g := &watcher{}
	host, e := newSessionEngine(t, g, 20, 10, 20, 20)
	m := host.Model()
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	m.Update(TickMsg(t0))
	if e.Ticks() != 1 || g.lastDT != 0 {
		t.Fatalf("after first tick: ticks=%d dt=%v, expected 1 and 0", e.Ticks(), g.lastDT)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m.Update(TickMsg(t0.Add(16 * time.Millisecond)))
	if !g.upHeld {
		t.Error("Up should be held after a key message")
	}
	if math.Abs(g.lastDT-0.016) > 1e-9 {
		t.Errorf("dt = %v, expected 0.016", g.lastDT)
	}

	// No repeat within the hold window releases the key.
	m.Update(TickMsg(t0.Add(16*time.Millisecond + DefaultHoldWindow)))
	if g.upHeld {
		t.Error("Up should be released after the hold window")
	}

	if view := m.View(); !strings.Contains(view, halfBlock) {
		t.Errorf("View() = %q, expected the presented frame", view)
	}
}

func TestModelEscapeStops(t *testing.T) {
	g := &watcher{}
	host, e := newSessionEngine(t, g, 20, 10, 20, 20)
	m := host.Model()
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	m.Update(TickMsg(t0))
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	_, cmd := m.Update(TickMsg(t0.Add(time.Second / 60)))

	if e.Running() {
		t.Error("Escape should stop the engine")
	}
	if !m.Quitting() || cmd == nil {
		t.Error("model should quit once the engine stops")
	}
	if m.View() != "" {
		t.Errorf("View() = %q after quit, expected empty", m.View())
	}
}

// stubborn consumes every event.
type stubborn struct{ watcher }

func (s *stubborn) HandleEvent(ev core.Event) (core.Event, bool) {
	return ev, false
}

func TestModelInterruptTwice(t *testing.T) {
	g := &stubborn{}
	host, e := newSessionEngine(t, g, 20, 10, 20, 20)
	m := host.Model()
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	m.Update(TickMsg(t0))
	if !e.Running() || m.Quitting() {
		t.Fatal("a consumed interrupt should not stop anything")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if !m.Quitting() {
		t.Error("second interrupt should end the program")
	}
}

func TestModelResizeQueuesEvent(t *testing.T) {
	host, _ := newSessionEngine(t, &watcher{}, 20, 10, 20, 20)
	host.Model().Update(tea.WindowSizeMsg{Width: 40, Height: 12})

	events := host.Poll()
	if len(events) != 1 || events[0].Kind != core.EventResize || events[0].Width != 40 || events[0].Height != 24 {
		t.Errorf("Poll() = %v, expected one 40x24 resize", events)
	}
}
