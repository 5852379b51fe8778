package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/gridloop/internal/core"
)

// Model is the Bubble Tea model that runs engine frames. Every tick message
// calls the frame callback once; key messages are queued on the screen for
// the engine's next poll.
type Model struct {
	screen     *Screen
	timer      *tickTimer
	frame      func() bool
	tickRate   int
	interrupts int
	quitting   bool
}

func newModel(screen *Screen, timer *tickTimer, frame func() bool, tickRate int) *Model {
	return &Model{
		screen:   screen,
		timer:    timer,
		frame:    frame,
		tickRate: tickRate,
	}
}

// Init starts the tick loop.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle(m.screen.Title()),
		tickCmd(m.tickRate),
	)
}

// Update handles messages and runs frames.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey queues a key report. The interrupt key asks the engine to quit;
// a second one ends the program even if the simulation ignored the first.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k, isQuit := m.screen.keys.Translate(msg)
	if isQuit {
		m.interrupts++
		if m.interrupts > 1 {
			m.quitting = true
			return m, tea.Quit
		}
		m.screen.Push(core.QuitEvent())
		return m, nil
	}

	m.screen.Press(k)
	return m, nil
}

// handleTick runs one frame and schedules the next while the engine runs.
func (m *Model) handleTick(ts time.Time) (tea.Model, tea.Cmd) {
	m.timer.observe(ts)

	if m.frame == nil || !m.frame() {
		m.quitting = true
		return m, tea.Quit
	}
	return m, tickCmd(m.tickRate)
}

// View returns the last presented frame.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	return m.screen.View()
}

// Quitting reports whether the model has asked the program to exit.
func (m *Model) Quitting() bool {
	return m.quitting
}
